package delivery

import (
	"context"
	"fmt"

	"github.com/gkt/backend/internal/domain/delivery"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProgramRequest carries the inputs for opening a delivery program
type CreateProgramRequest struct {
	Name            string          `json:"name" binding:"required"`
	ClientName      string          `json:"client_name" binding:"required"`
	TotalOrderValue decimal.Decimal `json:"total_order_value" binding:"required"`
	DealID          *uuid.UUID      `json:"deal_id,omitempty"`
	OpportunityID   *uuid.UUID      `json:"opportunity_id,omitempty"`
}

// UpdateProgramCostsRequest replaces the program cost vector
type UpdateProgramCostsRequest struct {
	Costs delivery.ProgramCosts `json:"costs"`
}

// ProgramService provides application-level program operations
type ProgramService struct {
	programRepo    delivery.ProgramRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProgramService creates a new ProgramService
func NewProgramService(programRepo delivery.ProgramRepository, logger *zap.Logger) *ProgramService {
	return &ProgramService{
		programRepo: programRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProgramService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a delivery program, optionally linked to a deal or opportunity
func (s *ProgramService) Create(ctx context.Context, req CreateProgramRequest, actor shared.Actor) (*delivery.Program, error) {
	program, err := delivery.NewProgram(req.Name, req.ClientName, req.TotalOrderValue, actor)
	if err != nil {
		return nil, err
	}
	if req.DealID != nil {
		program.LinkDeal(*req.DealID)
	}
	if req.OpportunityID != nil {
		program.LinkOpportunity(*req.OpportunityID)
	}

	if err := s.programRepo.Save(ctx, program); err != nil {
		return nil, fmt.Errorf("failed to save program: %w", err)
	}
	s.publishEvents(ctx, program)

	s.logger.Info("program created",
		zap.String("program_id", program.ID.String()),
		zap.String("client_name", program.ClientName),
	)
	return program, nil
}

// UpdateCosts replaces the cost vector and re-runs the GP derivation
func (s *ProgramService) UpdateCosts(ctx context.Context, id uuid.UUID, req UpdateProgramCostsRequest) (*delivery.Program, error) {
	program, err := s.programRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := program.UpdateCosts(req.Costs); err != nil {
		return nil, err
	}
	if err := s.programRepo.Save(ctx, program); err != nil {
		return nil, fmt.Errorf("failed to save program: %w", err)
	}
	return program, nil
}

// Start moves the program into delivery
func (s *ProgramService) Start(ctx context.Context, id uuid.UUID) (*delivery.Program, error) {
	return s.mutate(ctx, id, func(p *delivery.Program) error { return p.Start() })
}

// MarkDelivered records delivery completion
func (s *ProgramService) MarkDelivered(ctx context.Context, id uuid.UUID) (*delivery.Program, error) {
	return s.mutate(ctx, id, func(p *delivery.Program) error { return p.MarkDelivered() })
}

// RecordTrainerSignOff flips the trainer sign-off boolean
func (s *ProgramService) RecordTrainerSignOff(ctx context.Context, id uuid.UUID, actor shared.Actor) (*delivery.Program, error) {
	return s.mutate(ctx, id, func(p *delivery.Program) error {
		p.RecordTrainerSignOff(actor)
		return nil
	})
}

// RecordClientSignOff flips the client sign-off boolean. The resulting
// event triggers the invoice-eligibility cascade.
func (s *ProgramService) RecordClientSignOff(ctx context.Context, id uuid.UUID, actor shared.Actor) (*delivery.Program, error) {
	return s.mutate(ctx, id, func(p *delivery.Program) error {
		p.RecordClientSignOff(actor)
		return nil
	})
}

// Get returns a single program
func (s *ProgramService) Get(ctx context.Context, id uuid.UUID) (*delivery.Program, error) {
	return s.programRepo.FindByID(ctx, id)
}

// List returns programs with pagination
func (s *ProgramService) List(ctx context.Context, filter shared.Filter) ([]delivery.Program, int64, error) {
	return s.programRepo.FindAll(ctx, filter)
}

func (s *ProgramService) mutate(ctx context.Context, id uuid.UUID, fn func(*delivery.Program) error) (*delivery.Program, error) {
	program, err := s.programRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(program); err != nil {
		return nil, err
	}
	if err := s.programRepo.Save(ctx, program); err != nil {
		return nil, fmt.Errorf("failed to save program: %w", err)
	}
	s.publishEvents(ctx, program)
	return program, nil
}

func (s *ProgramService) publishEvents(ctx context.Context, program *delivery.Program) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range program.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	program.ClearDomainEvents()
}
