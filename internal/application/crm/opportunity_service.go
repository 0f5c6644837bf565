package crm

import (
	"context"
	"fmt"

	"github.com/gkt/backend/internal/domain/crm"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OpportunityService provides application-level opportunity operations,
// including the conversion flow that creates the downstream deal.
type OpportunityService struct {
	oppRepo        crm.OpportunityRepository
	dealRepo       crm.DealRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOpportunityService creates a new OpportunityService
func NewOpportunityService(
	oppRepo crm.OpportunityRepository,
	dealRepo crm.DealRepository,
	logger *zap.Logger,
) *OpportunityService {
	return &OpportunityService{
		oppRepo:  oppRepo,
		dealRepo: dealRepo,
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OpportunityService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a new opportunity with a generated adhoc code
func (s *OpportunityService) Create(ctx context.Context, req CreateOpportunityRequest, actor shared.Actor) (*OpportunityResponse, error) {
	adhocCode, err := s.oppRepo.GenerateAdhocCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate adhoc code: %w", err)
	}

	opp, err := crm.NewOpportunity(adhocCode, req.Name, req.ClientName, req.TotalOrderValue, actor)
	if err != nil {
		return nil, err
	}

	if err := s.oppRepo.Save(ctx, opp); err != nil {
		return nil, fmt.Errorf("failed to save opportunity: %w", err)
	}
	s.publishEvents(ctx, opp)

	s.logger.Info("opportunity created",
		zap.String("opportunity_id", opp.ID.String()),
		zap.String("adhoc_code", opp.AdhocCode),
		zap.String("client_name", opp.ClientName),
	)

	response := ToOpportunityResponse(opp)
	return &response, nil
}

// UpdateCosts replaces the cost vector (and optionally the order value)
// and re-runs the gross-profit derivation
func (s *OpportunityService) UpdateCosts(ctx context.Context, id uuid.UUID, req UpdateOpportunityCostsRequest) (*OpportunityResponse, error) {
	opp, err := s.oppRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TotalOrderValue != nil {
		if err := opp.UpdateTotalOrderValue(*req.TotalOrderValue); err != nil {
			return nil, err
		}
	}
	if err := opp.UpdateCosts(req.Costs); err != nil {
		return nil, err
	}

	if err := s.oppRepo.Save(ctx, opp); err != nil {
		return nil, fmt.Errorf("failed to save opportunity: %w", err)
	}

	response := ToOpportunityResponse(opp)
	return &response, nil
}

// Qualify moves the opportunity to Qualified
func (s *OpportunityService) Qualify(ctx context.Context, id uuid.UUID, actor shared.Actor) (*OpportunityResponse, error) {
	return s.transition(ctx, id, func(opp *crm.Opportunity) error {
		return opp.Qualify(actor)
	})
}

// SendToDelivery moves the opportunity to Sent to Delivery
func (s *OpportunityService) SendToDelivery(ctx context.Context, id uuid.UUID, actor shared.Actor) (*OpportunityResponse, error) {
	return s.transition(ctx, id, func(opp *crm.Opportunity) error {
		return opp.SendToDelivery(actor)
	})
}

// MarkLost closes the opportunity with a reason
func (s *OpportunityService) MarkLost(ctx context.Context, id uuid.UUID, req MarkLostRequest, actor shared.Actor) (*OpportunityResponse, error) {
	return s.transition(ctx, id, func(opp *crm.Opportunity) error {
		return opp.MarkLost(req.Reason, actor)
	})
}

// Convert creates a deal from the opportunity's commercial inputs and
// moves the opportunity to Converted to Deal. The deal inherits the
// resolved cost vector; its margin derivation runs on creation.
func (s *OpportunityService) Convert(ctx context.Context, id uuid.UUID, actor shared.Actor) (*DealResponse, error) {
	opp, err := s.oppRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A converted opportunity keeps its single deal
	if opp.IsConverted() && opp.DealID != nil {
		deal, err := s.dealRepo.FindByID(ctx, *opp.DealID)
		if err != nil {
			return nil, err
		}
		response := ToDealResponse(deal)
		return &response, nil
	}

	dealNumber, err := s.dealRepo.GenerateDealNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate deal number: %w", err)
	}

	deal, err := crm.NewDeal(dealNumber, opp.ClientName, opp.TotalOrderValue, dealCostsFrom(opp.Costs), actor)
	if err != nil {
		return nil, err
	}
	deal.LinkOpportunity(opp.ID)

	if err := s.dealRepo.Save(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to save deal: %w", err)
	}

	if err := opp.Convert(deal.ID, actor); err != nil {
		return nil, err
	}
	if err := s.oppRepo.Save(ctx, opp); err != nil {
		return nil, fmt.Errorf("failed to save opportunity: %w", err)
	}

	s.publishEvents(ctx, deal)
	s.publishEvents(ctx, opp)

	s.logger.Info("opportunity converted to deal",
		zap.String("opportunity_id", opp.ID.String()),
		zap.String("adhoc_code", opp.AdhocCode),
		zap.String("deal_id", deal.ID.String()),
		zap.String("deal_number", deal.DealNumber),
	)

	response := ToDealResponse(deal)
	return &response, nil
}

// Get returns a single opportunity
func (s *OpportunityService) Get(ctx context.Context, id uuid.UUID) (*OpportunityResponse, error) {
	opp, err := s.oppRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOpportunityResponse(opp)
	return &response, nil
}

// List returns opportunities with pagination
func (s *OpportunityService) List(ctx context.Context, filter shared.Filter) ([]OpportunityResponse, int64, error) {
	opps, total, err := s.oppRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]OpportunityResponse, 0, len(opps))
	for i := range opps {
		responses = append(responses, ToOpportunityResponse(&opps[i]))
	}
	return responses, total, nil
}

func (s *OpportunityService) transition(ctx context.Context, id uuid.UUID, fn func(*crm.Opportunity) error) (*OpportunityResponse, error) {
	opp, err := s.oppRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(opp); err != nil {
		return nil, err
	}
	if err := s.oppRepo.Save(ctx, opp); err != nil {
		return nil, fmt.Errorf("failed to save opportunity: %w", err)
	}
	s.publishEvents(ctx, opp)

	response := ToOpportunityResponse(opp)
	return &response, nil
}

func (s *OpportunityService) publishEvents(ctx context.Context, aggregate interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	aggregate.ClearDomainEvents()
}

// dealCostsFrom maps the opportunity cost vector onto the deal cost
// vector after percentage resolution
func dealCostsFrom(c crm.OpportunityCosts) crm.DealCosts {
	return crm.DealCosts{
		Trainer:     c.TrainerPO,
		Lab:         c.LabPO,
		Content:     c.CourseMaterial.Add(c.Royalty),
		Logistics:   c.Accommodation.Add(c.PerDiem).Add(c.LocalConveyance),
		Travel:      c.Travel,
		Marketing:   c.MarketingAmount,
		Contingency: c.ContingencyAmount,
	}
}
