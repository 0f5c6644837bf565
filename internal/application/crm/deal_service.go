package crm

import (
	"context"
	"fmt"

	"github.com/gkt/backend/internal/domain/crm"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DealService provides application-level deal operations
type DealService struct {
	dealRepo       crm.DealRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewDealService creates a new DealService
func NewDealService(dealRepo crm.DealRepository, logger *zap.Logger) *DealService {
	return &DealService{
		dealRepo: dealRepo,
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *DealService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a deal directly, outside the opportunity conversion flow
func (s *DealService) Create(ctx context.Context, req CreateDealRequest, actor shared.Actor) (*DealResponse, error) {
	dealNumber, err := s.dealRepo.GenerateDealNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate deal number: %w", err)
	}

	deal, err := crm.NewDeal(dealNumber, req.ClientName, req.TotalOrderValue, req.Costs, actor)
	if err != nil {
		return nil, err
	}
	deal.Description = req.Description

	if err := s.dealRepo.Save(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to save deal: %w", err)
	}
	s.publishEvents(ctx, deal)

	s.logger.Info("deal created",
		zap.String("deal_id", deal.ID.String()),
		zap.String("deal_number", deal.DealNumber),
		zap.String("margin_threshold_status", deal.MarginThresholdStatus.String()),
	)

	response := ToDealResponse(deal)
	return &response, nil
}

// UpdateCommercials replaces the order value and cost vector, re-running
// the margin derivation. Blocked once the deal is decided.
func (s *DealService) UpdateCommercials(ctx context.Context, id uuid.UUID, req UpdateDealRequest, actor shared.Actor) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := deal.UpdateCommercials(req.TotalOrderValue, req.Costs, actor); err != nil {
		return nil, err
	}
	if err := s.dealRepo.Save(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to save deal: %w", err)
	}
	s.publishEvents(ctx, deal)

	response := ToDealResponse(deal)
	return &response, nil
}

// Approve records the approval decision and triggers the procurement cascade
func (s *DealService) Approve(ctx context.Context, id uuid.UUID, actor shared.Actor) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := deal.Approve(actor); err != nil {
		return nil, err
	}
	if err := s.dealRepo.Save(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to save deal: %w", err)
	}
	s.publishEvents(ctx, deal)

	s.logger.Info("deal approved",
		zap.String("deal_id", deal.ID.String()),
		zap.String("deal_number", deal.DealNumber),
		zap.String("approved_by", actor.ID.String()),
	)

	response := ToDealResponse(deal)
	return &response, nil
}

// Reject records the rejection decision with a reason
func (s *DealService) Reject(ctx context.Context, id uuid.UUID, req RejectDealRequest, actor shared.Actor) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := deal.Reject(req.Reason, actor); err != nil {
		return nil, err
	}
	if err := s.dealRepo.Save(ctx, deal); err != nil {
		return nil, fmt.Errorf("failed to save deal: %w", err)
	}
	s.publishEvents(ctx, deal)

	response := ToDealResponse(deal)
	return &response, nil
}

// Get returns a single deal
func (s *DealService) Get(ctx context.Context, id uuid.UUID) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToDealResponse(deal)
	return &response, nil
}

// List returns deals with pagination
func (s *DealService) List(ctx context.Context, filter shared.Filter) ([]DealResponse, int64, error) {
	deals, total, err := s.dealRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]DealResponse, 0, len(deals))
	for i := range deals {
		responses = append(responses, ToDealResponse(&deals[i]))
	}
	return responses, total, nil
}

func (s *DealService) publishEvents(ctx context.Context, deal *crm.Deal) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range deal.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	deal.ClearDomainEvents()
}
