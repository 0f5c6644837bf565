package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/gkt/backend/internal/domain/billing"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ApplyReceivablePaymentRequest carries a collection amount
type ApplyReceivablePaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ReceivableService provides application-level receivable operations
type ReceivableService struct {
	receivableRepo billing.ReceivableRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewReceivableService creates a new ReceivableService
func NewReceivableService(receivableRepo billing.ReceivableRepository, logger *zap.Logger) *ReceivableService {
	return &ReceivableService{
		receivableRepo: receivableRepo,
		logger:         logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ReceivableService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ApplyPayment records a collection against the receivable
func (s *ReceivableService) ApplyPayment(ctx context.Context, id uuid.UUID, req ApplyReceivablePaymentRequest, actor shared.Actor) (*billing.Receivable, error) {
	receivable, err := s.receivableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := receivable.ApplyPayment(req.Amount, actor); err != nil {
		return nil, err
	}
	if err := s.receivableRepo.Save(ctx, receivable); err != nil {
		return nil, fmt.Errorf("failed to save receivable: %w", err)
	}
	s.publishEvents(ctx, receivable)

	s.logger.Info("payment applied to receivable",
		zap.String("receivable_id", receivable.ID.String()),
		zap.String("amount", req.Amount.String()),
		zap.String("outstanding", receivable.OutstandingAmount.String()),
		zap.String("status", receivable.Status.String()),
	)
	return receivable, nil
}

// RefreshAging re-derives aging for a single receivable
func (s *ReceivableService) RefreshAging(ctx context.Context, id uuid.UUID) (*billing.Receivable, error) {
	receivable, err := s.receivableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	receivable.RefreshAging(time.Now())
	if err := s.receivableRepo.Save(ctx, receivable); err != nil {
		return nil, fmt.Errorf("failed to save receivable: %w", err)
	}
	return receivable, nil
}

// RefreshAllAging re-derives aging across the ledger, typically from a
// scheduled job. Failures on individual rows are logged and skipped.
func (s *ReceivableService) RefreshAllAging(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	now := time.Now()
	refreshed := 0
	page := 1
	for {
		receivables, _, err := s.receivableRepo.FindAll(ctx, shared.Filter{Page: page, PageSize: batchSize, OrderBy: "created_at", OrderDir: "asc"})
		if err != nil {
			return refreshed, fmt.Errorf("failed to list receivables: %w", err)
		}
		if len(receivables) == 0 {
			return refreshed, nil
		}
		for i := range receivables {
			r := &receivables[i]
			r.RefreshAging(now)
			if err := s.receivableRepo.Save(ctx, r); err != nil {
				s.logger.Error("failed to save receivable during aging refresh",
					zap.String("receivable_id", r.ID.String()),
					zap.Error(err),
				)
				continue
			}
			refreshed++
		}
		if len(receivables) < batchSize {
			return refreshed, nil
		}
		page++
	}
}

// Get returns a single receivable
func (s *ReceivableService) Get(ctx context.Context, id uuid.UUID) (*billing.Receivable, error) {
	return s.receivableRepo.FindByID(ctx, id)
}

// List returns receivables with pagination
func (s *ReceivableService) List(ctx context.Context, filter shared.Filter) ([]billing.Receivable, int64, error) {
	return s.receivableRepo.FindAll(ctx, filter)
}

func (s *ReceivableService) publishEvents(ctx context.Context, receivable *billing.Receivable) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range receivable.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	receivable.ClearDomainEvents()
}
