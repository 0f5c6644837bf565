package procurement

import (
	"context"
	"fmt"

	"github.com/gkt/backend/internal/domain/procurement"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/domain/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreatePayableRequest carries the inputs for a vendor payable
type CreatePayableRequest struct {
	VendorID        uuid.UUID           `json:"vendor_id" binding:"required"`
	VendorName      string              `json:"vendor_name" binding:"required"`
	VendorPAN       string              `json:"vendor_pan,omitempty"`
	VendorType      tax.VendorType      `json:"vendor_type" binding:"required"`
	NatureOfService tax.NatureOfService `json:"nature_of_service" binding:"required"`
	Amount          decimal.Decimal     `json:"amount" binding:"required"`
	PurchaseOrderID *uuid.UUID          `json:"purchase_order_id,omitempty"`
}

// HoldPayableRequest carries the hold reason
type HoldPayableRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RecordPaymentRequest carries a disbursement amount
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CancelPayableRequest carries the cancellation reason
type CancelPayableRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PayableService provides application-level payable operations.
// Creating a payable triggers the withholding cascade; releasing one
// assigns the payout reference used by the disbursement run.
type PayableService struct {
	payableRepo    procurement.PayableRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPayableService creates a new PayableService
func NewPayableService(payableRepo procurement.PayableRepository, logger *zap.Logger) *PayableService {
	return &PayableService{
		payableRepo: payableRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PayableService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a payable and publishes the event the tax cascade consumes
func (s *PayableService) Create(ctx context.Context, req CreatePayableRequest, actor shared.Actor) (*procurement.Payable, error) {
	payable, err := procurement.NewPayable(req.VendorID, req.VendorName, req.VendorPAN,
		req.VendorType, req.NatureOfService, req.Amount, actor)
	if err != nil {
		return nil, err
	}
	if req.PurchaseOrderID != nil {
		payable.LinkPurchaseOrder(*req.PurchaseOrderID)
	}

	if err := s.payableRepo.Save(ctx, payable); err != nil {
		return nil, fmt.Errorf("failed to save payable: %w", err)
	}
	s.publishEvents(ctx, payable)

	s.logger.Info("payable created",
		zap.String("payable_id", payable.ID.String()),
		zap.String("vendor_name", payable.VendorName),
		zap.String("amount", payable.AdjustedPayableAmount.String()),
	)
	return payable, nil
}

// Hold blocks disbursement of the payable
func (s *PayableService) Hold(ctx context.Context, id uuid.UUID, req HoldPayableRequest, actor shared.Actor) (*procurement.Payable, error) {
	return s.mutate(ctx, id, func(p *procurement.Payable) error {
		return p.Hold(req.Reason, actor)
	})
}

// Release clears any hold and assigns a payout reference if the payable
// does not have one yet
func (s *PayableService) Release(ctx context.Context, id uuid.UUID, actor shared.Actor) (*procurement.Payable, error) {
	payable, err := s.payableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := payable.Release(actor); err != nil {
		return nil, err
	}

	if payable.PayoutReference == "" {
		ref, err := s.payableRepo.GeneratePayoutReference(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to generate payout reference: %w", err)
		}
		payable.AssignPayoutReference(ref)
	}

	if err := s.payableRepo.Save(ctx, payable); err != nil {
		return nil, fmt.Errorf("failed to save payable: %w", err)
	}
	s.publishEvents(ctx, payable)

	s.logger.Info("payable released",
		zap.String("payable_id", payable.ID.String()),
		zap.String("payout_reference", payable.PayoutReference),
	)
	return payable, nil
}

// RecordPayment records a disbursement against the payable
func (s *PayableService) RecordPayment(ctx context.Context, id uuid.UUID, req RecordPaymentRequest, actor shared.Actor) (*procurement.Payable, error) {
	return s.mutate(ctx, id, func(p *procurement.Payable) error {
		return p.RecordPayment(req.Amount, actor)
	})
}

// Cancel voids the payable with a reason
func (s *PayableService) Cancel(ctx context.Context, id uuid.UUID, req CancelPayableRequest, actor shared.Actor) (*procurement.Payable, error) {
	return s.mutate(ctx, id, func(p *procurement.Payable) error {
		return p.Cancel(req.Reason, actor)
	})
}

// Get returns a single payable
func (s *PayableService) Get(ctx context.Context, id uuid.UUID) (*procurement.Payable, error) {
	return s.payableRepo.FindByID(ctx, id)
}

// List returns payables with pagination
func (s *PayableService) List(ctx context.Context, filter shared.Filter) ([]procurement.Payable, int64, error) {
	return s.payableRepo.FindAll(ctx, filter)
}

func (s *PayableService) mutate(ctx context.Context, id uuid.UUID, fn func(*procurement.Payable) error) (*procurement.Payable, error) {
	payable, err := s.payableRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(payable); err != nil {
		return nil, err
	}
	if err := s.payableRepo.Save(ctx, payable); err != nil {
		return nil, fmt.Errorf("failed to save payable: %w", err)
	}
	s.publishEvents(ctx, payable)
	return payable, nil
}

func (s *PayableService) publishEvents(ctx context.Context, payable *procurement.Payable) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range payable.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	payable.ClearDomainEvents()
}
