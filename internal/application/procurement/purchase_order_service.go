package procurement

import (
	"context"
	"fmt"

	"github.com/gkt/backend/internal/domain/procurement"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreatePurchaseOrderRequest carries the inputs for a vendor purchase order
type CreatePurchaseOrderRequest struct {
	VendorName   string          `json:"vendor_name" binding:"required"`
	Description  string          `json:"description,omitempty"`
	ApprovedCost decimal.Decimal `json:"approved_cost" binding:"required"`
	DealID       *uuid.UUID      `json:"deal_id,omitempty"`
}

// UpdatePOCostsRequest adjusts the approved and payable amounts
type UpdatePOCostsRequest struct {
	ApprovedCost          decimal.Decimal `json:"approved_cost" binding:"required"`
	AdjustedPayableAmount decimal.Decimal `json:"adjusted_payable_amount"`
}

// AssignVendorRequest fills in vendor details on a cascade-created stub
type AssignVendorRequest struct {
	VendorName  string `json:"vendor_name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// CancelPORequest carries the cancellation reason
type CancelPORequest struct {
	Reason string `json:"reason" binding:"required"`
}

// PurchaseOrderService provides application-level purchase order operations
type PurchaseOrderService struct {
	poRepo         procurement.PurchaseOrderRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(poRepo procurement.PurchaseOrderRepository, logger *zap.Logger) *PurchaseOrderService {
	return &PurchaseOrderService{
		poRepo: poRepo,
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a purchase order directly, outside the approval cascade
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest, actor shared.Actor) (*procurement.PurchaseOrder, error) {
	poNumber, err := s.poRepo.GeneratePONumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate po number: %w", err)
	}

	po, err := procurement.NewPurchaseOrder(poNumber, req.VendorName, req.ApprovedCost, actor)
	if err != nil {
		return nil, err
	}
	if req.Description != "" {
		if err := po.UpdateVendor(req.VendorName, req.Description); err != nil {
			return nil, err
		}
	}
	if req.DealID != nil {
		po.LinkDeal(*req.DealID)
	}

	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, fmt.Errorf("failed to save purchase order: %w", err)
	}
	s.publishEvents(ctx, po)

	s.logger.Info("purchase order created",
		zap.String("po_id", po.ID.String()),
		zap.String("po_number", po.PONumber),
	)
	return po, nil
}

// AssignVendor fills in vendor details, typically on a cascade-created stub
func (s *PurchaseOrderService) AssignVendor(ctx context.Context, id uuid.UUID, req AssignVendorRequest) (*procurement.PurchaseOrder, error) {
	return s.mutate(ctx, id, func(po *procurement.PurchaseOrder) error {
		return po.UpdateVendor(req.VendorName, req.Description)
	})
}

// UpdateCosts adjusts the approved cost and payable amount
func (s *PurchaseOrderService) UpdateCosts(ctx context.Context, id uuid.UUID, req UpdatePOCostsRequest) (*procurement.PurchaseOrder, error) {
	return s.mutate(ctx, id, func(po *procurement.PurchaseOrder) error {
		return po.UpdateCosts(req.ApprovedCost, req.AdjustedPayableAmount)
	})
}

// Approve moves the purchase order to Approved
func (s *PurchaseOrderService) Approve(ctx context.Context, id uuid.UUID, actor shared.Actor) (*procurement.PurchaseOrder, error) {
	return s.mutate(ctx, id, func(po *procurement.PurchaseOrder) error {
		return po.Approve(actor)
	})
}

// Issue releases the purchase order to the vendor
func (s *PurchaseOrderService) Issue(ctx context.Context, id uuid.UUID, actor shared.Actor) (*procurement.PurchaseOrder, error) {
	return s.mutate(ctx, id, func(po *procurement.PurchaseOrder) error {
		return po.Issue(actor)
	})
}

// Complete closes out a fulfilled purchase order
func (s *PurchaseOrderService) Complete(ctx context.Context, id uuid.UUID, actor shared.Actor) (*procurement.PurchaseOrder, error) {
	return s.mutate(ctx, id, func(po *procurement.PurchaseOrder) error {
		return po.Complete(actor)
	})
}

// Cancel voids the purchase order with a reason
func (s *PurchaseOrderService) Cancel(ctx context.Context, id uuid.UUID, req CancelPORequest, actor shared.Actor) (*procurement.PurchaseOrder, error) {
	return s.mutate(ctx, id, func(po *procurement.PurchaseOrder) error {
		return po.Cancel(req.Reason, actor)
	})
}

// Get returns a single purchase order
func (s *PurchaseOrderService) Get(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	return s.poRepo.FindByID(ctx, id)
}

// List returns purchase orders with pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseOrder, int64, error) {
	return s.poRepo.FindAll(ctx, filter)
}

func (s *PurchaseOrderService) mutate(ctx context.Context, id uuid.UUID, fn func(*procurement.PurchaseOrder) error) (*procurement.PurchaseOrder, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(po); err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, fmt.Errorf("failed to save purchase order: %w", err)
	}
	s.publishEvents(ctx, po)
	return po, nil
}

func (s *PurchaseOrderService) publishEvents(ctx context.Context, po *procurement.PurchaseOrder) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range po.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	po.ClearDomainEvents()
}
