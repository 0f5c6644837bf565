package procurement

import (
	"context"
	"fmt"

	"github.com/gkt/backend/internal/domain/crm"
	"github.com/gkt/backend/internal/domain/procurement"
	"github.com/gkt/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DealApprovedHandler handles DealApprovedEvent and creates the draft
// purchase order for the approved deal. The stub carries the deal's cost
// total; vendor assignment happens later through the PO service.
type DealApprovedHandler struct {
	poRepo procurement.PurchaseOrderRepository
	logger *zap.Logger
}

// NewDealApprovedHandler creates a new handler for deal approval events
func NewDealApprovedHandler(poRepo procurement.PurchaseOrderRepository, logger *zap.Logger) *DealApprovedHandler {
	return &DealApprovedHandler{
		poRepo: poRepo,
		logger: logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *DealApprovedHandler) EventTypes() []string {
	return []string{crm.EventTypeDealApproved}
}

// Handle creates a draft purchase order for the approved deal
func (h *DealApprovedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	approvedEvent, ok := event.(*crm.DealApprovedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			crm.EventTypeDealApproved, event.EventType())
	}

	h.logger.Info("processing deal approval for purchase order creation",
		zap.String("deal_id", approvedEvent.DealID.String()),
		zap.String("deal_number", approvedEvent.DealNumber),
		zap.String("total_cost", approvedEvent.TotalCost.String()),
	)

	// Idempotency check: the approval trigger may fire more than once
	exists, err := h.poRepo.ExistsByDealID(ctx, approvedEvent.DealID)
	if err != nil {
		return fmt.Errorf("failed to check existing purchase order: %w", err)
	}
	if exists {
		h.logger.Warn("purchase order already exists for deal, skipping",
			zap.String("deal_id", approvedEvent.DealID.String()),
			zap.String("deal_number", approvedEvent.DealNumber),
		)
		return nil
	}

	poNumber, err := h.poRepo.GeneratePONumber(ctx)
	if err != nil {
		return fmt.Errorf("failed to generate po number: %w", err)
	}

	po, err := procurement.NewPurchaseOrderStub(poNumber, approvedEvent.DealID, approvedEvent.TotalCost, shared.SystemActor)
	if err != nil {
		return fmt.Errorf("failed to create purchase order stub: %w", err)
	}

	if err := h.poRepo.Save(ctx, po); err != nil {
		return fmt.Errorf("failed to save purchase order: %w", err)
	}

	h.logger.Info("purchase order stub created for approved deal",
		zap.String("po_id", po.ID.String()),
		zap.String("po_number", po.PONumber),
		zap.String("deal_id", approvedEvent.DealID.String()),
		zap.String("approved_cost", po.ApprovedCost.String()),
	)
	return nil
}

// Ensure DealApprovedHandler implements shared.EventHandler
var _ shared.EventHandler = (*DealApprovedHandler)(nil)
