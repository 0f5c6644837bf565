package crm

import (
	"context"
	"fmt"

	"github.com/gkt/backend/internal/domain/crm"
	"github.com/gkt/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OpportunityConvertedHandler handles OpportunityConvertedEvent and
// ensures the back-reference from opportunity to deal is persisted.
// The trigger may fire more than once; LinkDeal is a no-op when the
// reference is already set.
type OpportunityConvertedHandler struct {
	oppRepo crm.OpportunityRepository
	logger  *zap.Logger
}

// NewOpportunityConvertedHandler creates a new handler for opportunity conversion events
func NewOpportunityConvertedHandler(oppRepo crm.OpportunityRepository, logger *zap.Logger) *OpportunityConvertedHandler {
	return &OpportunityConvertedHandler{
		oppRepo: oppRepo,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OpportunityConvertedHandler) EventTypes() []string {
	return []string{crm.EventTypeOpportunityConverted}
}

// Handle links the created deal back to its source opportunity
func (h *OpportunityConvertedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	convertedEvent, ok := event.(*crm.OpportunityConvertedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			crm.EventTypeOpportunityConverted, event.EventType())
	}

	opp, err := h.oppRepo.FindByID(ctx, convertedEvent.OpportunityID)
	if err != nil {
		h.logger.Error("failed to load opportunity for deal backlink",
			zap.String("opportunity_id", convertedEvent.OpportunityID.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to load opportunity: %w", err)
	}

	if !opp.LinkDeal(convertedEvent.DealID) {
		h.logger.Debug("opportunity already linked to deal, skipping",
			zap.String("opportunity_id", opp.ID.String()),
			zap.String("deal_id", convertedEvent.DealID.String()),
		)
		return nil
	}

	if err := h.oppRepo.Save(ctx, opp); err != nil {
		return fmt.Errorf("failed to save opportunity backlink: %w", err)
	}

	h.logger.Info("deal linked back to opportunity",
		zap.String("opportunity_id", opp.ID.String()),
		zap.String("adhoc_code", opp.AdhocCode),
		zap.String("deal_id", convertedEvent.DealID.String()),
	)
	return nil
}

// Ensure OpportunityConvertedHandler implements shared.EventHandler
var _ shared.EventHandler = (*OpportunityConvertedHandler)(nil)
