package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gkt/backend/internal/domain/audit"
	"github.com/gkt/backend/internal/domain/billing"
	"github.com/gkt/backend/internal/domain/crm"
	"github.com/gkt/backend/internal/domain/delivery"
	"github.com/gkt/backend/internal/domain/governance"
	"github.com/gkt/backend/internal/domain/procurement"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/domain/tax"
	"go.uber.org/zap"
)

// EventAuditHandler appends one audit trail row per domain event. It
// subscribes to every lifecycle event so the trail covers all entity
// mutations without the services having to write rows themselves.
type EventAuditHandler struct {
	auditRepo audit.Repository
	logger    *zap.Logger
}

// NewEventAuditHandler creates a new audit trail handler
func NewEventAuditHandler(auditRepo audit.Repository, logger *zap.Logger) *EventAuditHandler {
	return &EventAuditHandler{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// EventTypes returns every event type the audit trail records
func (h *EventAuditHandler) EventTypes() []string {
	return []string{
		crm.EventTypeOpportunityCreated,
		crm.EventTypeOpportunityQualified,
		crm.EventTypeOpportunitySentToDelivery,
		crm.EventTypeOpportunityConverted,
		crm.EventTypeOpportunityLost,
		crm.EventTypeDealCreated,
		crm.EventTypeDealUpdated,
		crm.EventTypeDealApproved,
		crm.EventTypeDealRejected,
		delivery.EventTypeProgramCreated,
		delivery.EventTypeProgramClientSignedOff,
		procurement.EventTypePurchaseOrderCreated,
		procurement.EventTypePurchaseOrderIssued,
		procurement.EventTypePayableCreated,
		procurement.EventTypePayableHeld,
		procurement.EventTypePayableReleased,
		tax.EventTypeTaxDeductionRecorded,
		billing.EventTypeInvoiceCreated,
		billing.EventTypeInvoiceGenerated,
		billing.EventTypeInvoicePaid,
		billing.EventTypeReceivableCreated,
		billing.EventTypeReceivableSettled,
		governance.EventTypeGovernanceFlagged,
		governance.EventTypeFraudAlertRaised,
	}
}

// Handle appends an audit entry for the event. The payload is the
// serialized event itself, so the trail records what changed, not just
// that something changed.
func (h *EventAuditHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to serialize event payload: %w", err)
	}

	entry := audit.NewAuditEntry(event, payload)
	if err := h.auditRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	h.logger.Debug("audit entry appended",
		zap.String("action", entry.Action),
		zap.String("entity_type", entry.EntityType),
		zap.String("entity_id", entry.EntityID.String()),
		zap.String("actor_id", entry.ActorID.String()),
	)
	return nil
}

// Ensure EventAuditHandler implements shared.EventHandler
var _ shared.EventHandler = (*EventAuditHandler)(nil)
