package billing

import (
	"context"
	"fmt"

	"github.com/gkt/backend/internal/domain/billing"
	"github.com/gkt/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InvoiceCreatedHandler handles InvoiceCreatedEvent and opens exactly one
// receivable per invoice. The invoice is re-read from the repository so
// the receivable copies engine-computed totals, not event-time figures.
type InvoiceCreatedHandler struct {
	invoiceRepo    billing.InvoiceRepository
	receivableRepo billing.ReceivableRepository
	logger         *zap.Logger
}

// NewInvoiceCreatedHandler creates a new handler for invoice creation events
func NewInvoiceCreatedHandler(
	invoiceRepo billing.InvoiceRepository,
	receivableRepo billing.ReceivableRepository,
	logger *zap.Logger,
) *InvoiceCreatedHandler {
	return &InvoiceCreatedHandler{
		invoiceRepo:    invoiceRepo,
		receivableRepo: receivableRepo,
		logger:         logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *InvoiceCreatedHandler) EventTypes() []string {
	return []string{billing.EventTypeInvoiceCreated}
}

// Handle creates the receivable for a newly created invoice
func (h *InvoiceCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	createdEvent, ok := event.(*billing.InvoiceCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			billing.EventTypeInvoiceCreated, event.EventType())
	}

	// Idempotency check: one receivable per invoice
	exists, err := h.receivableRepo.ExistsByInvoiceID(ctx, createdEvent.InvoiceID)
	if err != nil {
		return fmt.Errorf("failed to check existing receivable: %w", err)
	}
	if exists {
		h.logger.Warn("receivable already exists for invoice, skipping",
			zap.String("invoice_id", createdEvent.InvoiceID.String()),
			zap.String("invoice_number", createdEvent.InvoiceNumber),
		)
		return nil
	}

	// Re-read the persisted invoice for the engine-computed totals
	invoice, err := h.invoiceRepo.FindByID(ctx, createdEvent.InvoiceID)
	if err != nil {
		return fmt.Errorf("failed to load invoice: %w", err)
	}

	actor := shared.Actor{ID: event.ActorID(), Role: event.ActorRole()}
	receivable, err := billing.NewReceivable(&invoice.ID, invoice.ClientName, invoice.TotalAmount, invoice.DueDate, actor)
	if err != nil {
		return fmt.Errorf("failed to create receivable: %w", err)
	}

	if err := h.receivableRepo.Save(ctx, receivable); err != nil {
		return fmt.Errorf("failed to save receivable: %w", err)
	}

	h.logger.Info("receivable created for invoice",
		zap.String("receivable_id", receivable.ID.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("outstanding_amount", receivable.OutstandingAmount.String()),
	)
	return nil
}

// Ensure InvoiceCreatedHandler implements shared.EventHandler
var _ shared.EventHandler = (*InvoiceCreatedHandler)(nil)
