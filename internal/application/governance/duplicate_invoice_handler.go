package governance

import (
	"context"
	"fmt"
	"time"

	"github.com/gkt/backend/internal/domain/billing"
	"github.com/gkt/backend/internal/domain/governance"
	"github.com/gkt/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DuplicateInvoiceHandler scans each new invoice for others with the same
// client name and amount. More than one match flags the invoice and
// raises a Duplicate Invoice fraud alert on the associated governance
// record.
type DuplicateInvoiceHandler struct {
	invoiceRepo    billing.InvoiceRepository
	governanceRepo governance.Repository
	logger         *zap.Logger
}

// NewDuplicateInvoiceHandler creates a new handler for the duplicate scan
func NewDuplicateInvoiceHandler(
	invoiceRepo billing.InvoiceRepository,
	governanceRepo governance.Repository,
	logger *zap.Logger,
) *DuplicateInvoiceHandler {
	return &DuplicateInvoiceHandler{
		invoiceRepo:    invoiceRepo,
		governanceRepo: governanceRepo,
		logger:         logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *DuplicateInvoiceHandler) EventTypes() []string {
	return []string{billing.EventTypeInvoiceCreated}
}

// Handle runs the duplicate scan for a newly created invoice
func (h *DuplicateInvoiceHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	createdEvent, ok := event.(*billing.InvoiceCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			billing.EventTypeInvoiceCreated, event.EventType())
	}

	count, err := h.invoiceRepo.CountByClientAndAmount(ctx, createdEvent.ClientName, createdEvent.InvoiceAmount)
	if err != nil {
		return fmt.Errorf("failed to run duplicate scan: %w", err)
	}
	if count <= 1 {
		return nil
	}

	invoice, err := h.invoiceRepo.FindByID(ctx, createdEvent.InvoiceID)
	if err != nil {
		return fmt.Errorf("failed to load invoice: %w", err)
	}

	if invoice.FlagDuplicate() {
		if err := h.invoiceRepo.Save(ctx, invoice); err != nil {
			return fmt.Errorf("failed to save flagged invoice: %w", err)
		}
	}

	record, err := h.findOrCreateRecord(ctx, invoice, event)
	if err != nil {
		return err
	}
	record.RaiseFraudAlert(governance.FraudAlertDuplicateInvoice, governance.DuplicateDetection{
		InvoiceID:  invoice.ID,
		ClientName: invoice.ClientName,
		Amount:     invoice.InvoiceAmount,
		MatchCount: count,
		DetectedAt: time.Now(),
	}, fmt.Sprintf("invoice %s matches %d invoices with identical client and amount", invoice.InvoiceNumber, count-1))

	if err := h.governanceRepo.Save(ctx, record); err != nil {
		return fmt.Errorf("failed to save governance record: %w", err)
	}

	h.logger.Warn("duplicate invoice detected",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("client_name", invoice.ClientName),
		zap.Int64("match_count", count),
	)
	return nil
}

// findOrCreateRecord resolves the governance record the alert attaches
// to. Invoices raised outside a deal get a standalone record.
func (h *DuplicateInvoiceHandler) findOrCreateRecord(ctx context.Context, invoice *billing.Invoice, event shared.DomainEvent) (*governance.Governance, error) {
	actor := shared.Actor{ID: event.ActorID(), Role: event.ActorRole()}
	if invoice.DealID == nil {
		return governance.NewGovernance(invoice.ID, actor), nil
	}

	exists, err := h.governanceRepo.ExistsByDealID(ctx, *invoice.DealID)
	if err != nil {
		return nil, fmt.Errorf("failed to check governance record: %w", err)
	}
	if !exists {
		return governance.NewGovernance(*invoice.DealID, actor), nil
	}
	record, err := h.governanceRepo.FindByDealID(ctx, *invoice.DealID)
	if err != nil {
		return nil, fmt.Errorf("failed to load governance record: %w", err)
	}
	return record, nil
}

// Ensure DuplicateInvoiceHandler implements shared.EventHandler
var _ shared.EventHandler = (*DuplicateInvoiceHandler)(nil)
