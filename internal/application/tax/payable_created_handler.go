package tax

import (
	"context"
	"fmt"
	"time"

	"github.com/gkt/backend/internal/domain/procurement"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/domain/tax"
	"go.uber.org/zap"
)

// PayableCreatedHandler handles PayableCreatedEvent by running the
// withholding computation, persisting the deduction record and writing
// the net amount back onto the payable.
type PayableCreatedHandler struct {
	deductionRepo tax.TaxDeductionRepository
	payableRepo   procurement.PayableRepository
	logger        *zap.Logger
}

// NewPayableCreatedHandler creates a new handler for payable creation events
func NewPayableCreatedHandler(
	deductionRepo tax.TaxDeductionRepository,
	payableRepo procurement.PayableRepository,
	logger *zap.Logger,
) *PayableCreatedHandler {
	return &PayableCreatedHandler{
		deductionRepo: deductionRepo,
		payableRepo:   payableRepo,
		logger:        logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *PayableCreatedHandler) EventTypes() []string {
	return []string{procurement.EventTypePayableCreated}
}

// Handle computes and records the withholding for a new payable
func (h *PayableCreatedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	createdEvent, ok := event.(*procurement.PayableCreatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			procurement.EventTypePayableCreated, event.EventType())
	}

	h.logger.Info("processing payable for withholding",
		zap.String("payable_id", createdEvent.PayableID.String()),
		zap.String("vendor_name", createdEvent.VendorName),
		zap.String("amount", createdEvent.Amount.String()),
	)

	// Idempotency check: one deduction record per payable
	exists, err := h.deductionRepo.ExistsByPayableID(ctx, createdEvent.PayableID)
	if err != nil {
		return fmt.Errorf("failed to check existing deduction: %w", err)
	}
	if exists {
		h.logger.Warn("deduction already recorded for payable, skipping",
			zap.String("payable_id", createdEvent.PayableID.String()),
		)
		return nil
	}

	financialYear := tax.FinancialYear(time.Now())
	cumulative, err := h.deductionRepo.SumPaymentsForVendor(ctx, createdEvent.VendorID, financialYear)
	if err != nil {
		return fmt.Errorf("failed to sum vendor payments: %w", err)
	}

	result := tax.Compute(tax.Input{
		VendorType:       createdEvent.VendorType,
		NatureOfService:  createdEvent.NatureOfService,
		PaymentAmount:    createdEvent.Amount,
		PANAvailable:     createdEvent.PANAvailable,
		YearlyCumulative: cumulative,
	})

	actor := shared.Actor{ID: event.ActorID(), Role: event.ActorRole()}
	deduction, err := tax.NewTaxDeduction(createdEvent.PayableID, createdEvent.VendorID,
		createdEvent.VendorName, financialYear, result, actor)
	if err != nil {
		return fmt.Errorf("failed to create deduction record: %w", err)
	}

	if err := h.deductionRepo.Save(ctx, deduction); err != nil {
		return fmt.Errorf("failed to save deduction record: %w", err)
	}

	// Write the net amount back so the payable's outstanding balance
	// reflects the withholding
	payable, err := h.payableRepo.FindByID(ctx, createdEvent.PayableID)
	if err != nil {
		return fmt.Errorf("failed to load payable: %w", err)
	}
	if err := payable.ApplyWithholding(result.NetPayableAmount); err != nil {
		return fmt.Errorf("failed to apply withholding: %w", err)
	}
	if err := h.payableRepo.Save(ctx, payable); err != nil {
		return fmt.Errorf("failed to save payable: %w", err)
	}

	h.logger.Info("withholding recorded for payable",
		zap.String("payable_id", createdEvent.PayableID.String()),
		zap.String("section", string(result.Section)),
		zap.String("tds_amount", result.TDSAmount.String()),
		zap.String("net_payable", result.NetPayableAmount.String()),
		zap.String("compliance_status", string(result.ComplianceStatus)),
	)
	return nil
}

// Ensure PayableCreatedHandler implements shared.EventHandler
var _ shared.EventHandler = (*PayableCreatedHandler)(nil)
