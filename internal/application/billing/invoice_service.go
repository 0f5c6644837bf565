package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/gkt/backend/internal/domain/billing"
	"github.com/gkt/backend/internal/domain/delivery"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateInvoiceRequest carries the inputs for raising an invoice
type CreateInvoiceRequest struct {
	ClientName       string          `json:"client_name" binding:"required"`
	InvoiceAmount    decimal.Decimal `json:"invoice_amount" binding:"required"`
	GSTPercent       decimal.Decimal `json:"gst_percent"`
	DueDate          time.Time       `json:"due_date" binding:"required"`
	ProgramID        *uuid.UUID      `json:"program_id,omitempty"`
	SourceDocumentID *uuid.UUID      `json:"source_document_id,omitempty"`
}

// CancelInvoiceRequest carries the cancellation reason
type CancelInvoiceRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// InvoiceService provides application-level invoice operations.
// Tax computation prefers the external calculator when one is wired in
// and falls back to the local GST derivation when it fails.
type InvoiceService struct {
	invoiceRepo    billing.InvoiceRepository
	programRepo    delivery.ProgramRepository
	taxCalculator  billing.TaxCalculator
	referenceGen   billing.ComplianceReferenceGenerator
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	programRepo delivery.ProgramRepository,
	referenceGen billing.ComplianceReferenceGenerator,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		programRepo:  programRepo,
		referenceGen: referenceGen,
		logger:       logger,
	}
}

// SetTaxCalculator wires in an external tax calculator
func (s *InvoiceService) SetTaxCalculator(calc billing.TaxCalculator) {
	s.taxCalculator = calc
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *InvoiceService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create raises an invoice. A referenced program must have completed its
// sign-off cascade before it can be invoiced. When the request references
// a source confirmation document, creation is idempotent per document.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest, actor shared.Actor) (*billing.Invoice, error) {
	if req.ProgramID != nil {
		program, err := s.programRepo.FindByID(ctx, *req.ProgramID)
		if err != nil {
			return nil, fmt.Errorf("failed to load program: %w", err)
		}
		if !program.InvoiceEligible {
			return nil, shared.NewDomainError("PROGRAM_NOT_INVOICE_ELIGIBLE",
				"program has not received client sign-off required for invoicing")
		}
	}

	if req.SourceDocumentID != nil {
		exists, err := s.invoiceRepo.ExistsBySourceDocumentID(ctx, *req.SourceDocumentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing invoice: %w", err)
		}
		if exists {
			return nil, shared.NewDomainError("INVOICE_ALREADY_EXISTS",
				"an invoice already exists for this source document")
		}
	}

	invoiceNumber, err := s.invoiceRepo.GenerateInvoiceNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice number: %w", err)
	}

	invoice, err := billing.NewInvoice(invoiceNumber, req.ClientName, req.InvoiceAmount, req.GSTPercent, req.DueDate, actor)
	if err != nil {
		return nil, err
	}
	if req.ProgramID != nil {
		invoice.LinkProgram(*req.ProgramID)
	}
	if req.SourceDocumentID != nil {
		invoice.LinkSourceDocument(*req.SourceDocumentID)
	}

	// External calculator wins when it succeeds; the GST derivation
	// already ran in the constructor as the deterministic fallback
	if s.taxCalculator != nil {
		taxAmount, err := s.taxCalculator.CalculateTax(ctx, req.InvoiceAmount, req.GSTPercent)
		if err != nil {
			s.logger.Warn("external tax calculation failed, using gst derivation",
				zap.String("invoice_number", invoiceNumber),
				zap.Error(err),
			)
		} else if err := invoice.ApplyExternalTax(taxAmount); err != nil {
			return nil, err
		}
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	s.publishEvents(ctx, invoice)

	s.logger.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("total_amount", invoice.TotalAmount.String()),
	)
	return invoice, nil
}

// Generate moves the invoice out of draft, assigning IRN and e-way-bill numbers
func (s *InvoiceService) Generate(ctx context.Context, id uuid.UUID, actor shared.Actor) (*billing.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	irn, err := s.referenceGen.GenerateIRN(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate irn: %w", err)
	}
	eway, err := s.referenceGen.GenerateEWayBillNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate eway bill number: %w", err)
	}

	if err := invoice.Generate(irn, eway, actor); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	s.publishEvents(ctx, invoice)
	return invoice, nil
}

// MarkSent records dispatch to the client
func (s *InvoiceService) MarkSent(ctx context.Context, id uuid.UUID, actor shared.Actor) (*billing.Invoice, error) {
	return s.mutate(ctx, id, func(inv *billing.Invoice) error { return inv.MarkSent(actor) })
}

// MarkPaid settles the invoice
func (s *InvoiceService) MarkPaid(ctx context.Context, id uuid.UUID, actor shared.Actor) (*billing.Invoice, error) {
	return s.mutate(ctx, id, func(inv *billing.Invoice) error { return inv.MarkPaid(actor) })
}

// Cancel voids the invoice
func (s *InvoiceService) Cancel(ctx context.Context, id uuid.UUID, req CancelInvoiceRequest, actor shared.Actor) (*billing.Invoice, error) {
	return s.mutate(ctx, id, func(inv *billing.Invoice) error { return inv.Cancel(req.Reason, actor) })
}

// Get returns a single invoice
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	return s.invoiceRepo.FindByID(ctx, id)
}

// List returns invoices with pagination
func (s *InvoiceService) List(ctx context.Context, filter shared.Filter) ([]billing.Invoice, int64, error) {
	return s.invoiceRepo.FindAll(ctx, filter)
}

func (s *InvoiceService) mutate(ctx context.Context, id uuid.UUID, fn func(*billing.Invoice) error) (*billing.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(invoice); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	s.publishEvents(ctx, invoice)
	return invoice, nil
}

func (s *InvoiceService) publishEvents(ctx context.Context, invoice *billing.Invoice) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range invoice.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	invoice.ClearDomainEvents()
}
