package billing

import (
	"context"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	Save(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	// CountByClientAndAmount backs the duplicate-invoice scan: it counts
	// invoices matching the given client name and invoice amount exactly.
	CountByClientAndAmount(ctx context.Context, clientName string, invoiceAmount decimal.Decimal) (int64, error)
	// ExistsBySourceDocumentID is the idempotency guard for
	// confirmation-document driven invoice creation
	ExistsBySourceDocumentID(ctx context.Context, docID uuid.UUID) (bool, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, int64, error)
	// GenerateInvoiceNumber produces the next INV-<year><2-digit month>-<4-digit sequence> code
	GenerateInvoiceNumber(ctx context.Context) (string, error)
}

// ReceivableRepository defines persistence operations for receivables
type ReceivableRepository interface {
	Save(ctx context.Context, receivable *Receivable) error
	FindByID(ctx context.Context, id uuid.UUID) (*Receivable, error)
	// ExistsByInvoiceID is the idempotency guard for the invoice cascade
	ExistsByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (bool, error)
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*Receivable, error)
	FindOverdue(ctx context.Context, filter shared.Filter) ([]Receivable, int64, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Receivable, int64, error)
}

// ComplianceReferenceGenerator produces the IRN and e-way-bill numbers
// attached to a generated invoice. References are opaque, not sequential.
type ComplianceReferenceGenerator interface {
	GenerateIRN(ctx context.Context) (string, error)
	GenerateEWayBillNumber(ctx context.Context) (string, error)
}
