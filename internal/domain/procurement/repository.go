package procurement

import (
	"context"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseOrderRepository defines persistence operations for purchase orders
type PurchaseOrderRepository interface {
	Save(ctx context.Context, po *PurchaseOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindByPONumber(ctx context.Context, poNumber string) (*PurchaseOrder, error)
	// ExistsByDealID is the idempotency guard for the deal-approval cascade
	ExistsByDealID(ctx context.Context, dealID uuid.UUID) (bool, error)
	FindByDealID(ctx context.Context, dealID uuid.UUID) ([]PurchaseOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, int64, error)
	// GeneratePONumber produces the next PO-<year>-<4-digit sequence> code
	GeneratePONumber(ctx context.Context) (string, error)
}

// PayableRepository defines persistence operations for payables
type PayableRepository interface {
	Save(ctx context.Context, payable *Payable) error
	FindByID(ctx context.Context, id uuid.UUID) (*Payable, error)
	FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]Payable, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payable, int64, error)
	// GeneratePayoutReference produces the next VPR-<year>-<4-digit sequence> code
	GeneratePayoutReference(ctx context.Context) (string, error)
}
