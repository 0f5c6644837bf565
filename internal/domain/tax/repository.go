package tax

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxDeductionRepository defines persistence operations for withholding records
type TaxDeductionRepository interface {
	Save(ctx context.Context, deduction *TaxDeduction) error
	FindByID(ctx context.Context, id uuid.UUID) (*TaxDeduction, error)
	// FindByPayableID returns the 1:1 deduction for a payable, if any
	FindByPayableID(ctx context.Context, payableID uuid.UUID) (*TaxDeduction, error)
	ExistsByPayableID(ctx context.Context, payableID uuid.UUID) (bool, error)
	// SumPaymentsForVendor returns the vendor's cumulative payment total for
	// a financial year, used by the threshold comparison
	SumPaymentsForVendor(ctx context.Context, vendorID uuid.UUID, financialYear string) (decimal.Decimal, error)
}
