package persistence

import (
	"context"
	"errors"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/domain/tax"
	"github.com/gkt/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormTaxDeductionRepository implements tax.TaxDeductionRepository using GORM
type GormTaxDeductionRepository struct {
	db *gorm.DB
}

// NewGormTaxDeductionRepository creates a new GormTaxDeductionRepository
func NewGormTaxDeductionRepository(db *gorm.DB) *GormTaxDeductionRepository {
	return &GormTaxDeductionRepository{db: db}
}

// Save creates or updates a withholding record
func (r *GormTaxDeductionRepository) Save(ctx context.Context, deduction *tax.TaxDeduction) error {
	model := models.TaxDeductionModelFromDomain(deduction)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a withholding record by ID
func (r *GormTaxDeductionRepository) FindByID(ctx context.Context, id uuid.UUID) (*tax.TaxDeduction, error) {
	var model models.TaxDeductionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPayableID returns the 1:1 withholding record for a payable
func (r *GormTaxDeductionRepository) FindByPayableID(ctx context.Context, payableID uuid.UUID) (*tax.TaxDeduction, error) {
	var model models.TaxDeductionModel
	if err := r.db.WithContext(ctx).First(&model, "payable_id = ?", payableID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByPayableID reports whether a withholding record exists for the payable
func (r *GormTaxDeductionRepository) ExistsByPayableID(ctx context.Context, payableID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TaxDeductionModel{}).
		Where("payable_id = ?", payableID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SumPaymentsForVendor returns the vendor's cumulative payment total for a
// financial year, used by the statutory threshold comparison
func (r *GormTaxDeductionRepository) SumPaymentsForVendor(ctx context.Context, vendorID uuid.UUID, financialYear string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.db.WithContext(ctx).
		Model(&models.TaxDeductionModel{}).
		Select("COALESCE(SUM(payment_amount), 0)").
		Where("vendor_id = ? AND financial_year = ?", vendorID, financialYear).
		Scan(&sum).Error; err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// Ensure GormTaxDeductionRepository implements the interface
var _ tax.TaxDeductionRepository = (*GormTaxDeductionRepository)(nil)
