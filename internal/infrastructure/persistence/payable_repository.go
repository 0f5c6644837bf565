package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gkt/backend/internal/domain/procurement"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPayableRepository implements procurement.PayableRepository using GORM
type GormPayableRepository struct {
	db *gorm.DB
}

// NewGormPayableRepository creates a new GormPayableRepository
func NewGormPayableRepository(db *gorm.DB) *GormPayableRepository {
	return &GormPayableRepository{db: db}
}

// Save creates or updates a payable
func (r *GormPayableRepository) Save(ctx context.Context, payable *procurement.Payable) error {
	model := models.PayableModelFromDomain(payable)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a payable by ID
func (r *GormPayableRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Payable, error) {
	var model models.PayableModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByVendorID lists the payables owed to a vendor
func (r *GormPayableRepository) FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]procurement.Payable, error) {
	var rows []models.PayableModel
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	payables := make([]procurement.Payable, 0, len(rows))
	for i := range rows {
		payables = append(payables, *rows[i].ToDomain())
	}
	return payables, nil
}

// FindAll lists payables with pagination and optional filters
func (r *GormPayableRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.Payable, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PayableModel{})
	if filter.Search != "" {
		query = query.Where("vendor_name ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.PayableModel
	if err := applyListOptions(query, filter, PayableSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	payables := make([]procurement.Payable, 0, len(rows))
	for i := range rows {
		payables = append(payables, *rows[i].ToDomain())
	}
	return payables, total, nil
}

// GeneratePayoutReference produces the next VPR-<year>-<4-digit sequence> code.
// The sequence counts references assigned in the current calendar year.
func (r *GormPayableRepository) GeneratePayoutReference(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("VPR-%d-", year)

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PayableModel{}).
		Where("payout_reference LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

// Ensure GormPayableRepository implements the interface
var _ procurement.PayableRepository = (*GormPayableRepository)(nil)
