package persistence

import (
	"context"
	"errors"

	"github.com/gkt/backend/internal/domain/billing"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReceivableRepository implements billing.ReceivableRepository using GORM
type GormReceivableRepository struct {
	db *gorm.DB
}

// NewGormReceivableRepository creates a new GormReceivableRepository
func NewGormReceivableRepository(db *gorm.DB) *GormReceivableRepository {
	return &GormReceivableRepository{db: db}
}

// Save creates or updates a receivable
func (r *GormReceivableRepository) Save(ctx context.Context, receivable *billing.Receivable) error {
	model := models.ReceivableModelFromDomain(receivable)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a receivable by ID
func (r *GormReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Receivable, error) {
	var model models.ReceivableModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByInvoiceID reports whether a receivable was already opened for the invoice
func (r *GormReceivableRepository) ExistsByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReceivableModel{}).
		Where("invoice_id = ?", invoiceID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByInvoiceID finds the receivable opened for an invoice
func (r *GormReceivableRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*billing.Receivable, error) {
	var model models.ReceivableModel
	if err := r.db.WithContext(ctx).First(&model, "invoice_id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOverdue lists receivables past their due date with an outstanding balance
func (r *GormReceivableRepository) FindOverdue(ctx context.Context, filter shared.Filter) ([]billing.Receivable, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ReceivableModel{}).
		Where("status = ?", billing.ReceivableStatusOverdue)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ReceivableModel
	if err := applyListOptions(query, filter, ReceivableSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	receivables := make([]billing.Receivable, 0, len(rows))
	for i := range rows {
		receivables = append(receivables, *rows[i].ToDomain())
	}
	return receivables, total, nil
}

// FindAll lists receivables with pagination and optional filters
func (r *GormReceivableRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Receivable, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReceivableModel{})
	if filter.Search != "" {
		query = query.Where("client_name ILIKE ?", "%"+filter.Search+"%")
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if bucket, ok := filter.Filters["aging_bucket"]; ok {
		query = query.Where("aging_bucket = ?", bucket)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.ReceivableModel
	if err := applyListOptions(query, filter, ReceivableSortFields).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	receivables := make([]billing.Receivable, 0, len(rows))
	for i := range rows {
		receivables = append(receivables, *rows[i].ToDomain())
	}
	return receivables, total, nil
}

// Ensure GormReceivableRepository implements the interface
var _ billing.ReceivableRepository = (*GormReceivableRepository)(nil)
