package persistence

import (
	"context"

	"github.com/gkt/backend/internal/domain/audit"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuditRepository implements audit.Repository using GORM.
// Both tables are append-only: the repository only ever inserts.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append inserts an audit trail entry
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.AuditEntry) error {
	model := models.AuditEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// AppendSystemEvent inserts a system event log row
func (r *GormAuditRepository) AppendSystemEvent(ctx context.Context, log *audit.SystemEventLog) error {
	model := models.SystemEventLogModelFromDomain(log)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByEntity returns the audit trail of one entity, oldest first
func (r *GormAuditRepository) FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]audit.AuditEntry, error) {
	var rows []models.AuditEntryModel
	if err := r.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("timestamp ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]audit.AuditEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, *rows[i].ToDomain())
	}
	return entries, nil
}

// FindByActor returns the audit trail of one actor with pagination, newest first
func (r *GormAuditRepository) FindByActor(ctx context.Context, actorID uuid.UUID, filter shared.Filter) ([]audit.AuditEntry, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.AuditEntryModel{}).
		Where("actor_id = ?", actorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.AuditEntryModel
	if err := query.
		Order("timestamp DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	entries := make([]audit.AuditEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, *rows[i].ToDomain())
	}
	return entries, total, nil
}

// FindSystemEvents lists system event log rows with pagination, newest first
func (r *GormAuditRepository) FindSystemEvents(ctx context.Context, filter shared.Filter) ([]audit.SystemEventLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SystemEventLogModel{})
	if severity, ok := filter.Filters["severity"]; ok {
		query = query.Where("severity = ?", severity)
	}
	if source, ok := filter.Filters["source"]; ok {
		query = query.Where("source = ?", source)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.SystemEventLogModel
	if err := query.
		Order("timestamp DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]audit.SystemEventLog, 0, len(rows))
	for i := range rows {
		logs = append(logs, *rows[i].ToDomain())
	}
	return logs, total, nil
}

// Ensure GormAuditRepository implements the interface
var _ audit.Repository = (*GormAuditRepository)(nil)
