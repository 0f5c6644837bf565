package audit

import (
	"context"
	"fmt"

	"github.com/gkt/backend/internal/domain/audit"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditService exposes read access to the audit trail and lets
// infrastructure components record system-level events.
type AuditService struct {
	auditRepo audit.Repository
	logger    *zap.Logger
}

// NewAuditService creates a new audit service
func NewAuditService(auditRepo audit.Repository, logger *zap.Logger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// GetEntityTrail returns the audit entries recorded for one entity
func (s *AuditService) GetEntityTrail(ctx context.Context, entityType string, entityID uuid.UUID) ([]audit.AuditEntry, error) {
	entries, err := s.auditRepo.FindByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load audit trail: %w", err)
	}
	return entries, nil
}

// GetActorTrail returns the audit entries recorded for one actor
func (s *AuditService) GetActorTrail(ctx context.Context, actorID uuid.UUID, filter shared.Filter) ([]audit.AuditEntry, int64, error) {
	entries, total, err := s.auditRepo.FindByActor(ctx, actorID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load audit trail: %w", err)
	}
	return entries, total, nil
}

// ListSystemEvents returns system event log rows
func (s *AuditService) ListSystemEvents(ctx context.Context, filter shared.Filter) ([]audit.SystemEventLog, int64, error) {
	logs, total, err := s.auditRepo.FindSystemEvents(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load system events: %w", err)
	}
	return logs, total, nil
}

// RecordSystemEvent appends a system event log row. Failures are logged
// but not returned: the trail must never break the flow that reports to it.
func (s *AuditService) RecordSystemEvent(ctx context.Context, eventType, source, severity, message string, details []byte) {
	log := audit.NewSystemEventLog(eventType, source, severity, message, details)
	if err := s.auditRepo.AppendSystemEvent(ctx, log); err != nil {
		s.logger.Error("failed to append system event log",
			zap.String("event_type", eventType),
			zap.String("source", source),
			zap.Error(err),
		)
	}
}
