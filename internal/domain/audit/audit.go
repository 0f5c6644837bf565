package audit

import (
	"context"
	"time"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AuditEntry is one append-only row in the audit trail. Entries are
// written once and never updated or deleted.
type AuditEntry struct {
	ID         uuid.UUID `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   uuid.UUID `json:"entity_id"`
	ActorID    uuid.UUID `json:"actor_id"`
	ActorRole  string    `json:"actor_role"`
	// Changes holds the serialized event payload describing what changed
	Changes   []byte    `json:"changes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAuditEntry builds an entry from a domain event and its serialized payload
func NewAuditEntry(event shared.DomainEvent, payload []byte) *AuditEntry {
	return &AuditEntry{
		ID:         uuid.New(),
		Action:     event.EventType(),
		EntityType: event.AggregateType(),
		EntityID:   event.AggregateID(),
		ActorID:    event.ActorID(),
		ActorRole:  string(event.ActorRole()),
		Changes:    payload,
		Timestamp:  event.OccurredAt(),
	}
}

// SystemEventLog is one append-only row recording a system-level
// occurrence (cascade execution, handler failure, external call outcome)
type SystemEventLog struct {
	ID        uuid.UUID `json:"id"`
	EventType string    `json:"event_type"`
	Source    string    `json:"source"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Details   []byte    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Severity levels for system event log rows
const (
	SeverityInfo  = "INFO"
	SeverityWarn  = "WARN"
	SeverityError = "ERROR"
)

// NewSystemEventLog creates a system event log row
func NewSystemEventLog(eventType, source, severity, message string, details []byte) *SystemEventLog {
	return &SystemEventLog{
		ID:        uuid.New(),
		EventType: eventType,
		Source:    source,
		Severity:  severity,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// Repository defines the append-only persistence operations for the
// audit trail. There are deliberately no update or delete methods.
type Repository interface {
	Append(ctx context.Context, entry *AuditEntry) error
	AppendSystemEvent(ctx context.Context, log *SystemEventLog) error
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]AuditEntry, error)
	FindByActor(ctx context.Context, actorID uuid.UUID, filter shared.Filter) ([]AuditEntry, int64, error)
	FindSystemEvents(ctx context.Context, filter shared.Filter) ([]SystemEventLog, int64, error)
}
