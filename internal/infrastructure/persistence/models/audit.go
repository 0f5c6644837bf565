package models

import (
	"time"

	"github.com/gkt/backend/internal/domain/audit"
	"github.com/google/uuid"
)

// AuditEntryModel is the persistence model for one audit trail row.
// The table is append-only: rows are inserted and never updated.
type AuditEntryModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	Action     string    `gorm:"type:varchar(100);not null;index"`
	EntityType string    `gorm:"type:varchar(50);not null;index:idx_audit_entity"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_entity"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorRole  string    `gorm:"type:varchar(20);not null"`
	Changes    []byte    `gorm:"type:jsonb"`
	Timestamp  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// ToDomain converts the persistence model to a domain AuditEntry.
func (m *AuditEntryModel) ToDomain() *audit.AuditEntry {
	return &audit.AuditEntry{
		ID:         m.ID,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		ActorID:    m.ActorID,
		ActorRole:  m.ActorRole,
		Changes:    m.Changes,
		Timestamp:  m.Timestamp,
	}
}

// FromDomain populates the persistence model from a domain AuditEntry.
func (m *AuditEntryModel) FromDomain(e *audit.AuditEntry) {
	m.ID = e.ID
	m.Action = e.Action
	m.EntityType = e.EntityType
	m.EntityID = e.EntityID
	m.ActorID = e.ActorID
	m.ActorRole = e.ActorRole
	m.Changes = e.Changes
	m.Timestamp = e.Timestamp
}

// AuditEntryModelFromDomain creates a new persistence model from a domain AuditEntry.
func AuditEntryModelFromDomain(e *audit.AuditEntry) *AuditEntryModel {
	m := &AuditEntryModel{}
	m.FromDomain(e)
	return m
}

// SystemEventLogModel is the persistence model for one system event log row.
type SystemEventLogModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	EventType string    `gorm:"type:varchar(100);not null;index"`
	Source    string    `gorm:"type:varchar(100);not null;index"`
	Severity  string    `gorm:"type:varchar(10);not null;index"`
	Message   string    `gorm:"type:text;not null"`
	Details   []byte    `gorm:"type:jsonb"`
	Timestamp time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SystemEventLogModel) TableName() string {
	return "system_event_logs"
}

// ToDomain converts the persistence model to a domain SystemEventLog.
func (m *SystemEventLogModel) ToDomain() *audit.SystemEventLog {
	return &audit.SystemEventLog{
		ID:        m.ID,
		EventType: m.EventType,
		Source:    m.Source,
		Severity:  m.Severity,
		Message:   m.Message,
		Details:   m.Details,
		Timestamp: m.Timestamp,
	}
}

// FromDomain populates the persistence model from a domain SystemEventLog.
func (m *SystemEventLogModel) FromDomain(l *audit.SystemEventLog) {
	m.ID = l.ID
	m.EventType = l.EventType
	m.Source = l.Source
	m.Severity = l.Severity
	m.Message = l.Message
	m.Details = l.Details
	m.Timestamp = l.Timestamp
}

// SystemEventLogModelFromDomain creates a new persistence model from a domain SystemEventLog.
func SystemEventLogModelFromDomain(l *audit.SystemEventLog) *SystemEventLogModel {
	m := &SystemEventLogModel{}
	m.FromDomain(l)
	return m
}
