package governance

import (
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AggregateTypeGovernance is the aggregate type name for governance records
const AggregateTypeGovernance = "Governance"

// Event type constants
const (
	EventTypeGovernanceFlagged = "GovernanceFlagged"
	EventTypeFraudAlertRaised  = "FraudAlertRaised"
)

// GovernanceFlaggedEvent is raised when an evaluation sets the
// loss-making flag or requires director approval
type GovernanceFlaggedEvent struct {
	shared.BaseDomainEvent
	GovernanceID             uuid.UUID `json:"governance_id"`
	DealID                   uuid.UUID `json:"deal_id"`
	RiskLevel                RiskLevel `json:"risk_level"`
	LossMakingProjectFlag    bool      `json:"loss_making_project_flag"`
	DirectorApprovalRequired bool      `json:"director_approval_required"`
}

// NewGovernanceFlaggedEvent creates a new GovernanceFlaggedEvent
func NewGovernanceFlaggedEvent(g *Governance, actor shared.Actor) *GovernanceFlaggedEvent {
	return &GovernanceFlaggedEvent{
		BaseDomainEvent:          shared.NewBaseDomainEvent(EventTypeGovernanceFlagged, AggregateTypeGovernance, g.ID, actor),
		GovernanceID:             g.ID,
		DealID:                   g.DealID,
		RiskLevel:                g.RiskLevel,
		LossMakingProjectFlag:    g.LossMakingProjectFlag,
		DirectorApprovalRequired: g.DirectorApprovalRequired,
	}
}

// EventType returns the event type name
func (e *GovernanceFlaggedEvent) EventType() string {
	return EventTypeGovernanceFlagged
}

// FraudAlertRaisedEvent is raised when a fraud pattern is detected
type FraudAlertRaisedEvent struct {
	shared.BaseDomainEvent
	GovernanceID uuid.UUID      `json:"governance_id"`
	DealID       uuid.UUID      `json:"deal_id"`
	AlertType    FraudAlertType `json:"alert_type"`
	InvoiceID    uuid.UUID      `json:"invoice_id"`
}

// NewFraudAlertRaisedEvent creates a new FraudAlertRaisedEvent
func NewFraudAlertRaisedEvent(g *Governance, alertType FraudAlertType, detection DuplicateDetection) *FraudAlertRaisedEvent {
	return &FraudAlertRaisedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFraudAlertRaised, AggregateTypeGovernance, g.ID, shared.SystemActor),
		GovernanceID:    g.ID,
		DealID:          g.DealID,
		AlertType:       alertType,
		InvoiceID:       detection.InvoiceID,
	}
}

// EventType returns the event type name
func (e *FraudAlertRaisedEvent) EventType() string {
	return EventTypeFraudAlertRaised
}
