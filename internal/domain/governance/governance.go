package governance

import (
	"context"
	"time"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RiskLevel classifies a deal's commercial risk
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

func (r RiskLevel) String() string {
	return string(r)
}

// IsValid checks if the risk level is a known value
func (r RiskLevel) IsValid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// FraudAlertType names a detected fraud pattern
type FraudAlertType string

const (
	FraudAlertDuplicateInvoice FraudAlertType = "Duplicate Invoice"
)

// RiskInput carries the signals the scorer evaluates
type RiskInput struct {
	DealID             uuid.UUID
	TotalOrderValue    decimal.Decimal
	GrossMarginPercent decimal.Decimal
	BelowThreshold     bool
	LossMaking         bool
}

// RiskScorer evaluates deal risk. Implementations may call an external
// signal source; when scoring fails the caller falls back to a
// conservative Medium classification instead of failing the save.
type RiskScorer interface {
	Score(ctx context.Context, in RiskInput) (RiskLevel, error)
}

// ApprovalRecord is one append-only entry in a deal's approval history
type ApprovalRecord struct {
	Decision  string    `json:"decision"`
	ActorID   uuid.UUID `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// DuplicateDetection is one append-only entry in the duplicate scan log
type DuplicateDetection struct {
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	ClientName string          `json:"client_name"`
	Amount     decimal.Decimal `json:"amount"`
	MatchCount int64           `json:"match_count"`
	DetectedAt time.Time       `json:"detected_at"`
}

// Governance is the risk-and-approval record attached to a deal.
// ApprovalHistory and DuplicateDetectionLog are append-only: entries are
// pushed, never edited or removed.
type Governance struct {
	shared.BaseAggregateRoot
	DealID uuid.UUID `json:"deal_id"`

	RiskLevel                RiskLevel `json:"risk_level"`
	LossMakingProjectFlag    bool      `json:"loss_making_project_flag"`
	DirectorApprovalRequired bool      `json:"director_approval_required"`

	FraudAlertType  FraudAlertType `json:"fraud_alert_type,omitempty"`
	FraudAlertAt    *time.Time     `json:"fraud_alert_at,omitempty"`
	FraudAlertNotes string         `json:"fraud_alert_notes,omitempty"`

	ApprovalHistory       []ApprovalRecord     `json:"approval_history"`
	DuplicateDetectionLog []DuplicateDetection `json:"duplicate_detection_log"`

	LastEvaluatedAt *time.Time `json:"last_evaluated_at,omitempty"`
}

// NewGovernance opens a governance record for a deal with the
// conservative default risk classification
func NewGovernance(dealID uuid.UUID, actor shared.Actor) *Governance {
	g := &Governance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DealID:            dealID,
		RiskLevel:         RiskMedium,
	}
	g.SetCreatedBy(actor.ID)
	return g
}

// Evaluate applies a risk assessment to the record. An invalid level
// falls back to Medium rather than failing.
func (g *Governance) Evaluate(level RiskLevel, lossMaking, directorRequired bool) {
	if !level.IsValid() {
		level = RiskMedium
	}
	now := time.Now()
	g.RiskLevel = level
	g.LossMakingProjectFlag = lossMaking
	g.DirectorApprovalRequired = directorRequired
	g.LastEvaluatedAt = &now
	g.IncrementVersion()

	if lossMaking || directorRequired {
		g.AddDomainEvent(NewGovernanceFlaggedEvent(g, shared.SystemActor))
	}
}

// RecordDecision appends a director decision to the approval history
func (g *Governance) RecordDecision(decision string, actor shared.Actor, notes string) {
	g.ApprovalHistory = append(g.ApprovalHistory, ApprovalRecord{
		Decision:  decision,
		ActorID:   actor.ID,
		ActorRole: string(actor.Role),
		Notes:     notes,
		Timestamp: time.Now(),
	})
	g.IncrementVersion()
}

// RaiseFraudAlert sets a fraud alert and appends the detection to the log
func (g *Governance) RaiseFraudAlert(alertType FraudAlertType, detection DuplicateDetection, notes string) {
	now := time.Now()
	g.FraudAlertType = alertType
	g.FraudAlertAt = &now
	g.FraudAlertNotes = notes
	g.DuplicateDetectionLog = append(g.DuplicateDetectionLog, detection)
	g.IncrementVersion()
	g.AddDomainEvent(NewFraudAlertRaisedEvent(g, alertType, detection))
}
