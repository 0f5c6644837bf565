package governance

import (
	"testing"
	"time"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGovernance_DefaultsToMediumRisk(t *testing.T) {
	actor := shared.Actor{ID: uuid.New(), Role: shared.RoleFinance}
	g := NewGovernance(uuid.New(), actor)

	assert.Equal(t, RiskMedium, g.RiskLevel)
	assert.False(t, g.LossMakingProjectFlag)
	assert.False(t, g.DirectorApprovalRequired)
	assert.Empty(t, g.ApprovalHistory)
}

func TestGovernance_EvaluateInvalidLevelFallsBackToMedium(t *testing.T) {
	g := NewGovernance(uuid.New(), shared.SystemActor)

	g.Evaluate(RiskLevel("garbage"), false, false)
	assert.Equal(t, RiskMedium, g.RiskLevel)
	require.NotNil(t, g.LastEvaluatedAt)
}

func TestGovernance_EvaluateRaisesFlagEvent(t *testing.T) {
	g := NewGovernance(uuid.New(), shared.SystemActor)

	g.Evaluate(RiskHigh, true, true)
	assert.Equal(t, RiskHigh, g.RiskLevel)
	assert.True(t, g.LossMakingProjectFlag)
	assert.True(t, g.DirectorApprovalRequired)

	events := g.GetDomainEvents()
	require.Len(t, events, 1)
	flagged, ok := events[0].(*GovernanceFlaggedEvent)
	require.True(t, ok)
	assert.True(t, flagged.LossMakingProjectFlag)
}

func TestGovernance_EvaluateCleanDealRaisesNoEvent(t *testing.T) {
	g := NewGovernance(uuid.New(), shared.SystemActor)

	g.Evaluate(RiskLow, false, false)
	assert.Empty(t, g.GetDomainEvents())
}

func TestGovernance_ApprovalHistoryIsAppendOnly(t *testing.T) {
	g := NewGovernance(uuid.New(), shared.SystemActor)
	director := shared.Actor{ID: uuid.New(), Role: shared.RoleDirector}

	g.RecordDecision("Pending", director, "")
	g.RecordDecision("Rejected", director, "margin too thin")
	g.RecordDecision("Approved", director, "renegotiated")

	require.Len(t, g.ApprovalHistory, 3)
	assert.Equal(t, "Pending", g.ApprovalHistory[0].Decision)
	assert.Equal(t, "Rejected", g.ApprovalHistory[1].Decision)
	assert.Equal(t, "margin too thin", g.ApprovalHistory[1].Notes)
	assert.Equal(t, "Approved", g.ApprovalHistory[2].Decision)
	assert.Equal(t, director.ID, g.ApprovalHistory[2].ActorID)
}

func TestGovernance_RaiseFraudAlert(t *testing.T) {
	g := NewGovernance(uuid.New(), shared.SystemActor)
	invoiceID := uuid.New()

	detection := DuplicateDetection{
		InvoiceID:  invoiceID,
		ClientName: "Acme Learning Ltd",
		Amount:     decimal.NewFromInt(1180000),
		MatchCount: 2,
		DetectedAt: time.Now(),
	}
	g.RaiseFraudAlert(FraudAlertDuplicateInvoice, detection, "matched one prior invoice")

	assert.Equal(t, FraudAlertDuplicateInvoice, g.FraudAlertType)
	require.Len(t, g.DuplicateDetectionLog, 1)
	assert.Equal(t, invoiceID, g.DuplicateDetectionLog[0].InvoiceID)

	events := g.GetDomainEvents()
	require.Len(t, events, 1)
	alert, ok := events[0].(*FraudAlertRaisedEvent)
	require.True(t, ok)
	assert.Equal(t, FraudAlertDuplicateInvoice, alert.AlertType)
	assert.Equal(t, invoiceID, alert.InvoiceID)
}

func TestGovernance_DuplicateLogAccumulates(t *testing.T) {
	g := NewGovernance(uuid.New(), shared.SystemActor)

	for i := 0; i < 3; i++ {
		g.RaiseFraudAlert(FraudAlertDuplicateInvoice, DuplicateDetection{
			InvoiceID:  uuid.New(),
			ClientName: "Acme",
			Amount:     decimal.NewFromInt(1000),
			MatchCount: int64(i + 2),
			DetectedAt: time.Now(),
		}, "")
	}
	assert.Len(t, g.DuplicateDetectionLog, 3)
}
