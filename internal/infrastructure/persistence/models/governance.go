package models

import (
	"time"

	"github.com/gkt/backend/internal/domain/governance"
	"github.com/google/uuid"
)

// GovernanceModel is the persistence model for the Governance aggregate root.
// The approval history and duplicate scan log ride in JSONB columns; rows
// only ever append to them.
type GovernanceModel struct {
	AggregateModel
	DealID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	RiskLevel                governance.RiskLevel `gorm:"type:varchar(10);not null;default:'Medium';index"`
	LossMakingProjectFlag    bool                 `gorm:"not null;default:false;index"`
	DirectorApprovalRequired bool                 `gorm:"not null;default:false;index"`

	FraudAlertType  governance.FraudAlertType `gorm:"type:varchar(50)"`
	FraudAlertAt    *time.Time
	FraudAlertNotes string `gorm:"type:varchar(500)"`

	ApprovalHistory       ApprovalHistoryColumn       `gorm:"type:jsonb;default:'[]'"`
	DuplicateDetectionLog DuplicateDetectionLogColumn `gorm:"type:jsonb;default:'[]'"`

	LastEvaluatedAt *time.Time
}

// TableName returns the table name for GORM
func (GovernanceModel) TableName() string {
	return "governance_records"
}

// ToDomain converts the persistence model to a domain Governance entity.
func (m *GovernanceModel) ToDomain() *governance.Governance {
	g := &governance.Governance{
		DealID:                   m.DealID,
		RiskLevel:                m.RiskLevel,
		LossMakingProjectFlag:    m.LossMakingProjectFlag,
		DirectorApprovalRequired: m.DirectorApprovalRequired,
		FraudAlertType:           m.FraudAlertType,
		FraudAlertAt:             m.FraudAlertAt,
		FraudAlertNotes:          m.FraudAlertNotes,
		ApprovalHistory:          m.ApprovalHistory,
		DuplicateDetectionLog:    m.DuplicateDetectionLog,
		LastEvaluatedAt:          m.LastEvaluatedAt,
	}
	m.PopulateAggregateRoot(&g.BaseAggregateRoot)
	return g
}

// FromDomain populates the persistence model from a domain Governance entity.
func (m *GovernanceModel) FromDomain(g *governance.Governance) {
	m.FromDomainAggregateRoot(g.BaseAggregateRoot)
	m.DealID = g.DealID
	m.RiskLevel = g.RiskLevel
	m.LossMakingProjectFlag = g.LossMakingProjectFlag
	m.DirectorApprovalRequired = g.DirectorApprovalRequired
	m.FraudAlertType = g.FraudAlertType
	m.FraudAlertAt = g.FraudAlertAt
	m.FraudAlertNotes = g.FraudAlertNotes
	m.ApprovalHistory = g.ApprovalHistory
	m.DuplicateDetectionLog = g.DuplicateDetectionLog
	m.LastEvaluatedAt = g.LastEvaluatedAt
}

// GovernanceModelFromDomain creates a new persistence model from a domain Governance.
func GovernanceModelFromDomain(g *governance.Governance) *GovernanceModel {
	m := &GovernanceModel{}
	m.FromDomain(g)
	return m
}
