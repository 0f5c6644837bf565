package models

import (
	"time"

	"github.com/gkt/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpportunityModel is the persistence model for the Opportunity aggregate root.
type OpportunityModel struct {
	AggregateModel
	AdhocCode       string                 `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name            string                 `gorm:"type:varchar(200);not null"`
	ClientName      string                 `gorm:"type:varchar(200);not null;index"`
	TotalOrderValue decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Costs           OpportunityCostsColumn `gorm:"type:jsonb;default:'{}'"`
	TotalCosts      decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	FinalGP         decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	GPPercent       decimal.Decimal        `gorm:"type:decimal(8,4);not null"`
	Status          crm.OpportunityStatus  `gorm:"type:varchar(30);not null;default:'New';index"`
	LostReason      string                 `gorm:"type:varchar(500)"`

	DealID      *uuid.UUID `gorm:"type:uuid;index"`
	ConvertedAt *time.Time

	QualifiedBy      *uuid.UUID `gorm:"type:uuid"`
	QualifiedAt      *time.Time
	SentToDeliveryBy *uuid.UUID `gorm:"type:uuid"`
	SentToDeliveryAt *time.Time
	ConvertedBy      *uuid.UUID `gorm:"type:uuid"`
	LostBy           *uuid.UUID `gorm:"type:uuid"`
	LostAt           *time.Time
}

// TableName returns the table name for GORM
func (OpportunityModel) TableName() string {
	return "opportunities"
}

// ToDomain converts the persistence model to a domain Opportunity entity.
func (m *OpportunityModel) ToDomain() *crm.Opportunity {
	opp := &crm.Opportunity{
		AdhocCode:        m.AdhocCode,
		Name:             m.Name,
		ClientName:       m.ClientName,
		TotalOrderValue:  m.TotalOrderValue,
		Costs:            crm.OpportunityCosts(m.Costs),
		TotalCosts:       m.TotalCosts,
		FinalGP:          m.FinalGP,
		GPPercent:        m.GPPercent,
		Status:           m.Status,
		LostReason:       m.LostReason,
		DealID:           m.DealID,
		ConvertedAt:      m.ConvertedAt,
		QualifiedBy:      m.QualifiedBy,
		QualifiedAt:      m.QualifiedAt,
		SentToDeliveryBy: m.SentToDeliveryBy,
		SentToDeliveryAt: m.SentToDeliveryAt,
		ConvertedBy:      m.ConvertedBy,
		LostBy:           m.LostBy,
		LostAt:           m.LostAt,
	}
	m.PopulateAggregateRoot(&opp.BaseAggregateRoot)
	return opp
}

// FromDomain populates the persistence model from a domain Opportunity entity.
func (m *OpportunityModel) FromDomain(opp *crm.Opportunity) {
	m.FromDomainAggregateRoot(opp.BaseAggregateRoot)
	m.AdhocCode = opp.AdhocCode
	m.Name = opp.Name
	m.ClientName = opp.ClientName
	m.TotalOrderValue = opp.TotalOrderValue
	m.Costs = OpportunityCostsColumn(opp.Costs)
	m.TotalCosts = opp.TotalCosts
	m.FinalGP = opp.FinalGP
	m.GPPercent = opp.GPPercent
	m.Status = opp.Status
	m.LostReason = opp.LostReason
	m.DealID = opp.DealID
	m.ConvertedAt = opp.ConvertedAt
	m.QualifiedBy = opp.QualifiedBy
	m.QualifiedAt = opp.QualifiedAt
	m.SentToDeliveryBy = opp.SentToDeliveryBy
	m.SentToDeliveryAt = opp.SentToDeliveryAt
	m.ConvertedBy = opp.ConvertedBy
	m.LostBy = opp.LostBy
	m.LostAt = opp.LostAt
}

// OpportunityModelFromDomain creates a new persistence model from a domain Opportunity.
func OpportunityModelFromDomain(opp *crm.Opportunity) *OpportunityModel {
	m := &OpportunityModel{}
	m.FromDomain(opp)
	return m
}

// DealModel is the persistence model for the Deal aggregate root.
type DealModel struct {
	AggregateModel
	DealNumber    string     `gorm:"type:varchar(20);not null;uniqueIndex"`
	OpportunityID *uuid.UUID `gorm:"type:uuid;index"`
	ClientName    string     `gorm:"type:varchar(200);not null;index"`
	Description   string     `gorm:"type:text"`

	TotalOrderValue decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Costs           DealCostsColumn `gorm:"type:jsonb;default:'{}'"`

	TotalCost             decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	ContributionMargin    decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	BreakEvenValue        decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	GrossMarginPercent    decimal.Decimal           `gorm:"type:decimal(8,4);not null"`
	MarginThresholdStatus crm.MarginThresholdStatus `gorm:"type:varchar(30);not null;index"`

	ApprovalStatus           crm.ApprovalStatus `gorm:"type:varchar(20);not null;default:'Pending';index"`
	DirectorApprovalRequired bool               `gorm:"not null;default:false"`
	ApprovedBy               *uuid.UUID         `gorm:"type:uuid"`
	ApprovedAt               *time.Time
	RejectedBy               *uuid.UUID `gorm:"type:uuid"`
	RejectedAt               *time.Time
	RejectionReason          string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (DealModel) TableName() string {
	return "deals"
}

// ToDomain converts the persistence model to a domain Deal entity.
func (m *DealModel) ToDomain() *crm.Deal {
	deal := &crm.Deal{
		DealNumber:               m.DealNumber,
		OpportunityID:            m.OpportunityID,
		ClientName:               m.ClientName,
		Description:              m.Description,
		TotalOrderValue:          m.TotalOrderValue,
		Costs:                    crm.DealCosts(m.Costs),
		TotalCost:                m.TotalCost,
		ContributionMargin:       m.ContributionMargin,
		BreakEvenValue:           m.BreakEvenValue,
		GrossMarginPercent:       m.GrossMarginPercent,
		MarginThresholdStatus:    m.MarginThresholdStatus,
		ApprovalStatus:           m.ApprovalStatus,
		DirectorApprovalRequired: m.DirectorApprovalRequired,
		ApprovedBy:               m.ApprovedBy,
		ApprovedAt:               m.ApprovedAt,
		RejectedBy:               m.RejectedBy,
		RejectedAt:               m.RejectedAt,
		RejectionReason:          m.RejectionReason,
	}
	m.PopulateAggregateRoot(&deal.BaseAggregateRoot)
	return deal
}

// FromDomain populates the persistence model from a domain Deal entity.
func (m *DealModel) FromDomain(deal *crm.Deal) {
	m.FromDomainAggregateRoot(deal.BaseAggregateRoot)
	m.DealNumber = deal.DealNumber
	m.OpportunityID = deal.OpportunityID
	m.ClientName = deal.ClientName
	m.Description = deal.Description
	m.TotalOrderValue = deal.TotalOrderValue
	m.Costs = DealCostsColumn(deal.Costs)
	m.TotalCost = deal.TotalCost
	m.ContributionMargin = deal.ContributionMargin
	m.BreakEvenValue = deal.BreakEvenValue
	m.GrossMarginPercent = deal.GrossMarginPercent
	m.MarginThresholdStatus = deal.MarginThresholdStatus
	m.ApprovalStatus = deal.ApprovalStatus
	m.DirectorApprovalRequired = deal.DirectorApprovalRequired
	m.ApprovedBy = deal.ApprovedBy
	m.ApprovedAt = deal.ApprovedAt
	m.RejectedBy = deal.RejectedBy
	m.RejectedAt = deal.RejectedAt
	m.RejectionReason = deal.RejectionReason
}

// DealModelFromDomain creates a new persistence model from a domain Deal.
func DealModelFromDomain(deal *crm.Deal) *DealModel {
	m := &DealModel{}
	m.FromDomain(deal)
	return m
}
