package models

import (
	"time"

	"github.com/gkt/backend/internal/domain/delivery"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProgramModel is the persistence model for the Program aggregate root.
type ProgramModel struct {
	AggregateModel
	Name          string     `gorm:"type:varchar(200);not null"`
	ClientName    string     `gorm:"type:varchar(200);not null;index"`
	DealID        *uuid.UUID `gorm:"type:uuid;index"`
	OpportunityID *uuid.UUID `gorm:"type:uuid;index"`

	TotalOrderValue decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Costs           ProgramCostsColumn     `gorm:"type:jsonb;default:'{}'"`
	TotalCosts      decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	FinalGP         decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	GPPercent       decimal.Decimal        `gorm:"type:decimal(8,4);not null"`
	Status          delivery.ProgramStatus `gorm:"type:varchar(20);not null;default:'Planned';index"`

	TrainerSignOff   bool `gorm:"not null;default:false"`
	TrainerSignOffAt *time.Time
	TrainerSignOffBy *uuid.UUID `gorm:"type:uuid"`
	ClientSignOff    bool       `gorm:"not null;default:false"`
	ClientSignOffAt  *time.Time
	ClientSignOffBy  *uuid.UUID `gorm:"type:uuid"`

	InvoiceEligible bool `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (ProgramModel) TableName() string {
	return "programs"
}

// ToDomain converts the persistence model to a domain Program entity.
func (m *ProgramModel) ToDomain() *delivery.Program {
	p := &delivery.Program{
		Name:             m.Name,
		ClientName:       m.ClientName,
		DealID:           m.DealID,
		OpportunityID:    m.OpportunityID,
		TotalOrderValue:  m.TotalOrderValue,
		Costs:            delivery.ProgramCosts(m.Costs),
		TotalCosts:       m.TotalCosts,
		FinalGP:          m.FinalGP,
		GPPercent:        m.GPPercent,
		Status:           m.Status,
		TrainerSignOff:   m.TrainerSignOff,
		TrainerSignOffAt: m.TrainerSignOffAt,
		TrainerSignOffBy: m.TrainerSignOffBy,
		ClientSignOff:    m.ClientSignOff,
		ClientSignOffAt:  m.ClientSignOffAt,
		ClientSignOffBy:  m.ClientSignOffBy,
		InvoiceEligible:  m.InvoiceEligible,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Program entity.
func (m *ProgramModel) FromDomain(p *delivery.Program) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.ClientName = p.ClientName
	m.DealID = p.DealID
	m.OpportunityID = p.OpportunityID
	m.TotalOrderValue = p.TotalOrderValue
	m.Costs = ProgramCostsColumn(p.Costs)
	m.TotalCosts = p.TotalCosts
	m.FinalGP = p.FinalGP
	m.GPPercent = p.GPPercent
	m.Status = p.Status
	m.TrainerSignOff = p.TrainerSignOff
	m.TrainerSignOffAt = p.TrainerSignOffAt
	m.TrainerSignOffBy = p.TrainerSignOffBy
	m.ClientSignOff = p.ClientSignOff
	m.ClientSignOffAt = p.ClientSignOffAt
	m.ClientSignOffBy = p.ClientSignOffBy
	m.InvoiceEligible = p.InvoiceEligible
}

// ProgramModelFromDomain creates a new persistence model from a domain Program.
func ProgramModelFromDomain(p *delivery.Program) *ProgramModel {
	m := &ProgramModel{}
	m.FromDomain(p)
	return m
}
