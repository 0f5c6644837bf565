package delivery

import (
	"time"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProgramStatus represents the delivery status of a program
type ProgramStatus string

const (
	ProgramStatusPlanned   ProgramStatus = "Planned"
	ProgramStatusRunning   ProgramStatus = "Running"
	ProgramStatusDelivered ProgramStatus = "Delivered"
	ProgramStatusClosed    ProgramStatus = "Closed"
)

// IsValid checks if the status is a valid ProgramStatus
func (s ProgramStatus) IsValid() bool {
	switch s {
	case ProgramStatusPlanned, ProgramStatusRunning, ProgramStatusDelivered, ProgramStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of ProgramStatus
func (s ProgramStatus) String() string {
	return string(s)
}

// ProgramCosts is the delivery cost vector.
// Marketing and contingency may be supplied as a percentage of the total
// order value; a supplied percentage always wins over a stored amount.
type ProgramCosts struct {
	Trainer            decimal.Decimal  `json:"trainer"`
	Lab                decimal.Decimal  `json:"lab"`
	Material           decimal.Decimal  `json:"material"`
	Travel             decimal.Decimal  `json:"travel"`
	MarketingAmount    decimal.Decimal  `json:"marketing_amount"`
	ContingencyAmount  decimal.Decimal  `json:"contingency_amount"`
	MarketingPercent   *decimal.Decimal `json:"marketing_percent,omitempty"`
	ContingencyPercent *decimal.Decimal `json:"contingency_percent,omitempty"`
}

// Total sums the cost vector after percentage resolution
func (c ProgramCosts) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range []decimal.Decimal{
		c.Trainer, c.Lab, c.Material, c.Travel, c.MarketingAmount, c.ContingencyAmount,
	} {
		total = total.Add(v)
	}
	return total
}

// Program represents a delivery engagement tied to a deal or opportunity.
// Trainer and client sign-off gate invoice eligibility: the client sign-off
// cascade marks the program invoice-eligible, but invoice creation itself
// remains an explicit action.
type Program struct {
	shared.BaseAggregateRoot
	Name          string
	ClientName    string
	DealID        *uuid.UUID
	OpportunityID *uuid.UUID

	TotalOrderValue decimal.Decimal
	Costs           ProgramCosts
	TotalCosts      decimal.Decimal
	FinalGP         decimal.Decimal
	GPPercent       decimal.Decimal

	Status ProgramStatus

	TrainerSignOff   bool
	TrainerSignOffAt *time.Time
	TrainerSignOffBy *uuid.UUID
	ClientSignOff    bool
	ClientSignOffAt  *time.Time
	ClientSignOffBy  *uuid.UUID

	InvoiceEligible bool
}

// NewProgram creates a new program in Planned status
func NewProgram(name, clientName string, totalOrderValue decimal.Decimal, actor shared.Actor) (*Program, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Program name cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client name cannot be empty")
	}
	if totalOrderValue.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ORDER_VALUE", "Total order value cannot be negative")
	}

	p := &Program{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(actor.ID),
		Name:              name,
		ClientName:        clientName,
		TotalOrderValue:   totalOrderValue,
		Status:            ProgramStatusPlanned,
	}
	p.RecalculateGP()

	p.AddDomainEvent(NewProgramCreatedEvent(p, actor))

	return p, nil
}

// LinkDeal ties the program to its commercial deal
func (p *Program) LinkDeal(dealID uuid.UUID) {
	p.DealID = &dealID
	p.UpdatedAt = time.Now()
}

// LinkOpportunity ties the program to the originating opportunity
func (p *Program) LinkOpportunity(opportunityID uuid.UUID) {
	p.OpportunityID = &opportunityID
	p.UpdatedAt = time.Now()
}

// UpdateCosts replaces the cost vector and re-runs the GP derivation
func (p *Program) UpdateCosts(costs ProgramCosts) error {
	if p.Status == ProgramStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Cannot update costs of a closed program")
	}
	p.Costs = costs
	p.RecalculateGP()
	p.UpdatedAt = time.Now()
	return nil
}

// RecalculateGP re-runs the gross-profit derivation. Same contract as the
// opportunity derivation: percentage inputs win, GPPercent is recomputed
// only when the order value is positive.
func (p *Program) RecalculateGP() {
	hundred := decimal.NewFromInt(100)
	if p.Costs.MarketingPercent != nil {
		p.Costs.MarketingAmount = p.TotalOrderValue.Mul(*p.Costs.MarketingPercent).Div(hundred).Round(2)
	}
	if p.Costs.ContingencyPercent != nil {
		p.Costs.ContingencyAmount = p.TotalOrderValue.Mul(*p.Costs.ContingencyPercent).Div(hundred).Round(2)
	}

	p.TotalCosts = p.Costs.Total()
	p.FinalGP = p.TotalOrderValue.Sub(p.TotalCosts)
	if p.TotalOrderValue.IsPositive() {
		p.GPPercent = p.FinalGP.Div(p.TotalOrderValue).Mul(hundred)
	}
}

// Start marks the program as running
func (p *Program) Start() error {
	if p.Status != ProgramStatusPlanned {
		return shared.NewDomainError("INVALID_STATE", "Only planned programs can start")
	}
	p.Status = ProgramStatusRunning
	p.UpdatedAt = time.Now()
	return nil
}

// MarkDelivered marks the program as delivered
func (p *Program) MarkDelivered() error {
	if p.Status != ProgramStatusRunning {
		return shared.NewDomainError("INVALID_STATE", "Only running programs can be delivered")
	}
	p.Status = ProgramStatusDelivered
	p.UpdatedAt = time.Now()
	return nil
}

// RecordTrainerSignOff flips the trainer sign-off flag. Idempotent.
func (p *Program) RecordTrainerSignOff(actor shared.Actor) {
	if p.TrainerSignOff {
		return
	}
	now := time.Now()
	p.TrainerSignOff = true
	p.TrainerSignOffAt = &now
	p.TrainerSignOffBy = &actor.ID
	p.UpdatedAt = now
}

// RecordClientSignOff flips the client sign-off flag and raises the event
// consumed by the invoice-eligibility cascade. Idempotent: a second sign-off
// does not raise the event again.
func (p *Program) RecordClientSignOff(actor shared.Actor) {
	if p.ClientSignOff {
		return
	}
	now := time.Now()
	p.ClientSignOff = true
	p.ClientSignOffAt = &now
	p.ClientSignOffBy = &actor.ID
	p.UpdatedAt = now

	p.AddDomainEvent(NewProgramClientSignedOffEvent(p, actor))
}

// MarkInvoiceEligible flags the program as ready for invoicing.
// Returns false when already eligible (cascade idempotency).
func (p *Program) MarkInvoiceEligible() bool {
	if p.InvoiceEligible {
		return false
	}
	p.InvoiceEligible = true
	p.UpdatedAt = time.Now()
	return true
}
