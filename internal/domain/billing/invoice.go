package billing

import (
	"context"
	"time"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle state of a client invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "Draft"
	InvoiceStatusGenerated InvoiceStatus = "Generated"
	InvoiceStatusSent      InvoiceStatus = "Sent"
	InvoiceStatusPaid      InvoiceStatus = "Paid"
	InvoiceStatusOverdue   InvoiceStatus = "Overdue"
	InvoiceStatusCancelled InvoiceStatus = "Cancelled"
)

// IsValid checks if the status is a known value
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusGenerated, InvoiceStatusSent,
		InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

// CanTransitionTo checks whether a status transition is allowed
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == InvoiceStatusCancelled {
		return true
	}
	transitions := map[InvoiceStatus][]InvoiceStatus{
		InvoiceStatusDraft:     {InvoiceStatusGenerated},
		InvoiceStatusGenerated: {InvoiceStatusSent},
		InvoiceStatusSent:      {InvoiceStatusPaid, InvoiceStatusOverdue},
		InvoiceStatusOverdue:   {InvoiceStatusPaid},
	}
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s InvoiceStatus) String() string {
	return string(s)
}

// TaxCalculator computes the tax amount for an invoice. Implementations
// may call an external service; callers fall back to the local GST
// derivation when the calculator fails or returns no result.
type TaxCalculator interface {
	CalculateTax(ctx context.Context, invoiceAmount decimal.Decimal, gstPercent decimal.Decimal) (decimal.Decimal, error)
}

var invoiceMutationRoles = []shared.Role{shared.RoleFinance, shared.RoleDirector}

// Invoice is the client billing aggregate.
// Derived fields hold: TaxAmount = InvoiceAmount * GSTPercent / 100
// (unless externally overridden) and TotalAmount = InvoiceAmount + TaxAmount.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string     `json:"invoice_number"`
	ProgramID     *uuid.UUID `json:"program_id,omitempty"`
	DealID        *uuid.UUID `json:"deal_id,omitempty"`
	// SourceDocumentID links back to the client confirmation document
	// the invoice was generated from, when there is one.
	SourceDocumentID *uuid.UUID `json:"source_document_id,omitempty"`

	ClientName    string          `json:"client_name"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount"`
	GSTPercent    decimal.Decimal `json:"gst_percent"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	// TaxOverridden records that TaxAmount came from an external
	// calculator rather than the GST derivation.
	TaxOverridden bool `json:"tax_overridden"`

	InvoiceDate time.Time `json:"invoice_date"`
	DueDate     time.Time `json:"due_date"`

	Status        InvoiceStatus `json:"status"`
	DuplicateFlag bool          `json:"duplicate_flag"`

	// Compliance references assigned on generation
	IRN            string `json:"irn,omitempty"`
	EWayBillNumber string `json:"eway_bill_number,omitempty"`

	SentAt       *time.Time `json:"sent_at,omitempty"`
	PaidAt       *time.Time `json:"paid_at,omitempty"`
	CancelReason string     `json:"cancel_reason,omitempty"`
}

// NewInvoice creates a draft invoice with derived tax and total amounts
func NewInvoice(invoiceNumber, clientName string, invoiceAmount, gstPercent decimal.Decimal, dueDate time.Time, actor shared.Actor) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "invoice number is required")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "client name is required")
	}
	if invoiceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_INVOICE_AMOUNT", "invoice amount must be positive")
	}
	if gstPercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_GST_PERCENT", "gst percent cannot be negative")
	}

	inv := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		ClientName:        clientName,
		InvoiceAmount:     invoiceAmount,
		GSTPercent:        gstPercent,
		InvoiceDate:       time.Now(),
		DueDate:           dueDate,
		Status:            InvoiceStatusDraft,
	}
	inv.SetCreatedBy(actor.ID)
	inv.RecalculateTotals()

	inv.AddDomainEvent(NewInvoiceCreatedEvent(inv, actor))
	return inv, nil
}

// RecalculateTotals derives TaxAmount from GSTPercent and TotalAmount
// from the sum. An external tax override is preserved; only the total
// is re-derived in that case.
func (inv *Invoice) RecalculateTotals() {
	if !inv.TaxOverridden {
		inv.TaxAmount = inv.InvoiceAmount.Mul(inv.GSTPercent).Div(decimal.NewFromInt(100)).Round(2)
	}
	inv.TotalAmount = inv.InvoiceAmount.Add(inv.TaxAmount)
	inv.IncrementVersion()
}

// ApplyExternalTax replaces the derived tax amount with one computed by
// an external calculator and re-derives the total.
func (inv *Invoice) ApplyExternalTax(taxAmount decimal.Decimal) error {
	if taxAmount.IsNegative() {
		return shared.NewDomainError("INVALID_TAX_AMOUNT", "tax amount cannot be negative")
	}
	if inv.Status.IsTerminal() {
		return shared.NewDomainError("INVOICE_FINALIZED", "cannot change tax on a finalized invoice")
	}
	inv.TaxAmount = taxAmount
	inv.TaxOverridden = true
	inv.TotalAmount = inv.InvoiceAmount.Add(inv.TaxAmount)
	inv.IncrementVersion()
	return nil
}

// Generate moves the invoice out of draft and attaches compliance references
func (inv *Invoice) Generate(irn, ewayBillNumber string, actor shared.Actor) error {
	if !actor.Can(invoiceMutationRoles...) {
		return shared.ErrRoleNotAllowed
	}
	if !inv.Status.CanTransitionTo(InvoiceStatusGenerated) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			"cannot generate invoice in status "+inv.Status.String())
	}
	inv.Status = InvoiceStatusGenerated
	inv.IRN = irn
	inv.EWayBillNumber = ewayBillNumber
	inv.IncrementVersion()
	inv.AddDomainEvent(NewInvoiceGeneratedEvent(inv, actor))
	return nil
}

// MarkSent records dispatch to the client
func (inv *Invoice) MarkSent(actor shared.Actor) error {
	if !actor.Can(invoiceMutationRoles...) {
		return shared.ErrRoleNotAllowed
	}
	if !inv.Status.CanTransitionTo(InvoiceStatusSent) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			"cannot send invoice in status "+inv.Status.String())
	}
	now := time.Now()
	inv.Status = InvoiceStatusSent
	inv.SentAt = &now
	inv.IncrementVersion()
	return nil
}

// MarkPaid settles the invoice
func (inv *Invoice) MarkPaid(actor shared.Actor) error {
	if !actor.Can(invoiceMutationRoles...) {
		return shared.ErrRoleNotAllowed
	}
	if !inv.Status.CanTransitionTo(InvoiceStatusPaid) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			"cannot mark paid in status "+inv.Status.String())
	}
	now := time.Now()
	inv.Status = InvoiceStatusPaid
	inv.PaidAt = &now
	inv.IncrementVersion()
	inv.AddDomainEvent(NewInvoicePaidEvent(inv, actor))
	return nil
}

// MarkOverdue flags a sent invoice that passed its due date unpaid
func (inv *Invoice) MarkOverdue() error {
	if !inv.Status.CanTransitionTo(InvoiceStatusOverdue) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			"cannot mark overdue in status "+inv.Status.String())
	}
	inv.Status = InvoiceStatusOverdue
	inv.IncrementVersion()
	return nil
}

// Cancel voids the invoice
func (inv *Invoice) Cancel(reason string, actor shared.Actor) error {
	if !actor.Can(invoiceMutationRoles...) {
		return shared.ErrRoleNotAllowed
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_CANCEL_REASON", "cancel reason is required")
	}
	if !inv.Status.CanTransitionTo(InvoiceStatusCancelled) {
		return shared.NewDomainError("INVALID_STATUS_TRANSITION",
			"cannot cancel invoice in status "+inv.Status.String())
	}
	inv.Status = InvoiceStatusCancelled
	inv.CancelReason = reason
	inv.IncrementVersion()
	return nil
}

// FlagDuplicate marks the invoice as a suspected duplicate.
// Returns false when the flag was already set.
func (inv *Invoice) FlagDuplicate() bool {
	if inv.DuplicateFlag {
		return false
	}
	inv.DuplicateFlag = true
	inv.IncrementVersion()
	return true
}

// LinkProgram attaches the delivery program the invoice bills for
func (inv *Invoice) LinkProgram(programID uuid.UUID) {
	inv.ProgramID = &programID
	inv.IncrementVersion()
}

// LinkSourceDocument records the confirmation document the invoice was raised from
func (inv *Invoice) LinkSourceDocument(docID uuid.UUID) {
	inv.SourceDocumentID = &docID
	inv.IncrementVersion()
}
