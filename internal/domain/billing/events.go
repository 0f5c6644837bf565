package billing

import (
	"time"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeInvoice    = "Invoice"
	AggregateTypeReceivable = "Receivable"
)

// Event type constants
const (
	EventTypeInvoiceCreated    = "InvoiceCreated"
	EventTypeInvoiceGenerated  = "InvoiceGenerated"
	EventTypeInvoicePaid       = "InvoicePaid"
	EventTypeReceivableCreated = "ReceivableCreated"
	EventTypeReceivableSettled = "ReceivableSettled"
)

// InvoiceCreatedEvent is raised when an invoice is created. The receivable
// cascade and the duplicate-invoice scan both consume it.
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientName    string          `json:"client_name"`
	InvoiceAmount decimal.Decimal `json:"invoice_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	DueDate       time.Time       `json:"due_date"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(inv *Invoice, actor shared.Actor) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, inv.ID, actor),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		ClientName:      inv.ClientName,
		InvoiceAmount:   inv.InvoiceAmount,
		TotalAmount:     inv.TotalAmount,
		DueDate:         inv.DueDate,
	}
}

// EventType returns the event type name
func (e *InvoiceCreatedEvent) EventType() string {
	return EventTypeInvoiceCreated
}

// InvoiceGeneratedEvent is raised when an invoice leaves draft and receives
// its compliance references
type InvoiceGeneratedEvent struct {
	shared.BaseDomainEvent
	InvoiceID      uuid.UUID `json:"invoice_id"`
	InvoiceNumber  string    `json:"invoice_number"`
	IRN            string    `json:"irn"`
	EWayBillNumber string    `json:"eway_bill_number"`
}

// NewInvoiceGeneratedEvent creates a new InvoiceGeneratedEvent
func NewInvoiceGeneratedEvent(inv *Invoice, actor shared.Actor) *InvoiceGeneratedEvent {
	return &InvoiceGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceGenerated, AggregateTypeInvoice, inv.ID, actor),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		IRN:             inv.IRN,
		EWayBillNumber:  inv.EWayBillNumber,
	}
}

// EventType returns the event type name
func (e *InvoiceGeneratedEvent) EventType() string {
	return EventTypeInvoiceGenerated
}

// InvoicePaidEvent is raised when an invoice is settled
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(inv *Invoice, actor shared.Actor) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, AggregateTypeInvoice, inv.ID, actor),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		TotalAmount:     inv.TotalAmount,
	}
}

// EventType returns the event type name
func (e *InvoicePaidEvent) EventType() string {
	return EventTypeInvoicePaid
}

// ReceivableCreatedEvent is raised when a receivable is opened
type ReceivableCreatedEvent struct {
	shared.BaseDomainEvent
	ReceivableID      uuid.UUID       `json:"receivable_id"`
	InvoiceID         *uuid.UUID      `json:"invoice_id,omitempty"`
	ClientName        string          `json:"client_name"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}

// NewReceivableCreatedEvent creates a new ReceivableCreatedEvent
func NewReceivableCreatedEvent(r *Receivable, actor shared.Actor) *ReceivableCreatedEvent {
	return &ReceivableCreatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeReceivableCreated, AggregateTypeReceivable, r.ID, actor),
		ReceivableID:      r.ID,
		InvoiceID:         r.InvoiceID,
		ClientName:        r.ClientName,
		OutstandingAmount: r.OutstandingAmount,
	}
}

// EventType returns the event type name
func (e *ReceivableCreatedEvent) EventType() string {
	return EventTypeReceivableCreated
}

// ReceivableSettledEvent is raised when a receivable is fully collected
type ReceivableSettledEvent struct {
	shared.BaseDomainEvent
	ReceivableID uuid.UUID       `json:"receivable_id"`
	InvoiceID    *uuid.UUID      `json:"invoice_id,omitempty"`
	PaidAmount   decimal.Decimal `json:"paid_amount"`
}

// NewReceivableSettledEvent creates a new ReceivableSettledEvent
func NewReceivableSettledEvent(r *Receivable, actor shared.Actor) *ReceivableSettledEvent {
	return &ReceivableSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceivableSettled, AggregateTypeReceivable, r.ID, actor),
		ReceivableID:    r.ID,
		InvoiceID:       r.InvoiceID,
		PaidAmount:      r.PaidAmount,
	}
}

// EventType returns the event type name
func (e *ReceivableSettledEvent) EventType() string {
	return EventTypeReceivableSettled
}
