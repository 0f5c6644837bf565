package procurement

import (
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gkt/backend/internal/domain/tax"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypePurchaseOrder = "PurchaseOrder"
	AggregateTypePayable       = "Payable"
)

// Event type constants
const (
	EventTypePurchaseOrderCreated = "PurchaseOrderCreated"
	EventTypePurchaseOrderIssued  = "PurchaseOrderIssued"
	EventTypePayableCreated       = "PayableCreated"
	EventTypePayableHeld          = "PayableHeld"
	EventTypePayableReleased      = "PayableReleased"
)

// PurchaseOrderCreatedEvent is raised when a purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	PurchaseOrderID uuid.UUID       `json:"purchase_order_id"`
	PONumber        string          `json:"po_number"`
	DealID          *uuid.UUID      `json:"deal_id,omitempty"`
	ApprovedCost    decimal.Decimal `json:"approved_cost"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(po *PurchaseOrder, actor shared.Actor) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, po.ID, actor),
		PurchaseOrderID: po.ID,
		PONumber:        po.PONumber,
		DealID:          po.DealID,
		ApprovedCost:    po.ApprovedCost,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderCreatedEvent) EventType() string {
	return EventTypePurchaseOrderCreated
}

// PurchaseOrderIssuedEvent is raised when a purchase order is issued to the vendor
type PurchaseOrderIssuedEvent struct {
	shared.BaseDomainEvent
	PurchaseOrderID       uuid.UUID       `json:"purchase_order_id"`
	PONumber              string          `json:"po_number"`
	VendorName            string          `json:"vendor_name"`
	AdjustedPayableAmount decimal.Decimal `json:"adjusted_payable_amount"`
}

// NewPurchaseOrderIssuedEvent creates a new PurchaseOrderIssuedEvent
func NewPurchaseOrderIssuedEvent(po *PurchaseOrder, actor shared.Actor) *PurchaseOrderIssuedEvent {
	return &PurchaseOrderIssuedEvent{
		BaseDomainEvent:       shared.NewBaseDomainEvent(EventTypePurchaseOrderIssued, AggregateTypePurchaseOrder, po.ID, actor),
		PurchaseOrderID:       po.ID,
		PONumber:              po.PONumber,
		VendorName:            po.VendorName,
		AdjustedPayableAmount: po.AdjustedPayableAmount,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderIssuedEvent) EventType() string {
	return EventTypePurchaseOrderIssued
}

// PayableCreatedEvent is raised when a payable is created.
// The tax cascade consumes it to run the withholding derivation and
// persist the deduction record.
type PayableCreatedEvent struct {
	shared.BaseDomainEvent
	PayableID       uuid.UUID           `json:"payable_id"`
	VendorID        uuid.UUID           `json:"vendor_id"`
	VendorName      string              `json:"vendor_name"`
	VendorType      tax.VendorType      `json:"vendor_type"`
	NatureOfService tax.NatureOfService `json:"nature_of_service"`
	PANAvailable    bool                `json:"pan_available"`
	Amount          decimal.Decimal     `json:"amount"`
}

// NewPayableCreatedEvent creates a new PayableCreatedEvent
func NewPayableCreatedEvent(p *Payable, actor shared.Actor) *PayableCreatedEvent {
	return &PayableCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePayableCreated, AggregateTypePayable, p.ID, actor),
		PayableID:       p.ID,
		VendorID:        p.VendorID,
		VendorName:      p.VendorName,
		VendorType:      p.VendorType,
		NatureOfService: p.NatureOfService,
		PANAvailable:    p.HasPAN(),
		Amount:          p.AdjustedPayableAmount,
	}
}

// EventType returns the event type name
func (e *PayableCreatedEvent) EventType() string {
	return EventTypePayableCreated
}

// PayableHeldEvent is raised when a payable is put on hold
type PayableHeldEvent struct {
	shared.BaseDomainEvent
	PayableID uuid.UUID `json:"payable_id"`
	Reason    string    `json:"reason"`
}

// NewPayableHeldEvent creates a new PayableHeldEvent
func NewPayableHeldEvent(p *Payable, actor shared.Actor) *PayableHeldEvent {
	return &PayableHeldEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePayableHeld, AggregateTypePayable, p.ID, actor),
		PayableID:       p.ID,
		Reason:          p.HoldReason,
	}
}

// EventType returns the event type name
func (e *PayableHeldEvent) EventType() string {
	return EventTypePayableHeld
}

// PayableReleasedEvent is raised when a payable is released for disbursement
type PayableReleasedEvent struct {
	shared.BaseDomainEvent
	PayableID         uuid.UUID       `json:"payable_id"`
	VendorName        string          `json:"vendor_name"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
}

// NewPayableReleasedEvent creates a new PayableReleasedEvent
func NewPayableReleasedEvent(p *Payable, actor shared.Actor) *PayableReleasedEvent {
	return &PayableReleasedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypePayableReleased, AggregateTypePayable, p.ID, actor),
		PayableID:         p.ID,
		VendorName:        p.VendorName,
		OutstandingAmount: p.OutstandingAmount,
	}
}

// EventType returns the event type name
func (e *PayableReleasedEvent) EventType() string {
	return EventTypePayableReleased
}
