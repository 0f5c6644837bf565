package event

import (
	"github.com/gkt/backend/internal/domain/billing"
	"github.com/gkt/backend/internal/domain/crm"
	"github.com/gkt/backend/internal/domain/delivery"
	"github.com/gkt/backend/internal/domain/governance"
	"github.com/gkt/backend/internal/domain/procurement"
	"github.com/gkt/backend/internal/domain/tax"
)

// RegisterAllEvents registers all domain event types with the serializer
// This is required for the OutboxProcessor to deserialize events from the outbox table
func RegisterAllEvents(serializer *EventSerializer) {
	// CRM domain - Opportunity events
	serializer.Register(crm.EventTypeOpportunityCreated, &crm.OpportunityCreatedEvent{})
	serializer.Register(crm.EventTypeOpportunityQualified, &crm.OpportunityQualifiedEvent{})
	serializer.Register(crm.EventTypeOpportunitySentToDelivery, &crm.OpportunitySentToDeliveryEvent{})
	serializer.Register(crm.EventTypeOpportunityConverted, &crm.OpportunityConvertedEvent{})
	serializer.Register(crm.EventTypeOpportunityLost, &crm.OpportunityLostEvent{})

	// CRM domain - Deal events
	serializer.Register(crm.EventTypeDealCreated, &crm.DealCreatedEvent{})
	serializer.Register(crm.EventTypeDealUpdated, &crm.DealUpdatedEvent{})
	serializer.Register(crm.EventTypeDealApproved, &crm.DealApprovedEvent{})
	serializer.Register(crm.EventTypeDealRejected, &crm.DealRejectedEvent{})

	// Delivery domain - Program events
	serializer.Register(delivery.EventTypeProgramCreated, &delivery.ProgramCreatedEvent{})
	serializer.Register(delivery.EventTypeProgramClientSignedOff, &delivery.ProgramClientSignedOffEvent{})

	// Procurement domain - Purchase Order and Payable events
	serializer.Register(procurement.EventTypePurchaseOrderCreated, &procurement.PurchaseOrderCreatedEvent{})
	serializer.Register(procurement.EventTypePurchaseOrderIssued, &procurement.PurchaseOrderIssuedEvent{})
	serializer.Register(procurement.EventTypePayableCreated, &procurement.PayableCreatedEvent{})
	serializer.Register(procurement.EventTypePayableHeld, &procurement.PayableHeldEvent{})
	serializer.Register(procurement.EventTypePayableReleased, &procurement.PayableReleasedEvent{})

	// Tax domain events
	serializer.Register(tax.EventTypeTaxDeductionRecorded, &tax.TaxDeductionRecordedEvent{})

	// Billing domain - Invoice and Receivable events
	serializer.Register(billing.EventTypeInvoiceCreated, &billing.InvoiceCreatedEvent{})
	serializer.Register(billing.EventTypeInvoiceGenerated, &billing.InvoiceGeneratedEvent{})
	serializer.Register(billing.EventTypeInvoicePaid, &billing.InvoicePaidEvent{})
	serializer.Register(billing.EventTypeReceivableCreated, &billing.ReceivableCreatedEvent{})
	serializer.Register(billing.EventTypeReceivableSettled, &billing.ReceivableSettledEvent{})

	// Governance domain events
	serializer.Register(governance.EventTypeGovernanceFlagged, &governance.GovernanceFlaggedEvent{})
	serializer.Register(governance.EventTypeFraudAlertRaised, &governance.FraudAlertRaisedEvent{})
}
