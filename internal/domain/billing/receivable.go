package billing

import (
	"time"

	"github.com/gkt/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableStatus represents the collection state of a receivable
type ReceivableStatus string

const (
	ReceivableStatusPending       ReceivableStatus = "Pending"
	ReceivableStatusPartiallyPaid ReceivableStatus = "Partially Paid"
	ReceivableStatusPaid          ReceivableStatus = "Paid"
	ReceivableStatusOverdue       ReceivableStatus = "Overdue"
)

func (s ReceivableStatus) String() string {
	return string(s)
}

// AgingBucket classifies a receivable by days past due
type AgingBucket string

const (
	AgingCurrent    AgingBucket = "Current"
	Aging1To30      AgingBucket = "1-30 Days"
	Aging31To60     AgingBucket = "31-60 Days"
	Aging61To90     AgingBucket = "61-90 Days"
	AgingOver90Days AgingBucket = "Over 90 Days"
)

func (b AgingBucket) String() string {
	return string(b)
}

// BucketForDaysOverdue maps days past due to an aging bucket
func BucketForDaysOverdue(days int) AgingBucket {
	switch {
	case days <= 0:
		return AgingCurrent
	case days <= 30:
		return Aging1To30
	case days <= 60:
		return Aging31To60
	case days <= 90:
		return Aging61To90
	default:
		return AgingOver90Days
	}
}

// DaysOverdue computes whole days elapsed past the due date
func DaysOverdue(now, dueDate time.Time) int {
	if !now.After(dueDate) {
		return 0
	}
	return int(now.Sub(dueDate).Hours() / 24)
}

var receivableMutationRoles = []shared.Role{shared.RoleFinance, shared.RoleDirector}

// Receivable is the client collection aggregate, typically created by the
// invoice cascade. Invariant: OutstandingAmount = InvoiceAmount - PaidAmount
// after every mutation; status and aging bucket are re-derived alongside.
type Receivable struct {
	shared.BaseAggregateRoot
	InvoiceID  *uuid.UUID `json:"invoice_id,omitempty"`
	ClientName string     `json:"client_name"`

	InvoiceAmount     decimal.Decimal `json:"invoice_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`

	DueDate     time.Time        `json:"due_date"`
	DaysOverdue int              `json:"days_overdue"`
	AgingBucket AgingBucket      `json:"aging_bucket"`
	Status      ReceivableStatus `json:"status"`

	LastPaymentAt *time.Time `json:"last_payment_at,omitempty"`
}

// NewReceivable creates a receivable with the full amount outstanding
func NewReceivable(invoiceID *uuid.UUID, clientName string, invoiceAmount decimal.Decimal, dueDate time.Time, actor shared.Actor) (*Receivable, error) {
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "client name is required")
	}
	if invoiceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_RECEIVABLE_AMOUNT", "receivable amount must be positive")
	}

	r := &Receivable{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceID:         invoiceID,
		ClientName:        clientName,
		InvoiceAmount:     invoiceAmount,
		PaidAmount:        decimal.Zero,
		DueDate:           dueDate,
	}
	r.SetCreatedBy(actor.ID)
	r.recalculate(time.Now())

	r.AddDomainEvent(NewReceivableCreatedEvent(r, actor))
	return r, nil
}

// recalculate re-derives outstanding amount, aging and status.
// Running it twice with the same clock yields the same result.
func (r *Receivable) recalculate(now time.Time) {
	r.OutstandingAmount = r.InvoiceAmount.Sub(r.PaidAmount)
	r.DaysOverdue = DaysOverdue(now, r.DueDate)
	r.AgingBucket = BucketForDaysOverdue(r.DaysOverdue)

	switch {
	case r.OutstandingAmount.IsZero():
		r.Status = ReceivableStatusPaid
	case r.DaysOverdue > 0:
		r.Status = ReceivableStatusOverdue
	case r.PaidAmount.IsPositive():
		r.Status = ReceivableStatusPartiallyPaid
	default:
		r.Status = ReceivableStatusPending
	}
	r.IncrementVersion()
}

// RefreshAging re-derives the aging bucket and status against the given clock
func (r *Receivable) RefreshAging(now time.Time) {
	r.recalculate(now)
}

// ApplyPayment records a collection against the receivable.
// Partial payments accumulate; overpayment is rejected.
func (r *Receivable) ApplyPayment(amount decimal.Decimal, actor shared.Actor) error {
	if !actor.Can(receivableMutationRoles...) {
		return shared.ErrRoleNotAllowed
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PAYMENT_AMOUNT", "payment amount must be positive")
	}
	if amount.GreaterThan(r.OutstandingAmount) {
		return shared.NewDomainError("PAYMENT_EXCEEDS_OUTSTANDING",
			"payment exceeds the outstanding amount")
	}

	now := time.Now()
	r.PaidAmount = r.PaidAmount.Add(amount)
	r.LastPaymentAt = &now
	r.recalculate(now)

	if r.Status == ReceivableStatusPaid {
		r.AddDomainEvent(NewReceivableSettledEvent(r, actor))
	}
	return nil
}
