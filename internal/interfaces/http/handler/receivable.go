package handler

import (
	"time"

	billingapp "github.com/gkt/backend/internal/application/billing"
	"github.com/gkt/backend/internal/domain/billing"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableHandler handles receivable-related API endpoints
type ReceivableHandler struct {
	BaseHandler
	receivableService *billingapp.ReceivableService
}

// NewReceivableHandler creates a new ReceivableHandler
func NewReceivableHandler(receivableService *billingapp.ReceivableService) *ReceivableHandler {
	return &ReceivableHandler{
		receivableService: receivableService,
	}
}

// ReceivableResponse represents a receivable in API responses
type ReceivableResponse struct {
	ID                uuid.UUID       `json:"id"`
	InvoiceID         *uuid.UUID      `json:"invoice_id,omitempty"`
	ClientName        string          `json:"client_name"`
	InvoiceAmount     decimal.Decimal `json:"invoice_amount"`
	PaidAmount        decimal.Decimal `json:"paid_amount"`
	OutstandingAmount decimal.Decimal `json:"outstanding_amount"`
	DueDate           time.Time       `json:"due_date"`
	DaysOverdue       int             `json:"days_overdue"`
	AgingBucket       string          `json:"aging_bucket"`
	Status            string          `json:"status"`
	LastPaymentAt     *time.Time      `json:"last_payment_at,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func toReceivableResponse(r *billing.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ID:                r.ID,
		InvoiceID:         r.InvoiceID,
		ClientName:        r.ClientName,
		InvoiceAmount:     r.InvoiceAmount,
		PaidAmount:        r.PaidAmount,
		OutstandingAmount: r.OutstandingAmount,
		DueDate:           r.DueDate,
		DaysOverdue:       r.DaysOverdue,
		AgingBucket:       r.AgingBucket.String(),
		Status:            r.Status.String(),
		LastPaymentAt:     r.LastPaymentAt,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func toReceivableResponses(receivables []billing.Receivable) []ReceivableResponse {
	out := make([]ReceivableResponse, len(receivables))
	for i := range receivables {
		out[i] = toReceivableResponse(&receivables[i])
	}
	return out
}

// List godoc
// @ID           listReceivables
// @Summary      List receivables
// @Description  List receivables with pagination and optional status filter
// @Tags         receivables
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by status"
// @Success      200 {object} APIResponse[[]ReceivableResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /receivables [get]
func (h *ReceivableHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receivables, total, err := h.receivableService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toReceivableResponses(receivables), total, filter.Page, filter.PageSize)
}

// Get godoc
// @ID           getReceivable
// @Summary      Get receivable
// @Description  Get a receivable by ID
// @Tags         receivables
// @Produce      json
// @Param        id path string true "Receivable ID"
// @Success      200 {object} APIResponse[ReceivableResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /receivables/{id} [get]
func (h *ReceivableHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receivable ID")
		return
	}

	receivable, err := h.receivableService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toReceivableResponse(receivable))
}

// ApplyPayment godoc
// @ID           applyReceivablePayment
// @Summary      Apply payment
// @Description  Apply a client payment; status and aging are re-derived
// @Tags         receivables
// @Accept       json
// @Produce      json
// @Param        id path string true "Receivable ID"
// @Param        request body billing.ApplyReceivablePaymentRequest true "Payment amount"
// @Success      200 {object} APIResponse[ReceivableResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /receivables/{id}/payments [post]
func (h *ReceivableHandler) ApplyPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receivable ID")
		return
	}

	var req billingapp.ApplyReceivablePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	receivable, err := h.receivableService.ApplyPayment(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toReceivableResponse(receivable))
}

// RefreshAging godoc
// @ID           refreshReceivableAging
// @Summary      Refresh aging
// @Description  Re-derive overdue days and aging bucket for one receivable
// @Tags         receivables
// @Produce      json
// @Param        id path string true "Receivable ID"
// @Success      200 {object} APIResponse[ReceivableResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /receivables/{id}/refresh-aging [post]
func (h *ReceivableHandler) RefreshAging(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid receivable ID")
		return
	}

	receivable, err := h.receivableService.RefreshAging(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toReceivableResponse(receivable))
}

// RefreshAllAging godoc
// @ID           refreshAllReceivableAging
// @Summary      Refresh aging for all receivables
// @Description  Re-derive aging across open receivables in batches
// @Tags         receivables
// @Produce      json
// @Success      200 {object} APIResponse[RefreshAgingResponse]
// @Failure      500 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /receivables/refresh-aging [post]
func (h *ReceivableHandler) RefreshAllAging(c *gin.Context) {
	updated, err := h.receivableService.RefreshAllAging(c.Request.Context(), 100)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, RefreshAgingResponse{Updated: updated})
}

// RefreshAgingResponse reports how many receivables were re-aged
type RefreshAgingResponse struct {
	Updated int `json:"updated"`
}
