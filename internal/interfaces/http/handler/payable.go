package handler

import (
	"context"
	"time"

	procurementapp "github.com/gkt/backend/internal/application/procurement"
	"github.com/gkt/backend/internal/domain/procurement"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayableHandler handles vendor payable API endpoints
type PayableHandler struct {
	BaseHandler
	payableService *procurementapp.PayableService
}

// NewPayableHandler creates a new PayableHandler
func NewPayableHandler(payableService *procurementapp.PayableService) *PayableHandler {
	return &PayableHandler{
		payableService: payableService,
	}
}

// PayableResponse represents a vendor payable in API responses
type PayableResponse struct {
	ID                    uuid.UUID       `json:"id"`
	VendorID              uuid.UUID       `json:"vendor_id"`
	VendorName            string          `json:"vendor_name"`
	VendorPAN             string          `json:"vendor_pan,omitempty"`
	VendorType            string          `json:"vendor_type"`
	NatureOfService       string          `json:"nature_of_service"`
	PurchaseOrderID       *uuid.UUID      `json:"purchase_order_id,omitempty"`
	PayoutReference       string          `json:"payout_reference,omitempty"`
	AdjustedPayableAmount decimal.Decimal `json:"adjusted_payable_amount"`
	PaidAmount            decimal.Decimal `json:"paid_amount"`
	OutstandingAmount     decimal.Decimal `json:"outstanding_amount"`
	HoldFlag              bool            `json:"hold_flag"`
	HoldReason            string          `json:"hold_reason,omitempty"`
	ReleaseFlag           bool            `json:"release_flag"`
	Status                string          `json:"status"`
	ReleasedAt            *time.Time      `json:"released_at,omitempty"`
	PaidAt                *time.Time      `json:"paid_at,omitempty"`
	CancelledAt           *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

func toPayableResponse(p *procurement.Payable) PayableResponse {
	return PayableResponse{
		ID:                    p.ID,
		VendorID:              p.VendorID,
		VendorName:            p.VendorName,
		VendorPAN:             p.VendorPAN,
		VendorType:            string(p.VendorType),
		NatureOfService:       string(p.NatureOfService),
		PurchaseOrderID:       p.PurchaseOrderID,
		PayoutReference:       p.PayoutReference,
		AdjustedPayableAmount: p.AdjustedPayableAmount,
		PaidAmount:            p.PaidAmount,
		OutstandingAmount:     p.OutstandingAmount,
		HoldFlag:              p.HoldFlag,
		HoldReason:            p.HoldReason,
		ReleaseFlag:           p.ReleaseFlag,
		Status:                p.Status.String(),
		ReleasedAt:            p.ReleasedAt,
		PaidAt:                p.PaidAt,
		CancelledAt:           p.CancelledAt,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func toPayableResponses(payables []procurement.Payable) []PayableResponse {
	out := make([]PayableResponse, len(payables))
	for i := range payables {
		out[i] = toPayableResponse(&payables[i])
	}
	return out
}

// Create godoc
// @ID           createPayable
// @Summary      Create payable
// @Description  Create a vendor payable; withholding is derived by the tax cascade
// @Tags         payables
// @Accept       json
// @Produce      json
// @Param        request body procurement.CreatePayableRequest true "Payable details"
// @Success      201 {object} APIResponse[PayableResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payables [post]
func (h *PayableHandler) Create(c *gin.Context) {
	var req procurementapp.CreatePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	payable, err := h.payableService.Create(c.Request.Context(), req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPayableResponse(payable))
}

// List godoc
// @ID           listPayables
// @Summary      List payables
// @Description  List vendor payables with pagination and optional status filter
// @Tags         payables
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by status"
// @Success      200 {object} APIResponse[[]PayableResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payables [get]
func (h *PayableHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payables, total, err := h.payableService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toPayableResponses(payables), total, filter.Page, filter.PageSize)
}

// Get godoc
// @ID           getPayable
// @Summary      Get payable
// @Description  Get a vendor payable by ID
// @Tags         payables
// @Produce      json
// @Param        id path string true "Payable ID"
// @Success      200 {object} APIResponse[PayableResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payables/{id} [get]
func (h *PayableHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payable ID")
		return
	}

	payable, err := h.payableService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPayableResponse(payable))
}

// Hold godoc
// @ID           holdPayable
// @Summary      Hold payable
// @Description  Place a payable on hold with a reason; hold wins over release
// @Tags         payables
// @Accept       json
// @Produce      json
// @Param        id path string true "Payable ID"
// @Param        request body procurement.HoldPayableRequest true "Hold reason"
// @Success      200 {object} APIResponse[PayableResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payables/{id}/hold [post]
func (h *PayableHandler) Hold(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payable ID")
		return
	}

	var req procurementapp.HoldPayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	payable, err := h.payableService.Hold(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPayableResponse(payable))
}

// Release godoc
// @ID           releasePayable
// @Summary      Release payable
// @Description  Release a payable for disbursement, assigning its payout reference
// @Tags         payables
// @Produce      json
// @Param        id path string true "Payable ID"
// @Success      200 {object} APIResponse[PayableResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payables/{id}/release [post]
func (h *PayableHandler) Release(c *gin.Context) {
	h.transitionWithActor(c, h.payableService.Release)
}

// RecordPayment godoc
// @ID           recordPayablePayment
// @Summary      Record payment
// @Description  Record a disbursement against a released payable
// @Tags         payables
// @Accept       json
// @Produce      json
// @Param        id path string true "Payable ID"
// @Param        request body procurement.RecordPaymentRequest true "Payment amount"
// @Success      200 {object} APIResponse[PayableResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payables/{id}/payments [post]
func (h *PayableHandler) RecordPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payable ID")
		return
	}

	var req procurementapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	payable, err := h.payableService.RecordPayment(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPayableResponse(payable))
}

// Cancel godoc
// @ID           cancelPayable
// @Summary      Cancel payable
// @Description  Cancel a payable with a reason
// @Tags         payables
// @Accept       json
// @Produce      json
// @Param        id path string true "Payable ID"
// @Param        request body procurement.CancelPayableRequest true "Cancellation reason"
// @Success      200 {object} APIResponse[PayableResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payables/{id}/cancel [post]
func (h *PayableHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payable ID")
		return
	}

	var req procurementapp.CancelPayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	payable, err := h.payableService.Cancel(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPayableResponse(payable))
}

func (h *PayableHandler) transitionWithActor(c *gin.Context, fn func(context.Context, uuid.UUID, shared.Actor) (*procurement.Payable, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payable ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	payable, err := fn(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPayableResponse(payable))
}
