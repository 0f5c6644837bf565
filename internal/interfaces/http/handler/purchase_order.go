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

// PurchaseOrderHandler handles purchase order-related API endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	poService *procurementapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(poService *procurementapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		poService: poService,
	}
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID                    uuid.UUID       `json:"id"`
	PONumber              string          `json:"po_number"`
	DealID                *uuid.UUID      `json:"deal_id,omitempty"`
	VendorName            string          `json:"vendor_name"`
	Details               string          `json:"details,omitempty"`
	ApprovedCost          decimal.Decimal `json:"approved_cost"`
	AdjustedPayableAmount decimal.Decimal `json:"adjusted_payable_amount"`
	Status                string          `json:"status"`
	ApprovedAt            *time.Time      `json:"approved_at,omitempty"`
	IssuedAt              *time.Time      `json:"issued_at,omitempty"`
	CompletedAt           *time.Time      `json:"completed_at,omitempty"`
	CancelledAt           *time.Time      `json:"cancelled_at,omitempty"`
	CancelReason          string          `json:"cancel_reason,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

func toPurchaseOrderResponse(po *procurement.PurchaseOrder) PurchaseOrderResponse {
	return PurchaseOrderResponse{
		ID:                    po.ID,
		PONumber:              po.PONumber,
		DealID:                po.DealID,
		VendorName:            po.VendorName,
		Details:               po.Details,
		ApprovedCost:          po.ApprovedCost,
		AdjustedPayableAmount: po.AdjustedPayableAmount,
		Status:                po.Status.String(),
		ApprovedAt:            po.ApprovedAt,
		IssuedAt:              po.IssuedAt,
		CompletedAt:           po.CompletedAt,
		CancelledAt:           po.CancelledAt,
		CancelReason:          po.CancelReason,
		CreatedAt:             po.CreatedAt,
		UpdatedAt:             po.UpdatedAt,
	}
}

func toPurchaseOrderResponses(orders []procurement.PurchaseOrder) []PurchaseOrderResponse {
	out := make([]PurchaseOrderResponse, len(orders))
	for i := range orders {
		out[i] = toPurchaseOrderResponse(&orders[i])
	}
	return out
}

// Create godoc
// @ID           createPurchaseOrder
// @Summary      Create purchase order
// @Description  Create a purchase order with an assigned PO number
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        request body procurement.CreatePurchaseOrderRequest true "Purchase order details"
// @Success      201 {object} APIResponse[PurchaseOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req procurementapp.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	po, err := h.poService.Create(c.Request.Context(), req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPurchaseOrderResponse(po))
}

// List godoc
// @ID           listPurchaseOrders
// @Summary      List purchase orders
// @Description  List purchase orders with pagination and optional status filter
// @Tags         purchase-orders
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by status"
// @Success      200 {object} APIResponse[[]PurchaseOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, total, err := h.poService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toPurchaseOrderResponses(orders), total, filter.Page, filter.PageSize)
}

// Get godoc
// @ID           getPurchaseOrder
// @Summary      Get purchase order
// @Description  Get a purchase order by ID
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Success      200 {object} APIResponse[PurchaseOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	po, err := h.poService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPurchaseOrderResponse(po))
}

// AssignVendor godoc
// @ID           assignPurchaseOrderVendor
// @Summary      Assign vendor
// @Description  Fill in vendor details on a cascade-created purchase order stub
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Param        request body procurement.AssignVendorRequest true "Vendor details"
// @Success      200 {object} APIResponse[PurchaseOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/vendor [put]
func (h *PurchaseOrderHandler) AssignVendor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req procurementapp.AssignVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	po, err := h.poService.AssignVendor(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPurchaseOrderResponse(po))
}

// UpdateCosts godoc
// @ID           updatePurchaseOrderCosts
// @Summary      Update purchase order costs
// @Description  Adjust approved cost and payable amount on a draft order
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Param        request body procurement.UpdatePOCostsRequest true "Cost adjustments"
// @Success      200 {object} APIResponse[PurchaseOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/costs [put]
func (h *PurchaseOrderHandler) UpdateCosts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req procurementapp.UpdatePOCostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	po, err := h.poService.UpdateCosts(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPurchaseOrderResponse(po))
}

// Approve godoc
// @ID           approvePurchaseOrder
// @Summary      Approve purchase order
// @Description  Approve a draft purchase order
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Success      200 {object} APIResponse[PurchaseOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/approve [post]
func (h *PurchaseOrderHandler) Approve(c *gin.Context) {
	h.transitionWithActor(c, h.poService.Approve)
}

// Issue godoc
// @ID           issuePurchaseOrder
// @Summary      Issue purchase order
// @Description  Issue an approved purchase order to the vendor
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Success      200 {object} APIResponse[PurchaseOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/issue [post]
func (h *PurchaseOrderHandler) Issue(c *gin.Context) {
	h.transitionWithActor(c, h.poService.Issue)
}

// Complete godoc
// @ID           completePurchaseOrder
// @Summary      Complete purchase order
// @Description  Mark an issued purchase order as completed
// @Tags         purchase-orders
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Success      200 {object} APIResponse[PurchaseOrderResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/complete [post]
func (h *PurchaseOrderHandler) Complete(c *gin.Context) {
	h.transitionWithActor(c, h.poService.Complete)
}

// Cancel godoc
// @ID           cancelPurchaseOrder
// @Summary      Cancel purchase order
// @Description  Cancel a purchase order with a reason
// @Tags         purchase-orders
// @Accept       json
// @Produce      json
// @Param        id path string true "Purchase order ID"
// @Param        request body procurement.CancelPORequest true "Cancellation reason"
// @Success      200 {object} APIResponse[PurchaseOrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /purchase-orders/{id}/cancel [post]
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	var req procurementapp.CancelPORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	po, err := h.poService.Cancel(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPurchaseOrderResponse(po))
}

func (h *PurchaseOrderHandler) transitionWithActor(c *gin.Context, fn func(context.Context, uuid.UUID, shared.Actor) (*procurement.PurchaseOrder, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	po, err := fn(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPurchaseOrderResponse(po))
}
