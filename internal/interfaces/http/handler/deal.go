package handler

import (
	crmapp "github.com/gkt/backend/internal/application/crm"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DealHandler handles deal-related API endpoints
type DealHandler struct {
	BaseHandler
	dealService *crmapp.DealService
}

// NewDealHandler creates a new DealHandler
func NewDealHandler(dealService *crmapp.DealService) *DealHandler {
	return &DealHandler{
		dealService: dealService,
	}
}

// Create godoc
// @ID           createDeal
// @Summary      Create deal
// @Description  Create a deal directly with its commercial inputs
// @Tags         deals
// @Accept       json
// @Produce      json
// @Param        request body crm.CreateDealRequest true "Deal details"
// @Success      201 {object} APIResponse[crm.DealResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /deals [post]
func (h *DealHandler) Create(c *gin.Context) {
	var req crmapp.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.dealService.Create(c.Request.Context(), req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List godoc
// @ID           listDeals
// @Summary      List deals
// @Description  List deals with pagination and optional approval status filter
// @Tags         deals
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by approval status"
// @Param        search query string false "Search by client or deal number"
// @Success      200 {object} APIResponse[[]crm.DealResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /deals [get]
func (h *DealHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.dealService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Get godoc
// @ID           getDeal
// @Summary      Get deal
// @Description  Get a deal by ID
// @Tags         deals
// @Produce      json
// @Param        id path string true "Deal ID"
// @Success      200 {object} APIResponse[crm.DealResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /deals/{id} [get]
func (h *DealHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid deal ID")
		return
	}

	resp, err := h.dealService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateCommercials godoc
// @ID           updateDealCommercials
// @Summary      Update deal commercials
// @Description  Replace order value and costs, re-deriving margins and the approval gate
// @Tags         deals
// @Accept       json
// @Produce      json
// @Param        id path string true "Deal ID"
// @Param        request body crm.UpdateDealRequest true "Commercial inputs"
// @Success      200 {object} APIResponse[crm.DealResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /deals/{id}/commercials [put]
func (h *DealHandler) UpdateCommercials(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid deal ID")
		return
	}

	var req crmapp.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.dealService.UpdateCommercials(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Approve godoc
// @ID           approveDeal
// @Summary      Approve deal
// @Description  Approve a pending deal; low-margin deals require a director
// @Tags         deals
// @Produce      json
// @Param        id path string true "Deal ID"
// @Success      200 {object} APIResponse[crm.DealResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /deals/{id}/approve [post]
func (h *DealHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid deal ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.dealService.Approve(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Reject godoc
// @ID           rejectDeal
// @Summary      Reject deal
// @Description  Reject a pending deal with a reason
// @Tags         deals
// @Accept       json
// @Produce      json
// @Param        id path string true "Deal ID"
// @Param        request body crm.RejectDealRequest true "Rejection reason"
// @Success      200 {object} APIResponse[crm.DealResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /deals/{id}/reject [post]
func (h *DealHandler) Reject(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid deal ID")
		return
	}

	var req crmapp.RejectDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.dealService.Reject(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
