package handler

import (
	"context"

	crmapp "github.com/gkt/backend/internal/application/crm"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OpportunityHandler handles opportunity-related API endpoints
type OpportunityHandler struct {
	BaseHandler
	opportunityService *crmapp.OpportunityService
}

// NewOpportunityHandler creates a new OpportunityHandler
func NewOpportunityHandler(opportunityService *crmapp.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{
		opportunityService: opportunityService,
	}
}

// Create godoc
// @ID           createOpportunity
// @Summary      Create opportunity
// @Description  Open a new opportunity with an assigned adhoc code
// @Tags         opportunities
// @Accept       json
// @Produce      json
// @Param        request body crm.CreateOpportunityRequest true "Opportunity details"
// @Success      201 {object} APIResponse[crm.OpportunityResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /opportunities [post]
func (h *OpportunityHandler) Create(c *gin.Context) {
	var req crmapp.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.opportunityService.Create(c.Request.Context(), req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List godoc
// @ID           listOpportunities
// @Summary      List opportunities
// @Description  List opportunities with pagination and optional status filter
// @Tags         opportunities
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by status"
// @Param        search query string false "Search by name or client"
// @Success      200 {object} APIResponse[[]crm.OpportunityResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /opportunities [get]
func (h *OpportunityHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.opportunityService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Get godoc
// @ID           getOpportunity
// @Summary      Get opportunity
// @Description  Get an opportunity by ID
// @Tags         opportunities
// @Produce      json
// @Param        id path string true "Opportunity ID"
// @Success      200 {object} APIResponse[crm.OpportunityResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /opportunities/{id} [get]
func (h *OpportunityHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid opportunity ID")
		return
	}

	resp, err := h.opportunityService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateCosts godoc
// @ID           updateOpportunityCosts
// @Summary      Update opportunity costs
// @Description  Replace the opportunity cost vector and re-derive GP
// @Tags         opportunities
// @Accept       json
// @Produce      json
// @Param        id path string true "Opportunity ID"
// @Param        request body crm.UpdateOpportunityCostsRequest true "Cost inputs"
// @Success      200 {object} APIResponse[crm.OpportunityResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /opportunities/{id}/costs [put]
func (h *OpportunityHandler) UpdateCosts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid opportunity ID")
		return
	}

	var req crmapp.UpdateOpportunityCostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.opportunityService.UpdateCosts(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Qualify godoc
// @ID           qualifyOpportunity
// @Summary      Qualify opportunity
// @Description  Move an opportunity from New to Qualified
// @Tags         opportunities
// @Produce      json
// @Param        id path string true "Opportunity ID"
// @Success      200 {object} APIResponse[crm.OpportunityResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /opportunities/{id}/qualify [post]
func (h *OpportunityHandler) Qualify(c *gin.Context) {
	h.transition(c, h.opportunityService.Qualify)
}

// SendToDelivery godoc
// @ID           sendOpportunityToDelivery
// @Summary      Send opportunity to delivery
// @Description  Move a qualified opportunity into delivery review
// @Tags         opportunities
// @Produce      json
// @Param        id path string true "Opportunity ID"
// @Success      200 {object} APIResponse[crm.OpportunityResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /opportunities/{id}/send-to-delivery [post]
func (h *OpportunityHandler) SendToDelivery(c *gin.Context) {
	h.transition(c, h.opportunityService.SendToDelivery)
}

// MarkLost godoc
// @ID           markOpportunityLost
// @Summary      Mark opportunity lost
// @Description  Close an opportunity as lost with a reason
// @Tags         opportunities
// @Accept       json
// @Produce      json
// @Param        id path string true "Opportunity ID"
// @Param        request body crm.MarkLostRequest true "Lost reason"
// @Success      200 {object} APIResponse[crm.OpportunityResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /opportunities/{id}/lost [post]
func (h *OpportunityHandler) MarkLost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid opportunity ID")
		return
	}

	var req crmapp.MarkLostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.opportunityService.MarkLost(c.Request.Context(), id, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Convert godoc
// @ID           convertOpportunity
// @Summary      Convert opportunity to deal
// @Description  Convert a won opportunity into a deal carrying its commercials
// @Tags         opportunities
// @Produce      json
// @Param        id path string true "Opportunity ID"
// @Success      201 {object} APIResponse[crm.DealResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /opportunities/{id}/convert [post]
func (h *OpportunityHandler) Convert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid opportunity ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.opportunityService.Convert(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

type opportunityTransition func(ctx context.Context, id uuid.UUID, actor shared.Actor) (*crmapp.OpportunityResponse, error)

func (h *OpportunityHandler) transition(c *gin.Context, fn opportunityTransition) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid opportunity ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := fn(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
