package handler

import (
	"context"
	"time"

	deliveryapp "github.com/gkt/backend/internal/application/delivery"
	"github.com/gkt/backend/internal/domain/delivery"
	"github.com/gkt/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProgramHandler handles program-related API endpoints
type ProgramHandler struct {
	BaseHandler
	programService *deliveryapp.ProgramService
}

// NewProgramHandler creates a new ProgramHandler
func NewProgramHandler(programService *deliveryapp.ProgramService) *ProgramHandler {
	return &ProgramHandler{
		programService: programService,
	}
}

// ProgramResponse represents a program in API responses
type ProgramResponse struct {
	ID               uuid.UUID             `json:"id"`
	Name             string                `json:"name"`
	ClientName       string                `json:"client_name"`
	DealID           *uuid.UUID            `json:"deal_id,omitempty"`
	OpportunityID    *uuid.UUID            `json:"opportunity_id,omitempty"`
	TotalOrderValue  decimal.Decimal       `json:"total_order_value"`
	Costs            delivery.ProgramCosts `json:"costs"`
	TotalCosts       decimal.Decimal       `json:"total_costs"`
	FinalGP          decimal.Decimal       `json:"final_gp"`
	GPPercent        decimal.Decimal       `json:"gp_percent"`
	Status           string                `json:"status"`
	TrainerSignOff   bool                  `json:"trainer_sign_off"`
	TrainerSignOffAt *time.Time            `json:"trainer_sign_off_at,omitempty"`
	ClientSignOff    bool                  `json:"client_sign_off"`
	ClientSignOffAt  *time.Time            `json:"client_sign_off_at,omitempty"`
	InvoiceEligible  bool                  `json:"invoice_eligible"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

func toProgramResponse(p *delivery.Program) ProgramResponse {
	return ProgramResponse{
		ID:               p.ID,
		Name:             p.Name,
		ClientName:       p.ClientName,
		DealID:           p.DealID,
		OpportunityID:    p.OpportunityID,
		TotalOrderValue:  p.TotalOrderValue,
		Costs:            p.Costs,
		TotalCosts:       p.TotalCosts,
		FinalGP:          p.FinalGP,
		GPPercent:        p.GPPercent,
		Status:           p.Status.String(),
		TrainerSignOff:   p.TrainerSignOff,
		TrainerSignOffAt: p.TrainerSignOffAt,
		ClientSignOff:    p.ClientSignOff,
		ClientSignOffAt:  p.ClientSignOffAt,
		InvoiceEligible:  p.InvoiceEligible,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func toProgramResponses(programs []delivery.Program) []ProgramResponse {
	out := make([]ProgramResponse, len(programs))
	for i := range programs {
		out[i] = toProgramResponse(&programs[i])
	}
	return out
}

// Create godoc
// @ID           createProgram
// @Summary      Create program
// @Description  Create a delivery program, optionally linked to a deal
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        request body delivery.CreateProgramRequest true "Program details"
// @Success      201 {object} APIResponse[ProgramResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /programs [post]
func (h *ProgramHandler) Create(c *gin.Context) {
	var req deliveryapp.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	program, err := h.programService.Create(c.Request.Context(), req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toProgramResponse(program))
}

// List godoc
// @ID           listPrograms
// @Summary      List programs
// @Description  List programs with pagination and optional status filter
// @Tags         programs
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        status query string false "Filter by status"
// @Success      200 {object} APIResponse[[]ProgramResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /programs [get]
func (h *ProgramHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	programs, total, err := h.programService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toProgramResponses(programs), total, filter.Page, filter.PageSize)
}

// Get godoc
// @ID           getProgram
// @Summary      Get program
// @Description  Get a program by ID
// @Tags         programs
// @Produce      json
// @Param        id path string true "Program ID"
// @Success      200 {object} APIResponse[ProgramResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /programs/{id} [get]
func (h *ProgramHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	program, err := h.programService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProgramResponse(program))
}

// UpdateCosts godoc
// @ID           updateProgramCosts
// @Summary      Update program costs
// @Description  Replace the program cost vector and re-derive GP
// @Tags         programs
// @Accept       json
// @Produce      json
// @Param        id path string true "Program ID"
// @Param        request body delivery.UpdateProgramCostsRequest true "Cost inputs"
// @Success      200 {object} APIResponse[ProgramResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /programs/{id}/costs [put]
func (h *ProgramHandler) UpdateCosts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	var req deliveryapp.UpdateProgramCostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	program, err := h.programService.UpdateCosts(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProgramResponse(program))
}

// Start godoc
// @ID           startProgram
// @Summary      Start program
// @Description  Move a planned program into delivery
// @Tags         programs
// @Produce      json
// @Param        id path string true "Program ID"
// @Success      200 {object} APIResponse[ProgramResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /programs/{id}/start [post]
func (h *ProgramHandler) Start(c *gin.Context) {
	h.mutateByID(c, h.programService.Start)
}

// MarkDelivered godoc
// @ID           markProgramDelivered
// @Summary      Mark program delivered
// @Description  Mark an in-progress program as delivered
// @Tags         programs
// @Produce      json
// @Param        id path string true "Program ID"
// @Success      200 {object} APIResponse[ProgramResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /programs/{id}/delivered [post]
func (h *ProgramHandler) MarkDelivered(c *gin.Context) {
	h.mutateByID(c, h.programService.MarkDelivered)
}

// TrainerSignOff godoc
// @ID           recordTrainerSignOff
// @Summary      Record trainer sign-off
// @Description  Record the trainer's delivery confirmation
// @Tags         programs
// @Produce      json
// @Param        id path string true "Program ID"
// @Success      200 {object} APIResponse[ProgramResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /programs/{id}/trainer-signoff [post]
func (h *ProgramHandler) TrainerSignOff(c *gin.Context) {
	h.mutateWithActor(c, h.programService.RecordTrainerSignOff)
}

// ClientSignOff godoc
// @ID           recordClientSignOff
// @Summary      Record client sign-off
// @Description  Record the client's acceptance; both sign-offs make the program invoice-eligible
// @Tags         programs
// @Produce      json
// @Param        id path string true "Program ID"
// @Success      200 {object} APIResponse[ProgramResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /programs/{id}/client-signoff [post]
func (h *ProgramHandler) ClientSignOff(c *gin.Context) {
	h.mutateWithActor(c, h.programService.RecordClientSignOff)
}

func (h *ProgramHandler) mutateByID(c *gin.Context, fn func(context.Context, uuid.UUID) (*delivery.Program, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	program, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProgramResponse(program))
}

func (h *ProgramHandler) mutateWithActor(c *gin.Context, fn func(context.Context, uuid.UUID, shared.Actor) (*delivery.Program, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid program ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	program, err := fn(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProgramResponse(program))
}
