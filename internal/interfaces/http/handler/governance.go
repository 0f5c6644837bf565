package handler

import (
	"time"

	governanceapp "github.com/gkt/backend/internal/application/governance"
	"github.com/gkt/backend/internal/domain/governance"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GovernanceHandler exposes the risk-and-approval records maintained by
// the deal cascade. All endpoints are read-only.
type GovernanceHandler struct {
	BaseHandler
	governanceService *governanceapp.GovernanceService
}

// NewGovernanceHandler creates a new GovernanceHandler
func NewGovernanceHandler(governanceService *governanceapp.GovernanceService) *GovernanceHandler {
	return &GovernanceHandler{
		governanceService: governanceService,
	}
}

// GovernanceResponse represents a governance record in API responses
type GovernanceResponse struct {
	ID                       uuid.UUID                       `json:"id"`
	DealID                   uuid.UUID                       `json:"deal_id"`
	RiskLevel                string                          `json:"risk_level"`
	LossMakingProjectFlag    bool                            `json:"loss_making_project_flag"`
	DirectorApprovalRequired bool                            `json:"director_approval_required"`
	FraudAlertType           string                          `json:"fraud_alert_type,omitempty"`
	FraudAlertAt             *time.Time                      `json:"fraud_alert_at,omitempty"`
	FraudAlertNotes          string                          `json:"fraud_alert_notes,omitempty"`
	ApprovalHistory          []governance.ApprovalRecord     `json:"approval_history"`
	DuplicateDetectionLog    []governance.DuplicateDetection `json:"duplicate_detection_log"`
	LastEvaluatedAt          *time.Time                      `json:"last_evaluated_at,omitempty"`
	CreatedAt                time.Time                       `json:"created_at"`
	UpdatedAt                time.Time                       `json:"updated_at"`
}

func toGovernanceResponse(g *governance.Governance) GovernanceResponse {
	return GovernanceResponse{
		ID:                       g.ID,
		DealID:                   g.DealID,
		RiskLevel:                g.RiskLevel.String(),
		LossMakingProjectFlag:    g.LossMakingProjectFlag,
		DirectorApprovalRequired: g.DirectorApprovalRequired,
		FraudAlertType:           string(g.FraudAlertType),
		FraudAlertAt:             g.FraudAlertAt,
		FraudAlertNotes:          g.FraudAlertNotes,
		ApprovalHistory:          g.ApprovalHistory,
		DuplicateDetectionLog:    g.DuplicateDetectionLog,
		LastEvaluatedAt:          g.LastEvaluatedAt,
		CreatedAt:                g.CreatedAt,
		UpdatedAt:                g.UpdatedAt,
	}
}

// GetByDeal godoc
// @ID           getGovernanceByDeal
// @Summary      Get governance record
// @Description  Get the risk-and-approval record attached to a deal
// @Tags         governance
// @Produce      json
// @Param        id path string true "Deal ID"
// @Success      200 {object} APIResponse[GovernanceResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /deals/{id}/governance [get]
func (h *GovernanceHandler) GetByDeal(c *gin.Context) {
	dealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid deal ID")
		return
	}

	record, err := h.governanceService.GetByDeal(c.Request.Context(), dealID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toGovernanceResponse(record))
}

// ListFlagged godoc
// @ID           listFlaggedGovernance
// @Summary      List flagged governance records
// @Description  List records carrying a fraud alert or requiring director approval
// @Tags         governance
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]GovernanceResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /governance/flagged [get]
func (h *GovernanceHandler) ListFlagged(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	records, total, err := h.governanceService.ListFlagged(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]GovernanceResponse, len(records))
	for i := range records {
		out[i] = toGovernanceResponse(&records[i])
	}

	h.SuccessWithMeta(c, out, total, filter.Page, filter.PageSize)
}
