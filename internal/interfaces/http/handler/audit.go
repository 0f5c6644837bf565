package handler

import (
	auditapp "github.com/gkt/backend/internal/application/audit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditHandler exposes the append-only audit trail and system event log
type AuditHandler struct {
	BaseHandler
	auditService *auditapp.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(auditService *auditapp.AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// GetEntityTrail godoc
// @ID           getEntityAuditTrail
// @Summary      Get entity audit trail
// @Description  List every recorded action on one entity, oldest first
// @Tags         audit
// @Produce      json
// @Param        entityType path string true "Entity type (e.g. Deal, Payable)"
// @Param        entityId path string true "Entity ID"
// @Success      200 {object} APIResponse[[]audit.AuditEntry]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /audit/entities/{entityType}/{entityId} [get]
func (h *AuditHandler) GetEntityTrail(c *gin.Context) {
	entityType := c.Param("entityType")
	if entityType == "" {
		h.BadRequest(c, "Entity type is required")
		return
	}

	entityID, err := uuid.Parse(c.Param("entityId"))
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}

	entries, err := h.auditService.GetEntityTrail(c.Request.Context(), entityType, entityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// GetActorTrail godoc
// @ID           getActorAuditTrail
// @Summary      Get actor audit trail
// @Description  List recorded actions performed by one actor
// @Tags         audit
// @Produce      json
// @Param        actorId path string true "Actor ID"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]audit.AuditEntry]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /audit/actors/{actorId} [get]
func (h *AuditHandler) GetActorTrail(c *gin.Context) {
	actorID, err := uuid.Parse(c.Param("actorId"))
	if err != nil {
		h.BadRequest(c, "Invalid actor ID")
		return
	}

	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, total, err := h.auditService.GetActorTrail(c.Request.Context(), actorID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// ListSystemEvents godoc
// @ID           listSystemEvents
// @Summary      List system events
// @Description  List system event log rows with pagination
// @Tags         audit
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} APIResponse[[]audit.SystemEventLog]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /audit/system-events [get]
func (h *AuditHandler) ListSystemEvents(c *gin.Context) {
	filter, err := bindListFilter(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	events, total, err := h.auditService.ListSystemEvents(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, events, total, filter.Page, filter.PageSize)
}
