// internal/handlers/lead/lead_handler.go
package lead

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/lead"
	"fieldserve-backend/internal/pkg/response"
	service "fieldserve-backend/internal/service/lead"
)

type LeadHandler struct {
	leadService *service.LeadService
	logger      *zap.Logger
}

func NewLeadHandler(leadService *service.LeadService, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{
		leadService: leadService,
		logger:      logger,
	}
}

func (h *LeadHandler) Create(c *gin.Context) {
	var req lead.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	created, err := h.leadService.CreateLead(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create lead", err)
		return
	}

	response.Success(c, http.StatusCreated, "lead created", created)
}

func (h *LeadHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	leads, err := h.leadService.ListLeads(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		response.FromError(c, "failed to list leads", err)
		return
	}

	response.Success(c, http.StatusOK, "leads retrieved", leads)
}
