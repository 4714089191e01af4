// internal/handlers/visit/visit_handler.go
package visit

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/visit"
	"fieldserve-backend/internal/pkg/response"
	service "fieldserve-backend/internal/service/visit"
)

type VisitHandler struct {
	visitService *service.VisitService
	logger       *zap.Logger
}

func NewVisitHandler(visitService *service.VisitService, logger *zap.Logger) *VisitHandler {
	return &VisitHandler{
		visitService: visitService,
		logger:       logger,
	}
}

// Create adds a one-off visit outside the initial schedule.
func (h *VisitHandler) Create(c *gin.Context) {
	var req visit.CreateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	created, err := h.visitService.CreateVisit(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create visit", err)
		return
	}

	response.Success(c, http.StatusCreated, "visit created", created)
}

func (h *VisitHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid visit id", err)
		return
	}

	v, err := h.visitService.GetVisit(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "visit not found", err)
		return
	}

	response.Success(c, http.StatusOK, "visit retrieved", v)
}

func (h *VisitHandler) List(c *gin.Context) {
	var filters visit.VisitListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	visits, err := h.visitService.ListVisits(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list visits", err)
		return
	}

	response.Success(c, http.StatusOK, "visits retrieved", visits)
}

// Update applies a partial update. Assigning a technician or completing
// the visit triggers the derived side effects server-side.
func (h *VisitHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid visit id", err)
		return
	}

	var req visit.UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	updated, err := h.visitService.UpdateVisit(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update visit", err)
		return
	}

	response.Success(c, http.StatusOK, "visit updated", updated)
}

// CustomerUpcoming resolves a customer's pending visit pool.
func (h *VisitHandler) CustomerUpcoming(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer id", err)
		return
	}

	visits, err := h.visitService.CustomerUpcoming(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to fetch upcoming visits", err)
		return
	}

	response.Success(c, http.StatusOK, "upcoming visits retrieved", visits)
}

// CustomerHistory resolves a customer's completed visit pool.
func (h *VisitHandler) CustomerHistory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer id", err)
		return
	}

	visits, err := h.visitService.CustomerHistory(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to fetch service history", err)
		return
	}

	response.Success(c, http.StatusOK, "service history retrieved", visits)
}
