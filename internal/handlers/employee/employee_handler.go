// internal/handlers/employee/employee_handler.go
package employee

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/employee"
	"fieldserve-backend/internal/middleware"
	xerrors "fieldserve-backend/internal/pkg/errors"
	"fieldserve-backend/internal/pkg/response"
	service "fieldserve-backend/internal/service/employee"
)

type EmployeeHandler struct {
	employeeService *service.EmployeeService
	logger          *zap.Logger
}

func NewEmployeeHandler(employeeService *service.EmployeeService, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		logger:          logger,
	}
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req employee.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	created, err := h.employeeService.CreateEmployee(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create employee", err)
		return
	}

	response.Success(c, http.StatusCreated, "employee created", created)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid employee id", err)
		return
	}

	e, err := h.employeeService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "employee not found", err)
		return
	}

	response.Success(c, http.StatusOK, "employee retrieved", e)
}

func (h *EmployeeHandler) List(c *gin.Context) {
	var filters employee.EmployeeListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	employees, err := h.employeeService.ListEmployees(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list employees", err)
		return
	}

	response.Success(c, http.StatusOK, "employees retrieved", employees)
}

// Workspace returns the visits assigned to the authenticated employee.
// The identity comes from the verified session, never from the request.
func (h *EmployeeHandler) Workspace(c *gin.Context) {
	employeeID, ok := middleware.GetEmployeeID(c)
	if !ok {
		response.FromError(c, "no active session", xerrors.ErrUnauthorized)
		return
	}

	visits, err := h.employeeService.Workspace(c.Request.Context(), employeeID)
	if err != nil {
		response.FromError(c, "failed to load workspace", err)
		return
	}

	response.Success(c, http.StatusOK, "workspace retrieved", visits)
}
