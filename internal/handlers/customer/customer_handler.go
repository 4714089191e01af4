// internal/handlers/customer/customer_handler.go
package customer

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/customer"
	"fieldserve-backend/internal/pkg/response"
	service "fieldserve-backend/internal/service/customer"
)

type CustomerHandler struct {
	customerService *service.CustomerService
	logger          *zap.Logger
}

func NewCustomerHandler(customerService *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// Create registers a new customer. Product binding and the initial visit
// schedule happen as part of the same workflow.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	created, err := h.customerService.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create customer", err)
		return
	}

	response.Success(c, http.StatusCreated, "customer created", created)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer id", err)
		return
	}

	cust, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "customer not found", err)
		return
	}

	response.Success(c, http.StatusOK, "customer retrieved", cust)
}

func (h *CustomerHandler) List(c *gin.Context) {
	var filters customer.CustomerListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	customers, err := h.customerService.ListCustomers(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list customers", err)
		return
	}

	response.Success(c, http.StatusOK, "customers retrieved", customers)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid customer id", err)
		return
	}

	var req customer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	updated, err := h.customerService.UpdateCustomer(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer updated", updated)
}
