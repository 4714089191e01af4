// internal/handlers/product/product_handler.go
package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/product"
	"fieldserve-backend/internal/pkg/response"
	service "fieldserve-backend/internal/service/product"
)

type ProductHandler struct {
	productService *service.ProductService
	logger         *zap.Logger
}

func NewProductHandler(productService *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// Intake registers a new serialized unit as in-stock inventory.
func (h *ProductHandler) Intake(c *gin.Context) {
	var req product.IntakeProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	created, err := h.productService.Intake(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to register product", err)
		return
	}

	response.Success(c, http.StatusCreated, "product registered", created)
}

func (h *ProductHandler) GetBySerial(c *gin.Context) {
	p, err := h.productService.GetBySerial(c.Request.Context(), c.Param("serial"))
	if err != nil {
		response.FromError(c, "product not found", err)
		return
	}

	response.Success(c, http.StatusOK, "product retrieved", p)
}

func (h *ProductHandler) List(c *gin.Context) {
	var filters product.ProductListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid filters", err)
		return
	}

	products, err := h.productService.List(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list products", err)
		return
	}

	response.Success(c, http.StatusOK, "products retrieved", products)
}

// ResetBindings unassigns every bound unit and returns it to stock.
// Admin-only maintenance operation.
func (h *ProductHandler) ResetBindings(c *gin.Context) {
	count, err := h.productService.ResetAllBindings(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to reset bindings", err)
		return
	}

	response.Success(c, http.StatusOK, "bindings reset", gin.H{"released": count})
}
