// internal/handlers/payment/payment_handler.go
package payment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/payment"
	"fieldserve-backend/internal/pkg/response"
	service "fieldserve-backend/internal/service/payment"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	logger         *zap.Logger
}

func NewPaymentHandler(paymentService *service.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

func (h *PaymentHandler) Record(c *gin.Context) {
	var req payment.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	recorded, err := h.paymentService.RecordPayment(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to record payment", err)
		return
	}

	response.Success(c, http.StatusCreated, "payment recorded", recorded)
}

func (h *PaymentHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var customerID *int64
	if raw := c.Query("customer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid customer id", err)
			return
		}
		customerID = &id
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), customerID, page, limit)
	if err != nil {
		response.FromError(c, "failed to list payments", err)
		return
	}

	response.Success(c, http.StatusOK, "payments retrieved", payments)
}
