// internal/app/router.go
package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authHandler "fieldserve-backend/internal/handlers/auth"
	customerHandler "fieldserve-backend/internal/handlers/customer"
	employeeHandler "fieldserve-backend/internal/handlers/employee"
	leadHandler "fieldserve-backend/internal/handlers/lead"
	paymentHandler "fieldserve-backend/internal/handlers/payment"
	productHandler "fieldserve-backend/internal/handlers/product"
	visitHandler "fieldserve-backend/internal/handlers/visit"
	"fieldserve-backend/internal/ws"
)

type Handlers struct {
	Auth     *authHandler.AuthHandler
	Customer *customerHandler.CustomerHandler
	Visit    *visitHandler.VisitHandler
	Employee *employeeHandler.EmployeeHandler
	Product  *productHandler.ProductHandler
	Lead     *leadHandler.LeadHandler
	Payment  *paymentHandler.PaymentHandler
	Hub      *ws.Hub
}

// SetupRouter registers every route twice: once at the page path the
// browser navigates to and once under /api for programmatic clients. The
// request gate applies the same role policy to both; only the failure
// shape differs (redirects for pages, JSON for /api).
func SetupRouter(r *gin.Engine, h *Handlers) {
	registerRoutes(&r.RouterGroup, h)
	registerRoutes(r.Group("/api"), h)

	// ==================== Health & WebSocket ====================
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": "fieldserve", "status": "ok"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ws", h.Hub.HandleConnection)
}

func registerRoutes(g *gin.RouterGroup, h *Handlers) {
	// ==================== Auth ====================
	g.POST("/login", h.Auth.RequestOTP)
	g.POST("/verify-otp", h.Auth.VerifyOTP)
	g.POST("/logout", h.Auth.Logout)
	g.GET("/unauthorized", h.Auth.Unauthorized)

	// ==================== Customers ====================
	customers := g.Group("/customer")
	{
		customers.POST("", h.Customer.Create)
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.GET("/:id/upcoming-services", h.Visit.CustomerUpcoming)
		customers.GET("/:id/service-history", h.Visit.CustomerHistory)
	}

	// ==================== Service Visits ====================
	visits := g.Group("/service")
	{
		visits.POST("", h.Visit.Create)
		visits.GET("", h.Visit.List)
		visits.GET("/:id", h.Visit.Get)
		visits.PUT("/:id", h.Visit.Update)
	}

	// ==================== Employees ====================
	employees := g.Group("/employee")
	{
		employees.POST("", h.Employee.Create)
		employees.GET("", h.Employee.List)
		employees.GET("/workspace", h.Employee.Workspace)
		employees.GET("/:id", h.Employee.Get)
	}

	// ==================== Products / Stock ====================
	products := g.Group("/product")
	{
		products.POST("", h.Product.Intake)
		products.GET("", h.Product.List)
		products.GET("/:serial", h.Product.GetBySerial)
		products.POST("/reset-bindings", h.Product.ResetBindings)
	}

	// ==================== Leads ====================
	leads := g.Group("/leads")
	{
		leads.POST("", h.Lead.Create)
		leads.GET("", h.Lead.List)
	}

	// ==================== Payments & Accounts ====================
	payments := g.Group("/payment")
	{
		payments.POST("", h.Payment.Record)
		payments.GET("", h.Payment.List)
	}
	g.GET("/account", h.Payment.List)
}
