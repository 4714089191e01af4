// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldserve-backend/internal/config"
	"fieldserve-backend/internal/db"
	authHandler "fieldserve-backend/internal/handlers/auth"
	customerHandler "fieldserve-backend/internal/handlers/customer"
	employeeHandler "fieldserve-backend/internal/handlers/employee"
	leadHandler "fieldserve-backend/internal/handlers/lead"
	paymentHandler "fieldserve-backend/internal/handlers/payment"
	productHandler "fieldserve-backend/internal/handlers/product"
	visitHandler "fieldserve-backend/internal/handlers/visit"
	"fieldserve-backend/internal/middleware"
	"fieldserve-backend/internal/pkg/jwt"
	"fieldserve-backend/internal/pkg/otp"
	"fieldserve-backend/internal/repository/postgres"
	authUsecase "fieldserve-backend/internal/service/auth"
	customersvc "fieldserve-backend/internal/service/customer"
	employeesvc "fieldserve-backend/internal/service/employee"
	leadsvc "fieldserve-backend/internal/service/lead"
	paymentsvc "fieldserve-backend/internal/service/payment"
	productsvc "fieldserve-backend/internal/service/product"
	"fieldserve-backend/internal/service/sms"
	visitsvc "fieldserve-backend/internal/service/visit"
	"fieldserve-backend/internal/ws"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	store *postgres.Store
	http  *http.Server
}

func NewServer() *Server {
	return &Server{engine: gin.New()}
}

func (s *Server) Start() error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s.cfg = cfg

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	store, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.store = store
	logger.Info("connected to postgres")

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	logger.Info("connected to redis")

	// ----- JWT Manager -----
	jwtManager, err := jwt.NewManager(cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}

	// ----- OTP store & rate limiter -----
	codeStore := otp.NewStore(redisClient)
	rateLimiter := otp.NewRateLimiter(redisClient)

	// ----- SMS -----
	var smsSender sms.Sender
	if cfg.SMSGatewayURL != "" {
		smsSender = sms.NewGatewaySender(cfg.SMSGatewayURL, cfg.SMSGatewayKey, logger)
	} else {
		smsSender = sms.NewLogSender(logger)
	}

	// ----- Repositories -----
	employeeRepo := postgres.NewEmployeeRepository(store)
	customerRepo := postgres.NewCustomerRepository(store)
	visitRepo := postgres.NewVisitRepository(store)
	productRepo := postgres.NewProductRepository(store)
	leadRepo := postgres.NewLeadRepository(store)
	paymentRepo := postgres.NewPaymentRepository(store)

	// ----- WebSocket Hub -----
	hub := ws.NewHub(jwtManager.Verifier, logger)
	go hub.Run(ctx)

	// ----- Services -----
	authService := authUsecase.NewAuthService(employeeRepo, codeStore, rateLimiter, jwtManager, smsSender, logger)
	productService := productsvc.NewProductService(productRepo, logger)
	visitService := visitsvc.NewVisitService(visitRepo, customerRepo, employeeRepo, hub, logger)
	customerService := customersvc.NewCustomerService(customerRepo, productService, visitService, visitRepo, logger)
	employeeService := employeesvc.NewEmployeeService(employeeRepo, visitRepo, logger)
	leadService := leadsvc.NewLeadService(leadRepo, logger)
	paymentService := paymentsvc.NewPaymentService(paymentRepo, customerRepo, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		Auth:     authHandler.NewAuthHandler(authService, logger),
		Customer: customerHandler.NewCustomerHandler(customerService, logger),
		Visit:    visitHandler.NewVisitHandler(visitService, logger),
		Employee: employeeHandler.NewEmployeeHandler(employeeService, logger),
		Product:  productHandler.NewProductHandler(productService, logger),
		Lead:     leadHandler.NewLeadHandler(leadService, logger),
		Payment:  paymentHandler.NewPaymentHandler(paymentService, logger),
		Hub:      hub,
	}

	// ----- Middlewares -----
	gate := middleware.NewRequestGate(jwtManager.Verifier, cfg.CORSOrigins, logger)
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		gate.Handler(),
	)

	SetupRouter(s.engine, handlers)

	s.http = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown stops the HTTP listener and releases the connection pool.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.http != nil {
		err = s.http.Shutdown(ctx)
	}
	if s.store != nil {
		s.store.Close()
	}
	if s.logger != nil {
		s.logger.Info("server stopped")
	}
	return err
}
