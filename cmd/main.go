package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"cobrafacil/internal/caching"
	"cobrafacil/internal/handlers"
	"cobrafacil/internal/jobs"
	"cobrafacil/internal/jobs/background"
	"cobrafacil/internal/middleware"
	"cobrafacil/internal/repositories"
	"cobrafacil/internal/services"
	"cobrafacil/internal/whatsapp"
	"cobrafacil/pkg/database"
)

const version = "1.0.0"

func main() {
	// Database connection
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if redisDBStr := os.Getenv("REDIS_DB"); redisDBStr != "" {
		if db, err := strconv.Atoi(redisDBStr); err == nil {
			redisDB = db
		}
	}

	// MinIO configuration
	minioEndpoint := os.Getenv("MINIO_ENDPOINT")
	if minioEndpoint == "" {
		minioEndpoint = "localhost:9000"
	}
	minioAccessKey := os.Getenv("MINIO_ACCESS_KEY")
	if minioAccessKey == "" {
		minioAccessKey = "minioadmin" // Default for development
	}
	minioSecretKey := os.Getenv("MINIO_SECRET_KEY")
	if minioSecretKey == "" {
		minioSecretKey = "minioadmin" // Default for development
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	proofBucket := os.Getenv("PROOF_BUCKET")
	if proofBucket == "" {
		proofBucket = "payment-proofs"
	}

	webhookSecret := os.Getenv("WEBHOOK_SECRET")
	if webhookSecret == "" {
		webhookSecret = random.String(32)
		log.Printf("WARNING: Using generated webhook secret")
	}

	reminderWindowDays := 0
	if windowStr := os.Getenv("REMINDER_WINDOW_DAYS"); windowStr != "" {
		if days, err := strconv.Atoi(windowStr); err == nil {
			reminderWindowDays = days
		}
	}

	pairingConnectDelay := whatsapp.DefaultConnectDelay
	if delayStr := os.Getenv("PAIRING_CONNECT_DELAY"); delayStr != "" {
		if delay, err := time.ParseDuration(delayStr); err == nil {
			pairingConnectDelay = delay
		}
	}

	// Initialize storage service
	storageSvc, err := services.NewStorageService(minioEndpoint, minioAccessKey, minioSecretKey, useSSL)
	if err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	clientRepo := repositories.NewClientRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	pixKeyRepo := repositories.NewPixKeyRepo(pool)
	templateRepo := repositories.NewTemplateRepo(pool)
	chargeRepo := repositories.NewChargeRepo(pool)
	messageRepo := repositories.NewMessageRepo(pool)
	whatsappRepo := repositories.NewWhatsAppRepo(pool)
	subscriptionRepo := repositories.NewSubscriptionRepo(pool)
	paymentRepo := repositories.NewPaymentRepo(pool)
	refreshTokenRepo := repositories.NewRefreshTokenRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create services
	authSvc := services.NewAuthService(refreshTokenRepo, userRepo, jwtSecret, 3600, 7*24*3600)
	chargeSvc := services.NewChargeService(chargeRepo, clientRepo, productRepo)
	reminderSvc := services.NewReminderService(whatsappRepo, templateRepo, messageRepo)
	subscriptionSvc := services.NewSubscriptionService(subscriptionRepo, paymentRepo, cacheSvc)

	// Background jobs
	reminderScanner := jobs.NewReminderScanner(chargeRepo, messageRepo, reminderSvc, reminderWindowDays)
	scheduler := background.NewJobScheduler(reminderScanner, authSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(authSvc, userRepo)
	clientHandlers := handlers.NewClientHandlers(clientRepo)
	productHandlers := handlers.NewProductHandlers(productRepo)
	pixKeyHandlers := handlers.NewPixKeyHandlers(pixKeyRepo)
	templateHandlers := handlers.NewTemplateHandlers(templateRepo)
	chargeHandlers := handlers.NewChargeHandlers(chargeSvc)
	messageHandlers := handlers.NewMessageHandlers(messageRepo)
	subscriptionHandlers := handlers.NewSubscriptionHandlers(subscriptionSvc, storageSvc, proofBucket)
	whatsappHandlers := handlers.NewWhatsAppHandlers(whatsappRepo)
	jobHandlers := handlers.NewJobHandlers(reminderScanner, scheduler)
	webhookHandlers := handlers.NewWebhookHandlers(chargeSvc, webhookSecret)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)
	pairingHandler := whatsapp.NewPairingHandler(whatsappRepo, pairingConnectDelay)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/detailed", healthHandlers.DetailedHealthCheck)

	// API routes
	v1 := e.Group("/v1")

	// Authentication routes (no JWT required for signup/login)
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandlers.Signup)
	auth.POST("/login", authHandlers.Login)
	auth.POST("/refresh", authHandlers.Refresh)

	// Payment provider webhooks (signature verified, no JWT)
	v1.POST("/webhooks/payments", webhookHandlers.PaymentWebhook)

	// Public plan catalog
	v1.GET("/plans", subscriptionHandlers.ListPlans)

	// Authenticated routes
	authed := v1.Group("")
	authed.Use(middleware.JWTMiddleware(authSvc))

	authed.GET("/me", authHandlers.Me)

	// Subscription routes stay reachable without an active subscription so
	// users can pick a plan and submit proof.
	authed.GET("/subscription", subscriptionHandlers.GetSubscription)
	authed.POST("/subscription/select-plan", subscriptionHandlers.SelectPlan)
	authed.POST("/subscription/proof", subscriptionHandlers.UploadProof)

	// WhatsApp pairing websocket and status
	authed.GET("/whatsapp/pair", pairingHandler.Handle)
	authed.GET("/whatsapp/status", whatsappHandlers.GetStatus)
	authed.POST("/whatsapp/disconnect", whatsappHandlers.Disconnect)

	// Billing routes require an active subscription
	protected := v1.Group("")
	protected.Use(middleware.JWTMiddleware(authSvc))
	protected.Use(middleware.SubscriptionGuard(subscriptionSvc))

	protected.GET("/clients", clientHandlers.ListClients)
	protected.POST("/clients", clientHandlers.CreateClient)
	protected.GET("/clients/:id", clientHandlers.GetClient)
	protected.PATCH("/clients/:id", clientHandlers.UpdateClient)
	protected.DELETE("/clients/:id", clientHandlers.DeleteClient)

	protected.GET("/products", productHandlers.ListProducts)
	protected.POST("/products", productHandlers.CreateProduct)
	protected.GET("/products/:id", productHandlers.GetProduct)
	protected.PATCH("/products/:id", productHandlers.UpdateProduct)
	protected.DELETE("/products/:id", productHandlers.DeleteProduct)

	protected.GET("/pix-keys", pixKeyHandlers.ListPixKeys)
	protected.POST("/pix-keys", pixKeyHandlers.CreatePixKey)
	protected.GET("/pix-keys/:id", pixKeyHandlers.GetPixKey)
	protected.POST("/pix-keys/:id/default", pixKeyHandlers.SetDefaultPixKey)
	protected.DELETE("/pix-keys/:id", pixKeyHandlers.DeletePixKey)

	protected.GET("/templates", templateHandlers.ListTemplates)
	protected.POST("/templates", templateHandlers.CreateTemplate)
	protected.POST("/templates/preview", templateHandlers.PreviewTemplate)
	protected.GET("/templates/:id", templateHandlers.GetTemplate)
	protected.PATCH("/templates/:id", templateHandlers.UpdateTemplate)
	protected.POST("/templates/:id/default", templateHandlers.SetDefaultTemplate)
	protected.DELETE("/templates/:id", templateHandlers.DeleteTemplate)

	protected.GET("/charges", chargeHandlers.ListCharges)
	protected.POST("/charges", chargeHandlers.CreateCharge)
	protected.GET("/charges/:id", chargeHandlers.GetCharge)
	protected.POST("/charges/:id/pay", chargeHandlers.PayCharge)
	protected.POST("/charges/:id/cancel", chargeHandlers.CancelCharge)
	protected.DELETE("/charges/:id", chargeHandlers.DeleteCharge)

	protected.GET("/messages", messageHandlers.ListMessages)
	protected.GET("/messages/:id", messageHandlers.GetMessage)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.JWTMiddleware(authSvc))
	admin.Use(middleware.RequireAdmin())

	admin.GET("/payments", subscriptionHandlers.ListPendingPayments)
	admin.GET("/payments/:id/proof", subscriptionHandlers.GetProofURL)
	admin.POST("/payments/:id/approve", subscriptionHandlers.ApprovePayment)
	admin.POST("/payments/:id/reject", subscriptionHandlers.RejectPayment)
	admin.GET("/jobs", jobHandlers.JobStatus)
	admin.POST("/jobs/reminders/run", jobHandlers.RunReminderScan)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("CobraFacil server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
