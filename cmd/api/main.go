package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/orderdesk/orderdesk-api/internal/application/approval"
	"github.com/orderdesk/orderdesk-api/internal/application/auth"
	"github.com/orderdesk/orderdesk-api/internal/application/documents"
	"github.com/orderdesk/orderdesk-api/internal/application/importer"
	"github.com/orderdesk/orderdesk-api/internal/application/notify"
	"github.com/orderdesk/orderdesk-api/internal/application/ordering"
	"github.com/orderdesk/orderdesk-api/internal/application/usecase"
	inframail "github.com/orderdesk/orderdesk-api/internal/infrastructure/mail"
	infrapdf "github.com/orderdesk/orderdesk-api/internal/infrastructure/pdf"
	"github.com/orderdesk/orderdesk-api/internal/infrastructure/postgres"
	httpRouter "github.com/orderdesk/orderdesk-api/internal/interfaces/http"
	"github.com/orderdesk/orderdesk-api/pkg/config"
	"github.com/orderdesk/orderdesk-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	manufacturerRepo := postgres.NewManufacturerRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewUserProfileRepository(pool)
	approvalRepo := postgres.NewApprovalRequestRepository(pool)
	orderApprovalRepo := postgres.NewOrderApprovalRequestRepository(pool)
	accessLogRepo := postgres.NewAccessLogRepository(pool)
	paymentRepo := postgres.NewCompanyPaymentRepository(pool)
	issuerRepo := postgres.NewIssuerSettingRepository(pool)
	integrationLogRepo := postgres.NewIntegrationLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// SMTP is optional: without a host, notifications are dropped silently.
	var notifier notify.Notifier = notify.Noop{}
	if cfg.SMTP.Host != "" {
		notifier = inframail.NewNotifier(cfg.SMTP, log.Zerolog())
	}

	authUC := auth.NewUseCase(txRunner, userRepo, companyRepo, manufacturerRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	manufacturerUC := usecase.NewManufacturerUseCase(manufacturerRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, profileRepo)
	itemUC := usecase.NewItemUseCase(itemRepo, companyRepo, manufacturerRepo)
	profileUC := usecase.NewProfileUseCase(profileRepo, customerRepo)
	paymentUC := usecase.NewPaymentUseCase(paymentRepo, companyRepo, orderRepo)
	issuerUC := usecase.NewIssuerSettingUseCase(issuerRepo)

	orderingSvc := ordering.NewService(
		txRunner, companyRepo, customerRepo, itemRepo, orderRepo,
		orderApprovalRepo, profileRepo, userRepo, integrationLogRepo,
		notifier, log.Zerolog(),
	)
	approvalSvc := approval.NewService(
		txRunner, approvalRepo, orderApprovalRepo, orderRepo,
		customerRepo, profileRepo, userRepo, notifier, log.Zerolog(),
	)
	documentsSvc := documents.NewService(
		companyRepo, customerRepo, orderRepo, issuerRepo, infrapdf.NewMarotoRenderer(),
	)
	csvImporter := importer.New(
		companyRepo, customerRepo, itemRepo, manufacturerRepo, profileRepo, log.Zerolog(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CompanyUC:      companyUC,
		ManufacturerUC: manufacturerUC,
		CustomerUC:     customerUC,
		ItemUC:         itemUC,
		ProfileUC:      profileUC,
		PaymentUC:      paymentUC,
		IssuerUC:       issuerUC,
		Ordering:       orderingSvc,
		Approvals:      approvalSvc,
		Documents:      documentsSvc,
		Importer:       csvImporter,
		Profiles:       profileRepo,
		Manufacturers:  manufacturerRepo,
		AccessLogs:     accessLogRepo,
		JWTSecret:      cfg.JWT.Secret,
		Log:            log.Zerolog(),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
