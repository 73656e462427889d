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
	"github.com/memimo/crm-api/internal/application/analytics"
	"github.com/memimo/crm-api/internal/application/auth"
	"github.com/memimo/crm-api/internal/application/campaign"
	"github.com/memimo/crm-api/internal/application/reports"
	"github.com/memimo/crm-api/internal/application/sale"
	"github.com/memimo/crm-api/internal/application/usecase"
	"github.com/memimo/crm-api/internal/infrastructure/channel"
	infrapdf "github.com/memimo/crm-api/internal/infrastructure/pdf"
	"github.com/memimo/crm-api/internal/infrastructure/postgres"
	"github.com/memimo/crm-api/internal/infrastructure/resend"
	"github.com/memimo/crm-api/internal/infrastructure/telegram"
	httpRouter "github.com/memimo/crm-api/internal/interfaces/http"
	"github.com/memimo/crm-api/pkg/config"
	"github.com/memimo/crm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	authLogRepo := postgres.NewAuthLogRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	campaignRepo := postgres.NewCampaignRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	sessions := auth.NewSessionService(userRepo, sessionRepo, authLogRepo, auth.Config{
		SessionDuration: time.Duration(cfg.Session.DurationHours) * time.Hour,
	}, log)
	sessions.StartSweeper(ctx, time.Duration(cfg.Session.SweepSeconds)*time.Second)

	userUC := usecase.NewUserAdminUseCase(userRepo, roleRepo, sessionRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	saleUC := sale.NewUseCase(txRunner, saleRepo, customerRepo)
	campaignUC := campaign.NewUseCase(campaignRepo)

	// Canales de campaña. Un canal sin credenciales falla Verify y el
	// dispatcher cae al canal simulado.
	resendClient := resend.NewClient(cfg.Email.APIKey)
	telegramClient := telegram.NewClient(cfg.Telegram.BotToken)
	channels := []campaign.Channel{
		channel.NewEmailChannel(resendClient, cfg.Email.From, cfg.Email.FromName),
		channel.NewTelegramChannel(telegramClient, cfg.Telegram.ChatID),
	}
	dispatcher := campaign.NewDispatcher(
		campaignRepo, customerRepo,
		channels, channel.NewSimulatedChannel(),
		time.Duration(cfg.Dispatch.DelayMillis)*time.Millisecond,
		log,
	)

	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo)
	reportUC := reports.NewUseCase(saleRepo, customerRepo, infrapdf.NewMarotoReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		// El envío de campañas es síncrono y pausa ~1s por cliente, así
		// que la respuesta puede tardar varios minutos.
		WriteTimeout: time.Minute * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Memimo CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sessions:    sessions,
		UserUC:      userUC,
		CustomerUC:  customerUC,
		ProductUC:   productUC,
		SaleUC:      saleUC,
		CampaignUC:  campaignUC,
		Dispatcher:  dispatcher,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop() // detiene el barrido de sesiones

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
