package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"secretaria/cmd/internal/config"
	"secretaria/cmd/internal/domain/database"
	"secretaria/cmd/internal/domain/database/repository"
	"secretaria/cmd/internal/http/handler"
	authmw "secretaria/cmd/internal/http/middleware"
	"secretaria/cmd/internal/infrastructure/aws/storage"
	"secretaria/cmd/internal/infrastructure/aws/websocket"
	"secretaria/cmd/internal/infrastructure/cache"
	"secretaria/cmd/internal/infrastructure/makewebhook"
	"secretaria/cmd/internal/infrastructure/reporting"
	"secretaria/cmd/internal/infrastructure/slack"
	"secretaria/cmd/internal/service"
	"secretaria/cmd/internal/service/jobs"
	"secretaria/cmd/internal/utils"
	"secretaria/cmd/internal/utils/apierror"
	"secretaria/cmd/internal/utils/uid"
	"secretaria/cmd/internal/utils/validators"
)

func main() {
	// Loads env vars depending on environment
	if err := config.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg := config.Load()

	hostname, _ := os.Hostname()
	reporting.Init(cfg.RollbarToken, cfg.Env, hostname)
	defer reporting.Close(5 * time.Second)

	if err := uid.Init(cfg.MachineID); err != nil {
		log.Fatal(err)
	}
	if err := utils.SetLocation(cfg.Timezone); err != nil {
		log.Fatal(err)
	}

	validate := validator.New()
	trans, err := validators.Register(validate)
	if err != nil {
		log.Fatal(err)
	}
	apierror.SetTranslator(trans)

	db, err := database.Init(&cfg.DB)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Auth.JWKSURL == "" {
		log.Fatal("AUTH_JWKS_URL is required")
	}
	if err = utils.InitJWKS(cfg.Auth.JWKSURL); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init S3 client, photo uploads are disabled without a bucket
	var s3Client storage.S3Client
	if cfg.Storage.Bucket != "" {
		s3Client, err = storage.NewStorageClient(ctx, cfg.Storage.Region, cfg.Storage.Bucket)
		if err != nil {
			log.Warnf("photo storage disabled: %v", err)
			s3Client = nil
		}
	}

	var gateway websocket.GatewayClient = websocket.NoopGateway{}
	if cfg.Gateway.Endpoint != "" {
		awsGateway, err := websocket.NewAWSGatewayClient(ctx, cfg.Gateway.Endpoint, cfg.Gateway.Region)
		if err != nil {
			log.Fatal(err)
		}
		gateway = awsGateway
	}

	var userCache cache.UserCache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisUserCache(ctx, cfg.RedisURL, cfg.Auth.CacheTTL)
		if err != nil {
			log.Warnf("user cache disabled: %v", err)
		} else {
			defer redisCache.Close()
			userCache = redisCache
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	connRepo := repository.NewConnectionRepository(db)
	kanbanRepo := repository.NewKanbanRepository(db)
	apostilaRepo := repository.NewApostilaRepository(db)
	alunoRepo := repository.NewAlunoRepository(db)
	clientRepo := repository.NewClientRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	configRepo := repository.NewConfigRepository(db)

	// Services
	wsService := service.NewWebSocketService(connRepo, gateway)
	kanbanService := service.NewKanbanService(kanbanRepo, makewebhook.NewClient(cfg.KanbanWebhookURL), wsService, validate)
	apostilaService := service.NewApostilaService(apostilaRepo, alunoRepo, wsService, validate)
	clientService := service.NewClientService(clientRepo, validate)
	alunoService := service.NewAlunoService(alunoRepo, s3Client)
	turmaService := service.NewTurmaService(schoolRepo, alunoRepo, attendanceRepo, validate)
	alertService := service.NewAlertService(
		alunoRepo,
		attendanceRepo,
		alertRepo,
		configRepo,
		slack.NewClient(cfg.SlackBotToken),
		wsService,
		service.AlertSettings{
			TenureDays:          cfg.Alerts.TenureDays,
			ConsecutiveAbsences: cfg.Alerts.ConsecutiveAbsences,
		},
	)
	userService := service.NewUserService()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit("10M"))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	if reporting.Enabled() {
		e.Use(authmw.NewReportMiddleware())
	}

	auth := authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{
		UserRepo: userRepo,
		Cache:    userCache,
	})

	registerRoutes(e, auth, &routes{
		kanban:   handler.NewKanbanDefault(kanbanService),
		apostila: handler.NewApostilaDefault(apostilaService),
		client:   handler.NewClientDefault(clientService),
		aluno:    handler.NewAlunoDefault(alunoService, turmaService),
		alert:    handler.NewAlertDefault(alertService),
		user:     handler.NewUserDefault(userService),
		ws:       handler.NewWSDefault(wsService),
	})

	go jobs.NewConnectionCleaner(wsService).Start(ctx)
	go jobs.NewAbsenceAlertJob(alertService, cfg.Alerts.Interval).Start(ctx)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("failed to shut down cleanly: %v", err)
	}
}
