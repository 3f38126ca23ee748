package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bittenrichard/30-07/internal/auth"
	"github.com/bittenrichard/30-07/internal/baserow"
	"github.com/bittenrichard/30-07/internal/config"
	"github.com/bittenrichard/30-07/internal/handlers"
	"github.com/bittenrichard/30-07/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("ERRO CRÍTICO: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	store := baserow.New(cfg.BaserowAPIURL, cfg.BaserowAPIKey)
	oauthConf := auth.NewOAuthConfig(cfg)

	notifier := services.NewNotifier(cfg.ScheduleWebhookURL, logger)
	statusService := services.NewStatusService(store)
	calendarService := services.NewCalendarService(store,
		services.NewGoogleCalendarAPI(oauthConf), notifier, logger)

	// AI screening is optional; without a key the endpoint reports
	// unavailable instead of the whole server refusing to start.
	var analysisService *services.AnalysisService
	if cfg.GeminiAPIKey != "" {
		analysisService, err = services.NewAnalysisService(context.Background(), cfg.GeminiAPIKey, store, logger)
		if err != nil {
			logger.Warn("resume analysis disabled", zap.Error(err))
			analysisService = nil
		}
	}

	authHandler := handlers.NewAuthHandler(store)
	userHandler := handlers.NewUserHandler(store)
	jobHandler := handlers.NewJobHandler(store)
	candidateHandler := handlers.NewCandidateHandler(store, statusService, analysisService)
	scheduleHandler := handlers.NewScheduleHandler(store)
	googleHandler := handlers.NewGoogleHandler(store, calendarService, oauthConf, logger)

	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/login", authHandler.Login)

		api.PATCH("/users/:userId/profile", userHandler.UpdateProfile)
		api.PATCH("/users/:userId/password", userHandler.UpdatePassword)
		api.GET("/users/:userId", userHandler.GetUser)
		api.POST("/upload-avatar", userHandler.UploadAvatar)

		api.POST("/jobs", jobHandler.CreateJob)
		api.PATCH("/jobs/:jobId", jobHandler.UpdateJob)
		api.DELETE("/jobs/:jobId", jobHandler.DeleteJob)

		api.PATCH("/candidates/:candidateId/status", candidateHandler.UpdateStatus)
		api.POST("/candidates/:candidateId/analyze", candidateHandler.Analyze)
		api.GET("/data/all/:userId", candidateHandler.DataAll)
		api.POST("/upload-curriculums", candidateHandler.UploadCurriculums)

		api.GET("/schedules/:userId", scheduleHandler.GetSchedules)
		api.GET("/agenda/:userId", scheduleHandler.GetAgenda)

		google := api.Group("/google")
		{
			google.GET("/auth/connect", googleHandler.Connect)
			google.GET("/auth/callback", googleHandler.Callback)
			google.POST("/auth/disconnect", googleHandler.Disconnect)
			google.GET("/auth/status", googleHandler.Status)
			google.POST("/calendar/create-event", googleHandler.CreateEvent)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	calendarService.StartOrphanSweep(ctx, 15*time.Minute)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("backend listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
