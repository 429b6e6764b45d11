package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/medvoice/medvoice-api/config"
	"github.com/medvoice/medvoice-api/internal/access"
	"github.com/medvoice/medvoice-api/internal/email"
	"github.com/medvoice/medvoice-api/internal/handler"
	authHandler "github.com/medvoice/medvoice-api/internal/handler/auth"
	noteHandler "github.com/medvoice/medvoice-api/internal/handler/note"
	userHandler "github.com/medvoice/medvoice-api/internal/handler/user"
	voiceHandler "github.com/medvoice/medvoice-api/internal/handler/voice"
	"github.com/medvoice/medvoice-api/internal/middleware"
	"github.com/medvoice/medvoice-api/internal/repository/postgres"
	redisRepo "github.com/medvoice/medvoice-api/internal/repository/redis"
	"github.com/medvoice/medvoice-api/internal/router"
	authService "github.com/medvoice/medvoice-api/internal/service/auth"
	noteService "github.com/medvoice/medvoice-api/internal/service/note"
	userService "github.com/medvoice/medvoice-api/internal/service/user"
	voiceService "github.com/medvoice/medvoice-api/internal/service/voice"
	"github.com/medvoice/medvoice-api/internal/storage"
	"github.com/medvoice/medvoice-api/pkg/auth"
	"github.com/medvoice/medvoice-api/pkg/logger"
	"github.com/medvoice/medvoice-api/pkg/security"
)

func main() {
	appLogger := logger.NewLogger(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		appLogger.Fatal(err, "failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		appLogger.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	tokenRepo, err := redisRepo.NewTokenRepository(cfg.Redis.URL)
	if err != nil {
		appLogger.Fatal(err, "failed to connect to Redis")
	}

	store, err := storage.NewDiskStore(cfg.Storage.Dir)
	if err != nil {
		appLogger.Fatal(err, "failed to initialize voice storage")
	}

	// Repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	voiceRepo := postgres.NewVoiceRepository(base)
	noteRepo := postgres.NewNoteRepository(base)
	relationRepo := postgres.NewRelationRepository(base)

	// Access control
	graph := access.NewCachedGraph(relationRepo, 5*time.Minute, 10*time.Minute)
	resolver := access.NewResolver(graph)

	// Supporting services
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(security.DefaultCost)

	var emailSvc email.Service = email.Noop{}
	if cfg.Email.Enabled {
		emailSvc = email.NewSMTPService(email.SMTPConfig{
			Host:     cfg.Email.SMTP.Host,
			Port:     cfg.Email.SMTP.Port,
			Username: cfg.Email.SMTP.User,
			Password: cfg.Email.SMTP.Password,
			From:     cfg.Email.SMTP.From,
		})
	}

	// Domain services
	authSvc := authService.NewService(userRepo, tokenRepo, jwtSvc, hasher)
	userSvc := userService.NewService(userRepo, relationRepo, resolver, hasher, emailSvc,
		graph, userService.Config{OpenRegistration: cfg.Users.OpenRegistration})
	voiceSvc := voiceService.NewService(voiceRepo, userRepo, resolver, store)
	noteSvc := noteService.NewService(noteRepo, voiceRepo, resolver)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	h := handler.NewHandler()
	authH := authHandler.NewHandler(authSvc)
	userH := userHandler.NewHandler(userSvc)
	voiceH := voiceHandler.NewHandler(voiceSvc)
	noteH := noteHandler.NewHandler(noteSvc)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
	}
	if len(cfg.Security.AllowedMethods) > 0 {
		corsConfig.AllowMethods = cfg.Security.AllowedMethods
	}
	if len(cfg.Security.AllowedHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.Security.AllowedHeaders
	}

	r := router.NewRouter(authMiddleware, authH, userH, voiceH, noteH, h, router.RouterConfig{
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		RateLimitEnabled: cfg.RateLimit.Enabled,
		CORSConfig:       corsConfig,
		MetricsPrefix:    "medvoice",
	})
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal(err, "server forced to shutdown")
	}

	appLogger.Info("server exited properly")
}
