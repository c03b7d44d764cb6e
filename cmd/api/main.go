package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"jobfinder/internal/app"
	"jobfinder/internal/config"
	"jobfinder/internal/database"
	apphttp "jobfinder/internal/http"
	"jobfinder/internal/http/handlers"
	"jobfinder/internal/http/metrics"
	httpmw "jobfinder/internal/http/middleware"
	"jobfinder/internal/http/response"
	"jobfinder/internal/mail"
	"jobfinder/internal/observability"
	"jobfinder/internal/realtime"
	"jobfinder/internal/repository/postgres"
	"jobfinder/internal/security"
	"jobfinder/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := observability.NewLogger()
	db := database.NewPostgres(database.PostgresConfig{
		DSN:             cfg.PostgresDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdle:     cfg.DBConnMaxIdle,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	defer db.Close()
	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal(err)
	}

	userRepo := postgres.NewUserRepository(db)
	jobRepo := postgres.NewJobRepository(db)
	applicationRepo := postgres.NewApplicationRepository(db)

	jwtProvider := security.NewJWTProvider(cfg.JWTSecret)
	mailer, err := mail.New(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Secure:   cfg.SMTPSecure,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.SMTPFrom,
	})
	if err != nil {
		log.Fatal(err)
	}
	if !mailer.Configured() {
		logger.Info("smtp not configured; decision emails disabled")
	}
	resumeStore, err := storage.NewResumeStore(cfg.UploadDir)
	if err != nil {
		log.Fatal(err)
	}
	hub := realtime.NewHub(jwtProvider)

	authService := app.NewAuthService(userRepo, jwtProvider, logger, cfg.TokenTTL)
	userService := app.NewUserService(userRepo)
	jobService := app.NewJobService(jobRepo)
	applicationService := app.NewApplicationService(applicationRepo, jobRepo, userRepo, mailer, hub, logger)

	var limiter httpmw.Limiter = httpmw.NewRateLimiter()
	if cfg.RedisURL != "" {
		redisLimiter, err := httpmw.NewRedisLimiterFromURL(cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		limiter = redisLimiter
	}

	authHandler := handlers.NewAuthHandler(authService, limiter)
	userHandler := handlers.NewUserHandler(userService, resumeStore)
	jobHandler := handlers.NewJobHandler(jobService, applicationService, limiter)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	middleware := httpmw.NewAuthMiddleware(jwtProvider)

	collector := metrics.NewCollector()
	response.SetErrorCollector(collector)

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		JobHandler:         jobHandler,
		ApplicationHandler: applicationHandler,
		PresenceHandler:    hub,
		AuthMiddleware:     middleware,
		Metrics:            collector,
		UploadDir:          resumeStore.BaseDir(),
		RequestTimeout:     cfg.RequestTimeout,
	})
	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("API started on :" + cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}
