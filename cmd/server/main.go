package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"cineman/internal/config"
	"cineman/internal/database"
	"cineman/internal/handler"
	"cineman/internal/middleware"
	"cineman/internal/notify"
	"cineman/internal/queue"
	"cineman/internal/repository"
	"cineman/internal/router"
	"cineman/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("schema migration failed")
	}

	store := repository.NewStore(db)

	mailer := notify.NewMailer(notify.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.MailFrom,
	}, &logger)
	publisher := queue.NewPublisher(cfg.AMQPURL, &logger)
	notifier := notify.NewBookingNotifier(store.Users, mailer, publisher)

	authSvc := service.NewAuthService(store.Users, mailer, service.AuthConfig{
		AccessSecret:  cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     time.Duration(cfg.AccessTTLMin) * time.Minute,
		RefreshTTL:    time.Duration(cfg.RefreshTTLDays) * 24 * time.Hour,
		BcryptCost:    cfg.BcryptCost,
	}, &logger)
	userSvc := service.NewUserService(store.Users)
	movieSvc := service.NewMovieService(store.Movies, store.Showtimes)
	bookingSvc := service.NewBookingService(store, notifier, &logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.CorrelationID())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient()))

	router.Register(e, router.Handlers{
		Auth:    handler.NewAuthHandler(authSvc),
		User:    handler.NewUserHandler(userSvc),
		Movie:   handler.NewMovieHandler(movieSvc),
		Booking: handler.NewBookingHandler(bookingSvc),
	}, cfg.JWTAccessSecret)

	go func() {
		if err := queue.StartBookingConsumer(cfg.AMQPURL, &logger); err != nil {
			logger.Error().Err(err).Msg("booking consumer stopped")
		}
	}()

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
