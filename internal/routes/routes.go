package routes

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sauravsingh6568/paonflowers-sub000/internal/auth"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/config"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/identity"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/middleware"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/otp"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/ratelimit"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/sms"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	Mongo  *mongo.Database
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes. Outside dev the
// external stores are mandatory; in dev, missing stores fall back to
// in-memory implementations.
func Setup(app *fiber.App, d Deps) error {
	if !d.Cfg.IsDev() {
		if d.Mongo == nil {
			return fmt.Errorf("mongodb is required when APP_ENV=%s", d.Cfg.Env)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.Env)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories and collaborators
	var users identity.Repository
	var codes otp.Repository
	if d.Mongo != nil {
		users = identity.NewMongoRepository(d.Mongo, d.Logger)
		codes = otp.NewMongoRepository(d.Mongo, d.Logger)
	} else {
		users = identity.NewMemoryRepository()
		codes = otp.NewMemoryRepository()
	}

	var limiter ratelimit.Limiter
	if d.Cache != nil {
		limiter = ratelimit.NewRedisLimiter(d.Cache)
	} else {
		limiter = ratelimit.NewMemoryLimiter()
	}

	sender := sms.NewLoggerSender(d.Logger)

	// Services and handlers
	tokens := auth.NewTokenManager(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	authSvc := auth.NewService(d.Cfg, users, codes, sender, tokens, d.Logger)
	authHandler := auth.NewHandler(authSvc)

	rateLimiter := middleware.SendOTPRateLimit(limiter, time.Hour, d.Cfg.OTPMaxPerHour)
	tokenAuth := middleware.TokenAuth(tokens)
	RegisterAuthRoutes(app, authHandler, rateLimiter, tokenAuth)

	return nil
}
