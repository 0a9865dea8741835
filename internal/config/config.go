package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName       = "PaonFlowers"
	defaultAppEnv        = "development"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultMongoDB       = "paonflowers"
	defaultShutdownDelay = 10 * time.Second
	defaultTokenTTL      = 7 * 24 * time.Hour
	defaultOTPTTL        = 10 * time.Minute
	defaultOTPMaxPerHour = 5
	defaultOTPMaxGuesses = 5

	tokenTTLEnvVar         = "TOKEN_TTL"
	otpTTLMinutesEnvVar    = "OTP_TTL_MINUTES"
	otpMaxPerHourEnvVar    = "OTP_MAX_PER_HOUR"
	otpMaxAttemptsEnvVar   = "OTP_MAX_ATTEMPTS"
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	Env            string
	Port           string
	LogLevel       string
	MongoURI       string
	MongoDB        string
	RedisURL       string
	JWTSecret      string
	TokenTTL       time.Duration
	OTPTTL         time.Duration
	OTPMaxPerHour  int
	OTPMaxAttempts int
	AdminPhone     string
	ShutdownPeriod time.Duration
}

// Load reads configuration values from the environment and populates a Config
// instance. JWT_SECRET is mandatory: session credentials cannot be signed or
// verified without it, so startup fails fast.
func Load() (Config, error) {
	cfg := Config{
		AppName:        getEnv("APP_NAME", defaultAppName),
		Env:            getEnv("APP_ENV", defaultAppEnv),
		Port:           getEnv("PORT", defaultPort),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        getEnv("MONGO_DB", defaultMongoDB),
		RedisURL:       os.Getenv("REDIS_URL"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		TokenTTL:       defaultTokenTTL,
		OTPTTL:         defaultOTPTTL,
		OTPMaxPerHour:  defaultOTPMaxPerHour,
		OTPMaxAttempts: defaultOTPMaxGuesses,
		AdminPhone:     strings.TrimSpace(os.Getenv("ADMIN_PHONE")),
		ShutdownPeriod: defaultShutdownDelay,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}

	if v := os.Getenv(tokenTTLEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", tokenTTLEnvVar, err)
		}
		cfg.TokenTTL = d
	}

	if v := os.Getenv(otpTTLMinutesEnvVar); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			return Config{}, fmt.Errorf("invalid %s: must be a positive integer", otpTTLMinutesEnvVar)
		}
		cfg.OTPTTL = time.Duration(minutes) * time.Minute
	}

	if v := os.Getenv(otpMaxPerHourEnvVar); v != "" {
		max, err := strconv.Atoi(v)
		if err != nil || max <= 0 {
			return Config{}, fmt.Errorf("invalid %s: must be a positive integer", otpMaxPerHourEnvVar)
		}
		cfg.OTPMaxPerHour = max
	}

	if v := os.Getenv(otpMaxAttemptsEnvVar); v != "" {
		max, err := strconv.Atoi(v)
		if err != nil || max <= 0 {
			return Config{}, fmt.Errorf("invalid %s: must be a positive integer", otpMaxAttemptsEnvVar)
		}
		cfg.OTPMaxAttempts = max
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the app runs in a development environment, where the
// external stores may be absent and in-memory fallbacks are used instead.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.Env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
