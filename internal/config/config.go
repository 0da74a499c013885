package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Notifier backends selectable via NOTIFIER.
const (
	NotifierSMTP   = "smtp"
	NotifierRabbit = "rabbit"
	NotifierNoop   = "noop"
)

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr string
	// Auth / Security
	JWTSecret      string
	JWTIssuer      string
	AccessTokenTTL time.Duration
	OTPTTL         time.Duration

	// Infrastructure
	DBAddr    string
	RedisAddr string // optional; falls back to the in-memory challenge store
	RabbitURL string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Outbound mail
	Notifier string // smtp / rabbit / noop
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
}

func Load() (*Config, error) {
	// .env is optional; system env wins
	_ = godotenv.Load()

	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}
	// required values
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required env var: JWT_SECRET")
	}
	cfg.JWTIssuer = getEnv("JWT_ISSUER", "tourplace-auth")

	// optional with defaults
	ttl, err := getDuration("ACCESS_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.AccessTokenTTL = ttl

	ottl, err := getDuration("OTP_TTL", 2*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.OTPTTL = ottl

	// The user store cannot be substituted, so the database address is
	// required at startup. Fail fast instead of coming up half-wired.
	cfg.DBAddr = os.Getenv("DB_ADDR")
	if cfg.DBAddr == "" {
		return nil, fmt.Errorf("missing required env var: DB_ADDR")
	}

	// Redis is optional: without it pending OTP challenges live in memory
	// and do not survive a restart.
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")

	cfg.Notifier = strings.ToLower(getEnv("NOTIFIER", NotifierSMTP))
	switch cfg.Notifier {
	case NotifierSMTP:
		cfg.SMTPHost = os.Getenv("SMTP_HOST")
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("missing required env var: SMTP_HOST")
		}
		port, err := getInt("SMTP_PORT", 587)
		if err != nil {
			return nil, err
		}
		cfg.SMTPPort = port
		cfg.SMTPUser = os.Getenv("SMTP_USER")
		cfg.SMTPPass = os.Getenv("SMTP_PASS")
		cfg.MailFrom = getEnv("MAIL_FROM", "no-reply@tourplace.io")
	case NotifierRabbit:
		cfg.RabbitURL = os.Getenv("RABBIT_URL")
		if cfg.RabbitURL == "" {
			return nil, fmt.Errorf("missing required env var: RABBIT_URL")
		}
	case NotifierNoop:
	default:
		return nil, fmt.Errorf("invalid NOTIFIER: %q (want smtp, rabbit or noop)", cfg.Notifier)
	}

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid integer for %s: %q: %w", key, v, err)
	}
	return n, nil
}
