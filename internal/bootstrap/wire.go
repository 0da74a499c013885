package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/tourplace/auth-service/internal/application/auth"
	"github.com/tourplace/auth-service/internal/config"
	"github.com/tourplace/auth-service/internal/infrastructure/db/postgres"
	"github.com/tourplace/auth-service/internal/infrastructure/email"
	"github.com/tourplace/auth-service/internal/infrastructure/memory"
	rabbitmq_pub "github.com/tourplace/auth-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/tourplace/auth-service/internal/infrastructure/redis"
	"github.com/tourplace/auth-service/internal/infrastructure/security"
	"github.com/tourplace/auth-service/internal/logger"
	http_handlers "github.com/tourplace/auth-service/internal/transport/http/handlers"
	"github.com/tourplace/auth-service/internal/transport/http/middleware"
	"github.com/tourplace/auth-service/internal/transport/http/response"
	"github.com/tourplace/auth-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string) (DBCloser, error)

	NewRedis func(addr string) RedisClient

	NewNotifier func(cfg *config.Config) (auth.Notifier, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	// 2) user repo
	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	userRepo := postgres.NewUserRepo(sqlDB)

	// 3) redis (best-effort)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; otp challenges held in memory")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 4) challenge store (redis else memory)
	var challenges auth.ChallengeStore
	if redisCli != nil {
		challenges = redis.NewChallengeStore(redisCli.(*redis.Client))
	} else {
		challenges = memory.NewChallengeStore()
	}

	// 5) notifier
	notifier, err := deps.NewNotifier(cfg)
	if err != nil {
		if cfg.Env == "dev" {
			logger.Logger.Warn().Err(err).Msg("notifier unavailable; mail is logged only")
			notifier = memory.NewNoopNotifier()
		} else {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}
	if c, ok := notifier.(interface{ Close() error }); ok {
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	// 6) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt codec")
	hasher := security.NewBcryptHasher(12)
	codec := security.NewJWTCodec(cfg.JWTSecret, cfg.JWTIssuer)

	// 7) service
	authSvc := auth.NewService(
		userRepo,
		hasher,
		codec,
		challenges,
		notifier,
		auth.Config{
			AccessTTL: cfg.AccessTokenTTL,
			OTPTTL:    cfg.OTPTTL,
		},
	)

	// 8) handlers + middleware
	authH := http_handlers.NewAuthHandler(authSvc)
	usersH := http_handlers.NewUsersHandler(authSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	authenticateMW := middleware.Authenticate(codec)
	requireAuthMW := middleware.RequireAuth(response.WriteError)
	requireAdminMW := middleware.RequireAuthority("ROLE_ADMIN", response.WriteError)

	// 9) router
	mux, err := deps.NewRouter(router.Deps{
		Health:         healthH,
		Auth:           authH,
		Users:          usersH,
		AuthenticateMW: authenticateMW,
		RequestIDMW:    middleware.RequestID,
		RequireAuthMW:  requireAuthMW,
		RequireAdminMW: requireAdminMW,
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 10) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string) (DBCloser, error) {
			return config.NewDB(addr)
		},
		NewRedis: func(addr string) RedisClient {
			return redis.New(addr, "", 0)
		},
		NewNotifier: newNotifier,
		NewRouter:   router.New,
	}
}

func newNotifier(cfg *config.Config) (auth.Notifier, error) {
	switch cfg.Notifier {
	case config.NotifierSMTP:
		return email.NewSMTPNotifier(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPass,
			From:     cfg.MailFrom,
			Insecure: cfg.Env == "dev",
			OTPTTL:   cfg.OTPTTL,
		}, logger.Logger), nil
	case config.NotifierRabbit:
		return rabbitmq_pub.NewPublisher(cfg.RabbitURL)
	default:
		return memory.NewNoopNotifier(), nil
	}
}

func runCleanup(fns []func()) {
	// reverse order, like defers
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
