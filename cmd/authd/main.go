package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/roamly/auth-service/modules/users"
	"github.com/roamly/auth-service/pkg/auth"
	"github.com/roamly/auth-service/pkg/config"
	"github.com/roamly/auth-service/pkg/email"
	"github.com/roamly/auth-service/pkg/httpserver"
	"github.com/roamly/auth-service/pkg/logger"
	"github.com/roamly/auth-service/pkg/mongo"
	"github.com/roamly/auth-service/pkg/password"
	"github.com/roamly/auth-service/pkg/ratelimit"
	"github.com/roamly/auth-service/pkg/redis"
	"github.com/roamly/auth-service/pkg/session"
	"github.com/roamly/auth-service/pkg/token"
	"github.com/roamly/auth-service/pkg/user"
)

type appConfig struct {
	Environment        string `env:"ENVIRONMENT" envDefault:"development"`
	AppName            string `env:"APP_NAME" envDefault:"Roamly"`
	FrontendURL        string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	EmailDevDir        string `env:"EMAIL_DEV_DIR" envDefault:"./tmp/emails"`
	GoogleOAuthEnabled bool   `env:"GOOGLE_OAUTH_ENABLED" envDefault:"false"`

	Log       logger.Config
	HTTP      httpserver.Config
	Mongo     mongo.Config
	Redis     redis.Config
	Session   session.Config
	Email     email.Config
	RateLimit ratelimit.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	config.MustLoad(&cfg)

	log := logger.NewFromConfig(cfg.Log,
		logger.WithService("authd"),
		logger.WithAttr(slog.String("env", cfg.Environment)),
	)
	slog.SetDefault(log)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("service exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, log *slog.Logger) error {
	// Durable store first, in-memory fallback when Mongo is unreachable.
	// The fallback keeps the service usable in development and demos;
	// everything in it is lost on restart.
	store, mongoCheck := connectStore(ctx, cfg, log)

	// Same dual-backend approach for rate limit counters.
	limitStore, redisCheck := connectLimitStore(ctx, cfg, log)

	limiters, err := buildLimiters(limitStore, cfg.RateLimit)
	if err != nil {
		return err
	}

	sender := buildSender(cfg, log)
	composer := email.NewComposer(cfg.AppName, cfg.FrontendURL)

	sessions, err := session.NewManager(cfg.Session)
	if err != nil {
		return err
	}

	hasher := password.New()
	authSvc := auth.NewService(store, hasher, token.NewIssuer(), sender, composer, auth.WithLogger(log))

	var oauthSvc *auth.OAuthService
	if cfg.GoogleOAuthEnabled {
		var googleCfg auth.GoogleConfig
		if err := config.Load(&googleCfg); err != nil {
			return err
		}
		oauthSvc = auth.NewOAuthService(
			auth.NewGoogleAdapter(googleCfg),
			auth.NewMemoryStateStore(),
			store,
			hasher,
			auth.WithOAuthLogger(log),
			auth.WithStateTTL(googleCfg.StateTTL),
			auth.WithVerifiedOnly(googleCfg.VerifiedOnly),
		)
	}

	handler := users.NewHandler(authSvc, oauthSvc, sessions, cfg.FrontendURL, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Mount("/api/users", users.Router(handler, sessions, store, limiters))
	r.Get("/health", healthHandler(storeBackend(mongoCheck), mongoCheck, redisCheck))

	log.Info("starting auth service",
		slog.String("addr", cfg.HTTP.Addr),
		slog.Bool("google_oauth", cfg.GoogleOAuthEnabled),
	)
	return httpserver.New(cfg.HTTP, httpserver.WithLogger(log)).Run(ctx, r)
}

// connectStore returns the credential store and a mongo healthcheck, or the
// in-memory fallback with a nil check when Mongo cannot be reached.
func connectStore(ctx context.Context, cfg appConfig, log *slog.Logger) (user.Store, func(context.Context) error) {
	db, err := mongo.ConnectDatabase(ctx, cfg.Mongo, cfg.Mongo.Database)
	if err != nil {
		log.Warn("mongodb unreachable, falling back to in-memory store; data will not survive restarts",
			slog.Any("error", err))
		return user.NewMemoryStore(), nil
	}

	mongoStore, err := user.NewMongoStore(ctx, db)
	if err != nil {
		log.Warn("mongodb store setup failed, falling back to in-memory store; data will not survive restarts",
			slog.Any("error", err))
		return user.NewMemoryStore(), nil
	}

	log.Info("connected to mongodb", slog.String("database", cfg.Mongo.Database))
	return mongoStore, mongo.Healthcheck(db.Client())
}

// connectLimitStore returns the rate limit backend and a redis healthcheck,
// or the in-process fallback with a nil check.
func connectLimitStore(ctx context.Context, cfg appConfig, log *slog.Logger) (ratelimit.Store, func(context.Context) error) {
	client, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Warn("redis unreachable, falling back to in-process rate limiting; limits apply per replica",
			slog.Any("error", err))
		return ratelimit.NewMemoryStore(), nil
	}

	log.Info("connected to redis")
	return ratelimit.NewRedisStore(client), redis.Healthcheck(client)
}

func buildLimiters(store ratelimit.Store, cfg ratelimit.Config) (users.Limiters, error) {
	login, err := ratelimit.NewSlidingWindow(store, cfg.LoginLimit, cfg.LoginWindow)
	if err != nil {
		return users.Limiters{}, err
	}
	register, err := ratelimit.NewSlidingWindow(store, cfg.RegisterLimit, cfg.RegisterWindow)
	if err != nil {
		return users.Limiters{}, err
	}
	api, err := ratelimit.NewSlidingWindow(store, cfg.APILimit, cfg.APIWindow)
	if err != nil {
		return users.Limiters{}, err
	}
	return users.Limiters{Login: login, Register: register, API: api}, nil
}

func buildSender(cfg appConfig, log *slog.Logger) email.EmailSender {
	if cfg.Email.PostmarkServerToken != "" && cfg.Email.PostmarkAccountToken != "" {
		sender, err := email.NewPostmarkClient(cfg.Email)
		if err == nil {
			return sender
		}
		log.Warn("postmark misconfigured, using dev sender", slog.Any("error", err))
	}
	log.Info("email delivery writes to disk", slog.String("dir", cfg.EmailDevDir))
	return email.NewDevSender(cfg.EmailDevDir, log)
}

func storeBackend(mongoCheck func(context.Context) error) string {
	if mongoCheck != nil {
		return "mongodb"
	}
	return "memory"
}

type healthStatus struct {
	Status string `json:"status"`
	Store  string `json:"store"`
	Mongo  string `json:"mongo,omitempty"`
	Redis  string `json:"redis,omitempty"`
}

func healthHandler(backend string, mongoCheck, redisCheck func(context.Context) error) http.HandlerFunc {
	check := func(ctx context.Context, fn func(context.Context) error) string {
		if fn == nil {
			return ""
		}
		if err := fn(ctx); err != nil {
			return "unreachable"
		}
		return "ok"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		status := healthStatus{
			Status: "ok",
			Store:  backend,
			Mongo:  check(r.Context(), mongoCheck),
			Redis:  check(r.Context(), redisCheck),
		}
		code := http.StatusOK
		if status.Mongo == "unreachable" || status.Redis == "unreachable" {
			status.Status = "degraded"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(status)
	}
}
