package bootstrap

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/yash200611/launchmate/config"
	httpapi "github.com/yash200611/launchmate/internal/api/http"
	"github.com/yash200611/launchmate/internal/api/http/middleware"
	authhttp "github.com/yash200611/launchmate/internal/auth/http"
	authrepo "github.com/yash200611/launchmate/internal/auth/repository"
	authservice "github.com/yash200611/launchmate/internal/auth/service"
	"github.com/yash200611/launchmate/internal/auth/token"
	projecthttp "github.com/yash200611/launchmate/internal/projects/http"
	projectrepo "github.com/yash200611/launchmate/internal/projects/repository"
	projectservice "github.com/yash200611/launchmate/internal/projects/service"
	"github.com/yash200611/launchmate/internal/storage/mongodb"
)

const tokenIssuer = "launchmate"

type RouterDeps struct {
	Config *config.Config

	DB       httpapi.Pinger
	Projects projectservice.Store
	Users    authservice.UserStore

	// Optional.
	Redis    *redis.Client
	Firebase authservice.IDTokenVerifier
}

// NewRouterDeps wires the Mongo-backed repositories onto store.
func NewRouterDeps(cfg *config.Config, store *mongodb.Store, rdb *redis.Client, fb authservice.IDTokenVerifier) RouterDeps {
	return RouterDeps{
		Config:   cfg,
		DB:       store,
		Projects: projectrepo.NewProjectRepository(store),
		Users:    authrepo.NewUserRepository(store),
		Redis:    rdb,
		Firebase: fb,
	}
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	cfg := dep.Config

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))

	var cachePinger httpapi.Pinger
	opts := authservice.Options{BcryptCost: cfg.Auth.BcryptCost}
	if dep.Redis != nil {
		cachePinger = httpapi.PingFunc(func(ctx context.Context) error {
			return dep.Redis.Ping(ctx).Err()
		})
		opts.Revocations = authrepo.NewSessionRepository(dep.Redis)
	}
	if dep.Firebase != nil {
		opts.Firebase = dep.Firebase
	}

	healthHandler := httpapi.NewHealthHandler(cfg.App.ServiceName, cfg.App.Version, dep.DB, cachePinger)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")

	projectHandler := projecthttp.New(projectservice.NewProjectService(dep.Projects))
	projectHandler.Register(api.Group("/projects"))
	projectHandler.Register(api.Group("/projects.js"))

	authService := authservice.NewAuthService(
		dep.Users,
		token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL, tokenIssuer),
		opts,
	)
	authHandler := authhttp.New(authService, authhttp.CookieSettings{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.Auth.CookieSecure,
		TTL:    cfg.Auth.SessionTTL,
	})

	limiter := middleware.RateLimit(middleware.NewIPRateLimiter(cfg.Auth.RateLimit, cfg.Auth.RateBurst))
	authHandler.Register(api.Group("/auth", limiter))
	api.POST("/auth.js", limiter, authHandler.Authenticate)
	authHandler.RegisterProfiles(api.Group("/users", limiter))

	return r
}
