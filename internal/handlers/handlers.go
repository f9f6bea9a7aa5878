package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"afisha/internal/cache"
	"afisha/internal/config"
	"afisha/internal/middleware"
	"afisha/internal/repository"
	"afisha/internal/service"
	"afisha/internal/storage"
)

// sessionCacheTTL bounds how long a session row may be served from redis
// before postgres is consulted again.
const sessionCacheTTL = 15 * time.Minute

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	auth     *service.AuthService
	listings *service.ListingService
	db       *pgxpool.Pool
	cache    *redis.Client
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, redisClient *redis.Client, store storage.PosterStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	listingRepo := repository.NewListingRepository(db)
	sessionCache := cache.NewSessionCache(redisClient, sessionCacheTTL)

	auth := service.NewAuthService(userRepo, sessionRepo, sessionCache, cfg, log)
	uploads := service.NewUploadService(store, cfg.Upload, log)
	listings := service.NewListingService(listingRepo, uploads, log)

	return HandlerSet{
		log:      log,
		cfg:      cfg,
		auth:     auth,
		listings: listings,
		db:       db,
		cache:    redisClient,
	}
}

func (h HandlerSet) Register(engine *gin.Engine) {
	engine.Use(middleware.Session(h.cfg, h.auth))

	engine.GET("/healthz", h.Health)

	engine.GET("/", h.Index)
	engine.GET("/register", h.RegisterPage)
	engine.POST("/register", h.RegisterSubmit)
	engine.GET("/login", h.LoginPage)
	engine.POST("/login", h.LoginSubmit)
	engine.GET("/logout", h.Logout)

	authed := engine.Group("/", middleware.RequireLogin())
	authed.GET("/add_afisha", h.AddPage)
	authed.POST("/add_afisha", h.AddSubmit)
	authed.GET("/edit_afisha/:id", h.EditPage)
	authed.POST("/edit_afisha/:id", h.EditSubmit)
	authed.GET("/delete_afisha/:id", h.Delete)

	if h.cfg.Storage.Backend == "" || h.cfg.Storage.Backend == "disk" {
		engine.Static(storage.PublicUploadPrefix, h.cfg.Upload.Dir)
	}
}
