// Package app assembles services, handlers and routes into one gin engine.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"skilllink/internal/config"
	"skilllink/internal/domain/auth"
	"skilllink/internal/domain/catalog"
	"skilllink/internal/domain/chat"
	"skilllink/internal/domain/portfolio"
	"skilllink/internal/domain/profile"
	"skilllink/internal/domain/rating"
	"skilllink/internal/domain/request"
	"skilllink/internal/domain/subscription"
	"skilllink/internal/domain/upload"
	"skilllink/internal/middleware"
	"skilllink/internal/pkg/jwt"
	"skilllink/internal/pkg/response"
	"skilllink/internal/pkg/utils"
)

// Pinger reports the health of an external dependency.
type Pinger func(ctx context.Context) error

type App struct {
	Router *gin.Engine
	Hub    *chat.Hub
	Auth   *auth.Service
	Plans  *subscription.Service
}

// New wires every domain on top of db. store keeps revoked sessions.
func New(cfg *config.Config, db *gorm.DB, store auth.SessionStore, checks map[string]Pinger) *App {
	people := profile.NewRepository(db)
	profiles := profile.NewService(people)
	authService := auth.NewService(people, jwt.New(cfg.JWTSecret, cfg.JWTTTL), store)

	plans := subscription.NewService(subscription.NewRepository(db))
	market := catalog.New(catalog.NewRepository(db), plans)

	requestRepo := request.NewRepository(db)
	engine := request.NewEngine(requestRepo, market)

	hub := chat.NewHub()
	messages := chat.NewService(chat.NewRepository(db), requestRepo, hub)
	ratings := rating.NewService(rating.NewRepository(db))
	showcase := portfolio.NewService(portfolio.NewRepository(db), plans)
	uploads := upload.NewService(upload.NewRepository(db), cfg.UploadDir, upload.StaticURLBase)

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), gin.Logger(), middleware.ErrorLogger(), middleware.CORS(cfg.CORSAllowedOrigins))
	r.MaxMultipartMemory = upload.MaxFileSize
	r.Static(upload.StaticURLBase, utils.OrDefault(cfg.UploadDir, upload.UploadsBaseDir))
	r.GET("/health", health(db, checks))

	v1 := r.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(authService))
	me := protected.Group("/me", middleware.RequireWorker())

	authHandler := auth.NewHandler(authService)
	authHandler.RegisterPublicRoutes(v1)
	authHandler.RegisterProtectedRoutes(protected)

	profile.RegisterRoutes(v1, protected, me, profile.NewHandler(profiles))

	catalogHandler := catalog.NewHandler(market)
	catalogHandler.RegisterRoutes(v1)
	catalogHandler.RegisterWorkerRoutes(me)

	subscriptionHandler := subscription.NewHandler(plans)
	subscription.RegisterPublicRoutes(v1, subscriptionHandler)
	subscription.RegisterWorkerRoutes(me, subscriptionHandler)

	requestHandler := request.NewHandler(engine)
	requestHandler.RegisterRoutes(protected)
	requestHandler.RegisterWorkerRoutes(me)

	chat.RegisterRoutes(protected, chat.NewHandler(messages))
	chat.RegisterWSRoutes(v1, chat.NewWSHandler(hub, authService, messages, cfg.CORSAllowedOrigins))

	rating.RegisterRoutes(v1, protected, rating.NewHandler(ratings))
	portfolio.RegisterRoutes(v1, me, portfolio.NewHandler(showcase))
	upload.RegisterRoutes(protected, upload.NewHandler(uploads))

	return &App{Router: r, Hub: hub, Auth: authService, Plans: plans}
}

func health(db *gorm.DB, checks map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"database": "ok"}
		healthy := true
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			status["database"] = "down"
			healthy = false
		}
		for name, ping := range checks {
			status[name] = "ok"
			if err := ping(ctx); err != nil {
				status[name] = "down"
				healthy = false
			}
		}
		if !healthy {
			response.ErrorWithDetails(c, http.StatusServiceUnavailable, "UNHEALTHY", "Dependency check failed", status)
			return
		}
		response.Success(c, http.StatusOK, status)
	}
}
