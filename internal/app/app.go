package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/finwire/newsdesk/internal/config"
	"github.com/finwire/newsdesk/internal/middleware"
	"github.com/finwire/newsdesk/internal/modules/dashboard"
	"github.com/finwire/newsdesk/internal/modules/session"
	pkgcron "github.com/finwire/newsdesk/internal/pkg/cron"
	jwtpkg "github.com/finwire/newsdesk/internal/pkg/jwt"
	pkgredis "github.com/finwire/newsdesk/internal/pkg/redis"
	"github.com/finwire/newsdesk/internal/pkg/response"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const redisKeyPrefix = "newsdesk"

// App holds all application dependencies.
type App struct {
	cfg      *config.AppConfig
	router   *gin.Engine
	logger   *zap.Logger
	cancel   context.CancelFunc
	sched    *pkgcron.Scheduler
	sessions *session.Manager
	redis    *pkgredis.Client
	services *Services
	blocked  error
	started  time.Time
}

// New initializes the application: secrets → backends → sessions → routes. Missing secrets do
// not fail startup; the app serves the message instead.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		cfg:     cfg,
		router:  router,
		logger:  logger,
		cancel:  cancel,
		sched:   pkgcron.New(logger),
		started: time.Now(),
	}

	if err := cfg.CheckSecrets(); err != nil {
		logger.Warn("required secrets missing, serving setup message", zap.Error(err))
		a.blocked = err
		dashboard.Blocked(router, router.Group("/api/v1"), err.Error())
		return a, nil
	}

	services, err := NewServices(cfg, logger)
	if err != nil {
		cancel()
		return nil, err
	}
	a.services = services

	backend, err := a.sessionBackend()
	if err != nil {
		cancel()
		return nil, err
	}
	a.sessions = session.NewManager(backend, cfg.Session.TTL, logger)

	secret := strings.TrimSpace(cfg.SessionSecret)
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn("session_secret is empty, using a random secret; sessions reset on restart")
	}
	jwtpkg.SetSecret(secret)

	registerCronJobs(a.sched, a.sessions, cfg.Session.SweepInterval, logger)
	a.sched.Start(ctx)

	a.registerRoutes()
	return a, nil
}

func (a *App) sessionBackend() (session.Backend, error) {
	if a.cfg.Session.Store != config.StoreRedis {
		return session.MemoryBackend{}, nil
	}
	rc, err := pkgredis.Connect(a.cfg.RedisURL, redisKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	a.redis = rc
	return session.NewRedisBackend(rc, a.cfg.Session.TTL), nil
}

func (a *App) registerRoutes() {
	a.router.GET("/api/v1/health", a.health)
	if a.cfg.IsDev() {
		a.router.POST("/api/v1/jobs/:name/run", a.runJob)
	}

	secure := !a.cfg.IsDev()
	withSession := a.router.Group("", middleware.Session(a.sessions, a.cfg.Session.TTL, secure, a.logger))
	h := dashboard.NewHandler(a.services.Dashboard, a.logger)
	h.RegisterRoutes(withSession, withSession.Group("/api/v1"))
}

func (a *App) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"provider": a.services.LLM.Provider,
		"model":    a.services.LLM.Model,
		"sessions": a.sessions.Count(),
		"store":    a.cfg.Session.Store,
		"uptime":   humanizeDuration(time.Since(a.started)),
		"jobs":     a.sched.List(),
	})
}

func (a *App) runJob(c *gin.Context) {
	if !a.sched.RunNow(c.Request.Context(), c.Param("name")) {
		response.NotFound(c)
		return
	}
	response.OK(c, a.sched.List())
}

// Blocked reports the configuration error the app is stuck on, if any.
func (a *App) Blocked() error { return a.blocked }

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }

// Shutdown stops background jobs and closes backends.
func (a *App) Shutdown() {
	a.cancel()
	a.sched.Wait()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis failed", zap.Error(err))
		}
	}
}

func humanizeDuration(d time.Duration) string {
	if d < time.Minute {
		return d.Truncate(time.Second).String()
	}
	if d < time.Hour {
		return d.Truncate(time.Minute).String()
	}
	if d < 24*time.Hour {
		return d.Truncate(time.Hour).String()
	}
	return d.Truncate(24 * time.Hour).String()
}
