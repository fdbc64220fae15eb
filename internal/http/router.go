package http

import (
	"context"

	"github.com/geocoder89/portfoliohub/internal/auth"
	"github.com/geocoder89/portfoliohub/internal/cache"
	"github.com/geocoder89/portfoliohub/internal/config"
	"github.com/geocoder89/portfoliohub/internal/http/handlers"
	"github.com/geocoder89/portfoliohub/internal/http/middlewares"
	"github.com/geocoder89/portfoliohub/internal/observability"
	"github.com/geocoder89/portfoliohub/internal/ratelimit"
	"github.com/geocoder89/portfoliohub/internal/uploads"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	jsonBodyLimit  = 1 << 20
	uploadPrefix   = "/api/upload"
	serviceName    = "portfoliohub"
	uploadsURLBase = "/uploads"
)

// Stores groups the repositories the API serves. Both repo/postgres and
// repo/memory provide all of them.
type Stores struct {
	Users       handlers.UserStore
	Categories  handlers.CategoryStore
	Skills      handlers.SkillStore
	Projects    handlers.ProjectStore
	About       handlers.AboutStore
	Experiences handlers.ExperienceStore
	Education   handlers.EducationStore
	TechStack   handlers.TechStackStore
	Location    handlers.LocationStore
}

type Deps struct {
	Config  config.Config
	Stores  Stores
	JWT     *auth.Manager
	Limiter ratelimit.Store
	Uploads uploads.Storage
	Cache   *cache.Cache
	Prom    *observability.Prom
	Health  *handlers.HealthHandler

	// Tracing adds otelgin spans; leave off when no exporter is configured.
	Tracing bool
}

func NewRouter(d Deps) *gin.Engine {
	if d.Config.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	if d.Tracing {
		r.Use(otelgin.Middleware(serviceName))
	}
	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.Config.AllowedOrigins))

	if d.Limiter == nil {
		d.Limiter = ratelimit.NewMemory()
	}
	limiter := middlewares.NewRateLimiter(d.Limiter, d.Config.RateLimitMax, d.Config.RateLimitWindow)
	limiter.OnReject = d.Prom.IncRateLimited
	r.Use(limiter.RateLimiterMiddleware(middlewares.KeyByIP))

	health := d.Health
	if health == nil {
		health = handlers.NewHealthHandler(map[string]handlers.Check{
			"uploads": func(ctx context.Context) error { return d.Uploads.Ping(ctx) },
		})
	}
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	if d.Prom != nil {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	if d.Cache != nil {
		d.Cache.OnLookup = d.Prom.ObserveCache
	}

	authMW := middlewares.NewAuthMiddleware(d.JWT)
	requireAuth := authMW.RequireAuth()

	uploadsH := handlers.NewUploadsHandler(d.Uploads, d.Config.UploadMaxBytes, d.Prom)
	r.GET(uploadsURLBase+"/:filename", uploadsH.Serve)
	r.HEAD(uploadsURLBase+"/:filename", uploadsH.Serve)

	api := r.Group("/api")
	api.Use(middlewares.RequireJSON(uploadPrefix))
	api.Use(middlewares.MaxBodyBytes(jsonBodyLimit, uploadPrefix, d.Config.UploadMaxBytes+jsonBodyLimit))

	authH := handlers.NewAuthHandler(d.Stores.Users, d.JWT)
	api.POST("/auth/login", authH.Login)
	api.GET("/auth/me", requireAuth, authH.Me)

	projects := handlers.NewProjectsHandler(d.Stores.Projects, d.Cache)
	api.GET("/projects", projects.List)
	api.GET("/projects/:id", projects.Get)
	api.POST("/projects", requireAuth, projects.Create)
	api.PUT("/projects/:id", requireAuth, projects.Update)
	api.DELETE("/projects/:id", requireAuth, projects.Delete)

	categories := handlers.NewCategoriesHandler(d.Stores.Categories, d.Cache)
	api.GET("/categories", categories.List)
	api.GET("/categories/:id", categories.Get)
	api.POST("/categories", requireAuth, categories.Create)
	api.PUT("/categories/:id", requireAuth, categories.Update)
	api.DELETE("/categories/:id", requireAuth, categories.Delete)

	skills := handlers.NewSkillsHandler(d.Stores.Skills, d.Cache)
	api.GET("/skills", skills.List)
	api.GET("/skills/:id", skills.Get)
	api.POST("/skills", requireAuth, skills.Create)
	api.PUT("/skills/:id", requireAuth, skills.Update)
	api.DELETE("/skills/:id", requireAuth, skills.Delete)

	aboutH := handlers.NewAboutHandler(d.Stores.About, d.Cache)
	api.GET("/about", aboutH.Get)
	api.PUT("/about", requireAuth, aboutH.Upsert)

	registerResume(api, "/about/experiences", requireAuth, handlers.NewExperienceHandler(d.Stores.Experiences, d.Cache))
	registerResume(api, "/about/education", requireAuth, handlers.NewEducationHandler(d.Stores.Education, d.Cache))
	registerResume(api, "/about/tech-stack", requireAuth, handlers.NewTechStackHandler(d.Stores.TechStack, d.Cache))

	loc := handlers.NewLocationHandler(d.Stores.Location, d.Cache)
	api.GET("/location", loc.Get)
	api.PUT("/location", requireAuth, loc.Upsert)

	api.POST("/upload", requireAuth, uploadsH.Image)
	api.POST("/upload/resume", requireAuth, uploadsH.Resume)

	r.NoRoute(func(ctx *gin.Context) {
		handlers.RespondNotFound(ctx, "Route not found")
	})

	return r
}

type resumeRoutes interface {
	List(*gin.Context)
	Get(*gin.Context)
	Create(*gin.Context)
	Update(*gin.Context)
	Delete(*gin.Context)
}

func registerResume(g *gin.RouterGroup, path string, requireAuth gin.HandlerFunc, h resumeRoutes) {
	g.GET(path, h.List)
	g.GET(path+"/:id", h.Get)
	g.POST(path, requireAuth, h.Create)
	g.PUT(path+"/:id", requireAuth, h.Update)
	g.DELETE(path+"/:id", requireAuth, h.Delete)
}
