package bootstrap

import (
	"fmt"
	"net/http"
	"time"

	httpapi "github.com/americano/projectsync-web/internal/api/http"
	"github.com/americano/projectsync-web/internal/api/http/middleware"
	"github.com/americano/projectsync-web/internal/notify"
	projecthttp "github.com/americano/projectsync-web/internal/projects/http"
	"github.com/americano/projectsync-web/internal/projects/service"
	"github.com/americano/projectsync-web/internal/web"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterDeps struct {
	ServiceName    string
	Version        string
	Backend        service.Backend
	Presenter      *notify.Presenter
	Probe          *httpapi.BackendProbe
	Logger         *zap.Logger
	AllowedOrigins []string
	FormRateLimit  float64
	FormRateBurst  int
	Pages          projecthttp.Options
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	logger := dep.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if dep.FormRateLimit <= 0 {
		dep.FormRateLimit = 5
	}
	if dep.FormRateBurst <= 0 {
		dep.FormRateBurst = 10
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(logger))
	if len(dep.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     dep.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-Id"},
			ExposeHeaders:    []string{"X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(web.Static()))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Probe, dep.Presenter.Store())
	healthHandler.RegisterRoutes(r)

	pages := r.Group("")
	pages.Use(dep.Presenter.Session())

	svc := service.NewProjectService(dep.Backend)
	projectsHandler := projecthttp.New(svc, dep.Presenter, dep.Pages, logger)

	limiter := middleware.NewRateLimiter(dep.FormRateLimit, dep.FormRateBurst)
	projectsHandler.Register(pages, limiter.Middleware(projectsHandler.TooManyRequests))

	return r, nil
}
