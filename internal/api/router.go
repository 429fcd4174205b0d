package api

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/orrn/printbridge/internal/api/handlers"
	"github.com/orrn/printbridge/internal/config"
	"github.com/orrn/printbridge/internal/core"
	"github.com/orrn/printbridge/internal/db"
	"github.com/orrn/printbridge/internal/web"
)

// NewRouter wires the HTTP surface: the submission API, the view
// renderer with its embedded templates, and the health probe.
func NewRouter(cfg *config.Config, store *db.Store) *gin.Engine {
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	tmpl := template.Must(template.New("").ParseFS(web.Templates, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	jobs := core.NewJobService(store)

	jobHandler := handlers.NewJobHandler(jobs, cfg.Server.BaseURL)
	viewHandler := handlers.NewViewHandler(jobs, cfg.BridgeAddr(), cfg.Bridge.Protocol)
	healthHandler := handlers.NewHealthHandler(jobs)

	apiGroup := router.Group("/api")
	jobHandler.RegisterRoutes(apiGroup)

	viewHandler.RegisterRoutes(router)
	router.GET("/health", healthHandler.Health)

	return router
}
