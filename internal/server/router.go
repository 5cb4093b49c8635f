package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillbridge-backend/internal/handlers"
	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/middleware"
)

type RouterConfig struct {
	Log               *logger.Logger
	RespondentHandler *handlers.RespondentHandler
	DiagnosisHandler  *handlers.DiagnosisHandler
	RoadmapHandler    *handlers.RoadmapHandler
	StaticDir         string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.AttachRequestContext())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.CORS())

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Respondents and reference listings
		api.POST("/respondents", cfg.RespondentHandler.Create)
		api.GET("/respondents/:id", cfg.RespondentHandler.Get)
		api.GET("/competencies", cfg.RespondentHandler.ListCompetencies)
		api.GET("/scenarios", cfg.RespondentHandler.ListScenarios)
		// Diagnosis
		api.POST("/diagnosis", cfg.DiagnosisHandler.Save)
		api.GET("/diagnosis/:id", cfg.DiagnosisHandler.Get)
		api.PUT("/diagnosis/:id", cfg.DiagnosisHandler.Update)
		// Courses and roadmap
		api.GET("/courses/:id", cfg.RoadmapHandler.Courses)
		api.POST("/roadmap/:id/generate", cfg.RoadmapHandler.Generate)
		api.GET("/roadmap/:id", cfg.RoadmapHandler.Get)
		api.PUT("/roadmap/:id", cfg.RoadmapHandler.Update)
	}

	// Serve the built frontend; unknown non-API paths fall back to the SPA
	// entry point.
	if cfg.StaticDir != "" {
		router.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			requested := filepath.Join(cfg.StaticDir, filepath.Clean("/"+c.Request.URL.Path))
			if info, err := os.Stat(requested); err == nil && !info.IsDir() {
				c.File(requested)
				return
			}
			c.File(filepath.Join(cfg.StaticDir, "index.html"))
		})
	}

	return router
}
