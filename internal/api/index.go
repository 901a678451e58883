package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pulseboard/data-ingestor/internal/api/ingestion"
	"github.com/pulseboard/data-ingestor/internal/config"
	"github.com/pulseboard/data-ingestor/internal/loaders"
	"github.com/pulseboard/data-ingestor/internal/queries"
	"github.com/pulseboard/data-ingestor/internal/shared"
)

// NewRouter builds the gin engine with shared middleware and registers all
// feature routers.
func NewRouter(db *loaders.MongoClient, cfg *config.Config) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(shared.RequestID())
	router.Use(shared.RequestLogger())
	router.Use(shared.Recovery())
	router.Use(shared.CORS(cfg.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	customerStore := queries.NewCustomerWriter(db)
	ingestion.RegisterRoutes(router.Group("/ingest"), customerStore)

	return router
}
