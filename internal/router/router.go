package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Mdwaseel/batsdatacollection/internal/config"
	"github.com/Mdwaseel/batsdatacollection/internal/handler"
	"github.com/Mdwaseel/batsdatacollection/internal/middleware"
	"github.com/Mdwaseel/batsdatacollection/internal/repository"
	"github.com/Mdwaseel/batsdatacollection/internal/service"
	"github.com/Mdwaseel/batsdatacollection/internal/storage"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository / Storage ← DB / Bucket
func New(cfg *config.Config, db *gorm.DB, store storage.ObjectStore) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(300, time.Minute))

	// ── Repositories / services ──────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	assetSvc := service.NewAssetService(store)
	productSvc := service.NewProductService(productRepo, assetSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc)
	exportH := handler.NewExportHandler(productRepo)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, store))

	v1 := r.Group("/v1")
	{
		v1.POST("/products", productsH.Create)
		v1.GET("/products", productsH.List)
		v1.GET("/products/search", productsH.Search)
		v1.DELETE("/products/:id", productsH.Delete)

		exp := v1.Group("/export")
		{
			exp.GET("/json", exportH.JSON)
			exp.GET("/csv", exportH.CSV)
			exp.GET("/xlsx", exportH.XLSX)
			exp.GET("/backup", exportH.Backup)
		}
	}

	return r
}
