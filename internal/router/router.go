package router

import (
	"github.com/gin-gonic/gin"

	"docr/internal/handler"
	"docr/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	ocrH *handler.OCRHandler,
	docH *handler.DocumentHandler,
	authorH *handler.AuthorHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// OCR routes
	ocr := v1.Group("/ocr")
	ocr.POST("/upload", ocrH.UploadBatch)
	ocr.POST("/compare", ocrH.Compare)

	// Document routes
	docs := v1.Group("/documents")
	docs.POST("/upload", docH.Upload)
	docs.GET("", docH.List)
	docs.GET("/:id", docH.GetByID)
	docs.GET("/:id/download", docH.Download)
	docs.DELETE("/:id", docH.Delete)

	// Author routes
	v1.GET("/authors", authorH.List)

	return r
}
