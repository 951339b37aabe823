package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"infranest/internal/catalog"
)

// Server carries the handler dependencies.
type Server struct {
	Catalog          *catalog.Catalog
	DefaultFramework string
	Log              *slog.Logger
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(s *Server) *gin.Engine {
	r := gin.Default()
	r.Use(RequestID())

	r.GET("/health", HealthHandler())

	apiGroup := r.Group("/api/v1")
	{
		apiGroup.GET("/frameworks", FrameworksHandler())
		apiGroup.GET("/templates", TemplateListHandler(s))
		apiGroup.GET("/templates/:name", TemplateGetHandler(s))

		apiGroup.POST("/validate-dsl", ValidateHandler(s))
		apiGroup.POST("/preview", PreviewHandler(s))
		apiGroup.POST("/generate-code", GenerateHandler(s))
		apiGroup.POST("/download-code", DownloadHandler(s))
	}

	return r
}

// RunServer starts the HTTP server on addr.
func RunServer(addr string, s *Server) error {
	return NewRouter(s).Run(addr)
}
