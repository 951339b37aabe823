package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"infranest/internal/archive"
	"infranest/internal/codegen"
	"infranest/internal/dsl"
)

// generateRequest is the shared body of the validate, preview,
// generate, and download endpoints. DSL accepts either a YAML document
// as a JSON string or an inline JSON object.
type generateRequest struct {
	DSL       json.RawMessage `json:"dsl" binding:"required"`
	Framework string          `json:"framework"`
}

func decodeDSL(payload json.RawMessage) (*dsl.Raw, error) {
	var text string
	if err := json.Unmarshal(payload, &text); err == nil {
		return dsl.Decode([]byte(text))
	}
	// not a string: the payload itself is the document (JSON is valid YAML)
	return dsl.Decode(payload)
}

// resolveFramework picks the target: explicit request value first,
// then the document's meta.framework, then the server default.
func resolveFramework(s *Server, req *generateRequest, raw *dsl.Raw) string {
	if req.Framework != "" {
		return req.Framework
	}
	if meta, ok := raw.Doc["meta"].(map[string]any); ok {
		if fw, ok := meta["framework"].(string); ok && fw != "" {
			return fw
		}
	}
	return s.DefaultFramework
}

func bindRequest(c *gin.Context) (*generateRequest, *dsl.Raw, bool) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return nil, nil, false
	}
	raw, err := decodeDSL(req.DSL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid DSL document: %v", err)})
		return nil, nil, false
	}
	return &req, raw, true
}

// writeError maps pipeline errors onto HTTP statuses. Validation and
// security rejections are client errors; anything else is a 500.
func writeError(c *gin.Context, err error) {
	var unknownFw *codegen.UnknownFrameworkError
	if errors.As(err, &unknownFw) {
		c.JSON(http.StatusBadRequest, gin.H{"error": unknownFw.Error(), "supported": unknownFw.Supported})
		return
	}
	var invalid *codegen.ValidationError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Specification is invalid", "errors": invalid.Errors})
		return
	}
	var unsafe *codegen.SecurityError
	if errors.As(err, &unsafe) {
		c.JSON(http.StatusBadRequest, gin.H{"error": unsafe.Error(), "category": unsafe.Category})
		return
	}
	var emit *codegen.EmitError
	if errors.As(err, &emit) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": emit.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// GET /health
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}

// GET /api/v1/frameworks
func FrameworksHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"frameworks": codegen.Frameworks()})
	}
}

// POST /api/v1/validate-dsl
func ValidateHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, raw, ok := bindRequest(c)
		if !ok {
			return
		}
		res := dsl.Validate(raw)
		c.JSON(http.StatusOK, res)
	}
}

// POST /api/v1/preview
func PreviewHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, raw, ok := bindRequest(c)
		if !ok {
			return
		}
		framework := resolveFramework(s, req, raw)
		files, warnings, err := codegen.Preview(raw, framework)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"framework": framework,
			"files":     files,
			"warnings":  warnings,
		})
	}
}

// POST /api/v1/generate-code
func GenerateHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, raw, ok := bindRequest(c)
		if !ok {
			return
		}
		framework := resolveFramework(s, req, raw)
		result, err := codegen.Run(raw, framework)
		if err != nil {
			writeError(c, err)
			return
		}
		s.Log.Info("generated project",
			"project", result.Project,
			"framework", result.Framework,
			"files", len(result.Files),
			"request_id", c.GetString("request_id"),
		)
		c.JSON(http.StatusOK, gin.H{
			"project":   result.Project,
			"framework": result.Framework,
			"files":     result.Files,
			"manifest":  result.Manifest,
			"warnings":  result.Warnings,
		})
	}
}

// POST /api/v1/download-code
func DownloadHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, raw, ok := bindRequest(c)
		if !ok {
			return
		}
		framework := resolveFramework(s, req, raw)
		result, err := codegen.Run(raw, framework)
		if err != nil {
			writeError(c, err)
			return
		}
		data, err := archive.Zip(result.Files, result.Project)
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.zip", result.Project))
		c.Data(http.StatusOK, "application/zip", data)
	}
}

// GET /api/v1/templates
func TemplateListHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		list := s.Catalog.List()
		out := make([]gin.H, 0, len(list))
		for _, t := range list {
			out = append(out, gin.H{"name": t.Name, "description": t.Description})
		}
		c.JSON(http.StatusOK, gin.H{"templates": out})
	}
}

// GET /api/v1/templates/:name
func TemplateGetHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		t, ok := s.Catalog.Get(c.Param("name"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusOK, t)
	}
}
