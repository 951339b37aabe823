package codegen

import (
	"fmt"
	"strings"

	"infranest/internal/dsl"
)

// fiberGenerator emits a Go Fiber + GORM project: typed models, CRUD
// handlers, route registration, and optional JWT middleware.
type fiberGenerator struct{}

func (g *fiberGenerator) Framework() string { return "go-fiber" }

func (g *fiberGenerator) Generate(spec *dsl.Spec) (map[string]string, error) {
	if err := guard(spec); err != nil {
		return nil, err
	}

	models, err := fiberModels(spec)
	if err != nil {
		return nil, err
	}

	files := map[string]string{
		"go.mod":                fiberGoMod(spec),
		"main.go":               fiberMain(spec),
		"database/database.go":  fiberDatabase(spec),
		"models/models.go":      models,
		"handlers/handlers.go":  fiberHandlers(spec),
		"routes/routes.go":      fiberRoutes(spec),
		".env.example":          fiberEnvExample(spec),
		"Dockerfile":            fiberDockerfile,
		"docker-compose.yml":    fiberCompose(spec),
		".gitignore":            fiberGitignore,
		"README.md":             fiberReadme(spec),
	}
	if fiberWantsJWT(spec) {
		files["middleware/auth.go"] = fiberAuthMiddleware(spec)
	}

	addIntegrity(files)
	return files, nil
}

func (g *fiberGenerator) Preview(spec *dsl.Spec) ([]PreviewFile, error) {
	if err := guard(spec); err != nil {
		return nil, err
	}
	out := []PreviewFile{
		{Path: "main.go", Type: "main", Description: "Application entry point"},
		{Path: "go.mod", Type: "config", Description: "Go module definition"},
		{Path: "database/database.go", Type: "config", Description: "Database connection and migration"},
		{Path: "models/models.go", Type: "model", Description: "GORM models"},
		{Path: "handlers/handlers.go", Type: "handler", Description: "CRUD request handlers"},
		{Path: "routes/routes.go", Type: "config", Description: "Route registration"},
	}
	if fiberWantsJWT(spec) {
		out = append(out, PreviewFile{Path: "middleware/auth.go", Type: "middleware", Description: "JWT authentication middleware"})
	}
	out = append(out,
		PreviewFile{Path: "Dockerfile", Type: "config", Description: "Docker configuration"},
		PreviewFile{Path: "docker-compose.yml", Type: "config", Description: "Docker Compose configuration"},
		PreviewFile{Path: "README.md", Type: "doc", Description: "Project documentation"},
		PreviewFile{Path: "integrity.json", Type: "config", Description: "Content-hash manifest"},
	)
	return out, nil
}

func fiberWantsJWT(spec *dsl.Spec) bool {
	return spec.Auth != nil && spec.Auth.Provider == "jwt"
}

// gotag assembles a struct tag literal for emitted Go source.
func gotag(parts ...string) string {
	return "`" + strings.Join(parts, " ") + "`"
}

// fiberFieldType maps a field to its Go type and extra gorm tag
// directives beyond the column name.
func fiberFieldType(model string, f dsl.Field) (string, []string, error) {
	switch f.Type {
	case "string", "text", "url", "email", "choice":
		var gorm []string
		if f.Type == "text" {
			gorm = append(gorm, "type:text")
		}
		if f.MaxLength > 0 && f.Type != "text" {
			gorm = append(gorm, fmt.Sprintf("size:%d", f.MaxLength))
		}
		return "string", gorm, nil
	case "integer":
		return "int", nil, nil
	case "float":
		return "float64", nil, nil
	case "boolean":
		return "bool", nil, nil
	case "datetime", "date":
		return "time.Time", nil, nil
	case "uuid":
		if f.PrimaryKey {
			return "string", []string{"type:uuid", "primaryKey"}, nil
		}
		return "string", []string{"type:uuid"}, nil
	case "json":
		return "map[string]interface{}", []string{"serializer:json"}, nil
	case "foreign_key":
		// stored as the referenced row's uuid
		return "string", []string{"type:uuid"}, nil
	case "many_to_many":
		if f.Target != "" {
			return "[]" + f.Target, []string{fmt.Sprintf("many2many:%s", tableName(f.Target))}, nil
		}
		return "[]string", []string{"serializer:json"}, nil
	default:
		return "", nil, &EmitError{Model: model, Field: f.Name, Reason: fmt.Sprintf("unrecognized field type '%s'", f.Type)}
	}
}

var fiberOnDelete = map[string]string{
	"cascade":     "CASCADE",
	"protect":     "RESTRICT",
	"set_null":    "SET NULL",
	"set_default": "SET DEFAULT",
}

func fiberModels(spec *dsl.Spec) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, `// Package models holds the GORM models for %s.
// Generated by InfraNest.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

`, spec.Meta.Name)

	for i := range spec.Models {
		m := &spec.Models[i]
		if m.Description != "" {
			fmt.Fprintf(&b, "// %s represents %s.\n", m.Name, strings.ToLower(m.Description[:1])+m.Description[1:])
		} else {
			fmt.Fprintf(&b, "// %s is a generated model.\n", m.Name)
		}
		fmt.Fprintf(&b, "type %s struct {\n", m.Name)

		for _, f := range m.Fields {
			goType, gormTags, err := fiberFieldType(m.Name, f)
			if err != nil {
				return "", err
			}
			if f.Unique {
				gormTags = append(gormTags, "uniqueIndex")
			}
			if f.Required && !f.PrimaryKey {
				gormTags = append(gormTags, "not null")
			}
			tags := []string{fmt.Sprintf("json:%q", f.Name)}
			if len(gormTags) > 0 {
				tags = append(tags, fmt.Sprintf("gorm:%q", strings.Join(gormTags, ";")))
			}
			fmt.Fprintf(&b, "\t%s %s %s\n", camelize(f.Name), goType, gotag(tags...))
		}

		for _, rel := range m.Relationships {
			switch rel.Type {
			case "foreign_key":
				od := fiberOnDelete[rel.OnDelete]
				fmt.Fprintf(&b, "\t%sID string %s\n", rel.Target,
					gotag(fmt.Sprintf("json:%q", underscore(rel.Target)+"_id"), `gorm:"type:uuid"`))
				fmt.Fprintf(&b, "\t%s *%s %s\n", rel.Target, rel.Target,
					gotag(fmt.Sprintf("json:%q", underscore(rel.Target)),
						fmt.Sprintf("gorm:%q", fmt.Sprintf("foreignKey:%sID;constraint:OnDelete:%s", rel.Target, od))))
			case "many_to_many":
				fmt.Fprintf(&b, "\t%s []%s %s\n", inflectPlural(rel.Target), rel.Target,
					gotag(fmt.Sprintf("json:%q", tableName(rel.Target)),
						fmt.Sprintf("gorm:%q", fmt.Sprintf("many2many:%s_%s", underscore(m.Name), tableName(rel.Target)))))
			case "one_to_one":
				fmt.Fprintf(&b, "\t%sID string %s\n", rel.Target,
					gotag(fmt.Sprintf("json:%q", underscore(rel.Target)+"_id"), `gorm:"type:uuid;uniqueIndex"`))
				fmt.Fprintf(&b, "\t%s *%s %s\n", rel.Target, rel.Target,
					gotag(fmt.Sprintf("json:%q", underscore(rel.Target)),
						fmt.Sprintf("gorm:%q", fmt.Sprintf("foreignKey:%sID;constraint:OnDelete:CASCADE", rel.Target))))
			}
		}

		if !m.HasField("created_at") {
			fmt.Fprintf(&b, "\tCreatedAt time.Time %s\n", gotag(`json:"created_at"`))
		}
		if !m.HasField("updated_at") {
			fmt.Fprintf(&b, "\tUpdatedAt time.Time %s\n", gotag(`json:"updated_at"`))
		}
		b.WriteString("}\n\n")

		if pk, ok := m.PrimaryKey(); ok && pk.Type == "uuid" {
			fmt.Fprintf(&b, `// BeforeCreate assigns the primary key when unset.
func (m *%s) BeforeCreate(tx *gorm.DB) error {
	if m.%s == "" {
		m.%s = uuid.NewString()
	}
	return nil
}

`, m.Name, camelize(pk.Name), camelize(pk.Name))
		}

		fmt.Fprintf(&b, "// TableName overrides the default table name.\nfunc (%s) TableName() string { return %q }\n\n", m.Name, tableName(m.Name))
	}

	return b.String(), nil
}

func inflectPlural(model string) string {
	return camelize(tableName(model))
}

func fiberHandlers(spec *dsl.Spec) string {
	var b strings.Builder
	module := spec.Meta.Name
	fmt.Fprintf(&b, `// Package handlers implements the CRUD endpoints for %s.
// Generated by InfraNest.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"%s/database"
	"%s/models"
)

`, module, module, module)

	for i := range spec.Models {
		m := &spec.Models[i]
		plural := inflectPlural(m.Name)
		fmt.Fprintf(&b, `// List%s returns all %s.
func List%s(c *fiber.Ctx) error {
	var items []models.%s
	if err := database.DB.Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(items)
}

// Get%s returns one %s by id.
func Get%s(c *fiber.Ctx) error {
	var item models.%s
	if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "%s not found"})
	}
	return c.JSON(item)
}

// Create%s inserts a new %s.
func Create%s(c *fiber.Ctx) error {
	item := new(models.%s)
	if err := c.BodyParser(item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := database.DB.Create(item).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update%s applies a partial update to one %s.
func Update%s(c *fiber.Ctx) error {
	var item models.%s
	if err := database.DB.First(&item, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "%s not found"})
	}
	updates := map[string]interface{}{}
	if err := c.BodyParser(&updates); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := database.DB.Model(&item).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(item)
}

// Delete%s removes one %s.
func Delete%s(c *fiber.Ctx) error {
	if err := database.DB.Delete(&models.%s{}, "id = ?", c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

`,
			plural, pluralizeLower(m.Name), plural, m.Name,
			m.Name, strings.ToLower(m.Name), m.Name, m.Name, strings.ToLower(m.Name),
			m.Name, strings.ToLower(m.Name), m.Name, m.Name,
			m.Name, strings.ToLower(m.Name), m.Name, m.Name, strings.ToLower(m.Name),
			m.Name, strings.ToLower(m.Name), m.Name, m.Name)
	}

	if spec.API != nil {
		for _, ep := range spec.API.Endpoints {
			name := camelize(endpointHandler(ep))
			fmt.Fprintf(&b, `// %s handles %s %s.
func %s(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": "not implemented"})
}

`, name, ep.Method, ep.Path, name)
		}
	}

	return b.String()
}

func fiberRoutes(spec *dsl.Spec) string {
	var b strings.Builder
	module := spec.Meta.Name
	basePath := "/api/v1"
	if spec.API != nil && spec.API.BasePath != "" {
		basePath = spec.API.BasePath
	}
	jwt := fiberWantsJWT(spec)

	fmt.Fprintf(&b, "// Package routes wires the HTTP endpoints for %s.\n// Generated by InfraNest.\npackage routes\n\nimport (\n\t\"github.com/gofiber/fiber/v2\"\n\n\t\"%s/handlers\"\n", module, module)
	if jwt {
		fmt.Fprintf(&b, "\t\"%s/middleware\"\n", module)
	}
	b.WriteString(")\n\n// Setup registers all routes on the app.\nfunc Setup(app *fiber.App) {\n")
	fmt.Fprintf(&b, "\tapi := app.Group(%q)\n", basePath)
	if jwt {
		b.WriteString("\tprotected := middleware.Protected()\n")
	}
	b.WriteString("\n")

	for i := range spec.Models {
		m := &spec.Models[i]
		route := routeName(m.Name)
		plural := inflectPlural(m.Name)
		fmt.Fprintf(&b, "\t%s := api.Group(\"/%s\")\n", underscore(m.Name), route)
		g := underscore(m.Name)
		if jwt {
			fmt.Fprintf(&b, "\t%s.Get(\"/\", handlers.List%s)\n", g, plural)
			fmt.Fprintf(&b, "\t%s.Get(\"/:id\", handlers.Get%s)\n", g, m.Name)
			fmt.Fprintf(&b, "\t%s.Post(\"/\", protected, handlers.Create%s)\n", g, m.Name)
			fmt.Fprintf(&b, "\t%s.Put(\"/:id\", protected, handlers.Update%s)\n", g, m.Name)
			fmt.Fprintf(&b, "\t%s.Delete(\"/:id\", protected, handlers.Delete%s)\n", g, m.Name)
		} else {
			fmt.Fprintf(&b, "\t%s.Get(\"/\", handlers.List%s)\n", g, plural)
			fmt.Fprintf(&b, "\t%s.Get(\"/:id\", handlers.Get%s)\n", g, m.Name)
			fmt.Fprintf(&b, "\t%s.Post(\"/\", handlers.Create%s)\n", g, m.Name)
			fmt.Fprintf(&b, "\t%s.Put(\"/:id\", handlers.Update%s)\n", g, m.Name)
			fmt.Fprintf(&b, "\t%s.Delete(\"/:id\", handlers.Delete%s)\n", g, m.Name)
		}
		b.WriteString("\n")
	}

	if spec.API != nil && len(spec.API.Endpoints) > 0 {
		for _, ep := range spec.API.Endpoints {
			name := camelize(endpointHandler(ep))
			method := camelize(strings.ToLower(ep.Method))
			path := fiberRoutePath(ep.Path)
			if jwt && ep.AuthRequired && !ep.Public {
				fmt.Fprintf(&b, "\tapi.%s(%q, protected, handlers.%s)\n", method, path, name)
			} else {
				fmt.Fprintf(&b, "\tapi.%s(%q, handlers.%s)\n", method, path, name)
			}
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// fiberRoutePath keeps ":param" segments, which Fiber uses natively.
func fiberRoutePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

func fiberDatabase(spec *dsl.Spec) string {
	var b strings.Builder
	module := spec.Meta.Name
	fmt.Fprintf(&b, `// Package database manages the GORM connection for %s.
// Generated by InfraNest.
package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"%s/models"
)

// DB is the shared connection handle.
var DB *gorm.DB

// Connect opens the database and runs migrations.
func Connect() {
	dsn := fmt.Sprintf("host=%%s user=%%s password=%%s dbname=%%s port=%%s sslmode=disable",
		getenv("DB_HOST", "localhost"),
		getenv("DB_USER", "postgres"),
		getenv("DB_PASSWORD", "postgres"),
		getenv("DB_NAME", "%s_db"),
		getenv("DB_PORT", "5432"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %%v", err)
	}

	if err := db.AutoMigrate(
`, module, module, module)

	for i := range spec.Models {
		fmt.Fprintf(&b, "\t\t&models.%s{},\n", spec.Models[i].Name)
	}

	b.WriteString(`	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	DB = db
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
`)
	return b.String()
}

func fiberMain(spec *dsl.Spec) string {
	module := spec.Meta.Name
	return fmt.Sprintf(`// %s API server.
// Generated by InfraNest.
package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"%s/database"
	"%s/routes"
)

func main() {
	database.Connect()

	app := fiber.New(fiber.Config{
		AppName: "%s",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	routes.Setup(app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Fatal(app.Listen(":" + port))
}
`, module, module, module, module)
}

func fiberAuthMiddleware(spec *dsl.Spec) string {
	return `// Package middleware provides request authentication.
// Generated by InfraNest.
package middleware

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Protected verifies the Bearer token on incoming requests.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing bearer token"})
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}

		c.Locals("user", token.Claims)
		return c.Next()
	}
}
`
}

func fiberGoMod(spec *dsl.Spec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "module %s\n\ngo 1.22\n\nrequire (\n", spec.Meta.Name)
	b.WriteString("\tgithub.com/gofiber/fiber/v2 v2.52.0\n")
	if fiberWantsJWT(spec) {
		b.WriteString("\tgithub.com/golang-jwt/jwt/v5 v5.2.0\n")
	}
	b.WriteString("\tgithub.com/google/uuid v1.6.0\n")
	b.WriteString("\tgorm.io/driver/postgres v1.5.4\n")
	b.WriteString("\tgorm.io/gorm v1.25.5\n")
	b.WriteString(")\n")
	return b.String()
}

func fiberEnvExample(spec *dsl.Spec) string {
	var b strings.Builder
	fmt.Fprintf(&b, `# Server
PORT=3000

# Database
DB_HOST=localhost
DB_PORT=5432
DB_USER=postgres
DB_PASSWORD=postgres
DB_NAME=%s_db
`, spec.Meta.Name)
	if fiberWantsJWT(spec) {
		b.WriteString("\n# Auth\nJWT_SECRET=change-me-in-production\n")
	}
	return b.String()
}

func fiberCompose(spec *dsl.Spec) string {
	name := spec.Meta.Name
	return fmt.Sprintf(`version: '3.8'

services:
  db:
    image: postgres:15
    volumes:
      - postgres_data:/var/lib/postgresql/data
    environment:
      - POSTGRES_DB=%s_db
      - POSTGRES_USER=postgres
      - POSTGRES_PASSWORD=postgres
    ports:
      - "5432:5432"

  api:
    build: .
    ports:
      - "3000:3000"
    environment:
      - DB_HOST=db
      - DB_PORT=5432
      - DB_USER=postgres
      - DB_PASSWORD=postgres
      - DB_NAME=%s_db
    depends_on:
      - db

volumes:
  postgres_data:
`, name, name)
}

func fiberReadme(spec *dsl.Spec) string {
	desc := spec.Meta.Description
	if desc == "" {
		desc = "A Go Fiber REST API project"
	}
	var b strings.Builder
	fence := "```"
	basePath := "/api/v1"
	if spec.API != nil && spec.API.BasePath != "" {
		basePath = spec.API.BasePath
	}
	fmt.Fprintf(&b, `# %s

%s

Generated by InfraNest.

## Setup

%sbash
cp .env.example .env
go mod tidy
go run .
%s

## Docker

%sbash
docker-compose up --build
%s

## API Endpoints

`, spec.Meta.Name, desc, fence, fence, fence, fence)

	for i := range spec.Models {
		m := &spec.Models[i]
		route := routeName(m.Name)
		fmt.Fprintf(&b, `### %s
- GET %s/%s - List all
- POST %s/%s - Create new
- GET %s/%s/:id - Get one
- PUT %s/%s/:id - Update
- DELETE %s/%s/:id - Delete

`, m.Name, basePath, route, basePath, route, basePath, route, basePath, route, basePath, route)
	}
	return b.String()
}

const fiberDockerfile = `FROM golang:1.22-alpine AS builder

WORKDIR /app

COPY go.mod ./
RUN go mod download

COPY . .
RUN CGO_ENABLED=0 go build -o server .

FROM alpine:3.19

WORKDIR /app
COPY --from=builder /app/server .

EXPOSE 3000
CMD ["./server"]
`

const fiberGitignore = `# Binaries
*.exe
*.dll
*.so
server

# Test artifacts
*.test
*.out

# Environment
.env

# IDE
.vscode/
.idea/

# OS
.DS_Store
`
