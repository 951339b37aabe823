package codegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFiberModelEmission(t *testing.T) {
	files := generate(t, blogDoc, "go-fiber")
	models := files["models/models.go"]

	assert.Contains(t, models, "type Author struct {")
	assert.Contains(t, models, "type Post struct {")
	assert.Contains(t, models, "ID string `json:\"id\" gorm:\"type:uuid;primaryKey\"`")
	assert.Contains(t, models, "Title string `json:\"title\" gorm:\"size:200;not null\"`")
	assert.Contains(t, models, "Body string `json:\"body\" gorm:\"type:text;not null\"`")
	assert.Contains(t, models, "Email string `json:\"email\" gorm:\"uniqueIndex;not null\"`")
	assert.Contains(t, models, "AuthorID string `json:\"author_id\" gorm:\"type:uuid\"`")
	assert.Contains(t, models, "constraint:OnDelete:CASCADE")
	assert.Contains(t, models, "CreatedAt time.Time `json:\"created_at\"`")
	assert.Contains(t, models, "func (Post) TableName() string { return \"posts\" }")
	assert.Contains(t, models, "m.ID = uuid.NewString()")
}

func TestFiberOnDeleteMapping(t *testing.T) {
	doc := `
meta:
  name: app
  version: "1.0"
  framework: go-fiber
models:
  Owner:
    fields:
      id: {type: uuid, primary_key: true}
  Pet:
    fields:
      id: {type: uuid, primary_key: true}
    relationships:
      - {type: foreign_key, target: Owner, on_delete: protect}
`
	models := generate(t, doc, "go-fiber")["models/models.go"]
	assert.Contains(t, models, "constraint:OnDelete:RESTRICT")
}

func TestFiberDatabaseMigratesAllModels(t *testing.T) {
	db := generate(t, blogDoc, "go-fiber")["database/database.go"]
	assert.Contains(t, db, "&models.Author{},")
	assert.Contains(t, db, "&models.Post{},")
	assert.Contains(t, db, "gorm.Open(postgres.Open(dsn)")
}

func TestFiberHandlersAndRoutes(t *testing.T) {
	files := generate(t, blogDoc, "go-fiber")

	handlers := files["handlers/handlers.go"]
	assert.Contains(t, handlers, "func ListPosts(c *fiber.Ctx) error {")
	assert.Contains(t, handlers, "func CreatePost(c *fiber.Ctx) error {")
	assert.Contains(t, handlers, "func DeleteAuthor(c *fiber.Ctx) error {")
	assert.Contains(t, handlers, "func PostStats(c *fiber.Ctx) error {")
	assert.Contains(t, handlers, "fiber.StatusNotImplemented")

	routes := files["routes/routes.go"]
	assert.Contains(t, routes, `api := app.Group("/api/v1")`)
	assert.Contains(t, routes, `post := api.Group("/posts")`)
	assert.Contains(t, routes, `post.Post("/", protected, handlers.CreatePost)`)
	assert.Contains(t, routes, `api.Get("/stats/posts", handlers.PostStats)`)
}

func TestFiberJWTOnlyWhenConfigured(t *testing.T) {
	withAuth := generate(t, blogDoc, "go-fiber")
	assert.Contains(t, withAuth, "middleware/auth.go")
	assert.Contains(t, withAuth["go.mod"], "github.com/golang-jwt/jwt/v5")

	noAuth := generate(t, `
meta:
  name: app
  version: "1.0"
  framework: go-fiber
models:
  Post:
    fields:
      id: {type: uuid, primary_key: true}
`, "go-fiber")
	assert.NotContains(t, noAuth, "middleware/auth.go")
	assert.NotContains(t, noAuth["go.mod"], "golang-jwt")
	assert.NotContains(t, noAuth["routes/routes.go"], "protected")
}

func TestFiberGeneratedModule(t *testing.T) {
	gomod := generate(t, blogDoc, "go-fiber")["go.mod"]
	assert.Contains(t, gomod, "module blog-api")
	assert.Contains(t, gomod, "github.com/gofiber/fiber/v2")
	assert.Contains(t, gomod, "gorm.io/gorm")
	assert.Contains(t, gomod, "gorm.io/driver/postgres")
}
