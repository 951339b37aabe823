package codegen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRailsModelEmission(t *testing.T) {
	files := generate(t, blogDoc, "rails")

	post := files["app/models/post.rb"]
	assert.Contains(t, post, "class Post < ApplicationRecord")
	assert.Contains(t, post, "validates :title, presence: true, length: { maximum: 200 }")
	assert.Contains(t, post, "validates :body, presence: true")
	assert.Contains(t, post, "validates :status, inclusion: { in: ['draft', 'published'] }")
	assert.Contains(t, post, "validates :rating, numericality: { greater_than_or_equal_to: 0, less_than_or_equal_to: 5 }")
	assert.Contains(t, post, "belongs_to :author")

	author := files["app/models/author.rb"]
	assert.Contains(t, author, "validates :email, presence: true, uniqueness: true, format: { with: URI::MailTo::EMAIL_REGEXP }")
	// inverse of Post's declared foreign key
	assert.Contains(t, author, "has_many :posts, dependent: :destroy")
}

func TestRailsOnDeleteMapping(t *testing.T) {
	doc := `
meta:
  name: app
  version: "1.0"
  framework: rails
models:
  Owner:
    fields:
      id: {type: uuid, primary_key: true}
  Pet:
    fields:
      id: {type: uuid, primary_key: true}
    relationships:
      - {type: foreign_key, target: Owner, on_delete: set_null}
  Toy:
    fields:
      id: {type: uuid, primary_key: true}
    relationships:
      - {type: foreign_key, target: Owner, on_delete: protect}
`
	files := generate(t, doc, "rails")
	assert.Contains(t, files["app/models/pet.rb"], "belongs_to :owner, optional: true")
	owner := files["app/models/owner.rb"]
	assert.Contains(t, owner, "has_many :pets, dependent: :nullify")
	assert.Contains(t, owner, "has_many :toys, dependent: :restrict_with_error")
}

func TestRailsControllerAndRoutes(t *testing.T) {
	files := generate(t, blogDoc, "rails")

	controller := files["app/controllers/api/v1/posts_controller.rb"]
	assert.Contains(t, controller, "class PostsController < ApplicationController")
	assert.Contains(t, controller, "before_action :set_post, only: %i[show update destroy]")
	assert.Contains(t, controller, "params.require(:post).permit(:title, :body, :status, :rating)")
	assert.Contains(t, controller, "render json: { error: 'Post not found' }, status: :not_found")

	routes := files["config/routes.rb"]
	assert.Contains(t, routes, "resources :authors")
	assert.Contains(t, routes, "resources :posts")
	assert.Contains(t, routes, "get 'stats/posts', to: 'custom#post_stats'")

	custom := files["app/controllers/api/v1/custom_controller.rb"]
	assert.Contains(t, custom, "def post_stats")
	assert.Contains(t, custom, "status: :not_implemented")
}

func TestRailsSerializer(t *testing.T) {
	serializer := generate(t, blogDoc, "rails")["app/serializers/post_serializer.rb"]
	assert.Contains(t, serializer, "class PostSerializer < ActiveModel::Serializer")
	assert.Contains(t, serializer, "attributes :id, :title, :body, :status, :rating, :created_at, :updated_at")
}

func TestRailsGemfileAuth(t *testing.T) {
	withAuth := generate(t, blogDoc, "rails")["Gemfile"]
	assert.Contains(t, withAuth, "gem 'jwt'")
	assert.Contains(t, withAuth, "gem 'rails'")
	assert.Contains(t, withAuth, "gem 'pg'")

	noAuth := generate(t, `
meta:
  name: app
  version: "1.0"
  framework: rails
models:
  Post:
    fields:
      id: {type: uuid, primary_key: true}
`, "rails")["Gemfile"]
	assert.NotContains(t, noAuth, "gem 'jwt'")
}

func TestRailsDatabaseConfig(t *testing.T) {
	db := generate(t, blogDoc, "rails")["config/database.yml"]
	assert.Contains(t, db, "adapter: postgresql")
	assert.Contains(t, db, "database: blog-api_development")
}
