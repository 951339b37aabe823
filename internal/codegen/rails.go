package codegen

import (
	"fmt"
	"strings"

	"infranest/internal/dsl"
)

// railsGenerator emits a Rails API-mode project: versioned controllers,
// models with validations, serializers, and routing.
type railsGenerator struct{}

func (g *railsGenerator) Framework() string { return "rails" }

func (g *railsGenerator) Generate(spec *dsl.Spec) (map[string]string, error) {
	if err := guard(spec); err != nil {
		return nil, err
	}

	files := map[string]string{
		"Gemfile":              railsGemfile(spec),
		"config/routes.rb":     railsRoutes(spec),
		"config/database.yml":  railsDatabaseYml(spec),
		"config/application.rb": railsApplication(spec),
		"Dockerfile":           railsDockerfile,
		"docker-compose.yml":   railsCompose(spec),
		".gitignore":           railsGitignore,
		"README.md":            railsReadme(spec),
	}

	for i := range spec.Models {
		m := &spec.Models[i]
		model, err := railsModel(spec, m)
		if err != nil {
			return nil, err
		}
		files[fmt.Sprintf("app/models/%s.rb", underscore(m.Name))] = model
		files[fmt.Sprintf("app/controllers/api/v1/%s_controller.rb", tableName(m.Name))] = railsController(m)
		files[fmt.Sprintf("app/serializers/%s_serializer.rb", underscore(m.Name))] = railsSerializer(m)
	}

	if spec.API != nil && len(spec.API.Endpoints) > 0 {
		files["app/controllers/api/v1/custom_controller.rb"] = railsCustomController(spec)
	}

	addIntegrity(files)
	return files, nil
}

func (g *railsGenerator) Preview(spec *dsl.Spec) ([]PreviewFile, error) {
	if err := guard(spec); err != nil {
		return nil, err
	}
	out := []PreviewFile{
		{Path: "Gemfile", Type: "config", Description: "Ruby dependencies"},
		{Path: "config/routes.rb", Type: "config", Description: "Route definitions"},
		{Path: "config/database.yml", Type: "config", Description: "Database configuration"},
	}
	for i := range spec.Models {
		m := &spec.Models[i]
		out = append(out,
			PreviewFile{Path: fmt.Sprintf("app/models/%s.rb", underscore(m.Name)), Type: "model", Description: m.Name + " model"},
			PreviewFile{Path: fmt.Sprintf("app/controllers/api/v1/%s_controller.rb", tableName(m.Name)), Type: "controller", Description: m.Name + " CRUD controller"},
			PreviewFile{Path: fmt.Sprintf("app/serializers/%s_serializer.rb", underscore(m.Name)), Type: "serializer", Description: m.Name + " serializer"},
		)
	}
	out = append(out,
		PreviewFile{Path: "Dockerfile", Type: "config", Description: "Docker configuration"},
		PreviewFile{Path: "docker-compose.yml", Type: "config", Description: "Docker Compose configuration"},
		PreviewFile{Path: "README.md", Type: "doc", Description: "Project documentation"},
		PreviewFile{Path: "integrity.json", Type: "config", Description: "Content-hash manifest"},
	)
	return out, nil
}

// railsColumnTypes maps every canonical field type onto a Rails
// column type; a miss means an unrecognized type reached emission.
var railsColumnTypes = map[string]string{
	"string":       "string",
	"text":         "text",
	"integer":      "integer",
	"float":        "float",
	"boolean":      "boolean",
	"datetime":     "datetime",
	"date":         "date",
	"uuid":         "uuid",
	"url":          "string",
	"email":        "string",
	"json":         "jsonb",
	"choice":       "string",
	"foreign_key":  "uuid",
	"many_to_many": "jsonb",
}

func railsModel(spec *dsl.Spec, m *dsl.Model) (string, error) {
	var b strings.Builder
	desc := m.Description
	if desc == "" {
		desc = m.Name + " model"
	}
	fmt.Fprintf(&b, "# %s\nclass %s < ApplicationRecord\n", desc, m.Name)

	var lines []string
	for _, f := range m.Fields {
		if _, ok := railsColumnTypes[f.Type]; !ok {
			return "", &EmitError{Model: m.Name, Field: f.Name, Reason: fmt.Sprintf("unrecognized field type '%s'", f.Type)}
		}
		if f.AutoGenerated || f.PrimaryKey {
			continue
		}
		var rules []string
		if f.Required {
			rules = append(rules, "presence: true")
		}
		if f.Unique {
			rules = append(rules, "uniqueness: true")
		}
		if f.MaxLength > 0 {
			rules = append(rules, fmt.Sprintf("length: { maximum: %d }", f.MaxLength))
		}
		if f.MinValue != nil || f.MaxValue != nil {
			var opts []string
			if f.MinValue != nil {
				opts = append(opts, "greater_than_or_equal_to: "+formatNum(*f.MinValue))
			}
			if f.MaxValue != nil {
				opts = append(opts, "less_than_or_equal_to: "+formatNum(*f.MaxValue))
			}
			rules = append(rules, "numericality: { "+strings.Join(opts, ", ")+" }")
		}
		if f.Type == "choice" && len(f.Choices) > 0 {
			quoted := make([]string, 0, len(f.Choices))
			for _, c := range f.Choices {
				quoted = append(quoted, rubyString(c))
			}
			rules = append(rules, "inclusion: { in: ["+strings.Join(quoted, ", ")+"] }")
		}
		if f.Type == "email" {
			rules = append(rules, "format: { with: URI::MailTo::EMAIL_REGEXP }")
		}
		if len(rules) > 0 {
			lines = append(lines, fmt.Sprintf("  validates :%s, %s", f.Name, strings.Join(rules, ", ")))
		}
	}

	for _, rel := range m.Relationships {
		switch rel.Type {
		case "foreign_key":
			opts := ""
			switch rel.OnDelete {
			case "set_null", "set_default":
				opts = ", optional: true"
			}
			lines = append(lines, fmt.Sprintf("  belongs_to :%s%s", underscore(rel.Target), opts))
		case "many_to_many":
			lines = append(lines, fmt.Sprintf("  has_and_belongs_to_many :%s", tableName(rel.Target)))
		case "one_to_one":
			lines = append(lines, fmt.Sprintf("  has_one :%s, dependent: :destroy", underscore(rel.Target)))
		}
	}
	// inverse side of declared foreign keys
	for i := range spec.Models {
		other := &spec.Models[i]
		if other.Name == m.Name {
			continue
		}
		for _, rel := range other.Relationships {
			if rel.Type != "foreign_key" || rel.Target != m.Name {
				continue
			}
			dependent := ":destroy"
			switch rel.OnDelete {
			case "protect":
				dependent = ":restrict_with_error"
			case "set_null", "set_default":
				dependent = ":nullify"
			}
			lines = append(lines, fmt.Sprintf("  has_many :%s, dependent: %s", tableName(other.Name), dependent))
		}
	}

	if len(lines) > 0 {
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}
	b.WriteString("end\n")
	return b.String(), nil
}

func railsController(m *dsl.Model) string {
	singular := underscore(m.Name)
	plural := tableName(m.Name)
	controller := camelize(plural)

	var permitted []string
	for _, f := range m.Fields {
		if f.PrimaryKey || f.AutoGenerated {
			continue
		}
		permitted = append(permitted, ":"+f.Name)
	}
	params := strings.Join(permitted, ", ")

	return fmt.Sprintf(`module Api
  module V1
    class %sController < ApplicationController
      before_action :set_%s, only: %%i[show update destroy]

      # GET /api/v1/%s
      def index
        %s = %s.all
        render json: %s
      end

      # GET /api/v1/%s/:id
      def show
        render json: @%s
      end

      # POST /api/v1/%s
      def create
        %s = %s.new(%s_params)
        if %s.save
          render json: %s, status: :created
        else
          render json: { errors: %s.errors.full_messages }, status: :unprocessable_entity
        end
      end

      # PATCH/PUT /api/v1/%s/:id
      def update
        if @%s.update(%s_params)
          render json: @%s
        else
          render json: { errors: @%s.errors.full_messages }, status: :unprocessable_entity
        end
      end

      # DELETE /api/v1/%s/:id
      def destroy
        @%s.destroy
        head :no_content
      end

      private

      def set_%s
        @%s = %s.find(params[:id])
      rescue ActiveRecord::RecordNotFound
        render json: { error: '%s not found' }, status: :not_found
      end

      def %s_params
        params.require(:%s).permit(%s)
      end
    end
  end
end
`,
		controller, singular,
		plural, plural, m.Name, plural,
		plural, singular,
		plural, singular, m.Name, singular, singular, singular, singular,
		plural, singular, singular, singular, singular,
		plural, singular,
		singular, singular, m.Name, m.Name,
		singular, singular, params)
}

func railsSerializer(m *dsl.Model) string {
	attrs := []string{":id"}
	for _, f := range m.Fields {
		if f.Name == "id" || f.Name == "created_at" || f.Name == "updated_at" {
			continue
		}
		attrs = append(attrs, ":"+f.Name)
	}
	attrs = append(attrs, ":created_at", ":updated_at")
	return fmt.Sprintf(`class %sSerializer < ActiveModel::Serializer
  attributes %s
end
`, m.Name, strings.Join(attrs, ", "))
}

func railsCustomController(spec *dsl.Spec) string {
	var b strings.Builder
	b.WriteString(`module Api
  module V1
    class CustomController < ApplicationController
`)
	for i, ep := range spec.API.Endpoints {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "      # %s %s\n", ep.Method, ep.Path)
		fmt.Fprintf(&b, "      def %s\n", endpointHandler(ep))
		b.WriteString("        render json: { error: 'not implemented' }, status: :not_implemented\n")
		b.WriteString("      end\n")
	}
	b.WriteString(`    end
  end
end
`)
	return b.String()
}

func railsRoutes(spec *dsl.Spec) string {
	var b strings.Builder
	b.WriteString(`Rails.application.routes.draw do
  namespace :api do
    namespace :v1 do
`)
	for i := range spec.Models {
		fmt.Fprintf(&b, "      resources :%s\n", tableName(spec.Models[i].Name))
	}
	if spec.API != nil {
		for _, ep := range spec.API.Endpoints {
			fmt.Fprintf(&b, "      %s '%s', to: 'custom#%s'\n",
				strings.ToLower(ep.Method), railsRoutePath(ep.Path), endpointHandler(ep))
		}
	}
	b.WriteString(`    end
  end

  get '/health', to: proc { [200, { 'Content-Type' => 'application/json' }, ['{"status":"healthy"}']] }
end
`)
	return b.String()
}

// railsRoutePath rewrites "/stats/:id" path params into Rails form.
func railsRoutePath(path string) string {
	return strings.Trim(path, "/")
}

func railsDatabaseYml(spec *dsl.Spec) string {
	name := spec.Meta.Name
	return fmt.Sprintf(`default: &default
  adapter: postgresql
  encoding: unicode
  pool: <%%= ENV.fetch("RAILS_MAX_THREADS") { 5 } %%>
  host: <%%= ENV.fetch("DB_HOST") { "localhost" } %%>
  port: <%%= ENV.fetch("DB_PORT") { 5432 } %%>
  username: <%%= ENV.fetch("DB_USER") { "postgres" } %%>
  password: <%%= ENV.fetch("DB_PASSWORD") { "postgres" } %%>

development:
  <<: *default
  database: %s_development

test:
  <<: *default
  database: %s_test

production:
  <<: *default
  database: %s_production
`, name, name, name)
}

func railsApplication(spec *dsl.Spec) string {
	return fmt.Sprintf(`require_relative 'boot'

require 'rails/all'

Bundler.require(*Rails.groups)

module %s
  class Application < Rails::Application
    config.load_defaults 7.1

    # API-only application
    config.api_only = true

    config.generators do |g|
      g.orm :active_record, primary_key_type: :uuid
    end
  end
end
`, camelize(strings.ReplaceAll(spec.Meta.Name, "-", "_")))
}

func railsGemfile(spec *dsl.Spec) string {
	var b strings.Builder
	b.WriteString(`source 'https://rubygems.org'

ruby '3.2.2'

gem 'rails', '~> 7.1'
gem 'pg', '~> 1.5'
gem 'puma', '~> 6.4'
gem 'active_model_serializers', '~> 0.10'
gem 'rack-cors'
gem 'bootsnap', require: false
`)
	if spec.Auth != nil && spec.Auth.Provider == "jwt" {
		b.WriteString("gem 'jwt'\ngem 'bcrypt', '~> 3.1'\n")
	}
	b.WriteString(`
group :development, :test do
  gem 'rspec-rails'
  gem 'factory_bot_rails'
  gem 'faker'
end
`)
	return b.String()
}

func railsCompose(spec *dsl.Spec) string {
	return `version: '3.8'

services:
  db:
    image: postgres:15
    volumes:
      - postgres_data:/var/lib/postgresql/data
    environment:
      - POSTGRES_USER=postgres
      - POSTGRES_PASSWORD=postgres
    ports:
      - "5432:5432"

  web:
    build: .
    command: bundle exec rails server -b 0.0.0.0
    volumes:
      - .:/app
    ports:
      - "3000:3000"
    environment:
      - DB_HOST=db
      - DB_PORT=5432
      - DB_USER=postgres
      - DB_PASSWORD=postgres
      - RAILS_ENV=development
    depends_on:
      - db

volumes:
  postgres_data:
`
}

func railsReadme(spec *dsl.Spec) string {
	desc := spec.Meta.Description
	if desc == "" {
		desc = "A Rails API project"
	}
	var b strings.Builder
	fence := "```"
	fmt.Fprintf(&b, `# %s

%s

Generated by InfraNest.

## Setup

%sbash
bundle install
rails db:create db:migrate
rails server
%s

## Docker

%sbash
docker-compose up --build
%s

## API Endpoints

`, spec.Meta.Name, desc, fence, fence, fence, fence)

	for i := range spec.Models {
		m := &spec.Models[i]
		route := tableName(m.Name)
		fmt.Fprintf(&b, `### %s
- GET /api/v1/%s - List all
- POST /api/v1/%s - Create new
- GET /api/v1/%s/:id - Get one
- PUT /api/v1/%s/:id - Update
- DELETE /api/v1/%s/:id - Delete

`, m.Name, route, route, route, route, route)
	}
	return b.String()
}

func rubyString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return "'" + s + "'"
}

const railsDockerfile = `FROM ruby:3.2.2-slim

RUN apt-get update -qq && apt-get install -y \
    build-essential \
    libpq-dev \
    && rm -rf /var/lib/apt/lists/*

WORKDIR /app

COPY Gemfile ./
RUN bundle install

COPY . .

EXPOSE 3000
CMD ["bundle", "exec", "rails", "server", "-b", "0.0.0.0"]
`

const railsGitignore = `# Logs and temp
/log/*
/tmp/*
!/log/.keep
!/tmp/.keep

# Environment
.env

# Bundler
/.bundle

# Storage
/storage/*

# IDE
.vscode/
.idea/

# OS
.DS_Store
`
