package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"infranest/internal/dsl"
)

// djangoGenerator emits a Django REST Framework project: one app with
// models/views/serializers/admin, a project package, and the usual
// container and dependency files.
type djangoGenerator struct{}

func (g *djangoGenerator) Framework() string { return "django" }

func (g *djangoGenerator) Generate(spec *dsl.Spec) (map[string]string, error) {
	if err := guard(spec); err != nil {
		return nil, err
	}

	files := map[string]string{}

	models, err := djangoModels(spec)
	if err != nil {
		return nil, err
	}
	files["manage.py"] = djangoManagePy
	files["app/__init__.py"] = ""
	files["app/apps.py"] = djangoAppsPy
	files["app/models.py"] = models
	files["app/serializers.py"] = djangoSerializers(spec)
	files["app/views.py"] = djangoViews(spec)
	files["app/urls.py"] = djangoURLs(spec)
	files["app/admin.py"] = djangoAdmin(spec)
	files["app/tests.py"] = djangoTests(spec)
	files["project/__init__.py"] = ""
	files["project/settings.py"] = djangoSettings(spec)
	files["project/urls.py"] = djangoProjectURLs(spec)
	files["project/wsgi.py"] = djangoWSGI
	files["project/asgi.py"] = djangoASGI
	files["requirements.txt"] = djangoRequirements
	files["Dockerfile"] = djangoDockerfile
	files["docker-compose.yml"] = djangoCompose(spec)
	files[".env.example"] = djangoEnvExample(spec)
	files[".gitignore"] = djangoGitignore
	files[".dockerignore"] = djangoDockerignore
	files["pytest.ini"] = djangoPytestIni
	files["README.md"] = djangoReadme(spec)

	addIntegrity(files)
	return files, nil
}

func (g *djangoGenerator) Preview(spec *dsl.Spec) ([]PreviewFile, error) {
	if err := guard(spec); err != nil {
		return nil, err
	}
	return []PreviewFile{
		{Path: "manage.py", Type: "main", Description: "Django management entry point"},
		{Path: "app/models.py", Type: "model", Description: "Database models"},
		{Path: "app/views.py", Type: "view", Description: "API views"},
		{Path: "app/urls.py", Type: "config", Description: "URL routing"},
		{Path: "app/serializers.py", Type: "serializer", Description: "Data serialization"},
		{Path: "app/admin.py", Type: "admin", Description: "Admin interface"},
		{Path: "app/tests.py", Type: "test", Description: "API test suite"},
		{Path: "project/settings.py", Type: "config", Description: "Django settings"},
		{Path: "requirements.txt", Type: "config", Description: "Python dependencies"},
		{Path: "Dockerfile", Type: "config", Description: "Docker configuration"},
		{Path: "docker-compose.yml", Type: "config", Description: "Docker Compose configuration"},
		{Path: "README.md", Type: "doc", Description: "Project documentation"},
		{Path: "integrity.json", Type: "config", Description: "Content-hash manifest"},
	}, nil
}

// djangoField maps one field definition to a model field declaration.
func djangoField(model string, f dsl.Field) (string, error) {
	if f.Type == "uuid" && f.PrimaryKey {
		return "models.UUIDField(primary_key=True, default=uuid.uuid4, editable=False)", nil
	}

	var base string
	var opts []string
	blank := func() {
		if !f.Required {
			opts = append(opts, "blank=True")
		}
	}
	nullable := func() {
		if !f.Required {
			opts = append(opts, "null=True", "blank=True")
		}
	}

	switch f.Type {
	case "string":
		maxLen := f.MaxLength
		if maxLen == 0 {
			maxLen = 255
		}
		base = "CharField"
		opts = append(opts, fmt.Sprintf("max_length=%d", maxLen))
		blank()
	case "text":
		base = "TextField"
		blank()
	case "integer":
		base = "IntegerField"
		nullable()
	case "float":
		base = "FloatField"
		nullable()
	case "boolean":
		base = "BooleanField"
		if f.Default == nil {
			opts = append(opts, "default=False")
		}
	case "datetime":
		base = "DateTimeField"
		nullable()
	case "date":
		base = "DateField"
		nullable()
	case "uuid":
		base = "UUIDField"
		nullable()
	case "url":
		base = "URLField"
		blank()
	case "email":
		base = "EmailField"
		blank()
	case "json":
		base = "JSONField"
		if f.Default == nil {
			opts = append(opts, "default=dict")
		}
		blank()
	case "choice":
		maxLen := f.MaxLength
		if maxLen == 0 {
			maxLen = 50
		}
		base = "CharField"
		opts = append(opts, fmt.Sprintf("max_length=%d", maxLen))
		if len(f.Choices) > 0 {
			pairs := make([]string, 0, len(f.Choices))
			for _, c := range f.Choices {
				pairs = append(pairs, fmt.Sprintf("(%s, %s)", pyString(c), pyString(c)))
			}
			opts = append(opts, "choices=["+strings.Join(pairs, ", ")+"]")
		}
		blank()
	case "foreign_key":
		if f.Target != "" {
			null := ""
			if !f.Required {
				null = ", null=True, blank=True"
			}
			return fmt.Sprintf("models.ForeignKey('%s', on_delete=models.CASCADE, related_name='+'%s)", f.Target, null), nil
		}
		// target unspecified: keep the reference as a bare id column
		base = "UUIDField"
		nullable()
	case "many_to_many":
		if f.Target != "" {
			return fmt.Sprintf("models.ManyToManyField('%s', blank=True)", f.Target), nil
		}
		base = "JSONField"
		opts = append(opts, "default=list", "blank=True")
	default:
		return "", &EmitError{Model: model, Field: f.Name, Reason: fmt.Sprintf("unrecognized field type '%s'", f.Type)}
	}

	if f.Unique {
		opts = append(opts, "unique=True")
	}
	if f.Default != nil {
		opts = append(opts, "default="+pyLiteral(f.Default))
	}
	var validators []string
	if f.MinValue != nil {
		validators = append(validators, "MinValueValidator("+formatNum(*f.MinValue)+")")
	}
	if f.MaxValue != nil {
		validators = append(validators, "MaxValueValidator("+formatNum(*f.MaxValue)+")")
	}
	if len(validators) > 0 {
		opts = append(opts, "validators=["+strings.Join(validators, ", ")+"]")
	}
	if f.HelpText != "" {
		opts = append(opts, "help_text="+pyString(f.HelpText))
	}

	return "models." + base + "(" + strings.Join(opts, ", ") + ")", nil
}

var djangoOnDelete = map[string]string{
	"cascade":     "CASCADE",
	"protect":     "PROTECT",
	"set_null":    "SET_NULL",
	"set_default": "SET_DEFAULT",
}

func djangoRelationship(model string, rel dsl.Relationship) string {
	switch rel.Type {
	case "foreign_key":
		extra := ""
		switch rel.OnDelete {
		case "set_null":
			extra = ", null=True, blank=True"
		case "set_default":
			extra = ", default=None, null=True"
		}
		return fmt.Sprintf("%s = models.ForeignKey('%s', on_delete=models.%s, related_name='%s'%s)",
			underscore(rel.Target), rel.Target, djangoOnDelete[rel.OnDelete], tableName(model), extra)
	case "many_to_many":
		return fmt.Sprintf("%s = models.ManyToManyField('%s', related_name='%s', blank=True)",
			tableName(rel.Target), rel.Target, tableName(model))
	case "one_to_one":
		return fmt.Sprintf("%s = models.OneToOneField('%s', on_delete=models.CASCADE, related_name='%s')",
			underscore(rel.Target), rel.Target, underscore(model))
	}
	return ""
}

func djangoModels(spec *dsl.Spec) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, `"""
Django Models for %s
Generated by InfraNest
"""
from django.db import models
from django.contrib.auth.models import AbstractUser
from django.core.validators import MinValueValidator, MaxValueValidator
import uuid


`, spec.Meta.Name)

	if _, ok := spec.Model("User"); !ok {
		b.WriteString(`class User(AbstractUser):
    """Extended user model"""
    id = models.UUIDField(primary_key=True, default=uuid.uuid4, editable=False)
    bio = models.TextField(blank=True)
    avatar = models.URLField(blank=True)
    created_at = models.DateTimeField(auto_now_add=True)
    updated_at = models.DateTimeField(auto_now=True)

    class Meta:
        db_table = 'users'
        ordering = ['-created_at']


`)
	}

	for i := range spec.Models {
		m := &spec.Models[i]
		base := "models.Model"
		if m.Name == "User" {
			// the User model doubles as the auth user
			base = "AbstractUser"
		}
		desc := m.Description
		if desc == "" {
			desc = m.Name + " model"
		}
		fmt.Fprintf(&b, "class %s(%s):\n", m.Name, base)
		fmt.Fprintf(&b, "    \"\"\"%s\"\"\"\n", desc)

		for _, f := range m.Fields {
			decl, err := djangoField(m.Name, f)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "    %s = %s\n", f.Name, decl)
		}
		for _, rel := range m.Relationships {
			fmt.Fprintf(&b, "    %s\n", djangoRelationship(m.Name, rel))
		}
		// bookkeeping columns go after user-declared fields
		if !m.HasField("created_at") {
			b.WriteString("    created_at = models.DateTimeField(auto_now_add=True)\n")
		}
		if !m.HasField("updated_at") {
			b.WriteString("    updated_at = models.DateTimeField(auto_now=True)\n")
		}

		fmt.Fprintf(&b, `
    class Meta:
        db_table = "%s"
        ordering = ["-created_at"]

    def __str__(self):
        return str(self.%s)


`, tableName(m.Name), djangoStrField(m))
	}

	return b.String(), nil
}

// djangoStrField picks the field __str__ renders: the first
// user-declared field, falling back to the primary key.
func djangoStrField(m *dsl.Model) string {
	for _, f := range m.Fields {
		if !f.AutoGenerated {
			return f.Name
		}
	}
	if pk, ok := m.PrimaryKey(); ok {
		return pk.Name
	}
	return "pk"
}

func djangoSerializers(spec *dsl.Spec) string {
	var b strings.Builder
	fmt.Fprintf(&b, `"""
Django Serializers for %s
Generated by InfraNest
"""
from rest_framework import serializers
from .models import *


`, spec.Meta.Name)

	for i := range spec.Models {
		m := &spec.Models[i]
		names := []string{}
		for _, f := range m.Fields {
			names = append(names, pyString(f.Name))
		}
		if !m.HasField("created_at") {
			names = append(names, pyString("created_at"))
		}
		if !m.HasField("updated_at") {
			names = append(names, pyString("updated_at"))
		}
		fmt.Fprintf(&b, `class %sSerializer(serializers.ModelSerializer):
    """Serializer for %s model"""

    class Meta:
        model = %s
        fields = [%s]
        read_only_fields = ['id', 'created_at', 'updated_at']


`, m.Name, m.Name, m.Name, strings.Join(names, ", "))
	}
	return b.String()
}

func djangoViews(spec *dsl.Spec) string {
	var b strings.Builder
	fmt.Fprintf(&b, `"""
Django Views for %s
Generated by InfraNest
"""
from rest_framework import viewsets, status, filters
from rest_framework.decorators import action, api_view, permission_classes
from rest_framework.response import Response
from rest_framework.permissions import IsAuthenticated, AllowAny
from django_filters.rest_framework import DjangoFilterBackend
from .models import *
from .serializers import *


`, spec.Meta.Name)

	for i := range spec.Models {
		m := &spec.Models[i]
		fmt.Fprintf(&b, `class %sViewSet(viewsets.ModelViewSet):
    """
    API endpoint for %s operations
    Provides list, create, retrieve, update, and delete operations
    """
    queryset = %s.objects.all()
    serializer_class = %sSerializer
    permission_classes = [IsAuthenticated]
    filter_backends = [DjangoFilterBackend, filters.SearchFilter, filters.OrderingFilter]
    filterset_fields = ['created_at', 'updated_at']
    search_fields = ['id']
    ordering_fields = ['created_at', 'updated_at']
    ordering = ['-created_at']

    def get_permissions(self):
        """Set permissions based on action"""
        if self.action == 'list':
            return [AllowAny()]
        return [IsAuthenticated()]

    @action(detail=False, methods=['get'])
    def recent(self, request):
        """Get recent items"""
        recent = self.get_queryset()[:10]
        serializer = self.get_serializer(recent, many=True)
        return Response(serializer.data)


`, m.Name, m.Name, m.Name, m.Name)
	}

	if spec.API != nil {
		for _, ep := range spec.API.Endpoints {
			perm := "IsAuthenticated"
			if ep.Public && !ep.AuthRequired {
				perm = "AllowAny"
			}
			name := endpointHandler(ep)
			fmt.Fprintf(&b, `@api_view([%s])
@permission_classes([%s])
def %s(request):
    """%s %s"""
    return Response({'detail': 'not implemented'}, status=status.HTTP_501_NOT_IMPLEMENTED)


`, pyString(ep.Method), perm, name, ep.Method, ep.Path)
		}
	}

	return b.String()
}

func djangoURLs(spec *dsl.Spec) string {
	var b strings.Builder
	fmt.Fprintf(&b, `"""
Django URLs for %s
Generated by InfraNest
"""
from django.urls import path, include
from rest_framework.routers import DefaultRouter
from . import views

# Create a router and register viewsets
router = DefaultRouter()
`, spec.Meta.Name)

	for i := range spec.Models {
		m := &spec.Models[i]
		route := routeName(m.Name)
		fmt.Fprintf(&b, "router.register(r'%s', views.%sViewSet, basename='%s')\n", route, m.Name, route)
	}

	b.WriteString(`
urlpatterns = [
    path('', include(router.urls)),
`)
	if spec.API != nil {
		for _, ep := range spec.API.Endpoints {
			name := endpointHandler(ep)
			fmt.Fprintf(&b, "    path('%s', views.%s, name='%s'),\n", djangoRoutePath(ep.Path), name, name)
		}
	}
	b.WriteString("]\n")
	return b.String()
}

// djangoRoutePath rewrites "/stats/:id" into Django's "stats/<id>/".
func djangoRoutePath(path string) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segs {
		if strings.HasPrefix(s, ":") {
			segs[i] = "<" + strings.TrimPrefix(s, ":") + ">"
		}
	}
	return strings.Join(segs, "/") + "/"
}

func djangoAdmin(spec *dsl.Spec) string {
	var b strings.Builder
	fmt.Fprintf(&b, `"""
Django Admin for %s
Generated by InfraNest
"""
from django.contrib import admin
from .models import *


`, spec.Meta.Name)

	for i := range spec.Models {
		m := &spec.Models[i]
		display := []string{pyString("id")}
		search := []string{}
		for _, f := range m.Fields {
			if f.Name == "id" || f.Name == "created_at" || f.Name == "updated_at" {
				continue
			}
			if len(display) < 6 {
				display = append(display, pyString(f.Name))
			}
			if len(search) < 3 {
				search = append(search, pyString(f.Name))
			}
		}
		display = append(display, pyString("created_at"), pyString("updated_at"))
		if len(search) == 0 {
			search = append(search, pyString("id"))
		}
		fmt.Fprintf(&b, `@admin.register(%s)
class %sAdmin(admin.ModelAdmin):
    """Admin interface for %s"""
    list_display = [%s]
    list_filter = ['created_at', 'updated_at']
    search_fields = [%s]
    readonly_fields = ['id', 'created_at', 'updated_at']
    ordering = ['-created_at']


`, m.Name, m.Name, m.Name, strings.Join(display, ", "), strings.Join(search, ", "))
	}
	return b.String()
}

func djangoTests(spec *dsl.Spec) string {
	var b strings.Builder
	b.WriteString(`"""
Tests for the application
"""
from django.test import TestCase
from rest_framework.test import APITestCase
from rest_framework import status
from .models import *


`)
	for i := range spec.Models {
		m := &spec.Models[i]
		route := routeName(m.Name)
		fmt.Fprintf(&b, `class %sTestCase(APITestCase):
    """Test case for %s API"""

    def test_list_%s(self):
        """Listing %s must not require auth"""
        response = self.client.get('/api/%s/')
        self.assertEqual(response.status_code, status.HTTP_200_OK)


`, m.Name, m.Name, underscore(m.Name), pluralizeLower(m.Name), route)
	}
	return b.String()
}

var djangoDatabaseEngines = map[string]string{
	"postgres":   "postgresql",
	"postgresql": "postgresql",
	"mysql":      "mysql",
	"sqlite":     "sqlite3",
	"sqlite3":    "sqlite3",
}

func djangoSettings(spec *dsl.Spec) string {
	engine, ok := djangoDatabaseEngines[spec.Meta.Database]
	if !ok {
		engine = "postgresql"
	}
	name := spec.Meta.Name
	return fmt.Sprintf(`"""
Django settings for %s
Generated by InfraNest
"""
import os
from pathlib import Path
from decouple import config

BASE_DIR = Path(__file__).resolve().parent.parent

SECRET_KEY = config('SECRET_KEY', default='django-insecure-change-this-in-production')

DEBUG = config('DEBUG', default=True, cast=bool)

ALLOWED_HOSTS = config('ALLOWED_HOSTS', default='localhost,127.0.0.1', cast=lambda v: [s.strip() for s in v.split(',')])

INSTALLED_APPS = [
    'django.contrib.admin',
    'django.contrib.auth',
    'django.contrib.contenttypes',
    'django.contrib.sessions',
    'django.contrib.messages',
    'django.contrib.staticfiles',

    # Third party apps
    'rest_framework',
    'rest_framework.authtoken',
    'corsheaders',
    'django_filters',

    # Local apps
    'app',
]

MIDDLEWARE = [
    'corsheaders.middleware.CorsMiddleware',
    'django.middleware.security.SecurityMiddleware',
    'django.contrib.sessions.middleware.SessionMiddleware',
    'django.middleware.common.CommonMiddleware',
    'django.middleware.csrf.CsrfViewMiddleware',
    'django.contrib.auth.middleware.AuthenticationMiddleware',
    'django.contrib.messages.middleware.MessageMiddleware',
    'django.middleware.clickjacking.XFrameOptionsMiddleware',
]

ROOT_URLCONF = 'project.urls'

TEMPLATES = [
    {
        'BACKEND': 'django.template.backends.django.DjangoTemplates',
        'DIRS': [],
        'APP_DIRS': True,
        'OPTIONS': {
            'context_processors': [
                'django.template.context_processors.debug',
                'django.template.context_processors.request',
                'django.contrib.auth.context_processors.auth',
                'django.contrib.messages.context_processors.messages',
            ],
        },
    },
]

WSGI_APPLICATION = 'project.wsgi.application'

# Database
DATABASES = {
    'default': {
        'ENGINE': 'django.db.backends.%s',
        'NAME': config('DB_NAME', default='%s_db'),
        'USER': config('DB_USER', default='postgres'),
        'PASSWORD': config('DB_PASSWORD', default='postgres'),
        'HOST': config('DB_HOST', default='localhost'),
        'PORT': config('DB_PORT', default='5432'),
    }
}

AUTH_PASSWORD_VALIDATORS = [
    {'NAME': 'django.contrib.auth.password_validation.UserAttributeSimilarityValidator'},
    {'NAME': 'django.contrib.auth.password_validation.MinimumLengthValidator'},
    {'NAME': 'django.contrib.auth.password_validation.CommonPasswordValidator'},
    {'NAME': 'django.contrib.auth.password_validation.NumericPasswordValidator'},
]

LANGUAGE_CODE = 'en-us'
TIME_ZONE = 'UTC'
USE_I18N = True
USE_TZ = True

STATIC_URL = 'static/'
STATIC_ROOT = os.path.join(BASE_DIR, 'staticfiles')

MEDIA_URL = 'media/'
MEDIA_ROOT = os.path.join(BASE_DIR, 'media')

DEFAULT_AUTO_FIELD = 'django.db.models.BigAutoField'

REST_FRAMEWORK = {
    'DEFAULT_AUTHENTICATION_CLASSES': [
        'rest_framework.authentication.TokenAuthentication',
        'rest_framework.authentication.SessionAuthentication',
    ],
    'DEFAULT_PERMISSION_CLASSES': [
        'rest_framework.permissions.IsAuthenticated',
    ],
    'DEFAULT_PAGINATION_CLASS': 'rest_framework.pagination.PageNumberPagination',
    'PAGE_SIZE': 20,
    'DEFAULT_FILTER_BACKENDS': [
        'django_filters.rest_framework.DjangoFilterBackend',
        'rest_framework.filters.SearchFilter',
        'rest_framework.filters.OrderingFilter',
    ],
}

CORS_ALLOWED_ORIGINS = [
    "http://localhost:3000",
    "http://localhost:5173",
    "http://localhost:8080",
]

CORS_ALLOW_CREDENTIALS = True

# Custom user model
AUTH_USER_MODEL = 'app.User'
`, name, engine, name)
}

func djangoProjectURLs(spec *dsl.Spec) string {
	return fmt.Sprintf(`"""
URL configuration for %s project
Generated by InfraNest
"""
from django.contrib import admin
from django.urls import path, include
from rest_framework.authtoken.views import obtain_auth_token

urlpatterns = [
    path('admin/', admin.site.urls),
    path('api/', include('app.urls')),
    path('api/auth/token/', obtain_auth_token, name='api_token_auth'),
]
`, spec.Meta.Name)
}

func djangoCompose(spec *dsl.Spec) string {
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

  web:
    build: .
    command: python manage.py runserver 0.0.0.0:8000
    volumes:
      - .:/app
    ports:
      - "8000:8000"
    environment:
      - DEBUG=True
      - DB_NAME=%s_db
      - DB_USER=postgres
      - DB_PASSWORD=postgres
      - DB_HOST=db
      - DB_PORT=5432
    depends_on:
      - db

volumes:
  postgres_data:
`, name, name)
}

func djangoEnvExample(spec *dsl.Spec) string {
	return fmt.Sprintf(`# Django settings
SECRET_KEY=your-secret-key-here
DEBUG=True
ALLOWED_HOSTS=localhost,127.0.0.1

# Database
DB_NAME=%s_db
DB_USER=postgres
DB_PASSWORD=postgres
DB_HOST=localhost
DB_PORT=5432
`, spec.Meta.Name)
}

func djangoReadme(spec *dsl.Spec) string {
	desc := spec.Meta.Description
	if desc == "" {
		desc = "A Django REST API project"
	}
	var b strings.Builder
	fence := "```"
	fmt.Fprintf(&b, `# %s

%s

Generated by InfraNest.

## Setup

%sbash
python -m venv venv
source venv/bin/activate
pip install -r requirements.txt
cp .env.example .env
python manage.py migrate
python manage.py runserver
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
- GET /api/%s/ - List all
- POST /api/%s/ - Create new
- GET /api/%s/:id/ - Get one
- PUT /api/%s/:id/ - Update
- DELETE /api/%s/:id/ - Delete

`, m.Name, route, route, route, route, route)
	}
	return b.String()
}

const djangoManagePy = `#!/usr/bin/env python
"""Django's command-line utility for administrative tasks."""
import os
import sys


def main():
    """Run administrative tasks."""
    os.environ.setdefault('DJANGO_SETTINGS_MODULE', 'project.settings')
    try:
        from django.core.management import execute_from_command_line
    except ImportError as exc:
        raise ImportError(
            "Couldn't import Django. Are you sure it's installed and "
            "available on your PYTHONPATH environment variable? Did you "
            "forget to activate a virtual environment?"
        ) from exc
    execute_from_command_line(sys.argv)


if __name__ == '__main__':
    main()
`

const djangoAppsPy = `"""
App configuration
"""
from django.apps import AppConfig


class AppConfig(AppConfig):
    default_auto_field = 'django.db.models.BigAutoField'
    name = 'app'
`

const djangoWSGI = `"""
WSGI config for project
"""
import os
from django.core.wsgi import get_wsgi_application

os.environ.setdefault('DJANGO_SETTINGS_MODULE', 'project.settings')
application = get_wsgi_application()
`

const djangoASGI = `"""
ASGI config for project
"""
import os
from django.core.asgi import get_asgi_application

os.environ.setdefault('DJANGO_SETTINGS_MODULE', 'project.settings')
application = get_asgi_application()
`

const djangoRequirements = `# Django Framework
Django==4.2.7
djangorestframework==3.14.0

# Database
psycopg2-binary==2.9.9

# CORS headers
django-cors-headers==4.3.1

# Environment variables
python-decouple==3.8

# Filtering
django-filter==23.5

# Testing
pytest==7.4.3
pytest-django==4.7.0
pytest-cov==4.1.0

# Production server
gunicorn==21.2.0
whitenoise==6.6.0
`

const djangoDockerfile = `FROM python:3.11-slim

ENV PYTHONDONTWRITEBYTECODE=1
ENV PYTHONUNBUFFERED=1

WORKDIR /app

RUN apt-get update && apt-get install -y \
    postgresql-client \
    && rm -rf /var/lib/apt/lists/*

COPY requirements.txt /app/
RUN pip install --upgrade pip && pip install -r requirements.txt

COPY . /app/

RUN python manage.py collectstatic --noinput

CMD ["gunicorn", "project.wsgi:application", "--bind", "0.0.0.0:8000", "--workers", "4"]
`

const djangoGitignore = `# Python
__pycache__/
*.py[cod]
env/
venv/
build/
dist/
*.egg-info/

# Django
*.log
local_settings.py
db.sqlite3
/media
/staticfiles

# Environment
.env

# IDE
.vscode/
.idea/
*.swp

# OS
.DS_Store
`

const djangoDockerignore = `__pycache__
*.pyc
env/
venv/
.git
.gitignore
.dockerignore
Dockerfile
docker-compose.yml
.env
*.sqlite3
`

const djangoPytestIni = `[pytest]
DJANGO_SETTINGS_MODULE = project.settings
python_files = tests.py test_*.py *_tests.py
addopts = --cov=. --cov-report=html --cov-report=term-missing
`

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func pyString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return "'" + s + "'"
}

func pyLiteral(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case bool:
		return pyBool(t)
	case string:
		return pyString(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return formatNum(t)
	default:
		return pyString(fmt.Sprintf("%v", t))
	}
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
