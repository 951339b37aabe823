package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"infranest/internal/api"
	"infranest/internal/catalog"
	"infranest/internal/config"
	"infranest/internal/logger"
)

func main() {
	cfg := config.LoadWithPath("config.json")

	logCfg := logger.DefaultConfig()
	logCfg.Format = cfg.LogFormat
	logCfg.Level = logger.ParseLevel(cfg.LogLevel)
	logger.Init(logCfg)
	log := logger.ForComponent("server")

	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	templates, err := catalog.Load(cfg.TemplatesDir)
	if err != nil {
		log.Error("failed to load template catalog", "dir", cfg.TemplatesDir, "err", err)
		os.Exit(1)
	}
	log.Info("template catalog loaded", "dir", cfg.TemplatesDir, "templates", templates.Len())

	srv := &api.Server{
		Catalog:          templates,
		DefaultFramework: cfg.DefaultFramework,
		Log:              log,
	}

	log.Info("starting server", "port", cfg.Port)
	if err := api.RunServer(":"+cfg.Port, srv); err != nil {
		log.Error("server exited", "err", err)
		os.Exit(1)
	}
}
