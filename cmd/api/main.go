package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solar-sizer/internal/advisor"
	"solar-sizer/internal/api"
	"solar-sizer/internal/config"
	"solar-sizer/internal/data"
	"solar-sizer/internal/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	logger := logging.Init()

	// Configuration: SOLAR_CONFIG points at a YAML file; without it the
	// built-in defaults are used. API_PORT overrides server.port.
	cfg, err := config.LoadOrDefault(os.Getenv("SOLAR_CONFIG"))
	if err != nil {
		logging.Fatal(logger, "failed to load config", err)
	}
	if port := os.Getenv("API_PORT"); port != "" {
		cfg.Server.Port = port
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	adv, closeStore, err := advisor.FromConfig(ctx, cfg)
	if err != nil {
		logging.Fatal(logger, "failed to initialise advisor", err)
	}
	defer closeStore()

	studiesPath := caseStudiesFile()
	studies, err := data.LoadCaseStudies(studiesPath)
	if err != nil {
		logger.Warn("case studies unavailable", "file", studiesPath, "error", err)
	}

	router := api.NewRouter(api.Deps{
		Advisor:        adv,
		MarketsDir:     data.DefaultMarketsDir(),
		CaseStudies:    studies,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting API server", "addr", server.Addr, "market", adv.Market().Name)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed", "error", err)
		return
	case <-quit:
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err)
	}
	logger.Info("server exited")
}

// caseStudiesFile returns CASE_STUDIES_FILE, or the bundled stories.
func caseStudiesFile() string {
	if p := os.Getenv("CASE_STUDIES_FILE"); p != "" {
		return p
	}
	return "examples/case_studies.json"
}
