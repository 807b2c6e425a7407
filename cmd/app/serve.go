package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	apihttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/generated/servers"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var withoutJobs bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the background jobs",
	Run:   runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&withoutJobs, "without-jobs", false, "do not run the pending orders job")
	rootCmd.AddCommand(serveCmd)
}

func runServe(c *cobra.Command, _ []string) {
	ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, configs, logger := newApp(ctx)
	if err := postgres.Migrate(app.DB()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	doc, err := servers.GetSwagger()
	if err != nil {
		log.Fatalf("%v", err)
	}
	e, err := apihttp.NewRouter(apihttp.NewServer(app.CreateHTTPHandlers(), logger), doc)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	if !withoutJobs {
		jobManager := app.CreateJobManager()
		if err = jobManager.StartAll(); err != nil {
			log.Fatalf("Failed to start jobs: %v", err)
		}
		defer jobManager.StopAll()
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
