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

	"survey-insights-go/internal/api"
	"survey-insights-go/internal/config"
	"survey-insights-go/internal/dataset"
	"survey-insights-go/internal/logger"
	"survey-insights-go/internal/pipeline"
	"survey-insights-go/internal/questions"
	"survey-insights-go/internal/store"
)

func main() {
	log := logger.New()
	log.WithField("service", "survey-insights-go").Info("starting service")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	registry, err := questions.Default()
	if err != nil {
		log.WithError(err).Fatal("question registry rejected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// xlsx export is read-only; otherwise responses live in the database
	var (
		source   pipeline.Source
		inserter api.Inserter
	)
	if cfg.ReadOnly() {
		log.WithField("dataset_path", cfg.DatasetPath).Info("serving responses from dataset file")
		source = dataset.NewFileSource(cfg.DatasetPath, log)
	} else {
		log.WithField("database_type", cfg.DatabaseType).Info("connecting to database")
		db, err := store.Open(ctx, cfg, log)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to database")
		}
		defer db.Close()
		if err := db.CreateSchema(ctx); err != nil {
			log.WithError(err).Fatal("failed to create schema")
		}
		source, inserter = db, db
	}

	p := pipeline.New(registry, cfg.PipelineConcurrent, log)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.New(p, registry, source, inserter, log).Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("shutdown did not complete cleanly")
		}
	}()

	log.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server terminated")
	}
	log.Info("server stopped")
}
