// PDF-to-Markdown Conversion Server - Main Entry Point
//
// Go HTTP service exposing an asynchronous PDF-to-Markdown conversion
// pipeline: upload, submit a conversion job, poll for progress, fetch the
// rendered Markdown.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/adverant/nexus/pdf2md/internal/api"
	"github.com/adverant/nexus/pdf2md/internal/config"
	"github.com/adverant/nexus/pdf2md/internal/converter"
	"github.com/adverant/nexus/pdf2md/internal/filestore"
	"github.com/adverant/nexus/pdf2md/internal/jobs"
	"github.com/adverant/nexus/pdf2md/internal/logging"
	"github.com/adverant/nexus/pdf2md/internal/ocr"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env not found, using system environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logging.ConfigureOutput(cfg.LogFile)
	rootLog := logging.NewLogger("server")

	rootLog.Info("pdf2md server starting", "host", cfg.ServerHost, "port", cfg.ServerPort, "uploadDir", cfg.UploadDir)

	store, err := filestore.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize file store: %v", err)
	}

	recognizer := ocr.NewTesseractRecognizer(cfg.TesseractPath)
	conv := converter.New(recognizer)

	manager := jobs.New(store, conv, jobs.Config{
		BatchSize:         cfg.ChunkSize,
		TableMinColumns:   cfg.TableMinColumns,
		MaxConcurrentJobs: cfg.MaxConcurrentJobs,
	})

	srv := api.New(store, manager, cfg.APIKeys, cfg.CORSOrigins)

	addr := cfg.ServerHost + ":" + strconv.Itoa(cfg.ServerPort)

	go func() {
		if err := srv.App.Listen(addr); err != nil {
			rootLog.Error("HTTP server stopped", "error", err.Error())
		}
	}()

	rootLog.Info("pdf2md server is ready", "addr", addr, "maxConcurrentJobs", cfg.MaxConcurrentJobs)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan
	rootLog.Info("received shutdown signal, shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.App.ShutdownWithContext(ctx); err != nil {
		rootLog.Error("error during HTTP shutdown", "error", err.Error())
	}

	rootLog.Info("shutdown complete")
}
