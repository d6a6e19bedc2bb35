package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"docbridge/internal/config"
	"docbridge/internal/handler"
	"docbridge/internal/model/bedrock"
	"docbridge/internal/node"
	"docbridge/internal/ocr"
	"docbridge/internal/recognition/textract"
	"docbridge/internal/router"
	s3storage "docbridge/internal/storage/s3"
)

// @title Docbridge API
// @version 1.0
// @description Document OCR and model invocation nodes for workflow hosts.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize AWS clients; all of them fail fast on missing credentials.
	s3Client, err := s3storage.NewS3Client(&cfg.AWS)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}
	textractClient, err := textract.NewTextractClient(&cfg.AWS)
	if err != nil {
		return fmt.Errorf("failed to initialize Textract client: %w", err)
	}
	bedrockClient, err := bedrock.NewBedrockClient(&cfg.AWS)
	if err != nil {
		return fmt.Errorf("failed to initialize Bedrock client: %w", err)
	}

	engine := ocr.NewEngine(s3Client, textractClient)

	deps := node.Deps{
		Engine:   engine,
		Invoker:  bedrockClient,
		OCR:      cfg.OCR,
		Converse: cfg.Converse,
	}

	// Initialize handlers
	nodeH := handler.NewNodeHandler(deps)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg, nodeH, healthH)

	// Long OCR polls need a write timeout past the worst-case job budget.
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
