package main

import (
	"fmt"
	"log"

	"docr/internal/compare"
	"docr/internal/config"
	"docr/internal/handler"
	"docr/internal/ocr"
	"docr/internal/repository/postgres"
	"docr/internal/router"
	"docr/internal/service"
	s3storage "docr/internal/storage/s3"
	"docr/internal/validate"
)

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

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	docRepo := postgres.NewDocumentRepo(db)
	authorRepo := postgres.NewAuthorRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize engine clients
	extractor := ocr.NewClient(&cfg.Engine)
	comparer := compare.NewClient(&cfg.Engine)

	// Initialize services
	extractionSvc := service.NewExtractionService(
		extractor,
		validate.New(validate.DefaultConfig()),
		service.BatchOptions{
			Concurrency:     cfg.Batch.Concurrency,
			SkipUnsupported: cfg.Batch.SkipUnsupported,
			MaxFileSizeMB:   cfg.Batch.MaxFileSizeMB,
		},
	)
	docSvc := service.NewDocumentService(docRepo, authorRepo, s3Client, extractor, comparer, &cfg.S3)

	// Initialize handlers
	ocrH := handler.NewOCRHandler(extractionSvc, docSvc)
	docH := handler.NewDocumentHandler(docSvc)
	authorH := handler.NewAuthorHandler(authorRepo)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg.CORS.AllowedOrigins, ocrH, docH, authorH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
