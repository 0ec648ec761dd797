// Package main is the entry point for the yardbook API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"yardbook/internal/domain/cash"
	"yardbook/internal/domain/catalogs/contract"
	"yardbook/internal/domain/catalogs/material"
	"yardbook/internal/domain/catalogs/partner"
	"yardbook/internal/domain/documents"
	"yardbook/internal/domain/documents/acquisition"
	"yardbook/internal/domain/documents/dismantling"
	"yardbook/internal/domain/documents/sale"
	"yardbook/internal/domain/ledger"
	"yardbook/internal/domain/reconcile"
	v1 "yardbook/internal/infrastructure/http/v1"
	"yardbook/internal/infrastructure/storage/postgres"
	"yardbook/internal/infrastructure/storage/postgres/cash_repo"
	"yardbook/internal/infrastructure/storage/postgres/catalog_repo"
	"yardbook/internal/infrastructure/storage/postgres/document_repo"
	"yardbook/internal/infrastructure/storage/postgres/ledger_repo"
	"yardbook/pkg/logger"
	"yardbook/pkg/numerator"
)

func main() {
	_ = godotenv.Load()

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting yardbook server")

	// --- Database connection ---
	poolCfg := postgres.DefaultPoolConfig(mustEnv("DATABASE_URL"))
	if maxConns := getEnvInt("DB_MAX_CONNS", 0); maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	stockRepo := ledger_repo.NewStockRepo(txManager)
	acquisitionRepo := document_repo.NewAcquisitionRepo(txManager)
	saleRepo := document_repo.NewSaleRepo(txManager)
	dismantlingRepo := document_repo.NewDismantlingRepo(txManager)
	cashRepo := cash_repo.NewCashRepo(txManager)
	materialRepo := catalog_repo.NewMaterialRepo(txManager)
	partnerRepo := catalog_repo.NewPartnerRepo(txManager)
	contractRepo := catalog_repo.NewContractRepo(txManager)

	// --- Services ---
	numeratorService := numerator.New(pool.Unwrap(), numerator.DefaultConfig())

	stockService := ledger.NewService(stockRepo)
	cashService := cash.NewService(cashRepo)

	acquisitionService := acquisition.NewService(
		acquisitionRepo,
		stockService,
		cashService,
		partnerRepo,
		numeratorService,
		txManager,
		documents.DefaultAcquisitionPolicy(),
	)
	saleService := sale.NewService(
		saleRepo,
		stockService,
		cashService,
		numeratorService,
		txManager,
		documents.DefaultSalePolicy(),
	)
	dismantlingService := dismantling.NewService(
		dismantlingRepo,
		stockService,
		numeratorService,
		txManager,
		documents.DefaultDismantlingPolicy(),
	)
	reconcileService := reconcile.NewService(cashRepo)
	materialService := material.NewService(materialRepo)
	partnerService := partner.NewService(partnerRepo)
	contractService := contract.NewService(contractRepo)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:         pool,
		Logger:       log,
		Acquisitions: acquisitionService,
		Sales:        saleService,
		Dismantlings: dismantlingService,
		Stock:        stockService,
		Cash:         cashService,
		Reconcile:    reconcileService,
		Materials:    materialService,
		Partners:     partnerService,
		Contracts:    contractService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
