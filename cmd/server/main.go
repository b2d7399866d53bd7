package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"porteo/internal/cascade"
	"porteo/internal/config"
	"porteo/internal/extract"
	"porteo/internal/handler"
	"porteo/internal/repository/postgres"
	"porteo/internal/router"
	"porteo/internal/service"
	"porteo/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize repositories
	shipmentRepo := postgres.NewShipmentRepo(db)
	costRepo := postgres.NewCostRepo(db)
	preAlertRepo := postgres.NewPreAlertRepo(db)
	vesselRepo := postgres.NewVesselTrackingRepo(db)
	customsRepo := postgres.NewCustomsClearanceRepo(db)
	equipmentRepo := postgres.NewEquipmentTrackingRepo(db)
	supplierRepo := postgres.NewSupplierRepo(db)

	// Initialize the record store
	st := store.New(shipmentRepo, costRepo, preAlertRepo, vesselRepo, customsRepo, equipmentRepo, supplierRepo)
	if err := st.Load(ctx); err != nil {
		return fmt.Errorf("failed to load record store: %w", err)
	}

	// Initialize services
	propagator := cascade.New(st)
	bookingSvc := service.NewBookingService(st, propagator)
	costSvc := service.NewCostService(st, extract.NewTextExtractor())
	reconSvc := service.NewReconService(st)
	supplierSvc := service.NewSupplierService(st)

	// Initialize handlers
	healthH := handler.NewHealthHandler(db)
	bookingH := handler.NewBookingHandler(bookingSvc)
	shipmentH := handler.NewShipmentHandler(bookingSvc)
	costH := handler.NewCostHandler(costSvc, cfg.Import.MaxFileSizeMB<<20)
	reconH := handler.NewReconHandler(reconSvc)
	supplierH := handler.NewSupplierHandler(supplierSvc)

	// Setup router
	r := router.Setup(cfg, healthH, bookingH, shipmentH, costH, reconH, supplierH)

	// Background snapshot refresh
	refreshWorker := service.NewRefreshWorker(st, service.RefreshConfig{
		PollInterval: time.Duration(cfg.Refresh.PollIntervalSecs) * time.Second,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		refreshWorker.Start(ctx)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

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

	log.Printf("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	<-workerDone
	return nil
}
