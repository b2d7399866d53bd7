package router

import (
	"github.com/gin-gonic/gin"

	"porteo/internal/config"
	"porteo/internal/handler"
	"porteo/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	healthH *handler.HealthHandler,
	bookingH *handler.BookingHandler,
	shipmentH *handler.ShipmentHandler,
	costH *handler.CostHandler,
	reconH *handler.ReconHandler,
	supplierH *handler.SupplierHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Booking processing and deletion
	bookings := v1.Group("/bookings")
	bookings.POST("/extractions", bookingH.ProcessExtraction)
	bookings.DELETE("/:bl", bookingH.Delete)

	// Booking-derived collections
	v1.GET("/pre-alerts", bookingH.ListPreAlerts)
	v1.GET("/vessel-tracking", bookingH.ListVesselTracking)
	v1.PUT("/vessel-tracking", bookingH.UpdateVesselTracking)
	v1.GET("/customs-clearance", bookingH.ListCustomsClearance)
	v1.PUT("/customs-clearance", bookingH.UpdateCustomsClearance)
	v1.GET("/equipment-tracking", bookingH.ListEquipmentTracking)
	v1.PUT("/equipment-tracking", bookingH.UpdateEquipmentTracking)

	// Shipments
	v1.GET("/shipments", shipmentH.List)
	v1.PUT("/shipments", shipmentH.Update)

	// Cost records
	costs := v1.Group("/costs")
	costs.GET("", costH.List)
	costs.POST("", costH.Upsert)
	costs.DELETE("/:id", costH.Delete)
	costs.POST("/:id/link", costH.Link)
	costs.POST("/:id/unlink", costH.Unlink)
	costs.POST("/import", costH.ImportCSV)
	costs.POST("/documents", costH.ImportDocument)
	costs.POST("/dedup", costH.RunDedup)

	// Reconciliation view
	recon := v1.Group("/recon")
	recon.GET("/rows", reconH.Rows)
	recon.GET("/export", reconH.ExportCSV)
	recon.GET("/resolve", reconH.Resolve)
	recon.GET("/duplicates", reconH.Duplicates)
	recon.POST("/extract", reconH.ExtractText)

	// Supplier catalog
	suppliers := v1.Group("/suppliers")
	suppliers.GET("", supplierH.List)
	suppliers.POST("", supplierH.Upsert)
	suppliers.DELETE("/:id", supplierH.Delete)

	return r
}
