package api

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/movierental/rental/internal/audit"
	"github.com/movierental/rental/internal/observability"
	"github.com/movierental/rental/internal/rentals"
)

// HealthChecker is a dependency probed by /health
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
	Name() string
}

// Deps holds everything the router needs. Audit and Health may be empty.
type Deps struct {
	Rentals rentals.RentalManager
	Audit   audit.Recorder
	Health  []HealthChecker
	Logger  *zap.Logger
}

// NewRouter builds the gin engine with all routes and middleware
func NewRouter(deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	h := NewHandlers(deps)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(cors.Default())
	router.Use(gin.Recovery())
	router.Use(RequestLogger(deps.Logger))
	router.Use(Metrics())

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(observability.Handler()))

	rentalRoutes := router.Group("/rentals")
	if deps.Audit != nil {
		rentalRoutes.Use(AuditTrail(deps.Audit, deps.Logger))
		rentalRoutes.GET("/audit", h.ListAuditEvents)
		rentalRoutes.GET("/audit/summary", h.AuditSummary)
	}
	{
		rentalRoutes.GET("", h.ListRentals)
		rentalRoutes.POST("", h.CreateRental)
		rentalRoutes.GET("/:id", h.GetRental)
		rentalRoutes.POST("/:id/finish", h.FinishRental)
	}

	return router
}
