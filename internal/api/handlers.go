package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/movierental/rental/internal/audit"
	"github.com/movierental/rental/internal/rentals"
	"github.com/movierental/rental/internal/zerrors"
)

// Handlers provides HTTP handlers for rental operations
type Handlers struct {
	rentals rentals.RentalManager
	audit   audit.Recorder
	health  []HealthChecker
	logger  *zap.Logger
}

// NewHandlers creates new rental handlers
func NewHandlers(deps Deps) *Handlers {
	return &Handlers{
		rentals: deps.Rentals,
		audit:   deps.Audit,
		health:  deps.Health,
		logger:  deps.Logger,
	}
}

func (h *Handlers) Health(c *gin.Context) {
	ctx := c.Request.Context()

	services := gin.H{}
	for _, checker := range h.health {
		if err := checker.HealthCheck(ctx); err != nil {
			h.logger.Error("Health check failed", zap.String("service", checker.Name()), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now().Format(time.RFC3339),
				"error":     err.Error(),
			})
			return
		}
		services[checker.Name()] = "healthy"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"services":  services,
	})
}

func (h *Handlers) ListRentals(c *gin.Context) {
	list, err := h.rentals.ListRentals(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) GetRental(c *gin.Context) {
	id, ok := h.rentalID(c)
	if !ok {
		return
	}

	rental, err := h.rentals.GetRentalByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rental)
}

func (h *Handlers) CreateRental(c *gin.Context) {
	var req rentals.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, zerrors.NewValidationError("Invalid request body.", err))
		return
	}

	if err := h.rentals.CreateRental(c.Request.Context(), &req); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Rental created"})
}

func (h *Handlers) FinishRental(c *gin.Context) {
	id, ok := h.rentalID(c)
	if !ok {
		return
	}

	if err := h.rentals.FinishRental(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rental finished"})
}

func (h *Handlers) ListAuditEvents(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	events, err := h.audit.Recent(c.Request.Context(), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *Handlers) AuditSummary(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	summary, err := h.audit.Summary(c.Request.Context(), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handlers) rentalID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.writeError(c, zerrors.NewValidationError("Invalid rental id.", err))
		return 0, false
	}
	return id, true
}

// writeError renders {"name", "message"} with the status mapped from the error.
// Errors outside the taxonomy are logged and hidden behind a generic message.
func (h *Handlers) writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := zerrors.HTTPStatus(err)
	name := zerrors.NameOf(err)
	message := "Internal server error."

	if status == http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	} else {
		var serr *zerrors.Error
		if errors.As(err, &serr) {
			message = serr.Message
		}
	}

	c.JSON(status, gin.H{
		"name":    name,
		"message": message,
	})
}
