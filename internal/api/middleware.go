package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/movierental/rental/internal/audit"
	"github.com/movierental/rental/internal/observability"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestLogger tags each request with an ID and logs it once it completes
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		logger.Info("Request handled",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("remote_addr", c.ClientIP()))
	}
}

// Metrics records request counts and latency per route
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observability.HTTPRequestsTotal.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Inc()
		observability.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route).
			Observe(time.Since(start).Seconds())
	}
}

// AuditTrail records every rental API call. Events are written in the
// background and never change the response.
func AuditTrail(recorder audit.Recorder, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		operation := operationFor(c.Request.Method, c.FullPath())
		if operation == "" {
			return
		}

		event := &audit.Event{
			Operation:  operation,
			Method:     c.Request.Method,
			Endpoint:   c.Request.URL.Path,
			RequestID:  c.GetString(requestIDKey),
			StatusCode: c.Writer.Status(),
			Success:    c.Writer.Status() < http.StatusBadRequest,
			DurationMs: time.Since(startTime).Milliseconds(),
			Timestamp:  startTime,
		}
		if id, err := strconv.ParseInt(c.Param("id"), 10, 64); err == nil {
			event.RentalID = &id
		}
		if !event.Success {
			if last := c.Errors.Last(); last != nil {
				event.ErrorMsg = last.Err.Error()
			} else {
				event.ErrorMsg = fmt.Sprintf("HTTP %d", c.Writer.Status())
			}
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := recorder.Record(ctx, event); err != nil {
				logger.Error("Failed to record audit event",
					zap.String("operation", operation),
					zap.Error(err))
			}
		}()
	}
}

// operationFor maps a rental route to its audit operation name
func operationFor(method, route string) string {
	switch {
	case method == http.MethodGet && route == "/rentals":
		return "list_rentals"
	case method == http.MethodGet && route == "/rentals/:id":
		return "get_rental"
	case method == http.MethodPost && route == "/rentals":
		return "create_rental"
	case method == http.MethodPost && route == "/rentals/:id/finish":
		return "finish_rental"
	default:
		return ""
	}
}
