package http

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/aescanero/metricsvc/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-Id"

const tracerName = "github.com/aescanero/metricsvc/pkg/api/http"

// inFlightTracker is implemented by recorders that also track pending requests
type inFlightTracker interface {
	StartRequest(method, route string) func()
}

// traceRequests wraps each request in a server span and logs a summary once it completes
func traceRequests(tracer trace.Tracer, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		route := c.FullPath()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		ctx, span := tracer.Start(c.Request.Context(), spanName(method, route),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", method),
				attribute.String("url.path", path),
				attribute.String("http.route", metrics.RouteLabel(route)),
				attribute.String("http.request.id", requestID),
			))
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("started processing request",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID))

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)

		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
		span.End()

		logger.Info("finished processing request",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("route", metrics.RouteLabel(route)),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("request_id", requestID),
			zap.String("trace_id", span.SpanContext().TraceID().String()))
	}
}

// recordMetrics brackets the pending gauge and records one sample per request
func recordMetrics(recorder metrics.Recorder) gin.HandlerFunc {
	tracker, _ := recorder.(inFlightTracker)

	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		route := c.FullPath()

		if tracker != nil {
			done := tracker.StartRequest(method, route)
			defer done()
		}

		c.Next()

		recorder.Record(metrics.Sample{
			Method:   method,
			Route:    route,
			Status:   c.Writer.Status(),
			Duration: time.Since(start),
		})
	}
}

// recovery turns handler panics into a 500 and logs them with the stack
func recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("HTTP handler panic",
					zap.Any("error", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()))
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()

		c.Next()
	}
}

func spanName(method, route string) string {
	if route == "" {
		return method
	}
	return method + " " + route
}
