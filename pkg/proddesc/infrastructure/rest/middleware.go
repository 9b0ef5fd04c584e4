package rest

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const headerRequestID = "X-Request-ID"

// unmatchedEndpoint the endpoint label for requests which matched no route (keeps metric cardinality bounded)
const unmatchedEndpoint = "unmatched"

// requestLogger attaches a request-scoped zerolog logger (with a request ID) to the request context, logs the
// outcome of each request and updates the request metrics.
func requestLogger(logger zerolog.Logger, metrics *Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			requestID := req.Header.Get(headerRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			c.Response().Header().Set(headerRequestID, requestID)

			reqLogger := logger.With().
				Str("request_id", requestID).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", c.RealIP()).
				Logger()
			c.SetRequest(req.WithContext(reqLogger.WithContext(req.Context())))

			metrics.requestStarted()
			err := next(c)
			if err != nil {
				// writes the response now, so that the status below is the real one
				c.Error(err)
			}
			status := c.Response().Status
			duration := time.Since(start)
			endpoint := c.Path()
			if endpoint == "" {
				endpoint = unmatchedEndpoint
			}
			metrics.requestFinished(req.Method, endpoint, status, duration)

			if status >= 500 {
				reqLogger.Error().
					Err(err).
					Int("status", status).
					Dur("duration", duration).
					Msg("http request failed")
			} else {
				reqLogger.Info().
					Int("status", status).
					Dur("duration", duration).
					Msg("http request served")
			}
			return nil
		}
	}
}
