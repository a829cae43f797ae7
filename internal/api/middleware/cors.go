package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/desktop/internal/infrastructure/tracing"
)

// CORSConfig is the cross-origin policy for the desktop front end.
type CORSConfig struct {
	AllowOrigins []string
	AllowMethods []string
	// AllowHeaders lists what the front end sends: JSON bodies and a trace id
	AllowHeaders []string
	// ExposeHeaders lets the browser read the trace ids set on responses
	ExposeHeaders []string
	MaxAge        time.Duration
}

// DefaultCORSConfig allows any origin to drive sessions.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE"},
		AllowHeaders:  []string{"Content-Type", tracing.HeaderTraceID},
		ExposeHeaders: []string{tracing.HeaderTraceID, tracing.HeaderSpanID},
		MaxAge:        12 * time.Hour,
	}
}

// WithOrigins returns a copy restricted to origins; empty keeps the current list.
func (c CORSConfig) WithOrigins(origins []string) CORSConfig {
	if len(origins) > 0 {
		c.AllowOrigins = origins
	}
	return c
}

// CORS builds the middleware. Sessions are anonymous, so credentials are never allowed.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:    cfg.AllowOrigins,
		AllowMethods:    cfg.AllowMethods,
		AllowHeaders:    cfg.AllowHeaders,
		ExposeHeaders:   cfg.ExposeHeaders,
		AllowWebSockets: true,
		MaxAge:          cfg.MaxAge,
	})
}
