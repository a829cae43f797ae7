// Package middleware provides HTTP middleware for the desktop shell service.
//
// Middleware stack includes:
//   - CORS: Cross-origin resource sharing with configurable origins
//   - RateLimit: Per-IP token bucket rate limiting
//   - Logger: One structured zap line per request
//
// CORS Configuration:
//   - AllowOrigins: Permitted origin domains (CORS_ORIGINS)
//   - AllowMethods: HTTP methods (GET, POST, DELETE)
//   - AllowHeaders: Content-Type and X-Trace-ID
//   - ExposeHeaders: X-Trace-ID and X-Span-ID
//   - MaxAge: Preflight cache duration
//   - WebSocket upgrades are allowed for the session stream
//
// Rate Limiting:
//   - Per-IP tracking with idle eviction
//   - Token bucket algorithm
//   - Configurable RPS and burst capacity
//   - Global rate limiting option
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
//	router.Use(middleware.Logger(logger.Logger))
package middleware
