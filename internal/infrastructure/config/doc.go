// Package config provides 12-factor configuration management for the desktop
// shell service.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override the listen address.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, CORS origins)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Boot: Logo delay and boot skip
//   - Shell: Top bar height, cascade origin and step, z-index base
//   - Catalog: Directory of app and desktop item definitions
//   - Persona: Persona store URL and timeouts
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s\n", cfg.Addr())
//
// Environment Variables:
//   - PORT, HOST, CORS_ORIGINS
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - BOOT_LOGO_DELAY, BOOT_SKIP
//   - SHELL_TOP_BAR_HEIGHT, SHELL_CASCADE_BASE, SHELL_CASCADE_STEP, SHELL_Z_BASE
//   - CATALOG_DIR, PERSONA_STORE_URL, PERSONA_STORE_TIMEOUT, PERSONA_STORE_RETRIES
package config
