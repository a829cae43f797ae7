// Package main is the entry point for the AgentOS desktop shell service.
//
// The service hosts one headless desktop per session: boot sequence, window
// stack, drag, overlays and theme. A browser front end drives it over REST
// and a per-session WebSocket stream.
//
// Commands:
//   - serve: Run the HTTP and WebSocket service
//   - replay FILE: Run a YAML event script against a fresh desktop
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server serve --port 8000
//
//	# Development mode (colored logs, debug level, no boot animation)
//	LOG_DEV=true BOOT_SKIP=true ./server serve
//
//	# Replay a recorded session
//	./server replay testdata/drag.yaml
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
