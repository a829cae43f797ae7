// Package server wires configuration, logging, metrics, tracing, the
// persona store client and the session manager into one HTTP server.
//
// Middleware order: recovery, tracing, request logging, metrics, CORS,
// rate limiting. Responses are gzip compressed except WebSocket upgrades.
//
// Usage:
//
//	srv, err := server.NewServer(config.LoadOrDefault())
//	go srv.Run()
//	...
//	srv.Shutdown(ctx)
package server
