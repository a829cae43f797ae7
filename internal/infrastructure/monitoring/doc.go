/*
Package monitoring provides Prometheus metrics for the desktop shell service.

# Overview

Each Metrics value owns a private registry, so several servers (or tests)
can run in one process without duplicate registration panics.

# Features

- HTTP request metrics labeled by route template
- Session, window, overlay and drag counters fed by the shell
- Persona store lookup outcomes
- WebSocket connection and message metrics
- JSON snapshot for the stats endpoint

# Usage

	metrics := monitoring.NewMetrics()

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	metrics.RecordWindowOp("open", 1)
	metrics.RecordOverlayOpen("spotlight")
*/
package monitoring
