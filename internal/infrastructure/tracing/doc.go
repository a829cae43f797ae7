/*
Package tracing provides lightweight request tracing for the desktop service.

# Overview

Each HTTP request gets a span. The trace id arrives in X-Trace-ID or is
generated, is echoed on the response, and travels in the request context so
outbound calls to the persona store carry it too. Finished spans are logged
by a buffered background collector.

# Usage

	tracer := tracing.New("desktop", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	// outbound
	tracing.Inject(ctx, req.Header)

# Trace Format

  - X-Trace-ID: Unique identifier for entire request flow
  - X-Span-ID: Identifier for current operation
*/
package tracing
