/*
Package tracing provides request tracing for debugging panel operations.

# Overview

This package implements lightweight request tracing between the editor
frontend and the panel engine. A drop that lands wrong is much easier
to chase when the frontend's log line and the engine's log line share a
trace id.

# Features

- Trace context propagation via HTTP headers
- Span creation with parent-child relationships
- Automatic trace ID generation (ULID-based request ids)
- Gin middleware for automatic instrumentation
- Structured logging integration
- Buffered span collection

# Usage

	// Create tracer
	tracer := tracing.New(logger)

	// HTTP middleware
	router.Use(tracing.HTTPMiddleware(tracer))

	// Manual span creation
	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

	span.SetTag("key", "value")

# Trace Format

Traces use standard HTTP headers for propagation:
- X-Trace-ID: Unique identifier for the entire request flow
- X-Span-ID: Identifier for the current operation

Both are reflected back on responses, so a frontend that sends neither
still gets ids to log.
*/
package tracing
