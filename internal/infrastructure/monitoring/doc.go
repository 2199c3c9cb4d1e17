/*
Package monitoring provides Prometheus metrics for the panel engine.

# Overview

This package collects HTTP request metrics via Gin middleware and
structural metrics fed by the panel coordinator: tab and pane counts,
split and drop totals, and session lifecycle counters. *Metrics
satisfies the coordinator's metrics sink directly.

# Features

- HTTP request metrics (latency, throughput, response size)
- Panel structure metrics (tabs, panes, splits by axis, drops by zone)
- Session lifecycle metrics (started, exited)
- WebSocket connection and message metrics
- Uptime

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Feed panel structure changes
	coordinator := panel.New(factory, panel.Options{
		Metrics: metrics,
	})

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
