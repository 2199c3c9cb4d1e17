package tracing

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestStartSpanMintsAndInheritsTrace(t *testing.T) {
	tracer := New(zap.NewNop())

	root, ctx := tracer.StartSpan(context.Background(), "root")
	if root.TraceID == "" || root.SpanID == "" {
		t.Fatal("root span missing ids")
	}
	if root.ParentID != "" {
		t.Fatalf("root span has parent %q", root.ParentID)
	}

	child, _ := tracer.StartSpan(ctx, "child")
	if child.TraceID != root.TraceID {
		t.Fatalf("child trace %q, want %q", child.TraceID, root.TraceID)
	}
	if child.ParentID != root.SpanID {
		t.Fatalf("child parent %q, want %q", child.ParentID, root.SpanID)
	}
}

func TestHTTPMiddlewareReflectsTraceHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer := New(zap.NewNop())

	var seen TraceID
	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/layout", func(c *gin.Context) {
		seen = GetTraceID(c.Request.Context())
		c.Status(200)
	})

	// Without inbound headers the engine mints a trace id.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/layout", nil))
	if w.Header().Get("X-Trace-ID") == "" {
		t.Fatal("response missing X-Trace-ID")
	}
	if string(seen) != w.Header().Get("X-Trace-ID") {
		t.Fatalf("handler saw trace %q, response carries %q", seen, w.Header().Get("X-Trace-ID"))
	}

	// An inbound trace id is kept.
	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/layout", nil)
	req.Header.Set("X-Trace-ID", "req_editor_trace")
	router.ServeHTTP(w, req)
	if got := w.Header().Get("X-Trace-ID"); got != "req_editor_trace" {
		t.Fatalf("trace id = %q, want inbound one", got)
	}
}
