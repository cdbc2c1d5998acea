package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"sitemap-manager/core/reconcile"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New()

	m.Observe(reconcile.OpAdd, "sitemap.xml", 10*time.Millisecond, nil)
	m.Observe(reconcile.OpAdd, "sitemap.xml", 5*time.Millisecond, nil)
	m.Observe(reconcile.OpRemove, "sitemap.xml", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.operations.WithLabelValues("add", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues("remove", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestCounters(t *testing.T) {
	m := New()

	m.FileEvent("watch", reconcile.EventCreated)
	m.Dropped()
	m.Published(nil)
	m.Published(errors.New("offline"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues("watch", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dropped))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.publishes.WithLabelValues("error")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.Observe(reconcile.OpRegenerate, "sitemap.xml", time.Millisecond, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `sitemap_operations_total{operation="regenerate",result="ok"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
