package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Contadores(t *testing.T) {
	r := NewRecorder()
	r.Onboarding("approved")
	r.Onboarding("approved")
	r.Onboarding("conflict")
	r.StatusTransition("PENDING", "APPROVED")
	r.Notification("skipped")
	r.HTTPRequest("POST", "/api/auth/register", 201, 0.02)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.onboarding.WithLabelValues("approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.onboarding.WithLabelValues("conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.transitions.WithLabelValues("PENDING", "APPROVED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("POST", "/api/auth/register", "201")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.Notification("delivered")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `pastro_notifications_total{result="delivered"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
