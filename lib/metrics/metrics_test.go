package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestMetrics(t *testing.T) {
	t.Run(`lifecycle counters`, func(t *testing.T) {
		ApplicationResolved("declined")
		PositionCreated()
		ApplicationCreated()
		body := scrape(t)
		require.Contains(t, body, `collab_lifecycle_applications_resolved_total{status="declined"} 1`)
		require.Contains(t, body, `collab_lifecycle_positions_created_total 1`)
		require.Contains(t, body, `collab_lifecycle_applications_created_total 1`)
	})
	t.Run(`request counter`, func(t *testing.T) {
		ObserveRequest("GET", "/api/v1/position", 200, 10*time.Millisecond)
		body := scrape(t)
		require.Contains(t, body, `collab_http_requests_total{method="GET",route="/api/v1/position",status="200"} 1`)
	})
}
