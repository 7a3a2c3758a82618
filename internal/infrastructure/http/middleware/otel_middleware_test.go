package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mrops-br/products-cassandra-api/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestHTTPRouteContext_UsesRoutePattern(t *testing.T) {
	var got string
	capture := func(w http.ResponseWriter, r *http.Request) {
		got = telemetry.HTTPRouteFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}

	router := chi.NewRouter()
	router.Route("/products", func(r chi.Router) {
		routed := r.With(HTTPRouteContext())
		routed.Get("/", capture)
		routed.Get("/{id}", capture)
	})

	tests := []struct {
		path string
		want string
	}{
		{"/products/54a0e998-5b7e-4b8e-9d46-2f1c3f0e7a11", "/products/{id}"},
		{"/products/", "/products"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got = ""
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDurationMillisecondsMiddleware_KeepsSubMillisecondPrecision(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	router := chi.NewRouter()
	router.Use(DurationMillisecondsMiddleware(provider.Meter("test")))
	router.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/abc", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var hist metricdata.Histogram[float64]
	found := false
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == "http.server.request.duration.ms" {
				hist, found = m.Data.(metricdata.Histogram[float64])
			}
		}
	}
	require.True(t, found)
	require.Len(t, hist.DataPoints, 1)

	dp := hist.DataPoints[0]
	assert.Equal(t, uint64(1), dp.Count)
	assert.Greater(t, dp.Sum, 0.0)

	route, ok := dp.Attributes.Value(attribute.Key("http.route"))
	require.True(t, ok)
	assert.Equal(t, "/products/{id}", route.AsString())
}
