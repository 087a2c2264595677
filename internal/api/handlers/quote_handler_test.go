package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Bukassi600104/ultraclean/backend/internal/api/handlers"
	"github.com/Bukassi600104/ultraclean/backend/internal/infrastructure/observability"
)

func TestQuoteHandler_CalculateQuote(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantCode    int
		wantPrice   string
		wantStatus  string
		wantDisplay string
	}{
		{
			name:        "fixed price",
			body:        `{"category":"residential","size_bracket":"3 BR","bathroom_count":"2","frequency":"Weekly","add_ons":["oven"]}`,
			wantCode:    http.StatusOK,
			wantPrice:   `281`,
			wantStatus:  "fixed",
			wantDisplay: "$281",
		},
		{
			name:        "custom quote",
			body:        `{"category":"commercial","size_bracket":"5,000+ sq ft"}`,
			wantCode:    http.StatusOK,
			wantPrice:   `"custom"`,
			wantStatus:  "custom",
			wantDisplay: "Custom quote",
		},
		{
			name:        "incomplete selection",
			body:        `{"category":"residential"}`,
			wantCode:    http.StatusOK,
			wantPrice:   `null`,
			wantStatus:  "indeterminate",
			wantDisplay: "",
		},
	}

	handler := handlers.NewQuoteHandler(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/quotes", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.CalculateQuote(w, req)

			require.Equal(t, tt.wantCode, w.Code)
			var response map[string]json.RawMessage
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.JSONEq(t, tt.wantPrice, string(response["price"]))
			assert.JSONEq(t, `"`+tt.wantStatus+`"`, string(response["status"]))
			assert.JSONEq(t, `"`+tt.wantDisplay+`"`, string(response["display"]))
		})
	}
}

func TestQuoteHandler_CalculateQuote_BadPayload(t *testing.T) {
	handler := handlers.NewQuoteHandler(nil)
	req := httptest.NewRequest("POST", "/api/quotes", strings.NewReader(`{"category":`))
	w := httptest.NewRecorder()

	handler.CalculateQuote(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuoteHandler_GetOptions(t *testing.T) {
	handler := handlers.NewQuoteHandler(nil)
	req := httptest.NewRequest("GET", "/api/quotes/options", nil)
	w := httptest.NewRecorder()

	handler.GetOptions(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"residential"`)
	assert.Contains(t, w.Body.String(), `"clinic-medical"`)
}

func TestQuoteHandler_CalculateQuote_BoundedCategoryLabel(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	metrics, err := observability.InitMetrics()
	require.NoError(t, err)
	handler := handlers.NewQuoteHandler(metrics)

	post := func(body string) {
		w := httptest.NewRecorder()
		handler.CalculateQuote(w, httptest.NewRequest("POST", "/api/quotes", strings.NewReader(body)))
		require.Equal(t, http.StatusOK, w.Code)
	}
	for i := 0; i < 50; i++ {
		post(fmt.Sprintf(`{"category":"junk-%d","size_bracket":"2 BR"}`, i))
	}
	post(`{"category":"residential","size_bracket":"2 BR"}`)

	var collected metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &collected))

	counts := map[string]int64{}
	for _, scope := range collected.ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name != "quote.outcome.count" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				category, _ := dp.Attributes.Value("quote.category")
				counts[category.AsString()] += dp.Value
			}
		}
	}

	assert.Equal(t, map[string]int64{"unknown": 50, "residential": 1}, counts)
}
