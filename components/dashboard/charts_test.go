package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storelens/storelens/pkg/backend"
)

func TestTrendLineRendersMarkup(t *testing.T) {
	renderer := NewChartRenderer(WithChartCache(nil))
	html, err := renderer.TrendLine("Revenue Trends",
		[]string{"2024-01-01", "2024-01-02"}, []float64{120.5, 98})
	require.NoError(t, err)
	assert.Contains(t, html, "Revenue Trends")
	assert.Contains(t, html, "2024-01-01")
}

func TestStatusPieRendersEverySlice(t *testing.T) {
	renderer := NewChartRenderer(WithChartCache(nil))
	html, err := renderer.StatusPie("Order Status", []backend.StatusCount{
		{Status: "paid", Count: 40},
		{Status: "refunded", Count: 3},
	})
	require.NoError(t, err)
	assert.Contains(t, html, "paid")
	assert.Contains(t, html, "refunded")
}

func TestFunnelBarRendersStages(t *testing.T) {
	renderer := NewChartRenderer(WithChartCache(nil))
	html, err := renderer.FunnelBar("Conversion Funnel", backend.FunnelMetrics{
		TotalCustomers:      100,
		CustomersWithOrders: 60,
		TotalOrders:         150,
	})
	require.NoError(t, err)
	assert.Contains(t, html, "Customers with Orders")
}

func TestChartRendererUsesCache(t *testing.T) {
	cache := NewChartCache(0)
	renderer := NewChartRenderer(WithChartCache(cache))
	// TTL zero disables storage; the renderer must still produce output.
	html, err := renderer.TrendLine("AOV", []string{"2024-01-01"}, []float64{42})
	require.NoError(t, err)
	assert.NotEmpty(t, html)
}
