package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/storelens/storelens/pkg/backend"
)

const defaultChartHeight = "360px"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartRenderer turns panel series into server-rendered ECharts markup. The
// snippets are embedded in panel payloads and in the dashboard page.
type ChartRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// ChartRendererOption customizes renderer behavior.
type ChartRendererOption func(*ChartRenderer)

// WithChartCache injects a render cache.
func WithChartCache(cache RenderCache) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the theme (defaults to Westeros).
func WithChartTheme(theme string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) ChartRendererOption {
	return func(r *ChartRenderer) {
		r.assetsHost = host
	}
}

// NewChartRenderer builds a renderer with the shared cache.
func NewChartRenderer(options ...ChartRendererOption) *ChartRenderer {
	r := &ChartRenderer{
		cache: sharedChartCache,
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// TrendLine renders a single smoothed line series over date buckets.
func (r *ChartRenderer) TrendLine(title string, labels []string, values []float64) (string, error) {
	return r.render(fmt.Sprintf("line:%s:%s", title, seriesHash(labels, values)), func() (string, error) {
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalOptions(title)...)
		line.SetXAxis(labels)
		data := make([]opts.LineData, len(values))
		for i, v := range values {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(title, data)
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	})
}

// StatusPie renders the order-status breakdown as a pie.
func (r *ChartRenderer) StatusPie(title string, statuses []backend.StatusCount) (string, error) {
	return r.render(fmt.Sprintf("pie:%s:%s", title, seriesHash(statuses)), func() (string, error) {
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalOptions(title)...)
		data := make([]opts.PieData, len(statuses))
		for i, s := range statuses {
			data[i] = opts.PieData{Name: s.Status, Value: s.Count}
		}
		pie.AddSeries(title, data)
		return renderChart(pie)
	})
}

// FunnelBar renders the conversion funnel counts as a bar chart.
func (r *ChartRenderer) FunnelBar(title string, funnel backend.FunnelMetrics) (string, error) {
	return r.render(fmt.Sprintf("bar:%s:%s", title, seriesHash(funnel)), func() (string, error) {
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalOptions(title)...)
		bar.SetXAxis([]string{"Customers", "Customers with Orders", "Orders"})
		bar.AddSeries(title, []opts.BarData{
			{Value: funnel.TotalCustomers},
			{Value: funnel.CustomersWithOrders},
			{Value: funnel.TotalOrders},
		})
		return renderChart(bar)
	})
}

func (r *ChartRenderer) render(key string, renderFn func() (string, error)) (string, error) {
	if r.cache != nil {
		return r.cache.GetOrRender(key, renderFn)
	}
	return renderFn()
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *ChartRenderer) globalOptions(title string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}
