package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/storelens/storelens/pkg/backend"
)

// Panel codes. These are the stable identifiers used by definitions, the
// manifest, transports, and the refresh hook.
const (
	PanelOverview       = "overview"
	PanelRevenueTrends  = "revenue_trends"
	PanelOrderStatus    = "order_status"
	PanelCustomerTrends = "customer_trends"
	PanelAOVTrends      = "aov_trends"
	PanelTopCustomers   = "top_customers"
	PanelTopProducts    = "top_products"
	PanelFunnel         = "funnel"
	PanelOrdersTable    = "orders_table"
)

const (
	defaultRankingLimit  = 10
	defaultOrdersPerPage = 10
	defaultTrendGroupBy  = "day"
)

// TrendData is the payload shape shared by the three trend panels. Chart
// carries a pre-rendered snippet when a chart renderer is wired.
type TrendData[P any] struct {
	Points []P    `json:"points"`
	Chart  string `json:"chart,omitempty"`
}

// StatusData is the order-status breakdown payload.
type StatusData struct {
	Statuses []backend.StatusCount `json:"statuses"`
	Chart    string                `json:"chart,omitempty"`
}

// FunnelData is the conversion funnel payload.
type FunnelData struct {
	Funnel backend.FunnelMetrics `json:"funnel"`
	Chart  string                `json:"chart,omitempty"`
}

// RankingData is the payload shape shared by the two top-N panels.
type RankingData[R any] struct {
	Rows []R `json:"rows"`
}

// OrdersTableData is one page of the orders table plus paging metadata.
type OrdersTableData struct {
	Orders []backend.Order `json:"orders"`
	Pager  Pager           `json:"pagination"`
}

func panelConfig(def PanelDefinition, deps BuilderDeps, rangeDep bool) PanelConfig {
	return PanelConfig{
		Code:           def.Code,
		Title:          def.Name,
		DependsOnRange: rangeDep,
		Hook:           deps.Hook,
		Telemetry:      deps.Telemetry,
		Logger:         deps.Logger,
	}
}

func configInt(cfg map[string]any, key string, fallback int) int {
	switch v := cfg[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func configString(cfg map[string]any, key, fallback string) string {
	if v, ok := cfg[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// NewOverviewPanel shows the range-independent store totals. It never reloads
// on range changes; only mount and resync refresh it.
func NewOverviewPanel(def PanelDefinition, deps BuilderDeps) (Panel, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("panel %s: analytics client is required", def.Code)
	}
	return NewPanelController(panelConfig(def, deps, false),
		func(ctx context.Context, _ PanelQuery) (backend.OverviewMetrics, error) {
			return deps.Client.Overview(ctx)
		}), nil
}

// NewRevenueTrendsPanel charts revenue per time bucket over the active range.
func NewRevenueTrendsPanel(def PanelDefinition, deps BuilderDeps) (Panel, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("panel %s: analytics client is required", def.Code)
	}
	groupBy := configString(def.Config, "group_by", defaultTrendGroupBy)
	return NewPanelController(panelConfig(def, deps, true),
		func(ctx context.Context, query PanelQuery) (TrendData[backend.RevenuePoint], error) {
			points, err := deps.Client.RevenueTrends(ctx, backend.TrendQuery{
				StartDate: query.Range.Start,
				EndDate:   query.Range.End,
				GroupBy:   groupBy,
			})
			if err != nil {
				return TrendData[backend.RevenuePoint]{}, err
			}
			data := TrendData[backend.RevenuePoint]{Points: points}
			if deps.Charts != nil {
				labels := make([]string, len(points))
				values := make([]float64, len(points))
				for i, p := range points {
					labels[i] = p.Date
					values[i] = p.Revenue
				}
				data.Chart, err = deps.Charts.TrendLine(def.Name, labels, values)
				if err != nil {
					return TrendData[backend.RevenuePoint]{}, err
				}
			}
			return data, nil
		}), nil
}

// NewCustomerTrendsPanel charts new customers per time bucket over the active
// range.
func NewCustomerTrendsPanel(def PanelDefinition, deps BuilderDeps) (Panel, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("panel %s: analytics client is required", def.Code)
	}
	groupBy := configString(def.Config, "group_by", defaultTrendGroupBy)
	return NewPanelController(panelConfig(def, deps, true),
		func(ctx context.Context, query PanelQuery) (TrendData[backend.CustomerPoint], error) {
			points, err := deps.Client.CustomerTrends(ctx, backend.TrendQuery{
				StartDate: query.Range.Start,
				EndDate:   query.Range.End,
				GroupBy:   groupBy,
			})
			if err != nil {
				return TrendData[backend.CustomerPoint]{}, err
			}
			data := TrendData[backend.CustomerPoint]{Points: points}
			if deps.Charts != nil {
				labels := make([]string, len(points))
				values := make([]float64, len(points))
				for i, p := range points {
					labels[i] = p.Date
					values[i] = float64(p.Count)
				}
				data.Chart, err = deps.Charts.TrendLine(def.Name, labels, values)
				if err != nil {
					return TrendData[backend.CustomerPoint]{}, err
				}
			}
			return data, nil
		}), nil
}

// NewAOVTrendsPanel charts average order value per time bucket over the
// active range.
func NewAOVTrendsPanel(def PanelDefinition, deps BuilderDeps) (Panel, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("panel %s: analytics client is required", def.Code)
	}
	groupBy := configString(def.Config, "group_by", defaultTrendGroupBy)
	return NewPanelController(panelConfig(def, deps, true),
		func(ctx context.Context, query PanelQuery) (TrendData[backend.AOVPoint], error) {
			points, err := deps.Client.AOVTrends(ctx, backend.TrendQuery{
				StartDate: query.Range.Start,
				EndDate:   query.Range.End,
				GroupBy:   groupBy,
			})
			if err != nil {
				return TrendData[backend.AOVPoint]{}, err
			}
			data := TrendData[backend.AOVPoint]{Points: points}
			if deps.Charts != nil {
				labels := make([]string, len(points))
				values := make([]float64, len(points))
				for i, p := range points {
					labels[i] = p.Date
					values[i] = p.AOV
				}
				data.Chart, err = deps.Charts.TrendLine(def.Name, labels, values)
				if err != nil {
					return TrendData[backend.AOVPoint]{}, err
				}
			}
			return data, nil
		}), nil
}

// NewOrderStatusPanel shows the all-time order status breakdown.
func NewOrderStatusPanel(def PanelDefinition, deps BuilderDeps) (Panel, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("panel %s: analytics client is required", def.Code)
	}
	return NewPanelController(panelConfig(def, deps, false),
		func(ctx context.Context, _ PanelQuery) (StatusData, error) {
			statuses, err := deps.Client.OrderStatus(ctx)
			if err != nil {
				return StatusData{}, err
			}
			data := StatusData{Statuses: statuses}
			if deps.Charts != nil {
				data.Chart, err = deps.Charts.StatusPie(def.Name, statuses)
				if err != nil {
					return StatusData{}, err
				}
			}
			return data, nil
		}), nil
}

// NewTopCustomersPanel ranks customers by lifetime spend.
func NewTopCustomersPanel(def PanelDefinition, deps BuilderDeps) (Panel, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("panel %s: analytics client is required", def.Code)
	}
	limit := configInt(def.Config, "limit", defaultRankingLimit)
	return NewPanelController(panelConfig(def, deps, false),
		func(ctx context.Context, _ PanelQuery) (RankingData[backend.TopCustomer], error) {
			rows, err := deps.Client.TopCustomers(ctx, limit)
			if err != nil {
				return RankingData[backend.TopCustomer]{}, err
			}
			return RankingData[backend.TopCustomer]{Rows: rows}, nil
		}), nil
}

// NewTopProductsPanel ranks products by units sold.
func NewTopProductsPanel(def PanelDefinition, deps BuilderDeps) (Panel, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("panel %s: analytics client is required", def.Code)
	}
	limit := configInt(def.Config, "limit", defaultRankingLimit)
	return NewPanelController(panelConfig(def, deps, false),
		func(ctx context.Context, _ PanelQuery) (RankingData[backend.TopProduct], error) {
			rows, err := deps.Client.TopProducts(ctx, limit)
			if err != nil {
				return RankingData[backend.TopProduct]{}, err
			}
			return RankingData[backend.TopProduct]{Rows: rows}, nil
		}), nil
}

// NewFunnelPanel shows the checkout conversion funnel.
func NewFunnelPanel(def PanelDefinition, deps BuilderDeps) (Panel, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("panel %s: analytics client is required", def.Code)
	}
	return NewPanelController(panelConfig(def, deps, false),
		func(ctx context.Context, _ PanelQuery) (FunnelData, error) {
			funnel, err := deps.Client.Funnel(ctx)
			if err != nil {
				return FunnelData{}, err
			}
			data := FunnelData{Funnel: funnel}
			if deps.Charts != nil {
				data.Chart, err = deps.Charts.FunnelBar(def.Name, funnel)
				if err != nil {
					return FunnelData{}, err
				}
			}
			return data, nil
		}), nil
}

// Pageable is implemented by panels that hold local page state on top of the
// shared dependencies. The shell drives paging through it.
type Pageable interface {
	Page() int
	SetPage(page int)
}

// OrdersPanel is the paginated orders table. Paging is a private dependency:
// changing it reloads only this panel, while a range change resets it to the
// first page before the shared reload runs.
type OrdersPanel struct {
	*PanelController[OrdersTableData]

	pageSize int

	mu    sync.Mutex
	page  int
	total int
}

// NewOrdersPanel builds the orders table panel.
func NewOrdersPanel(def PanelDefinition, deps BuilderDeps) (Panel, error) {
	if deps.Client == nil {
		return nil, fmt.Errorf("panel %s: analytics client is required", def.Code)
	}
	panel := &OrdersPanel{pageSize: configInt(def.Config, "page_size", defaultOrdersPerPage)}
	panel.PanelController = NewPanelController(panelConfig(def, deps, true),
		func(ctx context.Context, query PanelQuery) (OrdersTableData, error) {
			page := panel.Page()
			res, err := deps.Client.Orders(ctx, backend.OrdersQuery{
				StartDate: query.Range.Start,
				EndDate:   query.Range.End,
				Limit:     panel.pageSize,
				Offset:    page * panel.pageSize,
			})
			if err != nil {
				return OrdersTableData{}, err
			}
			pager := Pager{PageSize: panel.pageSize, Total: res.Total}
			pager.Page = pager.Clamp(page)
			panel.observe(pager)
			return OrdersTableData{Orders: res.Orders, Pager: pager}, nil
		})
	return panel, nil
}

// Reload resets paging to the first page when the shared range changes, then
// runs the regular reload.
func (p *OrdersPanel) Reload(ctx context.Context, query PanelQuery) {
	if query.Reason == ReasonRange {
		p.SetPage(0)
	}
	p.PanelController.Reload(ctx, query)
}

// Page returns the current zero-based page.
func (p *OrdersPanel) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// SetPage moves to the requested page, clamped to the last known result
// window. It does not reload; the shell issues the reload after the move.
func (p *OrdersPanel) SetPage(page int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pager := Pager{PageSize: p.pageSize, Total: p.total}
	p.page = pager.Clamp(page)
}

// observe records the server-reported total so later page moves clamp against
// fresh bounds.
func (p *OrdersPanel) observe(pager Pager) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = pager.Total
	p.page = pager.Page
}
