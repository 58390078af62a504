package backend

import "context"

// TokenSource exposes the current bearer credential; an empty string means no
// authorization header is attached.
type TokenSource interface {
	Token() string
}

// AuthClient covers tenant authentication and identity lookup.
type AuthClient interface {
	Login(ctx context.Context, creds Credentials) (Session, error)
	Register(ctx context.Context, reg Registration) (Session, error)
	Me(ctx context.Context) (Identity, error)
}

// AnalyticsClient covers every dashboard read operation.
type AnalyticsClient interface {
	Overview(ctx context.Context) (OverviewMetrics, error)
	Orders(ctx context.Context, query OrdersQuery) (OrdersPage, error)
	TopCustomers(ctx context.Context, limit int) ([]TopCustomer, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
	RevenueTrends(ctx context.Context, query TrendQuery) ([]RevenuePoint, error)
	CustomerTrends(ctx context.Context, query TrendQuery) ([]CustomerPoint, error)
	AOVTrends(ctx context.Context, query TrendQuery) ([]AOVPoint, error)
	OrderStatus(ctx context.Context) ([]StatusCount, error)
	Funnel(ctx context.Context) (FunnelMetrics, error)
}

// IngestionClient covers resync triggers and event forwarding.
type IngestionClient interface {
	SyncAll(ctx context.Context) (SyncAck, error)
	Sync(ctx context.Context, scope SyncScope) (SyncAck, error)
	RecordEvent(ctx context.Context, event Event) error
}

// Client is the full facade consumed by the dashboard shell.
type Client interface {
	AuthClient
	AnalyticsClient
	IngestionClient
}
