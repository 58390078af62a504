package backend

import (
	"context"
	"sync"
)

// MockData seeds deterministic backend responses for tests or local demos.
type MockData struct {
	Identity       Identity
	Overview       OverviewMetrics
	Orders         []Order
	TopCustomers   []TopCustomer
	TopProducts    []TopProduct
	RevenueTrends  []RevenuePoint
	CustomerTrends []CustomerPoint
	AOVTrends      []AOVPoint
	OrderStatus    []StatusCount
	Funnel         FunnelMetrics
	Token          string
}

// MockClient implements Client from in-memory fixtures. Orders honors the
// query's limit/offset so pagination behaves like the real service; every
// other operation ignores filters.
type MockClient struct {
	mu   sync.RWMutex
	data MockData
}

var _ Client = (*MockClient)(nil)

// NewMockClient builds a mock backend from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	if data.Token == "" {
		data.Token = "mock-token"
	}
	return &MockClient{data: data}
}

// Login returns a session for the fixture identity regardless of credentials.
func (c *MockClient) Login(context.Context, Credentials) (Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Session{Token: c.data.Token, Tenant: c.data.Identity}, nil
}

// Register behaves like Login for the fixture identity.
func (c *MockClient) Register(context.Context, Registration) (Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Session{Token: c.data.Token, Tenant: c.data.Identity}, nil
}

// Me returns the fixture identity.
func (c *MockClient) Me(context.Context) (Identity, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Identity, nil
}

// Overview returns the fixture summary metrics.
func (c *MockClient) Overview(context.Context) (OverviewMetrics, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Overview, nil
}

// Orders slices the fixture orders by limit/offset and reports the full total.
func (c *MockClient) Orders(_ context.Context, query OrdersQuery) (OrdersPage, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := len(c.data.Orders)
	start := query.Offset
	if start > total {
		start = total
	}
	end := total
	if query.Limit > 0 && start+query.Limit < total {
		end = start + query.Limit
	}
	page := make([]Order, end-start)
	copy(page, c.data.Orders[start:end])
	return OrdersPage{Orders: page, Total: total}, nil
}

// TopCustomers returns up to limit fixture customers.
func (c *MockClient) TopCustomers(_ context.Context, limit int) ([]TopCustomer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clipped(c.data.TopCustomers, limit), nil
}

// TopProducts returns up to limit fixture products.
func (c *MockClient) TopProducts(_ context.Context, limit int) ([]TopProduct, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clipped(c.data.TopProducts, limit), nil
}

// RevenueTrends returns the fixture revenue series.
func (c *MockClient) RevenueTrends(context.Context, TrendQuery) ([]RevenuePoint, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clipped(c.data.RevenueTrends, 0), nil
}

// CustomerTrends returns the fixture customer series.
func (c *MockClient) CustomerTrends(context.Context, TrendQuery) ([]CustomerPoint, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clipped(c.data.CustomerTrends, 0), nil
}

// AOVTrends returns the fixture AOV series.
func (c *MockClient) AOVTrends(context.Context, TrendQuery) ([]AOVPoint, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clipped(c.data.AOVTrends, 0), nil
}

// OrderStatus returns the fixture status breakdown.
func (c *MockClient) OrderStatus(context.Context) ([]StatusCount, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clipped(c.data.OrderStatus, 0), nil
}

// Funnel returns the fixture funnel snapshot.
func (c *MockClient) Funnel(context.Context) (FunnelMetrics, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Funnel, nil
}

// SyncAll acknowledges immediately.
func (c *MockClient) SyncAll(context.Context) (SyncAck, error) {
	return SyncAck{Status: "queued"}, nil
}

// Sync acknowledges immediately for any known scope.
func (c *MockClient) Sync(_ context.Context, scope SyncScope) (SyncAck, error) {
	return SyncAck{Status: "queued", Message: string(scope)}, nil
}

// RecordEvent discards the event.
func (c *MockClient) RecordEvent(context.Context, Event) error {
	return nil
}

func clipped[T any](items []T, limit int) []T {
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
