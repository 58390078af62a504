package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Config configures the HTTP backend client.
type Config struct {
	BaseURL    string
	Tokens     TokenSource
	HTTPClient *http.Client
}

// HTTPClient talks to the analytics/ingestion/auth service over REST. It
// performs no caching and no deduplication: concurrent identical calls are
// each sent independently, which is acceptable for a small, human-triggered
// panel set.
type HTTPClient struct {
	baseURL string
	tokens  TokenSource
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the given backend base URL.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		tokens:  cfg.Tokens,
		client:  httpClient,
	}, nil
}

// Login authenticates a tenant and returns the session payload.
func (c *HTTPClient) Login(ctx context.Context, creds Credentials) (Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodPost, "/tenant/login", nil, creds, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Register provisions a tenant and returns the session payload.
func (c *HTTPClient) Register(ctx context.Context, reg Registration) (Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodPost, "/tenant/register", nil, reg, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Me resolves the identity behind the current credential.
func (c *HTTPClient) Me(ctx context.Context) (Identity, error) {
	var identity Identity
	if err := c.do(ctx, http.MethodGet, "/tenant/me", nil, nil, &identity); err != nil {
		return Identity{}, err
	}
	return identity, nil
}

// Overview fetches the range-independent summary metrics.
func (c *HTTPClient) Overview(ctx context.Context) (OverviewMetrics, error) {
	var overview OverviewMetrics
	if err := c.do(ctx, http.MethodGet, "/analytics/overview", nil, nil, &overview); err != nil {
		return OverviewMetrics{}, err
	}
	return overview, nil
}

// Orders fetches one page of orders filtered by the query's date bounds.
func (c *HTTPClient) Orders(ctx context.Context, query OrdersQuery) (OrdersPage, error) {
	params := dateParams(query.StartDate, query.EndDate)
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		params.Set("offset", strconv.Itoa(query.Offset))
	}
	var page OrdersPage
	if err := c.do(ctx, http.MethodGet, "/analytics/orders", params, nil, &page); err != nil {
		return OrdersPage{}, err
	}
	return page, nil
}

// TopCustomers fetches the top-N customers by spend.
func (c *HTTPClient) TopCustomers(ctx context.Context, limit int) ([]TopCustomer, error) {
	var customers []TopCustomer
	if err := c.do(ctx, http.MethodGet, "/analytics/customers/top", limitParams(limit), nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// TopProducts fetches the top-N products by revenue.
func (c *HTTPClient) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	var products []TopProduct
	if err := c.do(ctx, http.MethodGet, "/analytics/products/top", limitParams(limit), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// RevenueTrends fetches the revenue series grouped by the query granularity.
func (c *HTTPClient) RevenueTrends(ctx context.Context, query TrendQuery) ([]RevenuePoint, error) {
	var points []RevenuePoint
	if err := c.do(ctx, http.MethodGet, "/analytics/revenue/trends", trendParams(query), nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// CustomerTrends fetches the new-customer series.
func (c *HTTPClient) CustomerTrends(ctx context.Context, query TrendQuery) ([]CustomerPoint, error) {
	var points []CustomerPoint
	if err := c.do(ctx, http.MethodGet, "/analytics/customers/trends", trendParams(query), nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// AOVTrends fetches the average-order-value series.
func (c *HTTPClient) AOVTrends(ctx context.Context, query TrendQuery) ([]AOVPoint, error) {
	var points []AOVPoint
	if err := c.do(ctx, http.MethodGet, "/analytics/aov/trends", trendParams(query), nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// OrderStatus fetches the order count per financial status.
func (c *HTTPClient) OrderStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	if err := c.do(ctx, http.MethodGet, "/analytics/orders/status", nil, nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// Funnel fetches the conversion funnel snapshot.
func (c *HTTPClient) Funnel(ctx context.Context) (FunnelMetrics, error) {
	var metrics FunnelMetrics
	if err := c.do(ctx, http.MethodGet, "/analytics/funnel", nil, nil, &metrics); err != nil {
		return FunnelMetrics{}, err
	}
	return metrics, nil
}

// SyncAll triggers a full backend resynchronization.
func (c *HTTPClient) SyncAll(ctx context.Context) (SyncAck, error) {
	var ack SyncAck
	if err := c.do(ctx, http.MethodPost, "/ingestion/sync/all", nil, nil, &ack); err != nil {
		return SyncAck{}, err
	}
	return ack, nil
}

// Sync triggers a category-scoped resynchronization.
func (c *HTTPClient) Sync(ctx context.Context, scope SyncScope) (SyncAck, error) {
	switch scope {
	case SyncCustomers, SyncProducts, SyncOrders:
	default:
		return SyncAck{}, fmt.Errorf("backend: unknown sync scope %q", scope)
	}
	var ack SyncAck
	if err := c.do(ctx, http.MethodPost, "/ingestion/sync/"+string(scope), nil, nil, &ack); err != nil {
		return SyncAck{}, err
	}
	return ack, nil
}

// RecordEvent forwards an analytics event to the ingestion service.
func (c *HTTPClient) RecordEvent(ctx context.Context, event Event) error {
	payload := map[string]any{"eventType": event.EventType}
	for k, v := range event.Data {
		payload[k] = v
	}
	return c.do(ctx, http.MethodPost, "/ingestion/events", nil, payload, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params url.Values, payload, target any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("backend: encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp.StatusCode, resp.Body)
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("backend: decode response: %w", err)
	}
	return nil
}

// dateParams maps range bounds into query parameters, omitting unset bounds so
// the backend receives no filter instead of empty strings.
func dateParams(start, end string) url.Values {
	params := url.Values{}
	if start != "" {
		params.Set("startDate", start)
	}
	if end != "" {
		params.Set("endDate", end)
	}
	return params
}

func trendParams(query TrendQuery) url.Values {
	params := dateParams(query.StartDate, query.EndDate)
	if query.GroupBy != "" {
		params.Set("groupBy", query.GroupBy)
	}
	return params
}

func limitParams(limit int) url.Values {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return params
}
