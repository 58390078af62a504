package backend

// Credentials carries the email/password pair for login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration carries everything the backend needs to provision a tenant.
type Registration struct {
	ShopDomain  string `json:"shopDomain"`
	AccessToken string `json:"accessToken"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// Session is the payload returned by login/register.
type Session struct {
	Token  string   `json:"token"`
	Tenant Identity `json:"tenant"`
}

// Identity describes the authenticated tenant/store context.
type Identity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ShopDomain string `json:"shopDomain"`
	Email      string `json:"email"`
}

// OverviewMetrics is the range-independent dashboard summary.
type OverviewMetrics struct {
	TotalCustomers int     `json:"totalCustomers"`
	TotalOrders    int     `json:"totalOrders"`
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalProducts  int     `json:"totalProducts"`
	AvgOrderValue  float64 `json:"avgOrderValue,omitempty"`
	RevenueGrowth  float64 `json:"revenueGrowth,omitempty"`
}

// OrderCustomer is the customer summary embedded in an order row.
type OrderCustomer struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Order is a single row of the orders table.
type Order struct {
	ID                string         `json:"id"`
	OrderNumber       string         `json:"orderNumber"`
	Email             string         `json:"email"`
	FinancialStatus   string         `json:"financialStatus"`
	FulfillmentStatus string         `json:"fulfillmentStatus"`
	TotalPrice        float64        `json:"totalPrice"`
	Currency          string         `json:"currency"`
	CreatedAt         string         `json:"shopifyCreatedAt"`
	Customer          *OrderCustomer `json:"customer"`
}

// OrdersPage is one page of orders plus the server-reported total.
type OrdersPage struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

// OrdersQuery filters and pages the orders listing. Empty date bounds are
// omitted from the request entirely.
type OrdersQuery struct {
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

// TopCustomer is a single row of the top-customers ranking.
type TopCustomer struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	TotalSpent  float64 `json:"totalSpent"`
	OrdersCount int     `json:"ordersCount"`
}

// ProductRef identifies the product behind a top-products row.
type ProductRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TopProduct aggregates sales volume for one product.
type TopProduct struct {
	Product       ProductRef `json:"product"`
	TotalQuantity int        `json:"totalQuantity"`
	OrderCount    int        `json:"orderCount"`
	TotalRevenue  float64    `json:"totalRevenue"`
}

// TrendQuery filters a trend series. GroupBy is day, week, or month.
type TrendQuery struct {
	StartDate string
	EndDate   string
	GroupBy   string
}

// RevenuePoint is one bucket of the revenue trend series.
type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// CustomerPoint is one bucket of the new-customer trend series.
type CustomerPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// AOVPoint is one bucket of the average-order-value trend series.
type AOVPoint struct {
	Date string  `json:"date"`
	AOV  float64 `json:"aov"`
}

// StatusCount is one slice of the order-status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// FunnelMetrics carries conversion figures derived from customer/order counts.
type FunnelMetrics struct {
	TotalCustomers      int     `json:"totalCustomers"`
	CustomersWithOrders int     `json:"customersWithOrders"`
	TotalOrders         int     `json:"totalOrders"`
	TotalRevenue        float64 `json:"totalRevenue"`
	ConversionRate      float64 `json:"conversionRate"`
	RepeatPurchaseRate  float64 `json:"repeatPurchaseRate"`
}

// SyncScope selects which entity class a scoped resync refreshes.
type SyncScope string

// Resync scopes accepted by the ingestion service.
const (
	SyncCustomers SyncScope = "customers"
	SyncProducts  SyncScope = "products"
	SyncOrders    SyncScope = "orders"
)

// SyncAck acknowledges an accepted resync trigger.
type SyncAck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Event is an analytics event forwarded to the ingestion service.
type Event struct {
	EventType string         `json:"eventType"`
	Data      map[string]any `json:"data,omitempty"`
}
