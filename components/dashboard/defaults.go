package dashboard

var trendSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"group_by": map[string]any{"type": "string", "enum": []string{"day", "week", "month"}, "default": "day"},
	},
}

var rankingSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": 50, "default": 10},
	},
}

var defaultPanelDefinitions = []PanelDefinition{
	{
		Code:        PanelOverview,
		Name:        "Store Overview",
		Description: "Lifetime customer, order, revenue, and product totals",
		Category:    "stats",
		Schema:      map[string]any{"type": "object", "properties": map[string]any{}},
	},
	{
		Code:        PanelRevenueTrends,
		Name:        "Revenue Trends",
		Description: "Revenue per time bucket over the selected range",
		Category:    "charts",
		Schema:      trendSchema,
		Config:      map[string]any{"group_by": "day"},
	},
	{
		Code:        PanelOrderStatus,
		Name:        "Order Status",
		Description: "Order counts by financial status",
		Category:    "charts",
		Schema:      map[string]any{"type": "object", "properties": map[string]any{}},
	},
	{
		Code:        PanelCustomerTrends,
		Name:        "Customer Growth",
		Description: "New customers per time bucket over the selected range",
		Category:    "charts",
		Schema:      trendSchema,
		Config:      map[string]any{"group_by": "day"},
	},
	{
		Code:        PanelAOVTrends,
		Name:        "Average Order Value",
		Description: "Average order value per time bucket over the selected range",
		Category:    "charts",
		Schema:      trendSchema,
		Config:      map[string]any{"group_by": "day"},
	},
	{
		Code:        PanelTopCustomers,
		Name:        "Top Customers",
		Description: "Customers ranked by lifetime spend",
		Category:    "rankings",
		Schema:      rankingSchema,
		Config:      map[string]any{"limit": 10},
	},
	{
		Code:        PanelTopProducts,
		Name:        "Top Products",
		Description: "Products ranked by units sold",
		Category:    "rankings",
		Schema:      rankingSchema,
		Config:      map[string]any{"limit": 10},
	},
	{
		Code:        PanelFunnel,
		Name:        "Conversion Funnel",
		Description: "Customer to checkout conversion figures",
		Category:    "charts",
		Schema:      map[string]any{"type": "object", "properties": map[string]any{}},
	},
	{
		Code:        PanelOrdersTable,
		Name:        "Recent Orders",
		Description: "Paginated order listing for the selected range",
		Category:    "tables",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"page_size": map[string]any{"type": "integer", "minimum": 1, "maximum": 100, "default": 10},
			},
		},
		Config: map[string]any{"page_size": 10},
	},
}

// DefaultPanelDefinitions returns copies of the built-in panel set.
func DefaultPanelDefinitions() []PanelDefinition {
	defs := make([]PanelDefinition, len(defaultPanelDefinitions))
	copy(defs, defaultPanelDefinitions)
	return defs
}
