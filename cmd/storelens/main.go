package main

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"go.uber.org/zap"
	"golang.org/x/term"

	dashboard "github.com/storelens/storelens/components/dashboard"
	"github.com/storelens/storelens/components/dashboard/gorouter"
	"github.com/storelens/storelens/components/dashboard/httpapi"
	"github.com/storelens/storelens/pkg/backend"
	"github.com/storelens/storelens/pkg/session"
)

type cli struct {
	Config  string `type:"path" help:"Path to the YAML config file."`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	Serve    serveCmd    `cmd:"" help:"Run the dashboard server."`
	Login    loginCmd    `cmd:"" help:"Authenticate against the analytics backend and store the session."`
	Register registerCmd `cmd:"" help:"Connect a new store and create its tenant."`
	Logout   logoutCmd   `cmd:"" help:"Discard the stored session."`
	Sync     syncCmd     `cmd:"" help:"Trigger a backend data re-pull."`
	Whoami   whoamiCmd   `cmd:"" help:"Show the tenant behind the stored session."`
	Scaffold scaffoldCmd `cmd:"" help:"Add a panel definition to a manifest file."`
}

// appContext carries the shared collaborators every subcommand needs.
type appContext struct {
	config Config
	logger *zap.Logger
	store  session.Store
	client *backend.HTTPClient
	guard  *session.Guard
}

func main() {
	root := &cli{}
	ctx := kong.Parse(root,
		kong.Description("StoreLens commerce analytics dashboard."),
		kong.UsageOnError(),
	)

	app, err := buildAppContext(root)
	ctx.FatalIfErrorf(err)
	defer func() { _ = app.logger.Sync() }()

	err = ctx.Run(app)
	ctx.FatalIfErrorf(err)
}

func buildAppContext(root *cli) (*appContext, error) {
	cfg, err := LoadConfig(root.Config)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(root.Verbose)
	if err != nil {
		return nil, err
	}
	store := session.NewFileStore(cfg.CredentialFile)
	client, err := backend.NewHTTPClient(backend.Config{
		BaseURL: cfg.BackendURL,
		Tokens:  store,
	})
	if err != nil {
		return nil, err
	}
	return &appContext{
		config: cfg,
		logger: logger,
		store:  store,
		client: client,
		guard:  session.NewGuard(store, client, logger),
	}, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

type serveCmd struct {
	Listen string `help:"Listen address override."`
	Mock   bool   `help:"Serve canned fixture data instead of calling the backend."`
}

func (cmd *serveCmd) Run(app *appContext) error {
	registry := dashboard.NewRegistry()
	if app.config.ManifestFile != "" {
		if _, err := registry.LoadManifestFile(app.config.ManifestFile); err != nil {
			return err
		}
	}

	client := backend.Client(app.client)
	guard := app.guard
	if cmd.Mock {
		mock := backend.NewMockClient(mockFixtures())
		store := session.NewMemoryStore()
		_ = store.Save("mock-token")
		client = mock
		guard = session.NewGuard(store, mock, app.logger)
	}

	hook := dashboard.NewBroadcastHook()
	charts := dashboard.NewChartRenderer(
		dashboard.WithChartAssetsHost(app.config.ChartAssetsHost),
	)
	shell, err := dashboard.NewShell(dashboard.Options{
		Guard:    guard,
		Client:   client,
		Registry: registry,
		Charts:   charts,
		Hook:     hook,
		Logger:   app.logger,
	})
	if err != nil {
		return err
	}

	renderer, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return err
	}

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:    server.Router(),
		Shell:     shell,
		API:       httpapi.New(shell, guard, nil),
		Renderer:  renderer,
		Broadcast: hook,
	}); err != nil {
		return err
	}

	listen := cmd.Listen
	if listen == "" {
		listen = app.config.Listen
	}
	app.logger.Info("dashboard listening", zap.String("addr", listen))
	return server.Serve(listen)
}

type loginCmd struct {
	Email string `required:"" help:"Account email."`
}

func (cmd *loginCmd) Run(app *appContext) error {
	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	sess, err := app.guard.Login(context.Background(), backend.Credentials{
		Email:    cmd.Email,
		Password: password,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Signed in as %s (%s)\n", sess.Tenant.Name, sess.Tenant.ShopDomain)
	return nil
}

type registerCmd struct {
	ShopDomain  string `required:"" help:"myshopify.com domain of the store."`
	AccessToken string `required:"" help:"Admin API access token for the store."`
	Name        string `required:"" help:"Display name for the tenant."`
	Email       string `required:"" help:"Account email."`
}

func (cmd *registerCmd) Run(app *appContext) error {
	password, err := promptPassword("Choose a password: ")
	if err != nil {
		return err
	}
	sess, err := app.guard.Register(context.Background(), backend.Registration{
		ShopDomain:  cmd.ShopDomain,
		AccessToken: cmd.AccessToken,
		Name:        cmd.Name,
		Email:       cmd.Email,
		Password:    password,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Store %s connected as tenant %s\n", cmd.ShopDomain, sess.Tenant.ID)
	return nil
}

type logoutCmd struct{}

func (cmd *logoutCmd) Run(app *appContext) error {
	if err := app.guard.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Session cleared.")
	return nil
}

type syncCmd struct {
	Scope string `arg:"" optional:"" enum:",all,customers,products,orders" help:"Scope to refresh (default: all)."`
}

func (cmd *syncCmd) Run(app *appContext) error {
	controller := dashboard.NewResyncController(app.client, app.logger, nil)
	scope := backend.SyncScope(cmd.Scope)
	job, err := controller.Trigger(context.Background(), scope)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Resync %s accepted (job %s)\n", job.Scope, job.ID)
	return nil
}

type whoamiCmd struct{}

func (cmd *whoamiCmd) Run(app *appContext) error {
	identity, err := app.guard.Resolve(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s <%s>\n%s\n", identity.Name, identity.Email, identity.ShopDomain)
	return nil
}

// mockFixtures backs `serve --mock` with enough data for every panel to
// reach the ready phase.
func mockFixtures() backend.MockData {
	return backend.MockData{
		Identity: backend.Identity{
			ID:         "mock-tenant",
			Name:       "Mock Store",
			ShopDomain: "mock-store.myshopify.com",
			Email:      "owner@mock-store.test",
		},
		Overview: backend.OverviewMetrics{
			TotalCustomers: 24,
			TotalOrders:    96,
			TotalRevenue:   4812.50,
			TotalProducts:  12,
		},
		Orders: []backend.Order{
			{ID: "m1", OrderNumber: "#2001", Email: "pat@example.com", FinancialStatus: "paid", TotalPrice: 42.00, Currency: "USD", CreatedAt: "2024-05-01"},
			{ID: "m2", OrderNumber: "#2002", Email: "kim@example.com", FinancialStatus: "pending", TotalPrice: 18.75, Currency: "USD", CreatedAt: "2024-05-02"},
		},
		TopCustomers: []backend.TopCustomer{
			{ID: "mc1", Email: "pat@example.com", FirstName: "Pat", LastName: "Ng", TotalSpent: 412.00, OrdersCount: 9},
		},
		TopProducts: []backend.TopProduct{
			{Product: backend.ProductRef{ID: "mp1", Title: "Sample Mug"}, TotalQuantity: 40, OrderCount: 38, TotalRevenue: 598.00},
		},
		RevenueTrends:  []backend.RevenuePoint{{Date: "2024-05-01", Revenue: 210.00}, {Date: "2024-05-02", Revenue: 184.25}},
		CustomerTrends: []backend.CustomerPoint{{Date: "2024-05-01", Count: 3}, {Date: "2024-05-02", Count: 2}},
		AOVTrends:      []backend.AOVPoint{{Date: "2024-05-01", AOV: 50.12}, {Date: "2024-05-02", AOV: 46.80}},
		OrderStatus:    []backend.StatusCount{{Status: "paid", Count: 81}, {Status: "pending", Count: 15}},
		Funnel: backend.FunnelMetrics{
			TotalCustomers:      24,
			CustomersWithOrders: 17,
			TotalOrders:         96,
			TotalRevenue:        4812.50,
			ConversionRate:      70.8,
			RepeatPurchaseRate:  37.5,
		},
		Token: "mock-token",
	}
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("storelens: read password: %w", err)
	}
	return string(raw), nil
}
