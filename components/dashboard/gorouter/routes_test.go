package gorouter

import "testing"

func TestRegisterValidatesConfig(t *testing.T) {
	if err := Register(Config[struct{}]{}); err == nil {
		t.Fatalf("expected error when router/shell missing")
	}
}

func TestRouteDefaults(t *testing.T) {
	routes := Config[struct{}]{}.routes()
	if routes.Dashboard != "/dashboard" {
		t.Fatalf("unexpected dashboard route %q", routes.Dashboard)
	}
	if routes.Login != "/auth/login" {
		t.Fatalf("unexpected login route %q", routes.Login)
	}
	if routes.Resync != "/dashboard/resync" {
		t.Fatalf("unexpected resync route %q", routes.Resync)
	}
	if routes.WebSocket != "/dashboard/ws" {
		t.Fatalf("unexpected websocket route %q", routes.WebSocket)
	}
	if routes.Assets != "/assets" {
		t.Fatalf("unexpected assets route %q", routes.Assets)
	}
}

func TestRouteOverridesWin(t *testing.T) {
	cfg := Config[struct{}]{Routes: RouteConfig{Dashboard: "/home", Range: "/filters/range"}}
	routes := cfg.routes()
	if routes.Dashboard != "/home" {
		t.Fatalf("override lost: %q", routes.Dashboard)
	}
	if routes.Range != "/filters/range" {
		t.Fatalf("override lost: %q", routes.Range)
	}
	if routes.State != "/dashboard/state" {
		t.Fatalf("default lost: %q", routes.State)
	}
}
