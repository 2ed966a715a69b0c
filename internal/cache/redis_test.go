package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"fiduciary-books/internal/core"
)

func TestKey(t *testing.T) {
	if got := Key(core.ViewBills, "2024|q=acme"); got != "view:bills:2024|q=acme" {
		t.Errorf("Key = %q", got)
	}
}

func TestDisabled_DegradesGracefully(t *testing.T) {
	ctx := context.Background()
	for name, c := range map[string]*Cache{
		"Disabled": Disabled(),
		"NoAddr":   New(ctx, Options{}, nil),
		"Nil":      nil,
	} {
		t.Run(name, func(t *testing.T) {
			if c.Enabled() {
				t.Fatal("expected disabled cache")
			}
			c.SetJSON(ctx, core.ViewDashboard, "2024", map[string]int{"a": 1})
			var dst map[string]int
			if c.GetJSON(ctx, core.ViewDashboard, "2024", &dst) {
				t.Error("disabled cache must always miss")
			}
			c.Refresh(ctx, core.ViewDashboard, core.ViewBills)
			if err := c.Close(); err != nil {
				t.Errorf("Close: %v", err)
			}
		})
	}
}

func TestUnreachable_Disables(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	// Port 1 is reserved and refuses connections.
	c := New(ctx, Options{Addr: "127.0.0.1:1", TTL: time.Minute}, nil)
	if c.Enabled() {
		t.Error("expected unreachable redis to disable the cache")
	}
}

// TestRedis_RoundTrip runs against a real server when TEST_REDIS_ADDR is set.
func TestRedis_RoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping redis integration test")
	}
	ctx := context.Background()
	c := New(ctx, Options{Addr: addr, TTL: time.Minute}, nil)
	defer c.Close()
	if !c.Enabled() {
		t.Fatal("expected redis to be reachable")
	}

	c.SetJSON(ctx, core.ViewDashboard, "2024", core.Totals{GrossCents: 100, Count: 1})
	c.SetJSON(ctx, core.ViewBills, "2024", core.Totals{GrossCents: 5})

	var got core.Totals
	if !c.GetJSON(ctx, core.ViewDashboard, "2024", &got) || got.GrossCents != 100 {
		t.Fatalf("expected cached totals, got %+v", got)
	}

	c.Refresh(ctx, core.ViewDashboard)
	if c.GetJSON(ctx, core.ViewDashboard, "2024", &got) {
		t.Error("refresh must drop the dashboard view")
	}
	if !c.GetJSON(ctx, core.ViewBills, "2024", &got) {
		t.Error("refresh must leave other views alone")
	}
	c.Refresh(ctx, core.ViewBills)
}
