package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/pkg/model"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orderform.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeFile(t, `
addr: ":8181"
endpoint: "http://orders.internal/api/order"
request_timeout: 3s
log_format: console
out_of_stock: [L]
`)
	t.Setenv("ORDERFORM_ADDR", ":9191")
	t.Setenv("ORDERFORM_OUT_OF_STOCK", "S,M")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	want.Addr = ":9191"
	want.Endpoint = "http://orders.internal/api/order"
	want.RequestTimeout = 3 * time.Second
	want.LogFormat = "console"
	want.OutOfStock = []string{"S", "M"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]model.Size{model.SizeS, model.SizeM}, cfg.OutOfStockSizes()); diff != "" {
		t.Fatalf("sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "adress: \":8080\"\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty addr":       func(c *Config) { c.Addr = " " },
		"relative url":     func(c *Config) { c.Endpoint = "/api/order" },
		"negative timeout": func(c *Config) { c.RequestTimeout = -time.Second },
		"log format":       func(c *Config) { c.LogFormat = "xml" },
		"unknown size":     func(c *Config) { c.OutOfStock = []string{"XL"} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}
