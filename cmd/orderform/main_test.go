package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-orderform/internal/config"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func TestRootRegistersSubcommands(t *testing.T) {
	var names []string
	for _, sub := range newRootCmd().Commands() {
		names = append(names, sub.Name())
	}
	want := []string{"order", "serve", "stub-api"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("subcommands mismatch (-want +got):\n%s", diff)
	}
}

func TestServeRejectsInvalidEndpoint(t *testing.T) {
	err := execute(t, "serve", "--endpoint", "not-a-url")
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestStubRejectsUnknownSize(t *testing.T) {
	err := execute(t, "stub-api", "--out-of-stock", "XL")
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestRootRejectsUnknownLogLevel(t *testing.T) {
	if err := execute(t, "serve", "--log-level", "loud"); err == nil {
		t.Fatalf("expected log level error")
	}
}
