package main

import (
	"errors"
	"testing"

	"github.com/spf13/pflag"

	"github.com/projecthub/api/internal/core/domain"
)

func TestPromoteFlags_Defaults(t *testing.T) {
	flags := pflag.NewFlagSet("promote", pflag.ContinueOnError)
	registerPromoteFlags(flags)

	if err := flags.Parse([]string{"--email", "ops@example.com"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if promoteOpts.email != "ops@example.com" {
		t.Fatalf("email = %q", promoteOpts.email)
	}
	if promoteOpts.role != "admin" {
		t.Fatalf("role should default to admin, got %q", promoteOpts.role)
	}
}

func TestRunPromote_RejectsUnknownRole(t *testing.T) {
	promoteOpts.email = "ops@example.com"
	promoteOpts.role = "owner"
	t.Cleanup(func() { promoteOpts.role = "admin" })

	err := runPromote(promoteCmd, nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
