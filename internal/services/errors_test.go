package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"condodocs/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrUnreadable, "pair", "read pdf", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrUnreadable) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"pair", "read pdf", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrDestination) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "operation failure") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRecoverable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, true},
		{services.Wrap(services.ErrMissingSource, "place", "stat", "gone", nil), true},
		{services.Wrap(services.ErrDestination, "place", "mkdir", "denied", errors.New("eperm")), true},
		{services.Wrap(services.ErrUnreadable, "scan", "open", "bad pdf", nil), true},
		{services.Wrap(services.ErrConfiguration, "config", "load", "bad", nil), false},
		{services.Wrap(services.ErrValidation, "cli", "--threshold", "out of range", nil), false},
		{fmt.Errorf("extract: %w", context.Canceled), false},
		{errors.New("plain"), true},
	}
	for _, tc := range cases {
		if got := services.Recoverable(tc.err); got != tc.want {
			t.Fatalf("Recoverable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
