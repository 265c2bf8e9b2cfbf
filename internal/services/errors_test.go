package services_test

import (
	"errors"
	"strings"
	"testing"

	"pagewatch/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExtraction, "extractor", "fetch", "request failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExtraction) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"extractor", "fetch", "request failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := services.Wrap(services.ErrStateIO, "", "", "", nil)
	if !errors.Is(err, services.ErrStateIO) {
		t.Fatalf("expected state io marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "extraction", err: services.Wrap(services.ErrExtraction, "extractor", "fetch", "", nil), want: true},
		{name: "state io", err: services.Wrap(services.ErrStateIO, "statestore", "write", "", nil), want: true},
		{name: "configuration", err: services.Wrap(services.ErrConfiguration, "config", "", "missing url", nil), want: true},
		{name: "delivery", err: services.Wrap(services.ErrNotificationDelivery, "notifications", "send", "", nil), want: false},
		{name: "untagged", err: errors.New("plain"), want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := services.IsFatal(tc.err); got != tc.want {
				t.Fatalf("IsFatal(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestKindLabels(t *testing.T) {
	if got := services.Kind(services.Wrap(services.ErrStateIO, "statestore", "read", "", nil)); got != "state_io" {
		t.Fatalf("unexpected kind %q", got)
	}
	if got := services.Kind(errors.New("x")); got != "unknown" {
		t.Fatalf("unexpected kind %q", got)
	}
}
