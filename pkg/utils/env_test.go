package utils

import (
	"testing"
	"time"
)

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FLAG", "")
	if !GetEnvBool("FLAG", true) {
		t.Fatalf("expected default when unset")
	}

	t.Setenv("FLAG", "false")
	if GetEnvBool("FLAG", true) {
		t.Fatalf("expected false")
	}

	t.Setenv("FLAG", "nonsense")
	if !GetEnvBool("FLAG", true) {
		t.Fatalf("expected default when unparsable")
	}
}

func TestGetEnvPositiveDuration(t *testing.T) {
	t.Setenv("WINDOW", "250ms")
	if got := GetEnvPositiveDuration("WINDOW", time.Second); got != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %s", got)
	}

	t.Setenv("WINDOW", "-1s")
	if got := GetEnvPositiveDuration("WINDOW", time.Second); got != time.Second {
		t.Fatalf("expected default for negative duration, got %s", got)
	}
}

func TestGetEnvPositiveInt64(t *testing.T) {
	t.Setenv("LIMIT", " 42 ")
	if got := GetEnvPositiveInt64("LIMIT", 1); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}

	t.Setenv("LIMIT", "0")
	if got := GetEnvPositiveInt64("LIMIT", 7); got != 7 {
		t.Fatalf("expected default for zero, got %d", got)
	}
}

func TestOTelServiceName_Default(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	if got := OTelServiceName(); got != "postie-waitlist" {
		t.Fatalf("unexpected service name %q", got)
	}
}
