package matcherr

import (
	"errors"
	"testing"
)

func TestError_ErrorIncludesWrappedCause(t *testing.T) {
	cause := errors.New("fuzzy_threshold out of range")
	err := NewConfigError("invalid config", cause)

	got := err.Error()
	if got != "config: invalid config: fuzzy_threshold out of range" {
		t.Errorf("Error() = %q", got)
	}
}

func TestError_ErrorWithoutCauseOmitsTrailer(t *testing.T) {
	err := NewCancelledError("run stopped early")

	got := err.Error()
	if got != "cancelled: run stopped early" {
		t.Errorf("Error() = %q", got)
	}
}

func TestError_UnwrapReturnsCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewConfigError("invalid config", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should see through Unwrap to the wrapped cause")
	}
}

func TestError_UnwrapNilCauseReturnsNil(t *testing.T) {
	err := NewCancelledError("run stopped early")
	if err.Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause was set")
	}
}

func TestKind_StringUnknownValueFallsBack(t *testing.T) {
	var k Kind = 99
	if k.String() != "unknown" {
		t.Errorf("String() = %q, want %q", k.String(), "unknown")
	}
}

func TestNewConfigError_SetsKindConfig(t *testing.T) {
	err := NewConfigError("bad value", nil)
	if err.Kind != KindConfig {
		t.Errorf("Kind = %v, want %v", err.Kind, KindConfig)
	}
}

func TestNewCancelledError_SetsKindCancelled(t *testing.T) {
	err := NewCancelledError("stopped")
	if err.Kind != KindCancelled {
		t.Errorf("Kind = %v, want %v", err.Kind, KindCancelled)
	}
}
