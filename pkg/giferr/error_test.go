package giferr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := New(KindParse, "bad pgn")
	if KindOf(err) != KindParse {
		t.Fatalf("KindOf = %q, want parse", KindOf(err))
	}
	if KindOf(errors.New("plain")) != "" {
		t.Fatalf("plain error has a kind")
	}
}

func TestWrapPreservesCauseAndKind(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Wrap(KindIO, "read pgn", cause)
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost")
	}
	if !IsKind(err, KindIO) {
		t.Fatalf("kind lost")
	}
	if got := err.Error(); got != "read pgn: disk on fire" {
		t.Fatalf("message = %q", got)
	}

	// Kind survives further wrapping.
	outer := fmt.Errorf("pipeline: %w", err)
	if !IsKind(outer, KindIO) {
		t.Fatalf("kind lost through wrapping")
	}
}
