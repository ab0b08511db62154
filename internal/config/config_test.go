package config

import (
	"testing"

	nchess "github.com/corentings/chess/v2"

	"github.com/kapu/pgn2gif/pkg/giferr"
)

func TestParseBoolTokens(t *testing.T) {
	cases := map[string]bool{
		"1": true, "t": true, "true": true, "TRUE": true, "T": true, " True ": true,
		"0": false, "f": false, "false": false, "FALSE": false, "F": false,
	}
	for token, want := range cases {
		got, err := ParseBool(token)
		if err != nil {
			t.Fatalf("ParseBool(%q): %v", token, err)
		}
		if got != want {
			t.Fatalf("ParseBool(%q) = %v, want %v", token, got, want)
		}
	}
}

func TestParseBoolRejectsTruthyStrings(t *testing.T) {
	for _, token := range []string{"", "yes", "no", "2", "on", "truee"} {
		if _, err := ParseBool(token); !giferr.IsKind(err, giferr.KindInvalidArgument) {
			t.Fatalf("ParseBool(%q) err = %v, want invalid_argument", token, err)
		}
	}
}

func TestParseOrientation(t *testing.T) {
	if c, err := ParseOrientation("white"); err != nil || c != nchess.White {
		t.Fatalf("white: %v %v", c, err)
	}
	if c, err := ParseOrientation("Black"); err != nil || c != nchess.Black {
		t.Fatalf("black: %v %v", c, err)
	}
	if _, err := ParseOrientation("sideways"); !giferr.IsKind(err, giferr.KindInvalidArgument) {
		t.Fatalf("sideways err = %v, want invalid_argument", err)
	}
}
