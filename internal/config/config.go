// Package config carries the defaults of the command surface and the
// coercion of option strings into typed values.
package config

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"

	"github.com/kapu/pgn2gif/pkg/giferr"
)

// Defaults of the flag surface.
const (
	DefaultSize          = 400
	DefaultLoop          = 0
	DefaultDuration      = 1.0
	DefaultFPS           = 1.0
	DefaultPaletteSize = 64
	DefaultBoolToken   = "true"
	DefaultOrientation = "white"
)

// ParseBool coerces one of the literal tokens {1,t,true,0,f,false},
// case-insensitive. Anything else is an invalid argument; there is no
// truthy fallback for non-empty strings.
func ParseBool(token string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "1", "t", "true":
		return true, nil
	case "0", "f", "false":
		return false, nil
	}
	return false, giferr.New(giferr.KindInvalidArgument, fmt.Sprintf("cannot parse %q as bool, want one of 1,t,true,0,f,false", token))
}

// ParseOrientation coerces "white" or "black" into the board color the
// viewer faces.
func ParseOrientation(token string) (nchess.Color, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "white":
		return nchess.White, nil
	case "black":
		return nchess.Black, nil
	}
	return nchess.NoColor, giferr.New(giferr.KindInvalidArgument, fmt.Sprintf("unknown orientation %q, want white or black", token))
}
