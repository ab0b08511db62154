package boardsvg

import (
	"os"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"gopkg.in/yaml.v3"

	"github.com/kapu/pgn2gif/pkg/giferr"
)

// Theme is the color set of a rendered board. Colors are SVG paint
// strings (hex or named).
type Theme struct {
	LightSquare   string `yaml:"light_square"`
	DarkSquare    string `yaml:"dark_square"`
	LightLastMove string `yaml:"light_lastmove"`
	DarkLastMove  string `yaml:"dark_lastmove"`
	Margin        string `yaml:"margin"`
	Coord         string `yaml:"coord"`
}

func DefaultTheme() Theme {
	return Theme{
		LightSquare:   "#ffce9e",
		DarkSquare:    "#d18b47",
		LightLastMove: "#cdd16a",
		DarkLastMove:  "#aaa23b",
		Margin:        "#212121",
		Coord:         "#e5e5e5",
	}
}

// LoadTheme reads a YAML theme file. Unset fields keep their defaults.
func LoadTheme(path string) (Theme, error) {
	t := DefaultTheme()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, giferr.Wrap(giferr.KindIO, "read theme file", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, giferr.Wrap(giferr.KindInvalidArgument, "parse theme file", err)
	}
	return t, nil
}

func (t *Theme) merge(over Theme) {
	if over.LightSquare != "" {
		t.LightSquare = over.LightSquare
	}
	if over.DarkSquare != "" {
		t.DarkSquare = over.DarkSquare
	}
	if over.LightLastMove != "" {
		t.LightLastMove = over.LightLastMove
	}
	if over.DarkLastMove != "" {
		t.DarkLastMove = over.DarkLastMove
	}
	if over.Margin != "" {
		t.Margin = over.Margin
	}
	if over.Coord != "" {
		t.Coord = over.Coord
	}
}

// applyCSS folds stylesheet rules into the theme. The rasterizer does
// not evaluate <style> blocks, so stylesheet colors are resolved here
// and emitted as presentation attributes. Selectors outside the board
// vocabulary are ignored.
func (t *Theme) applyCSS(style string) error {
	sheet, err := parser.Parse(style)
	if err != nil {
		return giferr.Wrap(giferr.KindInvalidArgument, "parse stylesheet", err)
	}
	for _, rule := range sheet.Rules {
		if rule.Kind != css.QualifiedRule {
			continue
		}
		for _, sel := range rule.Selectors {
			target := t.fieldForSelector(sel)
			if target == nil {
				continue
			}
			for _, decl := range rule.Declarations {
				switch strings.ToLower(strings.TrimSpace(decl.Property)) {
				case "fill", "stroke":
					*target = strings.TrimSpace(decl.Value)
				}
			}
		}
	}
	return nil
}

func (t *Theme) fieldForSelector(sel string) *string {
	switch strings.ReplaceAll(strings.TrimSpace(sel), " ", "") {
	case ".square.light":
		return &t.LightSquare
	case ".square.dark":
		return &t.DarkSquare
	case ".square.light.lastmove", ".square.lastmove.light":
		return &t.LightLastMove
	case ".square.dark.lastmove", ".square.lastmove.dark":
		return &t.DarkLastMove
	case ".margin":
		return &t.Margin
	case "coord", ".coord":
		return &t.Coord
	}
	return nil
}
