package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kapu/pgn2gif/internal/boardsvg"
	"github.com/kapu/pgn2gif/internal/config"
	"github.com/kapu/pgn2gif/internal/convert"
	"github.com/kapu/pgn2gif/internal/gifenc"
	"github.com/kapu/pgn2gif/internal/obslog"
)

func main() {
	app := &cli.App{
		Name:  "pgn2gif",
		Usage: "render a PGN chess game as an animated GIF, one frame per position",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "pgn-path", Usage: "path to pgn file to read", Required: true},
			&cli.StringFlag{Name: "gif-path", Usage: "path to gif file to save", Required: true},
			&cli.StringFlag{Name: "add-initial-position", Usage: "add initial position to gif (1,t,true,0,f,false)", Value: config.DefaultBoolToken},
			&cli.StringFlag{Name: "highlight-last-move", Usage: "highlight last move on board (1,t,true,0,f,false)", Value: config.DefaultBoolToken},
			&cli.StringFlag{Name: "orientation", Usage: "orientation of board (white|black)", Value: config.DefaultOrientation},
			&cli.IntFlag{Name: "size", Usage: "size of board in pixels", Value: config.DefaultSize},
			&cli.StringFlag{Name: "coordinates", Usage: "add board coordinates (1,t,true,0,f,false)", Value: config.DefaultBoolToken},
			&cli.StringFlag{Name: "css-path", Usage: "path to css file to style board"},
			&cli.StringFlag{Name: "theme-path", Usage: "path to yaml board theme file"},
			&cli.IntFlag{Name: "loop", Usage: "number of loops for gif, 0 means infinite", Value: config.DefaultLoop},
			&cli.Float64Flag{Name: "duration", Usage: "duration of each frame (in seconds) in gif", Value: config.DefaultDuration},
			&cli.Float64Flag{Name: "fps", Usage: "frames per second of gif, used when duration is unset", Value: config.DefaultFPS},
			&cli.IntFlag{Name: "palettesize", Usage: "number of colors to quantize images to, rounded to the nearest power of two", Value: config.DefaultPaletteSize},
			&cli.StringFlag{Name: "subrectangles", Usage: "optimize gif by storing only changed regions (1,t,true,0,f,false)", Value: config.DefaultBoolToken},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		obslog.L().Error("conversion failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "pgn2gif:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if err := obslog.InitFromEnv(); err != nil {
		return err
	}
	log := obslog.L()

	addInitial, err := config.ParseBool(c.String("add-initial-position"))
	if err != nil {
		return err
	}
	highlight, err := config.ParseBool(c.String("highlight-last-move"))
	if err != nil {
		return err
	}
	coordinates, err := config.ParseBool(c.String("coordinates"))
	if err != nil {
		return err
	}
	subrectangles, err := config.ParseBool(c.String("subrectangles"))
	if err != nil {
		return err
	}
	orientation, err := config.ParseOrientation(c.String("orientation"))
	if err != nil {
		return err
	}

	pgn, err := convert.ReadTextFile(c.String("pgn-path"))
	if err != nil {
		return err
	}

	style := ""
	if cssPath := c.String("css-path"); cssPath != "" {
		style, err = convert.ReadTextFile(cssPath)
		if err != nil {
			return err
		}
	}

	var theme *boardsvg.Theme
	if themePath := c.String("theme-path"); themePath != "" {
		t, err := boardsvg.LoadTheme(themePath)
		if err != nil {
			return err
		}
		theme = &t
	}

	req := convert.Request{
		PGN:                pgn,
		AddInitialPosition: addInitial,
		HighlightLastMove:  highlight,
		Render: boardsvg.Options{
			Orientation: orientation,
			Size:        c.Int("size"),
			Coordinates: coordinates,
			Style:       style,
			Theme:       theme,
		},
		Anim: gifenc.Options{
			Loop:          c.Int("loop"),
			Duration:      c.Float64("duration"),
			FPS:           c.Float64("fps"),
			PaletteSize:   c.Int("palettesize"),
			Subrectangles: subrectangles,
		},
	}

	return convert.New(log).ConvertToFile(req, c.String("gif-path"))
}
