package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/delaneyj/hookparty/hooks"
	"github.com/delaneyj/hookparty/pkg/node"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

const (
	configKey  = "config"
	targetKey  = "target"
	closeAtKey = "close-at"
	clickKey   = "click"
	verboseKey = "verbose"
)

func main() {
	cmd := &cli.Command{
		Name:  "counter",
		Usage: "Drive the hooked counter component until it closes itself",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configKey,
				Usage: "YAML scenario file",
			},
			&cli.IntFlag{
				Name:  targetKey,
				Usage: "Value the counter steps towards (overrides the scenario)",
				Value: -1,
			},
			&cli.IntFlag{
				Name:  closeAtKey,
				Usage: "Value at which the counter closes itself (overrides the scenario)",
				Value: -1,
			},
			&cli.BoolFlag{
				Name:  clickKey,
				Usage: "Click the button once after the first render",
			},
			&cli.BoolFlag{
				Name:  verboseKey,
				Usage: "Log driver activity to stderr",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	s, err := loadScenario(cmd.String(configKey))
	if err != nil {
		return err
	}
	if v := cmd.Int(targetKey); v >= 0 {
		s.Target = int(v)
	}
	if v := cmd.Int(closeAtKey); v >= 0 {
		s.CloseAt = int(v)
	}
	if cmd.Bool(clickKey) {
		s.Click = true
	}
	if err := s.validate(); err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	if cmd.Bool(verboseKey) {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.Printf("Counter from %d to %d, closing at %d", s.Start, s.Target, s.CloseAt)

	rows, cleanups, err := drive(ctx, s, logger)
	if err != nil {
		return err
	}

	tbl := table.NewWriter()
	tbl.SetTitle("Counter")
	tbl.SetOutputMirror(os.Stdout)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		tbl.SetStyle(table.StyleColoredBright)
	}
	tbl.AppendHeader(table.Row{"render", "markup"})
	for i, markup := range rows {
		tbl.AppendRow(table.Row{i + 1, markup})
	}
	tbl.AppendFooter(table.Row{"cleanups", fmt.Sprint(cleanups)})
	tbl.Render()

	return nil
}

// drive runs the counter to completion and returns the markup of every
// render along with the values whose effects were cleaned up.
func drive(ctx context.Context, s scenario, logger *slog.Logger) ([]string, []int, error) {
	var cleanups []int
	c := hooks.New(counter(s, &cleanups),
		hooks.WithName("Counter"),
		hooks.WithLogger(logger),
		hooks.WithMemoCacheSize(s.MemoCacheSize),
	)

	var rows []string
	for out, err := range c.Run(ctx, nil, nil) {
		if err != nil {
			return rows, cleanups, fmt.Errorf("running counter: %w", err)
		}
		button := out.(*node.Node)
		rows = append(rows, node.Markup(button))

		if s.Click && len(rows) == 1 {
			onClick := node.Properties(button)["onClick"].(func())
			onClick()
		}
	}
	return rows, cleanups, nil
}
