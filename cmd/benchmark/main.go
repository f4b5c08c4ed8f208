package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/hookparty/hooks"
	"github.com/delaneyj/hookparty/pkg/node"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const (
	itersKey   = "iters"
	profileKey = "profile"
)

var widths = []int{1, 10, 100, 1_000}

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure render latency of hooked components with many states",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Batches to push through each component",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	iters := int(cmd.Int(itersKey))
	if iters <= 0 {
		return fmt.Errorf("iters must be positive, got %d", iters)
	}

	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("starting profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	if _, err := measure(ctx, 10, 10); err != nil {
		return err
	}

	tbl := table.NewWriter()
	tbl.SetTitle("Hooked component batches")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	summary := tablewriter.NewWriter(os.Stdout)
	summary.SetHeader([]string{"states", "batches", "renders/s", "updates/s", "alloc"})

	for _, w := range widths {
		log.Printf("Running %d states", w)
		r, err := measure(ctx, w, iters)
		if err != nil {
			return err
		}

		calc := r.tach.Calc()
		tbl.AppendRow(table.Row{
			fmt.Sprintf("batch: %d states", w),
			calc.Time.Avg,
			calc.Time.Min,
			calc.Time.P75,
			calc.Time.P99,
			calc.Time.Max,
		})

		seconds := calc.Time.Cumulative.Seconds()
		if seconds == 0 {
			seconds = 1
		}
		summary.Append([]string{
			humanize.Comma(int64(w)),
			humanize.Comma(int64(r.batches)),
			humanize.Comma(int64(float64(r.batches) / seconds)),
			humanize.Comma(int64(float64(r.batches*w) / seconds)),
			humanize.Bytes(r.alloc),
		})
	}

	tbl.Render()
	summary.Render()
	return nil
}

type result struct {
	tach    *tachymeter.Tachymeter
	batches int
	alloc   uint64
}

// measure drives a component holding width states. Each batch sets every
// state once and is timed until the re-render is yielded.
func measure(ctx context.Context, width, iters int) (*result, error) {
	states := make([]*hooks.State[int], width)
	var closeFn func()

	c := hooks.New(func(h *hooks.Hooks, _ node.Options, _ any) any {
		sum := 0
		for i := range width {
			s := hooks.UseState(h, 0)
			states[i] = s
			sum += s.Value()
		}
		closeFn = h.UseClose()
		return sum
	},
		hooks.WithName(fmt.Sprintf("wide-%d", width)),
		hooks.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	r := &result{tach: tachymeter.New(&tachymeter.Config{Size: iters})}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)

	var start time.Time
	expected := 0
	for out, err := range c.Run(ctx, nil, nil) {
		if err != nil {
			return nil, fmt.Errorf("running %d states: %w", width, err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !start.IsZero() {
			r.tach.AddTime(time.Since(start))
			r.batches++
		}
		if sum := out.(int); sum != expected {
			return nil, fmt.Errorf("%d states: expected sum %d, got %d", width, expected, sum)
		}
		if r.batches == iters {
			closeFn()
			continue
		}

		next := r.batches + 1
		start = time.Now()
		for _, s := range states {
			s.Set(next)
		}
		expected = next * width
	}

	runtime.ReadMemStats(&after)
	r.alloc = after.TotalAlloc - before.TotalAlloc
	return r, nil
}
