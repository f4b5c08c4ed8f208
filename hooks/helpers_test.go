package hooks_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/delaneyj/hookparty/hooks"
)

var quiet = hooks.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// collect ranges over every output, failing on errors.
func collect(t *testing.T, c *hooks.Component) []any {
	t.Helper()
	var outs []any
	for out, err := range c.Run(testContext(t), nil, nil) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		outs = append(outs, out)
	}
	return outs
}
