package report

import (
	"context"
	"errors"

	"algobench/internal/trace"

	"golang.org/x/sync/errgroup"
)

// Trace is a loaded trace file.
type Trace struct {
	Path   string
	Events []trace.Event
	// Truncated is set when the file was not closed and only its complete
	// records were kept.
	Truncated bool
}

// LoadTraces reads every path concurrently and returns them in argument
// order. Unclosed files from interrupted runs are recovered rather than
// rejected. The first hard failure cancels the rest.
func LoadTraces(ctx context.Context, paths ...string) ([]Trace, error) {
	traces := make([]Trace, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			events, err := trace.Recover(path)
			truncated := errors.Is(err, trace.ErrTruncated)
			if err != nil && !truncated {
				return err
			}
			traces[i] = Trace{Path: path, Events: events, Truncated: truncated}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return traces, nil
}

// Summary summarises the loaded trace.
func (t Trace) Summary() Summary {
	s := Summarize(t.Path, t.Events)
	s.Truncated = t.Truncated
	return s
}
