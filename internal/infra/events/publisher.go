package events

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Publisher interface {
	Publish(ctx context.Context, pattern string, data any) error
}

// Message is the envelope every sink sends.
type Message struct {
	Pattern string `json:"pattern"`
	Data    any    `json:"data"`
	ID      string `json:"id,omitempty"`
}

type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

// Fanout delivers each event to every sink concurrently. A failing sink does
// not stop the others.
type Fanout struct {
	sinks  []Publisher
	logger zerolog.Logger
}

func NewFanout(logger zerolog.Logger, sinks ...Publisher) *Fanout {
	return &Fanout{sinks: sinks, logger: logger}
}

func (f *Fanout) Publish(ctx context.Context, pattern string, data any) error {
	errs := make([]error, len(f.sinks))

	var g errgroup.Group
	for i, s := range f.sinks {
		g.Go(func() error {
			if err := s.Publish(ctx, pattern, data); err != nil {
				f.logger.Warn().Err(err).Str("pattern", pattern).Msg("event sink failed")
				errs[i] = err
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

var _ Publisher = (*Fanout)(nil)
var _ Publisher = Nop{}
