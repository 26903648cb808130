// Package notify fans form submissions out to the configured operator
// channels. Delivery is best-effort: a channel failure is logged and
// counted, never surfaced to the webhook caller.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/orbitlabs/formgate/internal/metrics"
	"github.com/orbitlabs/formgate/internal/models"
)

// Envelope is the ephemeral notification payload: the classified record
// plus the id the backend assigned to it. It is never persisted.
type Envelope struct {
	Kind       models.Kind
	Inquiry    *models.InquiryRecord
	Newsletter *models.NewsletterRecord
	ID         string
}

// Channel is a single notification destination.
type Channel interface {
	Name() string
	Send(ctx context.Context, env Envelope) error
}

// Result records how one channel settled during a fan-out.
type Result struct {
	Channel string
	Err     error
}

type Dispatcher struct {
	channels []Channel
	logger   *slog.Logger
}

// NewDispatcher builds a dispatcher over the channels that are actually
// configured. Nil channels are skipped so callers can pass the result of
// conditional construction directly.
func NewDispatcher(logger *slog.Logger, channels ...Channel) *Dispatcher {
	d := &Dispatcher{logger: logger}
	for _, ch := range channels {
		if ch != nil {
			d.channels = append(d.channels, ch)
		}
	}
	return d
}

// Dispatch sends the envelope to every channel concurrently and waits for
// all of them. Failures are logged and counted; Dispatch itself never
// fails and never blocks one channel on another's outcome.
func (d *Dispatcher) Dispatch(ctx context.Context, env Envelope) []Result {
	results := settleAll(ctx, env, d.channels)
	for _, res := range results {
		if res.Err != nil {
			metrics.NotificationFailures.WithLabelValues(res.Channel).Inc()
			d.logger.ErrorContext(ctx, "notification channel failed",
				slog.String("channel", res.Channel),
				slog.String("kind", string(env.Kind)),
				slog.String("error", res.Err.Error()),
			)
		}
	}
	return results
}

// settleAll runs every channel send concurrently and collects all
// outcomes. It never panics outward and never short-circuits: each send
// settles independently.
func settleAll(ctx context.Context, env Envelope, channels []Channel) []Result {
	results := make([]Result, len(channels))

	var wg sync.WaitGroup
	for i, ch := range channels {
		wg.Add(1)
		go func(i int, ch Channel) {
			defer wg.Done()
			results[i] = Result{Channel: ch.Name(), Err: ch.Send(ctx, env)}
		}(i, ch)
	}
	wg.Wait()

	return results
}
