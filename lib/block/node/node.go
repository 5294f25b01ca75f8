// Package node wraps the calls the backends make to their blockchain nodes with rate limiting, metrics, cancellation
// and retries of transient read failures.
package node

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/ratelimit"

	"github.com/tarancss/chaingate/lib/block/types"
)

// RetryDelay is the base delay between attempts of a failing read.
var RetryDelay = 200 * time.Millisecond //nolint:gochecknoglobals // tests shorten it

// RPCMetrics records metrics for node calls.
type RPCMetrics interface {
	Observe(operation string, err error, started time.Time)
}

type noMetrics struct{}

func (noMetrics) Observe(string, error, time.Time) {}

// Client controls the calls made to the node of one coin network.
type Client struct {
	rl       ratelimit.Limiter
	attempts uint
	metrics  RPCMetrics
}

// NewLimiter returns a limiter allowing rps calls per second, or an unlimited one if rps is not positive. A limiter can
// be shared by the clients of all the networks of a coin.
func NewLimiter(rps int) ratelimit.Limiter {
	if rps <= 0 {
		return ratelimit.NewUnlimited()
	}

	return ratelimit.New(rps)
}

// New returns a Client. A nil limiter means unlimited, attempts below 1 mean a single attempt and nil metrics are not
// recorded.
func New(rl ratelimit.Limiter, attempts int, m RPCMetrics) *Client {
	if rl == nil {
		rl = ratelimit.NewUnlimited()
	}

	if attempts < 1 {
		attempts = 1
	}

	if m == nil {
		m = noMetrics{}
	}

	return &Client{rl: rl, attempts: uint(attempts), metrics: m}
}

type result[T any] struct {
	v   T
	err error
}

// call runs fn once, waiting for it at most until ctx is done.
func call[T any](ctx context.Context, c *Client, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if err := ctx.Err(); err != nil {
		return zero, types.Network(err)
	}

	c.rl.Take()

	if err := ctx.Err(); err != nil {
		return zero, types.Network(err)
	}

	started := time.Now()
	ch := make(chan result[T], 1)

	go func() {
		v, err := fn(ctx)
		ch <- result[T]{v, err}
	}()

	select {
	case <-ctx.Done():
		err := types.Network(ctx.Err())
		c.metrics.Observe(op, err, started)

		return zero, err
	case res := <-ch:
		c.metrics.Observe(op, res.err, started)

		return res.v, res.err
	}
}

// Read runs the read operation fn, retrying it while it fails with a network error.
func Read[T any](ctx context.Context, c *Client, op string, fn func(context.Context) (T, error)) (T, error) {
	v, err := retry.DoWithData(
		func() (T, error) {
			return call(ctx, c, op, fn)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(RetryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, types.ErrNetwork) && ctx.Err() == nil
		}),
	)
	if err != nil && ctx.Err() != nil {
		err = types.Network(ctx.Err())
	}

	return v, err
}

// Write runs the state changing operation fn exactly once. If ctx is done before fn returns, or by the time it does,
// the context error is returned and the result of fn discarded.
func Write[T any](ctx context.Context, c *Client, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	v, err := call(ctx, c, op, fn)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, types.Network(ctxErr)
	}

	return v, err
}
