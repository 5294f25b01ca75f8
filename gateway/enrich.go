package gateway

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tarancss/chaingate/lib/block"
	"github.com/tarancss/chaingate/lib/block/types"
	"github.com/tarancss/chaingate/lib/metrics"
)

// Enricher annotates the rejections of broadcast transactions with the chain tip and the rejected payload.
type Enricher struct {
	log *zap.Logger
}

// NewEnricher returns an Enricher logging to log.
func NewEnricher(log *zap.Logger) *Enricher {
	return &Enricher{log: log}
}

// Enrich returns err annotated with raw and the current height of network when err is an InvalidTransaction error.
// The result keeps err's kind. Any other error, and any failure or panic looking up the height, returns err
// unmodified.
func (e *Enricher) Enrich(ctx context.Context, coin types.Coin, network string, blk block.BlockProvider, raw string,
	err error) (out error) {
	m := metrics.NewGateway(coin.String())

	if !errors.Is(err, types.ErrInvalidTransaction) || blk == nil {
		m.ObserveEnrich(metrics.EnrichSkipped)

		return err
	}

	fields := []zap.Field{zap.String("coin", coin.String()), zap.String("network", network), zap.Error(err)}

	defer func() {
		if p := recover(); p != nil {
			e.log.Warn("height lookup panicked, error not enriched", append(fields, zap.Any("panic", p))...)
			m.ObserveEnrich(metrics.EnrichFailed)

			out = err
		}
	}()

	h, herr := blk.GetCurrentHeight(ctx, network)
	if herr != nil || h == nil {
		e.log.Warn("height lookup failed, error not enriched", append(fields, zap.NamedError("lookup", herr))...)
		m.ObserveEnrich(metrics.EnrichFailed)

		return err
	}

	e.log.Error("error committing tx to blockchain",
		append(fields, zap.String("rawTx", raw), zap.Uint64("height", h.Height))...)
	m.ObserveEnrich(metrics.EnrichAnnotated)

	return fmt.Errorf("%w (for %s) @ %d block", err, raw, h.Height)
}
