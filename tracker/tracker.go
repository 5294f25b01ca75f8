// Package tracker implements the confirmation tracker microservice. The tracker follows the transactions broadcast
// through the gateway until they are mined, or dropped when they never show up on chain, and updates their stored
// records.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tarancss/chaingate/lib/block"
	"github.com/tarancss/chaingate/lib/block/types"
	"github.com/tarancss/chaingate/lib/config"
	"github.com/tarancss/chaingate/lib/metrics"
	"github.com/tarancss/chaingate/lib/store"
	"github.com/tarancss/chaingate/tracker/pending"
)

// Tracker implements a tracker service.
type Tracker struct {
	reg  *block.Registry
	db   Store  // optional, pending submissions are loaded from and resolved into it
	mb   Source // optional, new submissions are consumed from it
	conf config.TrackerConfig
	log  *zap.Logger
	now  func() time.Time
}

// New instantiates a new tracker service for the coins in reg.
func New(reg *block.Registry, db Store, mb Source, conf config.TrackerConfig, log *zap.Logger) *Tracker {
	if conf.Poll <= 0 {
		conf.Poll = config.PollDefault
	}

	return &Tracker{reg: reg, db: db, mb: mb, conf: conf, log: log, now: time.Now}
}

// Track starts a go routine for each coin served. Each routine loads the pending submissions of its coin from the
// store, consumes the new ones from the message broker and polls the nodes for them every Poll interval until ctx is
// done. The returned channel receives a message once all the routines have returned.
func (t *Tracker) Track(ctx context.Context) <-chan string {
	ret := make(chan string, 1)

	coins := t.reg.Coins()
	// channel to wait for coin trackers
	w := make(chan string, len(coins))

	for _, coin := range coins {
		p, err := t.reg.GetInstance(coin)
		if err != nil {
			w <- fmt.Sprintf("[%s] not tracked: %v", coin, err)

			continue
		}

		go func() {
			err := t.TrackCoin(ctx, coin, p)
			w <- fmt.Sprintf("[%s] Done! err:%v", coin, err)
		}()
	}

	go func() {
		for i := 1; i < len(coins)+1; i++ {
			t.log.Info("coin tracker returned", zap.Int("n", i), zap.Int("of", len(coins)), zap.String("res", <-w))
		}

		ret <- "Done!"
	}()

	return ret
}

// TrackCoin tracks the submissions of coin until ctx is done.
func (t *Tracker) TrackCoin(ctx context.Context, coin types.Coin, p *block.Providers) error {
	set := pending.New(t.load(ctx, coin))

	if t.mb != nil {
		if err := t.ManageSubmissions(ctx, coin, set); err != nil {
			return err
		}
	}

	t.log.Info("tracking submissions", zap.String("coin", coin.String()), zap.Int("pending", set.Len()),
		zap.Duration("poll", t.conf.Poll))

	tick := time.NewTicker(t.conf.Poll)
	defer tick.Stop()

	for {
		t.poll(ctx, coin, p, set)

		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}
	}
}

// load returns the pending submissions of coin in the store.
func (t *Tracker) load(ctx context.Context, coin types.Coin) []store.Submission {
	if t.db == nil {
		return nil
	}

	subs, err := t.db.GetSubmissions(ctx, coin.String(), store.StatusPending)
	if err != nil {
		t.log.Error("cannot load pending submissions", zap.String("coin", coin.String()), zap.Error(err))

		return nil
	}

	return subs
}

// ManageSubmissions starts a go routine consuming the submissions of coin published by the gateway into set.
func (t *Tracker) ManageSubmissions(ctx context.Context, coin types.Coin, set *pending.Set) error {
	mut := new(sync.Mutex)
	mut.Lock()

	subCh, errCh, err := t.mb.GetSubmissions(ctx, coin.String(), mut)
	if err != nil {
		return fmt.Errorf("tracker: cannot get submissions: %w", err)
	}

	log := t.log.With(zap.String("coin", coin.String()))

	go func() {
		log.Info("start listening to submission channel")

		for subCh != nil || errCh != nil {
			select {
			case s, ok := <-subCh:
				if !ok {
					subCh = nil

					continue
				}

				if s.Coin != coin.String() || s.Network == "" || s.TxID == "" {
					log.Warn("ignoring malformed submission", zap.Any("submission", s))
				} else {
					submitted := s.Submitted
					if submitted.IsZero() {
						submitted = t.now().UTC()
					}

					set.Add(store.Submission{
						Coin:      s.Coin,
						Network:   s.Network,
						TxID:      s.TxID,
						Status:    store.StatusPending,
						Submitted: submitted,
						Updated:   submitted,
					})
				}

				mut.Unlock()
			case e, ok := <-errCh:
				if !ok {
					errCh = nil

					continue
				}

				log.Warn("submission channel error", zap.Error(e))
			}
		}

		log.Info("stop listening to submission channel")
	}()

	return nil
}

// poll looks up every pending submission and resolves the ones mined, or never seen after MaxAge.
func (t *Tracker) poll(ctx context.Context, coin types.Coin, p *block.Providers, set *pending.Set) {
	for _, s := range set.List() {
		if ctx.Err() != nil {
			return
		}

		m := metrics.NewTracker(coin.String(), s.Network)
		started := time.Now()

		tx, err := p.Transaction.GetTransactionByID(ctx, s.Network, s.TxID)

		unseen := errors.Is(err, types.ErrNotFound)
		if unseen {
			err = nil
		}

		m.ObservePoll(err, started)

		switch {
		case err != nil:
			t.log.Warn("cannot poll submission", zap.String("coin", coin.String()), zap.String("network", s.Network),
				zap.String("txId", s.TxID), zap.Error(err))
		case unseen:
			if s.Expired(t.now(), t.conf.MaxAge) {
				t.resolve(ctx, set, s, store.StatusDropped, 0)
			}
		case tx == nil || tx.Status == types.TxPending:
			// in the mempool
		case tx.Status == types.TxFailed:
			t.resolve(ctx, set, s, store.StatusFailed, tx.BlockHeight)
		default:
			t.resolve(ctx, set, s, store.StatusConfirmed, tx.BlockHeight)
		}
	}
}

// resolve stores the final status of s and stops tracking it. A submission that cannot be stored stays pending.
func (t *Tracker) resolve(ctx context.Context, set *pending.Set, s store.Submission, status store.Status,
	height uint64) {
	s.Status = status
	s.BlockHeight = height
	s.Updated = t.now().UTC()

	fields := []zap.Field{
		zap.String("coin", s.Coin), zap.String("network", s.Network), zap.String("txId", s.TxID),
		zap.String("status", string(status)), zap.Uint64("height", height),
	}

	if t.db != nil {
		err := t.db.UpdateSubmission(ctx, s)
		if errors.Is(err, store.ErrDataNotFound) {
			err = t.db.SaveSubmission(ctx, s)
		}

		if err != nil {
			t.log.Error("cannot store submission", append(fields, zap.Error(err))...)

			return
		}
	}

	set.Del(s.Key())
	metrics.NewTracker(s.Coin, s.Network).ObserveResolved(string(status))
	t.log.Info("submission resolved", fields...)
}
