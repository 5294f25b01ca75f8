package block

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tarancss/chaingate/lib/block/bitcoin"
	"github.com/tarancss/chaingate/lib/block/ethereum"
	"github.com/tarancss/chaingate/lib/block/node"
	"github.com/tarancss/chaingate/lib/block/solana"
	"github.com/tarancss/chaingate/lib/block/types"
	"github.com/tarancss/chaingate/lib/config"
)

// Registry maps coins to their providers. It is populated at startup and only read while serving requests, so
// lookups need no locking.
type Registry struct {
	m        map[types.Coin]*Providers
	backends []Backend
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{m: make(map[types.Coin]*Providers)}
}

// Register adds the providers of coin. It must not be called once the registry is serving lookups.
func (r *Registry) Register(coin types.Coin, p *Providers) error {
	if !p.complete() {
		return fmt.Errorf("register %s: %w", coin, ErrNilProvider)
	}

	if _, ok := r.m[coin]; ok {
		return fmt.Errorf("register %s: %w", coin, ErrDupCoin)
	}

	r.m[coin] = p

	return nil
}

// GetInstance returns the providers of coin or an UnknownCoin error if no backend is registered for it.
func (r *Registry) GetInstance(coin types.Coin) (*Providers, error) {
	p, ok := r.m[coin]
	if !ok {
		return nil, types.UnknownCoin(fmt.Errorf("%w: %s", types.ErrUnknownCoin, coin))
	}

	return p, nil
}

// Coins returns the registered coins sorted.
func (r *Registry) Coins() []types.Coin {
	coins := make([]types.Coin, 0, len(r.m))
	for c := range r.m {
		coins = append(coins, c)
	}

	sort.Slice(coins, func(i, j int) bool { return coins[i] < coins[j] })

	return coins
}

// Close closes gracefully the node clients of all the backends built by Init.
func (r *Registry) Close() {
	for _, b := range r.backends {
		b.Close()
	}
}

// MetricsFactory returns the RPC metrics of a coin's network.
type MetricsFactory func(coin, network string) node.RPCMetrics

// Init builds a backend for every configured coin, dialing them concurrently, and returns the registry serving them.
func Init(ctx context.Context, coins []config.CoinConfig, metrics MetricsFactory, log *zap.Logger) (*Registry, error) {
	backends := make([]Backend, len(coins))

	g, ctx := errgroup.WithContext(ctx)

	for i, cc := range coins {
		g.Go(func() error {
			b, err := newBackend(ctx, cc, metrics)
			if err != nil {
				return fmt.Errorf("coin %s: %w", cc.Coin, err)
			}

			backends[i] = b

			log.Info("blockchain client loaded", zap.String("coin", cc.Coin), zap.String("backend", cc.Backend),
				zap.Int("networks", len(cc.Networks)))

			return nil
		})
	}

	r := NewRegistry()

	err := g.Wait()
	for _, b := range backends {
		if b != nil {
			r.backends = append(r.backends, b)
		}
	}

	if err != nil {
		r.Close()

		return nil, err
	}

	for i, cc := range coins {
		p, err := FromBackend(backends[i])
		if err == nil {
			err = r.Register(types.Coin(cc.Coin), p)
		}

		if err != nil {
			r.Close()

			return nil, err
		}
	}

	return r, nil
}

func newBackend(ctx context.Context, cc config.CoinConfig, metrics MetricsFactory) (Backend, error) {
	rps, retries := cc.Limits()
	limiter := node.NewLimiter(rps)

	clients := make(map[string]*node.Client, len(cc.Networks))
	for _, n := range cc.Networks {
		var m node.RPCMetrics
		if metrics != nil {
			m = metrics(cc.Coin, n.Name)
		}

		clients[n.Name] = node.New(limiter, retries, m)
	}

	coin := types.Coin(cc.Coin)

	switch cc.Backend {
	case config.BackendEthereum:
		return ethereum.Init(ctx, coin, cc.Networks, clients)
	case config.BackendBitcoin:
		return bitcoin.Init(coin, cc.Networks, clients)
	case config.BackendSolana:
		return solana.Init(coin, cc.Networks, clients)
	default:
		return nil, fmt.Errorf("%w %q", config.ErrBackend, cc.Backend)
	}
}
