// Package block defines the capability interfaces a blockchain backend implements and the registry that resolves a
// coin to its providers.
package block

import (
	"context"
	"errors"

	"github.com/tarancss/chaingate/lib/block/types"
)

// Errors returned while building provider bundles and registering them.
var (
	ErrNilProvider = errors.New("provider bundle requires transaction, block and token providers")
	ErrDupCoin     = errors.New("coin already registered")
)

// TransactionProvider reads and broadcasts transactions of one coin. The network is passed through unvalidated, a
// backend that does not know it returns a NotFound error.
type TransactionProvider interface {
	GetTransactionByID(ctx context.Context, network, txID string) (*types.Transaction, error)
	GetTransactionsByBlock(ctx context.Context, network, blockHash string) ([]types.Transaction, error)
	// GetTransactionsByBlockHeight returns the summary projection of the block's transactions, or the detailed one
	// when includeDetails is set.
	GetTransactionsByBlockHeight(ctx context.Context, network string, height uint64,
		includeDetails bool) ([]types.BlockTransaction, error)
	// SendRawTransaction broadcasts a signed transaction and returns its id. It is never retried.
	SendRawTransaction(ctx context.Context, network string, req types.TransactionRequest) (string, error)
}

// BlockProvider reports the chain tip.
type BlockProvider interface {
	GetCurrentHeight(ctx context.Context, network string) (*types.BlockHeightInfo, error)
}

// TokenProvider reads the metadata of the tokens served on a network.
type TokenProvider interface {
	GetToken(ctx context.Context, network, token string) (*types.Token, error)
	GetAll(ctx context.Context, network string) ([]types.Token, error)
}

// Backend is a coin implementation providing all capabilities over the same node connections.
type Backend interface {
	TransactionProvider
	BlockProvider
	TokenProvider
	Close()
}

// Providers bundles the capability providers of one coin. It is immutable once built.
type Providers struct {
	Transaction TransactionProvider
	Block       BlockProvider
	Token       TokenProvider
}

// NewProviders returns a bundle of the given providers, or ErrNilProvider if any of them is missing.
func NewProviders(tx TransactionProvider, blk BlockProvider, tok TokenProvider) (*Providers, error) {
	if tx == nil || blk == nil || tok == nil {
		return nil, ErrNilProvider
	}

	return &Providers{Transaction: tx, Block: blk, Token: tok}, nil
}

// FromBackend returns the bundle serving every capability with b.
func FromBackend(b Backend) (*Providers, error) {
	if b == nil {
		return nil, ErrNilProvider
	}

	return NewProviders(b, b, b)
}

func (p *Providers) complete() bool {
	return p != nil && p.Transaction != nil && p.Block != nil && p.Token != nil
}
