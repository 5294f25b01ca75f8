package solana

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// rpcClient are the rpc.Client calls used by the providers.
	rpcClient interface {
		GetSlot(ctx context.Context, commitment rpc.CommitmentType) (uint64, error)
		GetBlockWithOpts(ctx context.Context, slot uint64, opts *rpc.GetBlockOpts) (*rpc.GetBlockResult, error)
		GetTransaction(ctx context.Context, txSig solana.Signature,
			opts *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error)
		SendRawTransaction(ctx context.Context, rawTx []byte) (solana.Signature, error)
		Close() error
	}
)
