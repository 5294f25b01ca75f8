// Package solana implements the providers of solana networks. Block heights in requests are slots.
package solana

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/mr-tron/base58"
	"github.com/shopspring/decimal"

	"github.com/tarancss/chaingate/lib/block/node"
	"github.com/tarancss/chaingate/lib/block/types"
	"github.com/tarancss/chaingate/lib/config"
)

// lamportExp is the exponent converting lamports into SOL.
const lamportExp = -9

// Solana JSON-RPC error codes for slots without a block.
const (
	rpcBlockNotAvailable  = -32004
	rpcSlotSkipped        = -32007
	rpcLongTermStorageGap = -32009
)

// network contains the client to the node of one network.
type network struct {
	name string
	rpc  rpcClient
	node *node.Client
}

// Solana implements the providers of a solana coin.
type Solana struct {
	coin types.Coin
	nets map[string]*network
}

// Init returns the providers of coin using the rpc endpoints of the given networks. clients controls the calls made
// to each network's node.
func Init(coin types.Coin, nets []config.NetworkConfig, clients map[string]*node.Client) (*Solana, error) {
	s := &Solana{coin: coin, nets: make(map[string]*network, len(nets))}

	for _, n := range nets {
		if n.Node == "" {
			s.Close()

			return nil, fmt.Errorf("network %s: missing rpc endpoint", n.Name)
		}

		nc := clients[n.Name]
		if nc == nil {
			nc = node.New(nil, 1, nil)
		}

		s.nets[n.Name] = &network{name: n.Name, rpc: rpc.New(n.Node), node: nc}
	}

	return s, nil
}

// Close closes the rpc clients.
func (s *Solana) Close() {
	for _, n := range s.nets {
		_ = n.rpc.Close()
	}
}

func (s *Solana) network(name string) (*network, error) {
	n, ok := s.nets[name]
	if !ok {
		return nil, types.NotFound(fmt.Errorf("%w: %s %s", types.ErrUnknownNetwork, s.coin, name))
	}

	return n, nil
}

// GetTransactionByID returns the transaction with signature txID.
func (s *Solana) GetTransactionByID(ctx context.Context, netName, txID string) (*types.Transaction, error) {
	n, err := s.network(netName)
	if err != nil {
		return nil, err
	}

	sig, err := solana.SignatureFromBase58(txID)
	if err != nil {
		return nil, types.NotFound(fmt.Errorf("%w: %s", types.ErrNoTrx, txID))
	}

	var maxVersion uint64

	res, err := node.Read(ctx, n.node, "get_transaction", func(ctx context.Context) (*rpc.GetTransactionResult, error) {
		r, err := n.rpc.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
			Encoding:                       solana.EncodingBase64,
			Commitment:                     rpc.CommitmentConfirmed,
			MaxSupportedTransactionVersion: &maxVersion,
		})

		return r, classify(err, false)
	})
	if err != nil {
		return nil, err
	}

	if res.Transaction == nil {
		return nil, types.NotFound(fmt.Errorf("%w: %s", types.ErrNoTrx, txID))
	}

	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(res.Transaction.GetBinary()))
	if err != nil {
		return nil, fmt.Errorf("decode transaction %s: %w", txID, err)
	}

	out := s.transaction(tx, res.Meta, netName)
	out.ID = txID
	out.BlockHeight = res.Slot

	if res.BlockTime != nil {
		out.Timestamp = int64(*res.BlockTime)
	}

	return out, nil
}

// GetTransactionsByBlock returns NotFound, blocks cannot be queried by hash on solana nodes.
func (s *Solana) GetTransactionsByBlock(_ context.Context, netName, blockHash string) ([]types.Transaction, error) {
	if _, err := s.network(netName); err != nil {
		return nil, err
	}

	return nil, types.NotFound(fmt.Errorf("%w: block %s by hash", types.ErrUnsupported, blockHash))
}

// GetTransactionsByBlockHeight returns the transactions of the block at slot, with their details if includeDetails.
func (s *Solana) GetTransactionsByBlockHeight(ctx context.Context, netName string, slot uint64,
	includeDetails bool) ([]types.BlockTransaction, error) {
	n, err := s.network(netName)
	if err != nil {
		return nil, err
	}

	var maxVersion uint64

	rewards := false
	opts := &rpc.GetBlockOpts{
		Encoding:                       solana.EncodingBase64,
		TransactionDetails:             rpc.TransactionDetailsSignatures,
		Rewards:                        &rewards,
		Commitment:                     rpc.CommitmentConfirmed,
		MaxSupportedTransactionVersion: &maxVersion,
	}

	if includeDetails {
		opts.TransactionDetails = rpc.TransactionDetailsFull
	}

	blk, err := node.Read(ctx, n.node, "get_block", func(ctx context.Context) (*rpc.GetBlockResult, error) {
		b, err := n.rpc.GetBlockWithOpts(ctx, slot, opts)

		return b, classify(err, false)
	})
	if err != nil {
		return nil, err
	}

	hash := blk.Blockhash.String()

	if !includeDetails {
		txs := make([]types.BlockTransaction, len(blk.Signatures))
		for i, sig := range blk.Signatures {
			txs[i] = types.BlockTransaction{ID: sig.String(), BlockHash: hash, BlockHeight: slot, Index: i}
		}

		return txs, nil
	}

	txs := make([]types.BlockTransaction, 0, len(blk.Transactions))

	for i, twm := range blk.Transactions {
		tx, err := twm.GetTransaction()
		if err != nil {
			return nil, fmt.Errorf("decode transaction %d of slot %d: %w", i, slot, err)
		}

		details := s.transaction(tx, twm.Meta, netName)
		details.BlockHash = hash
		details.BlockHeight = slot

		if blk.BlockTime != nil {
			details.Timestamp = int64(*blk.BlockTime)
		}

		txs = append(txs, types.BlockTransaction{ID: details.ID, BlockHash: hash, BlockHeight: slot, Index: i,
			Details: details})
	}

	return txs, nil
}

// SendRawTransaction broadcasts the signed transaction, encoded in base64 or base58, and returns its signature.
func (s *Solana) SendRawTransaction(ctx context.Context, netName string, req types.TransactionRequest) (string, error) {
	n, err := s.network(netName)
	if err != nil {
		return "", err
	}

	raw, err := decodeRaw(req.RawTx)
	if err != nil {
		return "", types.InvalidTransaction(fmt.Errorf("cannot decode raw transaction: %w", err))
	}

	if _, err = solana.TransactionFromDecoder(bin.NewBinDecoder(raw)); err != nil {
		return "", types.InvalidTransaction(fmt.Errorf("cannot decode raw transaction: %w", err))
	}

	return node.Write(ctx, n.node, "send_raw_transaction", func(ctx context.Context) (string, error) {
		sig, err := n.rpc.SendRawTransaction(ctx, raw)
		if err != nil {
			return "", classify(err, true)
		}

		return sig.String(), nil
	})
}

// GetCurrentHeight returns the latest finalized slot.
func (s *Solana) GetCurrentHeight(ctx context.Context, netName string) (*types.BlockHeightInfo, error) {
	n, err := s.network(netName)
	if err != nil {
		return nil, err
	}

	slot, err := node.Read(ctx, n.node, "get_slot", func(ctx context.Context) (uint64, error) {
		h, err := n.rpc.GetSlot(ctx, rpc.CommitmentFinalized)

		return h, classify(err, false)
	})
	if err != nil {
		return nil, err
	}

	return &types.BlockHeightInfo{Height: slot}, nil
}

// GetToken returns NotFound, SPL tokens are not served.
func (s *Solana) GetToken(_ context.Context, netName, token string) (*types.Token, error) {
	if _, err := s.network(netName); err != nil {
		return nil, err
	}

	return nil, types.NotFound(fmt.Errorf("%w: %s", types.ErrNoToken, token))
}

// GetAll returns no tokens.
func (s *Solana) GetAll(_ context.Context, netName string) ([]types.Token, error) {
	if _, err := s.network(netName); err != nil {
		return nil, err
	}

	return []types.Token{}, nil
}

// transaction maps a transaction and its execution metadata. The fee payer is the input, every account whose balance
// increased is an output.
func (s *Solana) transaction(tx *solana.Transaction, meta *rpc.TransactionMeta, netName string) *types.Transaction {
	out := &types.Transaction{
		Coin:    s.coin,
		Network: netName,
		Status:  types.TxConfirmed,
		Inputs:  []types.TxInput{},
		Outputs: []types.TxOutput{},
	}

	if len(tx.Signatures) > 0 {
		out.ID = tx.Signatures[0].String()
	}

	if meta == nil {
		return out
	}

	if meta.Err != nil {
		out.Status = types.TxFailed
	}

	out.Fee = sol(meta.Fee)

	keys := append(solana.PublicKeySlice{}, tx.Message.AccountKeys...)
	keys = append(keys, meta.LoadedAddresses.Writable...)
	keys = append(keys, meta.LoadedAddresses.ReadOnly...)

	for i := 0; i < len(keys) && i < len(meta.PreBalances) && i < len(meta.PostBalances); i++ {
		pre, post := meta.PreBalances[i], meta.PostBalances[i]

		switch {
		case i == 0:
			out.Inputs = append(out.Inputs, types.TxInput{Address: keys[i].String(), Value: sol(pre - min(pre, post))})
		case post > pre:
			out.Outputs = append(out.Outputs, types.TxOutput{
				Index:   uint32(len(out.Outputs)), //nolint:gosec // few outputs
				Address: keys[i].String(),
				Value:   sol(post - pre),
			})
		}
	}

	return out
}

func sol(lamports uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), lamportExp).String()
}

// decodeRaw decodes a serialized transaction encoded in base64, as solana nodes expect, or in base58.
func decodeRaw(raw string) ([]byte, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty payload")
	}

	if b, err := base64.StdEncoding.DecodeString(raw); err == nil {
		return b, nil
	}

	b, err := base58.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("neither base64 nor base58: %w", err)
	}

	return b, nil
}

// classify maps the errors of the rpc client to the gateway error kinds. Any error that is not a JSON-RPC error
// returned by the node is a transport error.
func classify(err error, sending bool) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, rpc.ErrNotFound) {
		return types.NotFound(err)
	}

	var rpcErr *jsonrpc.RPCError
	if !errors.As(err, &rpcErr) {
		return types.Network(err)
	}

	if sending {
		return types.InvalidTransaction(err)
	}

	switch rpcErr.Code {
	case rpcBlockNotAvailable, rpcSlotSkipped, rpcLongTermStorageGap:
		return types.NotFound(err)
	}

	return err
}
