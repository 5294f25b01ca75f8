// Package bitcoin implements the providers of bitcoin-family chains (btc, ltc, dfi) over their JSON-RPC nodes.
package bitcoin

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/rpcclient"
	"github.com/btcsuite/btcd/wire"

	"github.com/tarancss/chaingate/lib/block/node"
	"github.com/tarancss/chaingate/lib/block/types"
	"github.com/tarancss/chaingate/lib/config"
)

// Bitcoin Core RPC error codes reported by the nodes.
const (
	rpcInvalidAddressOrKey  btcjson.RPCErrorCode = -5
	rpcInvalidParameter     btcjson.RPCErrorCode = -8
	rpcDeserialization      btcjson.RPCErrorCode = -22
	rpcVerify               btcjson.RPCErrorCode = -25
	rpcVerifyRejected       btcjson.RPCErrorCode = -26
	rpcVerifyAlreadyInChain btcjson.RPCErrorCode = -27
)

// network contains the client to the node of one network.
type network struct {
	name    string
	rpc     rpcClient
	node    *node.Client
	decoder scriptDecoder
}

// Bitcoin implements the providers of a bitcoin-family coin.
type Bitcoin struct {
	coin types.Coin
	nets map[string]*network
}

// Init returns the providers of coin using the nodes of the given networks. Node is either host:port or an http(s)
// url. clients controls the calls made to each network's node.
func Init(coin types.Coin, nets []config.NetworkConfig, clients map[string]*node.Client) (*Bitcoin, error) {
	b := &Bitcoin{coin: coin, nets: make(map[string]*network, len(nets))}

	for _, n := range nets {
		c, err := newRPCClient(n.Node, n.User, n.Secret)
		if err != nil {
			b.Close()

			return nil, fmt.Errorf("network %s: %w", n.Name, err)
		}

		nc := clients[n.Name]
		if nc == nil {
			nc = node.New(nil, 1, nil)
		}

		b.nets[n.Name] = &network{name: n.Name, rpc: c, node: nc, decoder: newScriptDecoder(coin, n.Name)}
	}

	return b, nil
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	host, tls := rawURL, false

	if strings.Contains(rawURL, "://") {
		parsed, err := url.Parse(rawURL)
		if err != nil {
			return nil, fmt.Errorf("parse rpc url: %w", err)
		}

		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return nil, fmt.Errorf("rpc url scheme %q not supported, use http or https", parsed.Scheme)
		}

		host, tls = parsed.Host, parsed.Scheme == "https"
	}

	if host == "" {
		return nil, errors.New("rpc url missing host")
	}

	cfg := &rpcclient.ConnConfig{
		Host:         host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   !tls,
	}

	return rpcclient.New(cfg, nil)
}

// Close shuts down the node clients.
func (b *Bitcoin) Close() {
	for _, n := range b.nets {
		n.rpc.Shutdown()
	}
}

func (b *Bitcoin) network(name string) (*network, error) {
	n, ok := b.nets[name]
	if !ok {
		return nil, types.NotFound(fmt.Errorf("%w: %s %s", types.ErrUnknownNetwork, b.coin, name))
	}

	return n, nil
}

// GetTransactionByID returns the transaction txID. The node must index transactions (txindex) to find transactions
// that are not in its mempool.
func (b *Bitcoin) GetTransactionByID(ctx context.Context, netName, txID string) (*types.Transaction, error) {
	n, err := b.network(netName)
	if err != nil {
		return nil, err
	}

	hash, err := chainhash.NewHashFromStr(txID)
	if err != nil {
		return nil, types.NotFound(fmt.Errorf("%w: %s", types.ErrNoTrx, txID))
	}

	raw, err := node.Read(ctx, n.node, "get_raw_transaction", func(context.Context) (*btcjson.TxRawResult, error) {
		r, err := n.rpc.GetRawTransactionVerbose(hash)

		return r, classify(err, false)
	})
	if err != nil {
		return nil, err
	}

	var height uint64

	if raw.BlockHash != "" {
		bh, err := chainhash.NewHashFromStr(raw.BlockHash)
		if err != nil {
			return nil, fmt.Errorf("tx %s block hash: %w", txID, err)
		}

		hdr, err := node.Read(ctx, n.node, "get_block_header",
			func(context.Context) (*btcjson.GetBlockHeaderVerboseResult, error) {
				h, err := n.rpc.GetBlockHeaderVerbose(bh)

				return h, classify(err, false)
			})
		if err != nil {
			return nil, err
		}

		height = uint64(hdr.Height) //nolint:gosec // heights are positive
	}

	return n.decoder.transaction(raw, b.coin, netName, height)
}

// GetTransactionsByBlock returns the transactions of the block with the given hash.
func (b *Bitcoin) GetTransactionsByBlock(ctx context.Context, netName, blockHash string) ([]types.Transaction, error) {
	n, err := b.network(netName)
	if err != nil {
		return nil, err
	}

	hash, err := chainhash.NewHashFromStr(blockHash)
	if err != nil {
		return nil, types.NotFound(fmt.Errorf("%w: %s", types.ErrNoBlock, blockHash))
	}

	blk, err := b.blockVerboseTx(ctx, n, hash)
	if err != nil {
		return nil, err
	}

	details, err := b.blockTransactions(n, blk, netName)
	if err != nil {
		return nil, err
	}

	txs := make([]types.Transaction, len(details))
	for i, tx := range details {
		txs[i] = *tx
	}

	return txs, nil
}

// GetTransactionsByBlockHeight returns the transactions of the block at height, with their details if includeDetails.
func (b *Bitcoin) GetTransactionsByBlockHeight(ctx context.Context, netName string, height uint64,
	includeDetails bool) ([]types.BlockTransaction, error) {
	n, err := b.network(netName)
	if err != nil {
		return nil, err
	}

	if height > math.MaxInt64 {
		return nil, types.NotFound(fmt.Errorf("%w: %d", types.ErrNoBlock, height))
	}

	hash, err := node.Read(ctx, n.node, "get_block_hash", func(context.Context) (*chainhash.Hash, error) {
		h, err := n.rpc.GetBlockHash(int64(height))

		return h, classify(err, false)
	})
	if err != nil {
		return nil, err
	}

	if !includeDetails {
		blk, err := node.Read(ctx, n.node, "get_block", func(context.Context) (*btcjson.GetBlockVerboseResult, error) {
			r, err := n.rpc.GetBlockVerbose(hash)

			return r, classify(err, false)
		})
		if err != nil {
			return nil, err
		}

		txs := make([]types.BlockTransaction, len(blk.Tx))
		for i, id := range blk.Tx {
			txs[i] = types.BlockTransaction{ID: id, BlockHash: blk.Hash, BlockHeight: height, Index: i}
		}

		return txs, nil
	}

	blk, err := b.blockVerboseTx(ctx, n, hash)
	if err != nil {
		return nil, err
	}

	details, err := b.blockTransactions(n, blk, netName)
	if err != nil {
		return nil, err
	}

	txs := make([]types.BlockTransaction, len(details))
	for i, tx := range details {
		txs[i] = types.BlockTransaction{ID: tx.ID, BlockHash: blk.Hash, BlockHeight: height, Index: i, Details: tx}
	}

	return txs, nil
}

// blockTransactions maps the transactions of a verbose block, which the node returns without their block fields.
func (b *Bitcoin) blockTransactions(n *network, blk *btcjson.GetBlockVerboseTxResult,
	netName string) ([]*types.Transaction, error) {
	txs := make([]*types.Transaction, len(blk.Tx))

	for i := range blk.Tx {
		src := &blk.Tx[i]
		if src.BlockHash == "" {
			src.BlockHash = blk.Hash
		}

		if src.Blocktime == 0 {
			src.Blocktime = blk.Time
		}

		src.Confirmations = uint64(max(blk.Confirmations, 0)) //nolint:gosec // not negative

		tx, err := n.decoder.transaction(src, b.coin, netName, uint64(blk.Height)) //nolint:gosec // heights are positive
		if err != nil {
			return nil, err
		}

		txs[i] = tx
	}

	return txs, nil
}

func (b *Bitcoin) blockVerboseTx(ctx context.Context, n *network,
	hash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error) {
	return node.Read(ctx, n.node, "get_block_verbose_tx", func(context.Context) (*btcjson.GetBlockVerboseTxResult, error) {
		r, err := n.rpc.GetBlockVerboseTx(hash)

		return r, classify(err, false)
	})
}

// SendRawTransaction broadcasts the hex encoded, signed transaction and returns its id.
func (b *Bitcoin) SendRawTransaction(ctx context.Context, netName string, req types.TransactionRequest) (string, error) {
	n, err := b.network(netName)
	if err != nil {
		return "", err
	}

	raw, err := hex.DecodeString(strings.TrimSpace(req.RawTx))
	if err != nil || len(raw) == 0 {
		return "", types.InvalidTransaction(fmt.Errorf("cannot decode raw transaction: %w", errOrEmpty(err)))
	}

	msg := wire.NewMsgTx(wire.TxVersion)
	if err = msg.Deserialize(bytes.NewReader(raw)); err != nil {
		return "", types.InvalidTransaction(fmt.Errorf("cannot decode raw transaction: %w", err))
	}

	return node.Write(ctx, n.node, "send_raw_transaction", func(context.Context) (string, error) {
		h, err := n.rpc.SendRawTransaction(msg, false)
		if err != nil {
			return "", classify(err, true)
		}

		return h.String(), nil
	})
}

// GetCurrentHeight returns the height and hash of the best block.
func (b *Bitcoin) GetCurrentHeight(ctx context.Context, netName string) (*types.BlockHeightInfo, error) {
	n, err := b.network(netName)
	if err != nil {
		return nil, err
	}

	count, err := node.Read(ctx, n.node, "get_block_count", func(context.Context) (int64, error) {
		c, err := n.rpc.GetBlockCount()

		return c, classify(err, false)
	})
	if err != nil {
		return nil, err
	}

	hash, err := node.Read(ctx, n.node, "get_block_hash", func(context.Context) (*chainhash.Hash, error) {
		h, err := n.rpc.GetBlockHash(count)

		return h, classify(err, false)
	})
	if err != nil {
		return nil, err
	}

	return &types.BlockHeightInfo{Height: uint64(count), Hash: hash.String()}, nil //nolint:gosec // not negative
}

// GetToken returns NotFound, bitcoin-family chains have no tokens.
func (b *Bitcoin) GetToken(_ context.Context, netName, token string) (*types.Token, error) {
	if _, err := b.network(netName); err != nil {
		return nil, err
	}

	return nil, types.NotFound(fmt.Errorf("%w: %s", types.ErrNoToken, token))
}

// GetAll returns no tokens.
func (b *Bitcoin) GetAll(_ context.Context, netName string) ([]types.Token, error) {
	if _, err := b.network(netName); err != nil {
		return nil, err
	}

	return []types.Token{}, nil
}

func errOrEmpty(err error) error {
	if err != nil {
		return err
	}

	return errors.New("empty payload")
}

// classify maps the errors of the node client to the gateway error kinds. Any error that is not a JSON-RPC error
// returned by the node is a transport error.
func classify(err error, sending bool) error {
	if err == nil {
		return nil
	}

	var rpcErr *btcjson.RPCError
	if !errors.As(err, &rpcErr) {
		return types.Network(err)
	}

	switch rpcErr.Code {
	case rpcDeserialization, rpcVerify, rpcVerifyRejected, rpcVerifyAlreadyInChain:
		return types.InvalidTransaction(err)
	case rpcInvalidAddressOrKey, rpcInvalidParameter:
		if !sending {
			return types.NotFound(err)
		}
	}

	if sending {
		return types.InvalidTransaction(err)
	}

	return err
}
