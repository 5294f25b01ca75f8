// Package ethereum implements the providers of ethereum-type chains.
package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net"
	"strings"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/tarancss/ethcli"

	"github.com/tarancss/chaingate/lib/block/node"
	"github.com/tarancss/chaingate/lib/block/types"
	"github.com/tarancss/chaingate/lib/config"
)

// ErrConnect is returned when a client to a node cannot be created.
var ErrConnect = errors.New("cannot connect to ethereum blockchain")

// nodeClient are the go-ethereum client calls used by the providers.
type nodeClient interface {
	HeaderByNumber(ctx context.Context, number *big.Int) (*gethtypes.Header, error)
	TransactionByHash(ctx context.Context, hash common.Hash) (tx *gethtypes.Transaction, isPending bool, err error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*gethtypes.Receipt, error)
	BlockByHash(ctx context.Context, hash common.Hash) (*gethtypes.Block, error)
	BlockReceipts(ctx context.Context, blockNrOrHash rpc.BlockNumberOrHash) ([]*gethtypes.Receipt, error)
	SendTransaction(ctx context.Context, tx *gethtypes.Transaction) error
	Close()
}

// blockReader are the ethcli calls used for raw blocks and ERC20 token metadata.
type blockReader interface {
	GetBlockByNumber(block uint64, full bool, response *map[string]interface{}) error
	GetTokenName(token string) (string, error)
	GetTokenSymbol(token string) (string, error)
	GetTokenDecimals(token string) (uint64, error)
	End()
}

// network contains the clients to the node of one network.
type network struct {
	name   string
	eth    nodeClient
	cli    blockReader
	node   *node.Client
	tokens []string
}

// Ethereum implements the providers of an ethereum-type coin over one node per network.
type Ethereum struct {
	coin types.Coin
	nets map[string]*network
}

// Init returns the providers of coin connected to the nodes of the given networks. A network's secret is the API key
// appended to its node url (ie. infura project ids). clients controls the calls made to each network's node.
func Init(ctx context.Context, coin types.Coin, nets []config.NetworkConfig,
	clients map[string]*node.Client) (*Ethereum, error) {
	e := &Ethereum{coin: coin, nets: make(map[string]*network, len(nets))}

	for _, n := range nets {
		endpoint := n.Node
		if n.Secret != "" {
			endpoint = strings.TrimSuffix(n.Node, "/") + "/" + n.Secret
		}

		eth, err := ethclient.DialContext(ctx, endpoint)
		if err != nil {
			e.Close()

			return nil, fmt.Errorf("%w in %s: %w", ErrConnect, n.Node, err)
		}

		cli := ethcli.Init(n.Node, n.Secret)
		if cli == nil {
			eth.Close()
			e.Close()

			return nil, fmt.Errorf("%w in %s", ErrConnect, n.Node)
		}

		nc := clients[n.Name]
		if nc == nil {
			nc = node.New(nil, 1, nil)
		}

		e.nets[n.Name] = &network{name: n.Name, eth: eth, cli: cli, node: nc, tokens: n.Tokens}
	}

	return e, nil
}

// Close ends the connections to the nodes.
func (e *Ethereum) Close() {
	for _, n := range e.nets {
		n.eth.Close()
		n.cli.End()
	}
}

func (e *Ethereum) network(name string) (*network, error) {
	n, ok := e.nets[name]
	if !ok {
		return nil, types.NotFound(fmt.Errorf("%w: %s %s", types.ErrUnknownNetwork, e.coin, name))
	}

	return n, nil
}

// GetTransactionByID returns the transaction with hash txID.
func (e *Ethereum) GetTransactionByID(ctx context.Context, netName, txID string) (*types.Transaction, error) {
	n, err := e.network(netName)
	if err != nil {
		return nil, err
	}

	hash, ok := parseHash(txID)
	if !ok {
		return nil, types.NotFound(fmt.Errorf("%w: %s", types.ErrNoTrx, txID))
	}

	type lookup struct {
		tx      *gethtypes.Transaction
		pending bool
	}

	res, err := node.Read(ctx, n.node, "transaction_by_hash", func(ctx context.Context) (lookup, error) {
		tx, pending, err := n.eth.TransactionByHash(ctx, hash)

		return lookup{tx, pending}, classify(err, false)
	})
	if err != nil {
		return nil, err
	}

	tx := e.transaction(res.tx, netName)
	if res.pending {
		return tx, nil
	}

	rcpt, err := node.Read(ctx, n.node, "transaction_receipt", func(ctx context.Context) (*gethtypes.Receipt, error) {
		r, err := n.eth.TransactionReceipt(ctx, hash)

		return r, classify(err, false)
	})
	if err != nil {
		return nil, err
	}

	applyReceipt(tx, rcpt)

	if rcpt.BlockNumber != nil {
		hdr, err := node.Read(ctx, n.node, "header_by_number", func(ctx context.Context) (*gethtypes.Header, error) {
			h, err := n.eth.HeaderByNumber(ctx, rcpt.BlockNumber)

			return h, classify(err, false)
		})
		if err != nil {
			return nil, err
		}

		tx.Timestamp = int64(hdr.Time) //nolint:gosec // block timestamps fit
	}

	return tx, nil
}

// GetTransactionsByBlock returns the transactions of the block with the given hash.
func (e *Ethereum) GetTransactionsByBlock(ctx context.Context, netName, blockHash string) ([]types.Transaction, error) {
	n, err := e.network(netName)
	if err != nil {
		return nil, err
	}

	hash, ok := parseHash(blockHash)
	if !ok {
		return nil, types.NotFound(fmt.Errorf("%w: %s", types.ErrNoBlock, blockHash))
	}

	blk, err := node.Read(ctx, n.node, "block_by_hash", func(ctx context.Context) (*gethtypes.Block, error) {
		b, err := n.eth.BlockByHash(ctx, hash)

		return b, classify(err, false)
	})
	if err != nil {
		return nil, err
	}

	receipts, err := e.receipts(ctx, n, rpc.BlockNumberOrHashWithHash(hash, false))
	if err != nil {
		return nil, err
	}

	txs := make([]types.Transaction, 0, len(blk.Transactions()))

	for _, t := range blk.Transactions() {
		tx := e.transaction(t, netName)
		tx.BlockHash = blk.Hash().Hex()
		tx.BlockHeight = blk.NumberU64()
		tx.Timestamp = int64(blk.Time()) //nolint:gosec // block timestamps fit
		tx.Status = types.TxConfirmed

		if r, ok := receipts[t.Hash()]; ok {
			applyReceipt(tx, r)
		}

		txs = append(txs, *tx)
	}

	return txs, nil
}

// GetTransactionsByBlockHeight returns the transactions of the block at height, with their details if includeDetails.
func (e *Ethereum) GetTransactionsByBlockHeight(ctx context.Context, netName string, height uint64,
	includeDetails bool) ([]types.BlockTransaction, error) {
	n, err := e.network(netName)
	if err != nil {
		return nil, err
	}

	raw, err := node.Read(ctx, n.node, "block_by_number", func(context.Context) (map[string]interface{}, error) {
		m := make(map[string]interface{})
		if err := n.cli.GetBlockByNumber(height, includeDetails, &m); err != nil {
			if errors.Is(err, ethcli.ErrNoBlock) {
				return nil, types.NotFound(fmt.Errorf("%w: %d", types.ErrNoBlock, height))
			}

			return nil, classify(err, false)
		}

		return m, nil
	})
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, types.NotFound(fmt.Errorf("%w: %d", types.ErrNoBlock, height))
	}

	hdr, err := decodeBlock(raw)
	if err != nil {
		return nil, err
	}

	txs, err := decodeTxs(raw, hdr, e.coin, netName)
	if err != nil || !includeDetails || len(txs) == 0 {
		return txs, err
	}

	receipts, err := e.receipts(ctx, n, rpc.BlockNumberOrHashWithHash(common.HexToHash(hdr.Hash), false))
	if err != nil {
		return nil, err
	}

	for _, tx := range txs {
		if r, ok := receipts[common.HexToHash(tx.ID)]; ok && tx.Details != nil {
			applyReceipt(tx.Details, r)
		}
	}

	return txs, nil
}

// SendRawTransaction broadcasts the hex encoded, signed transaction and returns its hash.
func (e *Ethereum) SendRawTransaction(ctx context.Context, netName string, req types.TransactionRequest) (string, error) {
	n, err := e.network(netName)
	if err != nil {
		return "", err
	}

	raw := req.RawTx
	if !strings.HasPrefix(raw, "0x") && !strings.HasPrefix(raw, "0X") {
		raw = "0x" + raw
	}

	b, err := hexutil.Decode(raw)
	if err != nil {
		return "", types.InvalidTransaction(fmt.Errorf("cannot decode raw transaction: %w", err))
	}

	tx := new(gethtypes.Transaction)
	if err = tx.UnmarshalBinary(b); err != nil {
		return "", types.InvalidTransaction(fmt.Errorf("cannot decode raw transaction: %w", err))
	}

	return node.Write(ctx, n.node, "send_raw_transaction", func(ctx context.Context) (string, error) {
		if err := n.eth.SendTransaction(ctx, tx); err != nil {
			return "", classify(err, true)
		}

		return tx.Hash().Hex(), nil
	})
}

// GetCurrentHeight returns the number and hash of the latest block.
func (e *Ethereum) GetCurrentHeight(ctx context.Context, netName string) (*types.BlockHeightInfo, error) {
	n, err := e.network(netName)
	if err != nil {
		return nil, err
	}

	hdr, err := node.Read(ctx, n.node, "header_by_number", func(ctx context.Context) (*gethtypes.Header, error) {
		h, err := n.eth.HeaderByNumber(ctx, nil)

		return h, classify(err, false)
	})
	if err != nil {
		return nil, err
	}

	return &types.BlockHeightInfo{Height: hdr.Number.Uint64(), Hash: hdr.Hash().Hex()}, nil
}

// receipts returns the receipts of the block by transaction hash. Nodes without eth_getBlockReceipts return none.
func (e *Ethereum) receipts(ctx context.Context, n *network,
	blk rpc.BlockNumberOrHash) (map[common.Hash]*gethtypes.Receipt, error) {
	rcpts, err := node.Read(ctx, n.node, "block_receipts", func(ctx context.Context) ([]*gethtypes.Receipt, error) {
		r, err := n.eth.BlockReceipts(ctx, blk)

		return r, classify(err, false)
	})
	if err != nil {
		if errors.Is(err, types.ErrNetwork) {
			return nil, err
		}

		return nil, nil
	}

	m := make(map[common.Hash]*gethtypes.Receipt, len(rcpts))
	for _, r := range rcpts {
		m[r.TxHash] = r
	}

	return m, nil
}

// transaction returns the view of t before it is located in a block.
func (e *Ethereum) transaction(t *gethtypes.Transaction, netName string) *types.Transaction {
	tx := &types.Transaction{
		ID:      t.Hash().Hex(),
		Coin:    e.coin,
		Network: netName,
		Status:  types.TxPending,
	}

	var to string
	if t.To() != nil {
		to = t.To().Hex()
	}

	tx.Inputs = []types.TxInput{{Address: sender(t), Value: ether(t.Value())}}

	out, err := decodeOutput(to, hexutil.Encode(t.Data()), t.Value().String())
	if err != nil {
		// malformed token call, report it as a plain contract call
		out = types.TxOutput{Address: to, Value: ether(t.Value()), Data: hexutil.Encode(t.Data())}
	}

	tx.Outputs = []types.TxOutput{out}

	return tx
}

func applyReceipt(tx *types.Transaction, r *gethtypes.Receipt) {
	if r == nil {
		return
	}

	if r.BlockHash != (common.Hash{}) {
		tx.BlockHash = r.BlockHash.Hex()
	}

	if r.BlockNumber != nil {
		tx.BlockHeight = r.BlockNumber.Uint64()
	}

	if r.Status == gethtypes.ReceiptStatusSuccessful {
		tx.Status = types.TxConfirmed
	} else {
		tx.Status = types.TxFailed
	}

	if r.EffectiveGasPrice != nil {
		fee := new(big.Int).SetUint64(r.GasUsed)
		tx.Fee = ether(fee.Mul(fee, r.EffectiveGasPrice))
	}
}

func sender(t *gethtypes.Transaction) string {
	from, err := gethtypes.Sender(gethtypes.LatestSignerForChainID(t.ChainId()), t)
	if err != nil {
		return ""
	}

	return from.Hex()
}

func parseHash(s string) (common.Hash, bool) {
	b, err := hexutil.Decode(s)
	if err != nil || len(b) != common.HashLength {
		return common.Hash{}, false
	}

	return common.BytesToHash(b), true
}

// classify maps the errors of the node clients to the gateway error kinds. Errors returned by the node for a
// transaction being sent mean the node rejected it.
// JSON-RPC error codes of a node that is throttling or failing, worth retrying on reads.
const (
	codeLimitExceeded = -32005
	codeInternal      = -32603
)

func classify(err error, sending bool) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, geth.NotFound) {
		return types.NotFound(err)
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return types.Network(err)
	}

	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) {
		return types.Network(err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return types.Network(err)
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		switch {
		case sending:
			return types.InvalidTransaction(err)
		case rpcErr.ErrorCode() == codeLimitExceeded || rpcErr.ErrorCode() == codeInternal:
			return types.Network(err)
		}
	}

	return err
}
