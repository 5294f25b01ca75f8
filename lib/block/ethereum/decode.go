package ethereum

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"

	"github.com/tarancss/chaingate/lib/block/types"
)

// Ethereum ERC20 token methodID (keccak-256 of the function name and arguments)
const (
	ERC20transfer256     = "a9059cbb" // transfer(address,uint256)
	ERC20transferFrom256 = "23b872dd" // transferFrom(address,address,uint256)
	ERC20transfer        = "6cb927d8" // transfer(address,uint)
	ERC20transferFrom    = "a978501e" // transferFrom(address,address,uint)
)

// weiExp is the exponent converting wei into ether.
const weiExp = -18

// blockHeader contains the values of a block needed to locate its transactions.
type blockHeader struct {
	Hash   string
	Number uint64
	Ts     int64
}

// decodeBlock returns the header values of the block data returned by the node for eth_getBlockByNumber.
func decodeBlock(t interface{}) (b blockHeader, err error) {
	m, ok := t.(map[string]interface{})
	if !ok {
		return b, types.ErrBlockDecode
	}

	if b.Hash, ok = m["hash"].(string); !ok {
		return b, types.ErrNoHash
	}

	tmp, ok := m["number"].(string)
	if !ok {
		return b, types.ErrNoBlockNumber
	}

	if b.Number, err = hexutil.DecodeUint64(tmp); err != nil {
		return b, types.ErrNoBlockNumber
	}

	if tmp, ok = m["timestamp"].(string); !ok {
		return b, types.ErrNoTS
	}

	ts, err := hexutil.DecodeUint64(tmp)
	if err != nil {
		return b, types.ErrNoTS
	}

	b.Ts = int64(ts) //nolint:gosec // block timestamps fit

	return b, nil
}

// decodeTxs returns the transactions of the block data. If the block was requested with full transaction objects the
// entries carry the transaction details, otherwise only the identifying fields.
func decodeTxs(t interface{}, b blockHeader, coin types.Coin, network string) ([]types.BlockTransaction, error) {
	m, ok := t.(map[string]interface{})
	if !ok {
		return nil, types.ErrNoTrx
	}

	txList, ok := m["transactions"].([]interface{})
	if !ok {
		return nil, types.ErrNoTrx
	}

	txs := make([]types.BlockTransaction, len(txList))

	for i, entry := range txList {
		txs[i].BlockHash = b.Hash
		txs[i].BlockHeight = b.Number
		txs[i].Index = i

		switch v := entry.(type) {
		case string:
			txs[i].ID = v // only transaction hashes
		case map[string]interface{}:
			tx, err := decodeTx(v, b, coin, network)
			if err != nil {
				return nil, err
			}

			txs[i].ID = tx.ID
			txs[i].Details = tx
		default:
			return nil, types.ErrBlockDecode
		}
	}

	return txs, nil
}

// decodeTx returns the details of a full transaction object of a block.
func decodeTx(txObj map[string]interface{}, b blockHeader, coin types.Coin, network string) (*types.Transaction, error) {
	tx := &types.Transaction{
		Coin:        coin,
		Network:     network,
		BlockHash:   b.Hash,
		BlockHeight: b.Number,
		Timestamp:   b.Ts,
		Status:      types.TxConfirmed,
	}

	var ok bool

	if tx.ID, ok = txObj["hash"].(string); !ok {
		return nil, types.ErrNoTrxHash
	}

	from, ok := txObj["from"].(string)
	if !ok {
		return nil, types.ErrNoTrxFrom
	}

	input, ok := txObj["input"].(string)
	if !ok {
		return nil, types.ErrNoTrxInput
	}

	value, ok := txObj["value"].(string)
	if !ok {
		return nil, types.ErrNoTrxValue
	}

	amount, err := hexutil.DecodeBig(value)
	if err != nil {
		return nil, types.ErrNoTrxValue
	}

	to, _ := txObj["to"].(string) // empty on contract creation

	tx.Inputs = []types.TxInput{{Address: from, Value: ether(amount)}}

	out, err := decodeOutput(to, input, amount.String())
	if err != nil {
		// malformed token call, report it as a plain contract call
		out = types.TxOutput{Address: to, Value: ether(amount), Data: input}
	}

	tx.Outputs = []types.TxOutput{out}

	if tmp, okG := txObj["gas"].(string); okG {
		if price, okP := txObj["gasPrice"].(string); okP {
			tx.Fee = maxFee(tmp, price)
		}
	}

	return tx, nil
}

// decodeOutput returns the transfer of a transaction sent to address to with the given input data. Ether transfers
// keep the input as data, ERC20 transfers are decoded from it and carry the token contract. wei is the value of the
// transaction in wei.
func decodeOutput(to, input, wei string) (types.TxOutput, error) {
	out := types.TxOutput{Address: to}

	from, tokTo, tokValue, isToken, err := decodeTransfer(input)
	if err != nil {
		return out, err
	}

	if !isToken {
		// this is an ether transfer
		v, errD := decimal.NewFromString(wei)
		if errD != nil {
			return out, types.ErrNoTrxValue
		}

		out.Value = v.Shift(weiExp).String()

		if input != "0x" {
			out.Data = input
		}

		return out, nil
	}

	// token it's the smart contract address that comes in "to"
	out.Token = to
	out.Address = tokTo
	out.Value = tokValue

	if from != "" {
		out.Script = "transferFrom:" + from
	}

	return out, nil
}

// decodeTransfer decodes the input of an ERC20 transfer or transferFrom call. isToken is false for any other input.
// value is returned as a decimal string of token units.
func decodeTransfer(input string) (from, to, value string, isToken bool, err error) {
	input = strings.ToLower(input)
	if len(input) <= 10 {
		return "", "", "", false, nil
	}

	switch input[2:10] {
	case ERC20transfer, ERC20transfer256:
		if len(input) < 138 {
			return "", "", "", false, types.ErrTrxWrongLen
		}
		// to comes in "input" after 24 padded 0s
		to = "0x" + input[10+24:74]
		value = input[74:138]
	case ERC20transferFrom, ERC20transferFrom256:
		if len(input) < 202 {
			return "", "", "", false, types.ErrTrxWrongLen
		}
		// from comes in "input" after 24 padded 0s, then to after 24 padded 0s
		from = "0x" + input[10+24:74]
		to = "0x" + input[74+24:138]
		value = input[138:202]
	default:
		return "", "", "", false, nil
	}

	// value, trimming left zeroes
	value = strings.TrimLeft(value, "0")
	if value == "" {
		return from, to, "0", true, nil
	}

	v, err := hexutil.DecodeBig("0x" + value)
	if err != nil {
		return "", "", "", false, types.ErrTrxWrongLen
	}

	return from, to, v.String(), true, nil
}

// maxFee returns gas*price in ether. It is the maximum fee of the transaction, the gas consumed is in its receipt.
func maxFee(gas, price string) string {
	g, err := hexutil.DecodeBig(gas)
	if err != nil {
		return ""
	}

	p, err := hexutil.DecodeBig(price)
	if err != nil {
		return ""
	}

	return ether(g.Mul(g, p))
}

// ether returns wei in ether.
func ether(wei *big.Int) string {
	return decimal.NewFromBigInt(wei, weiExp).String()
}
