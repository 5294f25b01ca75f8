package bitcoin

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/shopspring/decimal"

	"github.com/tarancss/chaingate/lib/block/types"
)

// satoshiExp is the exponent converting satoshis into coins.
const satoshiExp = -8

// scriptDecoder extracts human-readable addresses from ScriptPubKey results. Without params only the addresses
// reported by the node are used.
type scriptDecoder struct {
	params *chaincfg.Params
}

// newScriptDecoder returns the decoder of the network. Only bitcoin networks have params, the other coins rely on the
// addresses reported by their nodes.
func newScriptDecoder(coin types.Coin, network string) scriptDecoder {
	if coin != types.BTC {
		return scriptDecoder{}
	}

	switch strings.ToLower(network) {
	case "main", "mainnet", "bitcoin":
		return scriptDecoder{params: &chaincfg.MainNetParams}
	case "test", "testnet", "testnet3":
		return scriptDecoder{params: &chaincfg.TestNet3Params}
	case "regtest":
		return scriptDecoder{params: &chaincfg.RegressionNetParams}
	case "signet":
		return scriptDecoder{params: &chaincfg.SigNetParams}
	default:
		return scriptDecoder{}
	}
}

func (d scriptDecoder) decodeAddress(vout btcjson.Vout) string {
	if vout.ScriptPubKey.Address != "" {
		return vout.ScriptPubKey.Address
	}

	if len(vout.ScriptPubKey.Addresses) > 0 {
		return strings.Join(vout.ScriptPubKey.Addresses, ",")
	}

	if d.params == nil || vout.ScriptPubKey.Hex == "" {
		return ""
	}

	script, err := hex.DecodeString(vout.ScriptPubKey.Hex)
	if err != nil {
		return ""
	}

	_, addrs, _, err := txscript.ExtractPkScriptAddrs(script, d.params)
	if err != nil {
		return ""
	}

	res := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		res = append(res, addr.EncodeAddress())
	}

	return strings.Join(res, ",")
}

// amount returns value, in coins as reported by the node, as an exact decimal string.
func amount(value float64) (string, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return "", fmt.Errorf("amount %v: %w", value, err)
	}

	return decimal.New(int64(amt), satoshiExp).String(), nil
}

// transaction maps a verbose transaction of the node.
func (d scriptDecoder) transaction(src *btcjson.TxRawResult, coin types.Coin, network string,
	height uint64) (*types.Transaction, error) {
	tx := &types.Transaction{
		ID:          src.Txid,
		Coin:        coin,
		Network:     network,
		BlockHash:   src.BlockHash,
		BlockHeight: height,
		Timestamp:   src.Blocktime,
		Status:      types.TxPending,
		Inputs:      make([]types.TxInput, 0, len(src.Vin)),
		Outputs:     make([]types.TxOutput, 0, len(src.Vout)),
	}

	if src.Confirmations > 0 {
		tx.Status = types.TxConfirmed
	}

	for _, in := range src.Vin {
		tx.Inputs = append(tx.Inputs, types.TxInput{TxID: in.Txid, Vout: in.Vout, Coinbase: in.Coinbase})
	}

	for _, out := range src.Vout {
		v, err := amount(out.Value)
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d: %w", src.Txid, out.N, err)
		}

		tx.Outputs = append(tx.Outputs, types.TxOutput{
			Index:   out.N,
			Address: d.decodeAddress(out),
			Value:   v,
			Script:  out.ScriptPubKey.Type,
		})
	}

	return tx, nil
}
