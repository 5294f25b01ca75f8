// Package types common blockchain types shared by the gateway and the coin backends.
package types

import (
	"fmt"
)

// Coin identifies a blockchain. It is case-sensitive and is the key of the provider registry.
type Coin string

// Coins with a backend shipped in this module.
const (
	BTC Coin = "btc"
	LTC Coin = "ltc"
	DFI Coin = "dfi"
	ETH Coin = "eth"
	SOL Coin = "sol"
)

// Networks most backends are configured with. Any other name is passed through to the backend.
const (
	Mainnet = "mainnet"
	Testnet = "testnet"
)

// ParseCoin validates a coin identifier taken from a request. It only checks the shape of the identifier, whether a
// backend is registered for it is decided by the registry.
func ParseCoin(s string) (Coin, error) {
	if s == "" || len(s) > 16 {
		return "", UnknownCoin(fmt.Errorf("%w: %q", ErrUnknownCoin, s))
	}

	for _, c := range s {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_') {
			return "", UnknownCoin(fmt.Errorf("%w: %q", ErrUnknownCoin, s))
		}
	}

	return Coin(s), nil
}

// String implements fmt.Stringer.
func (c Coin) String() string {
	return string(c)
}

// Transaction status values.
const (
	TxPending   uint8 = 0
	TxFailed    uint8 = 1
	TxConfirmed uint8 = 2
)

// Transaction is the gateway's view of a transaction. Backends fill what their chain provides; UTXO chains use
// Inputs/Outputs with several entries, account chains a single input and output.
type Transaction struct {
	ID          string     `json:"txId"`
	Coin        Coin       `json:"coin"`
	Network     string     `json:"network"`
	BlockHash   string     `json:"blockHash,omitempty"`
	BlockHeight uint64     `json:"blockHeight"`
	Timestamp   int64      `json:"timestamp,omitempty"`
	Fee         string     `json:"fee,omitempty"`
	Status      uint8      `json:"status"`
	Inputs      []TxInput  `json:"inputs"`
	Outputs     []TxOutput `json:"outputs"`
}

// TxInput is a transaction input. For UTXO chains TxID/Vout point at the spent output.
type TxInput struct {
	TxID     string `json:"txId,omitempty"`
	Vout     uint32 `json:"vout"`
	Coinbase string `json:"coinbase,omitempty"`
	Address  string `json:"address,omitempty"`
	Value    string `json:"value,omitempty"`
}

// TxOutput is a transaction output or transfer.
type TxOutput struct {
	Index   uint32 `json:"n"`
	Address string `json:"address,omitempty"`
	Value   string `json:"value"`
	Token   string `json:"token,omitempty"`
	Script  string `json:"script,omitempty"`
	Data    string `json:"data,omitempty"`
}

// BlockTransaction is an entry of a block's transaction list. The summary projection only has the identifying fields,
// the detailed projection also carries Details.
type BlockTransaction struct {
	ID          string       `json:"txId"`
	BlockHash   string       `json:"blockHash"`
	BlockHeight uint64       `json:"blockHeight"`
	Index       int          `json:"index"`
	Details     *Transaction `json:"details,omitempty"`
}

// BlockHeightInfo contains the current tip of a chain.
type BlockHeightInfo struct {
	Height uint64 `json:"height"`
	Hash   string `json:"hash,omitempty"`
}

// Token is a blockchain asset.
type Token struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// TransactionRequest carries a signed, serialized transaction to broadcast.
type TransactionRequest struct {
	RawTx string `json:"rawTx"`
}

// TransactionResponse is returned after a successful broadcast.
type TransactionResponse struct {
	TxID string `json:"txId"`
}

// ErrorModel is the body of every error response.
type ErrorModel struct {
	Message string `json:"message"`
}
