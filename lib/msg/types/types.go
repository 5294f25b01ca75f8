// Package types defines the messages exchanged through the message brokers.
package types

import "time"

// Submission is the event the gateway publishes after broadcasting a raw transaction, so that the tracker follows it
// until it is mined.
type Submission struct {
	Coin      string    `json:"coin"`
	Network   string    `json:"network"`
	TxID      string    `json:"txId"`
	Submitted time.Time `json:"submitted"`
}

// Key returns the routing key of the submission: coin.network.txid.
func (s Submission) Key() string {
	return s.Coin + "." + s.Network + "." + s.TxID
}
