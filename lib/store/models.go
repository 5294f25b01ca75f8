package store

import "time"

// Status of a submission.
type Status string

// Submissions start pending and end confirmed or failed once mined, or dropped when never mined.
const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
	StatusDropped   Status = "dropped"
)

// Submission is a raw transaction broadcast through the gateway. Coin, Network and TxID identify it.
type Submission struct {
	Coin        string    `json:"coin" bson:"coin"`
	Network     string    `json:"network" bson:"network"`
	TxID        string    `json:"txId" bson:"txid"`
	RawTx       string    `json:"rawTx" bson:"rawtx"`
	Status      Status    `json:"status" bson:"status"`
	BlockHeight uint64    `json:"blockHeight" bson:"height"`
	Submitted   time.Time `json:"submitted" bson:"submitted"`
	Updated     time.Time `json:"updated" bson:"updated"`
}

// Key returns the identifier of the submission in its coin.
func (s Submission) Key() string {
	return s.Network + "/" + s.TxID
}

// Expired returns whether a pending submission is older than maxAge at now.
func (s Submission) Expired(now time.Time, maxAge time.Duration) bool {
	return s.Status == StatusPending && maxAge > 0 && now.Sub(s.Submitted) > maxAge
}
