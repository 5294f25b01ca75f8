// Package msg defines the interface for different message brokers.
package msg

import (
	"context"
	"sync"

	mtype "github.com/tarancss/chaingate/lib/msg/types"
)

// MsgBroker is a message broker carrying submission events from the gateway to the tracker.
type MsgBroker interface {
	Setup(ctx context.Context) error
	Close() error

	// methods for gateway service
	SendSubmission(ctx context.Context, s mtype.Submission) error

	// methods for tracker service

	// GetSubmissions consumes the submissions of coin pushing them to the returned channel. The mutex must be locked
	// by the caller and is locked again by the broker after every message delivered, so a message is only
	// acknowledged once the caller unlocks it after dealing with it.
	GetSubmissions(ctx context.Context, coin string, mut *sync.Mutex) (<-chan mtype.Submission, <-chan error, error)
}
