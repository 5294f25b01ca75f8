package tracker

import (
	"context"
	"sync"

	mtype "github.com/tarancss/chaingate/lib/msg/types"
	"github.com/tarancss/chaingate/lib/store"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Store persists the tracked submissions. store.DB implements it.
	Store interface {
		SaveSubmission(ctx context.Context, s store.Submission) error
		UpdateSubmission(ctx context.Context, s store.Submission) error
		GetSubmissions(ctx context.Context, coin string, status store.Status) ([]store.Submission, error)
	}

	// Source delivers the submissions published by the gateway. msg.MsgBroker implements it.
	Source interface {
		GetSubmissions(ctx context.Context, coin string, mut *sync.Mutex) (<-chan mtype.Submission, <-chan error, error)
	}
)
