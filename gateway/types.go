package gateway

import (
	"context"

	mtype "github.com/tarancss/chaingate/lib/msg/types"
	"github.com/tarancss/chaingate/lib/store"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE
//go:generate mockgen -destination=providers_mocks_test.go -package=$GOPACKAGE github.com/tarancss/chaingate/lib/block TransactionProvider,BlockProvider,TokenProvider

type (
	// SubmissionStore records the transactions broadcast through the gateway.
	SubmissionStore interface {
		SaveSubmission(ctx context.Context, s store.Submission) error
	}

	// SubmissionPublisher notifies the tracker service of the transactions broadcast through the gateway.
	SubmissionPublisher interface {
		SendSubmission(ctx context.Context, s mtype.Submission) error
	}
)
