// Package store defines the interface for database implementations recording the submissions broadcast by the
// gateway and tracked by the tracker service.
package store

import (
	"context"
	"errors"
)

// DB defines required methods for the gateway and tracker services
type DB interface {
	// methods for gateway service
	SaveSubmission(ctx context.Context, s Submission) error
	// methods for tracker service
	UpdateSubmission(ctx context.Context, s Submission) error
	GetSubmissions(ctx context.Context, coin string, status Status) ([]Submission, error)
}

// Errors returned
var (
	ErrDataNotFound = errors.New("data was not found in store")
)
