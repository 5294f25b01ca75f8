// Package db implements the opening and graceful closing of database connections.
package db

import (
	"context"
	"fmt"

	"github.com/tarancss/chaingate/lib/store"
	"github.com/tarancss/chaingate/lib/store/mongo"
	"github.com/tarancss/chaingate/lib/store/postgres"
)

// Database types
const (
	MONGODB  string = "mongo"
	POSTGRES string = "postgres"
)

// New returns a new database connection according to the options (database type). An empty type returns no database,
// submissions are then not recorded.
func New(ctx context.Context, options, connection string) (store.DB, error) {
	var (
		dh  store.DB
		err error
	)

	switch options {
	case MONGODB:
		dh, err = mongo.New(ctx, connection)
	case POSTGRES:
		dh, err = postgres.New(ctx, connection)
	case "":
		return nil, nil //nolint:nilnil // no database configured
	default:
		return nil, fmt.Errorf("unknown database type %q", options)
	}

	if err != nil {
		return nil, err
	}

	return dh, nil
}

// Close gracefully closes the database connection.
func Close(ctx context.Context, options string, dh store.DB) error {
	switch options {
	case MONGODB:
		return dh.(*mongo.Mongo).CloseMongo(ctx)
	case POSTGRES:
		return dh.(*postgres.Postgres).ClosePostgres()
	}

	return nil
}
