// Package postgres implements the interface for PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/tarancss/chaingate/lib/store"
)

const schema = `CREATE TABLE IF NOT EXISTS submissions (
	coin      TEXT NOT NULL,
	network   TEXT NOT NULL,
	txid      TEXT NOT NULL,
	rawtx     TEXT NOT NULL,
	status    TEXT NOT NULL,
	height    BIGINT NOT NULL DEFAULT 0,
	submitted TIMESTAMPTZ NOT NULL,
	updated   TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (coin, network, txid)
)`

const (
	saveQuery = `INSERT INTO submissions (coin, network, txid, rawtx, status, height, submitted, updated)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (coin, network, txid) DO UPDATE
SET rawtx = EXCLUDED.rawtx, status = EXCLUDED.status, height = EXCLUDED.height, submitted = EXCLUDED.submitted,
	updated = EXCLUDED.updated`
	updateQuery = `UPDATE submissions SET status = $4, height = $5, updated = $6
WHERE coin = $1 AND network = $2 AND txid = $3`
	selectQuery = `SELECT coin, network, txid, rawtx, status, height, submitted, updated FROM submissions
WHERE coin = $1 AND status = $2 ORDER BY submitted`
)

// Postgres implements a connection to a PostgreSQL database.
type Postgres struct {
	db *sql.DB
}

// New returns a postgres client connection to the specified database in 'connection' and creates the submissions
// table if missing.
func New(ctx context.Context, connection string) (*Postgres, error) {
	connector, err := pq.NewConnector(connection)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to DB in %s: %w", connection, err)
	}

	p := &Postgres{db: sql.OpenDB(connector)}

	if _, err = p.db.ExecContext(ctx, schema); err != nil {
		_ = p.db.Close()

		return nil, fmt.Errorf("cannot create submissions table: %w", describe(err))
	}

	return p, nil
}

// ClosePostgres will close any database connection. Must be called at termination time.
func (p *Postgres) ClosePostgres() error {
	return p.db.Close()
}

// SaveSubmission saves a submission, replacing any previous record of the same transaction.
func (p *Postgres) SaveSubmission(ctx context.Context, s store.Submission) error {
	_, err := p.db.ExecContext(ctx, saveQuery, s.Coin, s.Network, s.TxID, s.RawTx, string(s.Status),
		int64(s.BlockHeight), s.Submitted, s.Updated) //nolint:gosec // heights fit
	if err != nil {
		return fmt.Errorf("could not save submission %s in db: %w", s.TxID, describe(err))
	}

	return nil
}

// UpdateSubmission sets the status, block height and update time of a recorded submission.
func (p *Postgres) UpdateSubmission(ctx context.Context, s store.Submission) error {
	res, err := p.db.ExecContext(ctx, updateQuery, s.Coin, s.Network, s.TxID, string(s.Status),
		int64(s.BlockHeight), s.Updated) //nolint:gosec // heights fit
	if err != nil {
		return fmt.Errorf("could not update submission %s in db: %w", s.TxID, describe(err))
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("submission %s: %w", s.TxID, store.ErrDataNotFound)
	}

	return nil
}

// GetSubmissions returns the submissions of coin in the given status, oldest first.
func (p *Postgres) GetSubmissions(ctx context.Context, coin string, status store.Status) ([]store.Submission, error) {
	rows, err := p.db.QueryContext(ctx, selectQuery, coin, string(status))
	if err != nil {
		return nil, fmt.Errorf("error getting submissions of %s: %w", coin, describe(err))
	}
	defer rows.Close()

	subs := []store.Submission{}

	for rows.Next() {
		var (
			s      store.Submission
			st     string
			height int64
		)

		if err = rows.Scan(&s.Coin, &s.Network, &s.TxID, &s.RawTx, &st, &height, &s.Submitted, &s.Updated); err != nil {
			return nil, fmt.Errorf("error decoding submissions of %s: %w", coin, err)
		}

		s.Status, s.BlockHeight = store.Status(st), uint64(height) //nolint:gosec // not negative

		subs = append(subs, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error getting submissions of %s: %w", coin, describe(err))
	}

	return subs, nil
}

// describe adds the postgres error code to the errors reported by the server.
func describe(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s (%s): %w", pqErr.Code.Name(), pqErr.Code, err)
	}

	return err
}
