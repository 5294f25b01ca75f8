package tracker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tarancss/chaingate/lib/block"
	"github.com/tarancss/chaingate/lib/block/types"
	"github.com/tarancss/chaingate/lib/config"
	mtype "github.com/tarancss/chaingate/lib/msg/types"
	"github.com/tarancss/chaingate/lib/store"
	"github.com/tarancss/chaingate/tracker/pending"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// fakeChain serves the transactions in txs, keyed by network/txid. Unknown transactions are not found.
type fakeChain struct {
	txs map[string]*types.Transaction
	err map[string]error
}

func (f *fakeChain) GetTransactionByID(_ context.Context, network, txID string) (*types.Transaction, error) {
	k := network + "/" + txID
	if err, ok := f.err[k]; ok {
		return nil, err
	}

	if tx, ok := f.txs[k]; ok {
		return tx, nil
	}

	return nil, types.NotFound(types.ErrNoTrx)
}

func (f *fakeChain) GetTransactionsByBlock(context.Context, string, string) ([]types.Transaction, error) {
	return nil, types.NotFound(types.ErrNoBlock)
}

func (f *fakeChain) GetTransactionsByBlockHeight(context.Context, string, uint64,
	bool) ([]types.BlockTransaction, error) {
	return nil, types.NotFound(types.ErrNoBlock)
}

func (f *fakeChain) SendRawTransaction(context.Context, string, types.TransactionRequest) (string, error) {
	return "", types.InvalidTransaction(types.ErrUnsupported)
}

func (f *fakeChain) GetCurrentHeight(context.Context, string) (*types.BlockHeightInfo, error) {
	return &types.BlockHeightInfo{Height: 100}, nil
}

func (f *fakeChain) GetToken(context.Context, string, string) (*types.Token, error) {
	return nil, types.NotFound(types.ErrNoToken)
}

func (f *fakeChain) GetAll(context.Context, string) ([]types.Token, error) {
	return []types.Token{}, nil
}

func (f *fakeChain) Close() {}

func providers(t *testing.T, f *fakeChain) *block.Providers {
	t.Helper()

	p, err := block.FromBackend(f)
	require.NoError(t, err)

	return p
}

func submission(network, txID string, submitted time.Time) store.Submission {
	return store.Submission{Coin: "btc", Network: network, TxID: txID, Status: store.StatusPending,
		Submitted: submitted, Updated: submitted}
}

func newTracker(db Store, mb Source) *Tracker {
	tr := New(block.NewRegistry(), db, mb, config.TrackerConfig{Poll: time.Hour, MaxAge: time.Hour}, zap.NewNop())
	tr.now = func() time.Time { return t0.Add(90 * time.Minute) }

	return tr
}

func TestTracker_Poll(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	chain := &fakeChain{
		txs: map[string]*types.Transaction{
			"mainnet/mined":   {ID: "mined", BlockHeight: 840000, Status: types.TxConfirmed},
			"mainnet/failed":  {ID: "failed", BlockHeight: 840001, Status: types.TxFailed},
			"mainnet/mempool": {ID: "mempool", Status: types.TxPending},
		},
		err: map[string]error{"testnet/flaky": types.Network(errors.New("connection refused"))},
	}

	set := pending.New([]store.Submission{
		submission("mainnet", "mined", t0),
		submission("mainnet", "failed", t0),
		submission("mainnet", "mempool", t0),
		submission("mainnet", "fresh", t0.Add(time.Hour)),
		submission("mainnet", "stale", t0),
		submission("testnet", "flaky", t0),
	})

	db := NewMockStore(ctrl)
	resolved := map[string]store.Submission{}

	db.EXPECT().UpdateSubmission(gomock.Any(), gomock.Any()).Times(3).DoAndReturn(
		func(_ context.Context, s store.Submission) error {
			resolved[s.TxID] = s

			return nil
		})

	tr := newTracker(db, nil)
	tr.poll(context.Background(), types.BTC, providers(t, chain), set)

	require.Len(t, resolved, 3)
	assert.Equal(t, store.StatusConfirmed, resolved["mined"].Status)
	assert.Equal(t, uint64(840000), resolved["mined"].BlockHeight)
	assert.Equal(t, store.StatusFailed, resolved["failed"].Status)
	assert.Equal(t, store.StatusDropped, resolved["stale"].Status)
	assert.Equal(t, t0.Add(90*time.Minute), resolved["stale"].Updated)

	var left []string
	for _, s := range set.List() {
		left = append(left, s.Key())
	}

	// the mempool transaction is older than MaxAge but has been seen
	assert.Equal(t, []string{"mainnet/mempool", "testnet/flaky", "mainnet/fresh"}, left)
}

func TestTracker_Resolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(db *MockStore)
		pending int
	}{
		{
			name: "updated",
			setup: func(db *MockStore) {
				db.EXPECT().UpdateSubmission(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "saved when missing",
			setup: func(db *MockStore) {
				db.EXPECT().UpdateSubmission(gomock.Any(), gomock.Any()).Return(store.ErrDataNotFound)
				db.EXPECT().SaveSubmission(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "kept on store failure",
			setup: func(db *MockStore) {
				db.EXPECT().UpdateSubmission(gomock.Any(), gomock.Any()).Return(errors.New("no reachable servers"))
			},
			pending: 1,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			t.Cleanup(ctrl.Finish)

			db := NewMockStore(ctrl)
			tt.setup(db)

			s := submission("mainnet", "mined", t0)
			set := pending.New([]store.Submission{s})

			newTracker(db, nil).resolve(context.Background(), set, s, store.StatusConfirmed, 840000)
			assert.Equal(t, tt.pending, set.Len())
		})
	}
}

func TestTracker_ResolveWithoutStore(t *testing.T) {
	t.Parallel()

	s := submission("mainnet", "mined", t0)
	set := pending.New([]store.Submission{s})

	newTracker(nil, nil).resolve(context.Background(), set, s, store.StatusConfirmed, 840000)
	assert.Equal(t, 0, set.Len())
}

func TestTracker_ManageSubmissions(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	subCh := make(chan mtype.Submission)
	errCh := make(chan error)

	var mut *sync.Mutex

	mb := NewMockSource(ctrl)
	mb.EXPECT().GetSubmissions(gomock.Any(), "btc", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, m *sync.Mutex) (<-chan mtype.Submission, <-chan error, error) {
			mut = m

			return subCh, errCh, nil
		})

	set := pending.New(nil)
	require.NoError(t, newTracker(nil, mb).ManageSubmissions(context.Background(), types.BTC, set))

	// deliver as the brokers do: send, then wait for the consumer to unlock before acking
	deliver := func(s mtype.Submission) {
		subCh <- s

		mut.Lock()
	}

	deliver(mtype.Submission{Coin: "btc", Network: "mainnet", TxID: "f00d", Submitted: t0})
	deliver(mtype.Submission{Coin: "btc", Network: "mainnet", TxID: "f00d", Submitted: t0})
	deliver(mtype.Submission{Coin: "eth", Network: "mainnet", TxID: "0xbeef"})
	deliver(mtype.Submission{Coin: "btc", Network: "testnet", TxID: "cafe"})

	errCh <- errors.New("channel closed by server")

	close(subCh)
	close(errCh)

	subs := set.List()
	require.Len(t, subs, 2)
	assert.Equal(t, "mainnet/f00d", subs[0].Key())
	assert.Equal(t, store.StatusPending, subs[0].Status)
	assert.Equal(t, "testnet/cafe", subs[1].Key())
	assert.Equal(t, t0.Add(90*time.Minute), subs[1].Submitted)
}

func TestTracker_ManageSubmissionsError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mb := NewMockSource(ctrl)
	mb.EXPECT().GetSubmissions(gomock.Any(), "btc", gomock.Any()).Return(nil, nil, errors.New("channel/connection is not open"))

	err := newTracker(nil, mb).ManageSubmissions(context.Background(), types.BTC, pending.New(nil))
	require.ErrorContains(t, err, "cannot get submissions")
}

func TestTracker_TrackCoin(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	chain := &fakeChain{txs: map[string]*types.Transaction{
		"mainnet/mined": {ID: "mined", BlockHeight: 840000, Status: types.TxConfirmed},
	}}

	db := NewMockStore(ctrl)
	db.EXPECT().GetSubmissions(gomock.Any(), "btc", store.StatusPending).
		Return([]store.Submission{submission("mainnet", "mined", t0)}, nil)
	db.EXPECT().UpdateSubmission(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, store.Submission) error {
			cancel()

			return nil
		})

	require.NoError(t, newTracker(db, nil).TrackCoin(ctx, types.BTC, providers(t, chain)))
}

func TestTracker_Track(t *testing.T) {
	t.Parallel()

	reg := block.NewRegistry()
	require.NoError(t, reg.Register(types.BTC, providers(t, &fakeChain{})))
	require.NoError(t, reg.Register(types.LTC, providers(t, &fakeChain{})))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := New(reg, nil, nil, config.TrackerConfig{}, zap.NewNop())

	select {
	case res := <-tr.Track(ctx):
		assert.Equal(t, "Done!", res)
	case <-time.After(5 * time.Second):
		t.Fatal("tracker did not stop")
	}
}
