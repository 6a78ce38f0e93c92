package store_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeport/incentiviz/orm/testutil"
	"github.com/beeport/incentiviz/plot"
	"github.com/beeport/incentiviz/store"
	"github.com/beeport/incentiviz/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := testutil.NewMockDB()
	require.NoError(t, err)
	return store.New(db, discardLogger()), mock
}

func TestEventsByKind(t *testing.T) {
	st, mock := newStore(t)

	rows := sqlmock.NewRows([]string{"block_number", "log_index", "event_type", "price"}).
		AddRow(100, 0, "PriceUpdate", "24000").
		AddRow(110, 2, "PriceUpdate", "26000")

	mock.ExpectQuery(`SELECT \* FROM "storage_incentives_events" WHERE event_type = \$1 ORDER BY block_number, log_index`).
		WithArgs("PriceUpdate").
		WillReturnRows(rows)

	events, err := st.EventsByKind(context.Background(), types.EventPriceUpdate)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(100), events[0].BlockNumber)
	assert.Equal(t, "24000", events[0].Price)
	assert.Equal(t, int64(2), events[1].LogIndex)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventsByKindEmpty(t *testing.T) {
	st, mock := newStore(t)

	mock.ExpectQuery(`SELECT \* FROM "storage_incentives_events"`).
		WithArgs("ChunkCount").
		WillReturnRows(sqlmock.NewRows([]string{"block_number", "log_index", "event_type"}))

	events, err := st.EventsByKind(context.Background(), types.EventChunkCount)
	require.NoError(t, err)
	assert.Empty(t, events, "absent kind is empty, not an error")
}

func TestEventsByKindQueryError(t *testing.T) {
	st, mock := newStore(t)

	mock.ExpectQuery(`SELECT \* FROM "storage_incentives_events"`).
		WillReturnError(errors.New("connection reset"))

	_, err := st.EventsByKind(context.Background(), types.EventPriceUpdate)
	require.Error(t, err)
	assert.Equal(t, types.ErrTypeDatabase, types.TypeOf(err))
}

func TestEventsByKindAtAnchorBlocks(t *testing.T) {
	st, mock := newStore(t)

	rows := sqlmock.NewRows([]string{"block_number", "log_index", "event_type", "reveal_count"}).
		AddRow(120, 0, "CountReveals", 7)

	// The filter is a semi-join on block number against anchor blocks.
	mock.ExpectQuery(`WHERE event_type = \$1 AND block_number IN \(SELECT block_number FROM "storage_incentives_events" WHERE event_type = \$2\)`).
		WithArgs("CountReveals", "WinnerSelected").
		WillReturnRows(rows)

	events, err := st.EventsByKindAtAnchorBlocks(context.Background(), types.EventCountReveals, types.EventWinnerSelected)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(7), events[0].RevealCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKeysByKind(t *testing.T) {
	st, mock := newStore(t)

	rows := sqlmock.NewRows([]string{"block_number", "log_index"}).
		AddRow(100, 0).
		AddRow(100, 2).
		AddRow(105, 0)

	mock.ExpectQuery(`SELECT block_number, log_index FROM "storage_incentives_events" WHERE event_type = \$1 ORDER BY block_number, log_index`).
		WithArgs("WinnerSelected").
		WillReturnRows(rows)

	keys, err := st.KeysByKind(context.Background(), types.EventWinnerSelected)
	require.NoError(t, err)
	assert.Equal(t, []types.EventKey{
		{BlockNumber: 100, LogIndex: 0},
		{BlockNumber: 100, LogIndex: 2},
		{BlockNumber: 105, LogIndex: 0},
	}, keys)
}

// Store satisfies the pipeline's EventSource contract.
var _ plot.EventSource = (*store.Store)(nil)
