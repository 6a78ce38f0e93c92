// Package store is the read side of the storage_incentives_events table.
// All retrievals are ordered by the composite (block_number, log_index) key so
// downstream aggregation can rely on a strict total order.
package store

import (
	"context"
	"log/slog"

	"github.com/beeport/incentiviz/orm"
	"github.com/beeport/incentiviz/types"
)

type Store struct {
	db     *orm.Database
	logger *slog.Logger
}

func New(db *orm.Database, logger *slog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.With("module", "store"),
	}
}

// EventsByKind returns all events of the given kind in composite key order.
// An absent kind yields an empty slice, not an error.
func (s *Store) EventsByKind(ctx context.Context, kind types.EventKind) ([]types.CollectedEvent, error) {
	var events []types.CollectedEvent
	if err := s.db.WithContext(ctx).
		Where("event_type = ?", string(kind)).
		Order("block_number, log_index").
		Find(&events).Error; err != nil {
		return nil, types.NewDatabaseError("query events", err)
	}
	return events, nil
}

// EventsByKindAtAnchorBlocks returns events of kind whose block number also
// hosts at least one event of anchorKind. The filter is a semi-join on block
// number alone; log-index ordering within the block does not matter.
func (s *Store) EventsByKindAtAnchorBlocks(ctx context.Context, kind, anchorKind types.EventKind) ([]types.CollectedEvent, error) {
	anchorBlocks := s.db.Model(&types.CollectedEvent{}).
		Select("block_number").
		Where("event_type = ?", string(anchorKind))

	var events []types.CollectedEvent
	if err := s.db.WithContext(ctx).
		Where("event_type = ? AND block_number IN (?)", string(kind), anchorBlocks).
		Order("block_number, log_index").
		Find(&events).Error; err != nil {
		return nil, types.NewDatabaseError("query anchored events", err)
	}
	return events, nil
}

// KeysByKind returns only the ordered composite keys of the given kind,
// used by the windowed aggregator.
func (s *Store) KeysByKind(ctx context.Context, kind types.EventKind) ([]types.EventKey, error) {
	var keys []types.EventKey
	if err := s.db.WithContext(ctx).
		Model(&types.CollectedEvent{}).
		Select("block_number, log_index").
		Where("event_type = ?", string(kind)).
		Order("block_number, log_index").
		Find(&keys).Error; err != nil {
		return nil, types.NewDatabaseError("query event keys", err)
	}
	return keys, nil
}
