package types

// EventKind identifies a storage-incentives contract event type.
type EventKind string

const (
	EventPriceUpdate    EventKind = "PriceUpdate"
	EventWinnerSelected EventKind = "WinnerSelected"
	EventCountReveals   EventKind = "CountReveals"
	EventCountCommits   EventKind = "CountCommits"
	EventChunkCount     EventKind = "ChunkCount"
	EventStakeFrozen    EventKind = "StakeFrozen"
	EventPotWithdrawn   EventKind = "PotWithdrawn"
)

// CollectedEvent is one row of the storage_incentives_events table written by
// the chain indexer. Only the payload columns matching the event type are
// populated; numeric on-chain amounts are stored as decimal strings.
type CollectedEvent struct {
	BlockNumber    int64   `gorm:"type:bigint;primaryKey;autoIncrement:false;index:event_block_number"`
	LogIndex       int64   `gorm:"type:bigint;primaryKey;autoIncrement:false"`
	EventType      string  `gorm:"type:text;primaryKey;index:event_type"`
	TxHash         string  `gorm:"type:text"`
	Price          string  `gorm:"type:text"`
	FreezeTime     string  `gorm:"type:text"`
	RevealCount    int64   `gorm:"type:bigint"`
	CommitCount    int64   `gorm:"type:bigint"`
	ChunkCount     int64   `gorm:"type:bigint"`
	PotTotalAmount *string `gorm:"type:text"`
}

func (CollectedEvent) TableName() string {
	return "storage_incentives_events"
}

func (e CollectedEvent) Key() EventKey {
	return EventKey{BlockNumber: e.BlockNumber, LogIndex: e.LogIndex}
}

// EventKey is the composite ordering key of an event. Keys compare
// lexicographically by block number, then log index.
type EventKey struct {
	BlockNumber int64
	LogIndex    int64
}

// SentinelKey precedes every real event key and left-bounds the first
// aggregation window.
var SentinelKey = EventKey{BlockNumber: 0, LogIndex: -1}

func (k EventKey) Compare(other EventKey) int {
	switch {
	case k.BlockNumber < other.BlockNumber:
		return -1
	case k.BlockNumber > other.BlockNumber:
		return 1
	case k.LogIndex < other.LogIndex:
		return -1
	case k.LogIndex > other.LogIndex:
		return 1
	default:
		return 0
	}
}

func (k EventKey) Less(other EventKey) bool {
	return k.Compare(other) < 0
}

func (k EventKey) LessOrEqual(other EventKey) bool {
	return k.Compare(other) <= 0
}
