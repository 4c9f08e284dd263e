/*
Package collect turns an external mempool data source into the normalized
snapshots consumed by package sim: a list of representative pending
transactions plus, when the source supplies them, named fee-rate tiers.
*/
package collect

import (
	"fmt"

	"github.com/bitcoinfees/auctionsim/sim"
)

// Snapshot is one normalized observation of the pending-transaction queue.
// It is built fresh on each fetch and treated as immutable afterwards; the
// engine evaluates one hypothetical transaction against one Snapshot.
type Snapshot struct {
	// Representative pending transactions, in source priority order.
	Txs []*sim.Tx `json:"txs"`

	// Source-provided fee tiers; nil when the source has none, in which
	// case the engine derives tiers from the fill.
	Tiers *sim.Tiers `json:"tiers,omitempty"`

	// Unix fetch time in seconds.
	Time int64 `json:"time"`

	// Queue totals as reported by the source. PendingTxs counts the real
	// mempool transactions that the representative Txs stand in for.
	PendingTxs    int64 `json:"pendingtxs"`
	PendingBlocks int   `json:"pendingblocks"`
}

func (s *Snapshot) String() string {
	return fmt.Sprintf("Snapshot{txs: %d, pending: %d, blocks: %d, time: %d}",
		len(s.Txs), s.PendingTxs, s.PendingBlocks, s.Time)
}

// SnapshotGetter fetches the current snapshot from the data source.
type SnapshotGetter func() (*Snapshot, error)
