/*
Package sim replays the blockspace auction over a mempool snapshot.

The input to a simulation is the pool of pending transactions (type []*Tx)
plus one hypothetical transaction to evaluate. Miners are assumed to include
transactions greedily by fee rate, considering each transaction in isolation
(i.e. no child-pays-for-parent), subject to the block weight limit. That is
a deliberate simplification of real miner behavior, which also weighs
ancestor/descendant fee packages.

The output is the ordered sequence of projected blocks, and a Result that
locates the hypothetical transaction in that sequence: its block number, its
rank, the fee-rate gap to the block median, and a risk classification of the
projected wait.

A simulation run is one pure computation over the snapshot; the package
holds no state between runs and is safe for concurrent use with independent
inputs.
*/
package sim

import "sort"

// Block is an ordered run of transactions assigned to one projected block.
// The weight sum never exceeds MaxBlockWeight, except when a single
// transaction exceeds the limit by itself, in which case it occupies the
// block alone.
type Block struct {
	txs    []*Tx
	weight int64
}

// Txs returns the block's transactions in fee-rate order.
func (b *Block) Txs() []*Tx {
	return b.txs
}

// NumTxs returns the number of transactions in the block.
func (b *Block) NumTxs() int {
	return len(b.txs)
}

// Weight returns the block's total weight in weight units.
func (b *Block) Weight() int64 {
	return b.weight
}

// MedianFeeRate returns the median fee rate of the block's transactions,
// averaging the two central values for even counts. Zero for an empty
// block.
func (b *Block) MedianFeeRate() float64 {
	n := len(b.txs)
	if n == 0 {
		return 0
	}
	// txs are fee-rate ordered, so the median is positional.
	if n%2 == 1 {
		return b.txs[n/2].FeeRate
	}
	return (b.txs[n/2-1].FeeRate + b.txs[n/2].FeeRate) / 2
}

// Fill assigns txs to projected blocks the way a revenue-maximizing miner
// would: a stable sort by fee rate descending, then a single greedy pass
// against MaxBlockWeight. Ties in fee rate keep their input (snapshot)
// order, so repeated runs over the same input produce identical blocks.
//
// A transaction whose own weight exceeds MaxBlockWeight is placed alone in
// its own block rather than dropped. Every input transaction appears in the
// output exactly once.
func Fill(txs []*Tx) ([]*Block, error) {
	if len(txs) == 0 {
		return nil, ErrEmptyPool
	}

	ordered := make([]*Tx, len(txs))
	copy(ordered, txs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].FeeRate > ordered[j].FeeRate
	})

	var blocks []*Block
	cur := new(Block)
	for _, tx := range ordered {
		if len(cur.txs) > 0 && cur.weight+tx.Weight > MaxBlockWeight {
			blocks = append(blocks, cur)
			cur = new(Block)
		}
		cur.txs = append(cur.txs, tx)
		cur.weight += tx.Weight
	}
	return append(blocks, cur), nil
}
