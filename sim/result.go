package sim

import "time"

// Config holds the simulation knobs that are policy rather than protocol:
// the risk classification boundaries and the assumed inter-block interval.
type Config struct {
	Risk RiskThresholds `yaml:"risk" json:"risk"`

	// Average inter-block interval in seconds.
	BlockInterval int `yaml:"blockinterval" json:"blockinterval"`
}

// DefaultConfig returns the standard thresholds and a 10-minute interval.
func DefaultConfig() Config {
	return Config{
		Risk:          DefaultRiskThresholds,
		BlockInterval: int(DefaultBlockInterval / time.Second),
	}
}

// Result is the immutable outcome of one simulation run. All queue metrics
// are computed once during the run and cached here; the engine retains no
// reference to a Result after returning it.
type Result struct {
	// The hypothetical transaction as simulated.
	TxVSize   int64   `json:"txvsize"`
	TxWeight  int64   `json:"txweight"`
	TxFee     int64   `json:"txfee"`
	TxFeeRate float64 `json:"txfeerate"`

	// Queue position. Block numbers and ranks are 1-based; block 1 is the
	// next block to be mined.
	BlockNumber   int `json:"blocknumber"`
	BlockPosition int `json:"blockposition"`
	QueuePosition int `json:"queueposition"`
	TxsAhead      int `json:"txsahead"`

	// Fee comparison against the containing block. FeeDeltaPct is nil when
	// the block median is zero.
	BlockMedianFee float64  `json:"blockmedianfee"`
	FeeDelta       float64  `json:"feedelta"`
	FeeDeltaPct    *float64 `json:"feedeltapct,omitempty"`

	Risk        RiskLevel `json:"risk"`
	WaitMinutes int       `json:"waitminutes"`

	// Snapshot context.
	TotalTxs     int `json:"totaltxs"`
	TotalBlocks  int `json:"totalblocks"`
	NextBlockTxs int `json:"nextblocktxs"`

	// The full projected block sequence, for consumers that want more than
	// the cached metrics. Not part of the wire form.
	Blocks []*Block `json:"-"`
}

// Simulate inserts user into pool, fills projected blocks, and locates and
// classifies user's position. pool may be empty; the hypothetical
// transaction then forms a block of one. pool and user are treated as
// immutable for the duration of the run.
func Simulate(pool []*Tx, user *Tx, cfg Config) (*Result, error) {
	if user == nil {
		return nil, InvalidTxError{Reason: "nil transaction"}
	}

	all := make([]*Tx, 0, len(pool)+1)
	all = append(all, pool...)
	all = append(all, user)

	blocks, err := Fill(all)
	if err != nil {
		return nil, err
	}

	blockIdx, blockPos, queuePos, err := locate(blocks, user)
	if err != nil {
		return nil, err
	}

	median := blocks[blockIdx].MedianFeeRate()
	delta := user.FeeRate - median
	var deltaPct *float64
	if median > 0 {
		pct := delta / median * 100
		deltaPct = &pct
	}

	blockNumber := blockIdx + 1
	return &Result{
		TxVSize:   user.VSize,
		TxWeight:  user.Weight,
		TxFee:     user.Fee,
		TxFeeRate: user.FeeRate,

		BlockNumber:   blockNumber,
		BlockPosition: blockPos,
		QueuePosition: queuePos,
		TxsAhead:      queuePos - 1,

		BlockMedianFee: median,
		FeeDelta:       delta,
		FeeDeltaPct:    deltaPct,

		Risk:        cfg.Risk.Classify(blockNumber, user.FeeRate < median),
		WaitMinutes: int(WaitEstimate(blockNumber, time.Duration(cfg.BlockInterval)*time.Second).Minutes()),

		TotalTxs:     len(all),
		TotalBlocks:  len(blocks),
		NextBlockTxs: blocks[0].NumTxs(),

		Blocks: blocks,
	}, nil
}

// locate finds target in the fill output by identity, returning its block
// index, 1-based in-block rank, and 1-based overall queue position.
func locate(blocks []*Block, target *Tx) (blockIdx, blockPos, queuePos int, err error) {
	ahead := 0
	for i, b := range blocks {
		for j, tx := range b.txs {
			if tx == target {
				return i, j + 1, ahead + j + 1, nil
			}
		}
		ahead += len(b.txs)
	}
	return 0, 0, 0, ErrTxNotFound
}
