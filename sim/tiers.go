package sim

// Tiers are the named fee-rate recommendations, in sat/vB. The json tags
// match the mempool.space fees/recommended response so that loader-supplied
// tiers pass through unchanged.
type Tiers struct {
	Fastest  float64 `json:"fastestFee" yaml:"fastestfee"`
	HalfHour float64 `json:"halfHourFee" yaml:"halfhourfee"`
	Hour     float64 `json:"hourFee" yaml:"hourfee"`
	Economy  float64 `json:"economyFee" yaml:"economyfee"`
	Minimum  float64 `json:"minimumFee" yaml:"minimumfee"`
}

// DeriveTiers computes tier rates from a fill, using the same fee-rate
// ordering as the fill itself: fastest is the lowest rate that still lands
// in block 1, halfHour the lowest landing within 3 blocks, hour within 6,
// economy anywhere. Minimum is economy floored at 1 sat/vB.
func DeriveTiers(blocks []*Block) Tiers {
	if len(blocks) == 0 {
		return Tiers{}
	}
	// Blocks and their txs are fee-rate ordered, so the lowest rate within
	// the first n blocks is the last tx of block n.
	low := func(n int) float64 {
		if n > len(blocks) {
			n = len(blocks)
		}
		txs := blocks[n-1].Txs()
		return txs[len(txs)-1].FeeRate
	}
	t := Tiers{
		Fastest:  low(1),
		HalfHour: low(3),
		Hour:     low(6),
		Economy:  low(len(blocks)),
	}
	t.Minimum = t.Economy
	if t.Minimum < 1 {
		t.Minimum = 1
	}
	return t
}
