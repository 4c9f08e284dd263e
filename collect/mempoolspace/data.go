package mempoolspace

import (
	"math"

	"github.com/bitcoinfees/auctionsim/sim"
)

// MempoolBlock is one projected block from the fees/mempool-blocks
// endpoint. FeeRange holds [min, max, 10th, 25th, 50th, 75th, 90th]
// percentile fee rates in sat/vB.
type MempoolBlock struct {
	BlockSize  int64     `json:"blockSize"`
	BlockVSize float64   `json:"blockVSize"`
	NTx        int64     `json:"nTx"`
	TotalFees  int64     `json:"totalFees"`
	MedianFee  float64   `json:"medianFee"`
	FeeRange   []float64 `json:"feeRange"`
}

// Recommended is the fees/recommended response.
type Recommended struct {
	FastestFee  float64 `json:"fastestFee"`
	HalfHourFee float64 `json:"halfHourFee"`
	HourFee     float64 `json:"hourFee"`
	EconomyFee  float64 `json:"economyFee"`
	MinimumFee  float64 `json:"minimumFee"`
}

// Tiers converts the response into the engine's tier form.
func (r *Recommended) Tiers() sim.Tiers {
	return sim.Tiers{
		Fastest:  r.FastestFee,
		HalfHour: r.HalfHourFee,
		Hour:     r.HourFee,
		Economy:  r.EconomyFee,
		Minimum:  r.MinimumFee,
	}
}

// Fee-range indices, per the endpoint's layout.
const (
	frMin = iota
	frMax
	frP10
	frP25
	frP50
	frP75
	frP90
)

// Representative flattens projected blocks into representative
// transactions for the simulation. The endpoint aggregates; per block we
// emit five stand-in transactions of average vsize at the max, 90th,
// median, 25th and min fee levels, in that (priority) order. Blocks with
// no usable fee range are skipped.
func Representative(blocks []MempoolBlock) ([]*sim.Tx, error) {
	var txs []*sim.Tx
	for _, b := range blocks {
		if len(b.FeeRange) < 2 || b.NTx == 0 || b.BlockVSize <= 0 {
			continue
		}

		median := b.MedianFee
		if median == 0 && len(b.FeeRange) > frP50 {
			median = b.FeeRange[frP50]
		}
		levels := []float64{
			b.FeeRange[frMax],
			pick(b.FeeRange, frP90, median),
			median,
			pick(b.FeeRange, frP25, b.FeeRange[frMin]),
			b.FeeRange[frMin],
		}

		avgVSize := int64(math.Ceil(b.BlockVSize / float64(b.NTx)))
		for _, feeRate := range levels {
			tx, err := sim.NewTxRate(avgVSize, feeRate)
			if err != nil {
				return nil, err
			}
			txs = append(txs, tx)
		}
	}
	return txs, nil
}

func pick(feeRange []float64, i int, fallback float64) float64 {
	if i < len(feeRange) {
		return feeRange[i]
	}
	return fallback
}
