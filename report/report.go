// Package report renders simulation results as plain text for terminal
// display.
package report

import (
	"fmt"
	"io"

	"github.com/bitcoinfees/auctionsim/sim"
)

// Render writes a human-readable account of a simulation result to w.
func Render(w io.Writer, r *sim.Result) {
	fmt.Fprintln(w, "BLOCKSPACE AUCTION SIMULATION")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Your transaction:")
	fmt.Fprintf(w, "  Size     : %d vBytes (%d weight units)\n", r.TxVSize, r.TxWeight)
	fmt.Fprintf(w, "  Fee rate : %.1f sat/vB\n", r.TxFeeRate)
	fmt.Fprintf(w, "  Total fee: %d sats\n", r.TxFee)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Projected position:")
	fmt.Fprintf(w, "  Block number     : #%d of %d (next block = #1)\n", r.BlockNumber, r.TotalBlocks)
	fmt.Fprintf(w, "  Position in block: #%d\n", r.BlockPosition)
	fmt.Fprintf(w, "  Queue position   : #%d (%d transactions ahead)\n", r.QueuePosition, r.TxsAhead)
	fmt.Fprintf(w, "  Estimated wait   : ~%d minutes\n", r.WaitMinutes)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Confirmation risk: %s\n", r.Risk)
	fmt.Fprintf(w, "  %s\n", Explanation(r))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Fee analysis:")
	fmt.Fprintf(w, "  Your fee rate: %.1f sat/vB\n", r.TxFeeRate)
	fmt.Fprintf(w, "  Block median : %.1f sat/vB\n", r.BlockMedianFee)
	if r.FeeDeltaPct != nil {
		fmt.Fprintf(w, "  Difference   : %+.1f sat/vB (%+.1f%%)\n", r.FeeDelta, *r.FeeDeltaPct)
	} else {
		fmt.Fprintf(w, "  Difference   : %+.1f sat/vB\n", r.FeeDelta)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Mempool context:")
	fmt.Fprintf(w, "  Total transactions: %d\n", r.TotalTxs)
	fmt.Fprintf(w, "  Projected blocks  : %d\n", r.TotalBlocks)
	fmt.Fprintf(w, "  Next block size   : %d transactions\n", r.NextBlockTxs)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Note: estimates are based on the current mempool snapshot. Actual")
	fmt.Fprintln(w, "confirmation time may vary as new transactions enter the mempool.")
}

// Explanation returns a short account of the result's risk classification.
func Explanation(r *sim.Result) string {
	switch r.Risk {
	case sim.RiskLow:
		return fmt.Sprintf("Your transaction is projected for the next block with a fee "+
			"rate of %.1f sat/vB, at or above the block median of %.1f sat/vB. "+
			"There are %d transactions ahead of yours, but your fee rate is competitive.",
			r.TxFeeRate, r.BlockMedianFee, r.TxsAhead)
	case sim.RiskMedium:
		return fmt.Sprintf("Your transaction is projected for block %d (~%d minutes). "+
			"Your fee rate of %.1f sat/vB is competitive but there are %d higher-paying "+
			"transactions ahead. Confirmation is likely but not guaranteed in the next block.",
			r.BlockNumber, r.WaitMinutes, r.TxFeeRate, r.TxsAhead)
	case sim.RiskHigh:
		return fmt.Sprintf("Your transaction is projected for block %d (~%d minutes). "+
			"Your fee rate of %.1f sat/vB is below the current competitive range, with %d "+
			"higher-paying transactions ahead. If congestion increases, your transaction "+
			"may be pushed further back.",
			r.BlockNumber, r.WaitMinutes, r.TxFeeRate, r.TxsAhead)
	default:
		return fmt.Sprintf("Your transaction is projected for block %d or later "+
			"(~%d+ minutes). Your fee rate of %.1f sat/vB is significantly below "+
			"competitive rates, with %d transactions ahead. There is a high risk of "+
			"delayed confirmation; consider replace-by-fee if time-sensitive.",
			r.BlockNumber, r.WaitMinutes, r.TxFeeRate, r.TxsAhead)
	}
}

// RenderTiers writes the recommended fee tiers to w.
func RenderTiers(w io.Writer, t *sim.Tiers) {
	fmt.Fprintln(w, "RECOMMENDED FEE RATES (sat/vB)")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Fastest (next block)  : %6.1f\n", t.Fastest)
	fmt.Fprintf(w, "  Half hour (~3 blocks) : %6.1f\n", t.HalfHour)
	fmt.Fprintf(w, "  One hour (~6 blocks)  : %6.1f\n", t.Hour)
	fmt.Fprintf(w, "  Economy (low priority): %6.1f\n", t.Economy)
	fmt.Fprintf(w, "  Minimum (enter pool)  : %6.1f\n", t.Minimum)
}
