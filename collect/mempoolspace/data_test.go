package mempoolspace

import (
	"encoding/json"
	"testing"

	"github.com/bitcoinfees/auctionsim/testutil"
)

func TestRepresentative(t *testing.T) {
	var blocks []MempoolBlock
	if err := json.Unmarshal(testutil.MempoolBlocksJSON, &blocks); err != nil {
		t.Fatal(err)
	}

	txs, err := Representative(blocks)
	if err != nil {
		t.Fatal(err)
	}
	// Five stand-ins per projected block.
	if err := testutil.CheckEqual(len(txs), 15); err != nil {
		t.Fatal(err)
	}

	// Block 1: avg vsize ceil(997000/2000) = 499; levels are max, 90th,
	// median, 25th, min of the fee range.
	ratesRef := []float64{120.5, 85.3, 45.2, 38.4, 32.1}
	for i, r := range ratesRef {
		if err := testutil.CheckEqual(txs[i].FeeRate, r); err != nil {
			t.Error(err)
		}
		if err := testutil.CheckEqual(txs[i].VSize, int64(499)); err != nil {
			t.Error(err)
		}
		if err := testutil.CheckEqual(txs[i].Weight, int64(499*4)); err != nil {
			t.Error(err)
		}
	}

	// Block 2: avg vsize ceil(998500/1800) = 555.
	if err := testutil.CheckEqual(txs[5].VSize, int64(555)); err != nil {
		t.Error(err)
	}
	if err := testutil.CheckEqual(txs[5].FeeRate, 32.0); err != nil {
		t.Error(err)
	}
	// Block 3 min level comes last.
	if err := testutil.CheckEqual(txs[14].FeeRate, 2.0); err != nil {
		t.Error(err)
	}
}

func TestRepresentativeSkipsUnusable(t *testing.T) {
	blocks := []MempoolBlock{
		{NTx: 0, BlockVSize: 1000, FeeRange: []float64{1, 2, 1, 1, 1, 2, 2}},
		{NTx: 10, BlockVSize: 0, FeeRange: []float64{1, 2, 1, 1, 1, 2, 2}},
		{NTx: 10, BlockVSize: 1000, FeeRange: []float64{1}},
		{NTx: 10, BlockVSize: 1000, MedianFee: 5, FeeRange: []float64{2, 9}},
	}
	txs, err := Representative(blocks)
	if err != nil {
		t.Fatal(err)
	}
	// Only the last block is usable; short fee ranges fall back to median
	// and min for the missing percentiles.
	if err := testutil.CheckEqual(len(txs), 5); err != nil {
		t.Fatal(err)
	}
	ratesRef := []float64{9, 5, 5, 2, 2}
	for i, r := range ratesRef {
		if err := testutil.CheckEqual(txs[i].FeeRate, r); err != nil {
			t.Error(err)
		}
	}
}
