package sim

import (
	"math/rand"
	"testing"

	"github.com/bitcoinfees/auctionsim/testutil"
)

func TestVirtualSize(t *testing.T) {
	// vsize = ceil((3*base + total) / 4), never floor
	if err := testutil.CheckEqual(VirtualSize(100, 100), int64(100)); err != nil {
		t.Error(err)
	}
	if err := testutil.CheckEqual(VirtualSize(100, 101), int64(101)); err != nil {
		t.Error(err)
	}
	if err := testutil.CheckEqual(VirtualSize(100, 200), int64(125)); err != nil {
		t.Error(err)
	}
	if err := testutil.CheckEqual(VirtualSize(0, 0), int64(0)); err != nil {
		t.Error(err)
	}

	tx, err := NewTx(100, 200, 5000)
	if err != nil {
		t.Fatal(err)
	}
	if err := testutil.CheckEqual(tx.VSize, int64(125)); err != nil {
		t.Error(err)
	}
	if err := testutil.CheckEqual(tx.Weight, tx.VSize*4); err != nil {
		t.Error(err)
	}
	if err := testutil.CheckEqual(tx.FeeRate, float64(5000)/125); err != nil {
		t.Error(err)
	}
}

func TestNewTxErrors(t *testing.T) {
	cases := []struct {
		base, total, fee int64
	}{
		{-1, 0, 0},   // negative base
		{100, 99, 0}, // total < base
		{100, 100, -1},
		{0, 0, 100}, // zero vsize
	}
	for _, c := range cases {
		if _, err := NewTx(c.base, c.total, c.fee); err == nil {
			t.Errorf("NewTx(%d, %d, %d): expected error", c.base, c.total, c.fee)
		} else if _, ok := err.(InvalidTxError); !ok {
			t.Errorf("NewTx(%d, %d, %d): expected InvalidTxError, got %v",
				c.base, c.total, c.fee, err)
		}
	}

	if _, err := NewTxRate(0, 10); err == nil {
		t.Error("NewTxRate with zero vsize: expected error")
	}
	if _, err := NewTxRate(100, -1); err == nil {
		t.Error("NewTxRate with negative fee rate: expected error")
	}
}

func TestFillEmpty(t *testing.T) {
	if _, err := Fill(nil); err != ErrEmptyPool {
		t.Errorf("expected ErrEmptyPool, got %v", err)
	}
}

func TestFillInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 50; trial++ {
		n := 1 + rng.Intn(500)
		txs := make([]*Tx, n)
		for i := range txs {
			vsize := int64(100 + rng.Intn(200000))
			tx, err := NewTxRate(vsize, float64(rng.Intn(200)))
			if err != nil {
				t.Fatal(err)
			}
			txs[i] = tx
		}

		blocks, err := Fill(txs)
		if err != nil {
			t.Fatal(err)
		}

		// No tx dropped or duplicated
		seen := make(map[*Tx]bool)
		count := 0
		for _, b := range blocks {
			for _, tx := range b.Txs() {
				if seen[tx] {
					t.Fatal("duplicated tx in fill output")
				}
				seen[tx] = true
				count++
			}
		}
		if err := testutil.CheckEqual(count, n); err != nil {
			t.Fatal(err)
		}

		// Weight invariant: a block exceeds the limit only when it holds a
		// single oversized tx.
		for _, b := range blocks {
			if b.Weight() > MaxBlockWeight && b.NumTxs() != 1 {
				t.Fatalf("block weight %d over limit with %d txs",
					b.Weight(), b.NumTxs())
			}
		}
	}
}

func TestFillDeterminism(t *testing.T) {
	// Ties in fee rate keep snapshot order.
	txs := make([]*Tx, 6)
	for i := range txs {
		tx, err := NewTxRate(int64(100+i), 25)
		if err != nil {
			t.Fatal(err)
		}
		txs[i] = tx
	}

	first, err := Fill(txs)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Fill(txs)
	if err != nil {
		t.Fatal(err)
	}

	if err := testutil.CheckEqual(len(first), 1); err != nil {
		t.Fatal(err)
	}
	for i, tx := range first[0].Txs() {
		if tx != txs[i] {
			t.Errorf("tie-break changed snapshot order at %d", i)
		}
		if tx != second[0].Txs()[i] {
			t.Errorf("repeated fill differs at %d", i)
		}
	}
}

func TestFillOversized(t *testing.T) {
	big, err := NewTxRate(1000001, 50) // weight 4000004
	if err != nil {
		t.Fatal(err)
	}
	small1, err := NewTxRate(100, 40)
	if err != nil {
		t.Fatal(err)
	}
	small2, err := NewTxRate(100, 30)
	if err != nil {
		t.Fatal(err)
	}

	blocks, err := Fill([]*Tx{small2, big, small1})
	if err != nil {
		t.Fatal(err)
	}
	if err := testutil.CheckEqual(len(blocks), 2); err != nil {
		t.Fatal(err)
	}
	// The oversized tx occupies block 1 alone; everything else spills to
	// block 2 regardless of weight.
	if err := testutil.CheckEqual(blocks[0].NumTxs(), 1); err != nil {
		t.Error(err)
	}
	if blocks[0].Txs()[0] != big {
		t.Error("oversized tx not alone in block 1")
	}
	if err := testutil.CheckEqual(blocks[1].NumTxs(), 2); err != nil {
		t.Error(err)
	}
}

func TestMedianFeeRate(t *testing.T) {
	mkblock := func(rates ...float64) *Block {
		b := new(Block)
		for _, r := range rates {
			tx, err := NewTxRate(100, r)
			if err != nil {
				t.Fatal(err)
			}
			b.txs = append(b.txs, tx)
			b.weight += tx.Weight
		}
		return b
	}

	if err := testutil.CheckEqual(mkblock(50, 30, 10).MedianFeeRate(), 30.0); err != nil {
		t.Error(err)
	}
	if err := testutil.CheckEqual(mkblock(50, 40, 30, 10).MedianFeeRate(), 35.0); err != nil {
		t.Error(err)
	}
	if err := testutil.CheckEqual(mkblock(42).MedianFeeRate(), 42.0); err != nil {
		t.Error(err)
	}
	if err := testutil.CheckEqual(new(Block).MedianFeeRate(), 0.0); err != nil {
		t.Error(err)
	}
}
