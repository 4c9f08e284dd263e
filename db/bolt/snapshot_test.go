package bolt

import (
	"os"
	"testing"

	col "github.com/bitcoinfees/auctionsim/collect"
	"github.com/bitcoinfees/auctionsim/sim"
	"github.com/bitcoinfees/auctionsim/testutil"
)

func TestSnapshotDB(t *testing.T) {
	const dbfile = "testdata/.snapshot.db"
	os.MkdirAll("testdata", 0700)
	os.Remove(dbfile)

	d, err := LoadSnapshotDB(dbfile)
	if err != nil {
		t.Fatal(err)
	}

	// Shouldn't be able to load again
	if _, err := LoadSnapshotDB(dbfile); err == nil {
		t.Fatal("expected timeout on second open")
	}

	// Empty db yields nil snapshot, no error
	s, err := d.Get()
	if err != nil {
		t.Fatal(err)
	}
	if s != nil {
		t.Fatal("expected nil snapshot from empty db")
	}

	tx1, err := sim.NewTxRate(499, 45.2)
	if err != nil {
		t.Fatal(err)
	}
	tx2, err := sim.NewTxRate(555, 22.0)
	if err != nil {
		t.Fatal(err)
	}
	ref := &col.Snapshot{
		Txs:           []*sim.Tx{tx1, tx2},
		Tiers:         &sim.Tiers{Fastest: 50, HalfHour: 30, Hour: 20, Economy: 5, Minimum: 2},
		Time:          1700000000,
		PendingTxs:    4700,
		PendingBlocks: 3,
	}
	if err := d.Put(ref); err != nil {
		t.Fatal(err)
	}

	// Close and reopen; the snapshot must survive.
	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if d, err = LoadSnapshotDB(dbfile); err != nil {
		t.Fatal(err)
	}
	s, err = d.Get()
	if err != nil {
		t.Fatal(err)
	}
	if err := testutil.CheckEqual(s, ref); err != nil {
		t.Error(err)
	}

	// Put replaces
	ref2 := &col.Snapshot{Txs: []*sim.Tx{tx1}, Time: 1700000600, PendingTxs: 10, PendingBlocks: 1}
	if err := d.Put(ref2); err != nil {
		t.Fatal(err)
	}
	s, err = d.Get()
	if err != nil {
		t.Fatal(err)
	}
	if err := testutil.CheckEqual(s, ref2); err != nil {
		t.Error(err)
	}

	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(dbfile); err != nil {
		t.Fatal(err)
	}
}
