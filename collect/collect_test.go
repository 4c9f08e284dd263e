package collect

import (
	"errors"
	"testing"
	"time"

	"github.com/bitcoinfees/auctionsim/sim"
	"github.com/bitcoinfees/auctionsim/testutil"
)

func testSnapshot(t *testing.T, n int) *Snapshot {
	t.Helper()
	txs := make([]*sim.Tx, n)
	for i := range txs {
		tx, err := sim.NewTxRate(250, float64(50-i))
		if err != nil {
			t.Fatal(err)
		}
		txs[i] = tx
	}
	return &Snapshot{Txs: txs, Time: 1, PendingTxs: int64(n), PendingBlocks: 1}
}

func TestCollect(t *testing.T) {
	calls := 0
	getSnapshot := func() (*Snapshot, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("source down")
		}
		return testSnapshot(t, 5), nil
	}
	c := NewCollector(Config{PollPeriod: 1, GetSnapshot: getSnapshot})
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}

	go func() {
		<-time.After(3 * time.Second)
		c.Stop()
	}()

	var snaps, errs int
Loop:
	for {
		select {
		case snap, ok := <-c.S:
			if !ok {
				break Loop
			}
			snaps++
			if err := testutil.CheckEqual(len(snap.Txs), 5); err != nil {
				t.Error(err)
			}
			if err := testutil.CheckEqual(c.State(), snap); err != nil {
				t.Error(err)
			}
		case err, ok := <-c.E:
			if !ok {
				break Loop
			}
			errs++
			if err := testutil.CheckEqual(err.Error(), "GetSnapshot: source down"); err != nil {
				t.Error(err)
			}
			// A failed poll clears the published state.
			if c.State() != nil {
				t.Error("state not cleared on error")
			}
		}
	}

	if snaps < 1 {
		t.Error("no snapshots received")
	}
	if errs != 1 {
		t.Errorf("got %d errors, expected 1", errs)
	}
	if c.State() != nil {
		t.Error("state not cleared on stop")
	}
}

func TestCollectConfigErrors(t *testing.T) {
	c := NewCollector(Config{PollPeriod: 1})
	if err := c.Run(); err == nil {
		t.Error("expected error with no getter")
	}
	c = NewCollector(Config{GetSnapshot: func() (*Snapshot, error) { return nil, nil }})
	if err := c.Run(); err == nil {
		t.Error("expected error with no poll period")
	}
}

func TestSnapshotString(t *testing.T) {
	s := testSnapshot(t, 3)
	ref := "Snapshot{txs: 3, pending: 3, blocks: 1, time: 1}"
	if err := testutil.CheckEqual(s.String(), ref); err != nil {
		t.Error(err)
	}
}
