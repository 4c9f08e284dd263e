package main

import (
	"errors"
	"io/ioutil"
	"log"
	"sync"
	"testing"
	"time"

	col "github.com/bitcoinfees/auctionsim/collect"
	"github.com/bitcoinfees/auctionsim/sim"
	"github.com/bitcoinfees/auctionsim/testutil"
)

type memSnapshotDB struct {
	snapshot *col.Snapshot
	mux      sync.Mutex
}

func (d *memSnapshotDB) Put(s *col.Snapshot) error {
	d.mux.Lock()
	defer d.mux.Unlock()
	d.snapshot = s
	return nil
}

func (d *memSnapshotDB) Get() (*col.Snapshot, error) {
	d.mux.Lock()
	defer d.mux.Unlock()
	return d.snapshot, nil
}

func (d *memSnapshotDB) Close() error { return nil }

func testAuctionSnapshot() *col.Snapshot {
	txs := make([]*sim.Tx, 10)
	for i := range txs {
		tx, _ := sim.NewTxRate(250, float64(50-i))
		txs[i] = tx
	}
	return &col.Snapshot{Txs: txs, Time: 1, PendingTxs: 10, PendingBlocks: 1}
}

func waitForSnapshot(t *testing.T, a *AuctionSim) {
	t.Helper()
	for i := 0; a.Snapshot() == nil; i++ {
		if i > 50 {
			t.Fatal("no snapshot after 5s")
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func TestAuctionSim(t *testing.T) {
	db := new(memSnapshotDB)
	cfg := AuctionSimConfig{
		Collect: col.Config{
			PollPeriod:  1,
			GetSnapshot: func() (*col.Snapshot, error) { return testAuctionSnapshot(), nil },
		},
		Sim:    sim.DefaultConfig(),
		logger: log.New(ioutil.Discard, "", 0),
	}
	a, err := NewAuctionSim(db, cfg)
	if err != nil {
		t.Fatal(err)
	}

	errc := make(chan error, 1)
	go func() { errc <- a.Run() }()
	waitForSnapshot(t, a)

	result, err := a.Simulate(220, 40)
	if err != nil {
		t.Fatal(err)
	}
	if err := testutil.CheckEqual(result.BlockNumber, 1); err != nil {
		t.Error(err)
	}
	if err := testutil.CheckEqual(result.TotalTxs, 11); err != nil {
		t.Error(err)
	}

	// Input validation happens before the engine runs.
	if _, err := a.Simulate(0, 40); err == nil {
		t.Error("expected error for zero vsize")
	}
	if _, err := a.Simulate(220, 0); err == nil {
		t.Error("expected error for zero fee rate")
	}

	// The snapshot carries no tiers, so they are derived from the fill.
	tiers, err := a.Recommend()
	if err != nil {
		t.Fatal(err)
	}
	if err := testutil.CheckEqual(tiers.Fastest, 41.0); err != nil {
		t.Error(err)
	}

	summary, err := a.SnapshotSummary()
	if err != nil {
		t.Fatal(err)
	}
	if err := testutil.CheckEqual(summary.Txs, 10); err != nil {
		t.Error(err)
	}

	status := a.Status()
	for _, k := range []string{"snapshot", "source", "cache"} {
		if err := testutil.CheckEqual(status[k], "OK"); err != nil {
			t.Errorf("status[%s]: %v", k, err)
		}
	}

	a.Stop()
	if err := <-errc; err != nil {
		t.Fatal(err)
	}
	if s, _ := db.Get(); s == nil {
		t.Error("snapshot not cached")
	}
}

func TestAuctionSimWarmStart(t *testing.T) {
	// The data source is down, but a cached snapshot keeps simulations
	// working.
	db := &memSnapshotDB{snapshot: testAuctionSnapshot()}
	cfg := AuctionSimConfig{
		Collect: col.Config{
			PollPeriod:  1,
			GetSnapshot: func() (*col.Snapshot, error) { return nil, errors.New("down") },
		},
		Sim:    sim.DefaultConfig(),
		logger: log.New(ioutil.Discard, "", 0),
	}
	a, err := NewAuctionSim(db, cfg)
	if err != nil {
		t.Fatal(err)
	}

	errc := make(chan error, 1)
	go func() { errc <- a.Run() }()
	waitForSnapshot(t, a)

	if _, err := a.Simulate(220, 40); err != nil {
		t.Error(err)
	}

	status := a.Status()
	if err := testutil.CheckEqual(status["snapshot"], "OK"); err != nil {
		t.Error(err)
	}
	if status["source"] == "OK" {
		t.Error("source reported OK while down")
	}

	if err := a.Refresh(); err == nil {
		t.Error("expected refresh error while source is down")
	}

	a.Stop()
	if err := <-errc; err != nil {
		t.Fatal(err)
	}
}
