package main

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/rcrowley/go-metrics"

	col "github.com/bitcoinfees/auctionsim/collect"
	"github.com/bitcoinfees/auctionsim/sim"
)

var errNoSnapshot = errors.New("mempool snapshot not available")

// SnapshotDB caches the latest mempool snapshot, so that simulations keep
// working across restarts and through data source outages.
type SnapshotDB interface {
	Put(*col.Snapshot) error
	Get() (*col.Snapshot, error)
	Close() error
}

type AuctionSim struct {
	snapshot *col.Snapshot

	collect *col.Collector
	db      SnapshotDB
	cfg     AuctionSimConfig

	simTimer metrics.Timer

	done chan struct{}
	wg   sync.WaitGroup
	mux  sync.RWMutex
}

type AuctionSimConfig struct {
	Collect col.Config `yaml:"collect" json:"collect"`
	Sim     sim.Config `yaml:"sim" json:"sim"`

	logger *log.Logger `yaml:"-" json:"-"`
}

func NewAuctionSim(db SnapshotDB, cfg AuctionSimConfig) (*AuctionSim, error) {
	cfg.Collect.Logger = cfg.logger
	collect := col.NewCollector(cfg.Collect)

	simTimer := metrics.NewCustomTimer(
		metrics.NewHistogram(metrics.NewSimpleExpDecaySample(1028)),
		metrics.NewMeter())
	metrics.Register("simulate", simTimer)

	a := &AuctionSim{
		collect:  collect,
		db:       db,
		cfg:      cfg,
		simTimer: simTimer,
		done:     make(chan struct{}),
	}
	return a, nil
}

func (s *AuctionSim) Run() error {
	logger := s.cfg.logger
	s.wg.Add(1)
	defer logger.Println("Auctionsim all stopped.")
	defer s.wg.Wait()
	defer s.wg.Done()
	defer s.db.Close()

	logger.Printf("Auctionsim v%s starting up..", version)

	// Warm start from the cached snapshot; the collector replaces it on its
	// first successful poll.
	if cached, err := s.db.Get(); err != nil {
		logger.Println("[ERROR] Snapshot cache read:", err)
	} else if cached != nil {
		s.setSnapshot(cached)
		logger.Println("Warm start from cached snapshot:", cached)
	}

	if err := s.collect.Run(); err != nil {
		return err
	}
	defer s.collect.Stop()

	logger.Println("Auctionsim startup complete.")
	for {
		select {
		case snapshot := <-s.collect.S:
			s.setSnapshot(snapshot)
			if err := s.db.Put(snapshot); err != nil {
				logger.Println("[ERROR] Snapshot cache write:", err)
			}
			logger.Println("[DEBUG] Snapshot updated:", snapshot)
		case err := <-s.collect.E:
			// The last cached snapshot keeps serving simulations.
			logger.Println("[ERROR] Collector:", err)
		case <-s.done:
			return nil
		}
	}
}

// Simulate runs a blockspace auction for a hypothetical transaction with the
// given virtual size (vbytes) and fee rate (sat/vB), against the latest
// snapshot.
func (s *AuctionSim) Simulate(vsize int64, feeRate float64) (*sim.Result, error) {
	if vsize <= 0 {
		return nil, sim.InvalidTxError{Reason: "vsize must be positive"}
	}
	if feeRate <= 0 {
		return nil, sim.InvalidTxError{Reason: "fee rate must be positive"}
	}
	snapshot := s.Snapshot()
	if snapshot == nil {
		return nil, errNoSnapshot
	}
	user, err := sim.NewTxRate(vsize, feeRate)
	if err != nil {
		return nil, err
	}
	defer s.simTimer.UpdateSince(time.Now())
	return sim.Simulate(snapshot.Txs, user, s.cfg.Sim)
}

// Recommend returns fee tiers: the data source's own tiers when the snapshot
// carries them, otherwise tiers derived from a fill of the snapshot.
func (s *AuctionSim) Recommend() (*sim.Tiers, error) {
	snapshot := s.Snapshot()
	if snapshot == nil {
		return nil, errNoSnapshot
	}
	if snapshot.Tiers != nil {
		t := *snapshot.Tiers
		return &t, nil
	}
	blocks, err := sim.Fill(snapshot.Txs)
	if err != nil {
		return nil, err
	}
	t := sim.DeriveTiers(blocks)
	return &t, nil
}

// Refresh polls the data source once, outside the regular poll schedule.
func (s *AuctionSim) Refresh() error {
	snapshot, err := s.cfg.Collect.GetSnapshot()
	if err != nil {
		return err
	}
	s.setSnapshot(snapshot)
	if err := s.db.Put(snapshot); err != nil {
		s.cfg.logger.Println("[ERROR] Snapshot cache write:", err)
	}
	return nil
}

// SnapshotSummary is the wire form of the latest snapshot, without the
// representative transactions themselves.
type SnapshotSummary struct {
	Time          int64      `json:"time"`
	Txs           int        `json:"txs"`
	PendingTxs    int64      `json:"pendingtxs"`
	PendingBlocks int        `json:"pendingblocks"`
	Tiers         *sim.Tiers `json:"tiers,omitempty"`
}

func (s *AuctionSim) SnapshotSummary() (*SnapshotSummary, error) {
	snapshot := s.Snapshot()
	if snapshot == nil {
		return nil, errNoSnapshot
	}
	return &SnapshotSummary{
		Time:          snapshot.Time,
		Txs:           len(snapshot.Txs),
		PendingTxs:    snapshot.PendingTxs,
		PendingBlocks: snapshot.PendingBlocks,
		Tiers:         snapshot.Tiers,
	}, nil
}

func (s *AuctionSim) Status() map[string]string {
	status := make(map[string]string)

	if s.Snapshot() == nil {
		status["snapshot"] = errNoSnapshot.Error()
	} else {
		status["snapshot"] = "OK"
	}

	// The data source is live only if the last poll succeeded; a nil
	// collector state with a non-nil snapshot means we're serving cached
	// data.
	if s.collect.State() == nil {
		status["source"] = "Data source not available."
	} else {
		status["source"] = "OK"
	}

	if _, err := s.db.Get(); err != nil {
		status["cache"] = err.Error()
	} else {
		status["cache"] = "OK"
	}

	return status
}

func (s *AuctionSim) Stop() {
	s.closeDone()
	s.wg.Wait()
}

// Snapshot returns the snapshot that simulations currently run against. It
// may be older than the collector's state if the source is down.
func (s *AuctionSim) Snapshot() *col.Snapshot {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.snapshot
}

func (s *AuctionSim) setSnapshot(snapshot *col.Snapshot) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.snapshot = snapshot
}

// closeDone closes s.done in a concurrent-safe way.
func (s *AuctionSim) closeDone() {
	s.mux.Lock()
	defer s.mux.Unlock()
	select {
	case <-s.done: // Already closed
	default:
		close(s.done)
	}
}
