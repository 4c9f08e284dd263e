package collect

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

type Config struct {
	PollPeriod int `yaml:"pollperiod" json:"pollperiod"` // in seconds

	GetSnapshot SnapshotGetter `yaml:"-" json:"-"`
	Logger      *log.Logger    `yaml:"-" json:"-"`
}

// Collector polls the data source and publishes snapshots.
// NOTE: S and E channels must be serviced.
type Collector struct {
	S <-chan *Snapshot
	E <-chan error

	state *Snapshot
	cfg   Config

	done chan struct{}
	mux  sync.RWMutex
}

func NewCollector(cfg Config) *Collector {
	return &Collector{
		cfg:  cfg,
		done: make(chan struct{}),
	}
}

// State returns the most recent snapshot, or nil if the last poll failed.
func (c *Collector) State() *Snapshot {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return c.state
}

func (c *Collector) setState(state *Snapshot) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.state = state
}

// Run starts the poll loop. The first fetch happens immediately inside the
// loop, so a source that is down at startup surfaces on E rather than
// blocking Run.
func (c *Collector) Run() error {
	if c.cfg.GetSnapshot == nil {
		return fmt.Errorf("no snapshot getter configured")
	}
	if c.cfg.PollPeriod <= 0 {
		return fmt.Errorf("pollperiod must be positive")
	}

	sc := make(chan *Snapshot)
	ec := make(chan error)
	c.S = sc
	c.E = ec
	go c.run(sc, ec)
	return nil
}

func (c *Collector) Stop() {
	if err := c.closeDone(); err != nil {
		return
	}
	// Block until the err chan is closed when run terminates.
	for range c.E {
	}
}

func (c *Collector) run(sc chan<- *Snapshot, ec chan<- error) {
	defer close(ec)
	defer close(sc)
	defer c.setState(nil)

	logger := c.cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}

	ticker := time.NewTicker(time.Duration(c.cfg.PollPeriod) * time.Second)
	defer ticker.Stop()

	for {
		snap, err := c.cfg.GetSnapshot()
		if err != nil {
			c.setState(nil)
			select {
			case ec <- fmt.Errorf("GetSnapshot: %v", err):
			case <-c.done:
				return
			}
		} else {
			c.setState(snap)
			select {
			case sc <- snap:
			case <-c.done:
				return
			}
		}

		select {
		case <-ticker.C:
		case <-c.done:
			return
		}
	}
}

// closeDone closes c.done in a concurrent-safe way.
func (c *Collector) closeDone() error {
	c.mux.Lock()
	defer c.mux.Unlock()
	select {
	case <-c.done:
		return fmt.Errorf("already stopped")
	default:
		close(c.done)
	}
	return nil
}
