// Package mempoolspace implements the snapshot source in package collect
// by using the mempool.space REST API.
package mempoolspace

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	col "github.com/bitcoinfees/auctionsim/collect"
)

const DefaultURL = "https://mempool.space/api/v1"

// Unix time in seconds
type UnixNow func() int64

type Config struct {
	URL string `json:"url" yaml:"url"`

	// HTTP timeout in seconds
	Timeout int `json:"timeout" yaml:"timeout"`
}

// Getters returns a collect.SnapshotGetter backed by the API. A failed
// fees/recommended call is not fatal to a snapshot; tiers are optional and
// the engine derives them from the fill when absent.
func Getters(timeNow UnixNow, cfg Config) (col.SnapshotGetter, error) {
	c := NewClient(cfg)
	getSnapshot := func() (*col.Snapshot, error) {
		blocks, err := c.MempoolBlocks()
		if err != nil {
			return nil, err
		}
		txs, err := Representative(blocks)
		if err != nil {
			return nil, err
		}

		s := &col.Snapshot{
			Txs:           txs,
			Time:          timeNow(),
			PendingBlocks: len(blocks),
		}
		for _, b := range blocks {
			s.PendingTxs += b.NTx
		}
		if rec, err := c.RecommendedFees(); err == nil {
			tiers := rec.Tiers()
			s.Tiers = &tiers
		}
		return s, nil
	}
	return getSnapshot, nil
}

type Client struct {
	httpclient *http.Client
	cfg        Config
}

func NewClient(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	c := &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second}
	return &Client{httpclient: c, cfg: cfg}
}

func (c *Client) MempoolBlocks() ([]MempoolBlock, error) {
	var blocks []MempoolBlock
	if err := c.get("/fees/mempool-blocks", &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

func (c *Client) RecommendedFees() (*Recommended, error) {
	rec := new(Recommended)
	if err := c.get("/fees/recommended", rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (c *Client) get(path string, v interface{}) error {
	url := strings.TrimRight(c.cfg.URL, "/") + path
	resp, err := c.httpclient.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("%v: %s", resp.Status, b)
	}
	return json.Unmarshal(b, v)
}
