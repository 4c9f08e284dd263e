package testutil

import (
	"io/ioutil"
	"path/filepath"
)

var (
	// Raw fixture bodies, as served by the mempool.space API.
	MempoolBlocksJSON []byte
	RecommendedJSON   []byte
)

// LoadData reads the API fixtures from datadir. Panics on failure, since
// tests cannot proceed without them.
func LoadData(datadir string) {
	var err error
	MempoolBlocksJSON, err = ioutil.ReadFile(filepath.Join(datadir, "mempoolblocks.json"))
	if err != nil {
		panic(err)
	}
	RecommendedJSON, err = ioutil.ReadFile(filepath.Join(datadir, "recommended.json"))
	if err != nil {
		panic(err)
	}
}
