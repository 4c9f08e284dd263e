// Package bolt persists the most recent mempool snapshot, so the daemon
// can warm-start and keep serving simulations through data-source outages.
package bolt

import (
	"bytes"
	"encoding/gob"
	"time"

	"github.com/boltdb/bolt"

	col "github.com/bitcoinfees/auctionsim/collect"
)

type snapshotdb struct {
	db     *bolt.DB
	bucket []byte
	key    []byte
}

func LoadSnapshotDB(dbfile string) (*snapshotdb, error) {
	db, err := bolt.Open(dbfile, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	d := &snapshotdb{
		db:     db,
		bucket: []byte("snapshot"),
		key:    []byte("latest"),
	}
	err = d.db.Update(func(tr *bolt.Tx) error {
		_, err := tr.CreateBucketIfNotExists(d.bucket)
		return err
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Put replaces the cached snapshot.
func (d *snapshotdb) Put(s *col.Snapshot) error {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(s); err != nil {
		return err
	}
	return d.db.Update(func(tr *bolt.Tx) error {
		return tr.Bucket(d.bucket).Put(d.key, buf.Bytes())
	})
}

// Get returns the cached snapshot, or nil if none has been stored.
func (d *snapshotdb) Get() (*col.Snapshot, error) {
	var s *col.Snapshot
	err := d.db.View(func(tr *bolt.Tx) error {
		v := tr.Bucket(d.bucket).Get(d.key)
		if v == nil {
			return nil
		}
		s = new(col.Snapshot)
		return gob.NewDecoder(bytes.NewBuffer(v)).Decode(s)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (d *snapshotdb) Close() error {
	return d.db.Close()
}
