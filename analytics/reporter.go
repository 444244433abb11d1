package analytics

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/danielliu2707/folio/log"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// DatabaseName is the file, inside the data directory, holding page views.
const DatabaseName = "analytics.db"

// NewReporter picks the reporter for a mode. Production counts page views in
// a bbolt database under dataDir; when dataDir is empty page views are only
// logged, like in development.
func NewReporter(mode Mode, dataDir string) (Reporter, error) {
	if mode == Development || dataDir == "" {
		return NewLogReporter(), nil
	}

	err := os.MkdirAll(dataDir, 0755)
	if err != nil {
		return nil, err
	}

	return NewBoltReporter(filepath.Join(dataDir, DatabaseName))
}

type LogReporter struct {
	log *zap.SugaredLogger
}

func NewLogReporter() *LogReporter {
	return &LogReporter{log: log.Named("analytics")}
}

func (r *LogReporter) Report(_ context.Context, v PageView) error {
	r.log.Debugw("page view", "path", v.Path, "referrer", v.Referrer)
	return nil
}

var viewsBucket = []byte("views")

// BoltReporter keeps a page view counter per path.
type BoltReporter struct {
	db *bolt.DB
}

func NewBoltReporter(path string) (*BoltReporter, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("analytics: open %s: %w", path, err)
	}

	return &BoltReporter{db: db}, nil
}

func (b *BoltReporter) Close() error {
	return b.db.Close()
}

func (b *BoltReporter) Report(_ context.Context, v PageView) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(viewsBucket)
		if err != nil {
			return err
		}

		key := []byte(v.Path)
		count := uint64(0)
		if raw := bucket.Get(key); raw != nil {
			count = binary.BigEndian.Uint64(raw)
		}

		return bucket.Put(key, binary.BigEndian.AppendUint64(nil, count+1))
	})
}

// Counts returns the number of views per path.
func (b *BoltReporter) Counts() (map[string]uint64, error) {
	counts := map[string]uint64{}

	return counts, b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(viewsBucket)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			counts[string(k)] = binary.BigEndian.Uint64(v)
			return nil
		})
	})
}
