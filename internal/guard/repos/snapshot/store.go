// Package snapshot persists the last published list snapshot in a bbolt file
// so a cold start without network still has lists to scan against.
package snapshot

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	bbolt "go.etcd.io/bbolt"
	bberrors "go.etcd.io/bbolt/errors"

	"github.com/suiet/guardians/internal/guard/common/log"
	"github.com/suiet/guardians/internal/guard/common/retry"
	"github.com/suiet/guardians/internal/guard/domain"
	"github.com/suiet/guardians/internal/guard/services/guard"
)

// Layout: one top-level bucket per list kind, each with "allow" and "block"
// sub-buckets keyed by entry, plus a "meta" bucket. A missing kind bucket
// means the list was never obtained.
var (
	bucketMeta  = []byte("meta")
	bucketAllow = []byte("allow")
	bucketBlock = []byte("block")

	keyVersion = []byte("version")
	keyUpdated = []byte("updated")

	present = []byte{1}
)

const lockTimeout = time.Second

// boltStore implements guard.SnapshotStore using bbolt.
type boltStore struct {
	db *bbolt.DB
}

// Open opens (or creates) a Bolt database at path. Only a lock timeout, i.e.
// another process holding the file, is retried.
func Open(ctx context.Context, path string, logger log.Logger) (guard.SnapshotStore, error) {
	logger = log.OrNoop(logger)
	db, err := retry.Do(ctx, retry.DefaultTimes, func(context.Context) (*bbolt.DB, error) {
		db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: lockTimeout})
		if err == nil {
			return db, nil
		}
		logger.Warn(map[string]any{"path": path, "error": err.Error()}, "snapshot store open failed")
		if !errors.Is(err, bberrors.ErrTimeout) {
			return nil, retry.Permanent(err)
		}
		return nil, err
	})
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketMeta)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &boltStore{db: db}, nil
}

func (s *boltStore) Close() error { return s.db.Close() }

// Save replaces the stored snapshot in a single transaction.
func (s *boltStore) Save(snap *domain.Snapshot) error {
	if snap == nil {
		return nil
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, kind := range domain.AllKinds {
			name := []byte(kind.String())
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
			}
			allow, block, ok := entries(snap, kind)
			if !ok {
				continue
			}
			b, err := tx.CreateBucket(name)
			if err != nil {
				return err
			}
			if err := putAll(b, bucketAllow, allow); err != nil {
				return err
			}
			if err := putAll(b, bucketBlock, block); err != nil {
				return err
			}
		}
		meta := tx.Bucket(bucketMeta)
		if err := meta.Put(keyVersion, u64(snap.Version)); err != nil {
			return err
		}
		return meta.Put(keyUpdated, u64(uint64(snap.UpdatedAt.Unix())))
	})
}

// Load returns the stored snapshot. ok is false when nothing was ever saved.
func (s *boltStore) Load() (*domain.Snapshot, bool, error) {
	var (
		snap domain.Snapshot
		ok   bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		if meta == nil {
			return nil
		}
		v := meta.Get(keyVersion)
		if len(v) != 8 {
			return nil
		}
		ok = true
		snap.Version = binary.BigEndian.Uint64(v)
		if u := meta.Get(keyUpdated); len(u) == 8 {
			snap.UpdatedAt = time.Unix(int64(binary.BigEndian.Uint64(u)), 0).UTC()
		}

		for _, kind := range domain.AllKinds {
			b := tx.Bucket([]byte(kind.String()))
			if b == nil {
				continue
			}
			allow, block := readAll(b.Bucket(bucketAllow)), readAll(b.Bucket(bucketBlock))
			switch kind {
			case domain.KindDomain:
				snap.Domains = domain.NewDomainBlocklist(allow, block)
			case domain.KindPackage:
				snap.Packages = domain.NewPackageBlocklist(block)
			case domain.KindObject:
				snap.Objects = domain.NewObjectBlocklist(allow, block)
			case domain.KindCoin:
				snap.Coins = domain.NewCoinBlocklist(block)
			}
		}
		return nil
	})
	if err != nil || !ok {
		return nil, false, err
	}
	return &snap, true, nil
}

func entries(snap *domain.Snapshot, kind domain.ListKind) (allow, block []string, ok bool) {
	switch kind {
	case domain.KindDomain:
		if snap.Domains != nil {
			return snap.Domains.Allowlist.Slice(), snap.Domains.Blocklist.Slice(), true
		}
	case domain.KindPackage:
		if snap.Packages != nil {
			return nil, snap.Packages.Blocklist.Slice(), true
		}
	case domain.KindObject:
		if snap.Objects != nil {
			return snap.Objects.Allowlist.Slice(), snap.Objects.Blocklist.Slice(), true
		}
	case domain.KindCoin:
		if snap.Coins != nil {
			return nil, snap.Coins.Blocklist.Slice(), true
		}
	}
	return nil, nil, false
}

func putAll(parent *bbolt.Bucket, name []byte, items []string) error {
	b, err := parent.CreateBucket(name)
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := b.Put([]byte(it), present); err != nil {
			return err
		}
	}
	return nil
}

func readAll(b *bbolt.Bucket) []string {
	if b == nil {
		return nil
	}
	var out []string
	_ = b.ForEach(func(k, _ []byte) error {
		out = append(out, string(k))
		return nil
	})
	return out
}

func u64(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}
