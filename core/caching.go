package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/wordboard/internal/contract"
	"github.com/huangsam/wordboard/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// snapshot is the record set of one load plus where it came from.
type snapshot struct {
	Records   []schema.ScoreRecord
	FromCache bool
}

// loadSnapshot returns the records of src, served from the snapshot cache when
// the source fingerprint is unchanged and the entry is younger than the TTL.
func loadSnapshot(ctx context.Context, cfg *contract.Config, src contract.SnapshotSource, mgr contract.CacheManager) (snapshot, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetSnapshotStore()
	}
	if store == nil || cfg.CacheBackend == schema.NoneBackend {
		// Fallback to direct load
		return loadDirect(ctx, src)
	}

	fingerprint, err := src.Fingerprint(ctx)
	if err != nil {
		contract.LogWarn("Snapshot fingerprint failed, loading without cache", err)
		return loadDirect(ctx, src)
	}
	key := generateCacheKey(src.Describe(), fingerprint)

	if !cfg.Refresh {
		if records, ok := checkCacheHit(store, key, cfg.CacheTTL, time.Now()); ok {
			return snapshot{Records: records, FromCache: true}, nil
		}
	}

	// Cache miss or forced refresh: load and store
	return loadAndStore(ctx, src, store, key)
}

// loadDirect reads the source without touching any cache.
func loadDirect(ctx context.Context, src contract.SnapshotSource) (snapshot, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return snapshot{}, err
	}
	return snapshot{Records: records}, nil
}

// checkCacheHit attempts to retrieve and validate a cached snapshot
func checkCacheHit(store contract.CacheStore, key string, ttl time.Duration, now time.Time) ([]schema.ScoreRecord, bool) {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil, false // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion {
		return nil, false
	}
	if ttl > 0 && now.Sub(time.Unix(ts, 0)) > ttl {
		return nil, false
	}

	var records []schema.ScoreRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false
	}
	return records, true
}

// loadAndStore loads the snapshot and stores it in cache
func loadAndStore(ctx context.Context, src contract.SnapshotSource, store contract.CacheStore, key string) (snapshot, error) {
	snap, err := loadDirect(ctx, src)
	if err != nil {
		return snapshot{}, err
	}

	if data, err := json.Marshal(snap.Records); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to store snapshot in cache", err)
		}
	}

	return snap, nil
}

// generateCacheKey creates a unique key from the source identity and its content fingerprint
func generateCacheKey(describe, fingerprint string) string {
	key := fmt.Sprintf("%s|%s", describe, fingerprint)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
