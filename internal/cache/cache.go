// Package cache provides two caching layers: a shared Redis client (grounded
// on services/order_service/src/service/order_service.go's cacheOrder/
// getCachedOrder) that is connected at startup and closed at shutdown but is
// not read or written by any request path, and a local process-memory TTL
// map for the advisory
// scan-dedup window described in spec.md §5, grounded on the mutex-guarded
// expiring map in services/user_management_service/src/AuthService.go's
// CredentialCache — here swapped for the pack-attested patrickmn/go-cache
// library instead of hand-rolling the mutex bookkeeping again.
package cache

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// ScanDedup suppresses rapid duplicate scans within one process. It is
// advisory only — the durable dedup lives in the ScanEvent/ProcessedEvent
// tables — so eviction or a cold cache is always safe.
type ScanDedup struct {
	store  *gocache.Cache
	window time.Duration
}

func NewScanDedup(window time.Duration) *ScanDedup {
	return &ScanDedup{
		store:  gocache.New(window, 2*window),
		window: window,
	}
}

// SeenRecently reports whether (storeId, mode, scanValue) was seen within the
// dedup window, and records this occurrence for future calls.
func (d *ScanDedup) SeenRecently(storeID, mode, scanValue string) bool {
	key := fmt.Sprintf("%s|%s|%s", storeID, mode, scanValue)
	if _, found := d.store.Get(key); found {
		return true
	}
	d.store.Set(key, time.Now(), d.window)
	return false
}

// Redis wraps a shared connection pool. NewRedis connects and pings it and
// Close releases it; no read path (heartbeats, bill listings or other) caches
// through it.
type Redis struct {
	Client *redis.Client
}

func NewRedis(url string) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Redis{Client: client}, nil
}

func (r *Redis) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
