package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/kohai/gamecredit/internal/core/domain"
)

// VerificationCache keeps the last verification attempt per signature for a
// fixed window counted from the attempt, not from the last read.
type VerificationCache struct {
	items *ttlcache.Cache[string, *domain.VerificationRecord]
}

func NewVerificationCache(ttl time.Duration, capacity uint64) *VerificationCache {
	opts := []ttlcache.Option[string, *domain.VerificationRecord]{
		ttlcache.WithTTL[string, *domain.VerificationRecord](ttl),
		ttlcache.WithDisableTouchOnHit[string, *domain.VerificationRecord](),
	}
	if capacity > 0 {
		opts = append(opts, ttlcache.WithCapacity[string, *domain.VerificationRecord](capacity))
	}
	return &VerificationCache{items: ttlcache.New[string, *domain.VerificationRecord](opts...)}
}

func (c *VerificationCache) Get(signature string) (*domain.VerificationRecord, bool) {
	item := c.items.Get(signature)
	if item == nil {
		return nil, false
	}
	return item.Value(), true
}

func (c *VerificationCache) Set(record *domain.VerificationRecord) {
	c.items.Set(record.Signature, record, ttlcache.DefaultTTL)
}

// Run evicts expired entries until ctx is done.
func (c *VerificationCache) Run(ctx context.Context) error {
	go c.items.Start()
	<-ctx.Done()
	c.items.Stop()
	return nil
}
