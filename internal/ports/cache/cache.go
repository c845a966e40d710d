package cache

import (
	"context"
	"time"
)

// PageCache stores rendered pages. Writes to posts call Clear so stale
// listings never outlive a content change.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
}
