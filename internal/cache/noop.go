package cache

import (
	"context"
	"time"
)

// NoOpCache is used when no cache backend is configured or Redis is
// unreachable. All operations succeed; every lookup is a miss.
type NoOpCache struct{}

var _ Cache = (*NoOpCache)(nil)

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) GetAnswer(ctx context.Context, key string) (*Answer, error) {
	return nil, nil
}

func (c *NoOpCache) SetAnswer(ctx context.Context, key string, answer *Answer, ttl time.Duration) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
