package notifiedbody

import (
	"context"
	"sync"
	"time"

	"en13813/pkg/platform/sentinel"
)

type cachedBody struct {
	body     Body
	storedAt time.Time
}

// InMemoryCache keeps registry records in process with TTL expiration.
type InMemoryCache struct {
	mu     sync.RWMutex
	bodies map[string]cachedBody
	ttl    time.Duration
	now    func() time.Time
}

func NewInMemoryCache(ttl time.Duration) *InMemoryCache {
	return &InMemoryCache{
		bodies: make(map[string]cachedBody),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Save stores body keyed by its normalized number. A nil body is a no-op.
func (c *InMemoryCache) Save(_ context.Context, body *Body) error {
	if body == nil {
		return nil
	}
	b := *body
	b.Scopes = append([]string(nil), body.Scopes...)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bodies[NormalizeNumber(b.Number)] = cachedBody{body: b, storedAt: c.now()}
	return nil
}

func (c *InMemoryCache) Find(_ context.Context, number string) (*Body, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if cached, ok := c.bodies[NormalizeNumber(number)]; ok && c.now().Sub(cached.storedAt) < c.ttl {
		b := cached.body
		b.Scopes = append([]string(nil), cached.body.Scopes...)
		return &b, nil
	}
	return nil, sentinel.ErrNotFound
}
