package questions

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Kormazd/DevWeb/internal/domain"
)

// Loader fetches the question set from the backend.
type Loader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// Cache keeps the fetched question set for a TTL so repeated playthroughs do
// not hammer the backend. Concurrent misses are collapsed through
// singleflight and expirations are jittered to spread refreshes.
type Cache struct {
	loader Loader
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu        sync.RWMutex
	cached    []domain.Question
	expiresAt time.Time
}

func NewCache(loader Loader, ttl time.Duration) *Cache {
	return &Cache{
		loader: loader,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Questions returns the cached set, loading on miss. The result is ordered by
// display position and safe for the caller to keep.
func (c *Cache) Questions(ctx context.Context) ([]domain.Question, error) {
	now := c.clock()

	c.mu.RLock()
	if c.cached != nil && c.expiresAt.After(now) {
		cached := c.cached
		c.mu.RUnlock()
		return cached, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("questions", func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if c.cached != nil && c.expiresAt.After(now) {
			cached := c.cached
			c.mu.RUnlock()
			return cached, nil
		}
		c.mu.RUnlock()

		loaded, err := c.loader.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}
		ordered := make([]domain.Question, len(loaded))
		copy(ordered, loaded)
		sort.Slice(ordered, func(i, j int) bool {
			return ordered[i].Position < ordered[j].Position
		})

		c.mu.Lock()
		c.cached = ordered
		c.expiresAt = now.Add(c.ttlWithJitter())
		c.mu.Unlock()
		return ordered, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// Invalidate drops the cached set so the next read refetches, e.g. after an
// admin edit.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}

func (c *Cache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
