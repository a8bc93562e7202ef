package survey

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type cacheItem struct {
	topic    Topic
	expireAt time.Time
}

// TopicCache keeps resolved topics in memory. Unknown ids are not cached
// so newly registered topics are visible immediately.
type TopicCache struct {
	store TopicStore
	ttl   time.Duration

	mu    sync.Mutex
	items map[string]cacheItem

	now func() time.Time
}

func NewTopicCache(store TopicStore, ttl time.Duration) *TopicCache {
	return &TopicCache{
		store: store,
		ttl:   ttl,
		items: make(map[string]cacheItem),
		now:   time.Now,
	}
}

func (c *TopicCache) FindByIDs(ctx context.Context, ids []string) ([]Topic, error) {
	list, missed := c.get(ids)
	if len(missed) == 0 {
		return list, nil
	}

	fetched, err := c.store.FindByIDs(ctx, missed)
	if err != nil {
		return nil, fmt.Errorf("fetch missed topics: %w", err)
	}

	c.set(fetched)

	return append(list, fetched...), nil
}

func (c *TopicCache) get(ids []string) ([]Topic, []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	list := make([]Topic, 0, len(ids))
	missed := make([]string, 0)
	for _, id := range ids {
		item, ok := c.items[id]
		if !ok || item.expireAt.Before(now) {
			missed = append(missed, id)

			continue
		}

		list = append(list, item.topic)
	}

	return list, missed
}

func (c *TopicCache) set(list []Topic) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expireAt := c.now().Add(c.ttl)
	for _, t := range list {
		c.items[t.TopicID] = cacheItem{
			topic:    t,
			expireAt: expireAt,
		}
	}
}
