package pool

import (
	"container/list"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
)

// StateCache is an in-memory LRU cache of decoded pool records with TTL,
// keyed by account address. It exists so a long-running quoter does not
// re-decode the same snapshot for every quote; it holds decoded bytes only,
// never invariant values. D is always recomputed per call.
type StateCache struct {
	maxSize int
	ttl     time.Duration
	items   map[solana.PublicKey]*list.Element
	lru     *list.List
	mu      sync.Mutex
	stopCh  chan struct{}
}

type cacheEntry struct {
	key        solana.PublicKey
	state      *State
	expiration time.Time
}

// NewStateCache creates a cache holding at most maxSize decoded records,
// each valid for ttl after insertion.
func NewStateCache(maxSize int, ttl time.Duration) *StateCache {
	if maxSize <= 0 {
		maxSize = 256
	}
	if ttl <= 0 {
		ttl = time.Minute
	}

	c := &StateCache{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[solana.PublicKey]*list.Element),
		lru:     list.New(),
		stopCh:  make(chan struct{}),
	}

	go c.cleanup()

	return c
}

// Get returns the cached state for key, or false if absent or expired.
func (c *StateCache) Get(key solana.PublicKey) (*State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, ok := c.items[key]
	if !ok {
		return nil, false
	}

	entry := element.Value.(*cacheEntry)
	if time.Now().After(entry.expiration) {
		c.remove(key)
		return nil, false
	}

	c.lru.MoveToFront(element)
	return entry.state, true
}

// Set stores a decoded state, evicting the least recently used entry when
// the cache is full.
func (c *StateCache) Set(key solana.PublicKey, state *State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiration := time.Now().Add(c.ttl)

	if element, ok := c.items[key]; ok {
		entry := element.Value.(*cacheEntry)
		entry.state = state
		entry.expiration = expiration
		c.lru.MoveToFront(element)
		return
	}

	element := c.lru.PushFront(&cacheEntry{key: key, state: state, expiration: expiration})
	c.items[key] = element

	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.remove(oldest.Value.(*cacheEntry).key)
		}
	}
}

// Delete removes a key from the cache.
func (c *StateCache) Delete(key solana.PublicKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(key)
}

// Len returns the current number of cached records.
func (c *StateCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Close stops the background expiration sweep.
func (c *StateCache) Close() {
	close(c.stopCh)
}

// remove deletes an entry; caller must hold the lock.
func (c *StateCache) remove(key solana.PublicKey) {
	if element, ok := c.items[key]; ok {
		c.lru.Remove(element)
		delete(c.items, key)
	}
}

func (c *StateCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweepExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *StateCache) sweepExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var expired []solana.PublicKey
	for key, element := range c.items {
		if now.After(element.Value.(*cacheEntry).expiration) {
			expired = append(expired, key)
		}
	}
	for _, key := range expired {
		c.remove(key)
	}
}
