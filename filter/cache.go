package filter

import (
	"container/list"
	"sync"
)

// filterCache holds compiled filters keyed by their trimmed expression and
// drops the least recently used one when full.
type filterCache struct {
	capacity int
	order    *list.List
	items    map[string]*list.Element
	mu       sync.Mutex
}

type cacheEntry struct {
	expression string
	filter     *AssetFilter
}

func newFilterCache(capacity int) *filterCache {
	return &filterCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached filter for expression and marks it recently used
func (c *filterCache) Get(expression string) (*AssetFilter, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[expression]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry).filter, true
}

// Put stores filter, evicting the oldest entry past capacity
func (c *filterCache) Put(expression string, filter *AssetFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[expression]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*cacheEntry).filter = filter
		return
	}

	c.items[expression] = c.order.PushFront(&cacheEntry{expression: expression, filter: filter})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).expression)
	}
}

// Clear removes all entries
func (c *filterCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element, c.capacity)
	c.order.Init()
}

// Size returns the number of cached filters
func (c *filterCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}
