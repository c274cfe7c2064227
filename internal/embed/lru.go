package embed

import "container/list"

// DefaultCacheSize bounds an Oracle's vector cache when no size is given.
const DefaultCacheSize = 4096

type lruEntry struct {
	key string
	vec []float32
}

// vectorLRU is a fixed-capacity least-recently-used map from text to
// vector. Callers hold the Oracle's lock.
type vectorLRU struct {
	capacity int
	order    *list.List // front is most recently used
	items    map[string]*list.Element
}

func newVectorLRU(capacity int) *vectorLRU {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &vectorLRU{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

func (c *vectorLRU) get(key string) ([]float32, bool) {
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruEntry).vec, true
}

func (c *vectorLRU) add(key string, vec []float32) {
	if el, ok := c.items[key]; ok {
		el.Value.(*lruEntry).vec = vec
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&lruEntry{key: key, vec: vec})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*lruEntry).key)
	}
}

func (c *vectorLRU) len() int { return c.order.Len() }
