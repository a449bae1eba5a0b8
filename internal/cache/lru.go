package cache

import "container/list"

// LRU is a bounded, capacity-`cap` key→frame cache with a doubly-linked
// MRU-first eviction list (spec.md §4.5). Not safe for concurrent use —
// see the package doc comment for why that is intentional.
type LRU struct {
	capacity    int
	persistPath string
	index       map[string]*list.Element
	order       *list.List // front = most recently used
}

type entry struct {
	key   string
	frame []byte
}

func newLRU(capacity int, persistPath string) (*LRU, error) {
	c := &LRU{
		capacity:    capacity,
		persistPath: persistPath,
		index:       make(map[string]*list.Element, capacity),
		order:       list.New(),
	}

	if err := c.load(); err != nil {
		return nil, err
	}

	return c, nil
}

// Get implements [Cache]. A hit splices the entry to the front.
func (c *LRU) Get(key string) ([]byte, bool) {
	el, ok := c.index[key]
	if !ok {
		return nil, false
	}

	c.order.MoveToFront(el)

	e := el.Value.(*entry)
	frame := make([]byte, len(e.frame))
	copy(frame, e.frame)

	return frame, true
}

// Put implements [Cache]. An existing key has its frame overwritten and
// is moved to the front; a new key is inserted at the front and the
// tail is evicted until count <= capacity.
func (c *LRU) Put(key string, frame []byte) {
	stored := make([]byte, len(frame))
	copy(stored, frame)

	if el, ok := c.index[key]; ok {
		el.Value.(*entry).frame = stored
		c.order.MoveToFront(el)

		return
	}

	el := c.order.PushFront(&entry{key: key, frame: stored})
	c.index[key] = el

	for c.order.Len() > c.capacity {
		tail := c.order.Back()
		if tail == nil {
			break
		}

		c.order.Remove(tail)
		delete(c.index, tail.Value.(*entry).key)
	}
}

// Cleanup implements [Cache]: writes every entry to persistPath in
// MRU-first order, then discards the in-memory state.
func (c *LRU) Cleanup() error {
	if err := c.save(); err != nil {
		return err
	}

	c.index = nil
	c.order = nil

	return nil
}

var _ Cache = (*LRU)(nil)
