package client

import (
	"sync"

	"github.com/iliyamo/media-catalog/internal/model"
)

// EntryCache is the client-side view of the catalog: entries keyed by id,
// updated by reducer-style actions driven by server responses.  After a
// create the server's returned entry is Added, after an update Updated, and
// after a delete the id is Removed — no refetch.  Display order is
// newest-first: additions go to the front, updates keep their position.
type EntryCache struct {
	mu    sync.Mutex
	byID  map[uint64]model.Entry
	order []uint64
}

func NewEntryCache() *EntryCache {
	return &EntryCache{byID: make(map[uint64]model.Entry)}
}

// Seed appends a page of entries in server order, typically straight from
// Feed.LoadMore.  Entries already present are refreshed in place rather than
// duplicated.
func (c *EntryCache) Seed(entries []model.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		if _, ok := c.byID[e.ID]; !ok {
			c.order = append(c.order, e.ID)
		}
		c.byID[e.ID] = e
	}
}

// Added inserts a freshly created entry at the front.
func (c *EntryCache) Added(e model.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[e.ID]; !ok {
		c.order = append([]uint64{e.ID}, c.order...)
	}
	c.byID[e.ID] = e
}

// Updated replaces an entry in place.  Updating an id the cache has never
// seen is a no-op rather than an insert: the entry belongs to a page that
// has not been fetched yet.
func (c *EntryCache) Updated(e model.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[e.ID]; ok {
		c.byID[e.ID] = e
	}
}

// Removed drops an entry by id.
func (c *EntryCache) Removed(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[id]; !ok {
		return
	}
	delete(c.byID, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Get returns the cached entry for an id.
func (c *EntryCache) Get(id uint64) (model.Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.byID[id]
	return e, ok
}

// Snapshot returns the entries in display order.
func (c *EntryCache) Snapshot() []model.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Entry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of cached entries.
func (c *EntryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
