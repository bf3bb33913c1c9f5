package client

import (
	"context"
	"sync"

	"github.com/iliyamo/media-catalog/internal/model"
)

// Feed accumulates catalog pages for an infinite-scroll view.  Pages are
// requested strictly in increasing order, one at a time: while a load is in
// flight every further LoadMore call is dropped, not queued, so out-of-order
// appends cannot happen.  The feed is exhausted once it holds as many
// entries as the server-reported total.
//
// The presentation layer calls LoadMore once on mount and again whenever its
// proximity signal fires (the Go analogue of a sentinel element entering the
// viewport); how that signal is produced is not the feed's concern.
type Feed struct {
	client *Client
	limit  int

	mu      sync.Mutex
	entries []model.Entry
	page    int
	total   int
	hasMore bool
	loading bool
}

// NewFeed builds a feed fetching pages of the given size (the server default
// when size < 1).
func NewFeed(c *Client, limit int) *Feed {
	if limit < 1 {
		limit = defaultFeedLimit
	}
	return &Feed{client: c, limit: limit, page: 1, hasMore: true}
}

const defaultFeedLimit = 20

// LoadMore fetches the next page and appends its entries in server order.
// It reports whether a fetch actually ran: false means the call was dropped
// because a load was in flight or the feed is exhausted.  A failed fetch
// leaves the cursor untouched so the same page is retried next time.
func (f *Feed) LoadMore(ctx context.Context) (bool, error) {
	f.mu.Lock()
	if f.loading || !f.hasMore {
		f.mu.Unlock()
		return false, nil
	}
	f.loading = true
	page := f.page
	f.mu.Unlock()

	result, err := f.client.ListEntries(ctx, page, f.limit)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loading = false
	if err != nil {
		return false, err
	}
	f.entries = append(f.entries, result.Data...)
	f.page++
	f.total = result.Total
	if len(f.entries) >= result.Total {
		f.hasMore = false
	}
	return true, nil
}

// Entries returns a copy of the accumulated list in server order.
func (f *Feed) Entries() []model.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// HasMore reports whether further pages remain.
func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// Total returns the server-reported total from the most recent page, or 0
// before the first successful load.
func (f *Feed) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}
