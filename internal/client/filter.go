package client

import (
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/media-catalog/internal/model"
)

// Filter holds the local search state: a free-text query matched
// case-insensitively against title, director, location and notes, and an
// exact type filter ("" matches any type).  Filtering is purely local over
// already-fetched entries; it never reaches the server.
type Filter struct {
	Query string
	Type  string
}

// Apply returns the entries matching the filter, preserving input order.
func (f Filter) Apply(entries []model.Entry) []model.Entry {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Type != "" && e.Type != f.Type {
			continue
		}
		if q != "" {
			hay := strings.ToLower(e.Title + " " + e.Director + " " + e.Location + " " + e.Notes)
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, e)
	}
	return out
}

// DebounceDelay is how long the query must settle before the filtered view
// is recomputed.
const DebounceDelay = 300 * time.Millisecond

// Debouncer runs a task after a settle delay as a cancellable delayed
// computation.  Scheduling a new task supersedes the pending one, so while
// the user is typing only the final keystroke triggers a filter pass.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

// NewDebouncer builds a debouncer with the given settle delay
// (DebounceDelay when delay <= 0).
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DebounceDelay
	}
	return &Debouncer{delay: delay}
}

// Schedule arranges for fn to run after the settle delay, cancelling any
// previously scheduled task.  The generation check closes the race where a
// fired timer loses the CPU to a new Schedule call before running fn.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := d.gen == gen
		d.mu.Unlock()
		if current {
			fn()
		}
	})
}

// Stop cancels any pending task.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
}
