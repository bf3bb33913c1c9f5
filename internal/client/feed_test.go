package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/media-catalog/internal/model"
)

// newCatalogServer serves a fixed newest-first catalog of n entries with the
// real pagination contract.  hold, when non-nil, blocks every request until
// the channel is closed, which lets tests pin a fetch in flight.
func newCatalogServer(n int, hold chan struct{}, requests *int32) *httptest.Server {
	entries := make([]model.Entry, n)
	base := time.Unix(1_700_000_000, 0).UTC()
	for i := 0; i < n; i++ {
		id := uint64(n - i)
		entries[i] = model.Entry{
			ID:        id,
			Title:     fmt.Sprintf("title-%d", id),
			Type:      model.TypeMovie,
			CreatedAt: base.Add(time.Duration(id) * time.Second),
		}
	}
	var mu sync.Mutex
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hold != nil {
			<-hold
		}
		mu.Lock()
		if requests != nil {
			*requests++
		}
		mu.Unlock()

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		start := (page - 1) * limit
		if start > n {
			start = n
		}
		end := start + limit
		if end > n {
			end = n
		}
		_ = json.NewEncoder(w).Encode(model.EntryPage{
			Data: entries[start:end], Page: page, Limit: limit, Total: n,
		})
	}))
}

func TestFeed_AccumulatesAllPagesInOrder(t *testing.T) {
	t.Parallel()

	srv := newCatalogServer(45, nil, nil)
	defer srv.Close()
	feed := NewFeed(New(srv.URL), 20)

	ctx := context.Background()
	loads := 0
	for feed.HasMore() {
		ran, err := feed.LoadMore(ctx)
		require.NoError(t, err)
		require.True(t, ran)
		loads++
		require.LessOrEqual(t, loads, 3, "45 entries at limit 20 is three pages")
	}

	got := feed.Entries()
	require.Len(t, got, 45)
	require.Equal(t, 45, feed.Total())
	for i, e := range got {
		require.EqualValues(t, 45-i, e.ID, "server order preserved across pages")
	}
}

func TestFeed_ExhaustionStopsFetching(t *testing.T) {
	t.Parallel()

	var requests int32
	srv := newCatalogServer(5, nil, &requests)
	defer srv.Close()
	feed := NewFeed(New(srv.URL), 20)

	ran, err := feed.LoadMore(context.Background())
	require.NoError(t, err)
	require.True(t, ran)
	require.False(t, feed.HasMore())

	// exhausted: further calls are no-ops and hit the network zero times
	ran, err = feed.LoadMore(context.Background())
	require.NoError(t, err)
	require.False(t, ran)
	require.EqualValues(t, 1, requests)
}

func TestFeed_DropsOverlappingLoads(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	hold := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-hold
		_ = json.NewEncoder(w).Encode(model.EntryPage{
			Data:  []model.Entry{{ID: 2, Title: "a", Type: model.TypeMovie}, {ID: 1, Title: "b", Type: model.TypeMovie}},
			Page:  1,
			Limit: 20,
			Total: 2,
		})
	}))
	defer srv.Close()
	feed := NewFeed(New(srv.URL), 20)

	done := make(chan error, 1)
	go func() {
		_, err := feed.LoadMore(context.Background())
		done <- err
	}()

	// wait until the first load is pinned in flight, then verify further
	// triggers are dropped, not queued
	<-started
	for i := 0; i < 3; i++ {
		ran, err := feed.LoadMore(context.Background())
		require.NoError(t, err)
		require.False(t, ran, "call during in-flight load must be dropped")
	}

	close(hold)
	require.NoError(t, <-done)
	require.Len(t, feed.Entries(), 2, "exactly one page was fetched")
}

func TestFeed_ErrorLeavesCursorForRetry(t *testing.T) {
	t.Parallel()

	fail := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"Server error"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(model.EntryPage{
			Data:  []model.Entry{{ID: 1, Title: "t", Type: model.TypeMovie}},
			Page:  1,
			Limit: 20,
			Total: 1,
		})
	}))
	defer srv.Close()
	feed := NewFeed(New(srv.URL), 20)

	_, err := feed.LoadMore(context.Background())
	require.Error(t, err)
	require.Empty(t, feed.Entries())
	require.True(t, feed.HasMore())

	fail = false
	ran, err := feed.LoadMore(context.Background())
	require.NoError(t, err)
	require.True(t, ran)
	require.Len(t, feed.Entries(), 1)
}
