package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/media-catalog/internal/model"
	"github.com/iliyamo/media-catalog/internal/repository"
)

// fakeEntryStore is an in-memory EntryStore mirroring the repository's
// contract: newest-first listing, generated ids, ErrEntryNotFound on missing
// records.
type fakeEntryStore struct {
	nextID  uint64
	entries map[uint64]model.Entry
	now     time.Time
	failAll bool
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{nextID: 1, entries: map[uint64]model.Entry{}, now: time.Unix(1_700_000_000, 0).UTC()}
}

func (s *fakeEntryStore) ordered() []model.Entry {
	out := make([]model.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *fakeEntryStore) List(_ context.Context, page, limit int) (model.EntryPage, error) {
	if s.failAll {
		return model.EntryPage{}, context.DeadlineExceeded
	}
	all := s.ordered()
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return model.EntryPage{Data: all[start:end], Page: page, Limit: limit, Total: len(all)}, nil
}

func (s *fakeEntryStore) Create(_ context.Context, e model.Entry) (model.Entry, error) {
	if s.failAll {
		return model.Entry{}, context.DeadlineExceeded
	}
	e.ID = s.nextID
	s.nextID++
	s.now = s.now.Add(time.Second)
	e.CreatedAt = s.now
	s.entries[e.ID] = e
	return e, nil
}

func (s *fakeEntryStore) Update(_ context.Context, id uint64, upd repository.EntryUpdate) (model.Entry, error) {
	e, ok := s.entries[id]
	if !ok {
		return model.Entry{}, repository.ErrEntryNotFound
	}
	apply := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	apply(&e.Title, upd.Title)
	apply(&e.Type, upd.Type)
	apply(&e.Director, upd.Director)
	apply(&e.Budget, upd.Budget)
	apply(&e.Location, upd.Location)
	apply(&e.Duration, upd.Duration)
	apply(&e.Year, upd.Year)
	apply(&e.Notes, upd.Notes)
	apply(&e.PosterURL, upd.PosterURL)
	s.entries[id] = e
	return e, nil
}

func (s *fakeEntryStore) Delete(_ context.Context, id uint64) error {
	if _, ok := s.entries[id]; !ok {
		return repository.ErrEntryNotFound
	}
	delete(s.entries, id)
	return nil
}

func doEntryReq(h *EntryHandler, method, target, body string, fn func(echo.Context) error, params ...string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) == 2 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}
	_ = fn(c)
	return rec
}

func seedEntries(t *testing.T, store *fakeEntryStore, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := store.Create(context.Background(), model.Entry{Title: "t", Type: model.TypeMovie})
		require.NoError(t, err)
	}
}

func TestEntryList_PaginationContract(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore()
	h := NewEntryHandler(store, nil)
	seedEntries(t, store, 45)

	seen := map[uint64]bool{}
	var got int
	for page := 1; page <= 3; page++ {
		rec := doEntryReq(h, http.MethodGet, fmt.Sprintf("/api/entries?page=%d&limit=20", page), "", h.List)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp model.EntryPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, 45, resp.Total)

		var prev time.Time
		for i, e := range resp.Data {
			require.False(t, seen[e.ID], "page %d repeats entry %d", page, e.ID)
			seen[e.ID] = true
			if i > 0 {
				require.False(t, e.CreatedAt.After(prev), "entries must be newest-first")
			}
			prev = e.CreatedAt
		}
		got += len(resp.Data)
	}
	require.Equal(t, 45, got, "slices across pages must sum to total")
}

func TestEntryList_DefaultsAndClamp(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore()
	h := NewEntryHandler(store, nil)
	seedEntries(t, store, 3)

	rec := doEntryReq(h, http.MethodGet, "/api/entries", "", h.List)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.EntryPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Page)
	require.Equal(t, 20, resp.Limit)

	rec = doEntryReq(h, http.MethodGet, "/api/entries?page=-3&limit=500", "", h.List)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Page, "page below 1 falls back to 1")
	require.Equal(t, 100, resp.Limit, "limit is clamped to 100")
}

func TestEntryList_StoreError(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore()
	store.failAll = true
	h := NewEntryHandler(store, nil)

	rec := doEntryReq(h, http.MethodGet, "/api/entries", "", h.List)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Server error")
}

func TestEntryCreate_Valid(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore()
	h := NewEntryHandler(store, nil)

	rec := doEntryReq(h, http.MethodPost, "/api/entries", `{"title":"Dune","type":"Movie"}`, h.Create)
	require.Equal(t, http.StatusCreated, rec.Code)

	var e model.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	require.EqualValues(t, 1, e.ID)
	require.Equal(t, "Dune", e.Title)
	require.Equal(t, "Movie", e.Type)
	require.False(t, e.CreatedAt.IsZero())

	// ids are unique and previously unseen
	rec = doEntryReq(h, http.MethodPost, "/api/entries", `{"title":"Severance","type":"TV Show"}`, h.Create)
	require.Equal(t, http.StatusCreated, rec.Code)
	var e2 model.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e2))
	require.NotEqual(t, e.ID, e2.ID)
}

func TestEntryCreate_ValidationIssues(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore()
	h := NewEntryHandler(store, nil)

	rec := doEntryReq(h, http.MethodPost, "/api/entries", `{"title":"Dune","type":"Movie","posterUrl":"not-a-url"}`, h.Create)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Error, 1)
	require.Equal(t, "posterUrl", resp.Error[0].Field)
	require.Len(t, store.entries, 0, "nothing persisted on validation failure")
}

func TestEntryUpdate_PartialAndIdempotent(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore()
	h := NewEntryHandler(store, nil)
	created, err := store.Create(context.Background(), model.Entry{Title: "Dune", Type: model.TypeMovie, Director: "Villeneuve"})
	require.NoError(t, err)

	rec := doEntryReq(h, http.MethodPut, "/api/entries/1", `{"budget":"$165M"}`, h.Update, "id", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	var e model.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	require.Equal(t, "$165M", e.Budget)
	require.Equal(t, "Dune", e.Title, "unsupplied fields stay untouched")
	require.Equal(t, "Villeneuve", e.Director)

	// empty partial returns the entry unchanged
	rec = doEntryReq(h, http.MethodPut, "/api/entries/1", `{}`, h.Update, "id", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	var same model.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &same))
	require.Equal(t, created.ID, same.ID)
	require.Equal(t, "$165M", same.Budget)
}

func TestEntryUpdate_NotFoundAndBadID(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore()
	h := NewEntryHandler(store, nil)

	rec := doEntryReq(h, http.MethodPut, "/api/entries/99", `{"notes":"x"}`, h.Update, "id", "99")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doEntryReq(h, http.MethodPut, "/api/entries/abc", `{"notes":"x"}`, h.Update, "id", "abc")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Invalid id")
}

func TestEntryDelete_TwiceYieldsNotFound(t *testing.T) {
	t.Parallel()

	store := newFakeEntryStore()
	h := NewEntryHandler(store, nil)
	_, err := store.Create(context.Background(), model.Entry{Title: "x", Type: model.TypeMovie})
	require.NoError(t, err)

	rec := doEntryReq(h, http.MethodDelete, "/api/entries/1", "", h.Delete, "id", "1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = doEntryReq(h, http.MethodDelete, "/api/entries/1", "", h.Delete, "id", "1")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
