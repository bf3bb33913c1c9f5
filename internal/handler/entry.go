package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/media-catalog/internal/model"
	"github.com/iliyamo/media-catalog/internal/queue"
	"github.com/iliyamo/media-catalog/internal/repository"
	"github.com/iliyamo/media-catalog/internal/validator"
)

// Default and maximum page sizes for the list endpoint.
const (
	defaultLimit = 20
	maxLimit     = 100
)

// EntryStore is the persistence surface the entry handlers need.  It is
// implemented by *repository.EntryRepo; tests supply an in-memory fake.
type EntryStore interface {
	List(ctx context.Context, page, limit int) (model.EntryPage, error)
	Create(ctx context.Context, e model.Entry) (model.Entry, error)
	Update(ctx context.Context, id uint64, upd repository.EntryUpdate) (model.Entry, error)
	Delete(ctx context.Context, id uint64) error
}

// EntryHandler bundles dependencies for the catalog CRUD endpoints.  Events
// may be nil, in which case no change events are published.
type EntryHandler struct {
	Entries EntryStore
	Events  *queue.Publisher
}

func NewEntryHandler(entries EntryStore, events *queue.Publisher) *EntryHandler {
	if entries == nil {
		panic("nil store passed to NewEntryHandler")
	}
	return &EntryHandler{Entries: entries, Events: events}
}

// List handles GET /api/entries?page=&limit= and returns one page of entries
// ordered newest-first plus the unfiltered total.
func (h *EntryHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	result, err := h.Entries.List(ctx, page, limit)
	if err != nil {
		log.Printf("entries: list failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	return c.JSON(http.StatusOK, result)
}

// Create handles POST /api/entries.  The payload is validated first;
// field-level issues come back as a 400 so the form can annotate inputs.
func (h *EntryHandler) Create(c echo.Context) error {
	var in validator.EntryInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if issues := validator.ValidateCreate(in); len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": issues})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entry, err := h.Entries.Create(ctx, model.Entry{
		Title:     deref(in.Title),
		Type:      deref(in.Type),
		Director:  deref(in.Director),
		Budget:    deref(in.Budget),
		Location:  deref(in.Location),
		Duration:  deref(in.Duration),
		Year:      deref(in.Year),
		Notes:     deref(in.Notes),
		PosterURL: deref(in.PosterURL),
	})
	if err != nil {
		log.Printf("entries: create failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	h.publish(queue.ActionAdded, entry)
	return c.JSON(http.StatusCreated, entry)
}

// Update handles PUT /api/entries/:id.  Only supplied fields are applied;
// an empty payload returns the entry unchanged.
func (h *EntryHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}
	var in validator.EntryInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if issues := validator.ValidateUpdate(in); len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": issues})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entry, err := h.Entries.Update(ctx, id, repository.EntryUpdate{
		Title:     in.Title,
		Type:      in.Type,
		Director:  in.Director,
		Budget:    in.Budget,
		Location:  in.Location,
		Duration:  in.Duration,
		Year:      in.Year,
		Notes:     in.Notes,
		PosterURL: in.PosterURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		log.Printf("entries: update id=%d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	h.publish(queue.ActionUpdated, entry)
	return c.JSON(http.StatusOK, entry)
}

// Delete handles DELETE /api/entries/:id.  Deleting an absent id, including
// a second delete of the same id, answers 404.
func (h *EntryHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Entries.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Not found"})
		}
		log.Printf("entries: delete id=%d failed: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Server error"})
	}
	h.publish(queue.ActionRemoved, model.Entry{ID: id})
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// publish emits a change event without blocking the response.  Event
// delivery is best effort; the publisher logs its own failures.
func (h *EntryHandler) publish(action string, e model.Entry) {
	if h.Events == nil {
		return
	}
	go h.Events.PublishEntryChanged(context.Background(), queue.EntryChangedEvent{
		Action:    action,
		EntryID:   e.ID,
		Title:     e.Title,
		Type:      e.Type,
		ChangedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
