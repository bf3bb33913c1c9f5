package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/media-catalog/internal/model"
)

const entryColumns = "id,title,type,director,budget,location,duration,year,notes,poster_url,created_at"

// EntryRepo provides CRUD access to the `entries` table.
type EntryRepo struct{ DB *sql.DB }

func NewEntryRepo(db *sql.DB) *EntryRepo { return &EntryRepo{DB: db} }

// EntryUpdate carries the column changes of a partial update.  Nil fields
// are left untouched.
type EntryUpdate struct {
	Title     *string
	Type      *string
	Director  *string
	Budget    *string
	Location  *string
	Duration  *string
	Year      *string
	Notes     *string
	PosterURL *string
}

// List returns one page of entries ordered newest-first together with the
// full unfiltered count.  The id tiebreak keeps pages disjoint when several
// rows share a created_at timestamp.
func (r *EntryRepo) List(ctx context.Context, page, limit int) (model.EntryPage, error) {
	offset := (page - 1) * limit
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM entries ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return model.EntryPage{}, err
	}
	defer rows.Close()

	data := make([]model.Entry, 0, limit)
	for rows.Next() {
		var e model.Entry
		if err := scanEntry(rows, &e); err != nil {
			return model.EntryPage{}, err
		}
		data = append(data, e)
	}
	if err := rows.Err(); err != nil {
		return model.EntryPage{}, err
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&total); err != nil {
		return model.EntryPage{}, err
	}
	return model.EntryPage{Data: data, Page: page, Limit: limit, Total: total}, nil
}

// Create inserts a new entry and returns it with its generated id and
// creation timestamp.
func (r *EntryRepo) Create(ctx context.Context, e model.Entry) (model.Entry, error) {
	e.CreatedAt = time.Now().UTC().Truncate(time.Second)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO entries (title,type,director,budget,location,duration,year,notes,poster_url,created_at) VALUES (?,?,?,?,?,?,?,?,?,?)",
		e.Title, e.Type, e.Director, e.Budget, e.Location, e.Duration, e.Year, e.Notes, e.PosterURL, e.CreatedAt)
	if err != nil {
		return model.Entry{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Entry{}, err
	}
	e.ID = uint64(id)
	return e, nil
}

// GetByID fetches a single entry by id.
func (r *EntryRepo) GetByID(ctx context.Context, id uint64) (model.Entry, error) {
	var e model.Entry
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM entries WHERE id=? LIMIT 1", id)
	if err := scanEntry(row, &e); err != nil {
		if err == sql.ErrNoRows {
			return model.Entry{}, ErrEntryNotFound
		}
		return model.Entry{}, err
	}
	return e, nil
}

// Update applies the supplied fields to an existing entry and returns the
// updated row.  An empty update is a read: the entry comes back unchanged.
// Returns ErrEntryNotFound when the id has no matching record.
func (r *EntryRepo) Update(ctx context.Context, id uint64, upd EntryUpdate) (model.Entry, error) {
	if _, err := r.GetByID(ctx, id); err != nil {
		return model.Entry{}, err
	}

	sets := make([]string, 0, 9)
	args := make([]any, 0, 10)
	appendSet := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+"=?")
			args = append(args, *v)
		}
	}
	appendSet("title", upd.Title)
	appendSet("type", upd.Type)
	appendSet("director", upd.Director)
	appendSet("budget", upd.Budget)
	appendSet("location", upd.Location)
	appendSet("duration", upd.Duration)
	appendSet("year", upd.Year)
	appendSet("notes", upd.Notes)
	appendSet("poster_url", upd.PosterURL)

	if len(sets) > 0 {
		args = append(args, id)
		query := "UPDATE entries SET " + strings.Join(sets, ",") + " WHERE id=?"
		if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
			return model.Entry{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes an entry by id.  Returns ErrEntryNotFound when nothing was
// deleted, so a second delete of the same id reports 404 instead of success.
func (r *EntryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM entries WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// scanEntry reads one entries row from either *sql.Row or *sql.Rows.
func scanEntry(s interface{ Scan(...any) error }, e *model.Entry) error {
	return s.Scan(&e.ID, &e.Title, &e.Type, &e.Director, &e.Budget, &e.Location,
		&e.Duration, &e.Year, &e.Notes, &e.PosterURL, &e.CreatedAt)
}
