package model

import "time"

// Entry type literals.  The API accepts exactly these two values; anything
// else is a validation error.
const (
	TypeMovie  = "Movie"
	TypeTVShow = "TV Show"
)

// Entry represents one catalog record as stored in the `entries` table and
// as serialized over the API.  Only title and type are required; every other
// field is free-form text the user may leave empty.  The id is generated by
// the database and never changes once assigned.
//
// Fields:
//  ID        – primary key identifier of the entry.
//  Title     – non-empty display title.
//  Type      – "Movie" or "TV Show".
//  Director  – optional director name.
//  Budget    – optional budget, free-form (e.g. "$165M").
//  Location  – optional filming/setting location.
//  Duration  – optional duration, free-form.
//  Year      – optional release year, free-form.
//  Notes     – optional free-form notes.
//  PosterURL – optional http(s) URL or base64 data URI for the poster.
//  CreatedAt – timestamp of creation; the list orders by it descending.
type Entry struct {
	ID        uint64    `json:"id"`        // entries.id
	Title     string    `json:"title"`     // entries.title
	Type      string    `json:"type"`      // entries.type
	Director  string    `json:"director"`  // entries.director
	Budget    string    `json:"budget"`    // entries.budget
	Location  string    `json:"location"`  // entries.location
	Duration  string    `json:"duration"`  // entries.duration
	Year      string    `json:"year"`      // entries.year
	Notes     string    `json:"notes"`     // entries.notes
	PosterURL string    `json:"posterUrl"` // entries.poster_url
	CreatedAt time.Time `json:"createdAt"` // entries.created_at
}

// EntryPage is the response shape of the paginated list endpoint.  Total is
// the full unfiltered count so clients can tell when they have everything.
type EntryPage struct {
	Data  []Entry `json:"data"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
	Total int     `json:"total"`
}
