// Package queue defines message payloads exchanged over the message broker
// plus the publisher and consumer that move them.
package queue

// Actions carried by EntryChangedEvent.  They mirror the reducer actions the
// client cache applies, so a consumer can replay the event stream into the
// same shape the UI holds.
const (
	ActionAdded   = "added"
	ActionUpdated = "updated"
	ActionRemoved = "removed"
)

// EntryChangedEvent is published whenever a catalog entry is created,
// updated or deleted.  It carries enough information for downstream
// consumers to log or trigger analytics without querying the primary
// database.  For a removal only the id is meaningful.
type EntryChangedEvent struct {
	Action    string `json:"action"`
	EntryID   uint64 `json:"entry_id"`
	Title     string `json:"title,omitempty"`
	Type      string `json:"type,omitempty"`
	ChangedAt string `json:"changed_at"`
}
