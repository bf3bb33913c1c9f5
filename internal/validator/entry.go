// Package validator checks entry payloads before they reach the store.  The
// same per-field rules apply on create and update; create additionally
// requires title and type to be present.  Failures are reported as a list of
// field-level issues so the client can attach messages to form inputs.
package validator

import (
	"regexp"
	"strings"

	"github.com/iliyamo/media-catalog/internal/model"
)

// Issue describes a single validation failure on one field.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// EntryInput is the bind target for create and update payloads.  Pointer
// fields distinguish "absent" from "present but empty", which matters for
// partial updates: only supplied fields are applied.
type EntryInput struct {
	Title     *string `json:"title"`
	Type      *string `json:"type"`
	Director  *string `json:"director"`
	Budget    *string `json:"budget"`
	Location  *string `json:"location"`
	Duration  *string `json:"duration"`
	Year      *string `json:"year"`
	Notes     *string `json:"notes"`
	PosterURL *string `json:"posterUrl"`
}

var (
	httpURLRe = regexp.MustCompile(`^https?://`)
	dataURLRe = regexp.MustCompile(`^data:[\w+-]+/[\w+.-]+;base64,[A-Za-z0-9+/]+=*$`)
)

// ValidateCreate checks a full create payload.  Title and type are required;
// everything else follows the shared per-field rules.
func ValidateCreate(in EntryInput) []Issue {
	var issues []Issue
	if in.Title == nil {
		issues = append(issues, Issue{Field: "title", Message: "title is required"})
	}
	if in.Type == nil {
		issues = append(issues, Issue{Field: "type", Message: "type is required"})
	}
	return append(issues, validateFields(in)...)
}

// ValidateUpdate checks a partial payload: every field is optional but any
// field that is present must satisfy the same rules as on create.
func ValidateUpdate(in EntryInput) []Issue {
	return validateFields(in)
}

// validateFields applies the per-field rules to whichever fields are set.
func validateFields(in EntryInput) []Issue {
	var issues []Issue
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		issues = append(issues, Issue{Field: "title", Message: "title must not be empty"})
	}
	if in.Type != nil && *in.Type != model.TypeMovie && *in.Type != model.TypeTVShow {
		issues = append(issues, Issue{Field: "type", Message: `type must be "Movie" or "TV Show"`})
	}
	// An empty posterUrl string means "no poster" and is accepted as-is.
	if in.PosterURL != nil && *in.PosterURL != "" {
		if !httpURLRe.MatchString(*in.PosterURL) && !dataURLRe.MatchString(*in.PosterURL) {
			issues = append(issues, Issue{Field: "posterUrl", Message: "posterUrl must be an http(s) url or a base64 data URL"})
		}
	}
	return issues
}
