package validator

import (
	"testing"
)

func strp(s string) *string { return &s }

func TestValidateCreate_MinimalValid(t *testing.T) {
	t.Parallel()

	in := EntryInput{Title: strp("Dune"), Type: strp("Movie")}
	if issues := ValidateCreate(in); len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
}

func TestValidateCreate_MissingRequired(t *testing.T) {
	t.Parallel()

	issues := ValidateCreate(EntryInput{})
	if len(issues) != 2 {
		t.Fatalf("expected issues for title and type, got %v", issues)
	}
	fields := map[string]bool{}
	for _, is := range issues {
		fields[is.Field] = true
	}
	if !fields["title"] || !fields["type"] {
		t.Fatalf("expected title and type issues, got %v", issues)
	}
}

func TestValidateCreate_EmptyTitle(t *testing.T) {
	t.Parallel()

	in := EntryInput{Title: strp("   "), Type: strp("Movie")}
	issues := ValidateCreate(in)
	if len(issues) != 1 || issues[0].Field != "title" {
		t.Fatalf("expected a title issue, got %v", issues)
	}
}

func TestValidateCreate_TypeLiterals(t *testing.T) {
	t.Parallel()

	for _, typ := range []string{"Movie", "TV Show"} {
		in := EntryInput{Title: strp("x"), Type: strp(typ)}
		if issues := ValidateCreate(in); len(issues) != 0 {
			t.Fatalf("type %q should be accepted, got %v", typ, issues)
		}
	}
	for _, typ := range []string{"movie", "TVShow", "Series", ""} {
		in := EntryInput{Title: strp("x"), Type: strp(typ)}
		issues := ValidateCreate(in)
		if len(issues) != 1 || issues[0].Field != "type" {
			t.Fatalf("type %q should be rejected, got %v", typ, issues)
		}
	}
}

func TestValidateFields_PosterURL(t *testing.T) {
	t.Parallel()

	accepted := []string{
		"",
		"https://x/y.png",
		"http://example.com/poster.jpg",
		"data:image/png;base64,AAAA",
		"data:image/jpeg;base64,QUJD=",
	}
	for _, u := range accepted {
		if issues := ValidateUpdate(EntryInput{PosterURL: strp(u)}); len(issues) != 0 {
			t.Fatalf("posterUrl %q should be accepted, got %v", u, issues)
		}
	}

	rejected := []string{
		"not-a-url",
		"ftp://example.com/a.png",
		"data:image/png;base64",
		"data:;base64,AAAA",
	}
	for _, u := range rejected {
		issues := ValidateUpdate(EntryInput{PosterURL: strp(u)})
		if len(issues) != 1 || issues[0].Field != "posterUrl" {
			t.Fatalf("posterUrl %q should be rejected, got %v", u, issues)
		}
	}
}

func TestValidateUpdate_EmptyPartial(t *testing.T) {
	t.Parallel()

	if issues := ValidateUpdate(EntryInput{}); len(issues) != 0 {
		t.Fatalf("empty partial should validate, got %v", issues)
	}
}
