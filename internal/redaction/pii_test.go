package redaction

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"redactor/internal/domain/entity"
)

func TestRedactReplacesPersonSpan(t *testing.T) {
	text := "Contact John Doe now"
	entities := []entity.PIIEntity{
		{Text: "John Doe", Label: "PERSON", Start: 8, End: 16},
	}

	out, count := Redact(text, entities, NewLabels("PERSON"), DefaultMarker)
	require.Equal(t, "Contact [REDACTED] now", out)
	require.Equal(t, 1, count)
}

func TestRedactDoesNotAssumeSortedSpans(t *testing.T) {
	text := "Call Alice or email bob@example.com today"
	entities := []entity.PIIEntity{
		{Text: "bob@example.com", Label: "EMAIL", Start: 20, End: 35},
		{Text: "Alice", Label: "PERSON", Start: 5, End: 10},
	}

	// Deliberately left in ascending order; the splice must still apply
	// right-to-left.
	out, count := Redact(text, entities, NewLabels("PERSON", "EMAIL"), DefaultMarker)
	require.Equal(t, "Call [REDACTED] or email [REDACTED] today", out)
	require.Equal(t, 2, count)
	require.NotContains(t, out, "Alice")
	require.NotContains(t, out, "bob@example.com")
}

func TestRedactSkipsNonSensitiveLabels(t *testing.T) {
	text := "Meeting on Tuesday with Alice"
	entities := []entity.PIIEntity{
		{Text: "Tuesday", Label: "DATE", Start: 11, End: 18},
		{Text: "Alice", Label: "PERSON", Start: 24, End: 29},
	}

	out, count := Redact(text, entities, NewLabels("PERSON"), DefaultMarker)
	require.Equal(t, "Meeting on Tuesday with [REDACTED]", out)
	require.Equal(t, 1, count)
}

func TestRedactSkipsMalformedSpans(t *testing.T) {
	text := "short text"

	tests := []struct {
		name string
		ent  entity.PIIEntity
	}{
		{"reversed", entity.PIIEntity{Label: "PERSON", Start: 8, End: 3}},
		{"negative", entity.PIIEntity{Label: "PERSON", Start: -4, End: -1}},
		{"past end", entity.PIIEntity{Label: "PERSON", Start: 50, End: 60}},
		{"empty", entity.PIIEntity{Label: "PERSON", Start: 4, End: 4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, count := Redact(text, []entity.PIIEntity{tc.ent}, NewLabels("PERSON"), DefaultMarker)
			require.Equal(t, text, out)
			require.Zero(t, count)
		})
	}
}

func TestRedactClampsOverlongSpan(t *testing.T) {
	text := "name: Bob"
	entities := []entity.PIIEntity{
		{Text: "Bob", Label: "PERSON", Start: 6, End: 40},
	}

	out, count := Redact(text, entities, NewLabels("PERSON"), DefaultMarker)
	require.Equal(t, "name: [REDACTED]", out)
	require.Equal(t, 1, count)
}

func TestRedactMarkerInsertionIsClean(t *testing.T) {
	text := "Ann met Ben at Acme Corp and phoned 555-0100"
	entities := []entity.PIIEntity{
		{Text: "Ann", Label: "PERSON", Start: 0, End: 3},
		{Text: "Ben", Label: "PERSON", Start: 8, End: 11},
		{Text: "Acme Corp", Label: "ORG", Start: 15, End: 24},
		{Text: "555-0100", Label: "PHONE", Start: 36, End: 44},
	}

	out, count := Redact(text, entities, NewLabels("PERSON", "ORG", "PHONE"), DefaultMarker)
	require.Equal(t, 4, count)
	require.Equal(t, 4, strings.Count(out, DefaultMarker))
	for _, e := range entities {
		require.NotContains(t, out, e.Text)
	}
	// Untouched context survives intact.
	require.Contains(t, out, " met ")
	require.Contains(t, out, " and phoned ")
}

func TestRedactCustomMarker(t *testing.T) {
	text := "Alice"
	entities := []entity.PIIEntity{{Label: "PERSON", Start: 0, End: 5}}

	out, count := Redact(text, entities, NewLabels("PERSON"), "***")
	require.Equal(t, "***", out)
	require.Equal(t, 1, count)
}
