package redaction

import (
	"sort"

	"redactor/internal/domain/entity"
)

// DefaultMarker replaces each sensitive span.
const DefaultMarker = "[REDACTED]"

// Labels is the allow-list of entity categories considered sensitive.
// Entities with any other label pass through untouched.
type Labels map[string]struct{}

func NewLabels(names ...string) Labels {
	l := make(Labels, len(names))
	for _, n := range names {
		if n != "" {
			l[n] = struct{}{}
		}
	}
	return l
}

func (l Labels) contains(name string) bool {
	_, ok := l[name]
	return ok
}

// Redact splices marker over every entity span whose label is in labels and
// returns the redacted text with the number of spans replaced. Spans are
// byte offsets [Start, End) into text. Replacements run in descending Start
// order so offsets left of each splice stay valid; input order is not
// assumed. Out-of-range or reversed spans are clamped and skipped instead
// of failing the document.
func Redact(text string, entities []entity.PIIEntity, labels Labels, marker string) (string, int) {
	spans := make([]entity.PIIEntity, 0, len(entities))
	for _, e := range entities {
		if labels.contains(e.Label) {
			spans = append(spans, e)
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start > spans[j].Start })

	count := 0
	for _, s := range spans {
		start := clamp(s.Start, len(text))
		end := clamp(s.End, len(text))
		if start >= end {
			continue
		}
		text = text[:start] + marker + text[end:]
		count++
	}
	return text, count
}

func clamp(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
