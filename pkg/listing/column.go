// Package listing is the one list component every view uses: filter
// predicates, a stable typed sort and client-side or server-side paging over
// a loaded collection.
package listing

import (
	"strconv"
	"strings"
	"time"

	"github.com/dungnt1702/NOV-RECO-sub000/pkg/serrors"
)

type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindDate
)

// Column describes one field of T for sorting, filtering, rendering and
// export.
type Column[T any] struct {
	Key   string
	Title string
	Kind  Kind
	Value func(T) string
}

func FindColumn[T any](cols []Column[T], key string) (Column[T], bool) {
	for _, c := range cols {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseDate accepts the formats the portal emits: ISO timestamps, plain
// dates and dd/mm/yyyy.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CheckDate reports a validation error for field when s is set but not a
// date ParseDate understands. An empty s is an open bound.
func CheckDate(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, ok := ParseDate(s); !ok {
		return serrors.Validation(field, "INVALID_DATE", field+": not a date: "+s, "Validation.Date")
	}
	return nil
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Compare orders two raw values by kind. The second result is false when
// either side does not parse for that kind; such values sort after valid ones.
func Compare(kind Kind, a, b string) (int, bool) {
	switch kind {
	case KindNumber:
		fa, okA := parseNumber(a)
		fb, okB := parseNumber(b)
		if !okA || !okB {
			return invalidOrder(okA, okB), false
		}
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		}
		return 0, true
	case KindDate:
		ta, okA := ParseDate(a)
		tb, okB := ParseDate(b)
		if !okA || !okB {
			return invalidOrder(okA, okB), false
		}
		return ta.Compare(tb), true
	default:
		return strings.Compare(strings.ToLower(a), strings.ToLower(b)), true
	}
}

func invalidOrder(okA, okB bool) int {
	switch {
	case okA && !okB:
		return -1
	case !okA && okB:
		return 1
	}
	return 0
}
