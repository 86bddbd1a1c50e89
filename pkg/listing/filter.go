package listing

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

type Predicate[T any] func(T) bool

// FieldEquals keeps items whose value equals want exactly. An empty want
// keeps everything.
func FieldEquals[T any](value func(T) string, want string) Predicate[T] {
	if want == "" {
		return nil
	}
	return func(item T) bool {
		return value(item) == want
	}
}

// DateRange keeps items whose date falls within [from, to], compared by
// calendar day. A zero bound is open; unparseable dates are dropped once any
// bound is set.
func DateRange[T any](value func(T) string, from, to time.Time) Predicate[T] {
	if from.IsZero() && to.IsZero() {
		return nil
	}
	from = day(from)
	to = day(to)
	return func(item T) bool {
		t, ok := ParseDate(value(item))
		if !ok {
			return false
		}
		t = day(t)
		if !from.IsZero() && t.Before(from) {
			return false
		}
		if !to.IsZero() && t.After(to) {
			return false
		}
		return true
	}
}

func day(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const minFuzzyRunes = 3

// TextSearch matches a case-insensitive substring of any field; queries of
// three or more runes also match fuzzily (letters in order).
func TextSearch[T any](query string, fields ...func(T) string) Predicate[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(fields) == 0 {
		return nil
	}
	fuzzyOK := utf8.RuneCountInString(q) >= minFuzzyRunes
	return func(item T) bool {
		for _, f := range fields {
			v := f(item)
			if strings.Contains(strings.ToLower(v), q) {
				return true
			}
			if fuzzyOK && fuzzy.MatchNormalizedFold(q, v) {
				return true
			}
		}
		return false
	}
}

// Apply returns the items passing every non-nil predicate, in input order.
func Apply[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, p := range preds {
			if p != nil && !p(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}
