package listing

import "sort"

type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

func ParseDirection(s string) Direction {
	if s == "desc" || s == "-" {
		return Desc
	}
	return Asc
}

// Sort returns a stably sorted copy; the input is untouched.
func Sort[T any](items []T, col Column[T], dir Direction) []T {
	out := make([]T, len(items))
	copy(out, items)
	if col.Value == nil {
		return out
	}
	keys := make([]string, len(out))
	for i, item := range out {
		keys[i] = col.Value(item)
	}
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		c, valid := Compare(col.Kind, keys[idx[i]], keys[idx[j]])
		if !valid {
			return c < 0
		}
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
	sorted := make([]T, len(out))
	for i, k := range idx {
		sorted[i] = out[k]
	}
	return sorted
}

// SortState is the column header toggle: a repeated key flips direction, a
// new key starts ascending.
type SortState struct {
	Key string
	Dir Direction
}

func (s *SortState) Toggle(key string) {
	if s.Key == key {
		if s.Dir == Asc {
			s.Dir = Desc
		} else {
			s.Dir = Asc
		}
		return
	}
	s.Key = key
	s.Dir = Asc
}
