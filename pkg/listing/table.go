package listing

import (
	"context"
	"fmt"
	"sort"
)

// Table holds one view's loaded collection. Filters, sort and page are
// reapplied to the base order on every read, so nothing mutates the loaded
// items.
type Table[T any] struct {
	columns []Column[T]
	size    int

	base    []T
	filters map[string]Predicate[T]
	sort    SortState
	sorted  bool
	page    int
}

func NewTable[T any](columns []Column[T], pageSize int) *Table[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Table[T]{
		columns: columns,
		size:    pageSize,
		filters: map[string]Predicate[T]{},
		page:    1,
	}
}

func (t *Table[T]) Columns() []Column[T] { return t.columns }
func (t *Table[T]) PageSize() int       { return t.size }
func (t *Table[T]) Sorting() SortState  { return t.sort }

// Load replaces the collection and returns to page 1. Filters and sort stay.
func (t *Table[T]) Load(items []T) {
	t.base = make([]T, len(items))
	copy(t.base, items)
	t.page = 1
}

func (t *Table[T]) Len() int { return len(t.base) }

// Items returns a copy of the loaded collection in load order.
func (t *Table[T]) Items() []T {
	out := make([]T, len(t.base))
	copy(out, t.base)
	return out
}

// Find returns the first loaded item matching match.
func (t *Table[T]) Find(match func(T) bool) (T, bool) {
	for _, item := range t.base {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// SetFilter installs or, for a nil predicate, removes a named filter.
func (t *Table[T]) SetFilter(name string, p Predicate[T]) {
	if p == nil {
		delete(t.filters, name)
	} else {
		t.filters[name] = p
	}
	t.page = 1
}

func (t *Table[T]) ClearFilters() {
	t.filters = map[string]Predicate[T]{}
	t.page = 1
}

// SortBy toggles the sort on key.
func (t *Table[T]) SortBy(key string) error {
	if _, ok := FindColumn(t.columns, key); !ok {
		return fmt.Errorf("unknown sort column %q", key)
	}
	t.sort.Toggle(key)
	t.sorted = true
	return nil
}

// SetSort sets key and direction directly.
func (t *Table[T]) SetSort(key string, dir Direction) error {
	if _, ok := FindColumn(t.columns, key); !ok {
		return fmt.Errorf("unknown sort column %q", key)
	}
	t.sort = SortState{Key: key, Dir: dir}
	t.sorted = true
	return nil
}

func (t *Table[T]) GoTo(page int) {
	t.page = page
}

// Filtered is the filtered and sorted collection across all pages.
func (t *Table[T]) Filtered() []T {
	names := make([]string, 0, len(t.filters))
	for name := range t.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	preds := make([]Predicate[T], 0, len(names))
	for _, name := range names {
		preds = append(preds, t.filters[name])
	}
	items := Apply(t.base, preds...)
	if t.sorted {
		if col, ok := FindColumn(t.columns, t.sort.Key); ok {
			items = Sort(items, col, t.sort.Dir)
		}
	}
	return items
}

// View returns the current page, clamped to the filtered page range.
func (t *Table[T]) View() Page[T] {
	p := Paginate(t.Filtered(), t.page, t.size)
	t.page = p.Number
	return p
}

// Source serves one page at a time; total is the server-side count.
type Source[T any] interface {
	Fetch(ctx context.Context, page, size int) (items []T, total int, err error)
}

// ServerPager is the refetch-per-page strategy: only the current page is
// held.
type ServerPager[T any] struct {
	src  Source[T]
	size int
	cur  Page[T]
}

func NewServerPager[T any](src Source[T], pageSize int) *ServerPager[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &ServerPager[T]{src: src, size: pageSize, cur: Page[T]{Number: 1, Size: pageSize}}
}

func (p *ServerPager[T]) Load(ctx context.Context, page int) (Page[T], error) {
	if page < 1 {
		page = 1
	}
	items, total, err := p.src.Fetch(ctx, page, p.size)
	if err != nil {
		return p.cur, err
	}
	p.cur = Page[T]{
		Items:  items,
		Number: page,
		Size:   p.size,
		Pages:  PageCount(total, p.size),
		Total:  total,
	}
	return p.cur, nil
}

func (p *ServerPager[T]) Current() Page[T] { return p.cur }

func (p *ServerPager[T]) Next(ctx context.Context) (Page[T], error) {
	if !p.cur.HasNext() {
		return p.cur, nil
	}
	return p.Load(ctx, p.cur.Number+1)
}

func (p *ServerPager[T]) Prev(ctx context.Context) (Page[T], error) {
	if !p.cur.HasPrev() {
		return p.cur, nil
	}
	return p.Load(ctx, p.cur.Number-1)
}
