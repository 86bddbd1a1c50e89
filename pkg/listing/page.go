package listing

type Page[T any] struct {
	Items  []T
	Number int
	Size   int
	Pages  int
	Total  int
}

func (p Page[T]) HasPrev() bool { return p.Number > 1 }
func (p Page[T]) HasNext() bool { return p.Number < p.Pages }

func PageCount(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage keeps page within [1, pages]; an empty listing is page 1.
func ClampPage(page, pages int) int {
	if pages < 1 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}

// Paginate slices items into the 1-based page of the given size.
func Paginate[T any](items []T, page, size int) Page[T] {
	if size <= 0 {
		size = len(items)
		if size == 0 {
			size = 1
		}
	}
	pages := PageCount(len(items), size)
	page = ClampPage(page, pages)
	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return Page[T]{
		Items:  items[start:end],
		Number: page,
		Size:   size,
		Pages:  pages,
		Total:  len(items),
	}
}
