// Package listview derives the page a caller currently sees over a mutable
// collection: search/filter, sort, pagination and multi-select, kept
// consistent as the authoritative collection is refreshed.
//
// Every operation is total. Out-of-range input is clamped rather than
// rejected, since the projection models UI state, not an API contract.
// The zero page is never served: an empty filtered set still reports one
// (empty) page.
package listview

import "sort"

// Page is the derived visible slice of a projection.
type Page[T any] struct {
	Items         []T
	TotalFiltered int
	PageIndex     int
	TotalPages    int
}

// Projection maintains a filtered, sorted, paginated and selectable view
// over an authoritative collection of T, keyed by a caller-supplied id
// accessor so it stays generic over tours, bookings, users or wishlist
// entries.
//
// A Projection is driven by a single logical owner; it is not safe for
// concurrent mutation without external synchronization.
type Projection[T any, ID comparable] struct {
	id       func(T) ID
	source   []T
	match    func(T) bool
	less     func(a, b T) bool
	pageSize int
	page     int
	selected map[ID]struct{}
}

// New creates a projection over an empty collection.
func New[T any, ID comparable](id func(T) ID, pageSize int) *Projection[T, ID] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Projection[T, ID]{
		id:       id,
		pageSize: pageSize,
		page:     1,
		selected: make(map[ID]struct{}),
	}
}

// SetSource replaces the authoritative collection. Selection is pruned to
// ids still present, and the page index is clamped against the new
// filtered size.
func (p *Projection[T, ID]) SetSource(items []T) {
	p.source = make([]T, len(items))
	copy(p.source, items)

	present := make(map[ID]struct{}, len(p.source))
	for _, it := range p.source {
		present[p.id(it)] = struct{}{}
	}
	for id := range p.selected {
		if _, ok := present[id]; !ok {
			delete(p.selected, id)
		}
	}

	p.page = p.clampPage(p.page)
}

// SetFilter replaces the predicate and returns to the first page,
// matching list-screen behavior where changing any filter resets paging.
// A nil predicate matches everything.
func (p *Projection[T, ID]) SetFilter(match func(T) bool) {
	p.match = match
	p.page = 1
}

// SetSort replaces the ordering. A nil comparator keeps source order.
// The page index is kept: re-sorting does not move the user off their page.
func (p *Projection[T, ID]) SetSort(less func(a, b T) bool) {
	p.less = less
}

// SetPage moves to page n, clamped to the valid range. Out-of-range input
// is a no-op at the boundary, not an error: this models pagination clicks.
func (p *Projection[T, ID]) SetPage(n int) {
	p.page = p.clampPage(n)
}

// ToggleSelect flips selection for one id. Ids not present in the source
// are ignored so selection stays a subset of the collection.
func (p *Projection[T, ID]) ToggleSelect(id ID) {
	if _, ok := p.selected[id]; ok {
		delete(p.selected, id)
		return
	}
	for _, it := range p.source {
		if p.id(it) == id {
			p.selected[id] = struct{}{}
			return
		}
	}
}

// SelectAllVisible toggles selection of the currently visible page: if
// every visible item is already selected it deselects them, otherwise it
// selects the union.
func (p *Projection[T, ID]) SelectAllVisible() {
	page := p.VisiblePage()

	allSelected := len(page.Items) > 0
	for _, it := range page.Items {
		if _, ok := p.selected[p.id(it)]; !ok {
			allSelected = false
			break
		}
	}

	for _, it := range page.Items {
		if allSelected {
			delete(p.selected, p.id(it))
		} else {
			p.selected[p.id(it)] = struct{}{}
		}
	}
}

// ClearSelection removes every selected id.
func (p *Projection[T, ID]) ClearSelection() {
	p.selected = make(map[ID]struct{})
}

// IsSelected reports whether id is currently selected.
func (p *Projection[T, ID]) IsSelected(id ID) bool {
	_, ok := p.selected[id]
	return ok
}

// SelectedIDs returns the selected ids in source order.
func (p *Projection[T, ID]) SelectedIDs() []ID {
	ids := make([]ID, 0, len(p.selected))
	for _, it := range p.source {
		if _, ok := p.selected[p.id(it)]; ok {
			ids = append(ids, p.id(it))
		}
	}
	return ids
}

// VisiblePage derives the current page: paginate(sort(filter(source))).
// It recomputes from scratch on every call; mutating calls never leave a
// stale cache behind.
func (p *Projection[T, ID]) VisiblePage() Page[T] {
	filtered := p.filtered()

	if p.less != nil {
		sort.SliceStable(filtered, func(i, j int) bool {
			return p.less(filtered[i], filtered[j])
		})
	}

	total := len(filtered)
	totalPages := p.totalPages(total)
	page := p.page
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * p.pageSize
	if start > total {
		start = total
	}
	end := start + p.pageSize
	if end > total {
		end = total
	}

	return Page[T]{
		Items:         filtered[start:end],
		TotalFiltered: total,
		PageIndex:     page,
		TotalPages:    totalPages,
	}
}

func (p *Projection[T, ID]) filtered() []T {
	out := make([]T, 0, len(p.source))
	for _, it := range p.source {
		if p.match == nil || p.match(it) {
			out = append(out, it)
		}
	}
	return out
}

func (p *Projection[T, ID]) totalPages(totalFiltered int) int {
	pages := (totalFiltered + p.pageSize - 1) / p.pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (p *Projection[T, ID]) clampPage(n int) int {
	if n < 1 {
		return 1
	}
	if max := p.totalPages(len(p.filtered())); n > max {
		return max
	}
	return n
}
