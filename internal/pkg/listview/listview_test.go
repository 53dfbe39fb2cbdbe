package listview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID    string
	Title string
	Price int
}

func rowID(r row) string { return r.ID }

func numberedRows(n int) []row {
	rows := make([]row, n)
	for i := range rows {
		rows[i] = row{
			ID:    string(rune('a' + i%26)) + string(rune('0'+i/26)),
			Title: "item",
			Price: (i * 7) % 50,
		}
	}
	return rows
}

func TestVisiblePagePagination(t *testing.T) {
	p := New[row, string](rowID, 8)
	p.SetSource(numberedRows(23))

	page := p.VisiblePage()
	assert.Len(t, page.Items, 8)
	assert.Equal(t, 23, page.TotalFiltered)
	assert.Equal(t, 1, page.PageIndex)
	assert.Equal(t, 3, page.TotalPages)

	p.SetPage(3)
	page = p.VisiblePage()
	assert.Len(t, page.Items, 7, "last page holds the remainder")
	assert.Equal(t, 3, page.PageIndex)
}

func TestSetPageClamps(t *testing.T) {
	p := New[row, string](rowID, 8)
	p.SetSource(numberedRows(23))

	p.SetPage(99)
	assert.Equal(t, 3, p.VisiblePage().PageIndex)

	p.SetPage(-4)
	assert.Equal(t, 1, p.VisiblePage().PageIndex)
}

func TestEmptySourceServesOnePage(t *testing.T) {
	p := New[row, string](rowID, 10)

	page := p.VisiblePage()
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.PageIndex)
	assert.Equal(t, 1, page.TotalPages)
}

func TestFilterRecountsPages(t *testing.T) {
	rows := numberedRows(23)
	// Mark five rows so the filter keeps exactly those.
	for i := 0; i < 5; i++ {
		rows[i].Title = "special"
	}

	p := New[row, string](rowID, 8)
	p.SetSource(rows)
	p.SetPage(3)

	p.SetFilter(func(r row) bool { return r.Title == "special" })

	page := p.VisiblePage()
	assert.Equal(t, 5, page.TotalFiltered)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.PageIndex, "changing the filter returns to page one")
}

func TestFilterNilMatchesAll(t *testing.T) {
	p := New[row, string](rowID, 8)
	p.SetSource(numberedRows(5))
	p.SetFilter(func(r row) bool { return false })
	require.Equal(t, 0, p.VisiblePage().TotalFiltered)

	p.SetFilter(nil)
	assert.Equal(t, 5, p.VisiblePage().TotalFiltered)
}

func TestSortStableAndIdempotent(t *testing.T) {
	rows := []row{
		{ID: "a", Title: "banana", Price: 3},
		{ID: "b", Title: "apple", Price: 3},
		{ID: "c", Title: "cherry", Price: 1},
	}

	p := New[row, string](rowID, 10)
	p.SetSource(rows)
	p.SetSort(func(a, b row) bool { return a.Price < b.Price })

	first := p.VisiblePage().Items
	assert.Equal(t, "c", first[0].ID)
	// Equal prices keep their source order.
	assert.Equal(t, "a", first[1].ID)
	assert.Equal(t, "b", first[2].ID)

	// Re-applying the same sort changes nothing.
	p.SetSort(func(a, b row) bool { return a.Price < b.Price })
	assert.Equal(t, first, p.VisiblePage().Items)
}

func TestSortDoesNotResetPage(t *testing.T) {
	p := New[row, string](rowID, 8)
	p.SetSource(numberedRows(23))
	p.SetPage(2)

	p.SetSort(func(a, b row) bool { return a.Price < b.Price })
	assert.Equal(t, 2, p.VisiblePage().PageIndex)
}

func TestToggleSelect(t *testing.T) {
	p := New[row, string](rowID, 10)
	p.SetSource([]row{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	p.ToggleSelect("a")
	p.ToggleSelect("b")
	assert.True(t, p.IsSelected("a"))
	assert.True(t, p.IsSelected("b"))

	p.ToggleSelect("a")
	assert.False(t, p.IsSelected("a"))

	p.ToggleSelect("ghost")
	assert.False(t, p.IsSelected("ghost"), "unknown ids are ignored")
}

func TestSelectionPrunedOnRefresh(t *testing.T) {
	p := New[row, string](rowID, 10)
	p.SetSource([]row{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	p.ToggleSelect("a")
	p.ToggleSelect("b")
	p.ToggleSelect("c")

	// The refreshed collection no longer contains b.
	p.SetSource([]row{{ID: "a"}, {ID: "c"}})

	assert.Equal(t, []string{"a", "c"}, p.SelectedIDs())
	assert.False(t, p.IsSelected("b"))
}

func TestRefreshClampsPage(t *testing.T) {
	p := New[row, string](rowID, 8)
	p.SetSource(numberedRows(23))
	p.SetPage(3)

	p.SetSource(numberedRows(9))
	assert.Equal(t, 2, p.VisiblePage().PageIndex)
}

func TestSelectAllVisible(t *testing.T) {
	p := New[row, string](rowID, 2)
	p.SetSource([]row{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	p.SelectAllVisible()
	assert.True(t, p.IsSelected("a"))
	assert.True(t, p.IsSelected("b"))
	assert.False(t, p.IsSelected("c"), "only the visible page is selected")

	// A second invocation with everything visible selected deselects.
	p.SelectAllVisible()
	assert.Empty(t, p.SelectedIDs())
}

func TestSelectAllVisiblePartialSelectsUnion(t *testing.T) {
	p := New[row, string](rowID, 2)
	p.SetSource([]row{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	p.ToggleSelect("a")
	p.SelectAllVisible()

	assert.True(t, p.IsSelected("a"))
	assert.True(t, p.IsSelected("b"))
}

func TestClearSelection(t *testing.T) {
	p := New[row, string](rowID, 10)
	p.SetSource([]row{{ID: "a"}, {ID: "b"}})
	p.SelectAllVisible()
	require.NotEmpty(t, p.SelectedIDs())

	p.ClearSelection()
	assert.Empty(t, p.SelectedIDs())
}

func TestFilterSortPaginateCombined(t *testing.T) {
	rows := []row{
		{ID: "a", Title: "Sunset Kayak", Price: 40},
		{ID: "b", Title: "City Walk", Price: 10},
		{ID: "c", Title: "Sunrise Kayak", Price: 35},
		{ID: "d", Title: "Food Market", Price: 25},
		{ID: "e", Title: "Kayak Camp", Price: 90},
	}

	p := New[row, string](rowID, 2)
	p.SetSource(rows)
	p.SetFilter(func(r row) bool { return strings.Contains(r.Title, "Kayak") })
	p.SetSort(func(a, b row) bool { return a.Price < b.Price })

	page := p.VisiblePage()
	assert.Equal(t, 3, page.TotalFiltered)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "c", page.Items[0].ID)
	assert.Equal(t, "a", page.Items[1].ID)

	p.SetPage(2)
	page = p.VisiblePage()
	require.Len(t, page.Items, 1)
	assert.Equal(t, "e", page.Items[0].ID)
}
