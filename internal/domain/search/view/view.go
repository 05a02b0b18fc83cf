// Package view slices accumulated search results into fixed-size local pages.
// Local pages are independent of server-side cursors.
package view

// DefaultPageSize is the number of documents shown per local page.
const DefaultPageSize = 9

// Pager tracks a 1-based page index per collection.
// Not safe for concurrent use; the owning aggregator serializes access.
type Pager struct {
	size  int
	pages map[string]int
}

// NewPager creates a Pager. A non-positive size falls back to DefaultPageSize.
func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{size: size, pages: make(map[string]int)}
}

// Size returns the page size.
func (p *Pager) Size() int { return p.size }

// PageCount returns the number of local pages for count documents (at least 1).
func (p *Pager) PageCount(count int) int {
	if count <= 0 {
		return 1
	}
	return (count + p.size - 1) / p.size
}

// Page returns the current page of a collection, clamped for count documents.
func (p *Pager) Page(collection string, count int) int {
	n, ok := p.pages[collection]
	if !ok {
		return 1
	}
	return p.clamp(n, count)
}

// SetPage stores the page of a collection, clamped to [1, PageCount(count)].
func (p *Pager) SetPage(collection string, page, count int) int {
	page = p.clamp(page, count)
	p.pages[collection] = page
	return page
}

// Reset forgets every collection's page.
func (p *Pager) Reset() {
	p.pages = make(map[string]int)
}

// Bounds returns the [start, end) slice bounds of a page for count documents.
func (p *Pager) Bounds(page, count int) (int, int) {
	page = p.clamp(page, count)
	start := (page - 1) * p.size
	if start > count {
		start = count
	}
	end := start + p.size
	if end > count {
		end = count
	}
	return start, end
}

func (p *Pager) clamp(page, count int) int {
	if page < 1 {
		return 1
	}
	if last := p.PageCount(count); page > last {
		return last
	}
	return page
}
