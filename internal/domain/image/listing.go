package image

import (
	"sort"
	"strconv"
)

// SizeBounds clamps the page size of one surface.
type SizeBounds struct {
	Default int
	Min     int
	Max     int
}

var (
	// APIBounds apply to /api/images.
	APIBounds = SizeBounds{Default: 20, Min: 1, Max: 100}
	// GalleryBounds apply to the public browsing surface.
	GalleryBounds = SizeBounds{Default: 60, Min: 12, Max: 120}
	// AdminBounds apply to the admin manage page.
	AdminBounds = SizeBounds{Default: 24, Min: 24, Max: 24}
)

// Clamp forces size into [Min, Max].
func (b SizeBounds) Clamp(size int) int {
	if size < b.Min {
		return b.Min
	}
	if size > b.Max {
		return b.Max
	}
	return size
}

// ParseSize parses a raw query value, falling back to Default.
func (b SizeBounds) ParseSize(raw string) int {
	if raw == "" {
		return b.Default
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return b.Default
	}
	return b.Clamp(v)
}

// ParsePage parses a one-based page number; anything invalid is page 1.
func ParsePage(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 1
	}
	return v
}

// RowRange returns the inclusive row range of a zero-based page index.
func RowRange(pageIndex, size int) (start, end int) {
	start = pageIndex * size
	end = start + size - 1
	return start, end
}

// HasMore reports whether rows exist past end. Offset based: rows inserted
// or deleted between fetches shift later pages.
func HasMore(end, total int) bool {
	return end+1 < total
}

// ListParams is a one-based page request.
type ListParams struct {
	Page  int
	Limit int
	Tag   string
}

// normalized fills page defaults and folds the tag filter the way stored
// tags are folded on write.
func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = APIBounds.Default
	}
	p.Tag = NormalizeTag(p.Tag)
	return p
}

// ListResult is one page plus continuation metadata.
type ListResult struct {
	Images  []*Image `json:"images"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
	Total   int      `json:"total"`
	HasMore bool     `json:"has_more"`
}

// UniqueTags returns the sorted distinct tags present on this page.
func (r *ListResult) UniqueTags() []string {
	seen := make(map[string]struct{})
	for _, img := range r.Images {
		for _, t := range img.Tags {
			if t != "" {
				seen[t] = struct{}{}
			}
		}
	}
	return sortedKeys(seen)
}

// Feed accumulates successive pages for one tag filter, the way the
// browsing surface appends on "load more" and starts over on a tag change.
type Feed struct {
	tag      string
	images   []*Image
	nextPage int
	total    int
	done     bool
}

// NewFeed starts an empty feed at page 1.
func NewFeed(tag string) *Feed {
	f := &Feed{}
	f.Reset(tag)
	return f
}

// Reset drops accumulated rows and restarts at page 1 for tag.
func (f *Feed) Reset(tag string) {
	f.tag = tag
	f.images = nil
	f.nextPage = 1
	f.total = 0
	f.done = false
}

// Append adds one page. Pages for another position are ignored.
func (f *Feed) Append(page *ListResult) {
	if page == nil || page.Page != f.nextPage {
		return
	}
	f.images = append(f.images, page.Images...)
	f.total = page.Total
	f.nextPage = page.Page + 1
	f.done = !page.HasMore || len(page.Images) == 0
}

func (f *Feed) Tag() string { return f.tag }
func (f *Feed) NextPage() int { return f.nextPage }
func (f *Feed) Total() int { return f.total }
func (f *Feed) Done() bool { return f.done }
func (f *Feed) Images() []*Image { return f.images }
func (f *Feed) LoadedPages() int { return f.nextPage - 1 }

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
