package dashboard

// Pager tracks offset-based paging state for a tabular panel. The page size
// is fixed; the total comes back from the server with every page.
type Pager struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// NewPager builds a pager at page 0 with the given fixed page size.
func NewPager(pageSize int) Pager {
	return Pager{PageSize: pageSize}
}

// Offset returns the item offset for the current page.
func (p Pager) Offset() int {
	return p.Page * p.PageSize
}

// HasNext reports whether a later page exists.
func (p Pager) HasNext() bool {
	return (p.Page+1)*p.PageSize < p.Total
}

// HasPrev reports whether an earlier page exists.
func (p Pager) HasPrev() bool {
	return p.Page > 0
}

// MaxPage is the last valid zero-based page index for the known total.
func (p Pager) MaxPage() int {
	if p.Total <= 0 || p.PageSize <= 0 {
		return 0
	}
	return (p.Total - 1) / p.PageSize
}

// Clamp bounds a requested page index to [0, MaxPage]. A zero total clamps
// everything to page 0.
func (p Pager) Clamp(page int) int {
	if page < 0 {
		return 0
	}
	if page > p.MaxPage() {
		return p.MaxPage()
	}
	return page
}
