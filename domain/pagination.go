package domain

// PageWindow describes where a page sits inside a result set.
type PageWindow struct {
	Offset     int
	TotalPages int
}

// PageOffset computes the SELECT offset for a 1-based page number.
func PageOffset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

// Paginate converts a row count and page request into a page window.
// TotalPages is ceil(total/pageSize), zero when the set is empty. Pure
// arithmetic: callers combine it with their own count query.
func Paginate(total, page, pageSize int) PageWindow {
	window := PageWindow{Offset: PageOffset(page, pageSize)}
	if total > 0 && pageSize > 0 {
		window.TotalPages = (total + pageSize - 1) / pageSize
	}
	return window
}

// TaskPage is one page of the task listing, newest first.
type TaskPage struct {
	Tasks      []Task `json:"tasks"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
}
