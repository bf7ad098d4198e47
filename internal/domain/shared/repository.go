package shared

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps Offset far from int overflow
	MaxPage = 1_000_000
)

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}
}

// Normalize clamps paging values into range.
func (f Filter) Normalize() Filter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if f.Filters == nil {
		f.Filters = make(map[string]any)
	}
	return f
}

// Offset returns the row offset for the current page
func (f Filter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	if items == nil {
		items = []T{}
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
