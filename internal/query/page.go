package query

// Metadata represents the pagination metadata of a Page
type Metadata struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalCount  int `json:"totalCount"`
	TotalPages  int `json:"totalPages"`
}

// NewMetadata computes the pagination metadata of a page.
// The total page count is derived once from totalCount and pageSize; it is 0 for an empty result or a non-positive
// page size.
func NewMetadata(totalCount, currentPage, pageSize int) Metadata {
	if currentPage < 0 {
		currentPage = 0
	}
	totalPages := 0
	if pageSize > 0 && totalCount > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}
	return Metadata{
		CurrentPage: currentPage,
		PageSize:    pageSize,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
	}
}

// Header represents the transport form of Metadata sent to clients in the 'Pagination' response header
type Header struct {
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
	TotalItems   int `json:"totalItems"`
	TotalPages   int `json:"totalPages"`
}

// Header returns the transport form of the metadata
func (meta Metadata) Header() Header {
	return Header{
		CurrentPage:  meta.CurrentPage,
		ItemsPerPage: meta.PageSize,
		TotalItems:   meta.TotalCount,
		TotalPages:   meta.TotalPages,
	}
}

// Page represents a bounded slice of records together with its pagination metadata
type Page[T any] struct {
	Items    []T      `json:"items"`
	Metadata Metadata `json:"metadata"`
}

// NewPage wraps items into a page
func NewPage[T any](items []T, totalCount, currentPage, pageSize int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:    items,
		Metadata: NewMetadata(totalCount, currentPage, pageSize),
	}
}

// Map converts the items of a page while keeping its metadata
func Map[T, R any](page *Page[T], mapper func(T) R) *Page[R] {
	items := make([]R, len(page.Items))
	for i, item := range page.Items {
		items[i] = mapper(item)
	}
	return &Page[R]{
		Items:    items,
		Metadata: page.Metadata,
	}
}
