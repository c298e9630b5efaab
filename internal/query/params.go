package query

import "math"

const (
	// DefaultPageSize is the page size used if none was requested
	DefaultPageSize = 6

	// MaxPageSize is the largest page size a caller may request; larger values are clamped
	MaxPageSize = 50

	// MaxPageIndex is the largest page index whose window still fits into an int; larger values are clamped
	MaxPageIndex = math.MaxInt / MaxPageSize
)

// PageParams represents the paging part of the request parameters every paged listing accepts
type PageParams struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
}

// DefaultPageParams returns the paging parameters used if a caller requests nothing specific
func DefaultPageParams() PageParams {
	return PageParams{
		PageIndex: 1,
		PageSize:  DefaultPageSize,
	}
}

// SetPageSize sets the page size, clamping values above MaxPageSize
func (params *PageParams) SetPageSize(size int) {
	if size > MaxPageSize {
		size = MaxPageSize
	}
	params.PageSize = size
}

// Normalize clamps the page size and index and replaces values that cannot describe a page by their defaults
func (params *PageParams) Normalize() {
	params.SetPageSize(params.PageSize)
	if params.PageSize < 1 {
		params.PageSize = DefaultPageSize
	}
	if params.PageIndex < 1 {
		params.PageIndex = 1
	}
	if params.PageIndex > MaxPageIndex {
		params.PageIndex = MaxPageIndex
	}
}

// Window returns the paging window (records to skip, records to take) the parameters describe
func (params PageParams) Window() (int, int) {
	return (params.PageIndex - 1) * params.PageSize, params.PageSize
}
