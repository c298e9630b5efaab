package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetPageSizeClampsToMaximum(t *testing.T) {
	for _, requested := range []int{51, 60, 1000} {
		params := DefaultPageParams()
		params.SetPageSize(requested)
		assert.Equal(t, MaxPageSize, params.PageSize, "requested %d", requested)
	}

	params := DefaultPageParams()
	params.SetPageSize(50)
	assert.Equal(t, 50, params.PageSize)
	params.SetPageSize(10)
	assert.Equal(t, 10, params.PageSize)
}

func TestNormalize(t *testing.T) {
	params := PageParams{PageIndex: 0, PageSize: 0}
	params.Normalize()
	assert.Equal(t, PageParams{PageIndex: 1, PageSize: DefaultPageSize}, params)

	params = PageParams{PageIndex: 3, PageSize: 500}
	params.Normalize()
	assert.Equal(t, PageParams{PageIndex: 3, PageSize: MaxPageSize}, params)
}

func TestNormalizeClampsHugePageIndex(t *testing.T) {
	params := PageParams{PageIndex: math.MaxInt, PageSize: MaxPageSize}
	params.Normalize()
	assert.Equal(t, MaxPageIndex, params.PageIndex)

	skip, take := params.Window()
	assert.Positive(t, skip)
	assert.Equal(t, (MaxPageIndex-1)*MaxPageSize, skip)
	assert.Equal(t, MaxPageSize, take)

	params = PageParams{PageIndex: math.MaxInt, PageSize: 1000}
	params.Normalize()
	skip, _ = params.Window()
	assert.Positive(t, skip)
}

func TestWindow(t *testing.T) {
	skip, take := PageParams{PageIndex: 2, PageSize: 10}.Window()
	assert.Equal(t, 10, skip)
	assert.Equal(t, 10, take)

	skip, take = DefaultPageParams().Window()
	assert.Equal(t, 0, skip)
	assert.Equal(t, DefaultPageSize, take)
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total, size, pages int
	}{
		{0, 6, 0},
		{1, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{25, 10, 3},
		{50, 50, 1},
		{101, 50, 3},
	}
	for _, c := range cases {
		meta := NewMetadata(c.total, 1, c.size)
		assert.Equal(t, c.pages, meta.TotalPages, "total=%d size=%d", c.total, c.size)
	}

	for total := 0; total <= 200; total++ {
		for size := 1; size <= MaxPageSize; size++ {
			expected := total / size
			if total%size != 0 {
				expected++
			}
			assert.Equal(t, expected, NewMetadata(total, 1, size).TotalPages)
		}
	}
}

func TestMetadataHeader(t *testing.T) {
	header := NewMetadata(25, 2, 10).Header()
	assert.Equal(t, Header{CurrentPage: 2, ItemsPerPage: 10, TotalItems: 25, TotalPages: 3}, header)
}

func TestMapKeepsMetadata(t *testing.T) {
	page := NewPage([]int{1, 2}, 2, 1, 6)
	mapped := Map(page, func(i int) string { return string(rune('a' + i)) })
	assert.Equal(t, []string{"b", "c"}, mapped.Items)
	assert.Equal(t, page.Metadata, mapped.Metadata)
}

func TestNewPageWithoutItems(t *testing.T) {
	page := NewPage[int](nil, 0, 1, 6)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.Metadata.TotalPages)
}
