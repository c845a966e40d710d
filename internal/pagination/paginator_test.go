package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"1", 1},
		{"7", 7},
		{"0", 1},
		{"-3", 1},
		{"garbage", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageNumber(tt.raw), "raw=%q", tt.raw)
	}
}

func TestNewSplitsRemainderOntoLastPage(t *testing.T) {
	// 13 posts at 10 per page: a full first page and 3 on the second.
	first := New(1, 10, 13)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, first.TotalPages)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)
	assert.Equal(t, 0, first.Offset())

	second := New(2, 10, 13)
	assert.Equal(t, 2, second.Number)
	assert.False(t, second.HasNext)
	assert.True(t, second.HasPrevious)
	assert.Equal(t, 1, second.PreviousNumber)
	assert.Equal(t, 10, second.Offset())
	assert.Equal(t, int64(3), second.Count-int64(second.Offset()))
}

func TestNewClampsOutOfRangeNumbers(t *testing.T) {
	low := New(-5, 10, 30)
	assert.Equal(t, 1, low.Number)

	high := New(99, 10, 30)
	assert.Equal(t, 3, high.Number)
	assert.False(t, high.HasNext)
}

func TestNewEmptyCollection(t *testing.T) {
	p := New(1, 10, 0)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrevious)
	assert.Equal(t, 0, p.Offset())
}
