package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      int64
		limit     int64
		wantPage  int64
		wantLimit int64
	}{
		{"合法参数原样返回", 3, 25, 3, 25},
		{"零值回落默认", 0, 0, 1, 10},
		{"负值回落默认", -5, -1, 1, 10},
		{"大 limit 不设上限", 1, 10000, 1, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePagination(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(1, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(2), TotalPages(11, 10))
	assert.Equal(t, int64(5), TotalPages(41, 10))
	assert.Equal(t, int64(0), TotalPages(100, 0))
}
