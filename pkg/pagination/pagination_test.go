package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/employees"+query, nil)
	return c
}

func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantLimit  int
	}{
		{"defaults", "", 0, 10},
		{"explicit", "?offset=20&limit=5", 20, 5},
		{"negative offset falls back", "?offset=-3", 0, 10},
		{"zero limit falls back", "?limit=0", 0, 10},
		{"limit capped", "?limit=1000", 0, 100},
		{"garbage input", "?offset=abc&limit=xyz", 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := ParsePageParams(newTestContext(tt.query))
			assert.Equal(t, tt.wantOffset, params.GetOffset())
			assert.Equal(t, tt.wantLimit, params.GetLimit())
		})
	}
}

func TestNewPageInfoMiddlePage(t *testing.T) {
	info := NewPageInfo(10, 10, 35)

	assert.EqualValues(t, 35, info.TotalCount)
	assert.True(t, info.HasNextPage)
	require.NotNil(t, info.NextOffset)
	assert.Equal(t, 20, *info.NextOffset)
	assert.True(t, info.HasPreviousPage)
	require.NotNil(t, info.PreviousOffset)
	assert.Equal(t, 0, *info.PreviousOffset)
}

func TestNewPageInfoFirstPage(t *testing.T) {
	info := NewPageInfo(0, 10, 35)

	assert.True(t, info.HasNextPage)
	assert.False(t, info.HasPreviousPage)
	assert.Nil(t, info.PreviousOffset, "no previous page means null offset")
}

func TestNewPageInfoLastPage(t *testing.T) {
	info := NewPageInfo(30, 10, 35)

	assert.False(t, info.HasNextPage)
	assert.Nil(t, info.NextOffset, "no next page means null offset")
	assert.True(t, info.HasPreviousPage)
	require.NotNil(t, info.PreviousOffset)
	assert.Equal(t, 20, *info.PreviousOffset)
}

func TestNewPageInfoEmptyResult(t *testing.T) {
	info := NewPageInfo(0, 10, 0)

	assert.EqualValues(t, 0, info.TotalCount)
	assert.False(t, info.HasNextPage)
	assert.False(t, info.HasPreviousPage)
	assert.Nil(t, info.NextOffset)
	assert.Nil(t, info.PreviousOffset)
}

func TestNewPageInfoExactBoundary(t *testing.T) {
	// offset+limit恰好等于total：没有下一页
	info := NewPageInfo(20, 10, 30)

	assert.False(t, info.HasNextPage)
	assert.Nil(t, info.NextOffset)
}
