package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageParams 分页参数（offset/limit 风格）
type PageParams struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

// PageInfo 分页信息
type PageInfo struct {
	TotalCount      int64 `json:"total_count"`       // 总记录数
	HasNextPage     bool  `json:"has_next_page"`     // 是否有下一页
	NextOffset      *int  `json:"next_offset"`       // 下一页起始偏移，无下一页时为 null
	HasPreviousPage bool  `json:"has_previous_page"` // 是否有上一页
	PreviousOffset  *int  `json:"previous_offset"`   // 上一页起始偏移，无上一页时为 null
}

// 分页配置
const (
	DefaultOffset = 0
	DefaultLimit  = 10
	MaxLimit      = 100
)

// ParsePageParams 从请求中解析分页参数
func ParsePageParams(c *gin.Context) *PageParams {
	offsetStr := c.DefaultQuery("offset", "0")
	limitStr := c.DefaultQuery("limit", "10")

	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		offset = DefaultOffset
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return &PageParams{
		Offset: offset,
		Limit:  limit,
	}
}

// NewPageInfo 计算分页信息
func NewPageInfo(offset, limit int, total int64) *PageInfo {
	info := &PageInfo{
		TotalCount:      total,
		HasNextPage:     int64(offset+limit) < total,
		HasPreviousPage: offset > 0,
	}

	if info.HasNextPage {
		next := offset + limit
		info.NextOffset = &next
	}
	if info.HasPreviousPage {
		prev := offset - limit
		info.PreviousOffset = &prev
	}

	return info
}

// GetOffset 获取offset
func (p *PageParams) GetOffset() int {
	return p.Offset
}

// GetLimit 获取limit
func (p *PageParams) GetLimit() int {
	return p.Limit
}
