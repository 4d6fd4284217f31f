package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/strato-tools/internal/catalog"
	"github.com/ashwinyue/strato-tools/internal/model"
	"github.com/ashwinyue/strato-tools/internal/service"
	"github.com/ashwinyue/strato-tools/internal/service/query"
)

// ToolHandler 工具目录处理器
type ToolHandler struct {
	svc *service.Services
}

// NewToolHandler 创建工具目录处理器
func NewToolHandler(svc *service.Services) *ToolHandler {
	return &ToolHandler{svc: svc}
}

// ListToolsResponse 工具列表响应
type ListToolsResponse struct {
	Items      []model.Tool      `json:"items"`
	Total      int               `json:"total"`
	Filtered   int               `json:"filtered"`
	Filters    query.FilterState `json:"filters"`
	ShareQuery string            `json:"share_query"`
}

// ListTools 按查询参数过滤并排序工具
func (h *ToolHandler) ListTools(c *gin.Context) {
	state := query.DecodeFilterState(c.Request.URL.Query())
	items := query.FilterAndSort(h.svc.Catalog, state)
	if items == nil {
		items = []model.Tool{}
	}
	h.svc.Metrics.ObserveFilterResults(len(items))

	success(c, ListToolsResponse{
		Items:      items,
		Total:      h.svc.Catalog.Len(),
		Filtered:   len(items),
		Filters:    state,
		ShareQuery: state.Encode(),
	})
}

// GetTool 获取工具详情
func (h *ToolHandler) GetTool(c *gin.Context) {
	tool, err := h.svc.Catalog.Get(c.Param("id"))
	if err != nil {
		errorResponse(c, err)
		return
	}

	success(c, tool)
}

// GetOptions 获取筛选项
func (h *ToolHandler) GetOptions(c *gin.Context) {
	success(c, h.svc.Catalog.Labels())
}

var _ query.Source = (*catalog.Catalog)(nil)
