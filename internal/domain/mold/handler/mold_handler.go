package handler

import (
	"net/http"

	blockModel "canvas_blog/internal/domain/block/model"
	"canvas_blog/internal/domain/mold/service"
	"canvas_blog/internal/pkg/apperr"
	"canvas_blog/internal/pkg/middleware"
	"canvas_blog/pkg/response"

	"github.com/gin-gonic/gin"
)

// MoldHandler 布局模板 HTTP 入口
type MoldHandler struct {
	moldService service.MoldService
}

func NewMoldHandler(moldService service.MoldService) *MoldHandler {
	return &MoldHandler{moldService: moldService}
}

// SaveLayoutsRequest 保存布局请求
type SaveLayoutsRequest struct {
	MoldName string                 `json:"moldName"`
	Blocks   []blockModel.BlockSpec `json:"blocks" binding:"required"`
}

// SaveLayouts 保存布局
// @Summary 保存一组块，可选同时建模板
// @Tags mold
// @Accept json
// @Produce json
// @Param request body SaveLayoutsRequest true "布局定义"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/layout [post]
func (h *MoldHandler) SaveLayouts(c *gin.Context) {
	var req SaveLayoutsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	userID := middleware.CurrentUserID(c)
	result, err := h.moldService.SaveLayouts(userID, req.Blocks, req.MoldName)
	if err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, result)
}

// ListMolds 我的模板列表
// @Summary 当前用户的全部模板
// @Tags mold
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/layouts [get]
func (h *MoldHandler) ListMolds(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	molds, err := h.moldService.ListMolds(userID)
	if err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, molds)
}

// GetMold 模板详情（含块）
// @Summary 取单个模板及其块
// @Tags mold
// @Produce json
// @Param id path string true "模板 ID"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/layouts/{id} [get]
func (h *MoldHandler) GetMold(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	result, err := h.moldService.GetMoldWithLayouts(userID, c.Param("id"))
	if err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteMold 删除模板
// @Summary 删除模板，引用方只解除引用
// @Tags mold
// @Produce json
// @Param id path string true "模板 ID"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /api/v1/layouts/{id} [delete]
func (h *MoldHandler) DeleteMold(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	if err := h.moldService.DeleteMold(c.Param("id"), userID); err != nil {
		apperr.WriteResponse(c, err)
		return
	}
	response.Success(c, nil)
}
