package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/channel-engage/internal/model"
	"github.com/d60-Lab/channel-engage/pkg/response"
)

type publishRequest struct {
	ItemID     int64  `json:"item_id" binding:"required,gt=0"`
	AuthorID   int64  `json:"author_id" binding:"required"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content" binding:"required"`
	Captioned  bool   `json:"captioned"`
}

// Publish 审核通过的帖子登记到台账
// @Summary 发布帖子
// @Tags 帖子
// @Accept json
// @Produce json
// @Param request body publishRequest true "帖子信息"
// @Success 200 {object} response.Response{data=render.Card}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/items [post]
func (h *Handler) Publish(c *gin.Context) {
	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	card, err := h.engine.Publish(c.Request.Context(), &model.Submission{
		ID:         req.ItemID,
		AuthorID:   req.AuthorID,
		AuthorName: req.AuthorName,
		Content:    req.Content,
		Captioned:  req.Captioned,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, card)
}

// Counts 查询聚合数
// @Summary 查询帖子互动计数
// @Tags 帖子
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response{data=model.Counts}
// @Router /api/v1/items/{id}/counts [get]
func (h *Handler) Counts(c *gin.Context) {
	itemID, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	counts, err := h.engine.Counts(c.Request.Context(), itemID)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, counts)
}

// Promotion 查询置顶状态
// @Summary 查询帖子置顶状态
// @Tags 帖子
// @Param id path int true "帖子ID"
// @Success 200 {object} response.Response{data=service.PromotionStatus}
// @Failure 404 {object} response.Response
// @Router /api/v1/items/{id}/promotion [get]
func (h *Handler) Promotion(c *gin.Context) {
	itemID, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	st, err := h.engine.Promotion(c.Request.Context(), itemID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, st)
}
