package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/channel-engage/pkg/response"
)

// ListComments 用户可管理的评论
// @Summary 查询可管理的评论
// @Tags 评论
// @Param id path int true "帖子ID"
// @Param user_id query int true "用户ID"
// @Success 200 {object} response.Response{data=service.CommentListing}
// @Failure 404 {object} response.Response
// @Router /api/v1/items/{id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	itemID, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	userID, ok := queryInt64(c, "user_id")
	if !ok {
		return
	}
	listing, err := h.engine.ManageableComments(c.Request.Context(), itemID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, listing)
}

// DeleteComment 删除评论（评论者或帖子作者）
// @Summary 删除评论
// @Tags 评论
// @Param id path int true "帖子ID"
// @Param comment_id path int true "评论ID"
// @Param user_id query int true "操作者ID"
// @Success 200 {object} response.Response{data=outcomeResponse}
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/items/{id}/comments/{comment_id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	itemID, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.BadRequest(c, "invalid comment_id")
		return
	}
	userID, ok := queryInt64(c, "user_id")
	if !ok {
		return
	}
	out, err := h.engine.DeleteComment(c.Request.Context(), itemID, uint(commentID), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, toOutcomeResponse(out))
}
