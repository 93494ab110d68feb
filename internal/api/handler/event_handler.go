package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/channel-engage/internal/model"
	"github.com/d60-Lab/channel-engage/internal/render"
	"github.com/d60-Lab/channel-engage/internal/service"
	"github.com/d60-Lab/channel-engage/pkg/response"
)

type eventRequest struct {
	Action    string       `json:"action"`
	ItemID    int64        `json:"item_id"`
	UserID    int64        `json:"user_id"`
	UserName  string       `json:"user_name"`
	Polarity  string       `json:"polarity" binding:"polarity"`
	Text      string       `json:"text"`
	CommentID uint         `json:"comment_id"`
	Observed  *render.Card `json:"observed"`
}

type outcomeResponse struct {
	Ignored      bool         `json:"ignored"`
	ItemFound    bool         `json:"item_found"`
	Mutation     string       `json:"mutation"`
	Counts       model.Counts `json:"counts"`
	Render       string       `json:"render"`
	Card         *render.Card `json:"card,omitempty"`
	Notification string       `json:"notification"`
	Promotion    string       `json:"promotion"`
}

func toOutcomeResponse(out *service.Outcome) outcomeResponse {
	resp := outcomeResponse{
		Ignored:      out.Ignored,
		ItemFound:    out.ItemFound,
		Mutation:     out.Mutation.String(),
		Counts:       out.Counts,
		Render:       out.Render.String(),
		Notification: out.Notification.String(),
		Promotion:    out.Promotion.String(),
	}
	if out.Command != nil {
		card := out.Command.Card
		resp.Card = &card
	}
	return resp
}

// SubmitEvent 提交一次互动。格式不对的事件按无操作确认。
// @Summary 提交互动事件
// @Tags 事件
// @Accept json
// @Produce json
// @Param request body eventRequest true "事件"
// @Success 200 {object} response.Response{data=outcomeResponse}
// @Failure 500 {object} response.Response
// @Router /api/v1/events [post]
func (h *Handler) SubmitEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Success(c, outcomeResponse{Ignored: true})
		return
	}

	ev := service.Event{
		Action:    service.Action(req.Action),
		ItemID:    req.ItemID,
		UserID:    req.UserID,
		UserName:  req.UserName,
		Text:      req.Text,
		CommentID: req.CommentID,
		Observed:  req.Observed,
	}
	switch req.Polarity {
	case "like":
		ev.Polarity = model.Like
	case "dislike":
		ev.Polarity = model.Dislike
	}

	out, err := h.engine.HandleEvent(c.Request.Context(), ev)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, toOutcomeResponse(out))
}
