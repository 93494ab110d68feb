package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/channel-engage/internal/service"
	"github.com/d60-Lab/channel-engage/pkg/response"
)

// Handler HTTP 入口：审核流发布帖子、外部提交事件、评论管理
type Handler struct {
	engine  *service.Engine
	library service.Library
}

func NewHandler(engine *service.Engine, library service.Library) *Handler {
	return &Handler{engine: engine, library: library}
}

func pathInt64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func queryInt64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || v == 0 {
		response.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

// writeError 把引擎的哨兵错误映射成 HTTP 状态
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEvent):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrItemNotFound), errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}
