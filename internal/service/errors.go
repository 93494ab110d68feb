package service

import "errors"

var (
	// ErrInvalidEvent 事件格式不合法，调用方应当作无操作确认
	ErrInvalidEvent = errors.New("invalid event")
	// ErrItemNotFound 台账中没有该帖子
	ErrItemNotFound = errors.New("item not found")
	// ErrCommentNotFound 评论不存在或不属于该帖子
	ErrCommentNotFound = errors.New("comment not found")
	// ErrForbidden 只有评论者本人或帖子作者可以删除评论
	ErrForbidden = errors.New("forbidden")
	// ErrNotModified 网关报告外部消息与候选渲染一致
	ErrNotModified = errors.New("message is not modified")
)
