package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/d60-Lab/channel-engage/internal/model"
	"github.com/d60-Lab/channel-engage/internal/render"
)

// Action 事件标签，与频道按钮的 callback data 前缀一致
type Action string

const (
	ActionReact           Action = "react"
	ActionCollect         Action = "collect"
	ActionShowComments    Action = "comment:show"
	ActionRefreshComments Action = "comment:refresh"
	ActionHideComments    Action = "comment:hide"
	ActionPostComment     Action = "comment:add"
	ActionDeleteComment   Action = "comment:delete"
)

// expanded 处理完该事件后卡片是否处于评论区展开状态
func (a Action) expanded() bool {
	return a == ActionShowComments || a == ActionRefreshComments
}

// keepsMode 私聊发表或删除评论不改变卡片的展示状态
func (a Action) keepsMode() bool {
	return a == ActionPostComment || a == ActionDeleteComment
}

// Event 一次互动
type Event struct {
	Action    Action
	ItemID    int64
	UserID    int64
	UserName  string
	Polarity  model.Polarity
	Text      string
	CommentID uint
	// Observed 外部最后一次观察到的渲染；未知时为 nil，此时无法做差异比较
	Observed *render.Card
}

func (e Event) Validate() error {
	if e.ItemID == 0 {
		return fmt.Errorf("%w: missing item id", ErrInvalidEvent)
	}
	switch e.Action {
	case ActionShowComments, ActionRefreshComments, ActionHideComments:
		return nil
	case ActionReact:
		if !e.Polarity.Valid() {
			return fmt.Errorf("%w: bad polarity %d", ErrInvalidEvent, e.Polarity)
		}
	case ActionCollect:
	case ActionPostComment:
		if strings.TrimSpace(e.Text) == "" {
			return fmt.Errorf("%w: empty comment", ErrInvalidEvent)
		}
	case ActionDeleteComment:
		if e.CommentID == 0 {
			return fmt.Errorf("%w: missing comment id", ErrInvalidEvent)
		}
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidEvent, e.Action)
	}
	if e.UserID == 0 {
		return fmt.Errorf("%w: missing user", ErrInvalidEvent)
	}
	return nil
}

// ParseCallbackData 解析频道按钮的 callback data：
//
//	react:like:<id>  react:dislike:<id>  collect:<id>
//	comment:show:<id>  comment:refresh:<id>  comment:hide:<id>
func ParseCallbackData(data string) (Event, error) {
	parts := strings.Split(data, ":")
	var ev Event
	var idStr string

	switch {
	case len(parts) == 3 && parts[0] == "react":
		ev.Action = ActionReact
		switch parts[1] {
		case "like":
			ev.Polarity = model.Like
		case "dislike":
			ev.Polarity = model.Dislike
		default:
			return Event{}, fmt.Errorf("%w: reaction %q", ErrInvalidEvent, parts[1])
		}
		idStr = parts[2]
	case len(parts) == 2 && parts[0] == "collect":
		ev.Action = ActionCollect
		idStr = parts[1]
	case len(parts) == 3 && parts[0] == "comment":
		ev.Action = Action("comment:" + parts[1])
		switch ev.Action {
		case ActionShowComments, ActionRefreshComments, ActionHideComments:
		default:
			return Event{}, fmt.Errorf("%w: comment action %q", ErrInvalidEvent, parts[1])
		}
		idStr = parts[2]
	default:
		return Event{}, fmt.Errorf("%w: callback %q", ErrInvalidEvent, data)
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return Event{}, fmt.Errorf("%w: item id %q", ErrInvalidEvent, idStr)
	}
	ev.ItemID = id
	return ev, nil
}
