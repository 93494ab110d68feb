// Package lock 按帖子串行化台账写入。
//
// 切换逻辑是先读再分支再写，同一帖子的事件必须排队执行；唯一约束兜底。
package lock

import (
	"context"
	"strconv"
)

// Locker 获取 key 的独占锁，返回的 unlock 必须且只能调用一次
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// ItemKey 帖子对应的锁 key
func ItemKey(itemID int64) string {
	return "item:" + strconv.FormatInt(itemID, 10)
}
