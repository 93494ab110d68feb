package service

import (
	"context"

	"github.com/d60-Lab/channel-engage/internal/repository"
)

// Library 用户的收藏夹（频道卡片上的 "我的" 入口）
type Library interface {
	ListCollections(ctx context.Context, userID int64, page, pageSize int) ([]int64, error)
}

type library struct {
	collections repository.CollectionRepository
}

func NewLibrary(collections repository.CollectionRepository) Library {
	return &library{collections: collections}
}

// ListCollections 返回收藏的帖子 ID，最近收藏的在前
func (l *library) ListCollections(ctx context.Context, userID int64, page, pageSize int) ([]int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize
	items, err := l.collections.ListByUser(ctx, userID, offset, pageSize)
	if err != nil {
		return nil, err
	}
	res := make([]int64, len(items))
	for i, it := range items {
		res[i] = it.ItemID
	}
	return res, nil
}
