package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/d60-Lab/channel-engage/internal/model"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// :memory: 每个连接是独立的库
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.All()...))
	return NewStore(db)
}

func seedItem(t *testing.T, s *Store, id, author int64) {
	t.Helper()
	require.NoError(t, s.Submissions.Create(context.Background(), &model.Submission{
		ID: id, AuthorID: author, AuthorName: "author", Content: "hello",
	}))
}

func TestSubmissionCreateAndGet(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	seedItem(t, s, 42, 7)

	got, err := s.Submissions.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.AuthorID)
	assert.False(t, got.Promoted)

	_, err = s.Submissions.Get(ctx, 43)
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.Submissions.Create(ctx, &model.Submission{ID: 42, AuthorID: 8})
	assert.ErrorIs(t, err, ErrDuplicate)

	require.NoError(t, s.Submissions.MarkPromoted(ctx, 42))
	got, err = s.Submissions.Get(ctx, 42)
	require.NoError(t, err)
	assert.True(t, got.Promoted)
}

func TestSubmissionRepublishKeepsTransactionUsable(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	seedItem(t, s, 42, 7)

	err := s.Transaction(ctx, func(tx *Store) error {
		err := tx.Submissions.Create(ctx, &model.Submission{ID: 42, AuthorID: 8, Content: "again"})
		if !errors.Is(err, ErrDuplicate) {
			return fmt.Errorf("want ErrDuplicate, got %v", err)
		}
		// 冲突之后同一事务里继续读写
		got, err := tx.Submissions.Get(ctx, 42)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(7), got.AuthorID)
		return tx.Reactions.Create(ctx, 42, 1, model.Like)
	})
	require.NoError(t, err)

	c, err := s.Counts(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.Likes)
}

func TestReactionSingleSlot(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Reactions.Create(ctx, 1, 100, model.Like))
	err := s.Reactions.Create(ctx, 1, 100, model.Dislike)
	assert.ErrorIs(t, err, ErrDuplicate)

	rec, err := s.Reactions.Get(ctx, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, model.Like, rec.Polarity)

	require.NoError(t, s.Reactions.UpdatePolarity(ctx, 1, 100, model.Dislike))
	likes, dislikes, err := s.Reactions.CountByPolarity(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), likes)
	assert.Equal(t, int64(1), dislikes)

	require.NoError(t, s.Reactions.Delete(ctx, 1, 100))
	_, err = s.Reactions.Get(ctx, 1, 100)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Reactions.UpdatePolarity(ctx, 1, 100, model.Like), ErrNotFound)
}

func TestReactionConcurrentCreate(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Reactions.Create(ctx, 5, 500, model.Like); err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	likes, _, err := s.Reactions.CountByPolarity(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
}

func TestCollectionToggle(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	ok, err := s.Collections.Exists(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Collections.Create(ctx, 1, 2))
	assert.ErrorIs(t, s.Collections.Create(ctx, 1, 2), ErrDuplicate)

	ok, err = s.Collections.Exists(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := s.Collections.ListByUser(ctx, 2, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ItemID)

	require.NoError(t, s.Collections.Delete(ctx, 1, 2))
	n, err := s.Collections.Count(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCommentListFirstIsEarliest(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		require.NoError(t, s.Comments.Create(ctx, &model.Comment{
			ItemID: 9, UserID: int64(i % 2), UserName: "u", Text: fmt.Sprintf("c%d", i),
		}))
	}

	first, err := s.Comments.ListFirst(ctx, 9, 5)
	require.NoError(t, err)
	require.Len(t, first, 5)
	for i, c := range first {
		assert.Equal(t, fmt.Sprintf("c%d", i+1), c.Text)
	}

	n, err := s.Comments.Count(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	mine, err := s.Comments.ListByUser(ctx, 9, 1)
	require.NoError(t, err)
	require.Len(t, mine, 4)
	assert.Equal(t, "c7", mine[0].Text)

	others, err := s.Comments.ListExcludingUser(ctx, 9, 1)
	require.NoError(t, err)
	assert.Len(t, others, 3)

	require.NoError(t, s.Comments.Delete(ctx, first[0].ID))
	assert.ErrorIs(t, s.Comments.Delete(ctx, first[0].ID), ErrNotFound)
	_, err = s.Comments.Get(ctx, first[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotificationMarkOnce(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	ok, err := s.Notifications.MarkOnce(ctx, 1, 7, model.NotifyLike)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Notifications.MarkOnce(ctx, 1, 7, model.NotifyLike)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Notifications.MarkOnce(ctx, 1, 7, model.NotifyCollect)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPinCreateOnce(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	ok, err := s.Pins.CreateOnce(ctx, 3, 100)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Pins.CreateOnce(ctx, 3, 150)
	require.NoError(t, err)
	assert.False(t, ok)

	p, err := s.Pins.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(100), p.LikeCount)

	n, err := s.Pins.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCountsAndTransactionRollback(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Reactions.Create(ctx, 1, 1, model.Like))
	require.NoError(t, s.Reactions.Create(ctx, 1, 2, model.Like))
	require.NoError(t, s.Reactions.Create(ctx, 1, 3, model.Dislike))
	require.NoError(t, s.Collections.Create(ctx, 1, 1))
	require.NoError(t, s.Comments.Create(ctx, &model.Comment{ItemID: 1, UserID: 2, UserName: "b", Text: "hi"}))

	c, err := s.Counts(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.Counts{Likes: 2, Dislikes: 1, Comments: 1, Collections: 1}, c)

	boom := fmt.Errorf("boom")
	err = s.Transaction(ctx, func(tx *Store) error {
		if err := tx.Reactions.Delete(ctx, 1, 1); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	c, err = s.Counts(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.Likes)
	require.NoError(t, s.Ping(ctx))
}
