package stores

import (
	"book-library/app/server/constants"
	"book-library/app/server/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ BookStore = (*CachedBooks)(nil)

// CachedBooks 在 BookStore 外面包一层 Redis 缓存，只缓存按 ID 查询的结果，写操作后清理对应的键。
// 缓存出错只记录日志，不影响请求本身。
type CachedBooks struct {
	BookStore

	rdb *redis.Client
	l   *zap.Logger
}

func NewCachedBooks(inner BookStore, rdb *redis.Client, l *zap.Logger) *CachedBooks {
	return &CachedBooks{
		BookStore: inner,
		rdb:       rdb,
		l:         l,
	}
}

func (s *CachedBooks) Get(ctx context.Context, id int64) (*models.Book, error) {
	cacheKey := fmt.Sprintf(constants.CacheKeyBookInfo, id)

	// 查询缓存
	var book models.Book
	if cacheBytes, err := s.rdb.Get(ctx, cacheKey).Bytes(); err != nil {
		if !errors.Is(err, redis.Nil) {
			s.l.Error("failed to query cache for book info", zap.Int64("id", id), zap.Error(err))
		}
	} else if err = json.Unmarshal(cacheBytes, &book); err != nil {
		s.l.Error("failed to unmarshal book info", zap.Int64("id", id), zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
		// 可能是无效的缓存，清理掉
		s.rdb.Del(ctx, cacheKey)
	} else {
		return &book, nil
	}

	// 查询存储
	found, err := s.BookStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// 格式化并加入缓存，方便下一次查询
	if cacheBytes, err := json.Marshal(found); err != nil {
		s.l.Error("failed to marshal book info", zap.Int64("id", id), zap.Error(err))
	} else if err = s.rdb.Set(ctx, cacheKey, cacheBytes, constants.CacheExpireBookInfo).Err(); err != nil {
		s.l.Error("failed to cache book info", zap.Int64("id", id), zap.Error(err))
	}

	return found, nil
}

func (s *CachedBooks) Update(ctx context.Context, id int64, mutate func(book *models.Book)) (*models.Book, error) {
	book, err := s.BookStore.Update(ctx, id, mutate)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)

	return book, nil
}

func (s *CachedBooks) Delete(ctx context.Context, id int64) error {
	if err := s.BookStore.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *CachedBooks) invalidate(ctx context.Context, id int64) {
	if err := s.rdb.Del(ctx, fmt.Sprintf(constants.CacheKeyBookInfo, id)).Err(); err != nil {
		s.l.Error("failed to invalidate book info cache", zap.Int64("id", id), zap.Error(err))
	}
}
