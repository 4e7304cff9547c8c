package repository

import (
	"context"
	"encoding/json"
	"exam_prep_backend/internal/model"
	"exam_prep_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const categoryListKey = "exam_prep:categories:all"

// CategoryCache 分类列表的 Redis 缓存，客户端为 nil 时所有操作均为空操作
type CategoryCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCategoryCache(client *redis.Client, ttl time.Duration) *CategoryCache {
	return &CategoryCache{Client: client, TTL: ttl}
}

func (c *CategoryCache) Get(ctx context.Context) ([]model.Category, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	raw, err := c.Client.Get(ctx, categoryListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("Category cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var categories []model.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, false
	}
	return categories, true
}

func (c *CategoryCache) Set(ctx context.Context, categories []model.Category) {
	if c == nil || c.Client == nil {
		return
	}
	raw, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, categoryListKey, raw, c.TTL).Err(); err != nil {
		logger.Log.Warn("Category cache write failed", zap.Error(err))
	}
}

func (c *CategoryCache) Invalidate(ctx context.Context) {
	if c == nil || c.Client == nil {
		return
	}
	if err := c.Client.Del(ctx, categoryListKey).Err(); err != nil {
		logger.Log.Warn("Category cache invalidate failed", zap.Error(err))
	}
}
