package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"eduboost_backend/internal/grading"
	"eduboost_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CompletionCache 缓存模块完成度汇总，成绩写入时失效。
//
// 每个键带版本号：Invalidate 递增版本，Set 写入计算前读到的版本，
// Get 只返回版本与当前一致的条目。
type CompletionCache interface {
	Get(ctx context.Context, studentID, moduleID string) (*grading.ModuleCompletionSummary, bool)
	Version(ctx context.Context, studentID, moduleID string) int64
	Set(ctx context.Context, studentID, moduleID string, version int64, summary grading.ModuleCompletionSummary)
	Invalidate(ctx context.Context, studentID, moduleID string)
}

type cachedCompletion struct {
	Version int64                           `json:"version"`
	Summary grading.ModuleCompletionSummary `json:"summary"`
}

type RedisCompletionCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCompletionCache(client *redis.Client, ttl time.Duration) *RedisCompletionCache {
	return &RedisCompletionCache{Client: client, TTL: ttl}
}

func completionKey(studentID, moduleID string) string {
	return fmt.Sprintf("eduboost:completion:%s:%s", studentID, moduleID)
}

func completionVersionKey(studentID, moduleID string) string {
	return fmt.Sprintf("eduboost:completion:ver:%s:%s", studentID, moduleID)
}

// Get 读取失败或版本过期都按未命中处理
func (c *RedisCompletionCache) Get(ctx context.Context, studentID, moduleID string) (*grading.ModuleCompletionSummary, bool) {
	pipe := c.Client.Pipeline()
	entryCmd := pipe.Get(ctx, completionKey(studentID, moduleID))
	versionCmd := pipe.Get(ctx, completionVersionKey(studentID, moduleID))
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		logger.Log.Warn("completion cache read failed", zap.Error(err))
		return nil, false
	}

	raw, err := entryCmd.Bytes()
	if err != nil {
		return nil, false
	}

	var entry cachedCompletion
	if err := json.Unmarshal(raw, &entry); err != nil {
		logger.Log.Warn("completion cache entry corrupt", zap.String("studentID", studentID), zap.String("moduleID", moduleID), zap.Error(err))
		return nil, false
	}
	current, err := versionCmd.Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, false
	}
	if entry.Version != current {
		return nil, false
	}
	return &entry.Summary, true
}

// Version 键不存在时为 0
func (c *RedisCompletionCache) Version(ctx context.Context, studentID, moduleID string) int64 {
	v, err := c.Client.Get(ctx, completionVersionKey(studentID, moduleID)).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("completion cache version read failed", zap.Error(err))
			return -1
		}
		return 0
	}
	return v
}

func (c *RedisCompletionCache) Set(ctx context.Context, studentID, moduleID string, version int64, summary grading.ModuleCompletionSummary) {
	if version < 0 {
		return
	}
	raw, err := json.Marshal(cachedCompletion{Version: version, Summary: summary})
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, completionKey(studentID, moduleID), raw, c.TTL).Err(); err != nil {
		logger.Log.Warn("completion cache write failed", zap.Error(err))
	}
}

func (c *RedisCompletionCache) Invalidate(ctx context.Context, studentID, moduleID string) {
	pipe := c.Client.TxPipeline()
	pipe.Incr(ctx, completionVersionKey(studentID, moduleID))
	pipe.Del(ctx, completionKey(studentID, moduleID))
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Log.Warn("completion cache invalidate failed", zap.Error(err))
	}
}
