package corn_ser

import (
	"context"
	"strconv"
	"strings"
	"time"

	"blog/global"
	"blog/models"
	"blog/service/redis_ser"

	"github.com/avast/retry-go"
	"go.uber.org/zap"
)

// SyncPostCounters 把Redis里的计数增量回写到posts表的缓存计数列
// 缓存计数允许漂移，这里是对账路径：Redis的值覆盖列值
func SyncPostCounters() {
	ctx := context.Background()
	pattern := redis_ser.BuildKey(redis_ser.PostStatsKey) + "*"
	iter := global.Redis.Scan(ctx, 0, pattern, 0).Iterator()

	for iter.Next(ctx) {
		key := iter.Val()
		// 从键中提取文章ID
		idStr := strings.TrimPrefix(key, redis_ser.BuildKey(redis_ser.PostStatsKey))
		postID, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			global.Log.Warn("无法解析计数键中的文章ID", zap.String("key", key))
			continue
		}

		stats, err := redis_ser.GetPostStats(uint(postID))
		if err != nil {
			global.Log.Error("获取Redis文章计数失败",
				zap.Uint64("post_id", postID),
				zap.String("error", err.Error()),
			)
			continue
		}
		if len(stats) == 0 {
			continue
		}

		updates := make(map[string]interface{}, len(stats))
		for _, field := range []string{redis_ser.FieldViewCount, redis_ser.FieldLikeCount, redis_ser.FieldShareCount} {
			if v, exists := stats[field]; exists {
				updates[field] = v
			}
		}
		if len(updates) == 0 {
			continue
		}

		// 回写带重试，文章已删除（影响0行）不算失败
		err = retry.Do(
			func() error {
				return global.DB.Model(&models.PostModel{}).
					Where("id = ?", postID).
					UpdateColumns(updates).Error
			},
			retry.Attempts(3),
			retry.Delay(100*time.Millisecond),
		)
		if err != nil {
			global.Log.Error("回写文章计数失败",
				zap.Uint64("post_id", postID),
				zap.String("error", err.Error()),
			)
			continue
		}

		// 避免过快请求
		time.Sleep(time.Millisecond * 50)
	}

	if err := iter.Err(); err != nil {
		global.Log.Error("遍历Redis键失败", zap.String("error", err.Error()))
	}
}
