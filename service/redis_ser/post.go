package redis_ser

import (
	"context"
	"strconv"
	"time"

	"blog/global"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// 文章计数数据的键前缀
	PostStatsKey = "post:stats:"

	// 计数字段名，与posts表的缓存计数列一一对应
	FieldViewCount  = "view_count"
	FieldLikeCount  = "like_count"
	FieldShareCount = "share_count"

	ViewIPExpire = 10 * time.Minute // IP浏览去重窗口

	// 布隆过滤器相关常量
	BloomFilterKey     = "post:bloom" // 布隆过滤器的键
	BloomFilterSize    = 100000       // 预期元素数量
	BloomFalsePositive = 0.01         // 期望的误判率

	PostStatsExpire = 7 * 24 * time.Hour // 文章计数数据过期时间
)

// Enabled 计数快路径是否可用
func Enabled() bool {
	return global.Redis != nil
}

// GetPostStatsKey 获取文章计数数据的Redis键
func GetPostStatsKey(postID uint) string {
	return BuildKey(PostStatsKey + strconv.FormatUint(uint64(postID), 10))
}

// checkIPViewPost 检查IP是否在窗口内浏览过文章
func checkIPViewPost(postID uint, ip string) (bool, error) {
	key := BuildKey("post", "view", "ip", strconv.FormatUint(uint64(postID), 10), ip)
	// SetNX：窗口内第一次浏览返回true，否则false
	return global.Redis.SetNX(
		context.Background(),
		key,
		1,
		ViewIPExpire,
	).Result()
}

// IncrPostViewCount 增加文章浏览数，同一IP在窗口内只计一次
func IncrPostViewCount(postID uint, ip string) error {
	ctx := context.Background()

	isNewView, err := checkIPViewPost(postID, ip)
	if err != nil {
		global.Log.Error("检查IP浏览记录失败",
			zap.Uint("postID", postID),
			zap.String("ip", ip),
			zap.String("error", err.Error()),
		)
		return err
	}

	// 窗口内重复浏览不计数
	if !isNewView {
		return nil
	}

	pipe := global.Redis.Pipeline()
	key := GetPostStatsKey(postID)
	pipe.HIncrBy(ctx, key, FieldViewCount, 1)
	pipe.Expire(ctx, key, PostStatsExpire)

	if _, err = pipe.Exec(ctx); err != nil {
		global.Log.Error("增加文章浏览数失败",
			zap.Uint("postID", postID),
			zap.String("ip", ip),
			zap.String("error", err.Error()),
		)
		return err
	}
	return nil
}

// IncrPostShareCount 增加文章分享数
func IncrPostShareCount(postID uint) error {
	ctx := context.Background()
	key := GetPostStatsKey(postID)

	pipe := global.Redis.Pipeline()
	pipe.HIncrBy(ctx, key, FieldShareCount, 1)
	pipe.Expire(ctx, key, PostStatsExpire)
	_, err := pipe.Exec(ctx)
	return err
}

// GetPostStats 获取文章的全部计数数据
func GetPostStats(postID uint) (map[string]int64, error) {
	// 先检查布隆过滤器，一定不存在的文章直接返回
	exists, err := CheckBloomFilter(postID)
	if err != nil {
		global.Log.Error("检查布隆过滤器失败",
			zap.Uint("postID", postID),
			zap.Error(err))
		// 布隆过滤器不可用时继续走原有逻辑
	} else if !exists {
		return nil, nil
	}

	result, err := global.Redis.HGetAll(
		context.Background(),
		GetPostStatsKey(postID),
	).Result()
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int64, len(result))
	for field, value := range result {
		count, _ := strconv.ParseInt(value, 10, 64)
		stats[field] = count
	}
	return stats, nil
}

// DeletePostStats 文章删除后清理计数数据
func DeletePostStats(postID uint) error {
	return global.Redis.Del(
		context.Background(),
		GetPostStatsKey(postID),
	).Err()
}

// getBloomFilter 从Redis恢复布隆过滤器
func getBloomFilter() (*bloom.BloomFilter, error) {
	ctx := context.Background()

	data, err := global.Redis.Get(ctx, BuildKey(BloomFilterKey)).Bytes()
	if err != nil && err != redis.Nil {
		return nil, err
	}

	filter := bloom.NewWithEstimates(BloomFilterSize, BloomFalsePositive)
	if len(data) > 0 {
		filter.UnmarshalBinary(data)
	}
	return filter, nil
}

// saveBloomFilter 保存布隆过滤器到Redis
func saveBloomFilter(filter *bloom.BloomFilter) error {
	data, err := filter.MarshalBinary()
	if err != nil {
		return err
	}
	return global.Redis.Set(context.Background(), BuildKey(BloomFilterKey), data, 0).Err()
}

// AddToBloomFilter 将文章ID加入布隆过滤器
func AddToBloomFilter(postID uint) error {
	filter, err := getBloomFilter()
	if err != nil {
		global.Log.Error("获取布隆过滤器失败", zap.Error(err))
		return err
	}

	filter.Add([]byte(strconv.FormatUint(uint64(postID), 10)))

	if err := saveBloomFilter(filter); err != nil {
		global.Log.Error("保存布隆过滤器失败", zap.Error(err))
		return err
	}
	return nil
}

// CheckBloomFilter 检查文章ID是否可能存在
func CheckBloomFilter(postID uint) (bool, error) {
	filter, err := getBloomFilter()
	if err != nil {
		return false, err
	}
	return filter.Test([]byte(strconv.FormatUint(uint64(postID), 10))), nil
}
