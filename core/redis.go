package core

import (
	"context"
	"time"

	"blog/global"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InitRedis 初始化Redis，未启用时返回nil，计数走数据库原子自增
func InitRedis() *redis.Client {
	redisConf := global.Config.Redis
	if !redisConf.Enable {
		global.Log.Info("Redis未启用，计数快路径关闭")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisConf.Addr(),
		Password: redisConf.Password,
		DB:       redisConf.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		global.Log.Fatal("Redis连接失败",
			zap.String("addr", redisConf.Addr()),
			zap.String("error", err.Error()))
		return nil
	}

	global.Log.Info("Redis连接成功", zap.String("method", "InitRedis"), zap.String("path", "core/redis.go"))
	return client
}
