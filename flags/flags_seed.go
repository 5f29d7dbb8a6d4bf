package flags

import (
	"blog/global"
	"blog/models"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func SeedData(c *cli.Context) error {
	if err := models.Seed(global.DB); err != nil {
		global.Log.Error("写入种子数据失败", zap.String("error", err.Error()))
		return err
	}
	global.Log.Info("写入种子数据成功", zap.String("method", "SeedData"), zap.String("path", "flags/flags_seed.go"))
	return nil
}
