package flags

import (
	"blog/global"
	"blog/service/corn_ser"

	"github.com/urfave/cli/v2"
)

func Reconcile(c *cli.Context) error {
	if global.Redis == nil {
		global.Log.Warn("Redis未启用，无计数可回写")
		return nil
	}
	corn_ser.SyncPostCounters()
	global.Log.Info("计数回写完成")
	return nil
}
