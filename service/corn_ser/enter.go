package corn_ser

import (
	"time"

	"blog/global"

	"github.com/robfig/cron/v3"
)

// 每隔5分钟执行一次
//"0 */5 * * * *"     //每隔5分钟（00:05:00, 00:10:00, ...)

// 每小时执行一次
//"0 0 * * * *"      // 每小时的开始（01:00:00, 02:00:00, ...)

// 每天执行一次
//"0 0 0 * * *"      // 每天凌晨（00:00:00）

func CornInit() {
	tz := global.Config.System.Timezone
	if tz == "" {
		tz = "Asia/Shanghai"
	}
	timezone, err := time.LoadLocation(tz)
	if err != nil {
		timezone = time.Local
	}

	Cron := cron.New(cron.WithSeconds(), cron.WithLocation(timezone))
	// 没有Redis快路径就没有需要回写的计数
	if global.Redis != nil {
		Cron.AddFunc("0 */1 * * * *", SyncPostCounters)
	}
	Cron.AddFunc("0 0 * * * *", CleanExpiredSessions)
	Cron.Start()
}
