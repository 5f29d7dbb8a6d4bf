package corn_ser

import (
	"time"

	"blog/global"
	"blog/models"
)

// 超过30天未活动的会话视为过期
const sessionMaxIdle = 30 * 24 * time.Hour

// CleanExpiredSessions 清理长期无活动的会话
func CleanExpiredSessions() {
	count, err := models.DeleteExpiredSessions(sessionMaxIdle)
	if err != nil {
		global.Log.Errorf("清理过期会话失败: %v", err)
		return
	}
	if count > 0 {
		global.Log.Infof("清理过期会话%d条", count)
	}
}
