package models

import (
	"fmt"
	"time"

	"blog/global"
	"blog/utils"
)

// SessionModel 登录会话，主键是不透明的会话ID
// 用户被删除时级联删除，过期清理是外部策略（DeleteExpiredSessions），模式不强制
type SessionModel struct {
	ID             string    `json:"id" gorm:"primaryKey;size:64"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	UserID         uint      `json:"user_id" gorm:"not null;index"`
	IPAddress      string    `json:"ip_address" gorm:"size:50"`
	UserAgent      string    `json:"user_agent" gorm:"size:255"`
	LastActivityAt time.Time `json:"last_activity_at" gorm:"not null;index"`

	// 关联
	User UserModel `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (SessionModel) TableName() string {
	return "user_sessions"
}

// CreateSession 登录时创建会话
func CreateSession(userID uint, ip, userAgent string) (*SessionModel, error) {
	id, err := utils.GenerateSessionID()
	if err != nil {
		return nil, err
	}

	session := &SessionModel{
		ID:             id,
		UserID:         userID,
		IPAddress:      ip,
		UserAgent:      userAgent,
		LastActivityAt: time.Now(),
	}
	if err := global.DB.Create(session).Error; err != nil {
		return nil, fmt.Errorf("创建会话失败: %w", wrapDBErr(err))
	}
	return session, nil
}

// FindSession 按会话ID查找
func FindSession(id string) (*SessionModel, error) {
	var session SessionModel
	if err := global.DB.Take(&session, "id = ?", id).Error; err != nil {
		return nil, wrapDBErr(err)
	}
	return &session, nil
}

// Touch 刷新最后活跃时间
func (s *SessionModel) Touch() error {
	return global.DB.Model(s).Update("last_activity_at", time.Now()).Error
}

// Delete 登出时删除会话
func (s *SessionModel) Delete() error {
	result := global.DB.Delete(s)
	if result.Error != nil {
		return fmt.Errorf("删除会话失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: 会话不存在", ErrNotFound)
	}
	return nil
}

// DeleteExpiredSessions 清理闲置超过maxIdle的会话，返回清理数量
func DeleteExpiredSessions(maxIdle time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxIdle)
	result := global.DB.Where("last_activity_at < ?", cutoff).Delete(&SessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("清理过期会话失败: %w", result.Error)
	}
	return result.RowsAffected, nil
}
