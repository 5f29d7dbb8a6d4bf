package models

import (
	"errors"
	"fmt"
	"time"

	"blog/global"
	"blog/models/ctypes"
	"blog/utils"

	"gorm.io/gorm"
)

// SubscriberModel 邮件订阅者，signup→确认→退订
type SubscriberModel struct {
	MODEL          `json:","`
	Email          string                  `json:"email" gorm:"size:100;not null;uniqueIndex" validate:"required,email"`
	Status         ctypes.SubscriberStatus `json:"status" gorm:"size:20;not null;default:pending;index"`
	ConfirmToken   string                  `json:"-" gorm:"size:100;index"`
	ConfirmedAt    *time.Time              `json:"confirmed_at"`
	UnsubscribedAt *time.Time              `json:"unsubscribed_at"`
}

// TableName 指定表名
func (SubscriberModel) TableName() string {
	return "newsletter_subscribers"
}

// Subscribe 创建待确认的订阅，邮箱重复返回约束冲突
func Subscribe(email string) (*SubscriberModel, error) {
	sub := &SubscriberModel{
		Email:  email,
		Status: ctypes.SubscriberStatusPending,
	}
	if err := utils.Validate(sub); err != nil {
		return nil, fmt.Errorf("输入验证失败: %w", err)
	}

	token, err := utils.GenToken(16)
	if err != nil {
		return nil, err
	}
	sub.ConfirmToken = token

	if err := global.DB.Create(sub).Error; err != nil {
		return nil, fmt.Errorf("创建订阅失败: %w", wrapDBErr(err))
	}
	return sub, nil
}

// ConfirmSubscription 按确认令牌完成订阅
func ConfirmSubscription(token string) error {
	if token == "" {
		return fmt.Errorf("%w: 确认令牌不能为空", ErrInvalidState)
	}
	var sub SubscriberModel
	if err := global.DB.Where("confirm_token = ?", token).Take(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 确认令牌无效", ErrNotFound)
		}
		return err
	}

	now := time.Now()
	return global.DB.Model(&sub).Updates(map[string]interface{}{
		"status":        ctypes.SubscriberStatusSubscribed,
		"confirm_token": "",
		"confirmed_at":  &now,
	}).Error
}

// Unsubscribe 按邮箱退订
func Unsubscribe(email string) error {
	var sub SubscriberModel
	if err := global.DB.Where("email = ?", email).Take(&sub).Error; err != nil {
		return wrapDBErr(err)
	}

	now := time.Now()
	return global.DB.Model(&sub).Updates(map[string]interface{}{
		"status":          ctypes.SubscriberStatusUnsubscribed,
		"unsubscribed_at": &now,
	}).Error
}

// GetTotalSubscribers 获取有效订阅数
func GetTotalSubscribers() (int64, error) {
	var count int64
	err := global.DB.Model(&SubscriberModel{}).
		Where("status = ?", ctypes.SubscriberStatusSubscribed).
		Count(&count).Error
	return count, err
}
