package models

import (
	"fmt"
	"strings"
)

// Identity 评论/点赞/浏览的来源，注册用户或访客二选一
// 模式本身允许全空，这条"恰好一个来源"的规则由写入路径校验
type Identity struct {
	UserID     *uint  `json:"user_id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	IP         string `json:"ip"`
}

// IsRegistered 是否为注册用户
func (i Identity) IsRegistered() bool {
	return i.UserID != nil && *i.UserID > 0
}

// ValidateForComment 评论来源校验：注册用户，或携带姓名+邮箱的访客
func (i Identity) ValidateForComment() error {
	if i.IsRegistered() {
		return nil
	}
	if strings.TrimSpace(i.GuestName) == "" || strings.TrimSpace(i.GuestEmail) == "" {
		return fmt.Errorf("%w: 访客评论必须携带姓名和邮箱", ErrInvalidState)
	}
	return nil
}

// ValidateForEngagement 点赞/浏览来源校验：注册用户，或携带IP的访客
func (i Identity) ValidateForEngagement() error {
	if i.IsRegistered() {
		return nil
	}
	if strings.TrimSpace(i.IP) == "" {
		return fmt.Errorf("%w: 访客行为必须携带IP", ErrInvalidState)
	}
	return nil
}

// userID 注册用户返回id，访客返回nil
func (i Identity) userID() *uint {
	if i.IsRegistered() {
		return i.UserID
	}
	return nil
}

// ipForDedup 访客返回IP指针用于去重索引，注册用户返回nil
func (i Identity) ipForDedup() *string {
	if i.IsRegistered() {
		return nil
	}
	ip := i.IP
	return &ip
}
