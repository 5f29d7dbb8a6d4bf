package models

import (
	"fmt"

	"blog/global"
	"blog/models/ctypes"
	"blog/utils"

	"github.com/microcosm-cc/bluemonday"
)

// ContactModel 站点留言
type ContactModel struct {
	MODEL     `json:","`
	Name      string                  `json:"name" gorm:"size:50;not null" validate:"required,max=50"`
	Email     string                  `json:"email" gorm:"size:100;not null" validate:"required,email"`
	Subject   string                  `json:"subject" gorm:"size:255"`
	Message   string                  `json:"message" gorm:"type:text;not null" validate:"required"`
	Status    ctypes.SubmissionStatus `json:"status" gorm:"size:20;not null;default:new;index"`
	IPAddress string                  `json:"ip_address" gorm:"size:50"`
}

// TableName 指定表名
func (ContactModel) TableName() string {
	return "contact_submissions"
}

// Create 创建留言，内容只保留纯文本
func (c *ContactModel) Create() error {
	if err := utils.Validate(c); err != nil {
		return fmt.Errorf("输入验证失败: %w", err)
	}
	c.Subject = bluemonday.StrictPolicy().Sanitize(c.Subject)
	c.Message = bluemonday.StrictPolicy().Sanitize(c.Message)
	if c.Status == "" {
		c.Status = ctypes.SubmissionStatusNew
	}

	if err := global.DB.Create(c).Error; err != nil {
		return fmt.Errorf("创建留言失败: %w", wrapDBErr(err))
	}
	return nil
}

// AdvanceStatus 推进处理状态，只允许单向 new→read→replied→archived
func (c *ContactModel) AdvanceStatus(status ctypes.SubmissionStatus) error {
	if status.Rank() < 0 {
		return fmt.Errorf("%w: 未知的留言状态 %s", ErrInvalidState, status)
	}
	if status.Rank() < c.Status.Rank() {
		return fmt.Errorf("%w: 留言状态不能从 %s 回退到 %s", ErrInvalidState, c.Status, status)
	}
	if err := global.DB.Model(c).Update("status", status).Error; err != nil {
		return fmt.Errorf("更新留言状态失败: %w", err)
	}
	return nil
}

// ContactList 按状态分页列出留言
func ContactList(status ctypes.SubmissionStatus, page PageInfo) ([]ContactModel, int64, error) {
	var (
		list  []ContactModel
		total int64
	)
	query := global.DB.Model(&ContactModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&list).Error
	return list, total, err
}
