package models

import (
	"time"
)

type MODEL struct {
	ID        uint      `gorm:"primaryKey;comment:id" json:"id"`
	CreatedAt time.Time `gorm:"index;comment:创建时间" json:"created_at"`
	UpdatedAt time.Time `gorm:"comment:更新时间" json:"updated_at"`
}

type PageInfo struct {
	Page     int    `json:"page" form:"page" validate:"required,gt=0"`
	Key      string `json:"key" form:"key"`
	PageSize int    `json:"page_size" form:"page_size" validate:"required,gt=0"`
}

// Offset 分页偏移量
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type IDRequest struct {
	ID uint `json:"id" uri:"id" form:"id" validate:"required,gt=0"`
}
