package models

import (
	"fmt"

	"blog/global"
	"blog/utils"

	"gorm.io/gorm"
)

// TagModel 标签模型
// 删除标签只级联清理 post_tags 关联行，文章本身不受影响
type TagModel struct {
	MODEL `json:","`
	Name  string `json:"name" gorm:"size:50;not null;uniqueIndex" validate:"required,max=50"`
	Slug  string `json:"slug" gorm:"size:50;not null;uniqueIndex" validate:"required,max=50"`

	// 关联
	Posts []*PostModel `json:"posts,omitempty" gorm:"many2many:post_tags;"`
}

// TableName 指定表名
func (TagModel) TableName() string {
	return "tags"
}

// PostTagModel 文章-标签关联模型
type PostTagModel struct {
	PostID uint `gorm:"primaryKey" json:"post_id"`
	TagID  uint `gorm:"primaryKey" json:"tag_id"`
}

// TableName 指定表名
func (PostTagModel) TableName() string {
	return "post_tags"
}

// Create 创建标签
func (t *TagModel) Create() error {
	if err := utils.Validate(t); err != nil {
		return fmt.Errorf("输入验证失败: %w", err)
	}
	if err := global.DB.Create(t).Error; err != nil {
		return fmt.Errorf("创建标签失败: %w", wrapDBErr(err))
	}
	return nil
}

// FindBySlug 根据别名查找标签
func (t *TagModel) FindBySlug(slug string) error {
	return wrapDBErr(global.DB.Where("slug = ?", slug).Take(t).Error)
}

// Delete 删除标签，关联行由外键级联删除
func (t *TagModel) Delete() error {
	return global.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(t)
		if result.Error != nil {
			return fmt.Errorf("删除标签失败: %w", wrapDBErr(result.Error))
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: 标签不存在", ErrNotFound)
		}
		return nil
	})
}

// TagList 获取全部标签
func TagList() ([]TagModel, error) {
	var list []TagModel
	err := global.DB.Order("name ASC").Find(&list).Error
	return list, err
}
