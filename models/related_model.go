package models

import (
	"fmt"

	"blog/global"
	"blog/models/ctypes"
)

// RelatedPostModel 关联文章，有序对(post_id, related_post_id)唯一
// 两端文章任一被删除时级联删除，并发重复插入输掉的一方得到约束冲突而不是静默合并
type RelatedPostModel struct {
	MODEL         `json:","`
	PostID        uint                `json:"post_id" gorm:"not null;uniqueIndex:idx_related_pair"`
	RelatedPostID uint                `json:"related_post_id" gorm:"not null;uniqueIndex:idx_related_pair"`
	RelationType  ctypes.RelationType `json:"relation_type" gorm:"size:20;not null;default:manual"`
	SortOrder     int                 `json:"sort_order" gorm:"not null;default:0"`

	// 关联
	Post    PostModel `json:"post,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Related PostModel `json:"related,omitempty" gorm:"foreignKey:RelatedPostID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (RelatedPostModel) TableName() string {
	return "related_posts"
}

// Create 创建关联
func (r *RelatedPostModel) Create() error {
	if r.PostID == r.RelatedPostID {
		return fmt.Errorf("%w: 文章不能关联自身", ErrInvalidState)
	}
	if r.RelationType == "" {
		r.RelationType = ctypes.RelationManual
	}
	if err := global.DB.Create(r).Error; err != nil {
		return fmt.Errorf("创建文章关联失败: %w", wrapDBErr(err))
	}
	return nil
}

// Delete 删除关联
func (r *RelatedPostModel) Delete() error {
	result := global.DB.Delete(r)
	if result.Error != nil {
		return fmt.Errorf("删除文章关联失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: 文章关联不存在", ErrNotFound)
	}
	return nil
}

// RelatedPostList 按 sort_order 升序列出关联文章，sort_order 相同时 id 小者在前
func RelatedPostList(postID uint) ([]RelatedPostModel, error) {
	var list []RelatedPostModel
	err := global.DB.Where("post_id = ?", postID).
		Order("sort_order ASC, id ASC").
		Find(&list).Error
	return list, err
}
