package models

import (
	"fmt"

	"blog/global"

	"gorm.io/gorm"
)

// PostLikeModel 文章点赞
// 每个(文章,用户)或(文章,IP)只允许一条，重复插入返回约束冲突且不产生部分写入
type PostLikeModel struct {
	MODEL     `json:","`
	PostID    uint    `json:"post_id" gorm:"not null;uniqueIndex:idx_post_like_user;uniqueIndex:idx_post_like_ip"`
	UserID    *uint   `json:"user_id" gorm:"uniqueIndex:idx_post_like_user"`
	IPAddress *string `json:"ip_address" gorm:"size:50;uniqueIndex:idx_post_like_ip"`

	// 关联
	Post PostModel  `json:"post,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User *UserModel `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (PostLikeModel) TableName() string {
	return "post_likes"
}

// CommentLikeModel 评论点赞，约束与文章点赞一致
type CommentLikeModel struct {
	MODEL     `json:","`
	CommentID uint    `json:"comment_id" gorm:"not null;uniqueIndex:idx_comment_like_user;uniqueIndex:idx_comment_like_ip"`
	UserID    *uint   `json:"user_id" gorm:"uniqueIndex:idx_comment_like_user"`
	IPAddress *string `json:"ip_address" gorm:"size:50;uniqueIndex:idx_comment_like_ip"`

	// 关联
	Comment CommentModel `json:"comment,omitempty" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE"`
	User    *UserModel   `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (CommentLikeModel) TableName() string {
	return "comment_likes"
}

// LikePost 点赞文章，同一身份重复点赞返回约束冲突，调用方可按需重试或忽略
func LikePost(postID uint, identity Identity) error {
	if err := identity.ValidateForEngagement(); err != nil {
		return err
	}

	like := &PostLikeModel{
		PostID:    postID,
		UserID:    identity.userID(),
		IPAddress: identity.ipForDedup(),
	}

	return global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(like).Error; err != nil {
			return fmt.Errorf("点赞失败: %w", wrapDBErr(err))
		}
		// 去重行写入成功后同步缓存计数
		if err := tx.Model(&PostModel{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error; err != nil {
			return fmt.Errorf("更新点赞计数失败: %w", err)
		}
		return nil
	})
}

// UnlikePost 取消点赞
func UnlikePost(postID uint, identity Identity) error {
	if err := identity.ValidateForEngagement(); err != nil {
		return err
	}

	return global.DB.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("post_id = ?", postID)
		if identity.IsRegistered() {
			query = query.Where("user_id = ?", *identity.UserID)
		} else {
			query = query.Where("ip_address = ?", identity.IP)
		}
		result := query.Delete(&PostLikeModel{})
		if result.Error != nil {
			return fmt.Errorf("取消点赞失败: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: 点赞记录不存在", ErrNotFound)
		}
		return tx.Model(&PostModel{}).
			Where("id = ? AND like_count > 0", postID).
			UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error
	})
}

// LikeComment 点赞评论
func LikeComment(commentID uint, identity Identity) error {
	if err := identity.ValidateForEngagement(); err != nil {
		return err
	}

	like := &CommentLikeModel{
		CommentID: commentID,
		UserID:    identity.userID(),
		IPAddress: identity.ipForDedup(),
	}
	if err := global.DB.Create(like).Error; err != nil {
		return fmt.Errorf("点赞评论失败: %w", wrapDBErr(err))
	}
	return nil
}

// PostLikeCount 实时统计文章点赞数
func PostLikeCount(postID uint) (int64, error) {
	var count int64
	err := global.DB.Model(&PostLikeModel{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// GetTotalLikes 获取文章点赞总数
func GetTotalLikes() (int64, error) {
	var count int64
	err := global.DB.Model(&PostLikeModel{}).Count(&count).Error
	return count, err
}
