package models

import (
	"bufio"
	"encoding/base64"
	"os"
	"strings"
	"sync"

	"fmt"

	"blog/global"
	"blog/models/ctypes"

	"github.com/importcjj/sensitive"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// CommentModel 评论模型
// 文章或父评论被删除时级联删除，作者用户被删除时 author_id 置空、访客字段保留
type CommentModel struct {
	MODEL       `json:","`
	Content     string               `json:"content" gorm:"type:text;not null"`
	Status      ctypes.CommentStatus `json:"status" gorm:"size:20;not null;default:pending;index"`
	PostID      uint                 `json:"post_id" gorm:"not null;index:idx_post_parent"`
	ParentID    *uint                `json:"parent_id" gorm:"index:idx_post_parent"`
	AuthorID    *uint                `json:"author_id" gorm:"index"`
	AuthorName  string               `json:"author_name" gorm:"size:50"`   // 访客姓名
	AuthorEmail string               `json:"author_email" gorm:"size:100"` // 访客邮箱
	IPAddress   string               `json:"ip_address" gorm:"size:50"`

	// 关联
	Post        PostModel       `json:"post,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Author      *UserModel      `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:SET NULL"`
	SubComments []*CommentModel `json:"sub_comments,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (CommentModel) TableName() string {
	return "comments"
}

var (
	ErrEmptyComment    = fmt.Errorf("%w: 评论内容不能为空", ErrInvalidState)
	ErrCommentTooLong  = fmt.Errorf("%w: 评论内容不能超过1000字", ErrInvalidState)
	ErrParentNotExist  = fmt.Errorf("%w: 父评论不存在", ErrNotFound)
	ErrParentCrossPost = fmt.Errorf("%w: 不能回复其他文章的评论", ErrInvalidState)
)

var (
	sensitiveFilter *sensitive.Filter
	sensitiveOnce   sync.Once
)

// loadSensitiveFilter 从文件加载Base64编码的敏感词，文件缺失时不启用过滤
func loadSensitiveFilter() {
	file, err := os.Open("sensitive_words.txt")
	if err != nil {
		return
	}
	defer file.Close()

	filter := sensitive.New()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(line)
		if err != nil {
			continue
		}
		word := strings.TrimSpace(string(decoded))
		if word != "" {
			filter.AddWord(word)
		}
	}
	sensitiveFilter = filter
}

// filterContent 清理HTML并过滤敏感词
func filterContent(content string) string {
	sensitiveOnce.Do(loadSensitiveFilter)

	content = bluemonday.UGCPolicy().Sanitize(content)
	if sensitiveFilter != nil {
		content = sensitiveFilter.Replace(content, '*')
	}
	return content
}

// commentValidate 验证评论内容与来源
func (c *CommentModel) commentValidate() error {
	content := strings.TrimSpace(c.Content)
	if content == "" {
		return ErrEmptyComment
	}
	if len(content) > 1000 {
		return ErrCommentTooLong
	}
	identity := Identity{UserID: c.AuthorID, GuestName: c.AuthorName, GuestEmail: c.AuthorEmail, IP: c.IPAddress}
	return identity.ValidateForComment()
}

// Create 创建评论，默认待审核
func (c *CommentModel) Create() error {
	if err := c.commentValidate(); err != nil {
		return err
	}
	c.Content = filterContent(c.Content)
	if c.Status == "" {
		c.Status = ctypes.CommentStatusPending
	}

	return global.DB.Transaction(func(tx *gorm.DB) error {
		// 检查文章是否存在
		var post PostModel
		if err := tx.Take(&post, c.PostID).Error; err != nil {
			return fmt.Errorf("%w: 文章不存在", ErrNotFound)
		}

		// 如果是回复，父评论必须存在且属于同一篇文章
		if c.ParentID != nil && *c.ParentID > 0 {
			var parent CommentModel
			if err := tx.Take(&parent, *c.ParentID).Error; err != nil {
				return ErrParentNotExist
			}
			if parent.PostID != c.PostID {
				return ErrParentCrossPost
			}
		}

		if err := tx.Create(c).Error; err != nil {
			return fmt.Errorf("创建评论失败: %w", wrapDBErr(err))
		}
		return nil
	})
}

// SetStatus 审核评论
func (c *CommentModel) SetStatus(status ctypes.CommentStatus) error {
	switch status {
	case ctypes.CommentStatusApproved, ctypes.CommentStatusPending, ctypes.CommentStatusSpam, ctypes.CommentStatusTrash:
	default:
		return fmt.Errorf("%w: 未知的评论状态 %s", ErrInvalidState, status)
	}
	return wrapDBErr(global.DB.Model(c).Update("status", status).Error)
}

// Delete 删除评论，子评论和点赞由外键级联删除
func (c *CommentModel) Delete() error {
	return global.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(c)
		if result.Error != nil {
			return fmt.Errorf("删除评论失败: %w", wrapDBErr(result.Error))
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: 评论不存在", ErrNotFound)
		}
		return nil
	})
}

// GetPostCommentsWithTree 获取文章的评论树
func GetPostCommentsWithTree(postID uint) ([]*CommentModel, error) {
	var allComments []*CommentModel
	if err := global.DB.Model(&CommentModel{}).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&allComments).Error; err != nil {
		return nil, fmt.Errorf("获取评论失败: %w", err)
	}

	return buildCommentTree(allComments), nil
}

// buildCommentTree 将评论列表构建成树形结构
func buildCommentTree(allComments []*CommentModel) []*CommentModel {
	commentMap := make(map[uint]*CommentModel)
	var rootComments []*CommentModel

	// 1. 建立映射关系
	for _, comment := range allComments {
		commentMap[comment.ID] = comment
	}

	// 2. 构建树形结构
	for _, comment := range allComments {
		if comment.ParentID == nil {
			rootComments = append(rootComments, comment)
		} else {
			if parent, exists := commentMap[*comment.ParentID]; exists {
				parent.SubComments = append(parent.SubComments, comment)
			}
		}
	}

	return rootComments
}

// GetTotalComments 获取评论总数
func GetTotalComments() (int64, error) {
	var count int64
	err := global.DB.Model(&CommentModel{}).Count(&count).Error
	return count, err
}
