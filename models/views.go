package models

import (
	"fmt"
	"time"

	"blog/global"
	"blog/models/ctypes"

	"gorm.io/gorm"
)

// PublishedPost published_posts 投影：已发布且定时时间已到的文章，带作者昵称和分类信息
// 左连接保证作者或分类缺失时文章仍然可见
type PublishedPost struct {
	ID           uint            `json:"id"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	Excerpt      string          `json:"excerpt"`
	Type         ctypes.PostType `json:"type"`
	ViewCount    int64           `json:"view_count"`
	LikeCount    int64           `json:"like_count"`
	ShareCount   int64           `json:"share_count"`
	AuthorID     uint            `json:"author_id"`
	AuthorName   string          `json:"author_name"`
	CategoryID   *uint           `json:"category_id"`
	CategoryName string          `json:"category_name"`
	CategorySlug string          `json:"category_slug"`
	PublishedAt  *time.Time      `json:"published_at"`
}

// PostFilters 文章列表过滤条件
type PostFilters struct {
	CategoryID *uint
	TagID      *uint
	AuthorID   *uint
}

// publishedScope 发布可见性规则：status=published 且 scheduled_at 为空或已到
func publishedScope(db *gorm.DB) *gorm.DB {
	return db.Where("posts.status = ?", ctypes.PostStatusPublished).
		Where("posts.scheduled_at IS NULL OR posts.scheduled_at <= ?", time.Now())
}

// ListPublishedPosts 分页列出已发布文章，按发布时间倒序，每次读取实时求值
func ListPublishedPosts(filters PostFilters, page PageInfo) ([]PublishedPost, int64, error) {
	query := global.DB.Model(&PostModel{}).
		Joins("LEFT JOIN users ON users.id = posts.author_id").
		Joins("LEFT JOIN categories ON categories.id = posts.category_id")
	query = publishedScope(query)

	if filters.CategoryID != nil {
		query = query.Where("posts.category_id = ?", *filters.CategoryID)
	}
	if filters.AuthorID != nil {
		query = query.Where("posts.author_id = ?", *filters.AuthorID)
	}
	if filters.TagID != nil {
		query = query.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id = ?", *filters.TagID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计已发布文章失败: %w", err)
	}

	var list []PublishedPost
	err := query.
		Select("posts.id, posts.title, posts.slug, posts.excerpt, posts.type, " +
			"posts.view_count, posts.like_count, posts.share_count, " +
			"posts.author_id, users.nickname AS author_name, " +
			"posts.category_id, categories.name AS category_name, categories.slug AS category_slug, " +
			"posts.published_at").
		Order("posts.published_at DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Scan(&list).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询已发布文章失败: %w", err)
	}
	return list, total, nil
}

// PostStats post_stats 投影：从源行实时重算的统计
// 同时带出文章自身的缓存计数，两者允许不相等（缓存由外部写路径维护）
type PostStats struct {
	PostID        uint  `json:"post_id"`
	TotalComments int64 `json:"total_comments"` // 实时统计的已通过评论数
	TotalLikes    int64 `json:"total_likes"`    // 实时统计的点赞行数
	ViewCount     int64 `json:"view_count"`     // 缓存计数
	LikeCount     int64 `json:"like_count"`     // 缓存计数
	ShareCount    int64 `json:"share_count"`    // 缓存计数
}

// PostStatsFor 重算单篇文章的统计
func PostStatsFor(postID uint) (*PostStats, error) {
	var post PostModel
	if err := global.DB.Take(&post, postID).Error; err != nil {
		return nil, wrapDBErr(err)
	}

	stats := &PostStats{
		PostID:     post.ID,
		ViewCount:  post.ViewCount,
		LikeCount:  post.LikeCount,
		ShareCount: post.ShareCount,
	}

	err := global.DB.Model(&CommentModel{}).
		Where("post_id = ? AND status = ?", postID, ctypes.CommentStatusApproved).
		Count(&stats.TotalComments).Error
	if err != nil {
		return nil, fmt.Errorf("统计评论失败: %w", err)
	}

	if stats.TotalLikes, err = PostLikeCount(postID); err != nil {
		return nil, fmt.Errorf("统计点赞失败: %w", err)
	}
	return stats, nil
}

const publishedPostsViewSQL = `SELECT posts.id, posts.title, posts.slug, posts.excerpt, posts.type,
posts.view_count, posts.like_count, posts.share_count,
posts.author_id, users.nickname AS author_name,
posts.category_id, categories.name AS category_name, categories.slug AS category_slug,
posts.published_at, posts.created_at, posts.updated_at
FROM posts
LEFT JOIN users ON users.id = posts.author_id
LEFT JOIN categories ON categories.id = posts.category_id
WHERE posts.status = 'published'
AND (posts.scheduled_at IS NULL OR posts.scheduled_at <= CURRENT_TIMESTAMP)`

const postStatsViewSQL = `SELECT posts.id AS post_id,
posts.view_count, posts.like_count, posts.share_count,
(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.status = 'approved') AS total_comments,
(SELECT COUNT(*) FROM post_likes WHERE post_likes.post_id = posts.id) AS total_likes
FROM posts`

// CreateDBViews 在数据库里注册两个只读视图，供外部消费方直接查询
func CreateDBViews(db *gorm.DB) error {
	views := []struct {
		name string
		sql  string
	}{
		{"published_posts", publishedPostsViewSQL},
		{"post_stats", postStatsViewSQL},
	}

	for _, v := range views {
		var err error
		if db.Dialector.Name() == "mysql" {
			err = db.Exec(fmt.Sprintf("CREATE OR REPLACE VIEW %s AS %s", v.name, v.sql)).Error
		} else {
			if err = db.Exec(fmt.Sprintf("DROP VIEW IF EXISTS %s", v.name)).Error; err == nil {
				err = db.Exec(fmt.Sprintf("CREATE VIEW %s AS %s", v.name, v.sql)).Error
			}
		}
		if err != nil {
			return fmt.Errorf("创建视图 %s 失败: %w", v.name, err)
		}
	}
	return nil
}
