package models

import (
	"fmt"
	"time"

	"blog/global"
	"blog/models/ctypes"
	"blog/service/redis_ser"
	"blog/utils"

	"gorm.io/gorm"
)

// PostModel 文章模型
// 作者被删除时文章级联删除，分类被删除时 category_id 置空
// view_count/like_count/share_count 是允许漂移的缓存计数，实时值看 post_stats
type PostModel struct {
	MODEL       `json:","`
	Title       string            `json:"title" gorm:"size:255;not null" validate:"required,max=255"`
	Slug        string            `json:"slug" gorm:"size:255;not null;uniqueIndex" validate:"required,max=255"`
	Content     string            `json:"content" gorm:"type:longtext"`
	Excerpt     string            `json:"excerpt" gorm:"size:500"`
	Status      ctypes.PostStatus `json:"status" gorm:"size:20;not null;default:draft;index" validate:"required,oneof=draft published scheduled archived"`
	Type        ctypes.PostType   `json:"type" gorm:"size:20;not null;default:post;index" validate:"required,oneof=post page custom"`
	Password    string            `json:"-" gorm:"size:100"` // 可选的阅读密码
	ViewCount   int64             `json:"view_count" gorm:"not null;default:0"`
	LikeCount   int64             `json:"like_count" gorm:"not null;default:0"`
	ShareCount  int64             `json:"share_count" gorm:"not null;default:0"`
	WordCount   int               `json:"word_count" gorm:"not null;default:0"`
	AuthorID    uint              `json:"author_id" gorm:"not null;index" validate:"required,gt=0"`
	CategoryID  *uint             `json:"category_id" gorm:"index"`
	PublishedAt *time.Time        `json:"published_at" gorm:"index"`
	ScheduledAt *time.Time        `json:"scheduled_at" gorm:"index"`

	// 关联
	Author   UserModel      `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Category *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Tags     []TagModel     `json:"tags,omitempty" gorm:"many2many:post_tags;constraint:OnDelete:CASCADE"`
	TagIDs   []uint         `json:"tag_ids,omitempty" gorm:"-"` // 用于接收标签ID列表
}

// TableName 指定表名
func (PostModel) TableName() string {
	return "posts"
}

// Create 创建文章，摘要和字数从内容推导
func (p *PostModel) Create() error {
	if p.Status == "" {
		p.Status = ctypes.PostStatusDraft
	}
	if p.Type == "" {
		p.Type = ctypes.PostTypePost
	}
	if err := utils.Validate(p); err != nil {
		return fmt.Errorf("输入验证失败: %w", err)
	}

	if p.Excerpt == "" && p.Content != "" {
		p.Excerpt = utils.MarkdownExcerpt(p.Content, 120)
	}
	p.WordCount = utils.WordCount(p.Content)

	err := global.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("创建文章失败: %w", wrapDBErr(err))
		}
		if len(p.TagIDs) > 0 {
			if err := p.replaceTags(tx, p.TagIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 新文章登记到布隆过滤器，守护Redis计数读取
	if redis_ser.Enabled() {
		if err := redis_ser.AddToBloomFilter(p.ID); err != nil {
			global.Log.Warnf("布隆过滤器登记失败: %v", err)
		}
	}
	return nil
}

// FindByID 根据ID查找文章
func (p *PostModel) FindByID(id uint) error {
	return wrapDBErr(global.DB.Take(p, id).Error)
}

// FindBySlug 根据别名查找文章
func (p *PostModel) FindBySlug(slug string) error {
	return wrapDBErr(global.DB.Where("slug = ?", slug).Take(p).Error)
}

// Update 更新文章，内容变更时重算摘要和字数
func (p *PostModel) Update(updates map[string]interface{}) error {
	if content, ok := updates["content"].(string); ok {
		updates["word_count"] = utils.WordCount(content)
		if _, set := updates["excerpt"]; !set {
			updates["excerpt"] = utils.MarkdownExcerpt(content, 120)
		}
	}
	return wrapDBErr(global.DB.Model(p).Updates(updates).Error)
}

// Publish 发布文章
func (p *PostModel) Publish() error {
	if p.Status == ctypes.PostStatusArchived {
		return fmt.Errorf("%w: 已归档的文章不能直接发布", ErrInvalidState)
	}
	now := time.Now()
	return wrapDBErr(global.DB.Model(p).Updates(map[string]interface{}{
		"status":       ctypes.PostStatusPublished,
		"published_at": &now,
	}).Error)
}

// Schedule 定时发布，时间必须在未来
func (p *PostModel) Schedule(at time.Time) error {
	if !at.After(time.Now()) {
		return fmt.Errorf("%w: 定时发布时间必须在未来", ErrInvalidState)
	}
	return wrapDBErr(global.DB.Model(p).Updates(map[string]interface{}{
		"status":       ctypes.PostStatusScheduled,
		"scheduled_at": &at,
	}).Error)
}

// Archive 归档文章
func (p *PostModel) Archive() error {
	return wrapDBErr(global.DB.Model(p).Update("status", ctypes.PostStatusArchived).Error)
}

// SetTags 重设文章标签
func (p *PostModel) SetTags(tagIDs []uint) error {
	return global.DB.Transaction(func(tx *gorm.DB) error {
		return p.replaceTags(tx, tagIDs)
	})
}

// replaceTags 校验标签存在后整体替换关联
func (p *PostModel) replaceTags(tx *gorm.DB, tagIDs []uint) error {
	var tags []TagModel
	if err := tx.Find(&tags, tagIDs).Error; err != nil {
		return fmt.Errorf("查找标签失败: %w", err)
	}
	if len(tags) != len(tagIDs) {
		return fmt.Errorf("%w: 部分标签不存在", ErrNotFound)
	}
	if err := tx.Model(p).Association("Tags").Replace(tags); err != nil {
		return fmt.Errorf("更新文章标签失败: %w", wrapDBErr(err))
	}
	return nil
}

// IncrementCounter 原子自增计数列，避免读改写丢更新
func (p *PostModel) IncrementCounter(counter ctypes.CounterField) error {
	column := counter.Column()
	if column == "" {
		return fmt.Errorf("%w: 未知的计数字段 %s", ErrInvalidState, counter)
	}
	result := global.DB.Model(&PostModel{}).
		Where("id = ?", p.ID).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("更新%s失败: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: 文章不存在", ErrNotFound)
	}
	return nil
}

// Share 自增分享计数，Redis快路径优先
func (p *PostModel) Share() error {
	if redis_ser.Enabled() {
		return redis_ser.IncrPostShareCount(p.ID)
	}
	return p.IncrementCounter(ctypes.CounterShare)
}

// Delete 删除文章，评论/浏览/点赞/关联行由外键级联删除
func (p *PostModel) Delete() error {
	err := global.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(p)
		if result.Error != nil {
			return fmt.Errorf("删除文章失败: %w", wrapDBErr(result.Error))
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: 文章不存在", ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 清理Redis里的计数数据
	if redis_ser.Enabled() {
		if err := redis_ser.DeletePostStats(p.ID); err != nil {
			global.Log.Warnf("清理文章计数数据失败: %v", err)
		}
	}
	return nil
}

// GetTotalPosts 获取文章总数
func GetTotalPosts() (int64, error) {
	var count int64
	err := global.DB.Model(&PostModel{}).Count(&count).Error
	return count, err
}
