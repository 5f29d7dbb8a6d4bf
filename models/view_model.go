package models

import (
	"fmt"

	"blog/global"
	"blog/service/redis_ser"
	"blog/utils"
)

// PostViewModel 文章浏览记录，只追加
// 文章被删除时级联删除，用户被删除时 user_id 置空（匿名化保留）
type PostViewModel struct {
	MODEL        `json:","`
	PostID       uint   `json:"post_id" gorm:"not null;index"`
	UserID       *uint  `json:"user_id" gorm:"index"`
	IPAddress    string `json:"ip_address" gorm:"size:50"`
	UserAgent    string `json:"user_agent" gorm:"size:255"`
	Distribution string `json:"distribution" gorm:"size:100"` // IP解析出的地区

	// 关联
	Post PostModel  `json:"post,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User *UserModel `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
}

// TableName 指定表名
func (PostViewModel) TableName() string {
	return "post_views"
}

// RecordPostView 记录一次浏览并原子自增文章浏览数
func RecordPostView(postID uint, identity Identity, userAgent string) error {
	if err := identity.ValidateForEngagement(); err != nil {
		return err
	}

	view := &PostViewModel{
		PostID:    postID,
		UserID:    identity.userID(),
		IPAddress: identity.IP,
		UserAgent: userAgent,
	}
	if identity.IP != "" {
		view.Distribution = utils.GetAddrByIp(identity.IP)
	}

	if err := global.DB.Create(view).Error; err != nil {
		return fmt.Errorf("记录浏览失败: %w", wrapDBErr(err))
	}

	// 计数走Redis快路径（带IP去重窗口），未启用时退回数据库原子自增
	// 缓存计数允许漂移，自增失败不影响浏览记录本身
	if redis_ser.Enabled() {
		if err := redis_ser.IncrPostViewCount(postID, identity.IP); err != nil {
			global.Log.Warnf("Redis自增浏览计数失败: %v", err)
		}
	} else {
		post := &PostModel{MODEL: MODEL{ID: postID}}
		if err := post.IncrementCounter("view"); err != nil {
			global.Log.Warnf("自增浏览计数失败: %v", err)
		}
	}
	return nil
}

// PostViewCount 实时统计文章的浏览记录数
func PostViewCount(postID uint) (int64, error) {
	var count int64
	err := global.DB.Model(&PostViewModel{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// GetTotalViews 获取浏览记录总数
func GetTotalViews() (int64, error) {
	var count int64
	err := global.DB.Model(&PostViewModel{}).Count(&count).Error
	return count, err
}
