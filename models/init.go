package models

import (
	"fmt"

	"gorm.io/gorm"
)

// 需要自动迁移的模型列表，按依赖顺序从叶到根
var tables = []interface{}{
	&UserModel{},
	&CategoryModel{},
	&TagModel{},
	&MenuModel{},
	&PostModel{},
	&PostTagModel{},
	&CommentModel{},
	&MediaModel{},
	&PostViewModel{},
	&PostLikeModel{},
	&CommentLikeModel{},
	&RelatedPostModel{},
	&MenuItemModel{},
	&SubscriberModel{},
	&ContactModel{},
	&SettingModel{},
	&SessionModel{},
}

// InitTables 初始化数据库表和只读视图
func InitTables(db *gorm.DB) error {
	if err := db.AutoMigrate(tables...); err != nil {
		return fmt.Errorf("自动迁移数据库表失败: %w", err)
	}
	if err := CreateDBViews(db); err != nil {
		return err
	}
	return nil
}
