package models

import (
	"fmt"

	"blog/models/ctypes"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 首次初始化的基线数据，全部按自然键做幂等upsert，重复执行不产生新行
// 每次调用构造新切片，避免Create回填的ID影响下一次执行
func defaultSettings() []SettingModel {
	return []SettingModel{
		{Key: "site_title", Value: "我的博客", Type: ctypes.SettingTypeString, IsAutoload: true},
		{Key: "site_tagline", Value: "又一个博客站点", Type: ctypes.SettingTypeString, IsAutoload: true},
		{Key: "site_url", Value: "http://localhost", Type: ctypes.SettingTypeString, IsAutoload: true},
		{Key: "posts_per_page", Value: "10", Type: ctypes.SettingTypeNumber, IsAutoload: true},
		{Key: "comments_enabled", Value: "true", Type: ctypes.SettingTypeBoolean, IsAutoload: true},
		{Key: "comment_moderation", Value: "true", Type: ctypes.SettingTypeBoolean, IsAutoload: true},
		{Key: "registration_enabled", Value: "false", Type: ctypes.SettingTypeBoolean, IsAutoload: true},
		{Key: "default_role", Value: string(ctypes.RoleSubscriber), Type: ctypes.SettingTypeString, IsAutoload: true},
	}
}

func defaultCategories() []CategoryModel {
	return []CategoryModel{
		{Name: "未分类", Slug: "uncategorized", Description: "默认分类"},
		{Name: "技术", Slug: "technology"},
		{Name: "生活", Slug: "lifestyle"},
		{Name: "随笔", Slug: "essay"},
	}
}

func defaultMenus() []MenuModel {
	return []MenuModel{
		{Name: "Primary Menu", Location: "primary"},
		{Name: "Footer Menu", Location: "footer"},
	}
}

// Seed 写入基线数据：默认配置、默认分类、默认菜单
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		settings := defaultSettings()
		categories := defaultCategories()
		menus := defaultMenus()

		// 配置按 setting_key 幂等
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoNothing: true,
		}).Create(&settings).Error
		if err != nil {
			return fmt.Errorf("写入默认配置失败: %w", err)
		}

		// 分类按 slug 幂等
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).Create(&categories).Error
		if err != nil {
			return fmt.Errorf("写入默认分类失败: %w", err)
		}

		// 菜单按 (name, location) 幂等
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}, {Name: "location"}},
			DoNothing: true,
		}).Create(&menus).Error
		if err != nil {
			return fmt.Errorf("写入默认菜单失败: %w", err)
		}

		return nil
	})
}
