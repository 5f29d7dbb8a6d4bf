package models

import (
	"testing"
)

func TestSeedIdempotent(t *testing.T) {
	db := setupTestDB(t, "seed")

	if err := Seed(db); err != nil {
		t.Fatalf("首次播种失败: %v", err)
	}

	var settings, categories, menus int64
	db.Model(&SettingModel{}).Count(&settings)
	db.Model(&CategoryModel{}).Count(&categories)
	db.Model(&MenuModel{}).Count(&menus)
	if settings == 0 || categories == 0 || menus == 0 {
		t.Fatalf("基线数据不完整: settings=%d categories=%d menus=%d", settings, categories, menus)
	}

	// 手工改动不被重复播种覆盖
	if err := SetSetting("site_title", "改过的标题", ""); err != nil {
		t.Fatalf("改写配置失败: %v", err)
	}

	if err := Seed(db); err != nil {
		t.Fatalf("重复播种失败: %v", err)
	}

	var settings2, categories2, menus2 int64
	db.Model(&SettingModel{}).Count(&settings2)
	db.Model(&CategoryModel{}).Count(&categories2)
	db.Model(&MenuModel{}).Count(&menus2)
	if settings2 != settings || categories2 != categories || menus2 != menus {
		t.Fatalf("重复播种产生了新行: %d/%d %d/%d %d/%d",
			settings, settings2, categories, categories2, menus, menus2)
	}

	title, err := GetSetting("site_title")
	if err != nil {
		t.Fatalf("读取配置失败: %v", err)
	}
	if title.Value != "改过的标题" {
		t.Fatalf("播种覆盖了手工改动: %s", title.Value)
	}

	// 默认分类按别名可查
	var uncategorized CategoryModel
	if err := uncategorized.FindBySlug("uncategorized"); err != nil {
		t.Fatalf("默认分类缺失: %v", err)
	}
}
