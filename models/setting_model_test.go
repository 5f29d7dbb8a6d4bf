package models

import (
	"errors"
	"testing"

	"blog/models/ctypes"
)

func TestSettingUpsert(t *testing.T) {
	db := setupTestDB(t, "setting")

	if err := SetSetting("posts_per_page", "10", ctypes.SettingTypeNumber); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}
	// 覆盖写
	if err := SetSetting("posts_per_page", "20", ctypes.SettingTypeNumber); err != nil {
		t.Fatalf("覆盖配置失败: %v", err)
	}

	var count int64
	db.Model(&SettingModel{}).Where("setting_key = ?", "posts_per_page").Count(&count)
	if count != 1 {
		t.Fatalf("同键应只有一行，实际: %d", count)
	}

	setting, err := GetSetting("posts_per_page")
	if err != nil {
		t.Fatalf("读取配置失败: %v", err)
	}
	if setting.Value != "20" {
		t.Fatalf("配置值不符: %s", setting.Value)
	}

	if _, err := GetSetting("no-such-key"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("缺失键应返回不存在，实际: %v", err)
	}
	if err := SetSetting("", "x", ""); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("空键应被拒绝，实际: %v", err)
	}
}

func TestAutoloadSettings(t *testing.T) {
	db := setupTestDB(t, "setting-autoload")

	if err := Seed(db); err != nil {
		t.Fatalf("播种失败: %v", err)
	}
	// 非预加载项
	if err := SetSetting("secret_key", "abc", ctypes.SettingTypeString); err != nil {
		t.Fatalf("写入配置失败: %v", err)
	}

	autoload, err := AutoloadSettings()
	if err != nil {
		t.Fatalf("读取预加载配置失败: %v", err)
	}
	if _, ok := autoload["site_title"]; !ok {
		t.Fatal("预加载配置缺少 site_title")
	}
	if _, ok := autoload["secret_key"]; ok {
		t.Fatal("非预加载项不应出现")
	}
}
