package models

import (
	"fmt"

	"blog/global"
	"blog/models/ctypes"

	"gorm.io/gorm/clause"
)

// SettingModel 键值配置
// is_autoload 标记进程启动时预加载的配置项
type SettingModel struct {
	MODEL      `json:","`
	Key        string             `json:"key" gorm:"column:setting_key;size:100;not null;uniqueIndex"`
	Value      string             `json:"value" gorm:"type:text"`
	Type       ctypes.SettingType `json:"type" gorm:"size:20;not null;default:string"`
	IsAutoload bool               `json:"is_autoload" gorm:"not null;default:false;index"`
}

// TableName 指定表名
func (SettingModel) TableName() string {
	return "settings"
}

// GetSetting 按键读取配置
func GetSetting(key string) (*SettingModel, error) {
	var setting SettingModel
	if err := global.DB.Where("setting_key = ?", key).Take(&setting).Error; err != nil {
		return nil, wrapDBErr(err)
	}
	return &setting, nil
}

// SetSetting 按键写入配置，存在则覆盖值和类型
func SetSetting(key string, value string, settingType ctypes.SettingType) error {
	if key == "" {
		return fmt.Errorf("%w: 配置键不能为空", ErrInvalidState)
	}
	if settingType == "" {
		settingType = ctypes.SettingTypeString
	}

	setting := SettingModel{
		Key:   key,
		Value: value,
		Type:  settingType,
	}
	err := global.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type", "updated_at"}),
	}).Create(&setting).Error
	if err != nil {
		return fmt.Errorf("写入配置失败: %w", wrapDBErr(err))
	}
	return nil
}

// AutoloadSettings 读取全部预加载配置
func AutoloadSettings() (map[string]string, error) {
	var settings []SettingModel
	if err := global.DB.Where("is_autoload = ?", true).Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("读取预加载配置失败: %w", err)
	}

	result := make(map[string]string, len(settings))
	for _, s := range settings {
		result[s.Key] = s.Value
	}
	return result, nil
}
