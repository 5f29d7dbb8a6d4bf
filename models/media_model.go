package models

import (
	"fmt"

	"blog/global"
	"blog/utils"

	"gorm.io/gorm"
)

// MediaModel 媒体模型
// 上传者被删除时级联删除，所附文章被删除时 post_id 置空（文件记录保留）
type MediaModel struct {
	MODEL      `json:","`
	FilePath   string `json:"file_path" gorm:"size:255;not null" validate:"required,max=255"`
	FileSize   int64  `json:"file_size" gorm:"not null;default:0" validate:"gte=0"`
	MimeType   string `json:"mime_type" gorm:"size:100;not null" validate:"required,max=100"`
	Width      *int   `json:"width"`  // 图片宽度，非图片为空
	Height     *int   `json:"height"` // 图片高度，非图片为空
	AltText    string `json:"alt_text" gorm:"size:255"`
	UploaderID uint   `json:"uploader_id" gorm:"not null;index" validate:"required,gt=0"`
	PostID     *uint  `json:"post_id" gorm:"index"`

	// 关联
	Uploader UserModel  `json:"uploader,omitempty" gorm:"foreignKey:UploaderID;constraint:OnDelete:CASCADE"`
	Post     *PostModel `json:"post,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:SET NULL"`
}

// TableName 指定表名
func (MediaModel) TableName() string {
	return "media"
}

// Create 创建媒体记录
func (m *MediaModel) Create() error {
	if err := utils.Validate(m); err != nil {
		return fmt.Errorf("输入验证失败: %w", err)
	}
	if err := global.DB.Create(m).Error; err != nil {
		return fmt.Errorf("创建媒体记录失败: %w", wrapDBErr(err))
	}
	return nil
}

// FindByID 根据ID查找媒体
func (m *MediaModel) FindByID(id uint) error {
	return wrapDBErr(global.DB.Take(m, id).Error)
}

// Delete 删除媒体记录
func (m *MediaModel) Delete() error {
	return global.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(m)
		if result.Error != nil {
			return fmt.Errorf("删除媒体记录失败: %w", wrapDBErr(result.Error))
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: 媒体记录不存在", ErrNotFound)
		}
		return nil
	})
}

// MediaListByUploader 按上传者分页列出媒体
func MediaListByUploader(uploaderID uint, page PageInfo) ([]MediaModel, int64, error) {
	var (
		list  []MediaModel
		total int64
	)
	query := global.DB.Model(&MediaModel{}).Where("uploader_id = ?", uploaderID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&list).Error
	return list, total, err
}
