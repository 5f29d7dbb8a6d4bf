package models

import (
	"fmt"

	"blog/global"
	"blog/utils"

	"gorm.io/gorm"
)

// CategoryModel 分类模型，parent_id 构成树
// 删除父分类时子分类升为根（外键置空），不会悄悄变成孤儿
type CategoryModel struct {
	MODEL       `json:","`
	Name        string `json:"name" gorm:"size:50;not null;uniqueIndex" validate:"required,max=50"`
	Slug        string `json:"slug" gorm:"size:50;not null;uniqueIndex" validate:"required,max=50"`
	Description string `json:"description" gorm:"type:text"`
	ParentID    *uint  `json:"parent_id" gorm:"index"`

	// 关联
	Parent   *CategoryModel   `json:"parent,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Children []*CategoryModel `json:"children,omitempty" gorm:"foreignKey:ParentID"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "categories"
}

// Create 创建分类
func (c *CategoryModel) Create() error {
	if err := utils.Validate(c); err != nil {
		return fmt.Errorf("输入验证失败: %w", err)
	}

	return global.DB.Transaction(func(tx *gorm.DB) error {
		if c.ParentID != nil {
			if err := parentCategoryExist(tx, *c.ParentID); err != nil {
				return err
			}
		}
		if err := tx.Create(c).Error; err != nil {
			return fmt.Errorf("创建分类失败: %w", wrapDBErr(err))
		}
		return nil
	})
}

// FindByID 根据ID查找分类
func (c *CategoryModel) FindByID(id uint) error {
	return wrapDBErr(global.DB.Take(c, id).Error)
}

// FindBySlug 根据别名查找分类
func (c *CategoryModel) FindBySlug(slug string) error {
	return wrapDBErr(global.DB.Where("slug = ?", slug).Take(c).Error)
}

// SetParent 移动分类，写入前做环检测（模式本身不阻止环）
func (c *CategoryModel) SetParent(parentID *uint) error {
	return global.DB.Transaction(func(tx *gorm.DB) error {
		if parentID != nil {
			if err := parentCategoryExist(tx, *parentID); err != nil {
				return err
			}
			if err := categoryCycleCheck(tx, c.ID, *parentID); err != nil {
				return err
			}
		}
		if err := tx.Model(c).Update("parent_id", parentID).Error; err != nil {
			return fmt.Errorf("移动分类失败: %w", wrapDBErr(err))
		}
		return nil
	})
}

// Update 更新分类
func (c *CategoryModel) Update(updates map[string]interface{}) error {
	delete(updates, "parent_id") // 移动走 SetParent，带环检测
	return wrapDBErr(global.DB.Model(c).Updates(updates).Error)
}

// Delete 删除分类，引用它的文章category_id置空，子分类parent_id置空
func (c *CategoryModel) Delete() error {
	return global.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(c)
		if result.Error != nil {
			return fmt.Errorf("删除分类失败: %w", wrapDBErr(result.Error))
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: 分类不存在", ErrNotFound)
		}
		return nil
	})
}

// CategoryList 获取全部分类
func CategoryList() ([]CategoryModel, error) {
	var list []CategoryModel
	err := global.DB.Order("name ASC").Find(&list).Error
	return list, err
}

// parentCategoryExist 检查父分类是否存在
func parentCategoryExist(tx *gorm.DB, parentID uint) error {
	var count int64
	if err := tx.Model(&CategoryModel{}).Where("id = ?", parentID).Count(&count).Error; err != nil {
		return fmt.Errorf("检查父分类失败: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: 父分类不存在", ErrNotFound)
	}
	return nil
}

// categoryCycleCheck 沿父链上溯，发现自身则拒绝
func categoryCycleCheck(tx *gorm.DB, id uint, parentID uint) error {
	cur := parentID
	for cur != 0 {
		if cur == id {
			return fmt.Errorf("%w: 分类不能成为自己的子孙", ErrInvalidState)
		}
		var parent CategoryModel
		if err := tx.Select("parent_id").Take(&parent, cur).Error; err != nil {
			return wrapDBErr(err)
		}
		if parent.ParentID == nil {
			break
		}
		cur = *parent.ParentID
	}
	return nil
}
