package models

import (
	"fmt"

	"blog/global"
	"blog/utils"

	"gorm.io/gorm"
)

// MenuModel 导航菜单，(name, location)唯一
type MenuModel struct {
	MODEL    `json:","`
	Name     string `json:"name" gorm:"size:50;not null;uniqueIndex:idx_menu_name_location" validate:"required,max=50"`
	Location string `json:"location" gorm:"size:50;not null;uniqueIndex:idx_menu_name_location" validate:"required,max=50"`

	// 关联
	Items []*MenuItemModel `json:"items,omitempty" gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (MenuModel) TableName() string {
	return "menus"
}

// MenuItemModel 菜单项，parent_id 构成树
// 菜单被删除时级联删除；所链接的文章或分类被删除时菜单项一并删除；父项删除时子树删除
type MenuItemModel struct {
	MODEL      `json:","`
	MenuID     uint   `json:"menu_id" gorm:"not null;index"`
	ParentID   *uint  `json:"parent_id" gorm:"index"`
	Title      string `json:"title" gorm:"size:100;not null" validate:"required,max=100"`
	URL        string `json:"url" gorm:"size:255"` // 外链时使用，链接文章/分类时留空
	PostID     *uint  `json:"post_id" gorm:"index"`
	CategoryID *uint  `json:"category_id" gorm:"index"`
	SortOrder  int    `json:"sort_order" gorm:"not null;default:0"`

	// 关联
	Menu     MenuModel        `json:"menu,omitempty" gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE"`
	Parent   *MenuItemModel   `json:"parent,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Children []*MenuItemModel `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Post     *PostModel       `json:"post,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	Category *CategoryModel   `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// TableName 指定表名
func (MenuItemModel) TableName() string {
	return "menu_items"
}

// Create 创建菜单
func (m *MenuModel) Create() error {
	if err := utils.Validate(m); err != nil {
		return fmt.Errorf("输入验证失败: %w", err)
	}
	if err := global.DB.Create(m).Error; err != nil {
		return fmt.Errorf("创建菜单失败: %w", wrapDBErr(err))
	}
	return nil
}

// FindByLocation 按位置查找菜单
func (m *MenuModel) FindByLocation(location string) error {
	return wrapDBErr(global.DB.Where("location = ?", location).Take(m).Error)
}

// Delete 删除菜单，菜单项由外键级联删除
func (m *MenuModel) Delete() error {
	return global.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(m)
		if result.Error != nil {
			return fmt.Errorf("删除菜单失败: %w", wrapDBErr(result.Error))
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: 菜单不存在", ErrNotFound)
		}
		return nil
	})
}

// Create 创建菜单项，父项必须属于同一菜单
func (i *MenuItemModel) Create() error {
	if err := utils.Validate(i); err != nil {
		return fmt.Errorf("输入验证失败: %w", err)
	}

	return global.DB.Transaction(func(tx *gorm.DB) error {
		if i.ParentID != nil {
			var parent MenuItemModel
			if err := tx.Take(&parent, *i.ParentID).Error; err != nil {
				return fmt.Errorf("%w: 父菜单项不存在", ErrNotFound)
			}
			if parent.MenuID != i.MenuID {
				return fmt.Errorf("%w: 父菜单项属于其他菜单", ErrInvalidState)
			}
		}
		if err := tx.Create(i).Error; err != nil {
			return fmt.Errorf("创建菜单项失败: %w", wrapDBErr(err))
		}
		return nil
	})
}

// Delete 删除菜单项，子树由外键级联删除
func (i *MenuItemModel) Delete() error {
	result := global.DB.Delete(i)
	if result.Error != nil {
		return fmt.Errorf("删除菜单项失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: 菜单项不存在", ErrNotFound)
	}
	return nil
}

// MenuItemsTree 按菜单取出菜单项并构建树
func MenuItemsTree(menuID uint) ([]*MenuItemModel, error) {
	var items []*MenuItemModel
	if err := global.DB.Where("menu_id = ?", menuID).
		Order("sort_order ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("获取菜单项失败: %w", err)
	}

	itemMap := make(map[uint]*MenuItemModel)
	var roots []*MenuItemModel
	for _, item := range items {
		itemMap[item.ID] = item
	}
	for _, item := range items {
		if item.ParentID == nil {
			roots = append(roots, item)
		} else if parent, exists := itemMap[*item.ParentID]; exists {
			parent.Children = append(parent.Children, item)
		}
	}
	return roots, nil
}
