package models

import (
	"errors"
	"fmt"
	"time"

	"blog/global"
	"blog/models/ctypes"
	"blog/utils"

	"gorm.io/gorm"
)

// UserModel 用户模型
// 删除用户时级联删除其文章/媒体/会话，评论只清空作者引用（见各子表的外键策略）
type UserModel struct {
	MODEL                `json:","`
	Username             string          `json:"username" gorm:"size:50;not null;uniqueIndex" validate:"required,min=3,max=50"`
	Email                string          `json:"email" gorm:"size:100;not null;uniqueIndex" validate:"required,email"`
	Password             string          `json:"-" gorm:"size:100;not null" validate:"required,min=6"`
	Nickname             string          `json:"nickname" gorm:"size:50"`
	Avatar               string          `json:"avatar" gorm:"size:255"`
	Bio                  string          `json:"bio" gorm:"type:text"`
	Role                 ctypes.UserRole `json:"role" gorm:"size:20;not null;default:subscriber" validate:"required,oneof=admin editor author subscriber"`
	IsActive             bool            `json:"is_active" gorm:"not null;default:true"`
	VerificationToken    string          `json:"-" gorm:"size:100"`
	ResetPasswordToken   string          `json:"-" gorm:"size:100"`
	ResetPasswordExpires *time.Time      `json:"-"`
	LastLoginAt          *time.Time      `json:"last_login_at"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// Create 创建用户
func (u *UserModel) Create() error {
	// 验证用户输入
	if err := utils.Validate(u); err != nil {
		return fmt.Errorf("输入验证失败: %w", err)
	}

	return global.DB.Transaction(func(tx *gorm.DB) error {
		// 检查用户是否存在
		if err := u.checkExist(tx); err != nil {
			return err
		}

		// 密码加密
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("密码处理失败: %w", err)
		}
		u.Password = hashedPassword

		// 邮箱验证令牌
		if u.VerificationToken == "" {
			token, err := utils.GenToken(16)
			if err != nil {
				return err
			}
			u.VerificationToken = token
		}

		// 创建用户
		if err := tx.Create(u).Error; err != nil {
			return fmt.Errorf("创建用户失败: %w", wrapDBErr(err))
		}

		return nil
	})
}

// checkExist 检查用户名或邮箱是否已被占用
func (u *UserModel) checkExist(tx *gorm.DB) error {
	var count int64
	err := tx.Model(&UserModel{}).
		Where("username = ? OR email = ?", u.Username, u.Email).
		Count(&count).
		Error
	if err != nil {
		return fmt.Errorf("检查用户存在性失败: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: 用户名或邮箱已存在", ErrConstraintViolation)
	}
	return nil
}

// FindByID 根据ID查找用户
func (u *UserModel) FindByID(id uint) error {
	return wrapDBErr(global.DB.Take(u, id).Error)
}

// FindByUsername 根据用户名查找用户
func (u *UserModel) FindByUsername(username string) error {
	return wrapDBErr(global.DB.Where("username = ?", username).Take(u).Error)
}

// FindByEmail 根据邮箱查找用户
func (u *UserModel) FindByEmail(email string) error {
	return wrapDBErr(global.DB.Where("email = ?", email).Take(u).Error)
}

// UpdatePassword 更新用户密码
func (u *UserModel) UpdatePassword(newPassword string) error {
	if len(newPassword) < 6 {
		return fmt.Errorf("%w: 密码长度不能小于6", ErrInvalidState)
	}
	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("密码处理失败: %w", err)
	}

	return global.DB.Model(u).Updates(map[string]interface{}{
		"password":             hashedPassword,
		"reset_password_token": "",
	}).Error
}

// UpdateProfile 更新用户信息
func (u *UserModel) UpdateProfile(updates map[string]interface{}) error {
	// 过滤敏感字段
	sensitiveFields := []string{"password", "username", "email", "role", "verification_token", "reset_password_token"}
	for _, field := range sensitiveFields {
		delete(updates, field)
	}

	return global.DB.Model(u).Updates(updates).Error
}

// SetActive 启用/停用账号，停用是软禁用，不触发任何级联
func (u *UserModel) SetActive(active bool) error {
	return global.DB.Model(u).Update("is_active", active).Error
}

// RecordLogin 记录登录时间
func (u *UserModel) RecordLogin() error {
	now := time.Now()
	return global.DB.Model(u).Update("last_login_at", &now).Error
}

// Delete 删除用户，文章/媒体/会话由外键级联删除，评论作者引用被置空
func (u *UserModel) Delete() error {
	return global.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(u)
		if result.Error != nil {
			return fmt.Errorf("删除用户失败: %w", wrapDBErr(result.Error))
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: 用户不存在", ErrNotFound)
		}
		return nil
	})
}

// ValidatePassword 验证密码
func (u *UserModel) ValidatePassword(password string) bool {
	return utils.CheckPassword(u.Password, password)
}

// IsAdmin 检查是否为管理员
func (u *UserModel) IsAdmin() bool {
	return u.Role == ctypes.RoleAdmin
}

// UserVerify 按令牌完成邮箱验证
func UserVerify(token string) error {
	if token == "" {
		return fmt.Errorf("%w: 验证令牌不能为空", ErrInvalidState)
	}
	var user UserModel
	if err := global.DB.Where("verification_token = ?", token).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 验证令牌无效", ErrNotFound)
		}
		return err
	}
	return global.DB.Model(&user).Update("verification_token", "").Error
}

// GetTotalUsers 获取用户总数
func GetTotalUsers() (int64, error) {
	var count int64
	err := global.DB.Model(&UserModel{}).Count(&count).Error
	return count, err
}
