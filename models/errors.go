package models

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 按id或自然键查不到记录
	ErrNotFound = errors.New("记录不存在")
	// ErrConstraintViolation 唯一键或外键约束被破坏，写入未发生
	ErrConstraintViolation = errors.New("约束冲突")
	// ErrInvalidState 模式之外的一致性规则被破坏，由应用层拦截
	ErrInvalidState = errors.New("状态无效")
)

// wrapDBErr 把gorm翻译后的数据库错误映射为本包的错误分类
// 完整性错误不做自动恢复，调用方决定重试还是拒绝
func wrapDBErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrConstraintViolation, err)
	}
	return err
}
