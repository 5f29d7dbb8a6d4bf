package utils

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate 校验结构体，校验失败时返回面向用户的错误信息
func Validate(i interface{}) error {
	err := validate.Struct(i)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return errors.New(FormatValidationError(errs))
	}
	return err
}

func FormatValidationError(errs validator.ValidationErrors) string {
	// 定义错误信息映射
	msgMap := map[string]string{
		"required": "不能为空",
		"min":      "长度不能小于%v",
		"max":      "长度不能大于%v",
		"email":    "必须是有效的邮箱地址",
		"url":      "必须是有效的网址",
		"oneof":    "必须是[%v]中的一个",
		"gt":       "必须大于%v",
		"gte":      "必须大于等于%v",
		"ip":       "必须是有效的IP地址",
	}

	// 字段名称映射
	fieldMap := map[string]string{
		"Username": "用户名",
		"Email":    "邮箱",
		"Password": "密码",
		"Title":    "标题",
		"Slug":     "别名",
		"Content":  "内容",
		"Name":     "名称",
		"Status":   "状态",
		"Role":     "角色",
	}

	// 只返回第一个错误
	firstErr := errs[0]

	fieldName := fieldMap[firstErr.Field()]
	if fieldName == "" {
		fieldName = firstErr.Field()
	}

	msgTemplate := msgMap[firstErr.Tag()]
	if msgTemplate == "" {
		msgTemplate = "验证失败"
	}

	if firstErr.Param() != "" {
		return fieldName + fmt.Sprintf(msgTemplate, firstErr.Param())
	}

	return fieldName + msgTemplate
}
