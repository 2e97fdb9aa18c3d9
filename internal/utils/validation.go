package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationMsg 把字段校验错误翻译成可读文案
func ValidationMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "字段必填"
	case "len":
		return fmt.Sprintf("长度必须为%s", fe.Param())
	case "min":
		return fmt.Sprintf("不能小于%s", fe.Param())
	case "max":
		return fmt.Sprintf("不能大于%s", fe.Param())
	case "oneof":
		return fmt.Sprintf("取值必须是 %s 之一", fe.Param())
	case "gt":
		return fmt.Sprintf("必须大于%s", fe.Param())
	case "gte":
		return fmt.Sprintf("必须大于等于%s", fe.Param())
	default:
		return fmt.Sprintf("校验失败: %s", fe.Tag())
	}
}
