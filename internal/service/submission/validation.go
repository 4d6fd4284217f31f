package submission

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// fieldMessages 字段校验失败时返回给用户的提示
var fieldMessages = map[string]string{
	"Name":            "Tool name must be at least 2 characters.",
	"Description":     "Description must be at least 10 characters.",
	"LongDescription": "Long description must be at least 50 characters.",
	"Category":        "Select at least one category.",
	"Industries":      "Select at least one industry.",
	"Website":         "Please enter a valid URL.",
	"Type":            "Select a pricing type.",
	"TermsAccepted":   "You must accept the terms and conditions.",
}

// ValidationMessage 返回第一条校验错误的提示
// 非校验错误返回 err.Error()
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := fieldMessages[verrs[0].StructField()]; ok {
			return msg
		}
		return verrs[0].Error()
	}
	if errors.Is(err, ErrLogoRequired) {
		return "Please upload a logo for your tool"
	}
	return err.Error()
}
