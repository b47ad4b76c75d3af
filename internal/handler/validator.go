package handler

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	looseEmailPattern = regexp.MustCompile(`(?i)^\S+@\S+$`)
	twMobilePattern   = regexp.MustCompile(`^09\d{8}$`)
)

// Validator adapts go-playground/validator to echo.Validator, with the
// checkout form rules registered.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return looseEmailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("tw_mobile", func(fl validator.FieldLevel) bool {
		return twMobilePattern.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

var ruleMessages = map[string]string{
	"required":    "這個欄位必填",
	"loose_email": "Email 格式不正確",
	"tw_mobile":   "手機格式不正確",
	"oneof":       "選項不正確",
}

// validationMessage lists every failing field as "field：reason".
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return msgInvalidForm
	}
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		text, ok := ruleMessages[fe.Tag()]
		if !ok {
			text = msgInvalidForm
		}
		parts = append(parts, fe.Field()+"："+text)
	}
	return strings.Join(parts, "、")
}
