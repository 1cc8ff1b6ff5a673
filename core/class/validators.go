package class

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/classforge/classforge/core"
)

var (
	departmentTag  = "department"
	departmentText = "must be one of the supported departments"
)

// InitValidators registers the class validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(departmentTag, departmentValidation)
	core.RegisterCustomTranslation(validate, translator, departmentTag, departmentText)
}

// departmentValidation only allows values from the closed department set.
func departmentValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, dept := range Departments {
		if string(dept) == val {
			return true
		}
	}
	return false
}
