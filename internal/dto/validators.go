package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var cnpjPattern = regexp.MustCompile(`^\d{14}$`)

// validCNPJ checks the normalized 14-digit CNPJ form. Formatting (dots,
// slashes, dashes) must be stripped by the client.
func validCNPJ(fl validator.FieldLevel) bool {
	return cnpjPattern.MatchString(fl.Field().String())
}

// RegisterCustomValidators installs the platform's custom binding validators
// on gin's validator engine. Called once at startup.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("cnpj", validCNPJ)
	}
}
