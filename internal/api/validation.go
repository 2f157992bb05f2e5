package api

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/youruser/creativestudio/internal/placement"
)

// Currencies offered by the currency selector.
var Currencies = []string{"£", "€", "$"}

func validPlatform(fl validator.FieldLevel) bool {
	_, ok := placement.Lookup(fl.Field().String())
	return ok
}

func validCurrency(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	for _, c := range Currencies {
		if v == c {
			return true
		}
	}
	return false
}

// registerValidators adds the "platform" and "currency" tags to gin's
// validator. Safe to call more than once.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("platform", validPlatform)
	_ = v.RegisterValidation("currency", validCurrency)
}
