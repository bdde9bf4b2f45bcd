package router

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/clinicboard/allotment-api/internal/timeutil"
)

// registerValidators installs custom binding rules. "clocktext" accepts
// any clock value timeutil can read, matching what the engine tolerates.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("clocktext", func(fl validator.FieldLevel) bool {
		_, ok := timeutil.ToMinutes(fl.Field().String())
		return ok
	})
}
