package routes

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// futureDate accepts YYYY-MM-DD strings strictly after today. Screening
// windows are never allowed to start in the past.
func futureDate(fl validator.FieldLevel) bool {
	parsed, err := time.Parse("2006-01-02", fl.Field().String())
	if err != nil {
		return false
	}
	today := time.Now().Truncate(24 * time.Hour)
	return parsed.After(today)
}

func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("futuredate", futureDate)
	}
}
