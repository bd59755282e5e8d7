package validation

import (
	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. validator.Validate caches
// struct metadata, so a single instance is reused process-wide.
var validate = validator.New()

// Struct validates a struct against its validate tags.
func Struct(obj interface{}) error {
	return validate.Struct(obj)
}
