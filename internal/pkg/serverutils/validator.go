package serverutils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation on a request DTO. The raw
// validator.ValidationErrors is returned so the error handler can map it
// to a 400 with field details.
func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}
