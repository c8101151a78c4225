package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FieldErrors maps each failing field to the validation tag it failed.
// Field names follow the JSON tag once the router registers a tag name func.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// Validation reports a request body that failed binding.
func Validation(c *gin.Context, err error) {
	var details any
	if fields := FieldErrors(err); len(fields) > 0 {
		details = map[string]any{"fields": fields}
	}
	Error(c, http.StatusBadRequest, "validation_error", "invalid request body", details)
}
