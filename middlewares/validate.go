package middlewares

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"wrenchking-billing/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(invoiceDraftRules, models.Invoice{})
	return v
}

// invoiceDraftRules covers the save-time rules field tags cannot express:
// the client block must carry a name even though normalization leaves it
// blank. Validation errors stay local; a failing draft never reaches the
// remote store.
func invoiceDraftRules(sl validator.StructLevel) {
	inv := sl.Current().Interface().(models.Invoice)
	if strings.TrimSpace(inv.To.Name) == "" {
		sl.ReportError(inv.To.Name, "To.Name", "Name", "required", "")
	}
}

// ValidateStruct validates any struct value using the shared validator instance.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
