package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const valueField = "value"

var templates = map[string]string{
	"required":  "{field} is required",
	"gte":       "{field} must be greater than or equal to {param}",
	"lte":       "{field} must be less than or equal to {param}",
	"gt":        "{field} must be greater than {param}",
	"oneof":     "{field} must be one of {param}",
	"max":       "{field} must be at most {param}",
	"min":       "{field} must be at least {param}",
	"len":       "{field} must be exactly {param} long",
	"email":     "{field} must be a valid email address",
	"uuid":      "{field} must be a valid identifier",
	"day":       "{field} must be a date formatted as YYYY-MM-DD",
	"clock":     "{field} must be a time formatted as HH:MM",
	"phone":     "{field} must be a valid phone number",
	"dive":      "{field} has an invalid item",
	"omitempty": "{field} is invalid",
}

// message renders every failed rule, one clause per field, in declaration
// order.
func message(err error) string {
	var fieldErrors val.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err.Error()
	}

	clauses := make([]string, 0, len(fieldErrors))

	for _, fieldErr := range fieldErrors {
		clauses = append(clauses, describe(fieldErr))
	}

	return strings.Join(clauses, "; ")
}

func describe(fieldErr val.FieldError) string {
	field := fieldErr.Field()
	if field == "" {
		field = valueField
	}

	template, ok := templates[fieldErr.Tag()]
	if !ok {
		return field + " failed the " + fieldErr.Tag() + " rule"
	}

	return strings.NewReplacer("{field}", field, "{param}", fieldErr.Param()).Replace(template)
}
