package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"regexp"
	"strings"
	"time"

	val "github.com/go-playground/validator/v10"

	"bookit/shared/constant"
	"bookit/shared/failure"
	"bookit/shared/slot"
)

var (
	validate *val.Validate

	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,19}$`)

	errEmptyBody = failure.BadRequestFromString("request body is required")
)

var rules = map[string]val.Func{
	"day": func(field val.FieldLevel) bool {
		_, err := time.Parse(constant.DayLayout, field.Field().String())

		return err == nil
	},
	"clock": func(field val.FieldLevel) bool {
		_, err := slot.ParseClock(field.Field().String())

		return err == nil
	},
	"phone": func(field val.FieldLevel) bool {
		return phonePattern.MatchString(field.Field().String())
	},
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	for tag, rule := range rules {
		if err := validate.RegisterValidation(tag, rule); err != nil {
			panic(err)
		}
	}
}

// jsonName reports fields by the name clients send them under.
func jsonName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")

	switch name {
	case "-":
		return constant.Empty
	case constant.Empty:
		return field.Name
	default:
		return name
	}
}

// Validate decodes one JSON document from r into data and validates it.
// Decoding and validation failures both come back as 400 failures.
func Validate[T any](r io.Reader, data *T) error {
	if err := json.NewDecoder(r).Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}

		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	if err := validate.Struct(data); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	if err := validate.Var(field, tag); err != nil {
		return failure.BadRequestFromString(message(err)) //nolint:wrapcheck
	}

	return nil
}
