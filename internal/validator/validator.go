// Package validator provides custom validation functions for Gin's binding
// engine and for service-level struct validation.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"cashflow/internal/models"
)

var customValidations = map[string]validator.Func{
	"direction":     validateDirection,
	"frequency":     validateFrequency,
	"end_condition": validateEndCondition,
	"notblank":      validateNotBlank,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerAll(v)
	}
}

func registerAll(v *validator.Validate) {
	for tag, fn := range customValidations {
		_ = v.RegisterValidation(tag, fn)
	}
}

var (
	instance *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(jsonName)
		registerAll(instance)
	})
	return instance
}

// jsonName reports fields by their JSON key so messages match request bodies.
func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// ValidateStruct validates s against its validate tags. The returned error
// message names every failing field in readable form.
func ValidateStruct(s interface{}) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, FieldErrorText(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// FieldErrorText renders one validation failure.
func FieldErrorText(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s cannot be longer than %s", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "direction":
		return fmt.Sprintf("%s must be income or expense", field)
	case "frequency":
		return fmt.Sprintf("%s must be daily, weekly, monthly or yearly", field)
	case "end_condition":
		return fmt.Sprintf("%s must be never, afterOccurrences or onDate", field)
	}
	return fmt.Sprintf("%s is not valid", field)
}

func validateDirection(fl validator.FieldLevel) bool {
	return models.Direction(fl.Field().String()).Valid()
}

func validateFrequency(fl validator.FieldLevel) bool {
	return models.Frequency(fl.Field().String()).Valid()
}

func validateEndCondition(fl validator.FieldLevel) bool {
	return models.EndCondition(fl.Field().String()).Valid()
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
