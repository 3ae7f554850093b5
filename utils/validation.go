package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is the singleton validator instance
	validate *validator.Validate
)

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("number", isNumber); err != nil {
		panic(fmt.Sprintf("utils: registering number validation: %v", err))
	}
}

// isNumber accepts anything that parses as a finite float: "42", "-0",
// "1e3", ".5", "5.". It replaces the built-in digits-only "number" tag.
func isNumber(fl validator.FieldLevel) bool {
	v, err := strconv.ParseFloat(fl.Field().String(), 64)
	if err != nil {
		return false
	}
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParamRule describes one path parameter: how it is validated and how it is
// documented.
type ParamRule struct {
	Name        string
	Type        string // documentation type: string, number, integer, boolean
	Rules       string // go-playground/validator tag, e.g. "required,number"
	Description string
}

// Required reports whether the rule tag contains "required".
func (p ParamRule) Required() bool {
	for _, tag := range strings.Split(p.Rules, ",") {
		if tag == "required" {
			return true
		}
	}
	return false
}

// ValidateParams validates each rule against the matching entry in params.
// All failing parameters are reported together in a single ValidationError.
func ValidateParams(params map[string]string, rules []ParamRule) error {
	fields := make(map[string]string)
	for _, rule := range rules {
		if rule.Rules == "" {
			continue
		}
		err := validate.Var(params[rule.Name], rule.Rules)
		if err == nil {
			continue
		}
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("validating %s: %w", rule.Name, err)
		}
		for _, fe := range validationErrors {
			fields[rule.Name] = messageFor(rule.Name, fe.Tag(), fe.Param())
			break
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{
		Message: "Invalid request params input",
		Fields:  fields,
	}
}

// ValidationError wraps validation errors with structured details
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Details returns the field messages in the shape error bodies carry.
func (e *ValidationError) Details() map[string]interface{} {
	details := make(map[string]interface{}, len(e.Fields))
	for k, v := range e.Fields {
		details[k] = v
	}
	return details
}

func messageFor(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "number", "numeric":
		return fmt.Sprintf("%s must be a number", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	default:
		return fmt.Sprintf("%s validation failed on '%s' tag", field, tag)
	}
}
