// Package validation runs struct-tag schema checks and renders the failures
// as per-field messages for action envelopes.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field name (as it appears in the request body) to its messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msgs := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add appends a message to a field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

var labels = map[string]string{
	"imageUrl":          "Image URL",
	"avatarUrl":         "Avatar URL",
	"userId":            "User ID",
	"designId":          "Design ID",
	"submittedByUserId": "Submitter",
	"currentPassword":   "Current password",
	"newPassword":       "New password",
	"confirmPassword":   "Password confirmation",
}

// Validator wraps go-playground/validator with json field naming.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator that reports fields by their json names
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("finite", isFinite)
	return &Validator{validate: v}
}

// isFinite rejects NaN and the infinities, which cannot be written as JSON.
func isFinite(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return true
}

// Struct validates s and returns FieldErrors when any rule fails.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := FieldErrors{}
	for _, fe := range verrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		msg := message(fe, field)
		if !contains(out[field], msg) {
			out.Add(field, msg)
		}
	}
	return out
}

// Check validates s and returns the per-field messages, or nil when valid.
func (v *Validator) Check(s interface{}) (FieldErrors, error) {
	err := v.Struct(s)
	if err == nil {
		return nil, nil
	}
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, nil
	}
	return nil, err
}

func message(fe validator.FieldError, field string) string {
	label := Label(field)

	switch fe.Tag() {
	case "required":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Please add at least one %s.", strings.TrimSuffix(strings.ToLower(label), "s"))
		}
		return fmt.Sprintf("%s is required.", label)
	case "email":
		return "Invalid email address."
	case "url":
		return "Please enter a valid URL."
	case "finite":
		return fmt.Sprintf("%s must be a number.", label)
	case "eqfield":
		if field == "confirmPassword" {
			return "Passwords do not match."
		}
		return fmt.Sprintf("%s must match %s.", label, Label(fe.Param()))
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		case reflect.Slice:
			return fmt.Sprintf("Please add at least %s %s.", fe.Param(), strings.ToLower(label))
		default:
			return fmt.Sprintf("%s must be %s or greater.", label, fe.Param())
		}
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be %s or less.", label, fe.Param())
	}
	return fmt.Sprintf("%s is invalid.", label)
}

// Label turns a json field name into a human readable label.
func Label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
