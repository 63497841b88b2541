package validation

import (
	"fmt"
	"strings"
)

// Validator collects field validation errors.
type Validator struct {
	Errors map[string]string
	order  []string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
		v.order = append(v.order, field)
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// First returns the first recorded violation as a sentence, or "".
func (v *Validator) First() string {
	if len(v.order) == 0 {
		return ""
	}
	field := v.order[0]
	return fmt.Sprintf("%s %s", field, v.Errors[field])
}

// Required checks if a string is not empty
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// Email validates email format
func (v *Validator) Email(field, email string) {
	v.Check(emailRegex.MatchString(email), field, "must be a valid email address")
}

// Phone validates phone number format
func (v *Validator) Phone(field, phone string) {
	v.Check(phoneRegex.MatchString(phone), field, "must be a valid phone number")
}

// MinLength checks if a string has at least n characters
func (v *Validator) MinLength(field, value string, n int) {
	v.Check(len(value) >= n, field, fmt.Sprintf("must be at least %d characters long", n))
}

// Password validates password strength and length bounds.
func (v *Validator) Password(field, password string) {
	v.MinLength(field, password, MinPasswordLength)
	v.Check(len(password) <= MaxPasswordLength, field,
		fmt.Sprintf("must be at most %d characters long", MaxPasswordLength))
	v.Check(specialCharRegex.MatchString(password), field, "must contain at least one special character")
}
