// Package validation checks configuration and pipeline descriptions.
//
// Struct tags are validated with go-playground/validator; rules that
// depend on several fields are collected with a Validator.
//
//	type RangeSpec struct {
//	    Count int `yaml:"count" validate:"gte=0"`
//	}
//	err := validation.Validate(spec)
//
//	v := validation.New()
//	v.OneOf("op", stage.Op, ops)
//	if appErr := v.ValidateAs(errors.ErrCodeInvalidSpec); appErr != nil { ... }
package validation
