package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce    sync.Once
	structValidator *validator.Validate
)

func configValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		// Report fields by their TOML key.
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("toml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		structValidator = v
	})
	return structValidator
}

// FieldError describes one invalid configuration value.
type FieldError struct {
	Field   string
	Value   any
	Allowed string
}

func (e FieldError) Error() string {
	if e.Allowed != "" {
		return fmt.Sprintf("%s: invalid value %q (allowed: %s)", e.Field, fmt.Sprint(e.Value), e.Allowed)
	}
	return fmt.Sprintf("%s: invalid value %q", e.Field, fmt.Sprint(e.Value))
}

// ValidationErrors lists every invalid value found in a Config.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	err := configValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		e := FieldError{Field: fe.Field(), Value: fe.Value()}
		if fe.Tag() == "oneof" {
			e.Allowed = strings.ReplaceAll(fe.Param(), " ", ", ")
		}
		out = append(out, e)
	}
	return out
}
