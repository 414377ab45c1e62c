package config

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	destinationKinds = map[string]struct{}{DestinationScene: {}, DestinationURL: {}, DestinationText: {}}
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation("log_level", func(fl validator.FieldLevel) bool {
			_, err := zerolog.ParseLevel(strings.ToLower(fl.Field().String()))
			return err == nil
		})

		_ = v.RegisterValidation("destination_kind", func(fl validator.FieldLevel) bool {
			_, ok := destinationKinds[fl.Field().String()]
			return ok
		})

		validateInst = v
	})

	return validateInst
}

// ValidateConfig performs schema and cross-field validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return sduierrors.NewValidationError("config", "configuration is nil", nil)
	}

	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]struct{}, len(cfg.Destinations))
	for i, d := range cfg.Destinations {
		if _, exists := seen[d.Key]; exists {
			return sduierrors.NewValidationError(fieldForDestination(i, "key"), fmt.Sprintf("duplicate destination key %q", d.Key), nil)
		}
		seen[d.Key] = struct{}{}

		switch d.Kind {
		case DestinationScene:
			if d.Path == "" {
				return sduierrors.NewValidationError(fieldForDestination(i, "path"), "scene destinations require a path", sduierrors.ErrMissingField)
			}
		case DestinationURL:
			if d.URL == "" {
				return sduierrors.NewValidationError(fieldForDestination(i, "url"), "url destinations require a url", sduierrors.ErrMissingField)
			}
		case DestinationText:
			if d.Text == "" {
				return sduierrors.NewValidationError(fieldForDestination(i, "text"), "text destinations require text", sduierrors.ErrMissingField)
			}
		}
	}

	return nil
}

// convertValidationError normalizes validator errors into validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := fieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return sduierrors.NewValidationError(field, msg, err)
	}

	return sduierrors.NewValidationError("config", err.Error(), err)
}

// fieldName drops the root struct name from the namespace.
func fieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func fieldForDestination(index int, field string) string {
	return fmt.Sprintf("destinations[%d].%s", index, field)
}
