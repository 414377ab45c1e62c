package sdui

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the validator used by Validate.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks the value constraints of every component in the scene
// (non-negative line limits, corner radii and stroke widths, positive font
// sizes). Decode accepts documents that break them and the renderer clamps
// the values; Validate is for authoring tools. Nested views are checked
// individually so the error names the offending coding path.
func Validate(s *Scene) error {
	if s == nil || s.Container == nil {
		return sduierrors.NewValidationError("container", "scene has no container", sduierrors.ErrMissingField)
	}
	if err := validateComponent(s.Container, "container"); err != nil {
		return err
	}
	var walkErr error
	Walk(s.Container, "container", func(v View, path string) bool {
		if v.Component == nil {
			return true
		}
		if err := validateComponent(v.Component, path+".component"); err != nil {
			walkErr = err
			return false
		}
		return true
	})
	return walkErr
}

func validateComponent(c Component, path string) error {
	return convertValidationError(validatorInstance().Struct(c), path)
}

// convertValidationError normalizes validator errors into validation errors
// whose field is the coding path of the offending value.
func convertValidationError(err error, path string) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		fe := ves[0]
		field := join(path, fieldPath(fe))
		msg := fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
		return sduierrors.NewValidationError(field, msg, err)
	}

	return sduierrors.NewValidationError(path, err.Error(), err)
}

// fieldPath drops the root type name and embedded struct names from the namespace.
func fieldPath(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 0 {
		parts = parts[1:]
	}
	kept := parts[:0]
	for _, part := range parts {
		if part == "Style" {
			continue
		}
		kept = append(kept, part)
	}
	return strings.Join(kept, ".")
}
