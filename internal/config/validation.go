package config

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"git.home.luguber.info/inful/doctheme/internal/admonition"
	"git.home.luguber.info/inful/doctheme/internal/foundation/errors"
	"git.home.luguber.info/inful/doctheme/internal/highlight"
	"git.home.luguber.info/inful/doctheme/internal/theme"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator.
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
		_ = v.RegisterValidation("mode", func(fl validator.FieldLevel) bool {
			_, err := theme.ParseModeStrict(fl.Field().String())
			return err == nil
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks cfg field by field and then across fields. Failures are
// validation-category ClassifiedErrors naming the offending yaml path.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ValidationError("configuration is nil").Build()
	}
	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	styles := []struct{ field, name string }{
		{"highlight.light_style", cfg.Highlight.LightStyle},
		{"highlight.dark_style", cfg.Highlight.DarkStyle},
	}
	for _, s := range styles {
		field, style := s.field, s.name
		if _, err := highlight.NewPalette(style); err != nil {
			return errors.ValidationError(fmt.Sprintf("%s: unknown chroma style %q", field, style)).
				WithContext("field", field).Build()
		}
	}
	for kind := range cfg.Theme.AdmonitionLabels {
		if _, ok := admonition.Lookup(kind); !ok {
			return errors.ValidationError(fmt.Sprintf("theme.admonition_labels: unknown admonition kind %q", kind)).
				WithContext("field", "theme.admonition_labels").Build()
		}
	}
	return nil
}

func convertValidationError(err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return errors.WrapError(err, errors.CategoryValidation, msg).
			WithSeverity(errors.SeverityFatal).
			WithContext("field", field).Build()
	}
	return errors.WrapError(err, errors.CategoryValidation, "invalid configuration").Build()
}

// yamlFieldName drops the root struct name from the namespace, which the tag
// name func has already mapped to yaml keys.
func yamlFieldName(fe validator.FieldError) string {
	_, rest, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Namespace()
	}
	return rest
}
