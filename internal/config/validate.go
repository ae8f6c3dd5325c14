package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/heartmarshall/myenglish-scheduler/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks struct rules and the domain ranges, then resolves Location.
// It must be called after loading; Load calls it automatically.
// Violations are returned as *domain.ConfigError.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}
		return err
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return domain.NewConfigError("timezone", err.Error())
	}
	c.Location = loc

	if err := c.SRS.Domain().Validate(); err != nil {
		return err
	}
	if err := c.AlarmDomain().Validate(); err != nil {
		return err
	}
	return c.RollupDomain().Validate()
}

func fieldError(fe validator.FieldError) *domain.ConfigError {
	// Namespace is "Config.<section>.<field>" in yaml names.
	_, field, _ := strings.Cut(fe.Namespace(), ".")

	msg := "fails " + fe.Tag()
	if p := fe.Param(); p != "" {
		msg += "=" + p
	}
	return domain.NewConfigError(field, fmt.Sprintf("%s (got %v)", msg, fe.Value()))
}
