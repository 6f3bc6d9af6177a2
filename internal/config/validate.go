package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/mod/semver"

	"github.com/toyz/dualgen/internal/errors"
)

var qualifiedNamePattern = regexp.MustCompile(`^[\p{L}_$][\p{L}\p{N}_$]*(\.[\p{L}_$][\p{L}\p{N}_$]*)*$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// NewValidator returns a validator with the "semver" and "qualified" rules registered
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
		return IsValidVersion(fl.Field().String())
	})
	_ = v.RegisterValidation("qualified", func(fl validator.FieldLevel) bool {
		return qualifiedNamePattern.MatchString(fl.Field().String())
	})
	return v
}

func sharedValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = NewValidator()
	})
	return validate
}

// IsValidVersion accepts semantic versions with or without the leading "v"
func IsValidVersion(version string) bool {
	return semver.IsValid(CanonicalVersion(version))
}

// CanonicalVersion returns the version with a leading "v"
func CanonicalVersion(version string) string {
	if version == "" || strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

// Validate checks every field rule and the cross-field naming constraints
func (c *Config) Validate() error {
	if err := sharedValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			messages := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				messages = append(messages, describe(fe))
			}
			return errors.WithHint(
				errors.Newf("invalid configuration: %s", strings.Join(messages, "; ")),
				"marker and type names must be fully qualified, e.g. reactor.core.publisher.Mono",
			)
		}
		return errors.Wrap(err, "invalid configuration")
	}

	if c.Naming.DirectToken == c.Naming.AsyncToken {
		return errors.Newf("invalid configuration: naming.direct_token and naming.async_token are both %q", c.Naming.DirectToken)
	}
	for _, alias := range c.Naming.AsyncAliases {
		if alias == c.Naming.DirectToken {
			return errors.Newf("invalid configuration: async alias %q equals naming.direct_token", alias)
		}
	}
	if c.Types.AsyncSingle == c.Types.AsyncMulti {
		return errors.Newf("invalid configuration: types.async_single and types.async_multi are both %q", c.Types.AsyncSingle)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(strings.TrimPrefix(fe.Namespace(), "Config."))
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "semver":
		return fmt.Sprintf("%s %q is not a semantic version", field, fe.Value())
	case "qualified":
		return fmt.Sprintf("%s %q is not a qualified name", field, fe.Value())
	case "min":
		return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
