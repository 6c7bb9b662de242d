package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Ravenhammer-Research/freebsdnet/internal/errors"
	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
)

var validate = validator.New()

// Validate checks the whole configuration and returns a VALIDATION_ERROR
// describing every problem found.
func (c *Config) Validate() error {
	var problems []string

	if c.General != nil {
		if err := validate.Struct(c.General); err != nil {
			problems = append(problems, describeFieldErrors("general", err)...)
		}
	}

	for i, r := range c.Routes {
		prefix := fmt.Sprintf("route[%d]", i)
		if r == nil {
			problems = append(problems, prefix+": empty route block")
			continue
		}
		if err := validate.Struct(r); err != nil {
			problems = append(problems, describeFieldErrors(prefix, err)...)
			continue
		}

		dest, err := netaddr.ParseCIDR(r.Destination)
		if err != nil {
			problems = append(problems, fmt.Sprintf(
				"%s: destination %q is not a valid CIDR or IP", prefix, r.Destination))
			continue
		}
		gw, err := netaddr.ParseCIDR(r.Gateway)
		if err != nil {
			problems = append(problems, fmt.Sprintf(
				"%s: gateway %q is not a valid IP", prefix, r.Gateway))
			continue
		}
		if gw.Family() != dest.Family() {
			problems = append(problems, fmt.Sprintf(
				"%s: gateway %q does not match destination family %s", prefix, r.Gateway, dest.Family()))
		}
	}

	if len(problems) > 0 {
		return errors.NewValidationError(strings.Join(problems, "; "), nil)
	}
	return nil
}

// describeFieldErrors converts validator errors into readable messages.
func describeFieldErrors(prefix string, err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{fmt.Sprintf("%s: %v", prefix, err)}
	}
	var out []string
	for _, e := range verrs {
		out = append(out, fmt.Sprintf("%s.%s: %s", prefix, strings.ToLower(e.Field()), validationMessage(e)))
	}
	return out
}

// validationMessage returns a human-readable message for a validation error.
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "field is required"
	case "gte":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "ip":
		return "must be a valid IP address"
	case "hostname_port":
		return "must be in format 'host:port'"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}
