package config

import (
	"errors"
	"strings"
)

// Environment selects the downstream deployment a batch is sent to.
type Environment string

const (
	EnvironmentProduction  Environment = "production"
	EnvironmentDevelopment Environment = "development"
	EnvironmentLocalhost   Environment = "localhost"
)

// defaultCountry is served by the unsuffixed production host.
const defaultCountry = "co"

// ErrInvalidEnvironment is returned for any value outside the known environments.
var ErrInvalidEnvironment = errors.New("invalid environment")

// ParseEnvironment validates a raw environment name. Matching is exact.
func ParseEnvironment(value string) (Environment, error) {
	switch env := Environment(value); env {
	case EnvironmentProduction, EnvironmentDevelopment, EnvironmentLocalhost:
		return env, nil
	default:
		return "", ErrInvalidEnvironment
	}
}

// CountryFor derives the country value substituted into the endpoint template.
// Production maps a country code to its host suffix ("" for Colombia, "-mx" for
// Mexico); the other environments always use their own name.
func (e Environment) CountryFor(code string) string {
	if e != EnvironmentProduction {
		return string(e)
	}
	code = strings.ToLower(strings.TrimSpace(code))
	if code == defaultCountry {
		return ""
	}
	return "-" + code
}

// ResolveURL substitutes the country suffix into an endpoint template.
func ResolveURL(template, country string) string {
	return strings.Replace(template, CountryPlaceholder, country, 1)
}
