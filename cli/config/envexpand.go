// Package config loads photodrop.yaml.
package config

import (
	"os"
	"regexp"
	"strings"
)

// envRef matches ${VAR} and ${VAR:-default}. Bare $VAR is left alone so
// header values and URLs containing '$' survive untouched.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// ExpandEnv substitutes environment references in input.
//
// ${VAR} becomes the variable's value, or "" when unset.
// ${VAR:-default} becomes default when VAR is unset or empty.
// An unset variable is not an error here; a required value left empty
// fails later validation instead.
func ExpandEnv(input string) string {
	matches := envRef.FindAllStringSubmatchIndex(input, -1)
	if matches == nil {
		return input
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		sb.WriteString(input[last:m[0]])
		name := input[m[2]:m[3]]
		value := os.Getenv(name)
		if value == "" && m[6] >= 0 {
			value = input[m[6]:m[7]]
		}
		sb.WriteString(value)
		last = m[1]
	}
	sb.WriteString(input[last:])
	return sb.String()
}
