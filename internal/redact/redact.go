// Package redact masks sensitive values in an env mapping.
//
// Matching is a case-insensitive substring search over both the key and the
// value. Only values are replaced; keys stay intact so the output remains a
// usable template.
package redact

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bimmerbailey/envform/internal/dotenv"
)

// Sentinel replaces any value whose entry matched a redaction term.
const Sentinel = "***REDACTED***"

// Masker matches entries against a set of sensitive-term patterns.
type Masker struct {
	pattern *regexp.Regexp
}

// New builds a Masker from a list of terms. Terms are joined into a single
// case-insensitive alternation and are not regex-quoted, so metacharacters
// keep their regex meaning; a term that breaks the pattern is an error.
// An empty term list yields a Masker that matches nothing.
func New(terms []string) (*Masker, error) {
	if len(terms) == 0 {
		return &Masker{}, nil
	}

	pattern, err := regexp.Compile("(?i)" + strings.Join(terms, "|"))
	if err != nil {
		return nil, fmt.Errorf("invalid redaction term: %w", err)
	}
	return &Masker{pattern: pattern}, nil
}

// Mask returns a copy of env with every matching entry's value replaced by
// the sentinel. With no terms configured it returns env unchanged.
func (m *Masker) Mask(env *dotenv.Map) *dotenv.Map {
	if m.pattern == nil {
		return env
	}

	out := dotenv.NewMap()
	for pair := env.Oldest(); pair != nil; pair = pair.Next() {
		value := pair.Value
		if m.Matches(pair.Key, pair.Value) {
			value = Sentinel
		}
		out.Set(pair.Key, value)
	}
	return out
}

// Matches reports whether the key or value contains any redaction term.
func (m *Masker) Matches(key, value string) bool {
	if m.pattern == nil {
		return false
	}
	return m.pattern.MatchString(key) || m.pattern.MatchString(value)
}
