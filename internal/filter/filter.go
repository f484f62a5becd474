// Package filter reduces an env mapping according to whitelist, exclude,
// and prefix specifications.
package filter

import (
	"fmt"
	"strings"

	"github.com/bimmerbailey/envform/internal/dotenv"
)

// Config holds the three independent filter specifications.
//
// A nil Whitelist or Exclude means the filter is absent; a non-nil empty
// slice means the caller explicitly passed an empty collection, which
// Validate rejects.
type Config struct {
	Whitelist []string
	Exclude   []string
	Prefix    string
}

// ValidationError reports every problem found in a Config at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Validate checks the shape of a Config before any filtering runs.
func Validate(cfg Config) error {
	var problems []string

	if cfg.Whitelist != nil && len(cfg.Whitelist) == 0 {
		problems = append(problems, "whitelist must not be an empty list")
	}
	if cfg.Exclude != nil && len(cfg.Exclude) == 0 {
		problems = append(problems, "exclude must not be an empty list")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Warnings returns advisory notices for option combinations that are legal
// but probably not what the caller meant. They never abort a conversion.
func Warnings(cfg Config) []string {
	var warnings []string
	if len(cfg.Whitelist) > 0 && cfg.Prefix != "" {
		warnings = append(warnings,
			fmt.Sprintf("both --whitelist and --prefix given; whitelist takes precedence and the prefix %q is ignored", cfg.Prefix))
	}
	return warnings
}

// Apply runs the filter stages in their fixed order: prefix, then whitelist,
// then exclude.
//
// The whitelist stage recomputes from the original mapping, so a whitelist
// discards the prefix stage's result outright. The prefix stage still runs
// even when it will be discarded; the composition is a staged pipeline, not
// a short-circuit. Exclude applies last and can remove whitelisted keys.
func Apply(env *dotenv.Map, cfg Config) *dotenv.Map {
	result := env

	if cfg.Prefix != "" {
		result = keepPrefixed(result, cfg.Prefix)
	}
	if len(cfg.Whitelist) > 0 {
		result = keepKeys(env, cfg.Whitelist)
	}
	if len(cfg.Exclude) > 0 {
		result = dropKeys(result, cfg.Exclude)
	}

	return result
}

func keepPrefixed(env *dotenv.Map, prefix string) *dotenv.Map {
	out := dotenv.NewMap()
	for pair := env.Oldest(); pair != nil; pair = pair.Next() {
		if strings.HasPrefix(pair.Key, prefix) {
			out.Set(pair.Key, pair.Value)
		}
	}
	return out
}

func keepKeys(env *dotenv.Map, keys []string) *dotenv.Map {
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}

	out := dotenv.NewMap()
	for pair := env.Oldest(); pair != nil; pair = pair.Next() {
		if wanted[pair.Key] {
			out.Set(pair.Key, pair.Value)
		}
	}
	return out
}

func dropKeys(env *dotenv.Map, keys []string) *dotenv.Map {
	banned := make(map[string]bool, len(keys))
	for _, k := range keys {
		banned[k] = true
	}

	out := dotenv.NewMap()
	for pair := env.Oldest(); pair != nil; pair = pair.Next() {
		if !banned[pair.Key] {
			out.Set(pair.Key, pair.Value)
		}
	}
	return out
}
