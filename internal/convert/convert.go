// Package convert sequences the conversion pipeline: parse, filter, redact,
// serialize. All pipeline errors are folded into a Result descriptor so
// callers branch on a success flag instead of handling raised errors.
package convert

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bimmerbailey/envform/internal/config"
	"github.com/bimmerbailey/envform/internal/dotenv"
	"github.com/bimmerbailey/envform/internal/filter"
	"github.com/bimmerbailey/envform/internal/format"
	"github.com/bimmerbailey/envform/internal/output"
	"github.com/bimmerbailey/envform/internal/redact"
)

// Options configures a single conversion. Zero values mean "use the default":
// File defaults to .env and Format to json.
type Options struct {
	File            string
	Format          string
	Output          string
	Whitelist       []string
	Exclude         []string
	Prefix          string
	Redact          []string
	GenerateExample bool

	// Notices receives advisory warnings (input-file fallback,
	// whitelist+prefix). Nil discards them.
	Notices *output.Notifier
}

// Result describes the outcome of one conversion. Success=false implies
// Error is set; Success=true implies Data or Message (or both) are set.
type Result struct {
	Success bool   `json:"success"`
	Data    string `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

func failure(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

// Convert runs the full pipeline for the given options and never returns an
// error: every failure is reported through the Result.
func Convert(opts Options) Result {
	if opts.File == "" {
		opts.File = config.DefaultFile
	}
	if opts.Format == "" {
		opts.Format = config.DefaultFormat
	}
	notices := opts.Notices
	if notices == nil {
		notices = output.Discard()
	}

	filterCfg := filter.Config{
		Whitelist: nonEmpty(opts.Whitelist),
		Exclude:   nonEmpty(opts.Exclude),
		Prefix:    opts.Prefix,
	}
	if err := filter.Validate(filterCfg); err != nil {
		return failure(err)
	}
	for _, warning := range filter.Warnings(filterCfg) {
		notices.Warnf("%s", warning)
	}

	path, err := resolveInput(opts.File, notices)
	if err != nil {
		return failure(err)
	}

	env, err := dotenv.Load(path)
	if err != nil {
		return failure(fmt.Errorf("reading %s: %w", path, err))
	}

	if opts.GenerateExample {
		return writeExample(path, env)
	}

	env = filter.Apply(env, filterCfg)

	if len(opts.Redact) > 0 {
		masker, err := redact.New(opts.Redact)
		if err != nil {
			return failure(err)
		}
		env = masker.Mask(env)
	}

	f, err := format.Parse(opts.Format)
	if err != nil {
		return failure(err)
	}
	data, err := format.Render(env, f)
	if err != nil {
		return failure(err)
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(data), 0o644); err != nil {
			return failure(fmt.Errorf("writing %s: %w", opts.Output, err))
		}
		return Result{
			Success: true,
			Data:    data,
			Message: fmt.Sprintf("wrote %s output to %s", opts.Format, opts.Output),
		}
	}

	return Result{Success: true, Data: data}
}

// resolveInput locates the input file. A missing non-default path falls back
// to the default file when that exists, with an advisory notice; otherwise
// the originally requested path is reported as missing.
func resolveInput(requested string, notices *output.Notifier) (string, error) {
	if fileExists(requested) {
		return requested, nil
	}

	if requested != config.DefaultFile && fileExists(config.DefaultFile) {
		notices.Warnf("%s not found, falling back to %s", requested, config.DefaultFile)
		return config.DefaultFile, nil
	}

	return "", fmt.Errorf("file not found: %s", requested)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LoadEnv reads and parses the env file at path. Unlike Convert it has no
// fallback behavior and reports failures as errors rather than a Result.
func LoadEnv(path string) (*dotenv.Map, error) {
	return dotenv.Load(path)
}

// ExampleContent renders an example document: every key sorted
// lexicographically, values blanked, one KEY= per line, trailing newline.
func ExampleContent(env *dotenv.Map) string {
	keys := dotenv.Keys(env)
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString("=\n")
	}
	return b.String()
}

// writeExample generates the example file for env. Filters and redaction are
// deliberately not applied: the example lists every key.
func writeExample(inputPath string, env *dotenv.Map) Result {
	content := ExampleContent(env)
	path := ExamplePath(inputPath)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return failure(fmt.Errorf("writing %s: %w", path, err))
	}

	return Result{
		Success: true,
		Data:    content,
		Message: fmt.Sprintf("wrote example file to %s", path),
	}
}

// ExamplePath derives the example-file path from the input path: the first
// ".env" occurrence and everything after it becomes ".env.example". Paths
// without a ".env" component get the suffix appended.
func ExamplePath(inputPath string) string {
	if idx := strings.Index(inputPath, ".env"); idx >= 0 {
		return inputPath[:idx] + ".env.example"
	}
	return inputPath + ".env.example"
}

// nonEmpty drops empty strings from a list and returns nil when nothing
// remains, so an unset flag never counts as an explicit empty collection.
func nonEmpty(items []string) []string {
	if items == nil {
		return nil
	}
	var out []string
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
