// Package dotenv parses .env-formatted text into an ordered key/value mapping.
//
// Parsing is best-effort: malformed lines (no '=', empty key after trimming)
// are skipped rather than reported, so any input produces a partial mapping.
package dotenv

import (
	"bufio"
	"io"
	"os"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is an insertion-ordered key/value mapping parsed from one env document.
// Later duplicate keys overwrite earlier values but keep the original position.
type Map = orderedmap.OrderedMap[string, string]

// NewMap returns an empty mapping.
func NewMap() *Map {
	return orderedmap.New[string, string]()
}

// Load reads and parses the env file at path.
func Load(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads env entries from r, one assignment per line.
func Parse(r io.Reader) (*Map, error) {
	env := NewMap()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		parseLine(scanner.Text(), env)
	}
	if err := scanner.Err(); err != nil {
		return env, err
	}

	return env, nil
}

// ParseString parses env entries from an in-memory document.
func ParseString(text string) *Map {
	env := NewMap()
	for _, line := range strings.Split(text, "\n") {
		parseLine(line, env)
	}
	return env
}

// parseLine extracts a single KEY=VALUE assignment, if the line holds one.
func parseLine(line string, env *Map) {
	line = strings.TrimSpace(stripComment(line))
	if line == "" {
		return
	}

	idx := strings.Index(line, "=")
	if idx < 0 {
		return
	}

	key := strings.TrimSpace(line[:idx])
	if key == "" {
		return
	}

	value := strings.TrimSpace(line[idx+1:])
	value = unquote(value)
	value = unescape(value)

	env.Set(key, value)
}

// stripComment removes everything from the first unescaped '#' onward.
//
// Comment stripping happens before quote handling, so a '#' inside a quoted
// value also starts a comment. Quote-aware stripping would change observable
// output for values like URL fragments, so the naive behavior is kept.
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] == '#' && (i == 0 || line[i-1] != '\\') {
			return line[:i]
		}
	}
	return line
}

// unquote strips exactly one layer of matching single or double quotes.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// escapeSequences are resolved in this exact order; each pass operates on the
// output of the previous one, so the backslash pass must come after the
// whitespace escapes.
var escapeSequences = [...][2]string{
	{`\n`, "\n"},
	{`\r`, "\r"},
	{`\t`, "\t"},
	{`\\`, `\`},
	{`\"`, `"`},
	{`\'`, "'"},
}

func unescape(s string) string {
	for _, seq := range escapeSequences {
		s = strings.ReplaceAll(s, seq[0], seq[1])
	}
	return s
}

// Keys returns the mapping's keys in insertion order.
func Keys(env *Map) []string {
	keys := make([]string, 0, env.Len())
	for pair := env.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}
