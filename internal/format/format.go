// Package format renders an env mapping into one of the supported textual
// formats: pretty JSON, block YAML, or a JS module-export literal.
package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bimmerbailey/envform/internal/dotenv"
)

// Format represents a serialization target.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatJS   Format = "js"
)

// ErrUnsupported is returned for format names outside the supported set.
var ErrUnsupported = errors.New("unsupported format")

// Parse converts a format name to a Format. Matching is case-insensitive.
func Parse(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml":
		return FormatYAML, nil
	case "js":
		return FormatJS, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: json, yaml, js)", ErrUnsupported, name)
	}
}

// Render serializes env into the requested format. Keys keep the mapping's
// current order in every format.
func Render(env *dotenv.Map, f Format) (string, error) {
	switch f {
	case FormatJSON:
		return renderJSON(env)
	case FormatYAML:
		return renderYAML(env)
	case FormatJS:
		return renderJS(env)
	default:
		return "", fmt.Errorf("%w: %q (supported: json, yaml, js)", ErrUnsupported, string(f))
	}
}

func renderJSON(env *dotenv.Map) (string, error) {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func renderYAML(env *dotenv.Map) (string, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for pair := env.Oldest(); pair != nil; pair = pair.Next() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Value},
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// renderJS wraps the pretty JSON object in a minimal CommonJS export.
func renderJS(env *dotenv.Map) (string, error) {
	obj, err := renderJSON(env)
	if err != nil {
		return "", err
	}
	return "module.exports = " + obj + ";", nil
}
