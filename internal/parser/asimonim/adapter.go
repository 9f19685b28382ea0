// Package asimonim imports design token files as custom properties, using
// the asimonim DTCG parser. Token references such as "{color.base}" become
// var() calls, so imported tokens take part in dependency resolution.
package asimonim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	asimonimParser "bennypowers.dev/asimonim/parser"
	"bennypowers.dev/asimonim/schema"
	"bennypowers.dev/asimonim/validator"
	"github.com/tidwall/jsonc"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/mincss/internal/log"
	"bennypowers.dev/mincss/internal/parser/common"
)

// Options configures token import
type Options struct {
	// Prefix is prepended to every variable name, "ds" gives "--ds-color-primary"
	Prefix string
	// GroupMarkers name groups that are also tokens
	GroupMarkers []string
	// SchemaVersion forces a DTCG schema version instead of detecting it
	SchemaVersion schema.Version
}

// Variable is a design token as a custom property
type Variable struct {
	Name  string
	Value string
	Type  string
}

// LoadFile reads a JSON, JSONC or YAML token file
func LoadFile(path string, opts Options) ([]Variable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".jsonc":
	case ".yaml", ".yml":
		if data, err = yamlToJSON(data); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported token file type %s: %s", ext, path)
	}

	vars, err := Parse(data, opts)
	if err != nil {
		return vars, fmt.Errorf("%s: %w", path, err)
	}
	log.Info("Loaded %d tokens from %s", len(vars), path)
	return vars, nil
}

// Parse converts DTCG token data to custom properties. Comments and
// trailing commas are allowed. Tokens whose value cannot be written as CSS
// are left out and reported in the returned error, along with the others.
func Parse(data []byte, opts Options) ([]Variable, error) {
	data = jsonc.ToJSON(data)

	tokens, err := asimonimParser.NewJSONParser().Parse(data, asimonimParser.Options{
		Prefix:        opts.Prefix,
		SchemaVersion: opts.SchemaVersion,
		GroupMarkers:  opts.GroupMarkers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse tokens: %w", err)
	}

	version := opts.SchemaVersion
	if version == schema.Unknown {
		version = schema.Draft
		for _, t := range tokens {
			if t.SchemaVersion != schema.Unknown {
				version = t.SchemaVersion
				break
			}
		}
	}
	for _, ve := range validator.ValidateConsistency(data, version) {
		log.Warn("Schema validation: %s", ve.Error())
	}

	vars := make([]Variable, 0, len(tokens))
	var errs []error
	for _, t := range tokens {
		if t.Value == "" {
			errs = append(errs, fmt.Errorf("token %s has no value", t.Name))
			continue
		}
		val, err := cssValue(t.Value, opts.Prefix)
		if err != nil {
			errs = append(errs, fmt.Errorf("token %s: %w", t.Name, err))
			continue
		}
		vars = append(vars, Variable{
			Name:  t.CSSVariableName(),
			Value: val,
			Type:  t.Type,
		})
	}
	return vars, multierr.Combine(errs...)
}

// cssValue converts a token value to CSS. Structured values such as
// colour objects arrive as JSON text.
func cssValue(raw, prefix string) (string, error) {
	if strings.HasPrefix(raw, "{") && strings.Contains(raw, ":") {
		var obj map[string]any
		if err := json.Unmarshal([]byte(raw), &obj); err == nil {
			return common.ValueToCSS(obj, prefix)
		}
	}
	return common.ValueToCSS(raw, prefix)
}

// yamlToJSON re-encodes a YAML token document as JSON for the token parser
func yamlToJSON(data []byte) ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return json.Marshal(doc)
}
