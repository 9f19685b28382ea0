// Package config loads mincss project configuration from YAML or JSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/mincss/internal/content"
)

// FileNames are the configuration files looked for in a project directory, in order
var FileNames = []string{"mincss.yaml", "mincss.yml", "mincss.json", "mincss.jsonc"}

// Config is the project configuration
type Config struct {
	// Stylesheet is the source stylesheet
	Stylesheet string `yaml:"stylesheet" json:"stylesheet"`

	// Content are glob patterns of files to harvest class names from,
	// relative to the configuration directory
	Content []string `yaml:"content" json:"content"`

	// Safelist are class names that are always included
	Safelist []string `yaml:"safelist" json:"safelist"`

	// TokensFiles specifies design token files to import as theme variables.
	// Each entry is either a path or an object:
	//  - "./tokens.json"
	//  - {"path": "./tokens.json", "prefix": "ds", "groupMarkers": ["_"]}
	TokensFiles []any `yaml:"tokensFiles" json:"tokensFiles"`

	// Prefix is the default prefix of imported token variables
	// Example: "ds" will generate "--ds-color-primary"
	Prefix string `yaml:"prefix" json:"prefix"`

	// GroupMarkers are token names which will be treated as group names as well
	// Default: ["_", "@", "DEFAULT"]
	GroupMarkers []string `yaml:"groupMarkers" json:"groupMarkers"`

	// Output is the file the minimal stylesheet is written to, stdout when empty
	Output string `yaml:"output" json:"output"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"logLevel" json:"logLevel"`

	// Strict makes class names that fail to parse an error
	Strict bool `yaml:"strict" json:"strict"`

	// Dir is the directory relative paths are resolved against
	Dir string `yaml:"-" json:"-"`
}

// TokenFile is one entry of TokensFiles with defaults applied
type TokenFile struct {
	Path         string
	Prefix       string
	GroupMarkers []string
}

// DefaultConfig returns the configuration used when no file is found
func DefaultConfig() *Config {
	return &Config{
		Content:      slices.Clone(content.DefaultPatterns),
		TokensFiles:  []any{},
		GroupMarkers: []string{"_", "@", "DEFAULT"},
		LogLevel:     "warn",
		Dir:          ".",
	}
}

// Load reads a configuration file. Fields it does not set keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	default:
		return nil, fmt.Errorf("unsupported config file type %s: %s", ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.Dir = filepath.Dir(path)
	return cfg, nil
}

// Discover loads the first of FileNames found in dir. It returns the
// defaults and an empty path when there is none.
func Discover(dir string) (*Config, string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, "", err
		}
		cfg, err := Load(path)
		return cfg, path, err
	}
	cfg := DefaultConfig()
	cfg.Dir = dir
	return cfg, "", nil
}

// Path resolves p against the configuration directory
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// TokenFiles returns the TokensFiles entries with the global prefix and
// group markers applied where an entry does not set its own. Paths are
// resolved against the configuration directory. Invalid entries are
// reported together; the valid ones are still returned.
func (c *Config) TokenFiles() ([]TokenFile, error) {
	var files []TokenFile
	var errs []error
	for _, item := range c.TokensFiles {
		f, err := parseTokenFileItem(item, c.Prefix, c.GroupMarkers)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if f.Path == "" {
			continue
		}
		f.Path = c.Path(f.Path)
		files = append(files, f)
	}
	return files, multierr.Combine(errs...)
}

// parseTokenFileItem parses a token file item (string or map[string]any)
func parseTokenFileItem(item any, defaultPrefix string, defaultGroupMarkers []string) (TokenFile, error) {
	switch v := item.(type) {
	case string:
		if v == "" {
			return TokenFile{}, fmt.Errorf("token file path must not be empty")
		}
		return TokenFile{Path: v, Prefix: defaultPrefix, GroupMarkers: defaultGroupMarkers}, nil

	case map[string]any:
		path, _ := v["path"].(string)
		if path == "" {
			return TokenFile{}, fmt.Errorf("token file entry missing required 'path' field: %v", v)
		}
		f := TokenFile{Path: path, Prefix: defaultPrefix, GroupMarkers: defaultGroupMarkers}
		if prefix, ok := v["prefix"].(string); ok {
			f.Prefix = prefix
		}
		if markers := stringList(v["groupMarkers"]); len(markers) > 0 {
			f.GroupMarkers = markers
		}
		return f, nil

	default:
		return TokenFile{}, fmt.Errorf("unsupported token file entry %T", item)
	}
}

// stringList accepts []string and the []any decoders produce
func stringList(val any) []string {
	switch list := val.(type) {
	case []string:
		return list
	case []any:
		var out []string
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
