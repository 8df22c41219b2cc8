// Package config loads render and server settings from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/willbeason/webtree/pkg/tree"
)

var (
	// ErrUnknownFormat is returned for files that are neither YAML nor TOML.
	ErrUnknownFormat = errors.New("unknown config format")

	// ErrInvalidSize is returned for non-positive surface dimensions.
	ErrInvalidSize = errors.New("surface size must be positive")
)

type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// Config holds everything the commands need besides flags.
type Config struct {
	// Width and Height are the surface size in pixels.
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`

	// MaxDepth bounds the recursion, see tree.Params.
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`

	// Output is where rendered images are written.
	Output string `yaml:"output" toml:"output"`

	// Addr is the HTTP listen address.
	Addr string `yaml:"addr" toml:"addr"`

	LogLevel string `yaml:"log_level" toml:"log_level"`

	// Controls are the initial control values.
	Controls tree.Controls `yaml:"controls" toml:"controls"`
}

// Default returns the settings used when no file sets them.
func Default() Config {
	return Config{
		Width:    800,
		Height:   600,
		MaxDepth: tree.DefaultMaxDepth,
		Output:   "image.png",
		Addr:     ":8080",
		LogLevel: "info",
		Controls: tree.DefaultControls(),
	}
}

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Load reads a config file over the defaults. Keys absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if err := decodeFile(path, &cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadControls reads a file holding only control values, such as
//
//	degrees: 40
//	height: 0.7
//
// Controls absent from the file are at their defaults.
func LoadControls(path string) (tree.Controls, error) {
	c := tree.DefaultControls()
	if err := decodeFile(path, &c); err != nil {
		return tree.Controls{}, err
	}
	return c, nil
}

// Parse decodes data in the given format into v, keeping fields of v that
// data does not mention.
func Parse(data []byte, format Format, v any) error {
	switch format {
	case YAML:
		return yaml.Unmarshal(data, v)
	case TOML:
		return toml.Unmarshal(data, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Validate reports settings no render can use.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	return nil
}

// Params are the render parameters of the configured controls.
func (c Config) Params() tree.Params {
	p := c.Controls.Params()
	p.MaxDepth = c.MaxDepth
	return p
}

func decodeFile(path string, v any) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err = Parse(data, format, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
