// Package config loads widget options and picker settings from YAML files.
//
// A configuration file looks like this; every key is optional:
//
//	open-on-focus: false
//	close-on-select: true
//	circular-navigation: true
//	commit-on-blur: true
//	enter: noop      # or close
//	escape: noop     # or clear
//	page-size: 10
//	prompt: "> "
//	max-rows: 10
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/elves/selectkit/pkg/combo"
)

// ErrInvalid is wrapped by errors about values that are well-formed YAML but
// not acceptable.
var ErrInvalid = errors.New("invalid config")

// Config is the result of loading a configuration file.
type Config struct {
	Options combo.Options
	// Printed before the input text.
	Prompt string
	// Maximum number of menu rows shown at a time.
	MaxRows int
}

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{Options: combo.DefaultOptions(), Prompt: "> ", MaxRows: 10}
}

// The on-disk form. Pointers distinguish absent keys from zero values.
type file struct {
	OpenOnFocus        *bool   `yaml:"open-on-focus"`
	CloseOnSelect      *bool   `yaml:"close-on-select"`
	CircularNavigation *bool   `yaml:"circular-navigation"`
	CommitOnBlur       *bool   `yaml:"commit-on-blur"`
	Enter              *string `yaml:"enter"`
	Escape             *string `yaml:"escape"`
	PageSize           *int    `yaml:"page-size"`
	Prompt             *string `yaml:"prompt"`
	MaxRows            *int    `yaml:"max-rows"`
}

var (
	enterPolicies  = map[string]combo.EnterPolicy{"noop": combo.EnterNoop, "close": combo.EnterClose}
	escapePolicies = map[string]combo.EscapePolicy{"noop": combo.EscapeNoop, "clear": combo.EscapeClear}
)

// Parse parses a configuration from YAML. Unknown keys are errors; absent
// keys keep their default values.
func Parse(data []byte) (Config, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return Config{}, err
	}

	cfg := Default()
	setBool(&cfg.Options.OpenOnFocus, f.OpenOnFocus)
	setBool(&cfg.Options.CloseOnSelect, f.CloseOnSelect)
	setBool(&cfg.Options.CircularNavigation, f.CircularNavigation)
	setBool(&cfg.Options.CommitOnBlur, f.CommitOnBlur)
	if f.Enter != nil {
		p, ok := enterPolicies[*f.Enter]
		if !ok {
			return Config{}, fmt.Errorf("%w: enter must be noop or close, got %q", ErrInvalid, *f.Enter)
		}
		cfg.Options.EnterPolicy = p
	}
	if f.Escape != nil {
		p, ok := escapePolicies[*f.Escape]
		if !ok {
			return Config{}, fmt.Errorf("%w: escape must be noop or clear, got %q", ErrInvalid, *f.Escape)
		}
		cfg.Options.EscapePolicy = p
	}
	if f.PageSize != nil {
		if *f.PageSize <= 0 {
			return Config{}, fmt.Errorf("%w: page-size must be positive, got %d", ErrInvalid, *f.PageSize)
		}
		cfg.Options.PageSize = *f.PageSize
	}
	if f.Prompt != nil {
		cfg.Prompt = *f.Prompt
	}
	if f.MaxRows != nil {
		if *f.MaxRows <= 0 {
			return Config{}, fmt.Errorf("%w: max-rows must be positive, got %d", ErrInvalid, *f.MaxRows)
		}
		cfg.MaxRows = *f.MaxRows
	}
	return cfg, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault loads the file at DefaultPath, returning Default() if it does
// not exist.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// DefaultPath returns the path of the configuration file, which lives in
// $XDG_CONFIG_HOME/selectkit, or the platform's equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "selectkit", "config.yaml"), nil
}
