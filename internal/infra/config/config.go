// Package config provides the configuration document: hotkey bindings,
// music directory, startup volume and audio output settings.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/dkrasnov/melodeon/internal/infra/audio"
)

// DefaultPath is the document used when no --config flag is given.
const DefaultPath = "melodeon.json"

// Config represents the configuration document. The document is JSON by
// default; a .yaml/.yml path parses and saves as YAML.
type Config struct {
	Hotkeys  map[string]string `json:"hotkeys" yaml:"hotkeys"`
	MusicDir string            `json:"music_dir,omitempty" yaml:"music_dir,omitempty"`
	Volume   float64           `json:"volume" yaml:"volume" default:"0.7" validate:"gte=0,lte=1"`
	Audio    map[string]any    `json:"audio,omitempty" yaml:"audio,omitempty"`
}

// DefaultHotkeys returns the bindings used when the document has none.
func DefaultHotkeys() map[string]string {
	return map[string]string{
		"next":  "XF86AudioNext",
		"prev":  "XF86AudioPrev",
		"pause": "XF86AudioPlay",
		"stop":  "XF86AudioStop",
	}
}

// Load reads the document at path. A missing document is created with
// defaults, matching first-run behavior.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := &Config{Hotkeys: DefaultHotkeys()}
		if err := defaults.Set(cfg); err != nil {
			return nil, errors.Wrap(err, "setting config defaults")
		}
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	cfg := &Config{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.Wrap(err, "parsing config file")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "setting config defaults")
	}
	if cfg.Hotkeys == nil {
		cfg.Hotkeys = DefaultHotkeys()
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return cfg, nil
}

// Save writes the document in the format implied by its path.
func (c *Config) Save(path string) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return errors.Wrap(err, "encoding config")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "writing config file")
	}
	return nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("MELODEON_MUSIC_DIR"); v != "" {
		c.MusicDir = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// AudioOptions decodes the free-form audio settings map into speaker
// options, applying defaults and validation.
func (c *Config) AudioOptions() (audio.Options, error) {
	var opts audio.Options
	if err := mapstructure.Decode(c.Audio, &opts); err != nil {
		return opts, errors.Wrap(err, "invalid audio settings")
	}
	if err := defaults.Set(&opts); err != nil {
		return opts, errors.Wrap(err, "setting audio defaults")
	}
	if err := validator.New().Struct(&opts); err != nil {
		return opts, errors.Wrap(err, "audio settings validation failed")
	}
	return opts, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
