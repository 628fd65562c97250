package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/go-mason/mason/pkg/graphics"
)

// Config represents the optional mason.yaml configuration.
type Config struct {
	Theme ThemeConfig `yaml:"theme"`
}

// ThemeConfig overrides individual environment values. Unset fields
// keep their defaults.
type ThemeConfig struct {
	TextColor         string   `yaml:"text_color,omitempty"`
	WindowBackground  string   `yaml:"window_background,omitempty"`
	ButtonColor       string   `yaml:"button_color,omitempty"`
	ButtonBorderColor string   `yaml:"button_border_color,omitempty"`
	ButtonBorderWidth *float64 `yaml:"button_border_width,omitempty"`
	BasicWidgetHeight *float64 `yaml:"basic_widget_height,omitempty"`
}

// LoadOptional reads mason.yaml from dir if present. A missing file is
// not an error and yields an empty config.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, "mason.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read mason.yaml: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse mason.yaml: %w", err)
	}

	return &cfg, nil
}

// Apply writes the config's overrides into the environment.
func (e *Env) Apply(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	colorFields := []struct {
		value string
		key   Key
	}{
		{cfg.Theme.TextColor, TextColor},
		{cfg.Theme.WindowBackground, WindowBackgroundColor},
		{cfg.Theme.ButtonColor, ButtonColor},
		{cfg.Theme.ButtonBorderColor, ButtonBorderColor},
	}
	for _, field := range colorFields {
		if field.value == "" {
			continue
		}
		c, err := ParseHexColor(field.value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", field.key, err)
		}
		e.SetColor(field.key, c)
	}
	if cfg.Theme.ButtonBorderWidth != nil {
		e.SetFloat(ButtonBorderWidth, *cfg.Theme.ButtonBorderWidth)
	}
	if cfg.Theme.BasicWidgetHeight != nil {
		e.SetFloat(BasicWidgetHeight, *cfg.Theme.BasicWidgetHeight)
	}
	return nil
}

// ParseHexColor parses "#RRGGBB" or "#AARRGGBB" into a Color.
func ParseHexColor(s string) (graphics.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid hex color %q", s)
		}
		return graphics.Color(0xFF000000 | uint32(v)), nil
	case 8:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid hex color %q", s)
		}
		return graphics.Color(uint32(v)), nil
	default:
		return 0, fmt.Errorf("invalid hex color %q: want #RRGGBB or #AARRGGBB", s)
	}
}
