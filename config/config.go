package config

import (
	"fmt"
	"os"

	"github.com/milk9111/camprovider/ecs/system"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Scene     string          `yaml:"scene"`
	Watch     bool            `yaml:"watch"`
	Editor    EditorConfig    `yaml:"editor"`
	Selection SelectionConfig `yaml:"selection"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// EditorConfig enables an authoring context. Playing starts it in play mode.
type EditorConfig struct {
	Enabled bool `yaml:"enabled"`
	Playing bool `yaml:"playing"`
}

type SelectionConfig struct {
	Order           []string `yaml:"order"`
	EditorExclusive bool     `yaml:"editor_exclusive"`
}

func Default() Config {
	order := make([]string, 0, len(system.DefaultOrder))
	for _, sel := range system.DefaultOrder {
		order = append(order, string(sel))
	}
	return Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "camview",
		},
		Scene:     "default.yaml",
		Selection: SelectionConfig{Order: order},
	}
}

// Load reads a YAML config on top of Default. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return Parse(data, cfg)
}

// Parse decodes data over base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	return nil
}

// Policy converts the selection section to a camera selection policy.
func (c Config) Policy() (system.SelectionPolicy, error) {
	policy := system.SelectionPolicy{EditorExclusive: c.Selection.EditorExclusive}
	seen := make(map[system.Selector]bool, len(c.Selection.Order))
	for _, name := range c.Selection.Order {
		sel, err := system.ParseSelector(name)
		if err != nil {
			return system.SelectionPolicy{}, fmt.Errorf("config: selection order: %w", err)
		}
		if seen[sel] {
			return system.SelectionPolicy{}, fmt.Errorf("config: selection order: duplicate selector %q", name)
		}
		seen[sel] = true
		policy.Order = append(policy.Order, sel)
	}
	return policy, nil
}
