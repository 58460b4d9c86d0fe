package cursor

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("cursor: invalid config")

// TransitionConfig sets the tween durations (seconds) for scale and opacity
// changes of each layer.
type TransitionConfig struct {
	Dot  float64 `yaml:"dot"`
	Ring float64 `yaml:"ring"`
	Glow float64 `yaml:"glow"`
	Ease string  `yaml:"ease"`
}

// StyleConfig is read by renderers only.
type StyleConfig struct {
	DotRadius  float64 `yaml:"dot_radius"`
	RingRadius float64 `yaml:"ring_radius"`
	RingWidth  float64 `yaml:"ring_width"`
	GlowRadius float64 `yaml:"glow_radius"`
	Primary    string  `yaml:"primary"`
	Accent     string  `yaml:"accent"`
}

// PrimaryColor returns the parsed primary color (white if unparsable).
func (s StyleConfig) PrimaryColor() Color {
	c, err := ParseHexColor(s.Primary)
	if err != nil {
		return ColorWhite
	}
	return c
}

// AccentColor returns the parsed accent color (white if unparsable).
func (s StyleConfig) AccentColor() Color {
	c, err := ParseHexColor(s.Accent)
	if err != nil {
		return ColorWhite
	}
	return c
}

// PredicateConfig selects how interactive elements are recognised.
type PredicateConfig struct {
	Engine     string `yaml:"engine"`
	Expression string `yaml:"expression"`
}

// Config configures a Cursor.
type Config struct {
	Dot         SpringConfig     `yaml:"dot"`
	Ring        SpringConfig     `yaml:"ring"`
	Transitions TransitionConfig `yaml:"transitions"`
	Style       StyleConfig      `yaml:"style"`
	Predicate   PredicateConfig  `yaml:"predicate"`

	// PreferencesPath is where the user's motion toggle is persisted.
	PreferencesPath string     `yaml:"preferences_path"`
	Log             LogOptions `yaml:"log"`
	Debug           bool       `yaml:"debug"`

	// Logger overrides Log when set.
	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns the stock tuning: a tight dot spring, a looser
// trailing ring, and short scale/opacity transitions.
func DefaultConfig() Config {
	return Config{
		Dot:  SpringConfig{Stiffness: 400, Damping: 25},
		Ring: SpringConfig{Stiffness: 200, Damping: 35},
		Transitions: TransitionConfig{
			Dot:  0.15,
			Ring: 0.2,
			Glow: 0.2,
			Ease: "outCubic",
		},
		Style: StyleConfig{
			DotRadius:  6,
			RingRadius: 20,
			RingWidth:  2,
			GlowRadius: 40,
			Primary:    "#a78bfa",
			Accent:     "#22d3ee",
		},
		Predicate: PredicateConfig{Engine: EngineBuiltin},
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	springs := []struct {
		name string
		cfg  SpringConfig
	}{{"dot", c.Dot}, {"ring", c.Ring}}
	for _, s := range springs {
		if s.cfg.Stiffness <= 0 {
			return fmt.Errorf("%w: %s.stiffness must be positive, got %v", ErrInvalidConfig, s.name, s.cfg.Stiffness)
		}
		if s.cfg.Damping < 0 {
			return fmt.Errorf("%w: %s.damping must not be negative, got %v", ErrInvalidConfig, s.name, s.cfg.Damping)
		}
	}
	t := c.Transitions
	if t.Dot < 0 || t.Ring < 0 || t.Glow < 0 {
		return fmt.Errorf("%w: transition durations must not be negative", ErrInvalidConfig)
	}
	if t.Ease != "" {
		if _, ok := easeFuncs[t.Ease]; !ok {
			return fmt.Errorf("%w: unknown ease %q", ErrInvalidConfig, t.Ease)
		}
	}
	if c.Style.Primary != "" {
		if _, err := ParseHexColor(c.Style.Primary); err != nil {
			return fmt.Errorf("%w: style.primary: %v", ErrInvalidConfig, err)
		}
	}
	if c.Style.Accent != "" {
		if _, err := ParseHexColor(c.Style.Accent); err != nil {
			return fmt.Errorf("%w: style.accent: %v", ErrInvalidConfig, err)
		}
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ResolveLogger returns Logger if set. Otherwise it builds one from Log when
// Debug is set and discards output when it is not.
func (c Config) ResolveLogger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	if !c.Debug {
		return discardLogger
	}
	opts := c.Log
	if opts.Level == "" {
		opts.Level = "debug"
	}
	l, err := NewLogger(opts)
	if err != nil {
		return discardLogger
	}
	return l
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses the YAML file at path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("bad hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("bad hex color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
