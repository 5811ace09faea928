package dbg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by [LoadConfig].
// DBG_REDACT_MASK sets redact.mask, for example.
const EnvPrefix = "DBG_"

// Config is the file and environment form of the [Debugger] options.
type Config struct {
	Format  string                 `koanf:"format"`
	Depth   int                    `koanf:"depth"`
	Indent  string                 `koanf:"indent"`
	Redact  RedactConfig           `koanf:"redact"`
	Roots   []Root                 `koanf:"roots"`
	Exclude []string               `koanf:"exclude"`
	Formats map[string]TemplateSet `koanf:"formats"`
}

// RedactConfig controls masking of sensitive keys.
type RedactConfig struct {
	Enabled bool     `koanf:"enabled"`
	Keys    []string `koanf:"keys"`
	Mask    string   `koanf:"mask"`
}

func defaultConfigMap() map[string]any {
	return map[string]any{
		"format":         string(FormatLog),
		"depth":          DefaultDepth,
		"indent":         DefaultIndent,
		"redact.enabled": true,
		"redact.keys":    DefaultRedactedKeys,
		"redact.mask":    DefaultMask,
		"exclude":        DefaultExclude,
	}
}

// LoadConfig layers the built-in defaults, the file at path when path is not
// empty, and DBG_ environment variables. Files ending in .toml are parsed as
// TOML; .yaml, .yml and .json as YAML.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaultConfigMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml", ".json":
		return yaml.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: unknown config extension %q", ErrInvalidConfig, filepath.Ext(path))
	}
}

// Validate reports the first setting that [Config.Options] could not apply.
func (c *Config) Validate() error {
	if c.Depth < 0 {
		return fmt.Errorf("%w: depth must not be negative, got %d", ErrInvalidConfig, c.Depth)
	}
	f := Format(strings.ToLower(c.Format))
	if _, err := ParseFormat(c.Format); err != nil {
		if _, custom := c.Formats[string(f)]; !custom {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	for name := range c.Formats {
		if Format(name).Structured() {
			return fmt.Errorf("%w: format %q does not take templates", ErrInvalidConfig, name)
		}
	}
	for _, r := range c.Roots {
		if r.Name == "" || r.Dir == "" {
			return fmt.Errorf("%w: root needs a name and a dir", ErrInvalidConfig)
		}
	}
	return nil
}

// Options converts c into Debugger options. Template sets are merged into
// the built-in ones before the output format is applied.
func (c *Config) Options() []Option {
	opts := []Option{
		WithMaxDepth(c.Depth),
		WithIndent(c.Indent),
		WithDefaultExclude(c.Exclude...),
	}
	if c.Redact.Enabled {
		opts = append(opts, WithRedactedKeys(c.Redact.Keys...))
		if c.Redact.Mask != "" {
			opts = append(opts, WithMask(c.Redact.Mask))
		}
	} else {
		opts = append(opts, WithoutRedaction())
	}
	for _, r := range c.Roots {
		opts = append(opts, WithTrimRoot(r.Name, r.Dir))
	}
	for name, set := range c.Formats {
		opts = append(opts, WithTemplateSet(Format(strings.ToLower(name)), set))
	}
	if c.Format != "" {
		opts = append(opts, WithOutputFormat(Format(strings.ToLower(c.Format))))
	}
	return opts
}
