// Package config loads the settings shared by the command line tools.
//
// Values come from the defaults, then an optional TOML or YAML file, then
// PEMDAS_* environment variables. Flags are applied last by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"go.creack.net/pemdas"
	"go.creack.net/pemdas/parser"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PEMDAS_"

// DefaultBanner is printed when the interactive loop starts.
const DefaultBanner = `PEMDAS calculator
Supported operators: + - * / ^ and parentheses.
Type "exit" or "quit" to leave.`

// Config holds the complete configuration.
type Config struct {
	Lexer  LexerConfig  `toml:"lexer" yaml:"lexer"`
	Eval   EvalConfig   `toml:"eval" yaml:"eval"`
	Output OutputConfig `toml:"output" yaml:"output"`
	REPL   REPLConfig   `toml:"repl" yaml:"repl"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// LexerConfig controls tokenization.
type LexerConfig struct {
	Permissive bool `toml:"permissive" yaml:"permissive"`
}

// EvalConfig controls evaluation.
type EvalConfig struct {
	Precision uint `toml:"precision" yaml:"precision"` // Mantissa bits, 0 for float64.
	MaxDepth  int  `toml:"max_depth" yaml:"max_depth"`
}

// OutputConfig controls how results are printed.
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
}

// REPLConfig controls the interactive loop.
type REPLConfig struct {
	Prompt string `toml:"prompt" yaml:"prompt"`
	Banner string `toml:"banner" yaml:"banner"`
	Plain  bool   `toml:"plain" yaml:"plain"` // Force line mode on a terminal.
}

// ServerConfig controls the evaluation service.
type ServerConfig struct {
	Addr        string   `toml:"addr" yaml:"addr"`
	ReadTimeout Duration `toml:"read_timeout" yaml:"read_timeout"`
}

// Duration wraps time.Duration for text based formats.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string such as "5s".
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Eval:   EvalConfig{MaxDepth: parser.DefaultMaxDepth},
		Output: OutputConfig{Format: pemdas.DefaultFormat},
		REPL: REPLConfig{
			Prompt: "Enter an expression: ",
			Banner: DefaultBanner,
		},
		Server: ServerConfig{
			Addr:        "localhost:8080",
			ReadTimeout: Duration{10 * time.Second},
		},
	}
}

// Load reads path over the defaults and applies the environment. An empty
// path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse yaml config %q: %w", path, err)
		}
	case ".toml", "":
		md, err := toml.Decode(string(content), c)
		if err != nil {
			return fmt.Errorf("parse toml config %q: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("parse toml config %q: unknown key %q", path, undecoded[0].String())
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	return nil
}

// ApplyEnv overrides values from the environment as seen through lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := lookup(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	boolean("PERMISSIVE", &c.Lexer.Permissive)
	if v, ok := lookup(EnvPrefix + "PRECISION"); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sPRECISION: %w", EnvPrefix, err))
		} else {
			c.Eval.Precision = uint(n)
		}
	}
	if v, ok := lookup(EnvPrefix + "MAX_DEPTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sMAX_DEPTH: %w", EnvPrefix, err))
		} else {
			c.Eval.MaxDepth = n
		}
	}
	str("FORMAT", &c.Output.Format)
	str("PROMPT", &c.REPL.Prompt)
	boolean("PLAIN", &c.REPL.Plain)
	str("ADDR", &c.Server.Addr)
	if v, ok := lookup(EnvPrefix + "READ_TIMEOUT"); ok {
		if err := c.Server.ReadTimeout.UnmarshalText([]byte(v)); err != nil {
			errs = append(errs, fmt.Errorf("%sREAD_TIMEOUT: %w", EnvPrefix, err))
		}
	}
	return errors.Join(errs...)
}

// Validate rejects settings no component can run with.
func (c Config) Validate() error {
	var errs []error
	if c.Output.Format == "" {
		errs = append(errs, errors.New("output.format is empty"))
	} else if !strings.Contains(c.Output.Format, "%") {
		errs = append(errs, fmt.Errorf("output.format %q has no verb", c.Output.Format))
	}
	if c.Eval.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("eval.max_depth %d is negative", c.Eval.MaxDepth))
	}
	if c.Server.ReadTimeout.Duration < 0 {
		errs = append(errs, fmt.Errorf("server.read_timeout %s is negative", c.Server.ReadTimeout))
	}
	return errors.Join(errs...)
}

// Options converts the evaluation settings for pemdas.New.
func (c Config) Options() []pemdas.Option {
	opts := []pemdas.Option{
		pemdas.WithPrecision(c.Eval.Precision),
		pemdas.WithMaxDepth(c.Eval.MaxDepth),
	}
	if c.Lexer.Permissive {
		opts = append(opts, pemdas.WithPermissive())
	}
	return opts
}
