// Package config loads bigword.toml.
//
// The file is optional. A missing file yields Default; keys that are
// present override the defaults one by one.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"bigword/internal/trace"
)

// FileName is the configuration file looked up from the working directory.
const FileName = "bigword.toml"

// Config is the decoded configuration.
type Config struct {
	Calc  CalcConfig  `toml:"calc"`
	Check CheckConfig `toml:"check"`
	Trace TraceConfig `toml:"trace"`
	Store StoreConfig `toml:"store"`

	// Path is the file the values came from; empty for defaults.
	Path string `toml:"-"`
}

// CalcConfig controls the expression evaluator and numeral rendering.
type CalcConfig struct {
	Base int `toml:"base"`
}

// CheckConfig controls the randomized cross-check.
type CheckConfig struct {
	Seed       uint64   `toml:"seed"`
	Iterations int      `toml:"iterations"`
	MaxWords   int      `toml:"max_words"`
	Jobs       int      `toml:"jobs"`
	Primes     []uint32 `toml:"primes"`
}

// TraceConfig mirrors the --trace flags. Empty fields defer to the flags'
// own defaults.
type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Mode   string `toml:"mode"`
}

// StoreConfig locates the value vault.
type StoreConfig struct {
	Dir string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Calc: CalcConfig{Base: 10},
		Check: CheckConfig{
			Seed:       1,
			Iterations: 200,
			MaxWords:   12,
			Jobs:       4,
			Primes:     []uint32{65521, 2147483647, 4294967291},
		},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	// An explicit primes list replaces the default one, never merges with it.
	if meta.IsDefined("check", "primes") && len(cfg.Check.Primes) == 0 {
		return Config{}, fmt.Errorf("%s: [check].primes must not be empty", path)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads explicit when set, otherwise the nearest FileName above
// startDir, otherwise Default.
func Resolve(startDir, explicit string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate reports the first out-of-range value.
func (c *Config) Validate() error {
	if c.Calc.Base < 2 || c.Calc.Base > 36 {
		return fmt.Errorf("[calc].base must be in 2..36, got %d", c.Calc.Base)
	}
	if c.Check.Iterations <= 0 {
		return fmt.Errorf("[check].iterations must be positive, got %d", c.Check.Iterations)
	}
	if c.Check.MaxWords <= 0 {
		return fmt.Errorf("[check].max_words must be positive, got %d", c.Check.MaxWords)
	}
	if c.Check.Jobs <= 0 {
		return fmt.Errorf("[check].jobs must be positive, got %d", c.Check.Jobs)
	}
	for i, p := range c.Check.Primes {
		if p < 2 {
			return fmt.Errorf("[check].primes[%d] must be at least 2, got %d", i, p)
		}
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if c.Trace.Mode != "" {
		if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
			return fmt.Errorf("[trace].mode: %w", err)
		}
	}
	return nil
}
