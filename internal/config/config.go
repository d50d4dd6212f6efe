package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bamsammich/repoprep/internal/rules"
)

// Config represents the optional repoprep configuration file.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Rules    RulesConfig    `toml:"rules"`
	Theme    ThemeConfig    `toml:"theme"`
}

// DefaultsConfig holds persistent flag defaults. Nil means unset.
type DefaultsConfig struct {
	Verify        *bool   `toml:"verify"`
	ProgressEvery *int    `toml:"progress_every"`
	Gitignore     *bool   `toml:"gitignore"`
	BWLimit       *string `toml:"bwlimit"`
}

// RulesConfig extends the built-in exclusion catalog. Entries are added,
// never removed.
type RulesConfig struct {
	ExcludeDirs     []string `toml:"exclude_dirs"`
	ExcludeFiles    []string `toml:"exclude_files"`
	ExcludeSuffixes []string `toml:"exclude_suffixes"`
	ExcludePatterns []string `toml:"exclude_patterns"`
}

// ThemeConfig holds optional color overrides for event level tags.
type ThemeConfig struct {
	Info  *string `toml:"info"`
	Warn  *string `toml:"warn"`
	Skip  *string `toml:"skip"`
	Error *string `toml:"error"`
	Muted *string `toml:"muted"`
}

// Options converts the rules section into rules.Set options.
func (r RulesConfig) Options() []rules.Option {
	var opts []rules.Option
	if len(r.ExcludeDirs) > 0 {
		opts = append(opts, rules.WithDirNames(r.ExcludeDirs...))
	}
	if len(r.ExcludeFiles) > 0 {
		opts = append(opts, rules.WithFileNames(r.ExcludeFiles...))
	}
	if len(r.ExcludeSuffixes) > 0 {
		opts = append(opts, rules.WithSuffixes(r.ExcludeSuffixes...))
	}
	if len(r.ExcludePatterns) > 0 {
		opts = append(opts, rules.WithPatterns(r.ExcludePatterns...))
	}
	return opts
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "repoprep", "config.toml")
}

// Load reads the config file from the XDG path. A missing file yields a
// zero Config and no error.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile decodes the config at path. Unknown keys are rejected so typos
// do not silently fall back to defaults.
func LoadFile(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, &UnknownKeysError{Path: path, Keys: keyStrings(undecoded)}
	}
	return cfg, nil
}

// UnknownKeysError reports config keys that match no field.
type UnknownKeysError struct {
	Path string
	Keys []string
}

func (e *UnknownKeysError) Error() string {
	msg := e.Path + ": unknown keys:"
	for _, k := range e.Keys {
		msg += " " + k
	}
	return msg
}

func keyStrings(keys []toml.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}
