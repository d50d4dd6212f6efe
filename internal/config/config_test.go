package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/repoprep/internal/config"
	"github.com/bamsammich/repoprep/internal/rules"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	configDir := filepath.Join(dir, "repoprep")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o644))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Nil(t, cfg.Defaults.Verify)
	assert.Nil(t, cfg.Defaults.ProgressEvery)
	assert.Empty(t, cfg.Rules.Options())
	assert.Nil(t, cfg.Theme.Warn)
}

func TestLoad_FullConfig(t *testing.T) {
	writeConfig(t, `
[defaults]
verify = true
progress_every = 250
gitignore = true
bwlimit = "100MB"

[rules]
exclude_dirs = ["coverage", ".turbo"]
exclude_files = ["secrets.env"]
exclude_suffixes = ["*.sqlite", "csv"]
exclude_patterns = ["/docs/*.pdf"]

[theme]
warn = "#ffaa00"
error = "9"
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults.Verify)
	assert.True(t, *cfg.Defaults.Verify)
	require.NotNil(t, cfg.Defaults.ProgressEvery)
	assert.Equal(t, 250, *cfg.Defaults.ProgressEvery)
	require.NotNil(t, cfg.Defaults.Gitignore)
	assert.True(t, *cfg.Defaults.Gitignore)
	require.NotNil(t, cfg.Defaults.BWLimit)
	assert.Equal(t, "100MB", *cfg.Defaults.BWLimit)

	assert.Equal(t, []string{"coverage", ".turbo"}, cfg.Rules.ExcludeDirs)
	require.NotNil(t, cfg.Theme.Warn)
	assert.Equal(t, "#ffaa00", *cfg.Theme.Warn)
	assert.Nil(t, cfg.Theme.Info)

	set, err := rules.New(cfg.Rules.Options()...)
	require.NoError(t, err)
	assert.True(t, set.Excluded(rules.Entry{Name: "coverage", RelPath: "coverage", Kind: rules.Dir}))
	assert.True(t, set.Excluded(rules.Entry{Name: "secrets.env", RelPath: "secrets.env", Kind: rules.File}))
	assert.True(t, set.Excluded(rules.Entry{Name: "db.sqlite", RelPath: "db.sqlite", Kind: rules.File}))
	assert.True(t, set.Excluded(rules.Entry{Name: "a.csv", RelPath: "x/a.csv", Kind: rules.File}))
	assert.True(t, set.Excluded(rules.Entry{Name: "g.pdf", RelPath: "docs/g.pdf", Kind: rules.File}))
	assert.False(t, set.Excluded(rules.Entry{Name: "g.pdf", RelPath: "src/docs/g.pdf", Kind: rules.File}))
	// Built-ins still apply.
	assert.True(t, set.Excluded(rules.Entry{Name: ".git", RelPath: ".git", Kind: rules.Dir}))
}

func TestLoad_PartialConfig(t *testing.T) {
	writeConfig(t, `
[defaults]
progress_every = 10
`)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.Defaults.ProgressEvery)
	assert.Equal(t, 10, *cfg.Defaults.ProgressEvery)
	assert.Nil(t, cfg.Defaults.Verify)
	assert.Nil(t, cfg.Defaults.BWLimit)
}

func TestLoad_InvalidTOML(t *testing.T) {
	writeConfig(t, `[defaults
verify = true`)

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_UnknownKey(t *testing.T) {
	writeConfig(t, `
[defaults]
verfy = true
`)

	_, err := config.Load()
	var uk *config.UnknownKeysError
	require.ErrorAs(t, err, &uk)
	assert.Equal(t, []string{"defaults.verfy"}, uk.Keys)
	assert.Contains(t, err.Error(), "defaults.verfy")
}

func TestLoad_InvalidPatternSurfacesOnBuild(t *testing.T) {
	writeConfig(t, `
[rules]
exclude_patterns = ["[oops"]
`)

	cfg, err := config.Load()
	require.NoError(t, err)
	_, err = rules.New(cfg.Rules.Options()...)
	assert.ErrorIs(t, err, rules.ErrInvalidPattern)
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, "/custom/config/repoprep/config.toml", config.Path())
}

func TestPath_HomeFallback(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/dev")
	assert.Equal(t, "/home/dev/.config/repoprep/config.toml", config.Path())
}
