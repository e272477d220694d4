package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

func TestLoadSite_DefaultWhenUnset(t *testing.T) {
	s, err := LoadSite(Defaults())
	require.NoError(t, err)
	assert.Equal(t, site.Default(), s)
}

func TestLoadSite_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	f, err := os.Create(path)
	require.NoError(t, err)
	want := site.Default()
	want.Title = "Custom"
	require.NoError(t, site.Encode(f, want, site.FormatYAML))
	require.NoError(t, f.Close())

	cfg := Defaults()
	cfg.baseDir = dir
	cfg.Site.File = "site.yaml"

	got, err := LoadSite(cfg)
	require.NoError(t, err)
	assert.Equal(t, "Custom", got.Title)
	assert.Equal(t, want.Locales.Keys(), got.Locales.Keys())
}

func TestLoadSite_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.json"), `{"title": "x", "unknown": 1}`)

	cfg := Defaults()
	cfg.baseDir = dir

	cfg.Site.File = "missing.yaml"
	_, err := LoadSite(cfg)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))

	cfg.Site.File = "bad.json"
	_, err = LoadSite(cfg)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	cfg.Site.File = "site.toml"
	_, err = LoadSite(cfg)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultConfigFile)

	require.NoError(t, Init(path, false))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSiteFile, cfg.Site.File)
	assert.Equal(t, "docs", cfg.Content.Dir)

	err = Init(path, false)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))

	require.NoError(t, Init(path, true))
}
