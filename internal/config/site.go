package config

import (
	"os"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// LoadSite returns the site definition referenced by site.file, or the built-in
// default site when no file is configured.
func LoadSite(cfg *Config) (*site.Site, error) {
	if cfg.Site.File == "" {
		return site.Default(), nil
	}
	path := cfg.ResolvePath(cfg.Site.File)
	format, err := site.FormatFromPath(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "unsupported site file").WithContext("path", path).Build()
	}
	// #nosec G304 -- path supplied by the operator
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("site file not found").WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open site file").WithContext("path", path).Build()
	}
	defer func() { _ = f.Close() }()

	s, err := site.Decode(f, format)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid site file").WithContext("path", path).Build()
	}
	return s, nil
}
