package config

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// DefaultConfigFile is the configuration path used when -c is not given.
const DefaultConfigFile = "docsite.yaml"

// DefaultSiteFile is the site definition written next to the configuration by Init.
const DefaultSiteFile = "site.yaml"

const exampleConfig = `version: "1.0"

site:
  file: %s

content:
  dir: docs
  extensions: [".md"]

output:
  directory: .vitepress
  format: js

logging:
  level: info
  format: text

linkcheck:
  content_links: true
  # nats_url: ${NATS_URL}
  subject: docsite.links.broken
  # history_db: .docsite/history.db

schedule:
  # check_interval: 15m

metrics:
  # listen: ":9464"

git:
  detect_edit_link: false
  branch: main
`

// Init writes an example configuration file to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create config directory").
				WithContext("path", dir).Build()
		}
	}
	content := fmt.Sprintf(exampleConfig, DefaultSiteFile)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).Build()
	}
	return nil
}
