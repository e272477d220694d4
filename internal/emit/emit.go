// Package emit writes the encoded site configuration to disk.
package emit

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// Filename is the default output file name for format.
func Filename(format site.Format) string {
	return "config." + format.Extension()
}

// Write encodes s in format and atomically replaces dir/filename with it.
// An empty filename selects Filename(format). A file whose content is already
// identical is left untouched.
func Write(dir, filename string, s *site.Site, format site.Format) (string, error) {
	if filename == "" {
		filename = Filename(format)
	}
	target := filepath.Join(dir, filename)

	var buf bytes.Buffer
	if err := site.Encode(&buf, s, format); err != nil {
		return "", errors.WrapError(err, errors.CategoryInternal, "failed to encode site configuration").
			WithContext("format", string(format)).Build()
	}

	// #nosec G304 -- target is derived from operator configuration
	if existing, err := os.ReadFile(target); err == nil && bytes.Equal(existing, buf.Bytes()) {
		slog.Debug("Site configuration unchanged", logfields.Path(target))
		return target, nil
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to create output directory").
			WithContext("path", dir).Build()
	}
	if err := writeAtomic(target, buf.Bytes()); err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to write site configuration").
			WithContext("path", target).Build()
	}
	slog.Info("Wrote site configuration", logfields.Path(target), logfields.Format(string(format)))
	return target, nil
}

// writeAtomic writes data to a temp file next to target and renames it into place.
func writeAtomic(target string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", err)
	}
	// #nosec G302 -- generated config is read by the site toolchain
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		cleanup()
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
