package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyFile       = "file"
	KeyFormat     = "format"
	KeyLocale     = "locale"
	KeyLink       = "link"
	KeyPrefix     = "prefix"
	KeySource     = "source"
	KeyRunID      = "run_id"
	KeyCount      = "count"
	KeyURL        = "url"
	KeySubject    = "subject"
	KeyJob        = "job"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr      { return slog.String(KeyPath, p) }
func File(f string) slog.Attr      { return slog.String(KeyFile, f) }
func Format(f string) slog.Attr    { return slog.String(KeyFormat, f) }
func Locale(l string) slog.Attr    { return slog.String(KeyLocale, l) }
func Link(l string) slog.Attr      { return slog.String(KeyLink, l) }
func Prefix(p string) slog.Attr    { return slog.String(KeyPrefix, p) }
func Source(s string) slog.Attr    { return slog.String(KeySource, s) }
func RunID(id string) slog.Attr    { return slog.String(KeyRunID, id) }
func Count(n int) slog.Attr        { return slog.Int(KeyCount, n) }
func URL(u string) slog.Attr       { return slog.String(KeyURL, u) }
func Subject(s string) slog.Attr   { return slog.String(KeySubject, s) }
func Job(name string) slog.Attr    { return slog.String(KeyJob, name) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d)/float64(time.Millisecond))
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
