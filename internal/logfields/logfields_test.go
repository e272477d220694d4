package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Path", KeyPath, "/guide/", Path("/guide/")},
		{"File", KeyFile, "index.md", File("index.md")},
		{"Format", KeyFormat, "js", Format("js")},
		{"Locale", KeyLocale, "km", Locale("km")},
		{"Link", KeyLink, "/km/", Link("/km/")},
		{"Prefix", KeyPrefix, "/guide/postgresql/", Prefix("/guide/postgresql/")},
		{"Source", KeySource, "sidebar", Source("sidebar")},
		{"RunID", KeyRunID, "r1", RunID("r1")},
		{"URL", KeyURL, "nats://localhost:4222", URL("nats://localhost:4222")},
		{"Subject", KeySubject, "docsite.links.broken", Subject("docsite.links.broken")},
		{"Job", KeyJob, "link-check", Job("link-check")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if v := Count(3); v.Key != KeyCount || v.Value.Int64() != 3 {
		t.Fatalf("Count mismatch: %v", v)
	}
	if v := Duration(1500 * time.Microsecond); v.Key != KeyDurationMS || v.Value.Float64() != 1.5 {
		t.Fatalf("Duration mismatch: %v", v)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	if attr := Error(nil); attr.Key != KeyError || attr.Value.String() != "" {
		t.Fatalf("unexpected nil error attr: %v", attr)
	}
	if attr := Error(errors.New("err-test")); attr.Value.String() != "err-test" {
		t.Fatalf("expected 'err-test', got %s", attr.Value.String())
	}
}
