package linkcheck

import "time"

// Source identifies where a checked link was declared.
type Source string

const (
	SourceNav     Source = "nav"
	SourceSidebar Source = "sidebar"
	SourceLocale  Source = "locale"
	SourceContent Source = "content"
)

// BrokenLink is a link whose target did not resolve to a page.
type BrokenLink struct {
	Source Source `json:"source"`
	// Path locates the link: a site configuration path or a content file path.
	Path   string `json:"path"`
	Target string `json:"target"`
	Reason string `json:"reason"`
}

// StalePage is a page whose recorded fingerprint no longer matches its content.
type StalePage struct {
	Path     string `json:"path"`
	Recorded string `json:"recorded"`
	Computed string `json:"computed"`
}

// Report summarizes one link check run. Stale pages are reported but do not
// fail the run.
type Report struct {
	RunID      string       `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Checked    int          `json:"checked"`
	Skipped    int          `json:"skipped"`
	Broken     []BrokenLink `json:"broken"`
	Stale      []StalePage  `json:"stale,omitempty"`
}

// OK reports whether no broken links were found.
func (r *Report) OK() bool { return len(r.Broken) == 0 }

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }
