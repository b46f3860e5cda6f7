package models

// Candidate identifies one job posting surfaced on a search-results page.
// DetailURL is derived from ID, so two candidates with the same ID are the
// same posting.
type Candidate struct {
	ID        string
	DetailURL string
	// TitleSnippet is the listing-card display text. Used only for the
	// keyword gate during discovery; not persisted.
	TitleSnippet string
}

// Detail holds the fields extracted from a posting's detail page.
// Either field may be empty when its element could not be located.
type Detail struct {
	Title  string
	Skills string
}

// JobRecord is one output row of a run.
type JobRecord struct {
	DetailURL string `json:"detailUrl"`
	Title     string `json:"title"`
	Skills    string `json:"skills"`
	Applied   bool   `json:"applied"`
}

// AppliedLabel renders the Applied flag the way the report expects it.
func (r JobRecord) AppliedLabel() string {
	if r.Applied {
		return "yes"
	}
	return "no"
}

// Mode is the run-wide application policy.
type Mode string

const (
	ModeAuto       Mode = "auto"
	ModeSupervised Mode = "supervised"
)

// ParseMode maps the operator's menu choice to a Mode. Anything other than
// the two known choices is passed through verbatim; the workflow treats an
// unrecognized mode as "never apply".
func ParseMode(choice string) Mode {
	switch choice {
	case "1", string(ModeAuto):
		return ModeAuto
	case "2", string(ModeSupervised):
		return ModeSupervised
	default:
		return Mode(choice)
	}
}

// RunResult is the aggregated outcome of one pass over the discovery sequence.
type RunResult struct {
	Discovered int
	Skipped    int
	Records    []JobRecord
	Err        error
}
