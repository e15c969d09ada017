package entity

import "time"

type SessionStatus string

const (
	StatusRunning SessionStatus = "running"
	StatusSuccess SessionStatus = "success"
	StatusFailed  SessionStatus = "failed"
	StatusTimeout SessionStatus = "timeout"
)

// PageTask is everything the Extraction Engine recovered from one quiz page.
type PageTask struct {
	SourceURL    string
	Instructions string
	HTML         string

	// SubmitURL is empty only when no strategy matched and the page did not
	// look like a terminal results page. SubmitAssumed marks the synthesized
	// {domain}/submit last resort, which is a guess rather than a discovery.
	SubmitURL     string
	SubmitAssumed bool

	// Terminal is set when the page has no discoverable endpoint but its text
	// says the chain is already complete.
	Terminal bool

	// Schema maps expected payload field names to whatever placeholder the
	// page advertised. Empty means the canonical {email, secret, answer} set.
	Schema map[string]any

	// Files maps attachment filename to its downloaded path in the session
	// temp dir.
	Files map[string]string
}

// SolveRequest is one solve invocation handed over by the front door. The
// secret is pre-validated there; the solver only forwards it in payloads.
type SolveRequest struct {
	SessionID string
	Email     string
	Secret    string
	URL       string
	Deadline  time.Time
}

type SolveResult struct {
	SessionID     string        `json:"request_id"`
	Status        SessionStatus `json:"status"`
	Hops          int           `json:"attempts"`
	FailureReason string        `json:"reason,omitempty"`
	TimeRemaining float64       `json:"time_remaining"`
}
