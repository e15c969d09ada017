package entity

// SubmissionResult is the endpoint's verdict for one submission attempt.
type SubmissionResult struct {
	Correct bool   `json:"correct"`
	NextURL string `json:"url,omitempty"`
	Reason  string `json:"reason,omitempty"`

	// Transport is set when the verdict is synthetic (non-200 status,
	// malformed body, or a failed request) rather than an authoritative
	// "wrong answer". The loop treats both identically; only logs differ.
	Transport bool `json:"-"`
}
