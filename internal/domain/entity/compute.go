package entity

// ComputeInput is the context handed to the answer-computation capability.
type ComputeInput struct {
	Instructions string
	// FileContents maps filename to decoded textual content, already capped.
	FileContents map[string]string
	// HTMLExcerpt is a bounded slice of the page source, for tasks whose
	// answer hides in markup rather than visible text.
	HTMLExcerpt string
	// Retry signals that a previous answer was rejected and the capability
	// should diversify its approach.
	Retry bool
}
