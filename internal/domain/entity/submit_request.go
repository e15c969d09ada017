package entity

// SubmitRequest is one submission attempt: the task whose endpoint and schema
// drive payload construction, the caller's credentials, and the formatted
// answer value.
type SubmitRequest struct {
	Task   *PageTask
	Email  string
	Secret string
	Answer any
}
