package entity

// RenderedPage is the snapshot a renderer produces for one URL: the final
// location after redirects, the serialized DOM after scripts ran, and the
// visible body text. All downstream queries operate on this snapshot.
type RenderedPage struct {
	URL      string
	Title    string
	HTML     string
	BodyText string
}
