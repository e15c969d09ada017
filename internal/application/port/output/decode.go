package output

// FileDecoder turns a downloaded attachment into bounded text suitable for
// answer computation. Implementations pick the concrete decoder from the file
// extension; a decode failure is reported as an error and treated as missing
// content by callers, never as fatal.
type FileDecoder interface {
	Decode(path string) (string, error)
}
