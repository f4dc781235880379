package source

import "fmt"

// NotFoundError reports a referenced file or credential path that does not
// exist. It is fatal for that source's run and never corrupts other runs.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no such file: %s", e.Path)
}

// ReadError reports content that is empty or malformed for its format, or a
// remote API that could not be reached.
type ReadError struct {
	Source string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
