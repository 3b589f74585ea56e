package engine

import "fmt"

// MissingInputError reports a required input that does not exist.
type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input %s", e.Path)
}

// MalformedInputError reports an input that exists but cannot be used.
type MalformedInputError struct {
	Path   string
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %s: %s", e.Path, e.Reason)
}

// EmptyDatasetError reports a dataset with no usable rows after filtering.
type EmptyDatasetError struct {
	Dataset string
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("dataset %s has no rows", e.Dataset)
}
