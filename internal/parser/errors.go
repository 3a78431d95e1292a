package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound indicates the assembly info file does not exist
	ErrSourceNotFound = errors.New("assembly info file not found")

	// ErrEmptyPath indicates Parse was called without a path
	ErrEmptyPath = errors.New("assembly info path is required")
)

// SourceNotFoundError reports a missing assembly info file. Path is the
// resolved absolute path that was looked up.
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("assembly info file %q does not exist", e.Path)
}

// Is lets errors.Is(err, ErrSourceNotFound) match.
func (e *SourceNotFoundError) Is(target error) bool {
	return target == ErrSourceNotFound
}
