package watcher

import "context"

// FileWatcher monitors assembly info files for changes with debouncing.
type FileWatcher interface {
	// Start begins watching the root directory, calling callback with debounced file changes.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the file watcher and cleans up resources.
	Stop() error
}

// Matcher decides whether a changed path is worth reporting.
type Matcher func(path string) bool
