package parser

import (
	"os"
	"path/filepath"
)

// Environment supplies the working directory relative paths resolve against.
type Environment interface {
	WorkingDirectory() string
}

// OSEnvironment resolves against the process working directory.
type OSEnvironment struct{}

// WorkingDirectory returns the process working directory, or "." if it
// cannot be determined.
func (OSEnvironment) WorkingDirectory() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// FixedEnvironment resolves against a fixed directory.
type FixedEnvironment string

func (e FixedEnvironment) WorkingDirectory() string {
	return string(e)
}

// resolve makes path absolute using env.
func resolve(env Environment, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(env.WorkingDirectory(), path)
}
