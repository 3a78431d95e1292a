package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidGuid indicates the guid attribute is not a UUID
	ErrInvalidGuid = errors.New("invalid guid")

	// ErrInvalidVersion indicates a malformed assembly or file version
	ErrInvalidVersion = errors.New("invalid version")

	// ErrInvalidCustomAttribute indicates a custom attribute without name or namespace
	ErrInvalidCustomAttribute = errors.New("invalid custom attribute")

	// ErrInvalidMetadataAttribute indicates a metadata attribute without key
	ErrInvalidMetadataAttribute = errors.New("invalid metadata attribute")

	// ErrEmptyInclude indicates no include patterns were configured
	ErrEmptyInclude = errors.New("empty include patterns")

	// ErrInvalidDebounce indicates a negative watch debounce
	ErrInvalidDebounce = errors.New("invalid debounce")
)

// assemblyVersionPattern accepts major[.minor[.build[.revision]]]. Either build
// or revision may be "*", and a "*" must be the last component.
var assemblyVersionPattern = regexp.MustCompile(`^\d+(\.\d+(\.(\*|\d+(\.(\d+|\*))?))?)?$`)

// fileVersionPattern is assemblyVersionPattern without wildcards.
var fileVersionPattern = regexp.MustCompile(`^\d+(\.\d+){0,3}$`)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := ValidateAttributes(&cfg.Attributes); err != nil {
		errs = append(errs, err)
	}

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if err := validateWatch(&cfg.Watch); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// ValidateAttributes checks the attributes section on its own.
func ValidateAttributes(cfg *AttributesConfig) error {
	var errs []error

	if cfg.Guid != nil {
		if _, err := uuid.Parse(*cfg.Guid); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q is not a UUID", ErrInvalidGuid, *cfg.Guid))
		}
	}

	if cfg.Version != nil && !assemblyVersionPattern.MatchString(*cfg.Version) {
		errs = append(errs, fmt.Errorf("%w: version %q must be major[.minor[.build[.revision]]]", ErrInvalidVersion, *cfg.Version))
	}

	if cfg.FileVersion != nil && !fileVersionPattern.MatchString(*cfg.FileVersion) {
		errs = append(errs, fmt.Errorf("%w: file_version %q must be up to four numeric parts", ErrInvalidVersion, *cfg.FileVersion))
	}

	for i, ca := range cfg.CustomAttributes {
		if strings.TrimSpace(ca.Name) == "" {
			errs = append(errs, fmt.Errorf("%w: custom_attributes[%d] has no name", ErrInvalidCustomAttribute, i))
		}
		if strings.TrimSpace(ca.Namespace) == "" {
			errs = append(errs, fmt.Errorf("%w: custom_attributes[%d] has no namespace", ErrInvalidCustomAttribute, i))
		}
	}

	for i, ma := range cfg.MetadataAttributes {
		if ma.Key == nil || strings.TrimSpace(*ma.Key) == "" {
			errs = append(errs, fmt.Errorf("%w: metadata_attributes[%d] has no key", ErrInvalidMetadataAttribute, i))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	if len(cfg.Include) == 0 {
		return fmt.Errorf("%w: at least one include pattern required", ErrEmptyInclude)
	}
	return nil
}

func validateWatch(cfg *WatchConfig) error {
	if cfg.DebounceMs < 0 {
		return fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.DebounceMs)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	verbs := make([]string, len(errs))
	args := make([]any, len(errs))
	for i, err := range errs {
		verbs[i] = "%w"
		args[i] = err
	}

	return fmt.Errorf("validation failed:\n  - "+strings.Join(verbs, "\n  - "), args...)
}
