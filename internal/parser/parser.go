package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/mvp-joe/asminfo/internal/model"
)

// Parser reads assembly info files and extracts their attribute values.
type Parser struct {
	fs  afero.Fs
	env Environment
}

// New creates a parser that looks files up in fs, resolving relative paths
// against env.
func New(fs afero.Fs, env Environment) *Parser {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if env == nil {
		env = OSEnvironment{}
	}
	return &Parser{fs: fs, env: env}
}

// byteOrderMark is stripped from the start of content so the first line still
// matches line-anchored patterns.
const byteOrderMark = "\ufeff"

// Parse reads the file at path and extracts its assembly attributes. A path
// that does not exist or names a directory fails with SourceNotFoundError;
// other stat and read failures are returned wrapped. Unmatched attributes just
// leave their fields empty.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	abs := resolve(p.env, path)
	info, err := p.fs.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &SourceNotFoundError{Path: abs}
		}
		return nil, fmt.Errorf("failed to stat %s: %w", abs, err)
	}
	if info.IsDir() {
		return nil, &SourceNotFoundError{Path: abs}
	}

	content, err := p.read(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", abs, err)
	}

	result := ParseText(content, DialectForPath(abs))
	result.Path = abs
	return result, nil
}

func (p *Parser) read(path string) (string, error) {
	f, err := p.fs.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseText extracts assembly attributes from content written in dialect.
func ParseText(content string, dialect Dialect) *ParseResult {
	content = strings.TrimPrefix(content, byteOrderMark)
	s := dialect.syntax()

	return &ParseResult{
		Dialect:              dialect.String(),
		CLSCompliant:         parseSingle(s.unquoted, model.AttrCLSCompliant, content),
		Company:              parseSingle(s.quoted, model.AttrCompany, content),
		ComVisible:           parseSingle(s.unquoted, model.AttrComVisible, content),
		Configuration:        parseSingle(s.quoted, model.AttrConfiguration, content),
		Copyright:            parseSingle(s.quoted, model.AttrCopyright, content),
		Description:          parseSingle(s.quoted, model.AttrDescription, content),
		FileVersion:          orDefault(parseSingle(s.quoted, model.AttrFileVersion, content)),
		Guid:                 parseSingle(s.quoted, model.AttrGuid, content),
		InformationalVersion: orDefault(parseSingle(s.quoted, model.AttrInformationalVersion, content)),
		Product:              parseSingle(s.quoted, model.AttrProduct, content),
		Title:                parseSingle(s.quoted, model.AttrTitle, content),
		Trademark:            parseSingle(s.quoted, model.AttrTrademark, content),
		Version:              orDefault(parseSingle(s.quoted, model.AttrVersion, content)),
		InternalsVisibleTo:   parseMultiple(s.quoted, model.AttrInternalsVisibleTo, content),
		CustomAttributes:     parseCustom(content, model.KnownAttributes),
	}
}

// parseMultiple returns the captured argument of every match of template
// instantiated for name, skipping blank captures. Templates with alternative
// literal forms capture into separate groups; the first non-empty one wins.
func parseMultiple(template, name, content string) []string {
	re := sharedPatterns.compile(patternFor(template, regexp.QuoteMeta(name)))

	values := []string{}
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		value := firstCapture(m[1:])
		if strings.TrimSpace(value) == "" {
			continue
		}
		values = append(values, value)
	}
	return values
}

func firstCapture(groups []string) string {
	for _, g := range groups {
		if g != "" {
			return g
		}
	}
	return ""
}

// parseSingle returns the first value parseMultiple finds, or "".
func parseSingle(template, name, content string) string {
	values := parseMultiple(template, name, content)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// parseCustom returns every declaration whose name is not one of known, in
// document order. A trailing Attribute suffix is ignored when comparing names.
func parseCustom(content string, known []string) []CustomAttributeMatch {
	excluded := make(map[string]bool, len(known))
	for _, name := range known {
		excluded[name] = true
	}

	re := sharedPatterns.compile(customPattern)

	matches := []CustomAttributeMatch{}
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		name, value := m[1], m[2]
		if excluded[strings.TrimSuffix(name, "Attribute")] {
			continue
		}
		if strings.TrimSpace(value) == "" {
			continue
		}
		matches = append(matches, CustomAttributeMatch{Name: name, Value: value})
	}
	return matches
}

func orDefault(version string) string {
	if version == "" {
		return model.DefaultVersion
	}
	return version
}
