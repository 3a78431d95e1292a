package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mvp-joe/asminfo/internal/model"
)

// CustomAttributeMatch is an assembly attribute the parser does not know by
// name, with its raw argument text.
type CustomAttributeMatch struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ParseResult holds the attribute values found in an assembly info file.
// String fields carry the literal argument text; an empty field was not declared.
type ParseResult struct {
	Path    string `json:"path,omitempty"`
	Dialect string `json:"dialect"`

	CLSCompliant         string `json:"clsCompliant,omitempty"`
	Company              string `json:"company,omitempty"`
	ComVisible           string `json:"comVisible,omitempty"`
	Configuration        string `json:"configuration,omitempty"`
	Copyright            string `json:"copyright,omitempty"`
	Description          string `json:"description,omitempty"`
	FileVersion          string `json:"fileVersion"`
	Guid                 string `json:"guid,omitempty"`
	InformationalVersion string `json:"informationalVersion"`
	Product              string `json:"product,omitempty"`
	Title                string `json:"title,omitempty"`
	Trademark            string `json:"trademark,omitempty"`
	Version              string `json:"version"`

	InternalsVisibleTo []string               `json:"internalsVisibleTo"`
	CustomAttributes   []CustomAttributeMatch `json:"customAttributes"`
}

// IsCLSCompliant reports the CLSCompliant flag. ok is false when the attribute
// is missing or its argument is not a boolean literal.
func (r *ParseResult) IsCLSCompliant() (value, ok bool) {
	return parseBool(r.CLSCompliant)
}

// IsComVisible reports the ComVisible flag, like IsCLSCompliant.
func (r *ParseResult) IsComVisible() (value, ok bool) {
	return parseBool(r.ComVisible)
}

// Settings converts the result into model settings so the attributes of an
// existing file can be rebuilt. A custom argument that is one string literal
// becomes a text value; any other argument is kept as raw source text.
// AssemblyMetadata declarations with a key and value literal become metadata
// attributes.
func (r *ParseResult) Settings() *model.Settings {
	s := &model.Settings{
		Title:                optional(r.Title),
		Description:          optional(r.Description),
		Company:              optional(r.Company),
		Product:              optional(r.Product),
		Version:              optional(r.Version),
		FileVersion:          optional(r.FileVersion),
		InformationalVersion: optional(r.InformationalVersion),
		Copyright:            optional(r.Copyright),
		Trademark:            optional(r.Trademark),
		Configuration:        optional(r.Configuration),
		Guid:                 optional(r.Guid),
	}
	if v, ok := r.IsComVisible(); ok {
		s.ComVisible = &v
	}
	if v, ok := r.IsCLSCompliant(); ok {
		s.CLSCompliant = &v
	}
	if len(r.InternalsVisibleTo) > 0 {
		s.InternalsVisibleTo = append([]string(nil), r.InternalsVisibleTo...)
	}
	for _, c := range r.CustomAttributes {
		if strings.TrimSuffix(c.Name, "Attribute") == model.AttrMetadata {
			if m := metadataPair.FindStringSubmatch(c.Value); m != nil {
				s.MetadataAttributes = append(s.MetadataAttributes, model.NewMetadataAttribute(m[1], m[2]))
				continue
			}
		}
		s.CustomAttributes = append(s.CustomAttributes, &model.CustomAttribute{
			Name:  c.Name,
			Value: customValue(c.Value),
		})
	}
	return s
}

// Escape sequences stay as written; the model wraps values in quotes without
// re-escaping them.
var (
	stringLiteral = regexp.MustCompile(`^"((?:[^"\\]|\\.)*)"$`)
	metadataPair  = regexp.MustCompile(`^"((?:[^"\\]|\\.)*)"\s*,\s*"((?:[^"\\]|\\.)*)"$`)
)

// customValue maps raw argument text to a model value.
func customValue(raw string) model.AttributeValue {
	if m := stringLiteral.FindStringSubmatch(raw); m != nil {
		return model.TextValue(m[1])
	}
	return model.RawValue(raw)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseBool(s string) (bool, bool) {
	if s == "" {
		return false, false
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return v, true
}
