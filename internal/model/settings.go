package model

import "encoding/json"

// Settings describes the attributes a generated assembly info file should carry.
// A nil field means "not set" and produces no attribute.
type Settings struct {
	Title                *string
	Description          *string
	Company              *string
	Product              *string
	Version              *string
	FileVersion          *string
	InformationalVersion *string
	Copyright            *string
	Trademark            *string
	Configuration        *string
	Guid                 *string
	ComVisible           *bool
	CLSCompliant         *bool

	// InternalsVisibleTo holds friend assembly names. Surrounding quotes are
	// stripped; empty entries are skipped.
	InternalsVisibleTo []string

	CustomAttributes   []*CustomAttribute
	MetadataAttributes []*MetadataAttribute
}

// CustomAttribute is a user-declared attribute with a single constructor argument.
type CustomAttribute struct {
	Name      string
	Namespace string
	Value     AttributeValue
}

// MetadataAttribute is a keyed attribute such as AssemblyMetadata("key", "value").
type MetadataAttribute struct {
	Name      string
	Namespace string
	Key       *string
	Value     *string
}

// NewMetadataAttribute returns an AssemblyMetadata attribute for key and value.
func NewMetadataAttribute(key, value string) *MetadataAttribute {
	return &MetadataAttribute{
		Name:      AttrMetadata,
		Namespace: NamespaceReflection,
		Key:       &key,
		Value:     &value,
	}
}

type valueKind int

const (
	kindNull valueKind = iota
	kindText
	kindStructured
	kindRaw
)

// AttributeValue is text, rendered as a quoted string literal, a structured
// value rendered through its JSON encoding, or raw source text rendered as is.
// The zero value is null.
type AttributeValue struct {
	kind       valueKind
	text       string
	structured any
}

// TextValue wraps a string argument.
func TextValue(s string) AttributeValue {
	return AttributeValue{kind: kindText, text: s}
}

// StructuredValue wraps an arbitrary value. A nil v yields the null value.
func StructuredValue(v any) AttributeValue {
	if v == nil {
		return AttributeValue{}
	}
	return AttributeValue{kind: kindStructured, structured: v}
}

// RawValue wraps argument source text such as typeof(Foo) or 42. An empty
// s yields the null value.
func RawValue(s string) AttributeValue {
	if s == "" {
		return AttributeValue{}
	}
	return AttributeValue{kind: kindRaw, text: s}
}

// IsNull reports whether the value is absent.
func (v AttributeValue) IsNull() bool {
	return v.kind == kindNull
}

// IsText reports whether the value is a plain string.
func (v AttributeValue) IsText() bool {
	return v.kind == kindText
}

// render returns the constructor argument text for the value.
func (v AttributeValue) render() (string, bool) {
	switch v.kind {
	case kindText:
		return quote(v.text), true
	case kindStructured:
		data, err := json.Marshal(v.structured)
		if err != nil {
			return "", false
		}
		return string(data), true
	case kindRaw:
		return v.text, true
	default:
		return "", false
	}
}

// String returns the rendered argument, or "" for null and unencodable values.
func (v AttributeValue) String() string {
	s, _ := v.render()
	return s
}

// Ptr returns a pointer to v. Handy for filling Settings literals.
func Ptr[T any](v T) *T {
	return &v
}
