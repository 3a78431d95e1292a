package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// AttributeModel is the normalized, deduplicated set of attributes built from
// Settings. It is what a writer needs to emit an assembly info file.
type AttributeModel struct {
	attributes         *Dictionary
	customAttributes   *Dictionary
	metadataAttributes *Dictionary
	namespaces         stringSet
	internalsVisibleTo *orderedSet
}

func newAttributeModel() *AttributeModel {
	return &AttributeModel{
		attributes:         newDictionary(),
		customAttributes:   newDictionary(),
		metadataAttributes: newDictionary(),
		namespaces:         make(stringSet),
		internalsVisibleTo: newOrderedSet(),
	}
}

// Build creates the attribute model for settings. Nil settings, nil fields and
// nil collection entries are skipped; Build never fails.
func Build(settings *Settings) *AttributeModel {
	m := newAttributeModel()
	if settings == nil {
		return m
	}

	m.addBool(NamespaceSystem, AttrCLSCompliant, settings.CLSCompliant)
	m.addString(NamespaceReflection, AttrCompany, settings.Company)
	m.addBool(NamespaceInteropServices, AttrComVisible, settings.ComVisible)
	m.addString(NamespaceReflection, AttrConfiguration, settings.Configuration)
	m.addString(NamespaceReflection, AttrCopyright, settings.Copyright)
	m.addString(NamespaceReflection, AttrDescription, settings.Description)
	m.addString(NamespaceReflection, AttrFileVersion, settings.FileVersion)
	m.addString(NamespaceInteropServices, AttrGuid, settings.Guid)
	m.addString(NamespaceReflection, AttrInformationalVersion, settings.InformationalVersion)
	m.addString(NamespaceReflection, AttrProduct, settings.Product)
	m.addString(NamespaceReflection, AttrTitle, settings.Title)
	m.addString(NamespaceReflection, AttrTrademark, settings.Trademark)
	m.addString(NamespaceReflection, AttrVersion, settings.Version)

	m.addInternalsVisibleTo(settings.InternalsVisibleTo)
	m.addCustomAttributes(settings.CustomAttributes)
	m.addMetadataAttributes(settings.MetadataAttributes)

	return m
}

// Attributes returns the well-known attributes keyed by attribute name.
func (m *AttributeModel) Attributes() *Dictionary { return m.attributes }

// CustomAttributes returns user-declared attributes keyed by attribute name.
func (m *AttributeModel) CustomAttributes() *Dictionary { return m.customAttributes }

// MetadataAttributes returns keyed attributes keyed by their quoted key.
func (m *AttributeModel) MetadataAttributes() *Dictionary { return m.metadataAttributes }

// Namespaces returns the namespaces required by the model, sorted.
func (m *AttributeModel) Namespaces() []string { return m.namespaces.sorted() }

// HasNamespace reports whether ns is required by the model.
func (m *AttributeModel) HasNamespace(ns string) bool { return m.namespaces.has(ns) }

// InternalsVisibleTo returns the InternalsVisibleTo declarations in the order
// they were first declared.
func (m *AttributeModel) InternalsVisibleTo() []string { return m.internalsVisibleTo.list() }

// MarshalJSON encodes the model for CLI and tool output.
func (m *AttributeModel) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Attributes         *Dictionary `json:"attributes"`
		CustomAttributes   *Dictionary `json:"customAttributes"`
		MetadataAttributes *Dictionary `json:"metadataAttributes"`
		Namespaces         []string    `json:"namespaces"`
		InternalsVisibleTo []string    `json:"internalsVisibleTo"`
	}{
		Attributes:         m.attributes,
		CustomAttributes:   m.customAttributes,
		MetadataAttributes: m.metadataAttributes,
		Namespaces:         m.Namespaces(),
		InternalsVisibleTo: m.InternalsVisibleTo(),
	})
}

func (m *AttributeModel) addBool(namespace, name string, value *bool) {
	if value == nil {
		return
	}
	m.add(m.attributes, namespace, name, strconv.FormatBool(*value))
}

func (m *AttributeModel) addString(namespace, name string, value *string) {
	if value == nil {
		return
	}
	m.add(m.attributes, namespace, name, quote(*value))
}

func (m *AttributeModel) addInternalsVisibleTo(names []string) {
	if names == nil {
		return
	}
	added := false
	for _, name := range names {
		if name == "" {
			continue
		}
		m.internalsVisibleTo.add(AttrInternalsVisibleTo + "(" + quote(unquote(name)) + ")")
		added = true
	}
	if added {
		m.namespaces.add(NamespaceCompilerServices)
	}
}

func (m *AttributeModel) addCustomAttributes(attrs []*CustomAttribute) {
	for _, attr := range attrs {
		if attr == nil || attr.Value.IsNull() {
			continue
		}
		value, ok := attr.Value.render()
		if !ok {
			continue
		}
		m.add(m.customAttributes, attr.Namespace, attr.Name, value)
	}
}

func (m *AttributeModel) addMetadataAttributes(attrs []*MetadataAttribute) {
	for _, attr := range attrs {
		if attr == nil || attr.Key == nil || attr.Value == nil {
			continue
		}
		m.add(m.metadataAttributes, attr.Namespace, quote(*attr.Key), quote(*attr.Value))
	}
}

// add is the only place a dictionary and the namespace set change together.
// Existing keys are overwritten; the namespace is recorded every time. An
// empty namespace means the attribute needs no import.
func (m *AttributeModel) add(dict *Dictionary, namespace, name, value string) {
	dict.set(name, value)
	if namespace != "" {
		m.namespaces.add(namespace)
	}
}

func quote(s string) string {
	return `"` + s + `"`
}

// unquote strips surrounding double quotes when s both starts and ends with one.
func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return strings.Trim(s, `"`)
	}
	return s
}
