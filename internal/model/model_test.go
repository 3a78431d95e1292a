package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for AttributeModel:
// - Build(nil) returns an empty model
// - Boolean settings render as true/false and record their namespace
// - String settings render double-quoted; nil strings add nothing
// - Re-adding an existing key overwrites without duplicating key or namespace
// - Dictionary keys compare case-insensitively and keep first spelling
// - InternalsVisibleTo strips quotes, formats fragments, adds CompilerServices once
// - InternalsVisibleTo with only empty entries adds no namespace
// - InternalsVisibleTo keeps declaration order, not sorted order
// - Custom attributes: text quoted, structured JSON-encoded, null skipped
// - Custom attributes with unencodable values are skipped
// - Raw custom values render their source text unchanged
// - Metadata attributes keyed by quoted key; nil key or value skipped
// - Title + version round-trip adds System.Reflection exactly once
// - MarshalJSON keeps insertion order

func TestBuild_NilSettings(t *testing.T) {
	t.Parallel()

	m := Build(nil)
	require.NotNil(t, m)
	assert.Equal(t, 0, m.Attributes().Len())
	assert.Equal(t, 0, m.CustomAttributes().Len())
	assert.Equal(t, 0, m.MetadataAttributes().Len())
	assert.Empty(t, m.Namespaces())
	assert.Empty(t, m.InternalsVisibleTo())
}

func TestBuild_BooleanAttributes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		settings  *Settings
		key       string
		want      string
		namespace string
	}{
		{"ComVisible true", &Settings{ComVisible: Ptr(true)}, AttrComVisible, "true", NamespaceInteropServices},
		{"ComVisible false", &Settings{ComVisible: Ptr(false)}, AttrComVisible, "false", NamespaceInteropServices},
		{"CLSCompliant true", &Settings{CLSCompliant: Ptr(true)}, AttrCLSCompliant, "true", NamespaceSystem},
		{"CLSCompliant false", &Settings{CLSCompliant: Ptr(false)}, AttrCLSCompliant, "false", NamespaceSystem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Build(tt.settings)

			got, ok := m.Attributes().Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{tt.namespace}, m.Namespaces())
		})
	}
}

func TestBuild_StringAttributes(t *testing.T) {
	t.Parallel()

	settings := &Settings{
		Title:                Ptr("Title"),
		Description:          Ptr("Description"),
		Company:              Ptr("Company"),
		Product:              Ptr("Product"),
		Version:              Ptr("1.0.0.0"),
		FileVersion:          Ptr("1.0.0.1"),
		InformationalVersion: Ptr("1.0.0-beta"),
		Copyright:            Ptr("Copyright (c) Company"),
		Trademark:            Ptr("Trademark"),
		Configuration:        Ptr("Release"),
		Guid:                 Ptr("00000000-0000-0000-0000-000000000000"),
	}

	m := Build(settings)

	expected := map[string]string{
		AttrTitle:                `"Title"`,
		AttrDescription:          `"Description"`,
		AttrCompany:              `"Company"`,
		AttrProduct:              `"Product"`,
		AttrVersion:              `"1.0.0.0"`,
		AttrFileVersion:          `"1.0.0.1"`,
		AttrInformationalVersion: `"1.0.0-beta"`,
		AttrCopyright:            `"Copyright (c) Company"`,
		AttrTrademark:            `"Trademark"`,
		AttrConfiguration:        `"Release"`,
		AttrGuid:                 `"00000000-0000-0000-0000-000000000000"`,
	}
	assert.Equal(t, len(expected), m.Attributes().Len())
	for key, want := range expected {
		got, ok := m.Attributes().Get(key)
		require.True(t, ok, "missing %s", key)
		assert.Equal(t, want, got, key)
	}
	assert.Equal(t, []string{NamespaceReflection, NamespaceInteropServices}, m.Namespaces())
}

func TestBuild_NilStringAddsNothing(t *testing.T) {
	t.Parallel()

	m := Build(&Settings{Company: Ptr("Acme")})

	_, ok := m.Attributes().Get(AttrTitle)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Attributes().Len())
	assert.Equal(t, []string{NamespaceReflection}, m.Namespaces())
}

func TestBuild_EmptyStringIsQuoted(t *testing.T) {
	t.Parallel()

	m := Build(&Settings{Trademark: Ptr("")})

	got, ok := m.Attributes().Get(AttrTrademark)
	require.True(t, ok)
	assert.Equal(t, `""`, got)
}

func TestAdd_OverwritesExistingKey(t *testing.T) {
	t.Parallel()

	m := Build(&Settings{Title: Ptr("First")})
	m.add(m.attributes, NamespaceReflection, AttrTitle, `"Second"`)
	m.add(m.attributes, NamespaceReflection, AttrTitle, `"Second"`)

	got, ok := m.Attributes().Get(AttrTitle)
	require.True(t, ok)
	assert.Equal(t, `"Second"`, got)
	assert.Equal(t, 1, m.Attributes().Len())
	assert.Equal(t, []string{NamespaceReflection}, m.Namespaces())
}

func TestAdd_CaseInsensitiveKeys(t *testing.T) {
	t.Parallel()

	m := newAttributeModel()
	m.add(m.customAttributes, "My.Namespace", "MyAttribute", `"a"`)
	m.add(m.customAttributes, "My.Namespace", "MYATTRIBUTE", `"b"`)

	assert.Equal(t, []string{"MyAttribute"}, m.CustomAttributes().Keys())
	got, ok := m.CustomAttributes().Get("myattribute")
	require.True(t, ok)
	assert.Equal(t, `"b"`, got)
}

func TestBuild_InternalsVisibleTo(t *testing.T) {
	t.Parallel()

	m := Build(&Settings{
		InternalsVisibleTo: []string{"Assembly.Tests", `"Quoted.Tests"`, "", "Assembly.Tests"},
	})

	assert.Equal(t, []string{
		`InternalsVisibleTo("Assembly.Tests")`,
		`InternalsVisibleTo("Quoted.Tests")`,
	}, m.InternalsVisibleTo())
	assert.Equal(t, []string{NamespaceCompilerServices}, m.Namespaces())
}

func TestBuild_InternalsVisibleToEmptyEntries(t *testing.T) {
	t.Parallel()

	m := Build(&Settings{InternalsVisibleTo: []string{""}})

	assert.Empty(t, m.InternalsVisibleTo())
	assert.False(t, m.HasNamespace(NamespaceCompilerServices))
}

func TestBuild_InternalsVisibleToDeclarationOrder(t *testing.T) {
	t.Parallel()

	m := Build(&Settings{
		InternalsVisibleTo: []string{"Zeta.Tests", "Alpha.Tests", "Mid.Tests", "Alpha.Tests"},
	})

	assert.Equal(t, []string{
		`InternalsVisibleTo("Zeta.Tests")`,
		`InternalsVisibleTo("Alpha.Tests")`,
		`InternalsVisibleTo("Mid.Tests")`,
	}, m.InternalsVisibleTo())

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"internalsVisibleTo":["InternalsVisibleTo(\"Zeta.Tests\")","InternalsVisibleTo(\"Alpha.Tests\")","InternalsVisibleTo(\"Mid.Tests\")"]`)
}

func TestBuild_InternalsVisibleToKeepsLoneQuote(t *testing.T) {
	t.Parallel()

	m := Build(&Settings{InternalsVisibleTo: []string{`"Unbalanced`}})

	assert.Equal(t, []string{`InternalsVisibleTo(""Unbalanced")`}, m.InternalsVisibleTo())
}

func TestBuild_CustomAttributes(t *testing.T) {
	t.Parallel()

	m := Build(&Settings{
		CustomAttributes: []*CustomAttribute{
			{Name: "TextAttribute", Namespace: "Text.Namespace", Value: TextValue("hello")},
			{Name: "NumberAttribute", Namespace: "Number.Namespace", Value: StructuredValue(42)},
			{Name: "ListAttribute", Namespace: "List.Namespace", Value: StructuredValue([]string{"a", "b"})},
			{Name: "NullAttribute", Namespace: "Null.Namespace"},
			nil,
		},
	})

	custom := m.CustomAttributes()
	assert.Equal(t, []string{"TextAttribute", "NumberAttribute", "ListAttribute"}, custom.Keys())

	text, _ := custom.Get("TextAttribute")
	assert.Equal(t, `"hello"`, text)
	number, _ := custom.Get("NumberAttribute")
	assert.Equal(t, "42", number)
	list, _ := custom.Get("ListAttribute")
	assert.Equal(t, `["a","b"]`, list)

	assert.Equal(t, []string{"List.Namespace", "Number.Namespace", "Text.Namespace"}, m.Namespaces())
}

func TestBuild_CustomAttributeUnencodable(t *testing.T) {
	t.Parallel()

	m := Build(&Settings{
		CustomAttributes: []*CustomAttribute{
			{Name: "ChanAttribute", Namespace: "Chan.Namespace", Value: StructuredValue(make(chan int))},
		},
	})

	assert.Equal(t, 0, m.CustomAttributes().Len())
	assert.Empty(t, m.Namespaces())
}

func TestBuild_CustomAttributeRawValue(t *testing.T) {
	t.Parallel()

	m := Build(&Settings{
		CustomAttributes: []*CustomAttribute{
			{Name: "TypeAttribute", Namespace: "Type.Namespace", Value: RawValue("typeof(Foo)")},
			{Name: "FlagsAttribute", Value: RawValue("Flags.A | Flags.B")},
			{Name: "EmptyAttribute", Namespace: "Empty.Namespace", Value: RawValue("")},
		},
	})

	custom := m.CustomAttributes()
	assert.Equal(t, []string{"TypeAttribute", "FlagsAttribute"}, custom.Keys())
	typ, _ := custom.Get("TypeAttribute")
	assert.Equal(t, "typeof(Foo)", typ)
	flags, _ := custom.Get("FlagsAttribute")
	assert.Equal(t, "Flags.A | Flags.B", flags)
	assert.Equal(t, []string{"Type.Namespace"}, m.Namespaces())
	assert.True(t, RawValue("").IsNull())
}

func TestBuild_MetadataAttributes(t *testing.T) {
	t.Parallel()

	m := Build(&Settings{
		MetadataAttributes: []*MetadataAttribute{
			NewMetadataAttribute("RepositoryUrl", "https://example.com/repo"),
			{Name: AttrMetadata, Namespace: NamespaceReflection, Key: Ptr("NoValue")},
			{Name: AttrMetadata, Namespace: NamespaceReflection, Value: Ptr("NoKey")},
			nil,
			NewMetadataAttribute("RepositoryUrl", "https://example.com/other"),
		},
	})

	meta := m.MetadataAttributes()
	assert.Equal(t, []string{`"RepositoryUrl"`}, meta.Keys())
	got, _ := meta.Get(`"RepositoryUrl"`)
	assert.Equal(t, `"https://example.com/other"`, got)
	assert.Equal(t, []string{NamespaceReflection}, m.Namespaces())
}

func TestBuild_TitleAndVersion(t *testing.T) {
	t.Parallel()

	m := Build(&Settings{Title: Ptr("X"), Version: Ptr("1.2.3.4")})

	title, ok := m.Attributes().Get("AssemblyTitle")
	require.True(t, ok)
	assert.Equal(t, `"X"`, title)

	version, ok := m.Attributes().Get("AssemblyVersion")
	require.True(t, ok)
	assert.Equal(t, `"1.2.3.4"`, version)

	assert.Equal(t, []string{"System.Reflection"}, m.Namespaces())
}

func TestAttributeModel_MarshalJSON(t *testing.T) {
	t.Parallel()

	m := Build(&Settings{
		Version:            Ptr("2.0.0.0"),
		Title:              Ptr("App"),
		ComVisible:         Ptr(false),
		InternalsVisibleTo: []string{"App.Tests"},
	})

	data, err := json.Marshal(m)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"attributes": {"ComVisible": "false", "AssemblyTitle": "\"App\"", "AssemblyVersion": "\"2.0.0.0\""},
		"customAttributes": {},
		"metadataAttributes": {},
		"namespaces": ["System.Reflection", "System.Runtime.CompilerServices", "System.Runtime.InteropServices"],
		"internalsVisibleTo": ["InternalsVisibleTo(\"App.Tests\")"]
	}`, string(data))
	assert.Contains(t, string(data), `{"ComVisible":"false","AssemblyTitle":"\"App\"","AssemblyVersion":"\"2.0.0.0\""}`)
}
