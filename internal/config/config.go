// Package config provides configuration loading for asminfo.
//
// Configuration lives in .asminfo/config.yml (or .yaml) at the project root.
// It carries the attribute settings used to build an attribute model, the
// glob patterns used to find assembly info files, and watch-mode tuning.
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Environment variables (ASMINFO_*)
//  2. Project config (.asminfo/config.yml)
//  3. Built-in defaults
//
// Environment Variable Convention:
//   - Prefix: ASMINFO_
//   - Nested fields: Use underscores (ASMINFO_ATTRIBUTES_VERSION)
//
// Example config:
//
//	attributes:
//	  title: Cake.Common
//	  version: 2.1.0.0
//	  com_visible: false
//	  internals_visible_to:
//	    - Cake.Common.Tests
//	  custom_attributes:
//	    - name: NeutralResourcesLanguage
//	      namespace: System.Resources
//	      value: en-US
//	  metadata_attributes:
//	    - key: RepositoryUrl
//	      value: https://github.com/cake-build/cake
package config

import (
	"github.com/mvp-joe/asminfo/internal/model"
)

// Config represents the complete asminfo configuration.
type Config struct {
	Attributes AttributesConfig `yaml:"attributes" mapstructure:"attributes"`
	Paths      PathsConfig      `yaml:"paths" mapstructure:"paths"`
	Watch      WatchConfig      `yaml:"watch" mapstructure:"watch"`
}

// AttributesConfig mirrors model.Settings. Nil fields are not emitted.
type AttributesConfig struct {
	Title                *string `yaml:"title" mapstructure:"title"`
	Description          *string `yaml:"description" mapstructure:"description"`
	Company              *string `yaml:"company" mapstructure:"company"`
	Product              *string `yaml:"product" mapstructure:"product"`
	Version              *string `yaml:"version" mapstructure:"version"`
	FileVersion          *string `yaml:"file_version" mapstructure:"file_version"`
	InformationalVersion *string `yaml:"informational_version" mapstructure:"informational_version"`
	Copyright            *string `yaml:"copyright" mapstructure:"copyright"`
	Trademark            *string `yaml:"trademark" mapstructure:"trademark"`
	Configuration        *string `yaml:"configuration" mapstructure:"configuration"`
	Guid                 *string `yaml:"guid" mapstructure:"guid"`
	ComVisible           *bool   `yaml:"com_visible" mapstructure:"com_visible"`
	CLSCompliant         *bool   `yaml:"cls_compliant" mapstructure:"cls_compliant"`

	InternalsVisibleTo []string                  `yaml:"internals_visible_to" mapstructure:"internals_visible_to"`
	CustomAttributes   []CustomAttributeConfig   `yaml:"custom_attributes" mapstructure:"custom_attributes"`
	MetadataAttributes []MetadataAttributeConfig `yaml:"metadata_attributes" mapstructure:"metadata_attributes"`
}

// CustomAttributeConfig declares a custom attribute. A string value is emitted
// as a string literal; any other value is emitted as its JSON encoding.
type CustomAttributeConfig struct {
	Name      string `yaml:"name" mapstructure:"name"`
	Namespace string `yaml:"namespace" mapstructure:"namespace"`
	Value     any    `yaml:"value" mapstructure:"value"`
}

// MetadataAttributeConfig declares a keyed attribute. Name and namespace
// default to AssemblyMetadata in System.Reflection.
type MetadataAttributeConfig struct {
	Name      string  `yaml:"name" mapstructure:"name"`
	Namespace string  `yaml:"namespace" mapstructure:"namespace"`
	Key       *string `yaml:"key" mapstructure:"key"`
	Value     *string `yaml:"value" mapstructure:"value"`
}

// PathsConfig defines which files are assembly info files and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for assembly info files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before re-parsing
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Include: []string{
				"**/AssemblyInfo.cs",
				"**/AssemblyInfo.vb",
			},
			Ignore: []string{
				"bin/**",
				"obj/**",
				".git/**",
				"packages/**",
				"node_modules/**",
			},
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
	}
}

// ToSettings converts the attributes section into model settings.
func (c *Config) ToSettings() *model.Settings {
	a := c.Attributes
	s := &model.Settings{
		Title:                a.Title,
		Description:          a.Description,
		Company:              a.Company,
		Product:              a.Product,
		Version:              a.Version,
		FileVersion:          a.FileVersion,
		InformationalVersion: a.InformationalVersion,
		Copyright:            a.Copyright,
		Trademark:            a.Trademark,
		Configuration:        a.Configuration,
		Guid:                 a.Guid,
		ComVisible:           a.ComVisible,
		CLSCompliant:         a.CLSCompliant,
		InternalsVisibleTo:   a.InternalsVisibleTo,
	}

	for _, ca := range a.CustomAttributes {
		s.CustomAttributes = append(s.CustomAttributes, &model.CustomAttribute{
			Name:      ca.Name,
			Namespace: ca.Namespace,
			Value:     attributeValue(ca.Value),
		})
	}

	for _, ma := range a.MetadataAttributes {
		attr := &model.MetadataAttribute{
			Name:      ma.Name,
			Namespace: ma.Namespace,
			Key:       ma.Key,
			Value:     ma.Value,
		}
		if attr.Name == "" {
			attr.Name = model.AttrMetadata
		}
		if attr.Namespace == "" {
			attr.Namespace = model.NamespaceReflection
		}
		s.MetadataAttributes = append(s.MetadataAttributes, attr)
	}

	return s
}

func attributeValue(v any) model.AttributeValue {
	if s, ok := v.(string); ok {
		return model.TextValue(s)
	}
	return model.StructuredValue(v)
}

// Merge overlays the attributes set in c onto base. Fields c leaves nil keep
// base's value. Collections are concatenated; the model builder dedups them
// with later entries winning.
func (c *Config) Merge(base *model.Settings) *model.Settings {
	over := c.ToSettings()
	if base == nil {
		return over
	}
	merged := *base
	pick(&merged.Title, over.Title)
	pick(&merged.Description, over.Description)
	pick(&merged.Company, over.Company)
	pick(&merged.Product, over.Product)
	pick(&merged.Version, over.Version)
	pick(&merged.FileVersion, over.FileVersion)
	pick(&merged.InformationalVersion, over.InformationalVersion)
	pick(&merged.Copyright, over.Copyright)
	pick(&merged.Trademark, over.Trademark)
	pick(&merged.Configuration, over.Configuration)
	pick(&merged.Guid, over.Guid)
	pick(&merged.ComVisible, over.ComVisible)
	pick(&merged.CLSCompliant, over.CLSCompliant)
	merged.InternalsVisibleTo = concat(base.InternalsVisibleTo, over.InternalsVisibleTo)
	merged.CustomAttributes = concat(base.CustomAttributes, over.CustomAttributes)
	merged.MetadataAttributes = concat(base.MetadataAttributes, over.MetadataAttributes)
	return &merged
}

func pick[T any](dst **T, v *T) {
	if v != nil {
		*dst = v
	}
}

func concat[T any](a, b []T) []T {
	if a == nil && b == nil {
		return nil
	}
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
