package model

// Well-known attribute names, without the Attribute suffix.
const (
	AttrTitle                = "AssemblyTitle"
	AttrDescription          = "AssemblyDescription"
	AttrCompany              = "AssemblyCompany"
	AttrProduct              = "AssemblyProduct"
	AttrVersion              = "AssemblyVersion"
	AttrFileVersion          = "AssemblyFileVersion"
	AttrInformationalVersion = "AssemblyInformationalVersion"
	AttrCopyright            = "AssemblyCopyright"
	AttrTrademark            = "AssemblyTrademark"
	AttrConfiguration        = "AssemblyConfiguration"
	AttrGuid                 = "Guid"
	AttrComVisible           = "ComVisible"
	AttrCLSCompliant         = "CLSCompliant"
	AttrInternalsVisibleTo   = "InternalsVisibleTo"
	AttrMetadata             = "AssemblyMetadata"
)

// Namespaces that own the well-known attributes.
const (
	NamespaceSystem           = "System"
	NamespaceReflection       = "System.Reflection"
	NamespaceInteropServices  = "System.Runtime.InteropServices"
	NamespaceCompilerServices = "System.Runtime.CompilerServices"
)

// DefaultVersion is reported for version attributes that are not declared.
const DefaultVersion = "1.0.0.0"

// KnownAttributes lists every attribute name the parser extracts by name.
// Anything else found in a source file is reported as a custom attribute.
var KnownAttributes = []string{
	AttrCLSCompliant,
	AttrCompany,
	AttrComVisible,
	AttrConfiguration,
	AttrCopyright,
	AttrDescription,
	AttrFileVersion,
	AttrGuid,
	AttrInformationalVersion,
	AttrProduct,
	AttrTitle,
	AttrTrademark,
	AttrVersion,
	AttrInternalsVisibleTo,
}
