package parser

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Dialect selects the surface syntax used for assembly attribute declarations.
type Dialect int

const (
	// DialectCSharp is the bracket syntax: [assembly: Name(args)]
	DialectCSharp Dialect = iota
	// DialectVisualBasic is the angle-bracket syntax: <Assembly: Name(args)>
	DialectVisualBasic
)

// visualBasicExtension marks files parsed with the angle-bracket dialect.
const visualBasicExtension = ".vb"

func (d Dialect) String() string {
	switch d {
	case DialectVisualBasic:
		return "vb"
	default:
		return "cs"
	}
}

// DialectForPath picks the dialect from the file extension. Anything other
// than .vb is treated as C#.
func DialectForPath(path string) Dialect {
	if strings.EqualFold(filepath.Ext(path), visualBasicExtension) {
		return DialectVisualBasic
	}
	return DialectCSharp
}

// syntax holds the two pattern templates of a dialect. Each template takes the
// regexp-quoted attribute name through a single %s verb.
type syntax struct {
	quoted   string
	unquoted string
}

// Shared pattern pieces. The head matches the attribute target and an optional
// System.Reflection prefix; the tail matches an optional Attribute suffix.
const (
	namespacePrefix = `(?:System\.Reflection\.)?`
	nameSuffix      = `(?:Attribute)?`
	unquotedArgs    = `\(\s*(.*?)\s*\)`
)

// Quoted argument forms. C# has backslash escapes in regular strings and
// doubled quotes in @"verbatim" strings; Visual Basic only doubles quotes.
// Captured text keeps its escapes as written.
const (
	csharpQuotedArgs      = `\(\s*(?:@"((?:""|[^"])*)"|"((?:[^"\\]|\\.)*)").*?\)`
	visualBasicQuotedArgs = `\(\s*"((?:""|[^"])*)".*?\)`
)

func newSyntax(open, target, close, quotedArgs string) syntax {
	head := `(?m)^\s*` + open + `\s*` + target + `\s*:\s*` + namespacePrefix + `%s` + nameSuffix + `\s*`
	tail := `\s*` + close
	return syntax{
		quoted:   head + quotedArgs + tail,
		unquoted: head + unquotedArgs + tail,
	}
}

var dialects = map[Dialect]syntax{
	DialectCSharp:      newSyntax(`\[`, `assembly`, `\]`, csharpQuotedArgs),
	DialectVisualBasic: newSyntax(`<`, `(?i:assembly)`, `>`, visualBasicQuotedArgs),
}

func (d Dialect) syntax() syntax {
	s, ok := dialects[d]
	if !ok {
		return dialects[DialectCSharp]
	}
	return s
}

// customPattern finds any bracket-dialect declaration, capturing the bare
// attribute name and its raw argument text. It does not accept a namespace
// prefix, so qualified names are never reported as custom attributes.
var customPattern = `(?m)^\s*\[\s*assembly\s*:\s*(\w+)\s*` + unquotedArgs + `\s*\]`

func patternFor(template, name string) string {
	return fmt.Sprintf(template, name)
}
