// Package nameutil implements the pure string transforms the generator
// applies to proto identifiers on the way to ReScript source: module stems,
// field/type/variant casing, and the target's keyword-escape rule.
package nameutil

import (
	"path"
	"strings"
)

// reservedWords is the fixed ReScript identifier blocklist. A field or
// method name colliding with one of these gets a trailing underscore.
var reservedWords = map[string]bool{
	"type": true, "open": true, "let": true, "module": true, "switch": true,
	"if": true, "else": true, "while": true, "for": true, "try": true,
	"catch": true, "as": true, "and": true, "or": true, "true": true,
	"false": true, "rec": true, "external": true, "mutable": true,
	"include": true, "private": true, "constraint": true, "lazy": true,
	"assert": true, "exception": true,
}

// ModuleStem derives the capitalised module name for a .proto file path:
// drop the directory prefix and ".proto" suffix, PascalCase each "_"/"-"
// delimited run, and append the literal "Proto".
//
//	path/to/user_service.proto -> UserServiceProto
func ModuleStem(protoPath string) string {
	base := path.Base(protoPath)
	base = strings.TrimSuffix(base, ".proto")
	return TypeName(base) + "Proto"
}

// TypeName capitalises the first character of each "_"/"-"-delimited run of s
// and drops the separators, producing a PascalCase type/module/variant
// name. Applying it twice is equivalent to applying it once: the input to
// the second pass already contains no "_" runs to re-split.
func TypeName(s string) string {
	return pascalRuns(s)
}

// FieldName lowercases the first character of TypeName(s) and escapes the
// result if it collides with a reserved word.
func FieldName(s string) string {
	n := TypeName(s)
	if n == "" {
		return n
	}
	n = strings.ToLower(n[:1]) + n[1:]
	if reservedWords[n] {
		n += "_"
	}
	return n
}

// EnumVariantName derives a variant constructor name from a proto enum
// value's declared name. ALL_CAPS values (letters, digits, underscores
// only, no lowercase) are folded to PascalCase with non-leading letters
// lowercased; anything else falls back to the generic TypeName rule.
func EnumVariantName(s string) string {
	if isAllCaps(s) {
		parts := strings.FieldsFunc(s, func(r rune) bool { return r == '_' })
		var b strings.Builder
		for _, p := range parts {
			if p == "" {
				continue
			}
			lower := strings.ToLower(p)
			b.WriteString(strings.ToUpper(lower[:1]))
			b.WriteString(lower[1:])
		}
		return b.String()
	}
	return TypeName(s)
}

// isAllCaps reports whether s contains only uppercase letters, digits, and
// underscores, and at least one letter.
func isAllCaps(s string) bool {
	sawLetter := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			sawLetter = true
		case r >= '0' && r <= '9', r == '_':
			// fine
		default:
			return false
		}
	}
	return sawLetter
}

// pascalRuns splits s on "_" and "-" runs and upper-cases the leading
// character of each remaining run, preserving interior casing (so an
// identifier that is already camelCase, e.g. from a previous pass, is left
// alone beyond its first character).
func pascalRuns(s string) string {
	var b strings.Builder
	for _, run := range strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == '-' }) {
		b.WriteString(strings.ToUpper(run[:1]))
		b.WriteString(run[1:])
	}
	return b.String()
}
