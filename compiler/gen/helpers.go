package gen

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// autoImportedPrefixes are package prefixes stripped from qualified type
// names when rendering: their members resolve without an import in every
// Kotlin file. Longest prefixes first.
var autoImportedPrefixes = []string{
	"kotlin.collections.",
	"kotlin.sequences.",
	"kotlin.",
}

// fakeClassName returns the generated implementation class name.
func fakeClassName(c *Contract) string {
	return "Fake" + c.Name
}

// scopeClassName returns the generated configuration-surface class name.
func scopeClassName(c *Contract) string {
	return fakeClassName(c) + "Scope"
}

// constructorName returns the generated construction-function name for
// the given prefix, e.g. ("fake", "KeyValueStore") -> "fakeKeyValueStore".
func constructorName(prefix, name string) string {
	return inflect.CamelizeDownFirst(inflect.Underscore(prefix) + "_" + inflect.Underscore(name))
}

// outputName returns the logical output unit name for a contract,
// e.g. "fake_key_value_store.kt".
func outputName(c *Contract) string {
	return inflect.Underscore(fakeClassName(c)) + ".kt"
}

// slotName returns the behavior-slot property name backing a member.
func slotName(member string) string {
	return member + "Behavior"
}

// callsName returns the call-tracking counter name for a method.
func callsName(member string) string {
	return member + "Calls"
}

// escapeIdent backtick-escapes an identifier segment colliding with a
// Kotlin hard keyword.
func escapeIdent(name string) string {
	if kotlinHardKeywords[name] {
		return "`" + name + "`"
	}
	return name
}

// displayTypeName strips auto-imported and same-package prefixes from a
// qualified type name, escaping each remaining segment.
func displayTypeName(qualified, pkg string) string {
	name := qualified
	if pkg != "" && strings.HasPrefix(name, pkg+".") {
		name = name[len(pkg)+1:]
	} else {
		for _, p := range autoImportedPrefixes {
			if strings.HasPrefix(name, p) {
				name = name[len(p):]
				break
			}
		}
	}
	segs := strings.Split(name, ".")
	for i, s := range segs {
		segs[i] = escapeIdent(s)
	}
	return strings.Join(segs, ".")
}
