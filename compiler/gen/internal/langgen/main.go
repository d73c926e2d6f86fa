// langgen is a codegen cmd for generating the Kotlin language tables
// (hard keywords, primitive zero literals) used by the renderer and the
// primitive default-value strategy.
package main

import (
	"flag"
	"log"

	"github.com/dave/jennifer/jen"
)

var kotlinHardKeywords = []string{
	"as", "break", "class", "continue", "do", "else", "false", "for",
	"fun", "if", "in", "interface", "is", "null", "object", "package",
	"return", "super", "this", "throw", "true", "try", "typealias",
	"typeof", "val", "var", "when", "while",
}

var primitiveDefaults = map[string]string{
	"kotlin.Boolean": "false",
	"kotlin.Byte":    "0",
	"kotlin.Char":    `'\u0000'`,
	"kotlin.Double":  "0.0",
	"kotlin.Float":   "0.0f",
	"kotlin.Int":     "0",
	"kotlin.Long":    "0L",
	"kotlin.Short":   "0",
	"kotlin.String":  `""`,
	"kotlin.UByte":   "0u",
	"kotlin.UInt":    "0u",
	"kotlin.ULong":   "0uL",
	"kotlin.UShort":  "0u",
	"kotlin.Unit":    "Unit",
}

func main() {
	out := flag.String("out", "lang.go", "output file")
	flag.Parse()

	f := jen.NewFile("gen")
	f.HeaderComment("Code generated by langgen. DO NOT EDIT.")

	f.Comment("kotlinHardKeywords holds the Kotlin hard keywords. Identifier segments")
	f.Comment("colliding with these are backtick-escaped by the renderer.")
	f.Var().Id("kotlinHardKeywords").Op("=").Map(jen.String()).Bool().Values(jen.DictFunc(func(d jen.Dict) {
		for _, kw := range kotlinHardKeywords {
			d[jen.Lit(kw)] = jen.Lit(true)
		}
	}))

	f.Comment("primitiveDefaults maps built-in primitive type names to their zero")
	f.Comment("literal.")
	f.Var().Id("primitiveDefaults").Op("=").Map(jen.String()).String().Values(jen.DictFunc(func(d jen.Dict) {
		for name, lit := range primitiveDefaults {
			d[jen.Lit(name)] = jen.Lit(lit)
		}
	}))

	if err := f.Save(*out); err != nil {
		log.Fatal("writing language tables:", err)
	}
}
