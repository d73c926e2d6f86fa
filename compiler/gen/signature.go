package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/kapok-dev/kapok"
)

// Signature computes the contract's structural fingerprint: a sha256 hash
// over an ordered, canonical textual encoding of every member's name,
// parameter types, return type, nullability and modifiers. The encoding is
// order-sensitive (member reordering changes the signature) but knows
// nothing about source formatting or comments, so cosmetic edits never
// invalidate the cache.
func Signature(c *Contract) kapok.Signature {
	var b strings.Builder
	b.WriteString("contract ")
	b.WriteString(c.QualifiedName())
	b.WriteString("\n")
	for _, tp := range c.TypeParams {
		writeTypeParam(&b, tp)
	}
	for _, m := range c.Methods {
		b.WriteString("method ")
		b.WriteString(m.Name)
		for _, tp := range m.TypeParams {
			writeTypeParam(&b, tp)
		}
		b.WriteString("(")
		for i, p := range m.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Type.String())
		}
		b.WriteString(") -> ")
		if m.Return != nil {
			b.WriteString(m.Return.String())
		} else {
			b.WriteString("kotlin.Unit")
		}
		if m.Suspend {
			b.WriteString(" suspend")
		}
		if len(m.Modifiers) > 0 {
			b.WriteString(" [")
			b.WriteString(strings.Join(m.Modifiers, " "))
			b.WriteString("]")
		}
		b.WriteString("\n")
	}
	for _, p := range c.Properties {
		b.WriteString("property ")
		b.WriteString(p.Name)
		b.WriteString(" ")
		b.WriteString(p.Type.String())
		if p.Mutable {
			b.WriteString(" var")
		} else {
			b.WriteString(" val")
		}
		if p.HasGetter {
			b.WriteString(" get")
		}
		if p.HasSetter {
			b.WriteString(" set")
		}
		b.WriteString("\n")
	}
	sum := sha256.Sum256([]byte(b.String()))
	return kapok.Signature(hex.EncodeToString(sum[:]))
}

func writeTypeParam(b *strings.Builder, tp *TypeParam) {
	b.WriteString("typeparam ")
	if tp.Variance != Invariant {
		b.WriteString(string(tp.Variance))
		b.WriteString(" ")
	}
	b.WriteString(tp.Name)
	for _, bound := range tp.Bounds {
		b.WriteString(" : ")
		b.WriteString(bound.String())
	}
	b.WriteString("\n")
}
