package gen

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

// Render serializes a code model to Kotlin source text. Rendering is pure
// and deterministic: the same model always renders to byte-identical
// text. Every node kind defined in the model is handled; an unknown node
// is an internal defect and panics rather than degrading silently.
func Render(f *File) []byte {
	r := &renderer{}
	r.file(f)
	return []byte(r.b.String())
}

type renderer struct {
	b strings.Builder
}

func (r *renderer) file(f *File) {
	if f.Header != "" {
		r.b.WriteString("// ")
		r.b.WriteString(f.Header)
		r.b.WriteString("\n")
	}
	if f.Package != "" {
		r.b.WriteString("package ")
		r.b.WriteString(escapePath(f.Package))
		r.b.WriteString("\n")
	}
	for _, d := range f.Decls {
		r.b.WriteString("\n")
		r.decl(d, 0)
		r.b.WriteString("\n")
	}
}

func (r *renderer) decl(d Decl, depth int) {
	switch n := d.(type) {
	case *ClassNode:
		r.class(n, depth)
	case *FuncNode:
		r.fn(n, depth)
	case *PropNode:
		r.prop(n, depth)
	default:
		panic(fmt.Sprintf("gen: unhandled declaration node %T", d))
	}
}

func (r *renderer) class(n *ClassNode, depth int) {
	ind := strings.Repeat(indentUnit, depth)
	for _, a := range n.Annotations {
		r.b.WriteString(ind)
		r.b.WriteString(a)
		r.b.WriteString("\n")
	}
	r.b.WriteString(ind)
	for _, m := range n.Modifiers {
		r.b.WriteString(m)
		r.b.WriteString(" ")
	}
	r.b.WriteString("class ")
	r.b.WriteString(n.Name)
	r.typeParams(n.TypeParams)
	if n.Ctor != nil {
		r.b.WriteString(" ")
		for _, m := range n.Ctor.Modifiers {
			r.b.WriteString(m)
			r.b.WriteString(" ")
		}
		r.b.WriteString("constructor(")
		for i, p := range n.Ctor.Params {
			if i > 0 {
				r.b.WriteString(", ")
			}
			for _, m := range p.Modifiers {
				r.b.WriteString(m)
				r.b.WriteString(" ")
			}
			if p.Keyword != "" {
				r.b.WriteString(p.Keyword)
				r.b.WriteString(" ")
			}
			r.b.WriteString(p.Name)
			r.b.WriteString(": ")
			r.typ(p.Type)
		}
		r.b.WriteString(")")
	}
	for i, s := range n.Supertypes {
		if i == 0 {
			r.b.WriteString(" : ")
		} else {
			r.b.WriteString(", ")
		}
		r.typ(s)
	}
	if len(n.Members) == 0 {
		r.b.WriteString("\n")
		return
	}
	r.b.WriteString(" {\n")
	for i, m := range n.Members {
		if i > 0 {
			r.b.WriteString("\n")
		}
		r.decl(m, depth+1)
		r.b.WriteString("\n")
	}
	r.b.WriteString(ind)
	r.b.WriteString("}")
}

func (r *renderer) fn(n *FuncNode, depth int) {
	ind := strings.Repeat(indentUnit, depth)
	for _, a := range n.Annotations {
		r.b.WriteString(ind)
		r.b.WriteString(a)
		r.b.WriteString("\n")
	}
	r.b.WriteString(ind)
	for _, m := range n.Modifiers {
		r.b.WriteString(m)
		r.b.WriteString(" ")
	}
	if n.Suspend {
		r.b.WriteString("suspend ")
	}
	r.b.WriteString("fun ")
	if len(n.TypeParams) > 0 {
		r.typeParams(n.TypeParams)
		r.b.WriteString(" ")
	}
	if n.Receiver != nil {
		r.typ(n.Receiver)
		r.b.WriteString(".")
	}
	r.b.WriteString(n.Name)
	r.b.WriteString("(")
	for i, p := range n.Params {
		if i > 0 {
			r.b.WriteString(", ")
		}
		r.b.WriteString(p.Name)
		r.b.WriteString(": ")
		r.typ(p.Type)
		if p.Default != nil {
			r.b.WriteString(" = ")
			r.expr(p.Default)
		}
	}
	r.b.WriteString(")")
	if n.Return != nil {
		r.b.WriteString(": ")
		r.typ(n.Return)
	}
	switch {
	case n.ExprBody != nil:
		r.b.WriteString(" = ")
		r.expr(n.ExprBody)
	case n.Body != nil:
		r.b.WriteString(" {\n")
		for _, s := range n.Body {
			r.b.WriteString(ind)
			r.b.WriteString(indentUnit)
			r.stmt(s)
			r.b.WriteString("\n")
		}
		r.b.WriteString(ind)
		r.b.WriteString("}")
	default:
		r.b.WriteString(" {}")
	}
}

func (r *renderer) prop(n *PropNode, depth int) {
	ind := strings.Repeat(indentUnit, depth)
	for _, a := range n.Annotations {
		r.b.WriteString(ind)
		r.b.WriteString(a)
		r.b.WriteString("\n")
	}
	r.b.WriteString(ind)
	for _, m := range n.Modifiers {
		r.b.WriteString(m)
		r.b.WriteString(" ")
	}
	if n.Mutable {
		r.b.WriteString("var ")
	} else {
		r.b.WriteString("val ")
	}
	r.b.WriteString(n.Name)
	r.b.WriteString(": ")
	r.typ(n.Type)
	switch {
	case n.Init != nil:
		r.b.WriteString(" = ")
		r.expr(n.Init)
	case n.Getter != nil:
		r.b.WriteString("\n")
		r.b.WriteString(ind)
		r.b.WriteString(indentUnit)
		r.b.WriteString("get() = ")
		r.expr(n.Getter)
		if n.Setter != nil {
			r.b.WriteString("\n")
			r.b.WriteString(ind)
			r.b.WriteString(indentUnit)
			r.b.WriteString("set(value) { ")
			r.stmt(n.Setter)
			r.b.WriteString(" }")
		}
	}
}

func (r *renderer) typeParams(params []*TypeParamNode) {
	if len(params) == 0 {
		return
	}
	r.b.WriteString("<")
	for i, p := range params {
		if i > 0 {
			r.b.WriteString(", ")
		}
		r.b.WriteString(p.Name)
		for _, bound := range p.Bounds {
			r.b.WriteString(" : ")
			r.typ(bound)
		}
	}
	r.b.WriteString(">")
}

func (r *renderer) typ(t TypeNode) {
	switch n := t.(type) {
	case *SimpleType:
		r.b.WriteString(n.Name)
	case *GenericType:
		r.b.WriteString(n.Name)
		r.b.WriteString("<")
		for i, a := range n.Args {
			if i > 0 {
				r.b.WriteString(", ")
			}
			r.typ(a)
		}
		r.b.WriteString(">")
	case *NullableType:
		if _, lambda := n.Elem.(*LambdaType); lambda {
			r.b.WriteString("(")
			r.typ(n.Elem)
			r.b.WriteString(")?")
			return
		}
		r.typ(n.Elem)
		r.b.WriteString("?")
	case *LambdaType:
		if n.Suspend {
			r.b.WriteString("suspend ")
		}
		if n.Receiver != nil {
			r.typ(n.Receiver)
			r.b.WriteString(".")
		}
		r.b.WriteString("(")
		for i, p := range n.Params {
			if i > 0 {
				r.b.WriteString(", ")
			}
			r.typ(p)
		}
		r.b.WriteString(") -> ")
		if n.Return != nil {
			r.typ(n.Return)
		} else {
			r.b.WriteString("Unit")
		}
	default:
		panic(fmt.Sprintf("gen: unhandled type node %T", t))
	}
}

func (r *renderer) expr(e Expression) {
	switch n := e.(type) {
	case *Literal:
		r.b.WriteString(n.Text)
	case *Null:
		r.b.WriteString("null")
	case *Raw:
		r.b.WriteString(n.Text)
	case *Lambda:
		if len(n.Params) == 0 && n.Body == nil {
			r.b.WriteString("{}")
			return
		}
		r.b.WriteString("{ ")
		if len(n.Params) > 0 {
			r.b.WriteString(strings.Join(n.Params, ", "))
			r.b.WriteString(" ->")
			if n.Body != nil {
				r.b.WriteString(" ")
			}
		}
		if n.Body != nil {
			r.expr(n.Body)
		}
		r.b.WriteString(" }")
	case *Call:
		r.b.WriteString(n.Callee)
		if len(n.TypeArgs) > 0 {
			r.b.WriteString("<")
			for i, a := range n.TypeArgs {
				if i > 0 {
					r.b.WriteString(", ")
				}
				r.typ(a)
			}
			r.b.WriteString(">")
		}
		r.b.WriteString("(")
		for i, a := range n.Args {
			if i > 0 {
				r.b.WriteString(", ")
			}
			r.expr(a)
		}
		r.b.WriteString(")")
	case *Cast:
		r.expr(n.Expr)
		r.b.WriteString(" as ")
		r.typ(n.To)
	case *Elvis:
		r.expr(n.Lhs)
		r.b.WriteString(" ?: ")
		r.expr(n.Rhs)
	default:
		panic(fmt.Sprintf("gen: unhandled expression node %T", e))
	}
}

func (r *renderer) stmt(s Stmt) {
	switch n := s.(type) {
	case *ValStmt:
		r.b.WriteString("val ")
		r.b.WriteString(n.Name)
		r.b.WriteString(" = ")
		r.expr(n.Init)
	case *AssignStmt:
		r.b.WriteString(n.Target)
		r.b.WriteString(" ")
		r.b.WriteString(n.Op)
		r.b.WriteString(" ")
		r.expr(n.Value)
	case *ExprStmt:
		r.expr(n.E)
	case *ReturnStmt:
		r.b.WriteString("return ")
		r.expr(n.E)
	default:
		panic(fmt.Sprintf("gen: unhandled statement node %T", s))
	}
}

// escapePath escapes each dotted segment of a package path.
func escapePath(path string) string {
	segs := strings.Split(path, ".")
	for i, s := range segs {
		segs[i] = escapeIdent(s)
	}
	return strings.Join(segs, ".")
}
