package gen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kapok-dev/kapok/compiler/load"
)

// The following descriptor types are produced by the structural analyzer
// and consumed by the classifier, the default-value resolver and the code
// model builder. They are immutable once built and owned exclusively by
// the pipeline run that created them.
type (
	// Contract describes one analyzed contract declaration: the methods,
	// properties and generic parameters a fake must implement.
	Contract struct {
		decl *load.Declaration
		// Name holds the simple contract name.
		Name string
		// Package holds the declaring package.
		Package string
		// Methods in declaration order.
		Methods []*Method
		methods map[string]*Method
		// Properties in declaration order.
		Properties []*Property
		properties map[string]*Property
		// TypeParams holds the contract-level generic parameters.
		TypeParams []*TypeParam
		// Uses holds qualified names of other faked contracts that are
		// auto-wired into this one.
		Uses []string
		// Annotations that were attached to the declaration.
		Annotations map[string]any
		// Shape is the generic-pattern classification tag. It is assigned
		// by the pipeline right after analysis; see Classify.
		Shape Shape
	}

	// Method describes one contract method.
	Method struct {
		// Name of the method.
		Name string
		// Params in declaration order.
		Params []*Param
		// Return type. Nil means the unit type.
		Return *Type
		// Suspend reports a suspendable method.
		Suspend bool
		// TypeParams holds method-level generic parameters.
		TypeParams []*TypeParam
		// Modifiers such as "operator". Kept sorted.
		Modifiers []string
	}

	// Property describes one contract property.
	Property struct {
		// Name of the property.
		Name string
		// Type of the property.
		Type *Type
		// Mutable reports a read-write property.
		Mutable bool
		// HasGetter and HasSetter report explicit accessors.
		HasGetter bool
		HasSetter bool
	}

	// Param describes one method parameter.
	Param struct {
		Name string
		Type *Type
	}

	// Type describes a type reference. Recursive: generic arguments are
	// themselves type descriptors.
	Type struct {
		// Name is the qualified type name, or the bare name of a
		// referenced generic parameter.
		Name string
		// Nullable reports a nullable type.
		Nullable bool
		// Args holds the ordered generic arguments.
		Args []*Type
		// Builtin reports a built-in / standard-library type.
		Builtin bool
	}

	// TypeParam describes a generic parameter and its bounds.
	TypeParam struct {
		Name     string
		Bounds   []*Type
		Variance Variance
	}
)

// Variance of a generic parameter.
type Variance string

const (
	// Invariant parameters accept the exact type argument only.
	Invariant Variance = ""
	// Covariant corresponds to the "out" modifier.
	Covariant Variance = "out"
	// Contravariant corresponds to the "in" modifier.
	Contravariant Variance = "in"
)

// Structural limits for member signatures. Shapes beyond these are
// rejected with a SignatureError rather than silently mis-generated.
const (
	maxTypeNesting = 12
	maxBounds      = 1
)

// NewContract analyzes a raw declaration and builds its contract
// descriptor, validating the shape rules:
//
//   - the declaration must be interface-like or an open/abstract class;
//     concrete leaf classes, objects, sealed, local and external
//     declarations are rejected.
//   - the declaration must have at least one member.
//   - every member signature must stay within the supported structural
//     limits.
func NewContract(decl *load.Declaration) (*Contract, error) {
	name := decl.QualifiedName()
	if err := checkShape(decl); err != nil {
		return nil, err
	}
	if len(decl.Functions)+len(decl.Properties) == 0 {
		return nil, NewEmptyContractError(name)
	}
	c := &Contract{
		decl:        decl,
		Name:        decl.Name,
		Package:     decl.Package,
		Methods:     make([]*Method, 0, len(decl.Functions)),
		methods:     make(map[string]*Method, len(decl.Functions)),
		Properties:  make([]*Property, 0, len(decl.Properties)),
		properties:  make(map[string]*Property, len(decl.Properties)),
		Uses:        append([]string(nil), decl.Uses...),
		Annotations: decl.Annotations,
	}
	params, err := typeParams(name, "", decl.TypeParams)
	if err != nil {
		return nil, err
	}
	c.TypeParams = params
	for _, f := range decl.Functions {
		m, err := c.newMethod(f)
		if err != nil {
			return nil, err
		}
		if _, ok := c.methods[m.Name]; ok {
			return nil, NewSignatureError(name, m.Name, "method redeclared")
		}
		c.Methods = append(c.Methods, m)
		c.methods[m.Name] = m
	}
	for _, p := range decl.Properties {
		prop, err := c.newProperty(p)
		if err != nil {
			return nil, err
		}
		if _, ok := c.properties[prop.Name]; ok {
			return nil, NewSignatureError(name, prop.Name, "property redeclared")
		}
		if _, ok := c.methods[prop.Name]; ok {
			return nil, NewSignatureError(name, prop.Name, "property conflicts with a method of the same name")
		}
		c.Properties = append(c.Properties, prop)
		c.properties[prop.Name] = prop
	}
	return c, nil
}

// QualifiedName returns the contract identity used for caching and
// auto-wiring.
func (c *Contract) QualifiedName() string {
	if c.Package == "" {
		return c.Name
	}
	return c.Package + "." + c.Name
}

// Method returns the method with the given name, if any.
func (c *Contract) Method(name string) (*Method, bool) {
	m, ok := c.methods[name]
	return m, ok
}

// Property returns the property with the given name, if any.
func (c *Contract) Property(name string) (*Property, bool) {
	p, ok := c.properties[name]
	return p, ok
}

// checkShape validates the declaration shape rules.
func checkShape(decl *load.Declaration) error {
	name := decl.QualifiedName()
	switch {
	case decl.Sealed:
		return NewShapeError(name, "sealed "+string(decl.Kind), "sealed hierarchies cannot be extended by a generated fake")
	case decl.Local:
		return NewShapeError(name, string(decl.Kind), "locally-scoped declarations are not visible to generated sources")
	case decl.External:
		return NewShapeError(name, "external "+string(decl.Kind), "external declarations have no overridable bodies")
	}
	switch decl.Kind {
	case load.KindInterface:
		return nil
	case load.KindClass:
		if decl.Abstract || decl.Open {
			return nil
		}
		return NewShapeError(name, "class", "concrete classes cannot be faked; declare the class open or abstract")
	case load.KindObject:
		return NewShapeError(name, "object", "object singletons cannot be faked")
	default:
		return NewShapeError(name, string(decl.Kind), "unknown declaration kind")
	}
}

func (c *Contract) newMethod(f *load.Function) (*Method, error) {
	contract := c.QualifiedName()
	if f.Name == "" {
		return nil, NewSignatureError(contract, "", "method name cannot be empty")
	}
	params, err := typeParams(contract, f.Name, f.TypeParams)
	if err != nil {
		return nil, err
	}
	m := &Method{
		Name:       f.Name,
		Params:     make([]*Param, 0, len(f.Params)),
		Suspend:    f.Suspend,
		TypeParams: params,
		Modifiers:  sortedModifiers(f.Modifiers),
	}
	for _, p := range f.Params {
		t, err := newType(contract, f.Name, p.Type)
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, NewSignatureError(contract, f.Name, fmt.Sprintf("parameter %q has no type", p.Name))
		}
		m.Params = append(m.Params, &Param{Name: p.Name, Type: t})
	}
	if f.Return != nil {
		t, err := newType(contract, f.Name, f.Return)
		if err != nil {
			return nil, err
		}
		m.Return = t
	}
	return m, nil
}

func (c *Contract) newProperty(p *load.Property) (*Property, error) {
	contract := c.QualifiedName()
	if p.Name == "" {
		return nil, NewSignatureError(contract, "", "property name cannot be empty")
	}
	t, err := newType(contract, p.Name, p.Type)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, NewSignatureError(contract, p.Name, "property has no type")
	}
	return &Property{
		Name:      p.Name,
		Type:      t,
		Mutable:   p.Mutable,
		HasGetter: p.HasGetter || !p.Mutable,
		HasSetter: p.HasSetter || p.Mutable,
	}, nil
}

// newType converts a raw type reference, enforcing the nesting limit.
func newType(contract, member string, ref *load.TypeRef) (*Type, error) {
	if ref == nil {
		return nil, nil
	}
	t, depth, err := convertType(contract, member, ref, 0)
	if err != nil {
		return nil, err
	}
	if depth > maxTypeNesting {
		return nil, NewSignatureError(contract, member,
			fmt.Sprintf("type nesting depth %d exceeds the supported maximum of %d", depth, maxTypeNesting))
	}
	return t, nil
}

func convertType(contract, member string, ref *load.TypeRef, depth int) (*Type, int, error) {
	if ref.Name == "" {
		return nil, depth, NewSignatureError(contract, member, "type name cannot be empty")
	}
	if depth > maxTypeNesting {
		return nil, depth, nil // reported by the caller with the full depth
	}
	t := &Type{
		Name:     ref.Name,
		Nullable: ref.Nullable,
		Builtin:  ref.Builtin,
		Args:     make([]*Type, 0, len(ref.Args)),
	}
	deepest := depth
	for _, arg := range ref.Args {
		at, d, err := convertType(contract, member, arg, depth+1)
		if err != nil {
			return nil, d, err
		}
		if d > deepest {
			deepest = d
		}
		t.Args = append(t.Args, at)
	}
	return t, deepest, nil
}

func typeParams(contract, member string, raw []*load.TypeParam) ([]*TypeParam, error) {
	out := make([]*TypeParam, 0, len(raw))
	for _, tp := range raw {
		if tp.Name == "" {
			return nil, NewSignatureError(contract, member, "generic parameter name cannot be empty")
		}
		if len(tp.Bounds) > maxBounds {
			return nil, NewSignatureError(contract, member,
				fmt.Sprintf("generic parameter %q has %d bounds; at most %d is supported", tp.Name, len(tp.Bounds), maxBounds))
		}
		p := &TypeParam{Name: tp.Name, Variance: Variance(tp.Variance)}
		for _, b := range tp.Bounds {
			bt, err := newType(contract, member, b)
			if err != nil {
				return nil, err
			}
			if mentionsName(bt, tp.Name) {
				return nil, NewSignatureError(contract, member,
					fmt.Sprintf("generic parameter %q has a self-referential bound", tp.Name))
			}
			p.Bounds = append(p.Bounds, bt)
		}
		out = append(out, p)
	}
	return out, nil
}

// String returns the canonical textual form of the type, used by the
// structural fingerprint. It is order-sensitive and independent of source
// formatting.
func (t *Type) String() string {
	var b strings.Builder
	b.WriteString(t.Name)
	if len(t.Args) > 0 {
		b.WriteString("<")
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteString(">")
	}
	if t.Nullable {
		b.WriteString("?")
	}
	return b.String()
}

// SimpleName returns the last segment of the qualified type name.
func (t *Type) SimpleName() string {
	if i := strings.LastIndex(t.Name, "."); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}

// IsUnit reports the Kotlin unit type.
func (t *Type) IsUnit() bool {
	return t != nil && t.Name == "kotlin.Unit"
}

// mentionsName reports whether the type tree references the given bare
// name anywhere.
func mentionsName(t *Type, name string) bool {
	if t == nil {
		return false
	}
	if t.Name == name {
		return true
	}
	for _, a := range t.Args {
		if mentionsName(a, name) {
			return true
		}
	}
	return false
}

// mentionsAny reports whether the type tree references any of the given
// bare names.
func mentionsAny(t *Type, names map[string]bool) bool {
	if t == nil {
		return false
	}
	if names[t.Name] {
		return true
	}
	for _, a := range t.Args {
		if mentionsAny(a, names) {
			return true
		}
	}
	return false
}

func sortedModifiers(mods []string) []string {
	out := append([]string(nil), mods...)
	sort.Strings(out)
	return out
}
