// Package load defines the front-end boundary of the fake generator: the
// raw, serializable form of contract declarations handed in by a host
// front-end (compiler plugin, manifest file, or tests), and the marker
// registry that decides which declarations are picked up for generation.
//
// The package performs no semantic validation. Shape rules are enforced by
// the structural analyzer in compiler/gen.
package load

// DeclKind is the syntactic kind of a raw declaration.
type DeclKind string

const (
	// KindInterface is an interface declaration.
	KindInterface DeclKind = "interface"
	// KindClass is a class declaration.
	KindClass DeclKind = "class"
	// KindObject is an object (singleton) declaration.
	KindObject DeclKind = "object"
)

// Declaration is a contract declaration as loaded from the front-end.
type Declaration struct {
	// Name is the simple declaration name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Package is the package the declaration lives in.
	Package string `json:"package,omitempty" yaml:"package,omitempty"`
	// Kind is the syntactic declaration kind.
	Kind DeclKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	// Abstract reports an abstract class declaration.
	Abstract bool `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	// Open reports an open (subclassable) class declaration.
	Open bool `json:"open,omitempty" yaml:"open,omitempty"`
	// Sealed reports a sealed declaration.
	Sealed bool `json:"sealed,omitempty" yaml:"sealed,omitempty"`
	// Local reports a locally-scoped declaration.
	Local bool `json:"local,omitempty" yaml:"local,omitempty"`
	// External reports an externally-declared (no-body) declaration.
	External bool `json:"external,omitempty" yaml:"external,omitempty"`
	// TypeParams holds the declaration-level generic parameters.
	TypeParams []*TypeParam `json:"type_params,omitempty" yaml:"type_params,omitempty"`
	// Functions in declaration order.
	Functions []*Function `json:"functions,omitempty" yaml:"functions,omitempty"`
	// Properties in declaration order.
	Properties []*Property `json:"properties,omitempty" yaml:"properties,omitempty"`
	// Uses names other faked contracts this declaration is auto-wired to.
	Uses []string `json:"uses,omitempty" yaml:"uses,omitempty"`
	// Markers holds the marker annotations present on the declaration.
	Markers []string `json:"markers,omitempty" yaml:"markers,omitempty"`
	// Annotations holds arbitrary annotation metadata by annotation name.
	Annotations map[string]any `json:"annotations,omitempty" yaml:"annotations,omitempty"`
}

// Function is a raw method declaration.
type Function struct {
	// Name of the function.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Params in declaration order.
	Params []*Param `json:"params,omitempty" yaml:"params,omitempty"`
	// Return type. Nil means the unit type.
	Return *TypeRef `json:"return,omitempty" yaml:"return,omitempty"`
	// Suspend reports a suspendable (asynchronous) function.
	Suspend bool `json:"suspend,omitempty" yaml:"suspend,omitempty"`
	// TypeParams holds function-level generic parameters.
	TypeParams []*TypeParam `json:"type_params,omitempty" yaml:"type_params,omitempty"`
	// Modifiers such as "abstract", "open" or "operator".
	Modifiers []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
}

// Param is a raw function parameter.
type Param struct {
	Name string   `json:"name,omitempty" yaml:"name,omitempty"`
	Type *TypeRef `json:"type,omitempty" yaml:"type,omitempty"`
}

// Property is a raw property declaration.
type Property struct {
	// Name of the property.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Type of the property.
	Type *TypeRef `json:"type,omitempty" yaml:"type,omitempty"`
	// Mutable reports a var (read-write) property.
	Mutable bool `json:"mutable,omitempty" yaml:"mutable,omitempty"`
	// HasGetter reports an explicit getter.
	HasGetter bool `json:"has_getter,omitempty" yaml:"has_getter,omitempty"`
	// HasSetter reports an explicit setter.
	HasSetter bool `json:"has_setter,omitempty" yaml:"has_setter,omitempty"`
}

// TypeRef is a raw type reference. It is recursive: generic arguments are
// themselves type references.
type TypeRef struct {
	// Name is the qualified type name, e.g. "kotlin.collections.List".
	// Declaration-level and function-level type parameters are referenced
	// by their bare name, e.g. "T".
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Nullable reports a nullable type.
	Nullable bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	// Args holds the ordered generic arguments, if any.
	Args []*TypeRef `json:"args,omitempty" yaml:"args,omitempty"`
	// Builtin reports a built-in / standard-library type.
	Builtin bool `json:"builtin,omitempty" yaml:"builtin,omitempty"`
}

// TypeParam is a raw generic parameter.
type TypeParam struct {
	// Name of the parameter, e.g. "T".
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	// Bounds holds the upper bounds, if any.
	Bounds []*TypeRef `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	// Variance is "", "in" or "out".
	Variance string `json:"variance,omitempty" yaml:"variance,omitempty"`
}

// QualifiedName returns the contract identity: package-qualified name.
func (d *Declaration) QualifiedName() string {
	if d.Package == "" {
		return d.Name
	}
	return d.Package + "." + d.Name
}
