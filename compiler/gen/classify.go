package gen

// Shape tags a contract with one of four generic patterns. The tag drives
// the code model builder: class-level generics propagate to the fake
// class, the configuration scope and the construction function, while
// method-level generics force type-erased behavior slots on individual
// generated functions.
type Shape int

const (
	// NoGenerics marks a contract with no generic parameters anywhere.
	NoGenerics Shape = iota
	// ClassLevelGenerics marks generics on the contract only.
	ClassLevelGenerics
	// MethodLevelGenerics marks generics on individual members only.
	MethodLevelGenerics
	// MixedGenerics marks generics on both the contract and its members.
	MixedGenerics
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case NoGenerics:
		return "NoGenerics"
	case ClassLevelGenerics:
		return "ClassLevelGenerics"
	case MethodLevelGenerics:
		return "MethodLevelGenerics"
	case MixedGenerics:
		return "MixedGenerics"
	default:
		return "Shape(?)"
	}
}

// Classify inspects the contract-level generic parameter list and each
// method's own list, and returns the generic pattern. It is deterministic,
// side-effect-free and never fails.
func Classify(c *Contract) Shape {
	classLevel := len(c.TypeParams) > 0
	methodLevel := false
	for _, m := range c.Methods {
		if len(m.TypeParams) > 0 {
			methodLevel = true
			break
		}
	}
	switch {
	case classLevel && methodLevel:
		return MixedGenerics
	case classLevel:
		return ClassLevelGenerics
	case methodLevel:
		return MethodLevelGenerics
	default:
		return NoGenerics
	}
}
