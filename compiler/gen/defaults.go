package gen

import (
	"fmt"

	"github.com/kapok-dev/kapok"
)

// Strategy yields a safe default expression for a member type. Strategies
// are independent and side-effect-free; the resolver evaluates them in
// chain order and the first match wins. Adding a strategy never requires
// changing existing ones, only placing it in the chain.
type Strategy interface {
	// Name is the stable label identifying the strategy in diagnostics.
	Name() string
	// Supports reports whether the strategy can produce a default for
	// the type.
	Supports(t *Type) bool
	// DefaultValue returns the default expression for a supported type.
	DefaultValue(t *Type) Expression
}

// Resolver is the prioritized default-value strategy chain. The nullable
// strategy is first so a nullable built-in or collection always defaults
// to null rather than an empty instance; the fallback strategy is last
// and always matches.
type Resolver struct {
	chain []Strategy
	// warnOverlap reports a warning when two non-fallback strategies
	// match the same type. Chain order still decides; the warning only
	// surfaces the ambiguity.
	warnOverlap bool
	sink        kapok.Sink
}

// NewResolver returns a resolver with the standard chain:
// nullable, primitive, collection, wrapper, fallback.
func NewResolver() *Resolver {
	return &Resolver{
		chain: []Strategy{
			NullableStrategy{},
			PrimitiveStrategy{},
			CollectionStrategy{},
			WrapperStrategy{},
			FallbackStrategy{},
		},
		sink: kapok.DiscardSink,
	}
}

// WithOverlapWarnings enables ambiguity warnings via the given sink.
func (r *Resolver) WithOverlapWarnings(sink kapok.Sink) *Resolver {
	r.warnOverlap = true
	if sink != nil {
		r.sink = sink
	}
	return r
}

// Resolve returns the default expression for the type.
func (r *Resolver) Resolve(t *Type) Expression {
	return r.resolve(t, "", "")
}

// ResolveMember returns the default expression for a member's type. The
// contract and member names feed the fallback's runtime error message and
// overlap warnings.
func (r *Resolver) ResolveMember(contract, member string, t *Type) Expression {
	return r.resolve(t, contract, member)
}

func (r *Resolver) resolve(t *Type, contract, member string) Expression {
	var chosen Strategy
	for _, s := range r.chain {
		if !s.Supports(t) {
			continue
		}
		if chosen == nil {
			chosen = s
			if !r.warnOverlap {
				break
			}
			continue
		}
		// A later strategy also matches. Chain order already picked the
		// winner; surface the ambiguity instead of resolving it silently.
		// The fallback matches everything and is not an overlap.
		if _, isFallback := s.(FallbackStrategy); isFallback {
			continue
		}
		r.sink.Report(kapok.Diagnostic{
			Severity: kapok.SeverityWarning,
			Contract: contract,
			Member:   member,
			Message: fmt.Sprintf("kapok: default-value strategies %s and %s both match %s; chain order picked %s",
				chosen.Name(), s.Name(), t, chosen.Name()),
		})
	}
	if chosen == nil {
		// The fallback always matches; reaching here is a defect.
		panic(fmt.Sprintf("gen: no default-value strategy matched %s", t))
	}
	if _, ok := chosen.(FallbackStrategy); ok && contract != "" {
		return fallbackError(contract, member)
	}
	return chosen.DefaultValue(t)
}

// Defaultable reports whether a non-fallback strategy yields a default
// for the type. Types only the fallback matches have no safe eager
// default; their generated defaults must fail lazily, at the point of
// use, never during construction.
func (r *Resolver) Defaultable(t *Type) bool {
	for _, s := range r.chain {
		if _, isFallback := s.(FallbackStrategy); isFallback {
			continue
		}
		if s.Supports(t) {
			return true
		}
	}
	return false
}

// NullableStrategy short-circuits every nullable type to null,
// regardless of the inner type.
type NullableStrategy struct{}

// Name implements Strategy.
func (NullableStrategy) Name() string { return "nullable" }

// Supports implements Strategy.
func (NullableStrategy) Supports(t *Type) bool { return t != nil && t.Nullable }

// DefaultValue implements Strategy.
func (NullableStrategy) DefaultValue(*Type) Expression { return &Null{} }

// PrimitiveStrategy defaults strings to the empty string, numeric types
// to zero and booleans to false.
type PrimitiveStrategy struct{}

// Name implements Strategy.
func (PrimitiveStrategy) Name() string { return "primitive" }

// Supports implements Strategy.
func (PrimitiveStrategy) Supports(t *Type) bool {
	if t == nil || t.Nullable {
		return false
	}
	_, ok := primitiveDefaults[t.Name]
	return ok
}

// DefaultValue implements Strategy.
func (PrimitiveStrategy) DefaultValue(t *Type) Expression {
	return &Literal{Text: primitiveDefaults[t.Name]}
}

// collectionCtors maps collection-shaped generic types to their
// empty-collection constructor.
var collectionCtors = map[string]string{
	"kotlin.collections.Collection":  "emptyList",
	"kotlin.collections.Iterable":    "emptyList",
	"kotlin.collections.List":        "emptyList",
	"kotlin.collections.Map":         "emptyMap",
	"kotlin.collections.MutableList": "mutableListOf",
	"kotlin.collections.MutableMap":  "mutableMapOf",
	"kotlin.collections.MutableSet":  "mutableSetOf",
	"kotlin.collections.Set":         "emptySet",
}

// CollectionStrategy defaults list/set/map-shaped generics to an
// empty-collection constructor call.
type CollectionStrategy struct{}

// Name implements Strategy.
func (CollectionStrategy) Name() string { return "collection" }

// Supports implements Strategy.
func (CollectionStrategy) Supports(t *Type) bool {
	if t == nil || t.Nullable {
		return false
	}
	_, ok := collectionCtors[t.Name]
	return ok
}

// DefaultValue implements Strategy.
func (CollectionStrategy) DefaultValue(t *Type) Expression {
	return &Call{Callee: collectionCtors[t.Name]}
}

// WrapperStrategy defaults known standard-library wrapper and holder
// types to their canonical empty or failure construction form.
type WrapperStrategy struct{}

// Name implements Strategy.
func (WrapperStrategy) Name() string { return "wrapper" }

// Supports implements Strategy.
func (WrapperStrategy) Supports(t *Type) bool {
	if t == nil || t.Nullable {
		return false
	}
	switch t.Name {
	case "kotlin.Result", "java.util.Optional",
		"kotlin.sequences.Sequence", "kotlinx.coroutines.flow.Flow":
		return true
	}
	return false
}

// DefaultValue implements Strategy.
func (WrapperStrategy) DefaultValue(t *Type) Expression {
	switch t.Name {
	case "kotlin.Result":
		return &Call{
			Callee: "Result.failure",
			Args: []Expression{&Call{
				Callee: "IllegalStateException",
				Args:   []Expression{&Literal{Text: `"no value configured for this fake"`}},
			}},
		}
	case "java.util.Optional":
		return &Call{Callee: "java.util.Optional.empty"}
	case "kotlin.sequences.Sequence":
		return &Call{Callee: "emptySequence"}
	case "kotlinx.coroutines.flow.Flow":
		return &Call{Callee: "emptyFlow"}
	default:
		panic(fmt.Sprintf("gen: wrapper strategy has no default for %s", t))
	}
}

// FallbackStrategy matches any type and yields an expression that raises
// a descriptive runtime error. Generation still succeeds; invoking the
// unconfigured member fails loudly at the point of use.
type FallbackStrategy struct{}

// Name implements Strategy.
func (FallbackStrategy) Name() string { return "fallback" }

// Supports implements Strategy.
func (FallbackStrategy) Supports(*Type) bool { return true }

// DefaultValue implements Strategy.
func (FallbackStrategy) DefaultValue(t *Type) Expression {
	return &Call{
		Callee: "error",
		Args: []Expression{
			&Literal{Text: fmt.Sprintf("%q", "no behavior configured for value of type "+t.String())},
		},
	}
}

func fallbackError(contract, member string) Expression {
	msg := "configure a behavior for " + contract
	if member != "" {
		msg += "." + member
	}
	msg += " before calling it"
	return &Call{
		Callee: "error",
		Args:   []Expression{&Literal{Text: fmt.Sprintf("%q", msg)}},
	}
}
