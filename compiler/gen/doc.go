// Package gen implements the fake synthesis engine: the structural
// analyzer that turns raw declarations into immutable contract
// descriptors, the generic-pattern classifier, the default-value strategy
// chain, the declarative code model with its Kotlin renderer, and the
// build-scoped generation cache that skips redundant regeneration across
// targets of one multi-target build.
//
// The pipeline is two-phase: analysis produces a Contract, generation
// consumes it. Both phases are pure; the only shared mutable state is the
// generation cache, which is injected and advisory.
package gen

//go:generate go run ./internal/langgen -out lang.go
