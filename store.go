package kapok

// Signature is the structural fingerprint of a contract: a deterministic
// hash over the contract's member names, parameter and return types,
// nullability and modifiers. Equal contracts always yield equal signatures;
// any member addition, removal or type change yields a different one.
// Source formatting and comments never participate.
type Signature string

// Store is the build-scoped generation cache: a mapping from contract
// identity to the signature most recently committed for it. It lets a
// multi-target build generate a shared contract once and skip identical
// work for every subsequent target in the same build invocation.
//
// The store is advisory. Losing it only costs redundant regeneration,
// never incorrect output, and there is no cross-build persistence.
// Implementations must be safe for concurrent use: targets may probe and
// commit concurrently depending on the host build tool's scheduling.
type Store interface {
	// Lookup returns the signature last committed for the contract
	// identity, if any.
	Lookup(identity string) (Signature, bool)

	// Commit records the signature for the contract identity. It is
	// called only after rendering succeeded, so a failed generation for
	// one target never poisons the cache for the next.
	Commit(identity string, sig Signature)
}
