package gen

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kapok-dev/kapok"
)

// storeCapacity bounds the number of cached contract entries. Eviction is
// harmless: the store is advisory and an evicted entry only costs one
// redundant regeneration.
const storeCapacity = 4096

// BuildStore is the in-process, build-scoped generation cache: contract
// identity to last-committed signature. It is created once per build
// invocation and passed by reference into every target's pipeline, so
// tests construct an isolated store per case instead of sharing process
// state.
//
// Entries for different contracts are fully independent. The backing map
// is safe for concurrent probes and commits; the wider read-check-commit
// sequence is serialized per contract identity by the Generator.
type BuildStore struct {
	entries *lru.Cache[string, kapok.Signature]
}

// NewBuildStore creates an empty build-scoped store.
func NewBuildStore() *BuildStore {
	entries, err := lru.New[string, kapok.Signature](storeCapacity)
	if err != nil {
		// lru.New fails only for a non-positive size.
		panic(err)
	}
	return &BuildStore{entries: entries}
}

// Lookup implements kapok.Store.
func (s *BuildStore) Lookup(identity string) (kapok.Signature, bool) {
	return s.entries.Get(identity)
}

// Commit implements kapok.Store.
func (s *BuildStore) Commit(identity string, sig kapok.Signature) {
	s.entries.Add(identity, sig)
}

// Len returns the number of committed entries.
func (s *BuildStore) Len() int {
	return s.entries.Len()
}

// Purge drops every entry. Dropping the cache never causes incorrect
// output, only regeneration.
func (s *BuildStore) Purge() {
	s.entries.Purge()
}

var _ kapok.Store = (*BuildStore)(nil)
