package gen

// ResolveDependencies validates the auto-wire references between the
// contracts of one batch. It returns the wired lookup table consumed by
// the Builder, and one error per broken reference: a DependencyError with
// the offending chain for references to contracts that are not part of
// the batch, and for reference cycles.
//
// Contracts with broken references are excluded from the wired table;
// the caller decides whether to skip them entirely.
func ResolveDependencies(contracts []*Contract) (map[string]*Contract, []error) {
	byName := make(map[string]*Contract, len(contracts))
	for _, c := range contracts {
		byName[c.QualifiedName()] = c
	}
	var errs []error
	broken := make(map[string]bool)
	for _, c := range contracts {
		from := c.QualifiedName()
		for _, ref := range c.Uses {
			if _, ok := byName[ref]; !ok {
				errs = append(errs, &DependencyError{
					Contract: from,
					Missing:  ref,
					Chain:    []string{from, ref},
				})
				broken[from] = true
			}
		}
	}
	// Cycle detection over the resolvable references.
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(contracts))
	var visit func(name string, path []string)
	visit = func(name string, path []string) {
		switch state[name] {
		case visiting:
			// Close the cycle at its first occurrence in the path.
			start := 0
			for i, p := range path {
				if p == name {
					start = i
					break
				}
			}
			cycle := append(append([]string(nil), path[start:]...), name)
			errs = append(errs, &DependencyError{
				Contract: name,
				Circular: true,
				Chain:    cycle,
			})
			for _, p := range cycle {
				broken[p] = true
			}
			return
		case done:
			return
		}
		state[name] = visiting
		c := byName[name]
		for _, ref := range c.Uses {
			if _, ok := byName[ref]; ok {
				visit(ref, append(path, name))
			}
		}
		state[name] = done
	}
	for _, c := range contracts {
		if state[c.QualifiedName()] == unvisited {
			visit(c.QualifiedName(), nil)
		}
	}
	wired := make(map[string]*Contract, len(contracts))
	for _, c := range contracts {
		if !broken[c.QualifiedName()] {
			wired[c.QualifiedName()] = c
		}
	}
	return wired, errs
}
