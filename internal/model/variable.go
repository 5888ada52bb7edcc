package model

import "sort"

// Variable is a single named environment variable.
type Variable struct {
	Key   string
	Value string
}

// VariableSet maps variable names to values. Keys are unique within a store
// scope; insertion order is irrelevant for storage and sorted for display.
type VariableSet map[string]string

// Keys returns the variable names in sorted order.
func (vs VariableSet) Keys() []string {
	keys := make([]string, 0, len(vs))
	for k := range vs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Variables returns the set as a slice of Variable, sorted by key.
func (vs VariableSet) Variables() []Variable {
	vars := make([]Variable, 0, len(vs))
	for _, k := range vs.Keys() {
		vars = append(vars, Variable{Key: k, Value: vs[k]})
	}
	return vars
}

// Filter returns the subset of vs whose keys appear in keys.
func (vs VariableSet) Filter(keys []string) VariableSet {
	filtered := VariableSet{}
	for _, k := range keys {
		if v, ok := vs[k]; ok {
			filtered[k] = v
		}
	}
	return filtered
}

// ConflictReport is the set of variable keys already present in the target
// store, computed by the prober before any mutation.
type ConflictReport map[string]struct{}

// Add records a key as conflicting.
func (cr ConflictReport) Add(key string) {
	cr[key] = struct{}{}
}

// Has reports whether the key was found in the target store.
func (cr ConflictReport) Has(key string) bool {
	_, ok := cr[key]
	return ok
}

// Empty reports whether no conflicts were found.
func (cr ConflictReport) Empty() bool {
	return len(cr) == 0
}

// Keys returns the conflicting keys in sorted order.
func (cr ConflictReport) Keys() []string {
	keys := make([]string, 0, len(cr))
	for k := range cr {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
