// Package objects implements the typed object universe (§3): a mapping from
// type name to its ordered sequence of object identifiers, plus the reverse
// object -> type lookup the grounder needs when enumerating pvariable
// parameter tuples.
package objects

import "fmt"

// Universe is immutable after construction (§3 "Lifecycles").
type Universe struct {
	byType map[string][]string
	typeOf map[string]string
	// order preserves the declaration order of types themselves, which
	// matters only for deterministic iteration when printing/debugging.
	order []string
}

// New builds a Universe from an ordered list of (type, objects) pairs. An
// empty universe (no entries) is permitted (§4.1 phase 1).
func New(entries []TypeEntry) (*Universe, error) {
	u := &Universe{
		byType: make(map[string][]string, len(entries)),
		typeOf: make(map[string]string),
	}
	for _, e := range entries {
		if _, dup := u.byType[e.Type]; dup {
			return nil, fmt.Errorf("object type %q declared more than once", e.Type)
		}
		objs := append([]string(nil), e.Objects...)
		u.byType[e.Type] = objs
		u.order = append(u.order, e.Type)
		for _, o := range objs {
			if prior, seen := u.typeOf[o]; seen {
				return nil, fmt.Errorf("object %q declared in both type %q and %q", o, prior, e.Type)
			}
			u.typeOf[o] = e.Type
		}
	}
	return u, nil
}

// TypeEntry is one object-type declaration: a type name and its ordered
// member objects, in declaration order (§3: "Iteration order over a type
// is the declaration order and defines the canonical enumeration used by
// aggregations").
type TypeEntry struct {
	Type    string
	Objects []string
}

// Objects returns the ordered objects of typeName, or nil if undeclared.
func (u *Universe) Objects(typeName string) []string {
	return u.byType[typeName]
}

// HasType reports whether typeName was declared.
func (u *Universe) HasType(typeName string) bool {
	_, ok := u.byType[typeName]
	return ok
}

// TypeOf returns the declared type of an object, or "" if unknown.
func (u *Universe) TypeOf(object string) (string, bool) {
	t, ok := u.typeOf[object]
	return t, ok
}

// Types returns all declared type names, in declaration order.
func (u *Universe) Types() []string {
	return append([]string(nil), u.order...)
}

// Product enumerates the Cartesian product of the given param types, each
// tuple in the canonical per-type declaration order (§3, §4.1 phase 3).
// Returns an error (not a panic) if any type is undeclared, matching the
// grounder's UndefinedVariable contract (§4.1).
func (u *Universe) Product(paramTypes []string) ([][]string, error) {
	if len(paramTypes) == 0 {
		return [][]string{{}}, nil
	}
	lists := make([][]string, len(paramTypes))
	for i, t := range paramTypes {
		objs, ok := u.byType[t]
		if !ok {
			return nil, fmt.Errorf("object type %q is not defined", t)
		}
		lists[i] = objs
	}
	result := [][]string{{}}
	for _, list := range lists {
		next := make([][]string, 0, len(result)*len(list))
		for _, prefix := range result {
			for _, obj := range list {
				tuple := append(append([]string(nil), prefix...), obj)
				next = append(next, tuple)
			}
		}
		result = next
	}
	return result, nil
}
