package lifted

import (
	"github.com/rddlgo/rddlgo/internal/objects"
	"golang.org/x/text/unicode/norm"
)

// NormalizeIdentifier applies the same "normalize untrusted bytes once, at
// the boundary" treatment the teacher's lexer gives source text
// (internal/lexer/normalize.go) to the one piece of untrusted text RDDLGO
// itself ingests: object and non-fluent identifiers arriving from the
// instance data supplied by the external parser collaborator (§6). This is
// not lexing PPDL (out of scope, §1) — it only guards against object names
// that are byte-distinct but visually identical (NFC vs NFD) from silently
// producing two different grounded fluents.
func NormalizeIdentifier(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// BuildUniverse constructs the object universe from the Lifted Model's
// non-fluents object block (§4.1 phase 1), normalizing every identifier at
// ingestion.
func BuildUniverse(entries []TypeEntry) (*objects.Universe, error) {
	normalized := make([]objects.TypeEntry, len(entries))
	for i, e := range entries {
		objs := make([]string, len(e.Objects))
		for j, o := range e.Objects {
			objs[j] = NormalizeIdentifier(o)
		}
		normalized[i] = objects.TypeEntry{Type: NormalizeIdentifier(e.Type), Objects: objs}
	}
	return objects.New(normalized)
}
