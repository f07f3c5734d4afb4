package ground

import "strings"

const prime = "'"

// groundedName computes grounded-name = base + "_" + args.join("_") for
// arity >= 1, else base itself (§3). A trailing prime on base (denoting a
// next-state reference) is stripped before joining and reattached after, so
// `x'(?o)` grounds to `x_o1'` rather than `x'_o1`.
func groundedName(base string, args []string) string {
	primed := strings.HasSuffix(base, prime)
	stripped := strings.TrimSuffix(base, prime)
	name := stripped
	if len(args) > 0 {
		name = stripped + "_" + strings.Join(args, "_")
	}
	if primed {
		name += prime
	}
	return name
}
