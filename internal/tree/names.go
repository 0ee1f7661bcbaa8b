package tree

import "strings"

// splitUnitAddress splits a node's "base-name[@unit-address]" form into its
// base name and unit-address (without the '@'); addr is "" if name carries
// no '@' segment (spec.md §3 invariant 1).
func splitUnitAddress(name string) (base, addr string) {
	if i := strings.IndexByte(name, '@'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}
