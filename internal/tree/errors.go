package tree

import "fmt"

// ErrNotFound is returned (wrapped) when a node id, path, or phandle
// lookup fails to resolve (spec.md §7: "NotFound ... caller decides
// whether recoverable").
var ErrNotFound = fmt.Errorf("fdt: not found")

func errNotFound(id NodeID) error {
	return fmt.Errorf("%w: node id %d", ErrNotFound, id)
}
