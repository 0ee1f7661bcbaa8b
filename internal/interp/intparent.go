package interp

import (
	"encoding/binary"

	"github.com/scigolib/fdt/internal/tree"
)

// InterruptParent resolves id's interrupt-parent: its own "interrupt-parent"
// property if present, else the nearest ancestor that has one (spec.md
// §4.3). It returns the resolved controller's node id.
func InterruptParent(a *tree.Arena, id tree.NodeID) (tree.NodeID, bool) {
	cur := id
	for {
		if p, ok := a.GetProperty(cur, "interrupt-parent"); ok && len(p.Data) == 4 {
			phandle := binary.BigEndian.Uint32(p.Data)
			return a.GetByPhandle(phandle)
		}
		parent, ok := a.Parent(cur)
		if !ok {
			return tree.NoNode, false
		}
		cur = parent
	}
}

// IsInterruptController reports whether id carries the marker empty
// property "interrupt-controller" (spec.md §4.4).
func IsInterruptController(a *tree.Arena, id tree.NodeID) bool {
	_, ok := a.GetProperty(id, "interrupt-controller")
	return ok
}
