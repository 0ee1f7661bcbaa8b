package tree

import (
	"fmt"

	"github.com/scigolib/fdt/internal/codec"
)

// ErrInvalidTree is returned by Encode when the tree violates an emitter
// precondition (spec.md §7: invariant 1 — name shape — or invariant 3 —
// phandle uniqueness).
var ErrInvalidTree = fmt.Errorf("fdt: invalid tree")

// Encode serializes the arena to a DTB buffer: walk depth-first emitting
// BEGIN_NODE/PROP/END_NODE, append END, intern property names into the
// strings block, then assemble header+rsvmap+struct+strings (spec.md
// §4.5). bootCPUIDPhys and rsvs are preserved verbatim from the Fdt's
// stored header/reservation-list state.
func (a *Arena) Encode(bootCPUIDPhys uint32, rsvs []codec.MemoryReservation) ([]byte, error) {
	a.RebuildPhandleIndex()
	if err := a.validateForEncode(); err != nil {
		return nil, err
	}

	strs := codec.NewStringTable()
	w := codec.NewWriter(strs)

	var walk func(NodeID)
	walk = func(id NodeID) {
		name, _ := a.Name(id)
		w.BeginNode(name)
		for _, p := range a.Properties(id) {
			w.Prop(p.Name, p.Data)
		}
		for _, c := range a.Children(id) {
			walk(c)
		}
		w.EndNode()
	}
	walk(RootID)
	w.End()

	return codec.Assemble(bootCPUIDPhys, rsvs, w.Bytes(), strs.Bytes()), nil
}

func (a *Arena) validateForEncode() error {
	seenPhandle := make(map[uint32]NodeID)
	for id, r := range a.nodes {
		if r == nil || r.removed {
			continue
		}
		nid := NodeID(id)
		if nid != RootID {
			if r.name == "" {
				return fmt.Errorf("%w: node %d has an empty name", ErrInvalidTree, id)
			}
		}
		if p, ok := a.GetProperty(nid, "phandle"); ok && len(p.Data) == 4 {
			v := order4(p.Data)
			if v != 0 && v != ^uint32(0) {
				if other, exists := seenPhandle[v]; exists && other != nid {
					return fmt.Errorf("%w: phandle 0x%x used by both node %d and %d", ErrInvalidTree, v, other, id)
				}
				seenPhandle[v] = nid
			}
		}
	}
	return nil
}

func order4(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}
