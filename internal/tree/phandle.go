package tree

import "encoding/binary"

// phandlePropertyNames lists the property names that carry a node's
// phandle: the standard name and the legacy Linux alias (spec.md §3).
var phandlePropertyNames = [...]string{"phandle", "linux,phandle"}

// rebuildPhandleIndex scans every live node's phandle/linux,phandle
// property and rebuilds the tree-wide phandle -> id map. It is invoked
// lazily by GetByPhandle and unconditionally by the emitter before
// encoding (spec.md §4.2: "the serializer MUST rebuild before emitting").
func (a *Arena) rebuildPhandleIndex() {
	idx := make(map[uint32]NodeID)
	for id, r := range a.nodes {
		if r == nil || r.removed {
			continue
		}
		for _, p := range r.props {
			if !isPhandleName(p.Name) {
				continue
			}
			if len(p.Data) != 4 {
				continue
			}
			v := binary.BigEndian.Uint32(p.Data)
			if v == 0 || v == ^uint32(0) {
				continue // 0 and ~0 are invalid phandle values, spec.md §3
			}
			if _, exists := idx[v]; !exists {
				idx[v] = NodeID(id)
			}
		}
	}
	a.phandleIndex = idx
	a.phandleDirty = false
}

func isPhandleName(name string) bool {
	for _, n := range phandlePropertyNames {
		if n == name {
			return true
		}
	}
	return false
}

// RebuildPhandleIndex forces an immediate rebuild, for callers (the
// emitter) that need the index guaranteed fresh regardless of the dirty
// flag.
func (a *Arena) RebuildPhandleIndex() {
	a.rebuildPhandleIndex()
}

// GetByPhandle resolves a phandle value to a node id, rebuilding the index
// first if it is stale.
func (a *Arena) GetByPhandle(p uint32) (NodeID, bool) {
	if a.phandleIndex == nil || a.phandleDirty {
		a.rebuildPhandleIndex()
	}
	id, ok := a.phandleIndex[p]
	return id, ok
}

// Phandle returns id's own phandle value, if it has one.
func (a *Arena) Phandle(id NodeID) (uint32, bool) {
	r, ok := a.rec(id)
	if !ok {
		return 0, false
	}
	for _, p := range r.props {
		if isPhandleName(p.Name) && len(p.Data) == 4 {
			v := binary.BigEndian.Uint32(p.Data)
			if v != 0 && v != ^uint32(0) {
				return v, true
			}
		}
	}
	return 0, false
}
