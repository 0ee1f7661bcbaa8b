package interp

import "github.com/scigolib/fdt/internal/tree"

// RangeEntry is one decoded window of a node's "ranges" property: child bus
// addresses in [ChildBase, ChildBase+Length) map to ParentBase +
// (addr - ChildBase) in the node's own parent's bus (spec.md §3).
type RangeEntry struct {
	ChildBase  uint64
	ParentBase uint64
	Length     uint64
}

// ParseRanges decodes id's own "ranges" property: entries encode
// (child_bus_cells = ac of id, parent_bus_cells = ac of id's parent,
// size_cells = sc of id), per spec.md §4.3.
func ParseRanges(a *tree.Arena, id tree.NodeID) ([]RangeEntry, bool) {
	p, ok := a.GetProperty(id, "ranges")
	if !ok {
		return nil, false
	}
	if len(p.Data) == 0 {
		return []RangeEntry{}, true // zero-length: identity translation
	}

	childAC, sizeC := CellsOf(a, id)
	var parentAC uint32 = DefaultAddressCells
	if parent, ok := a.Parent(id); ok {
		parentAC, _ = CellsOf(a, parent)
	}

	tupleCells := int(childAC) + int(parentAC) + int(sizeC)
	tupleBytes := tupleCells * 4
	if tupleBytes == 0 {
		return nil, true
	}
	n := len(p.Data) / tupleBytes
	out := make([]RangeEntry, 0, n)
	for i := 0; i < n; i++ {
		off := i * tupleBytes
		childBase := readCellsBE32(p.Data[off:off+int(childAC)*4], int(childAC))
		off += int(childAC) * 4
		parentBase := readCellsBE32(p.Data[off:off+int(parentAC)*4], int(parentAC))
		off += int(parentAC) * 4
		length := readCellsBE32(p.Data[off:off+int(sizeC)*4], int(sizeC))
		out = append(out, RangeEntry{ChildBase: childBase, ParentBase: parentBase, Length: length})
	}
	return out, true
}

// translateOneLevel applies node's ranges to addr. If node defines no
// ranges, ok is false (caller stops composing, spec.md §9). If node's
// ranges is identity (present + empty) or no window matches addr, the
// address passes through unchanged at this level.
func translateOneLevel(a *tree.Arena, node tree.NodeID, addr uint64) (translated uint64, ok bool) {
	entries, present := ParseRanges(a, node)
	if !present {
		return addr, false
	}
	for _, e := range entries {
		if addr >= e.ChildBase && addr < e.ChildBase+e.Length {
			return e.ParentBase + (addr - e.ChildBase), true
		}
	}
	return addr, true
}

// Translate composes ranges translations bottom-up starting from addr in
// the bus address space of owner's children, walking owner, owner's
// parent, and so on, stopping at the first ancestor with no "ranges"
// property (spec.md §9: "compose ranges up to the root or to the nearest
// ancestor without a ranges property, identity thereafter").
func Translate(a *tree.Arena, owner tree.NodeID, addr uint64) uint64 {
	cur := owner
	for {
		translated, ok := translateOneLevel(a, cur, addr)
		if !ok {
			return addr
		}
		addr = translated
		parent, ok := a.Parent(cur)
		if !ok {
			return addr
		}
		cur = parent
	}
}
