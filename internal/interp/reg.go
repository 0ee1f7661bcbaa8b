package interp

import "github.com/scigolib/fdt/internal/tree"

// RegEntry is one decoded "reg" tuple: the address as written in the
// node's own bus (ChildBusAddress), the same address translated up through
// ranges to the root/outermost bus (ParentAddress), and an optional size
// (absent when the parent's #size-cells is 0), per spec.md §3.
type RegEntry struct {
	ChildBusAddress uint64
	ParentAddress   uint64
	Size            uint64
	HasSize         bool
}

// ParseReg decodes id's "reg" property using id's parent's #address-cells
// / #size-cells, translating each address up through ranges (spec.md
// §4.3). Per spec.md §3 invariant 5 and §7, if the payload length is not a
// multiple of 4*(ac+sc), parsing stops after the last whole tuple and
// returns the partial list with no error.
func ParseReg(a *tree.Arena, id tree.NodeID) []RegEntry {
	p, ok := a.GetProperty(id, "reg")
	if !ok {
		return nil
	}
	parent, hasParent := a.Parent(id)
	ac, sc := uint32(DefaultAddressCells), uint32(DefaultSizeCells)
	if hasParent {
		ac, sc = CellsOf(a, parent)
	}
	tupleBytes := int(ac+sc) * 4
	if tupleBytes == 0 {
		return nil
	}
	n := len(p.Data) / tupleBytes
	out := make([]RegEntry, 0, n)
	for i := 0; i < n; i++ {
		off := i * tupleBytes
		childAddr := readCellsBE32(p.Data[off:off+int(ac)*4], int(ac))
		off += int(ac) * 4
		entry := RegEntry{ChildBusAddress: childAddr}
		if sc > 0 {
			entry.Size = readCellsBE32(p.Data[off:off+int(sc)*4], int(sc))
			entry.HasSize = true
		}
		if hasParent {
			entry.ParentAddress = Translate(a, parent, childAddr)
		} else {
			entry.ParentAddress = childAddr
		}
		out = append(out, entry)
	}
	return out
}

// EncodeReg encodes entries back into a "reg" property payload using ac/sc
// cells, writing each entry's ChildBusAddress (the untranslated, editable
// form) and Size.
func EncodeReg(entries []RegEntry, addressCells, sizeCells uint32) []byte {
	out := make([]byte, 0, len(entries)*int(addressCells+sizeCells)*4)
	for _, e := range entries {
		out = append(out, putCellsBE32(e.ChildBusAddress, int(addressCells))...)
		if sizeCells > 0 {
			out = append(out, putCellsBE32(e.Size, int(sizeCells))...)
		}
	}
	return out
}
