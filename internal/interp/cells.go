// Package interp implements the semantic layer that gives a parsed FDT
// arena its meaning: address-cell inheritance, ranges-based address
// translation, reg decoding, phandle and interrupt-parent resolution, and
// the PCI interrupt-map walk (spec.md §4.3). It operates purely on
// internal/tree.Arena snapshots — it holds no state of its own, per the
// "context cursor, not backreferences" design note in spec.md §9.
package interp

import (
	"encoding/binary"

	"github.com/scigolib/fdt/internal/tree"
)

// DefaultAddressCells and DefaultSizeCells are the values a node's children
// use when it defines no #address-cells/#size-cells property, per the
// Devicetree Specification (spec.md §4.3).
const (
	DefaultAddressCells = 2
	DefaultSizeCells    = 1
)

// ReadCellsU32 decodes data as a sequence of big-endian 32-bit cells.
func ReadCellsU32(data []byte) []uint32 {
	n := len(data) / 4
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		out[i] = binary.BigEndian.Uint32(data[i*4 : i*4+4])
	}
	return out
}

// readCellsBE32 decodes the first n 32-bit big-endian cells at data into a
// single value, high cell first. n must be 0, 1, or 2 to fit in a uint64
// (invariant: #address-cells/#size-cells ∈ {0,1,2}, spec.md §3 invariant 4).
func readCellsBE32(data []byte, n int) uint64 {
	var v uint64
	for i := 0; i < n; i++ {
		v = v<<32 | uint64(binary.BigEndian.Uint32(data[i*4:i*4+4]))
	}
	return v
}

// putCellsBE32 encodes v into n big-endian 32-bit cells, high cell first.
func putCellsBE32(v uint64, n int) []byte {
	out := make([]byte, n*4)
	for i := n - 1; i >= 0; i-- {
		binary.BigEndian.PutUint32(out[i*4:i*4+4], uint32(v))
		v >>= 32
	}
	return out
}

// CellsOf returns the #address-cells/#size-cells values that id defines
// for ITS children, falling back to the spec defaults when absent.
func CellsOf(a *tree.Arena, id tree.NodeID) (addressCells, sizeCells uint32) {
	addressCells, sizeCells = DefaultAddressCells, DefaultSizeCells
	if p, ok := a.GetProperty(id, "#address-cells"); ok && len(p.Data) == 4 {
		addressCells = binary.BigEndian.Uint32(p.Data)
	}
	if p, ok := a.GetProperty(id, "#size-cells"); ok && len(p.Data) == 4 {
		sizeCells = binary.BigEndian.Uint32(p.Data)
	}
	return addressCells, sizeCells
}

// InterruptCellsOf returns #interrupt-cells defined by id, if any.
func InterruptCellsOf(a *tree.Arena, id tree.NodeID) (uint32, bool) {
	if p, ok := a.GetProperty(id, "#interrupt-cells"); ok && len(p.Data) == 4 {
		return binary.BigEndian.Uint32(p.Data), true
	}
	return 0, false
}

// ParentCells returns the address/size cells that id's parent defines for
// id (i.e. the cells governing id's own reg property). Root's own
// "virtual parent" is treated as defining the spec defaults, since reg is
// never present on root itself.
func ParentCells(a *tree.Arena, id tree.NodeID) (addressCells, sizeCells uint32) {
	parent, ok := a.Parent(id)
	if !ok {
		return DefaultAddressCells, DefaultSizeCells
	}
	return CellsOf(a, parent)
}
