package fdt

import (
	"github.com/scigolib/fdt/internal/interp"
	"github.com/scigolib/fdt/internal/tree"
)

// Node is a read/write view onto one node of an Fdt's arena. It borrows
// from its Fdt and must not outlive it (spec.md §3 "Ownership summary").
// The zero Node is invalid; always obtain one from an Fdt method.
type Node struct {
	fdt *Fdt
	id  tree.NodeID
}

// Valid reports whether n still refers to a live node (false after the
// node, or an ancestor of it, has been removed).
func (n Node) Valid() bool {
	return n.fdt != nil && n.fdt.arena.Exists(n.id)
}

// Name returns the node's "base-name[@unit-address]" form, or "" for root.
func (n Node) Name() string {
	name, _ := n.fdt.arena.Name(n.id)
	return name
}

// Path reconstructs the node's absolute path from root.
func (n Node) Path() string {
	p, _ := n.fdt.arena.Path(n.id)
	return p
}

// Properties returns the node's properties in insertion order.
func (n Node) Properties() []Property {
	ps := n.fdt.arena.Properties(n.id)
	out := make([]Property, len(ps))
	for i, p := range ps {
		out[i] = fromTreeProp(p)
	}
	return out
}

// GetProperty returns the named property, if present.
func (n Node) GetProperty(name string) (Property, bool) {
	p, ok := n.fdt.arena.GetProperty(n.id, name)
	if !ok {
		return Property{}, false
	}
	return fromTreeProp(p), true
}

// Children returns the node's direct children, in insertion order.
func (n Node) Children() []Node {
	ids := n.fdt.arena.Children(n.id)
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = Node{fdt: n.fdt, id: id}
	}
	return out
}

// Parent returns the node's parent, if any (root has none).
func (n Node) Parent() (Node, bool) {
	id, ok := n.fdt.arena.Parent(n.id)
	if !ok {
		return Node{}, false
	}
	return Node{fdt: n.fdt, id: id}, true
}

// AddressCells returns the #address-cells this node defines for its
// children (default 2 if absent).
func (n Node) AddressCells() uint32 {
	ac, _ := interp.CellsOf(n.fdt.arena, n.id)
	return ac
}

// SizeCells returns the #size-cells this node defines for its children
// (default 1 if absent).
func (n Node) SizeCells() uint32 {
	_, sc := interp.CellsOf(n.fdt.arena, n.id)
	return sc
}

// InterruptCells returns the #interrupt-cells this node defines, if any.
func (n Node) InterruptCells() (uint32, bool) {
	return interp.InterruptCellsOf(n.fdt.arena, n.id)
}

// Phandle returns the node's own phandle value, if it has one.
func (n Node) Phandle() (uint32, bool) {
	return n.fdt.arena.Phandle(n.id)
}

// Status returns the node's own "status" value, defaulting to "okay";
// ancestors are not consulted (Enabled applies status propagation).
func (n Node) Status() string {
	return interp.Status(n.fdt.arena, n.id)
}

// Enabled reports whether the node and every ancestor is "okay"/"ok".
func (n Node) Enabled() bool {
	return interp.IsEnabled(n.fdt.arena, n.id)
}

// Compatibles returns the node's "compatible" list, most-specific first.
func (n Node) Compatibles() []string {
	return interp.Compatibles(n.fdt.arena, n.id)
}

// DeviceType returns the node's "device_type" property, if present.
func (n Node) DeviceType() (string, bool) {
	return interp.DeviceType(n.fdt.arena, n.id)
}

// Regs decodes the node's "reg" property using its parent's address/size
// cells, with each entry's address translated up through ranges (spec.md
// §4.3).
func (n Node) Regs() []RegEntry {
	entries := interp.ParseReg(n.fdt.arena, n.id)
	out := make([]RegEntry, len(entries))
	for i, e := range entries {
		out[i] = RegEntry{
			ChildBusAddress: e.ChildBusAddress,
			ParentAddress:   e.ParentAddress,
			Size:            e.Size,
			HasSize:         e.HasSize,
		}
	}
	return out
}

// Ranges decodes the node's own "ranges" property (the address-translation
// windows it defines for ITS children).
func (n Node) Ranges() ([]RangeEntry, bool) {
	entries, present := interp.ParseRanges(n.fdt.arena, n.id)
	if !present {
		return nil, false
	}
	out := make([]RangeEntry, len(entries))
	for i, e := range entries {
		out[i] = RangeEntry{ChildBase: e.ChildBase, ParentBase: e.ParentBase, Length: e.Length}
	}
	return out, true
}

// InterruptParent resolves the node's effective interrupt-parent (its own
// property, or the nearest ancestor's), returning the controller node.
func (n Node) InterruptParent() (Node, bool) {
	id, ok := interp.InterruptParent(n.fdt.arena, n.id)
	if !ok {
		return Node{}, false
	}
	return Node{fdt: n.fdt, id: id}, true
}

// RegEntry is one decoded "reg" tuple (spec.md §3).
type RegEntry struct {
	ChildBusAddress uint64
	ParentAddress   uint64
	Size            uint64
	HasSize         bool
}

// RangeEntry is one decoded "ranges" window (spec.md §3).
type RangeEntry struct {
	ChildBase  uint64
	ParentBase uint64
	Length     uint64
}
