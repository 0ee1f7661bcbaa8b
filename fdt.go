package fdt

import (
	"github.com/scigolib/fdt/internal/codec"
	"github.com/scigolib/fdt/internal/interp"
	"github.com/scigolib/fdt/internal/tree"
)

// Fdt is the root container: header fields, the memory-reservation list,
// and the node arena (spec.md §3). It exclusively owns every node and
// property; Node values returned by its methods borrow from it and must
// not outlive it (spec.md §3 "Ownership summary").
type Fdt struct {
	arena         *tree.Arena
	bootCPUIDPhys uint32
	reservations  []MemoryReservation
}

// New returns a minimal Fdt containing only a root node, mirroring
// Fdt::new() (spec.md §6).
func New() *Fdt {
	return &Fdt{arena: tree.NewArena()}
}

// Parse decodes a DTB byte buffer into an Fdt (spec.md §6 Fdt::parse).
func Parse(buf []byte) (*Fdt, error) {
	if buf == nil {
		return nil, &Error{Kind: ErrInvalidPointer}
	}
	res, err := tree.Parse(buf)
	if err != nil {
		return nil, wrapCodecErr(err)
	}
	rsvs := make([]MemoryReservation, len(res.Reservations))
	for i, r := range res.Reservations {
		rsvs[i] = MemoryReservation{Address: r.Address, Size: r.Size}
	}
	return &Fdt{
		arena:         res.Arena,
		bootCPUIDPhys: res.Header.BootCPUIDPhys,
		reservations:  rsvs,
	}, nil
}

// ParsePointer is the pointer-input counterpart of Parse for callers that
// start from an unsafe.Pointer/length pair rather than a Go byte slice
// (spec.md §6 Fdt::parse_ptr). buf must already have been reconstructed
// into a Go slice by the caller (Go offers no safe equivalent of reading
// directly from a raw pointer); this entry point exists so that boundary
// is explicit in the API rather than folded silently into Parse.
func ParsePointer(buf []byte) (*Fdt, error) {
	if buf == nil {
		return nil, &Error{Kind: ErrInvalidPointer}
	}
	return Parse(buf)
}

// Root returns the root node view.
func (f *Fdt) Root() Node {
	return Node{fdt: f, id: tree.RootID}
}

// GetByPath resolves an absolute path like "/a/b@addr/c" to a node.
func (f *Fdt) GetByPath(path string) (Node, bool) {
	if path == "" {
		return Node{}, false
	}
	id, ok := f.arena.ResolvePath(path)
	if !ok {
		return Node{}, false
	}
	return Node{fdt: f, id: id}, true
}

// GetByPhandle resolves a phandle value to its node.
func (f *Fdt) GetByPhandle(p uint32) (Node, bool) {
	id, ok := f.arena.GetByPhandle(p)
	if !ok {
		return Node{}, false
	}
	return Node{fdt: f, id: id}, true
}

// FindCompatible returns every node whose "compatible" list contains any
// of the given strings, in depth-first order.
func (f *Fdt) FindCompatible(strs ...string) []Node {
	var out []Node
	for _, id := range f.arena.AllIDs() {
		if interp.MatchesCompatible(f.arena, id, strs) {
			out = append(out, Node{fdt: f, id: id})
		}
	}
	return out
}

// ReservedMemoryRegions returns the pre-kernel memory-reservation list, in
// on-wire order.
func (f *Fdt) ReservedMemoryRegions() []MemoryReservation {
	out := make([]MemoryReservation, len(f.reservations))
	copy(out, f.reservations)
	return out
}

// AllNodes returns every node, classified, in depth-first pre-order
// (spec.md §6 Fdt::all_nodes).
func (f *Fdt) AllNodes() []TypedNode {
	ids := f.arena.AllIDs()
	out := make([]TypedNode, len(ids))
	for i, id := range ids {
		n := Node{fdt: f, id: id}
		out[i] = TypedNode{Node: n, Kind: Classify(f, n)}
	}
	return out
}

// Visit calls fn for every node in depth-first pre-order, stopping early if
// fn returns false. It walks the arena itself, in the same order as
// AllNodes, without classifying nodes (spec.md SUPPLEMENTED FEATURES,
// fdt-edit/src/visit.rs).
func (f *Fdt) Visit(fn func(Node) bool) {
	var walk func(tree.NodeID) bool
	walk = func(id tree.NodeID) bool {
		if !fn(Node{fdt: f, id: id}) {
			return false
		}
		for _, c := range f.arena.Children(id) {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(tree.RootID)
}

// Encode serializes the tree back to a DTB buffer (spec.md §6
// fdt.encode()). It never fails on a well-formed tree; it returns an error
// only if the tree violates the name-shape or phandle-uniqueness
// invariants (spec.md §7).
func (f *Fdt) Encode() ([]byte, error) {
	rsvs := make([]codec.MemoryReservation, len(f.reservations))
	for i, r := range f.reservations {
		rsvs[i] = codec.MemoryReservation{Address: r.Address, Size: r.Size}
	}
	buf, err := f.arena.Encode(f.bootCPUIDPhys, rsvs)
	if err != nil {
		return nil, &Error{Kind: ErrInvalidInput, Cause: err}
	}
	return buf, nil
}

// BootCPUIDPhys returns the header's boot_cpuid_phys field.
func (f *Fdt) BootCPUIDPhys() uint32 { return f.bootCPUIDPhys }

// SetBootCPUIDPhys sets the header's boot_cpuid_phys field, preserved
// verbatim through Encode.
func (f *Fdt) SetBootCPUIDPhys(v uint32) { f.bootCPUIDPhys = v }

// AddReservation appends a memory reservation, preserving insertion order
// through Encode/Parse round-trips (spec.md §8 Scenario D).
func (f *Fdt) AddReservation(address, size uint64) {
	f.reservations = append(f.reservations, MemoryReservation{Address: address, Size: size})
}
