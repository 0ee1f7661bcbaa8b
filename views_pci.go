package fdt

import "github.com/scigolib/fdt/internal/interp"

// PCI is a typed view over a node classified as a PCI host bridge:
// #address-cells=3, #size-cells=2, #interrupt-cells=1 fixed by the PCI bus
// binding (spec.md §4.3). Supplemented from
// original_source/fdt-edit/src/node/view/pci.rs, the largest single file
// in the original source, which decodes the full PCI range-space encoding
// the distilled spec only sketches.
type PCI struct {
	Node
}

// PCISpace classifies a PCI ranges window's address space.
type PCISpace int

const (
	PCISpaceConfig PCISpace = iota
	PCISpaceIO
	PCISpaceMemory32
	PCISpaceMemory64
)

func (s PCISpace) String() string {
	switch s {
	case PCISpaceIO:
		return "io"
	case PCISpaceMemory32:
		return "memory32"
	case PCISpaceMemory64:
		return "memory64"
	default:
		return "config"
	}
}

// PCIRange is one decoded window of the host bridge's "ranges" property,
// using the phys.hi space/prefetchable encoding instead of the generic
// ranges shape (spec.md §4.3 "PCI ranges").
type PCIRange struct {
	Space         PCISpace
	Prefetchable  bool
	BusAddress    uint64
	ParentAddress uint64
	Size          uint64
}

// Ranges decodes the host bridge's "ranges" property.
func (p PCI) Ranges() []PCIRange {
	entries := interp.ParsePCIRanges(p.fdt.arena, p.id)
	out := make([]PCIRange, len(entries))
	for i, e := range entries {
		out[i] = PCIRange{
			Space:         PCISpace(e.Space),
			Prefetchable:  e.Prefetchable,
			BusAddress:    e.BusAddress,
			ParentAddress: e.ParentAddress,
			Size:          e.Size,
		}
	}
	return out
}

// InterruptQuery identifies one PCI function's interrupt leg for a
// Lookup/LookupWithFallback call (spec.md §4.3).
type InterruptQuery struct {
	Bus, Device, Function uint32
	Pin                   uint32 // 1..=4
}

// Lookup resolves q against the host bridge's interrupt-map (and
// interrupt-map-mask), returning the first matching entry's parent IRQ
// cells. On a miss, ok is false — the legacy computed-IRQ fallback is
// opt-in via LookupWithFallback, never silent here (spec.md §9 open
// question resolution).
func (p PCI) Lookup(q InterruptQuery) ([]uint32, bool) {
	return interp.LookupInterruptMap(p.fdt.arena, p.id, toInterpQuery(q))
}

// LookupWithFallback behaves like Lookup, but returns the legacy
// "(device*4+pin) mod 32" IRQ on a miss when allowFallback is true
// (spec.md §4.3/§9).
func (p PCI) LookupWithFallback(q InterruptQuery, allowFallback bool) ([]uint32, bool) {
	return interp.LookupInterruptMapWithFallback(p.fdt.arena, p.id, toInterpQuery(q), allowFallback)
}

func toInterpQuery(q InterruptQuery) interp.PCIInterruptQuery {
	return interp.PCIInterruptQuery{Bus: q.Bus, Device: q.Device, Function: q.Function, Pin: q.Pin}
}
