package interp

import "github.com/scigolib/fdt/internal/tree"

// PCI host-bridge fixed cell counts per the PCI bus binding (spec.md
// §4.3): #address-cells=3, #size-cells=2, #interrupt-cells=1.
const (
	PCIAddressCells   = 3
	PCISizeCells      = 2
	PCIInterruptCells = 1
)

// PCISpace classifies the address-space code carried in a PCI ranges
// entry's phys.hi cell (spec.md §4.3 "PCI ranges").
type PCISpace int

const (
	PCISpaceConfig PCISpace = iota
	PCISpaceIO
	PCISpaceMemory32
	PCISpaceMemory64
)

// PCIRangeEntry is one decoded entry of a PCI host bridge's "ranges"
// property.
type PCIRangeEntry struct {
	Space         PCISpace
	Prefetchable  bool
	BusAddress    uint64
	ParentAddress uint64
	Size          uint64
}

// ParsePCIRanges decodes a PCI host bridge's "ranges" property using the
// phys.hi encoding (bits 25:24 = space code, bit 30 = prefetchable) instead
// of the generic ranges shape, per spec.md §4.3.
func ParsePCIRanges(a *tree.Arena, id tree.NodeID) []PCIRangeEntry {
	p, ok := a.GetProperty(id, "ranges")
	if !ok {
		return nil
	}
	parentAC := uint32(DefaultAddressCells)
	if parent, ok := a.Parent(id); ok {
		parentAC, _ = CellsOf(a, parent)
	}
	// phys.hi, phys.mid, phys.lo (3 cells) + parent_addr(parentAC) + size(2 cells)
	tupleCells := 3 + int(parentAC) + PCISizeCells
	tupleBytes := tupleCells * 4
	if tupleBytes == 0 || len(p.Data) < tupleBytes {
		return nil
	}
	n := len(p.Data) / tupleBytes
	out := make([]PCIRangeEntry, 0, n)
	for i := 0; i < n; i++ {
		off := i * tupleBytes
		physHi := readCellsBE32(p.Data[off:off+4], 1)
		physMid := readCellsBE32(p.Data[off+4:off+8], 1)
		physLo := readCellsBE32(p.Data[off+8:off+12], 1)
		off += 12
		parentAddr := readCellsBE32(p.Data[off:off+int(parentAC)*4], int(parentAC))
		off += int(parentAC) * 4
		size := readCellsBE32(p.Data[off:off+PCISizeCells*4], PCISizeCells)

		out = append(out, PCIRangeEntry{
			Space:         pciSpaceFromHi(physHi),
			Prefetchable:  physHi&(1<<30) != 0,
			BusAddress:    physMid<<32 | physLo,
			ParentAddress: parentAddr,
			Size:          size,
		})
	}
	return out
}

func pciSpaceFromHi(hi uint64) PCISpace {
	switch (hi >> 24) & 0x3 {
	case 1:
		return PCISpaceIO
	case 2:
		return PCISpaceMemory32
	case 3:
		return PCISpaceMemory64
	default:
		return PCISpaceConfig
	}
}

// PCIInterruptMapEntry is one decoded entry of a PCI host bridge's
// "interrupt-map" property.
type PCIInterruptMapEntry struct {
	ChildAddrHi, ChildAddrMid, ChildAddrLo uint32
	ChildIRQ                               uint32
	ParentPhandle                          uint32
	ParentIRQ                              []uint32
}

// parseInterruptMap walks interrupt-map entries one at a time, since each
// entry's trailing parent_addr/parent_irq cell count depends on resolving
// that entry's own parent phandle (spec.md §4.3).
func parseInterruptMap(a *tree.Arena, data []byte) []PCIInterruptMapEntry {
	var out []PCIInterruptMapEntry
	pos := 0
	for pos+5*4 <= len(data) {
		childHi := uint32(readCellsBE32(data[pos:pos+4], 1))
		childMid := uint32(readCellsBE32(data[pos+4:pos+8], 1))
		childLo := uint32(readCellsBE32(data[pos+8:pos+12], 1))
		childIRQ := uint32(readCellsBE32(data[pos+12:pos+16], 1))
		parentPhandle := uint32(readCellsBE32(data[pos+16:pos+20], 1))
		pos += 20

		parentAC, parentIC := uint32(DefaultAddressCells), uint32(1)
		if parentID, ok := a.GetByPhandle(parentPhandle); ok {
			parentAC, _ = CellsOf(a, parentID)
			if ic, ok := InterruptCellsOf(a, parentID); ok {
				parentIC = ic
			}
		}
		skip := int(parentAC) * 4
		if pos+skip > len(data) {
			break
		}
		pos += skip

		irqBytes := int(parentIC) * 4
		if pos+irqBytes > len(data) {
			break
		}
		parentIRQ := ReadCellsU32(data[pos : pos+irqBytes])
		pos += irqBytes

		out = append(out, PCIInterruptMapEntry{
			ChildAddrHi: childHi, ChildAddrMid: childMid, ChildAddrLo: childLo,
			ChildIRQ: childIRQ, ParentPhandle: parentPhandle, ParentIRQ: parentIRQ,
		})
	}
	return out
}

// PCIInterruptQuery identifies a function's legs for an interrupt-map
// lookup (spec.md §4.3).
type PCIInterruptQuery struct {
	Bus, Device, Function uint32
	Pin                   uint32 // 1..=4
}

func (q PCIInterruptQuery) encodeAddress() (hi, mid, lo uint32) {
	hi = (q.Bus << 16) | (q.Device << 11) | (q.Function << 8)
	return hi, 0, 0
}

// LookupInterruptMap resolves query against id's interrupt-map (and
// interrupt-map-mask), returning the first matching entry's parent IRQ
// vector. If no "interrupt-map" property exists, or no entry matches, ok
// is false — the computed-IRQ fallback described in spec.md §4.3/§9 is
// opt-in and implemented separately in LookupInterruptMapWithFallback.
func LookupInterruptMap(a *tree.Arena, id tree.NodeID, q PCIInterruptQuery) ([]uint32, bool) {
	mapProp, ok := a.GetProperty(id, "interrupt-map")
	if !ok {
		return nil, false
	}
	maskHi, maskMid, maskLo, maskPin := uint32(0xffffffff), uint32(0xffffffff), uint32(0xffffffff), uint32(0xffffffff)
	if mp, ok := a.GetProperty(id, "interrupt-map-mask"); ok && len(mp.Data) >= 16 {
		cells := ReadCellsU32(mp.Data)
		maskHi, maskMid, maskLo, maskPin = cells[0], cells[1], cells[2], cells[3]
	}

	hi, mid, lo := q.encodeAddress()
	wantHi, wantMid, wantLo, wantPin := hi&maskHi, mid&maskMid, lo&maskLo, q.Pin&maskPin

	for _, e := range parseInterruptMap(a, mapProp.Data) {
		if e.ChildAddrHi&maskHi == wantHi &&
			e.ChildAddrMid&maskMid == wantMid &&
			e.ChildAddrLo&maskLo == wantLo &&
			e.ChildIRQ&maskPin == wantPin {
			return e.ParentIRQ, true
		}
	}
	return nil, false
}

// FallbackIRQ computes the non-standards-compliant legacy IRQ the source
// implementation falls back to on an interrupt-map miss (spec.md §4.3,
// §9). Callers should treat this as opt-in, never the default path.
func FallbackIRQ(device, pin uint32) uint32 {
	return (device*4 + pin) % 32
}

// LookupInterruptMapWithFallback behaves like LookupInterruptMap, but when
// the map is absent or no entry matches and allowFallback is true, returns
// the legacy computed IRQ instead of failing (spec.md open question in
// §9: the fallback is opt-in, not the default).
func LookupInterruptMapWithFallback(a *tree.Arena, id tree.NodeID, q PCIInterruptQuery, allowFallback bool) ([]uint32, bool) {
	if irq, ok := LookupInterruptMap(a, id, q); ok {
		return irq, true
	}
	if !allowFallback {
		return nil, false
	}
	return []uint32{FallbackIRQ(q.Device, q.Pin)}, true
}
