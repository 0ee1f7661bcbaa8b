package interp

import (
	"testing"

	"github.com/scigolib/fdt/internal/tree"
	"github.com/stretchr/testify/require"
)

func TestParsePCIRangesDecodesSpaceAndPrefetch(t *testing.T) {
	a := tree.NewArena()
	host, err := a.AddChild(tree.RootID, "pci@3f00000", nil)
	require.NoError(t, err)
	require.NoError(t, a.SetProperty(host, tree.Property{Name: "#address-cells", Data: be32(PCIAddressCells)}))
	require.NoError(t, a.SetProperty(host, tree.Property{Name: "#size-cells", Data: be32(PCISizeCells)}))

	// One Memory32 non-prefetchable window: phys.hi space=2, prefetch bit off.
	physHi := uint32(2 << 24)
	entry := concatBytes(
		be32(physHi), be32(0), be32(0x80000000), // phys.hi/mid/lo
		be32(0), be32(0x80000000), // parent_addr (root's default ac=2)
		be32(0), be32(0x10000000), // size (2 cells)
	)
	require.NoError(t, a.SetProperty(host, tree.Property{Name: "ranges", Data: entry}))

	ranges := ParsePCIRanges(a, host)
	require.Len(t, ranges, 1)
	require.Equal(t, PCISpaceMemory32, ranges[0].Space)
	require.False(t, ranges[0].Prefetchable)
	require.Equal(t, uint64(0x80000000), ranges[0].BusAddress)
	require.Equal(t, uint64(0x80000000), ranges[0].ParentAddress)
	require.Equal(t, uint64(0x10000000), ranges[0].Size)
}

func TestParsePCIRangesPrefetchableMemory64(t *testing.T) {
	a := tree.NewArena()
	host, err := a.AddChild(tree.RootID, "pci@0", nil)
	require.NoError(t, err)
	physHi := uint32(3<<24) | (1 << 30)
	entry := concatBytes(
		be32(physHi), be32(0x1), be32(0x0),
		be32(0), be32(0x10000000),
		be32(0x1), be32(0x0),
	)
	require.NoError(t, a.SetProperty(host, tree.Property{Name: "ranges", Data: entry}))

	ranges := ParsePCIRanges(a, host)
	require.Len(t, ranges, 1)
	require.Equal(t, PCISpaceMemory64, ranges[0].Space)
	require.True(t, ranges[0].Prefetchable)
	require.Equal(t, uint64(1)<<32, ranges[0].BusAddress)
}

// TestLookupInterruptMapQemuPCI is spec.md §8 Scenario C.
func TestLookupInterruptMapQemuPCI(t *testing.T) {
	a := tree.NewArena()
	gic, err := a.AddChild(tree.RootID, "intc", nil)
	require.NoError(t, err)
	require.NoError(t, a.SetProperty(gic, tree.Property{Name: "phandle", Data: be32(1)}))
	require.NoError(t, a.SetProperty(gic, tree.Property{Name: "#address-cells", Data: be32(0)}))
	require.NoError(t, a.SetProperty(gic, tree.Property{Name: "#interrupt-cells", Data: be32(3)}))
	require.NoError(t, a.SetProperty(gic, tree.Property{Name: "interrupt-controller"}))

	host, err := a.AddChild(tree.RootID, "pci@10000000", nil)
	require.NoError(t, err)

	q := PCIInterruptQuery{Bus: 0, Device: 2, Function: 0, Pin: 1}
	hi, mid, lo := q.encodeAddress()

	entry := concatBytes(
		be32(hi), be32(mid), be32(lo), // child_addr (3 cells)
		be32(q.Pin), // child_irq
		be32(1),     // parent_phandle
		// parent_addr: gic defines #address-cells=0, so zero cells here.
		be32(0), be32(5), be32(4), // parent_irq (3 cells: type, number, flags)
	)
	require.NoError(t, a.SetProperty(host, tree.Property{Name: "interrupt-map", Data: entry}))

	irq, ok := LookupInterruptMap(a, host, q)
	require.True(t, ok)
	require.Equal(t, []uint32{0, 5, 4}, irq)
}

func TestLookupInterruptMapMissWithoutFallback(t *testing.T) {
	a := tree.NewArena()
	host, err := a.AddChild(tree.RootID, "pci@0", nil)
	require.NoError(t, err)

	q := PCIInterruptQuery{Bus: 0, Device: 9, Function: 0, Pin: 1}
	_, ok := LookupInterruptMap(a, host, q)
	require.False(t, ok)

	_, ok = LookupInterruptMapWithFallback(a, host, q, false)
	require.False(t, ok)
}

func TestLookupInterruptMapFallbackOptIn(t *testing.T) {
	a := tree.NewArena()
	host, err := a.AddChild(tree.RootID, "pci@0", nil)
	require.NoError(t, err)

	q := PCIInterruptQuery{Bus: 0, Device: 3, Function: 0, Pin: 2}
	irq, ok := LookupInterruptMapWithFallback(a, host, q, true)
	require.True(t, ok)
	require.Equal(t, []uint32{FallbackIRQ(3, 2)}, irq)
}
