package fdt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func be32Pub(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func concatPub(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// TestRegsRaspberryPiSerial is spec.md §8 Scenario B.
func TestRegsRaspberryPiSerial(t *testing.T) {
	f := New()
	soc, err := f.Root().AddChild("soc",
		Property{Name: "#address-cells", Data: be32Pub(1)},
		Property{Name: "#size-cells", Data: be32Pub(1)},
		// Root keeps the default #address-cells=2, so the parent base takes two cells.
		Property{Name: "ranges", Data: concatPub(be32Pub(0x7e000000), be32Pub(0), be32Pub(0xfe000000), be32Pub(0x01800000))},
	)
	require.NoError(t, err)

	serial, err := soc.AddChild("serial@7e215040",
		Property{Name: "reg", Data: concatPub(be32Pub(0x7e215040), be32Pub(0x40))},
	)
	require.NoError(t, err)

	regs := serial.Regs()
	require.Len(t, regs, 1)
	require.Equal(t, RegEntry{
		ChildBusAddress: 0x7e215040,
		ParentAddress:   0xfe215040,
		Size:            0x40,
		HasSize:         true,
	}, regs[0])
}

// TestPCIRangesQemu is spec.md §8 Scenario A (PCI class decode portion).
func TestPCIRangesQemu(t *testing.T) {
	f := New()
	pcie, err := f.Root().AddChild("pcie@10000000",
		Property{Name: "#address-cells", Data: be32Pub(3)},
		Property{Name: "#size-cells", Data: be32Pub(2)},
		Property{Name: "ranges", Data: concatPub(
			// range 0: IO, bus=0x0, cpu=0x3eff0000, size=0x10000
			be32Pub(1<<24), be32Pub(0), be32Pub(0x0),
			be32Pub(0), be32Pub(0x3eff0000),
			be32Pub(0), be32Pub(0x10000),
			// range 1: Memory32, bus=cpu=0x40000000, size=0x40000000 (identity window)
			be32Pub(2<<24), be32Pub(0), be32Pub(0x40000000),
			be32Pub(0), be32Pub(0x40000000),
			be32Pub(0), be32Pub(0x40000000),
		)},
	)
	require.NoError(t, err)

	_, err = pcie.AddChild("pci@0,0")
	require.NoError(t, err)

	view, ok := pcie.AsPCI()
	require.True(t, ok)
	ranges := view.Ranges()
	require.Len(t, ranges, 2)
	require.Equal(t, PCISpaceIO, ranges[0].Space)
	require.Equal(t, uint64(0x0), ranges[0].BusAddress)
	require.Equal(t, uint64(0x3eff0000), ranges[0].ParentAddress)

	require.Equal(t, PCISpaceMemory32, ranges[1].Space)
	require.Equal(t, ranges[1].BusAddress, ranges[1].ParentAddress, "memory window is identity-mapped")
}

func TestRangesAbsentVsIdentity(t *testing.T) {
	f := New()
	leaf, err := f.Root().AddChild("leaf")
	require.NoError(t, err)
	_, present := leaf.Ranges()
	require.False(t, present)

	bridge, err := f.Root().AddChild("bridge", Property{Name: "ranges", Data: nil})
	require.NoError(t, err)
	entries, present := bridge.Ranges()
	require.True(t, present)
	require.Empty(t, entries)
}

func TestInterruptParentViaNode(t *testing.T) {
	f := New()
	gic, err := f.Root().AddChild("gic",
		Property{Name: "phandle", Data: be32Pub(1)},
		Property{Name: "interrupt-controller"},
	)
	require.NoError(t, err)
	dev, err := f.Root().AddChild("dev", Property{Name: "interrupt-parent", Data: be32Pub(1)})
	require.NoError(t, err)

	parent, ok := dev.InterruptParent()
	require.True(t, ok)
	require.Equal(t, gic.Path(), parent.Path())
}

func TestPropertyAccessors(t *testing.T) {
	f := New()
	n, err := f.Root().AddChild("uart@0",
		Property{Name: "compatible", Data: []byte("arm,pl011\x00")},
		Property{Name: "clock-frequency", Data: be32Pub(48000000)},
	)
	require.NoError(t, err)

	p, ok := n.GetProperty("clock-frequency")
	require.True(t, ok)
	v, ok := p.AsU32()
	require.True(t, ok)
	require.Equal(t, uint32(48000000), v)

	require.Equal(t, []string{"arm,pl011"}, n.Compatibles())
}
