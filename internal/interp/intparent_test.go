package interp

import (
	"testing"

	"github.com/scigolib/fdt/internal/tree"
	"github.com/stretchr/testify/require"
)

func TestInterruptParentOwnProperty(t *testing.T) {
	a := tree.NewArena()
	gic, err := a.AddChild(tree.RootID, "gic", nil)
	require.NoError(t, err)
	require.NoError(t, a.SetProperty(gic, tree.Property{Name: "phandle", Data: be32(1)}))
	require.NoError(t, a.SetProperty(gic, tree.Property{Name: "interrupt-controller"}))

	dev, err := a.AddChild(tree.RootID, "dev", nil)
	require.NoError(t, err)
	require.NoError(t, a.SetProperty(dev, tree.Property{Name: "interrupt-parent", Data: be32(1)}))

	resolved, ok := InterruptParent(a, dev)
	require.True(t, ok)
	require.Equal(t, gic, resolved)
	require.True(t, IsInterruptController(a, gic))
	require.False(t, IsInterruptController(a, dev))
}

func TestInterruptParentInheritedFromAncestor(t *testing.T) {
	a := tree.NewArena()
	gic, err := a.AddChild(tree.RootID, "gic", nil)
	require.NoError(t, err)
	require.NoError(t, a.SetProperty(gic, tree.Property{Name: "phandle", Data: be32(2)}))
	require.NoError(t, a.SetProperty(tree.RootID, tree.Property{Name: "interrupt-parent", Data: be32(2)}))

	bus, err := a.AddChild(tree.RootID, "bus", nil)
	require.NoError(t, err)
	dev, err := a.AddChild(bus, "dev", nil)
	require.NoError(t, err)

	resolved, ok := InterruptParent(a, dev)
	require.True(t, ok)
	require.Equal(t, gic, resolved)
}

func TestInterruptParentNoneFound(t *testing.T) {
	a := tree.NewArena()
	dev, err := a.AddChild(tree.RootID, "dev", nil)
	require.NoError(t, err)

	_, ok := InterruptParent(a, dev)
	require.False(t, ok)
}
