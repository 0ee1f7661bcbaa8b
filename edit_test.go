package fdt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRemoveNodePreservesSiblings is spec.md §8 Scenario F.
func TestRemoveNodePreservesSiblings(t *testing.T) {
	f := New()
	_, err := f.Root().AddChild("node1")
	require.NoError(t, err)
	_, err = f.Root().AddChild("node2")
	require.NoError(t, err)
	_, err = f.Root().AddChild("node3")
	require.NoError(t, err)

	removed, ok := f.RemoveNode("/node2")
	require.True(t, ok)
	require.Equal(t, "node2", removed.Name())

	names := make([]string, 0, 2)
	for _, c := range f.Root().Children() {
		names = append(names, c.Name())
	}
	require.Equal(t, []string{"node1", "node3"}, names)

	_, ok = f.GetByPath("/node2")
	require.False(t, ok)
}

func TestRemoveNodeRejectsRootAndMissingPath(t *testing.T) {
	f := New()
	_, ok := f.RemoveNode("/")
	require.False(t, ok)
	_, ok = f.RemoveNode("/nope")
	require.False(t, ok)
}

func TestSetPropertyU32AndStringAndRemove(t *testing.T) {
	f := New()
	n, err := f.Root().AddChild("dev")
	require.NoError(t, err)

	require.NoError(t, n.SetPropertyU32("reg-count", 4))
	p, ok := n.GetProperty("reg-count")
	require.True(t, ok)
	v, ok := p.AsU32()
	require.True(t, ok)
	require.Equal(t, uint32(4), v)

	require.NoError(t, n.SetPropertyString("status", "okay"))
	s, ok := n.GetProperty("status")
	require.True(t, ok)
	str, ok := s.AsString()
	require.True(t, ok)
	require.Equal(t, "okay", str)

	require.True(t, n.RemoveProperty("status"))
	require.False(t, n.RemoveProperty("status"))
}

func TestRenameNode(t *testing.T) {
	f := New()
	n, err := f.Root().AddChild("old-name")
	require.NoError(t, err)
	require.NoError(t, n.Rename("new-name"))
	require.Equal(t, "new-name", n.Name())

	_, ok := f.GetByPath("/old-name")
	require.False(t, ok)
	_, ok = f.GetByPath("/new-name")
	require.True(t, ok)
}

func TestNodeValidAfterRemoval(t *testing.T) {
	f := New()
	n, err := f.Root().AddChild("child")
	require.NoError(t, err)
	require.True(t, n.Valid())

	_, ok := f.RemoveNode("/child")
	require.True(t, ok)
	require.False(t, n.Valid())
}
