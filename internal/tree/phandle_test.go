package tree

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func be32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

func TestPhandleIndexRebuildsLazily(t *testing.T) {
	a := NewArena()
	n, _ := a.AddChild(RootID, "gic", nil)
	require.NoError(t, a.SetProperty(n, Property{Name: "phandle", Data: be32(5)}))

	id, ok := a.GetByPhandle(5)
	require.True(t, ok)
	require.Equal(t, n, id)
}

func TestPhandleZeroAndAllOnesInvalid(t *testing.T) {
	a := NewArena()
	n, _ := a.AddChild(RootID, "x", nil)
	require.NoError(t, a.SetProperty(n, Property{Name: "phandle", Data: be32(0)}))
	_, ok := a.Phandle(n)
	require.False(t, ok)

	require.NoError(t, a.SetProperty(n, Property{Name: "phandle", Data: be32(0xffffffff)}))
	_, ok = a.Phandle(n)
	require.False(t, ok)
}

func TestPhandleUnresolvableAfterRemove(t *testing.T) {
	a := NewArena()
	n, _ := a.AddChild(RootID, "gic", nil)
	require.NoError(t, a.SetProperty(n, Property{Name: "phandle", Data: be32(7)}))
	a.RebuildPhandleIndex()

	_, ok := a.RemoveChild(RootID, "gic")
	require.True(t, ok)

	_, ok = a.GetByPhandle(7)
	require.False(t, ok)
}
