package fdt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteDTSRendersNodesAndProperties(t *testing.T) {
	f := New()
	soc, err := f.Root().AddChild("soc", Property{Name: "#address-cells", Data: be32Pub(1)})
	require.NoError(t, err)
	_, err = soc.AddChild("uart@0",
		Property{Name: "compatible", Data: []byte("arm,pl011\x00")},
		Property{Name: "interrupt-controller"},
	)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, f.WriteDTS(&buf))
	out := buf.String()

	require.Contains(t, out, "/dts-v1/;")
	require.Contains(t, out, "/ {")
	require.Contains(t, out, "soc {")
	require.Contains(t, out, `uart@0 {`)
	require.Contains(t, out, `compatible = "arm,pl011"`)
	require.Contains(t, out, "interrupt-controller;")
	require.Contains(t, out, "#address-cells = <0x1>")
}

func TestFormatDTSPropertyFallsBackToCellsAndBytes(t *testing.T) {
	require.Equal(t, "empty-flag", formatDTSProperty(Property{Name: "empty-flag"}))
	require.Equal(t, "reg = <0x1 0x2>", formatDTSProperty(Property{Name: "reg", Data: concatPub(be32Pub(1), be32Pub(2))}))
	require.Equal(t, "odd = [01 02 03]", formatDTSProperty(Property{Name: "odd", Data: []byte{1, 2, 3}}))
}
