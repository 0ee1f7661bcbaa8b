package fdt

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// WriteDTS writes a DTS-like text rendering of the tree to w: a
// human-readable, non-normative dump, not a `dtc`-compatible compiler
// input. Supplemented from original_source/fdt-edit/src/display.rs and
// node/display.rs (spec.md §6's "converter that reads a DTB and writes a
// DTS-like text").
func (f *Fdt) WriteDTS(w io.Writer) error {
	fmt.Fprintln(w, "/dts-v1/;")
	fmt.Fprintln(w)
	return writeDTSNode(w, f.Root(), 0)
}

func writeDTSNode(w io.Writer, n Node, depth int) error {
	indent := strings.Repeat("\t", depth)
	name := n.Name()
	if name == "" {
		name = "/"
	}
	if _, err := fmt.Fprintf(w, "%s%s {\n", indent, name); err != nil {
		return err
	}
	for _, p := range n.Properties() {
		if _, err := fmt.Fprintf(w, "%s\t%s;\n", indent, formatDTSProperty(p)); err != nil {
			return err
		}
	}
	for _, c := range n.Children() {
		if err := writeDTSNode(w, c, depth+1); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s};\n", indent); err != nil {
		return err
	}
	return nil
}

// formatDTSProperty renders one property in DTS-ish syntax: a bare name
// for empty properties, a quoted string for printable NUL-terminated
// payloads, otherwise a cell list.
func formatDTSProperty(p Property) string {
	if p.Empty() {
		return p.Name
	}
	if s, ok := p.AsString(); ok && isPrintableDTS(s) {
		return fmt.Sprintf("%s = %q", p.Name, s)
	}
	if len(p.Data)%4 == 0 {
		cells := p.AsCells()
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = fmt.Sprintf("0x%x", c)
		}
		return fmt.Sprintf("%s = <%s>", p.Name, strings.Join(parts, " "))
	}
	parts := make([]string, len(p.Data))
	for i, b := range p.Data {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return fmt.Sprintf("%s = [%s]", p.Name, strings.Join(parts, " "))
}

func isPrintableDTS(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
