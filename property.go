package fdt

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/scigolib/fdt/internal/interp"
	"github.com/scigolib/fdt/internal/tree"
)

// Property is a raw (name, payload) pair. The payload is the on-wire
// property data; semantic interpretation is deferred to the typed
// accessors below (spec.md §3).
type Property struct {
	Name string
	Data []byte
}

func fromTreeProp(p tree.Property) Property {
	return Property{Name: p.Name, Data: p.Data}
}

// Empty reports whether this is a marker property with no payload (e.g.
// "interrupt-controller").
func (p Property) Empty() bool { return len(p.Data) == 0 }

// AsU32 decodes a single big-endian 32-bit cell.
func (p Property) AsU32() (uint32, bool) {
	if len(p.Data) != 4 {
		return 0, false
	}
	return binary.BigEndian.Uint32(p.Data), true
}

// AsU64 decodes two big-endian 32-bit cells (high cell first) as a single
// 64-bit value.
func (p Property) AsU64() (uint64, bool) {
	if len(p.Data) != 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(p.Data), true
}

// AsPHandle decodes the payload as a phandle value (same wire shape as
// AsU32; kept distinct for readability at call sites).
func (p Property) AsPHandle() (uint32, bool) {
	return p.AsU32()
}

// AsString decodes the payload as a single NUL-terminated string. It
// reports false if the payload is not valid UTF-8, matching
// fdt-raw/src/node/prop.rs's as_str() rather than casting arbitrary bytes
// to a Go string (spec.md §7 Utf8).
func (p Property) AsString() (string, bool) {
	if len(p.Data) == 0 || p.Data[len(p.Data)-1] != 0 {
		return "", false
	}
	s := interp.ReadStringList(p.Data)
	if len(s) != 1 || !utf8.ValidString(s[0]) {
		return "", false
	}
	return s[0], true
}

// AsStringList decodes the payload as a NUL-separated string list (e.g.
// "compatible"), stopping at the first entry that is not valid UTF-8
// rather than yielding it — the same short-circuit fdt-raw's StrIter
// performs via `from_utf8(..).ok()?` (spec.md §7 Utf8).
func (p Property) AsStringList() []string {
	all := interp.ReadStringList(p.Data)
	for i, s := range all {
		if !utf8.ValidString(s) {
			return all[:i]
		}
	}
	return all
}

// AsCells decodes the payload as a sequence of big-endian 32-bit cells.
func (p Property) AsCells() []uint32 {
	return interp.ReadCellsU32(p.Data)
}
