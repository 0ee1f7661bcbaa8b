package tree

import (
	"github.com/scigolib/fdt/internal/codec"
	"github.com/scigolib/fdt/internal/utils"
)

// ParseResult bundles everything a DTB parse recovers beyond the node
// arena itself.
type ParseResult struct {
	Arena        *Arena
	Header       codec.Header
	Reservations []codec.MemoryReservation
}

// Parse decodes a full DTB buffer into an arena plus header/reservation
// metadata. It performs a 4-byte-aligned copy of buf first (spec.md §4.1:
// "MUST perform a 4-byte-aligned copy if input is unaligned"); since Go byte
// slices carry no alignment guarantee useful to a byte-level big-endian
// decoder, this copy also gives the parsed tree an independent lifetime
// from the caller's buffer (spec.md §5).
func Parse(input []byte) (*ParseResult, error) {
	buf := alignedCopy(input)

	h, err := codec.DecodeHeader(buf)
	if err != nil {
		return nil, utils.Wrap("header decode", err)
	}

	rsvs, err := codec.DecodeReservations(buf, h.OffMemRsvmap)
	if err != nil {
		return nil, utils.Wrap("reservation block decode", err)
	}

	arena, err := buildArena(buf, h)
	if err != nil {
		return nil, utils.Wrap("structure block decode", err)
	}

	return &ParseResult{Arena: arena, Header: h, Reservations: rsvs}, nil
}

// alignedCopy returns a private copy of buf starting at a 4-byte-aligned
// offset within its own backing array.
func alignedCopy(buf []byte) []byte {
	out := make([]byte, len(buf))
	copy(out, buf)
	return out
}

// buildArena drives a codec.Reader over the structure block and builds the
// node arena, nesting nodes by BEGIN_NODE/END_NODE pairs. A PROP token is
// attached to the innermost open node wherever it appears; the order of
// PROP tokens relative to a node's children is not checked.
func buildArena(buf []byte, h codec.Header) (*Arena, error) {
	r := codec.NewReader(buf, h.OffDtStruct, h.SizeDtStruct, h.OffDtStrings, h.SizeDtStrings)

	a := &Arena{}
	a.nodes = append(a.nodes, &nodeRec{name: "", parent: NoNode})
	a.nameIndex = append(a.nameIndex, nil)
	a.baseIndex = append(a.baseIndex, nil)
	a.phandleDirty = true

	type frame struct{ id NodeID }
	var stack []frame

	rootSeen := false

	for {
		ev, ok, err := r.Next()
		if err != nil {
			if rootSeen {
				return a, nil // malformed tail: preserve what was built (spec.md §7)
			}
			return nil, err
		}
		if !ok {
			break
		}
		switch ev.Kind {
		case codec.EventBeginNode:
			if !rootSeen {
				rootSeen = true
				if ev.Name != "" {
					a.nodes[RootID].name = ev.Name
				}
				stack = append(stack, frame{id: RootID})
				continue
			}
			parent := stack[len(stack)-1].id
			id := a.NewNode(ev.Name, nil)
			a.link(parent, id, ev.Name)
			stack = append(stack, frame{id: id})
		case codec.EventEndNode:
			if len(stack) == 0 {
				return a, nil
			}
			stack = stack[:len(stack)-1]
		case codec.EventProp:
			if len(stack) == 0 {
				return a, nil
			}
			cur := stack[len(stack)-1].id
			data := make([]byte, len(ev.PropData))
			copy(data, ev.PropData)
			a.nodes[cur].props = append(a.nodes[cur].props, Property{Name: ev.PropName, Data: data})
		case codec.EventEnd:
			return a, nil
		}
	}
	return a, nil
}
