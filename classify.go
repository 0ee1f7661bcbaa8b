package fdt

import (
	"strings"

	"github.com/scigolib/fdt/internal/interp"
)

// NodeKind is the result of classifying a generic node snapshot into one
// of the domain-typed variants (spec.md §4.4). Classification is a pure
// function of the node itself; it never consults ancestors.
type NodeKind int

const (
	KindGeneric NodeKind = iota
	KindMemory
	KindChosen
	KindInterruptController
	KindPCI
	KindClock
)

func (k NodeKind) String() string {
	switch k {
	case KindMemory:
		return "memory"
	case KindChosen:
		return "chosen"
	case KindInterruptController:
		return "interrupt-controller"
	case KindPCI:
		return "pci"
	case KindClock:
		return "clock"
	default:
		return "generic"
	}
}

// TypedNode pairs a Node with its classification, as returned by
// Fdt.AllNodes (spec.md §6 fdt.all_nodes()).
type TypedNode struct {
	Node
	Kind NodeKind
}

// Classify inspects n and returns exactly one NodeKind, first match wins in
// the order Memory, Chosen, InterruptController, PCI, Clock, Generic
// (spec.md §4.4: "memory and chosen win over clock for a hypothetical node
// that has both markers").
func Classify(f *Fdt, n Node) NodeKind {
	if isMemoryNode(n) {
		return KindMemory
	}
	if n.Name() == "chosen" {
		return KindChosen
	}
	if _, ok := n.GetProperty("interrupt-controller"); ok {
		return KindInterruptController
	}
	if isPCINode(f, n) {
		return KindPCI
	}
	if _, ok := n.GetProperty("#clock-cells"); ok {
		return KindClock
	}
	return KindGeneric
}

func isMemoryNode(n Node) bool {
	if dt, ok := n.DeviceType(); ok && dt == "memory" {
		return true
	}
	return strings.HasPrefix(n.Name(), "memory")
}

func isPCINode(f *Fdt, n Node) bool {
	if dt, ok := n.DeviceType(); ok && dt == "pci" {
		return true
	}
	return interp.HasCompatibleToken(f.arena, n.id, "pci")
}

// AsMemory returns a Memory view if n classifies as Memory.
func (n Node) AsMemory() (Memory, bool) {
	if !isMemoryNode(n) {
		return Memory{}, false
	}
	return Memory{Node: n}, true
}

// AsChosen returns a Chosen view if n classifies as Chosen.
func (n Node) AsChosen() (Chosen, bool) {
	if n.Name() != "chosen" {
		return Chosen{}, false
	}
	return Chosen{Node: n}, true
}

// AsInterruptController returns an InterruptController view if n carries
// the marker property.
func (n Node) AsInterruptController() (InterruptController, bool) {
	if _, ok := n.GetProperty("interrupt-controller"); !ok {
		return InterruptController{}, false
	}
	return InterruptController{Node: n}, true
}

// AsPCI returns a PCI view if n classifies as a PCI host bridge.
func (n Node) AsPCI() (PCI, bool) {
	if !isPCINode(n.fdt, n) {
		return PCI{}, false
	}
	return PCI{Node: n}, true
}

// AsClock returns a Clock view if n carries "#clock-cells".
func (n Node) AsClock() (Clock, bool) {
	if _, ok := n.GetProperty("#clock-cells"); !ok {
		return Clock{}, false
	}
	return Clock{Node: n}, true
}
