package interp

import (
	"strings"

	"github.com/scigolib/fdt/internal/tree"
)

// ReadStringList decodes a NUL-separated string-list property payload
// (e.g. "compatible", "clock-output-names") into its component strings.
func ReadStringList(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	trimmed := data
	if trimmed[len(trimmed)-1] == 0 {
		trimmed = trimmed[:len(trimmed)-1]
	}
	if len(trimmed) == 0 {
		return nil
	}
	parts := strings.Split(string(trimmed), "\x00")
	return parts
}

// Compatibles returns id's "compatible" list, most-specific first, or nil
// if absent.
func Compatibles(a *tree.Arena, id tree.NodeID) []string {
	p, ok := a.GetProperty(id, "compatible")
	if !ok {
		return nil
	}
	return ReadStringList(p.Data)
}

// HasCompatibleToken reports whether any of id's compatible strings
// contains token as a substring (used for the PCI classifier's "compatible
// contains a pci token" rule, spec.md §4.4).
func HasCompatibleToken(a *tree.Arena, id tree.NodeID, token string) bool {
	for _, c := range Compatibles(a, id) {
		if strings.Contains(c, token) {
			return true
		}
	}
	return false
}

// MatchesCompatible reports whether id's "compatible" list contains any of
// wanted.
func MatchesCompatible(a *tree.Arena, id tree.NodeID, wanted []string) bool {
	have := Compatibles(a, id)
	for _, h := range have {
		for _, w := range wanted {
			if h == w {
				return true
			}
		}
	}
	return false
}

// Status returns id's "status" property value, defaulting to "okay" when
// absent, per the Devicetree Specification's status propagation rule
// (spec.md §4.3 "status propagation").
func Status(a *tree.Arena, id tree.NodeID) string {
	p, ok := a.GetProperty(id, "status")
	if !ok {
		return "okay"
	}
	s := ReadStringList(p.Data)
	if len(s) == 0 {
		return "okay"
	}
	return s[0]
}

// IsEnabled reports whether id and every ancestor up to root has status
// "okay" or "ok" — a node with a disabled ancestor is not usable even if
// its own status is "okay" (status propagation, spec.md §4.3).
func IsEnabled(a *tree.Arena, id tree.NodeID) bool {
	cur := id
	for {
		s := Status(a, cur)
		if s != "okay" && s != "ok" {
			return false
		}
		parent, ok := a.Parent(cur)
		if !ok {
			return true
		}
		cur = parent
	}
}

// DeviceType returns id's "device_type" property string, if present.
func DeviceType(a *tree.Arena, id tree.NodeID) (string, bool) {
	p, ok := a.GetProperty(id, "device_type")
	if !ok {
		return "", false
	}
	s := ReadStringList(p.Data)
	if len(s) == 0 {
		return "", false
	}
	return s[0], true
}
