package fdt

// Memory is a typed view over a node classified as Memory (spec.md §4.4).
type Memory struct {
	Node
}

// MemoryRegion is one decoded memory region: a translated address plus its
// size.
type MemoryRegion struct {
	Address uint64
	Size    uint64
}

// Regions decodes the node's "reg" property (via the generic reg
// interpreter, applying the parent's cells and ranges translation) into
// memory regions (spec.md §8 Scenario E).
func (m Memory) Regions() []MemoryRegion {
	regs := m.Node.Regs()
	out := make([]MemoryRegion, 0, len(regs))
	for _, r := range regs {
		out = append(out, MemoryRegion{Address: r.ParentAddress, Size: r.Size})
	}
	return out
}
