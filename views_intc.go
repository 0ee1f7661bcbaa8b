package fdt

// InterruptController is a typed view over a node carrying the empty
// "interrupt-controller" marker property (spec.md §4.4).
type InterruptController struct {
	Node
}

// InterruptCells returns #interrupt-cells, defaulting to 1 when absent
// (spec.md §3 invariant 4: "#interrupt-cells ≥ 1").
func (ic InterruptController) InterruptCells() uint32 {
	if v, ok := ic.Node.InterruptCells(); ok {
		return v
	}
	return 1
}
