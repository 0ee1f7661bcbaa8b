package fdt

// Clock is a typed view over a node carrying "#clock-cells" (spec.md §4.4,
// supplemented from original_source/fdt-edit/src/node/clock.rs and
// node/view/clock.rs).
type Clock struct {
	Node
}

// ClockCells returns the "#clock-cells" value.
func (c Clock) ClockCells() uint32 {
	p, ok := c.GetProperty("#clock-cells")
	if !ok {
		return 0
	}
	v, _ := p.AsU32()
	return v
}

// OutputName returns the name of output index, from "clock-output-names",
// if present and in range.
func (c Clock) OutputName(index int) (string, bool) {
	p, ok := c.GetProperty("clock-output-names")
	if !ok {
		return "", false
	}
	names := p.AsStringList()
	if index < 0 || index >= len(names) {
		return "", false
	}
	return names[index], true
}

// Frequency returns "clock-frequency", if present.
func (c Clock) Frequency() (uint32, bool) {
	p, ok := c.GetProperty("clock-frequency")
	if !ok {
		return 0, false
	}
	return p.AsU32()
}
