package fdt

// Chosen is a typed view over the conventional "/chosen" node carrying
// boot-time parameters (spec.md GLOSSARY).
type Chosen struct {
	Node
}

// Bootargs returns the kernel command line ("bootargs"), if set.
func (c Chosen) Bootargs() (string, bool) {
	p, ok := c.GetProperty("bootargs")
	if !ok {
		return "", false
	}
	return p.AsString()
}

// StdoutPath returns "stdout-path" (falling back to the legacy
// "linux,stdout-path"), if set.
func (c Chosen) StdoutPath() (string, bool) {
	if p, ok := c.GetProperty("stdout-path"); ok {
		return p.AsString()
	}
	if p, ok := c.GetProperty("linux,stdout-path"); ok {
		return p.AsString()
	}
	return "", false
}
