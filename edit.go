package fdt

import "github.com/scigolib/fdt/internal/tree"

// AddChild appends a new child node named name with the given properties
// and returns a view onto it (spec.md §6 view_mut.add_child). Property
// name/data pairs are copied; callers may reuse their backing arrays.
func (n Node) AddChild(name string, props ...Property) (Node, error) {
	tp := toTreeProps(props)
	id, err := n.fdt.arena.AddChild(n.id, name, tp)
	if err != nil {
		return Node{}, &Error{Kind: ErrNotFoundKind, Cause: err}
	}
	return Node{fdt: n.fdt, id: id}, nil
}

// SetProperty inserts or replaces a property on the node (spec.md §6
// view_mut.set_property).
func (n Node) SetProperty(p Property) error {
	return n.fdt.arena.SetProperty(n.id, tree.Property{Name: p.Name, Data: p.Data})
}

// SetPropertyU32 is a convenience wrapper encoding v as a single
// big-endian cell.
func (n Node) SetPropertyU32(name string, v uint32) error {
	return n.SetProperty(Property{Name: name, Data: encodeU32(v)})
}

// SetPropertyString is a convenience wrapper encoding s as a
// NUL-terminated string.
func (n Node) SetPropertyString(name, s string) error {
	data := append([]byte(s), 0)
	return n.SetProperty(Property{Name: name, Data: data})
}

// RemoveProperty deletes the named property, reporting whether it existed.
func (n Node) RemoveProperty(name string) bool {
	return n.fdt.arena.RemoveProperty(n.id, name)
}

// RemoveChild detaches and deletes the named child (exact match preferred,
// base-name fallback), cascading into its whole subtree (spec.md §4.2
// remove_child).
func (n Node) RemoveChild(name string) (Node, bool) {
	id, ok := n.fdt.arena.RemoveChild(n.id, name)
	if !ok {
		return Node{}, false
	}
	return Node{fdt: n.fdt, id: id}, true
}

// Rename changes the node's own stored name.
func (n Node) Rename(newName string) error {
	return n.fdt.arena.Rename(n.id, newName)
}

// AddNode is the Fdt-level counterpart of Node.AddChild (spec.md §6
// fdt.add_node(parent_id, node)).
func (f *Fdt) AddNode(parent Node, name string, props ...Property) (Node, error) {
	return parent.AddChild(name, props...)
}

// RemoveNode resolves path and removes that node from its parent,
// cascading into its subtree (spec.md §6 fdt.remove_node /
// remove_by_path). It reports false if path does not resolve.
func (f *Fdt) RemoveNode(path string) (Node, bool) {
	id, ok := f.arena.ResolvePath(path)
	if !ok || id == tree.RootID {
		return Node{}, false
	}
	parentID, ok := f.arena.Parent(id)
	if !ok {
		return Node{}, false
	}
	name, _ := f.arena.Name(id)
	removedID, ok := f.arena.RemoveChild(parentID, name)
	if !ok {
		return Node{}, false
	}
	return Node{fdt: f, id: removedID}, true
}

func toTreeProps(props []Property) []tree.Property {
	out := make([]tree.Property, len(props))
	for i, p := range props {
		out[i] = tree.Property{Name: p.Name, Data: p.Data}
	}
	return out
}

func encodeU32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}
