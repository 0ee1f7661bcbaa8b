// Package tree implements the FDT node arena: a flat, ordered node store
// with stable ids, parent/child links, a per-parent name index, and a
// tree-wide phandle index. It replaces the three overlapping parser
// variants of the source implementation (direct/cached/edit) with a single
// arena-backed model, per spec.md §9: "parser" is a constructor over this
// type, "cache" is the indices maintained on it, and "editor" is this
// type's mutation API.
package tree

import "github.com/scigolib/fdt/internal/utils"

// NodeID identifies a node. Ids are never reused within one Arena's
// lifetime — once assigned, an id refers to exactly one node for the life
// of the arena, satisfying spec.md §3's "must not confuse an old id for a
// new node" via simple monotonic allocation rather than a generation tag.
type NodeID uint32

// NoNode is the invalid/absent node id, returned by lookups that find
// nothing and stored as the parent of the root and of a detached node.
const NoNode NodeID = ^NodeID(0)

// RootID is always the id of the tree root.
const RootID NodeID = 0

// Property is a raw (name, payload) pair. Interpretation of the payload is
// deferred to internal/interp and the public views — the arena only knows
// property identity, not semantics (spec.md §3).
type Property struct {
	Name string
	Data []byte
}

type nodeRec struct {
	name     string
	parent   NodeID
	children []NodeID
	props    []Property
	removed  bool
}

// Arena owns all nodes of one Fdt. Node 0 is always the root.
type Arena struct {
	nodes        []*nodeRec
	nameIndex    []map[string]NodeID // per-id (parent) exact "base[@addr]" -> child id
	baseIndex    []map[string][]NodeID // per-id (parent) base name -> child ids in insertion order
	phandleIndex map[uint32]NodeID
	phandleDirty bool
}

// NewArena returns an arena containing only a root node, the shape produced
// by Fdt::new() (spec.md §6).
func NewArena() *Arena {
	a := &Arena{}
	a.nodes = append(a.nodes, &nodeRec{name: "", parent: NoNode})
	a.nameIndex = append(a.nameIndex, nil)
	a.baseIndex = append(a.baseIndex, nil)
	a.phandleDirty = true
	return a
}

func (a *Arena) rec(id NodeID) (*nodeRec, bool) {
	if int(id) < 0 || int(id) >= len(a.nodes) {
		return nil, false
	}
	r := a.nodes[id]
	if r == nil || r.removed {
		return nil, false
	}
	return r, true
}

// Exists reports whether id currently refers to a live node.
func (a *Arena) Exists(id NodeID) bool {
	_, ok := a.rec(id)
	return ok
}

// Name returns the node's name, or ("", false) if id is invalid.
func (a *Arena) Name(id NodeID) (string, bool) {
	r, ok := a.rec(id)
	if !ok {
		return "", false
	}
	return r.name, true
}

// Parent returns id's parent, or (NoNode, false) if id is invalid or is the
// root.
func (a *Arena) Parent(id NodeID) (NodeID, bool) {
	r, ok := a.rec(id)
	if !ok || r.parent == NoNode {
		return NoNode, false
	}
	return r.parent, true
}

// Children returns id's child ids in insertion order.
func (a *Arena) Children(id NodeID) []NodeID {
	r, ok := a.rec(id)
	if !ok {
		return nil
	}
	out := make([]NodeID, len(r.children))
	copy(out, r.children)
	return out
}

// Properties returns id's properties in insertion order.
func (a *Arena) Properties(id NodeID) []Property {
	r, ok := a.rec(id)
	if !ok {
		return nil
	}
	out := make([]Property, len(r.props))
	copy(out, r.props)
	return out
}

// GetProperty returns the named property on id, if present.
func (a *Arena) GetProperty(id NodeID, name string) (Property, bool) {
	r, ok := a.rec(id)
	if !ok {
		return Property{}, false
	}
	for _, p := range r.props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// NewNode allocates a detached node record (not yet linked to any parent)
// and returns its id. Callers use AddChild to link it in.
func (a *Arena) NewNode(name string, props []Property) NodeID {
	id := NodeID(len(a.nodes))
	cp := make([]Property, len(props))
	copy(cp, props)
	a.nodes = append(a.nodes, &nodeRec{name: name, parent: NoNode, props: cp})
	a.nameIndex = append(a.nameIndex, nil)
	a.baseIndex = append(a.baseIndex, nil)
	return id
}

// AddChild appends a new node as a child of parent and returns its id.
func (a *Arena) AddChild(parent NodeID, name string, props []Property) (NodeID, error) {
	if _, ok := a.rec(parent); !ok {
		return NoNode, utils.Wrap("add_child", errNotFound(parent))
	}
	id := a.NewNode(name, props)
	a.link(parent, id, name)
	a.phandleDirty = true
	return id, nil
}

// link records id as the last child of parent and updates the name index.
func (a *Arena) link(parent, id NodeID, name string) {
	pr := a.nodes[parent]
	pr.children = append(pr.children, id)
	a.nodes[id].parent = parent

	if a.nameIndex[parent] == nil {
		a.nameIndex[parent] = make(map[string]NodeID)
	}
	if a.baseIndex[parent] == nil {
		a.baseIndex[parent] = make(map[string][]NodeID)
	}
	a.nameIndex[parent][name] = id
	base, _ := splitUnitAddress(name)
	a.baseIndex[parent][base] = append(a.baseIndex[parent][base], id)
}

func (a *Arena) childByExactOrBase(parent NodeID, fullName, base string) NodeID {
	if idx := a.nameIndex[parent]; idx != nil {
		if id, ok := idx[fullName]; ok {
			return id
		}
	}
	if idx := a.baseIndex[parent]; idx != nil {
		if ids, ok := idx[base]; ok && len(ids) > 0 {
			return ids[0]
		}
	}
	return NoNode
}

// ChildByName resolves one path segment against parent: exact match
// including "@address" if present, else the first child whose base name
// matches (spec.md §4.2 disambiguation rule).
func (a *Arena) ChildByName(parent NodeID, segment string) (NodeID, bool) {
	base, _ := splitUnitAddress(segment)
	id := a.childByExactOrBase(parent, segment, base)
	if id == NoNode {
		return NoNode, false
	}
	return id, true
}

// RemoveChild detaches the child of parent matching name (exact match
// preferred, base-name fallback) and deletes its whole subtree from the
// arena. It returns the removed node's id.
func (a *Arena) RemoveChild(parent NodeID, name string) (NodeID, bool) {
	pr, ok := a.rec(parent)
	if !ok {
		return NoNode, false
	}
	id, found := a.ChildByName(parent, name)
	if !found {
		return NoNode, false
	}

	newChildren := pr.children[:0:0]
	for _, c := range pr.children {
		if c != id {
			newChildren = append(newChildren, c)
		}
	}
	pr.children = newChildren

	delete(a.nameIndex[parent], name)
	if rec := a.nodes[id]; rec != nil {
		delete(a.nameIndex[parent], rec.name)
		base, _ := splitUnitAddress(rec.name)
		a.baseIndex[parent][base] = removeID(a.baseIndex[parent][base], id)
	}

	a.removeSubtree(id)
	a.phandleDirty = true
	return id, true
}

func removeID(ids []NodeID, target NodeID) []NodeID {
	out := ids[:0:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

func (a *Arena) removeSubtree(id NodeID) {
	r, ok := a.rec(id)
	if !ok {
		return
	}
	for _, c := range r.children {
		a.removeSubtree(c)
	}
	r.removed = true
	r.children = nil
}

// SetProperty inserts or replaces the named property on id.
func (a *Arena) SetProperty(id NodeID, prop Property) error {
	r, ok := a.rec(id)
	if !ok {
		return utils.Wrap("set_property", errNotFound(id))
	}
	for i, p := range r.props {
		if p.Name == prop.Name {
			r.props[i] = prop
			a.phandleDirty = a.phandleDirty || prop.Name == "phandle" || prop.Name == "linux,phandle"
			return nil
		}
	}
	r.props = append(r.props, prop)
	if prop.Name == "phandle" || prop.Name == "linux,phandle" {
		a.phandleDirty = true
	}
	return nil
}

// RemoveProperty deletes the named property from id, if present.
func (a *Arena) RemoveProperty(id NodeID, name string) bool {
	r, ok := a.rec(id)
	if !ok {
		return false
	}
	for i, p := range r.props {
		if p.Name == name {
			r.props = append(r.props[:i], r.props[i+1:]...)
			if name == "phandle" || name == "linux,phandle" {
				a.phandleDirty = true
			}
			return true
		}
	}
	return false
}

// Rename changes id's stored name and refreshes its parent's name index.
func (a *Arena) Rename(id NodeID, newName string) error {
	r, ok := a.rec(id)
	if !ok {
		return utils.Wrap("rename", errNotFound(id))
	}
	if r.parent == NoNode && id != RootID {
		return utils.Wrap("rename", errNotFound(id))
	}
	if id == RootID {
		r.name = newName
		return nil
	}
	parent := r.parent
	old := r.name
	delete(a.nameIndex[parent], old)
	oldBase, _ := splitUnitAddress(old)
	a.baseIndex[parent][oldBase] = removeID(a.baseIndex[parent][oldBase], id)

	r.name = newName
	a.nameIndex[parent][newName] = id
	newBase, _ := splitUnitAddress(newName)
	a.baseIndex[parent][newBase] = append(a.baseIndex[parent][newBase], id)
	return nil
}

// AllIDs returns every live node id in depth-first pre-order starting at
// root, the canonical iteration order (spec.md §5).
func (a *Arena) AllIDs() []NodeID {
	var out []NodeID
	var walk func(NodeID)
	walk = func(id NodeID) {
		out = append(out, id)
		for _, c := range a.Children(id) {
			walk(c)
		}
	}
	walk(RootID)
	return out
}
