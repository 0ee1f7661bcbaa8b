package tree

import "strings"

// ResolvePath walks "/a/b@addr/c" from root, splitting on '/' and skipping
// empty segments, applying ChildByName's disambiguation rule at each level.
// "/" alone resolves to root (spec.md §4.2).
func (a *Arena) ResolvePath(path string) (NodeID, bool) {
	if path == "" {
		return NoNode, false
	}
	if path == "/" {
		return RootID, true
	}
	segs := strings.Split(path, "/")
	cur := RootID
	found := false
	for _, seg := range segs {
		if seg == "" {
			continue
		}
		id, ok := a.ChildByName(cur, seg)
		if !ok {
			return NoNode, false
		}
		cur = id
		found = true
	}
	if !found {
		return NoNode, false
	}
	return cur, true
}

// Path reconstructs the canonical "/a/b@addr" path of id by walking parent
// links to the root.
func (a *Arena) Path(id NodeID) (string, bool) {
	if _, ok := a.rec(id); !ok {
		return "", false
	}
	if id == RootID {
		return "/", true
	}
	var segs []string
	cur := id
	for {
		rec, ok := a.rec(cur)
		if !ok {
			return "", false
		}
		if cur == RootID {
			break
		}
		segs = append([]string{rec.name}, segs...)
		cur = rec.parent
		if cur == NoNode {
			break
		}
	}
	return "/" + strings.Join(segs, "/"), true
}
