package index

import "errors"

// ErrTraversal reports a directory visit order that cannot come from a
// depth-first pre-order walk. It indicates a walker bug, not a user-data
// problem, and aborts the build.
var ErrTraversal = errors.New("directory traversal out of depth-first order")

// inherited maintains the tag indices a directory inherits from its
// ancestors while the tree is walked in depth-first pre-order.
//
// Tags are appended to one flat buffer; offsets mark where each still-open
// ancestor's chunk begins. Entering a child pushes a new offset, returning
// towards the root pops offsets and truncates the buffer, so the buffer
// always holds exactly the tags of the current directory chain without
// re-reading any ancestor.
type inherited struct {
	indices []uint32
	offsets []int
	prev    []string
	started bool
}

// enter adjusts the scope stack for the directory at the given root-relative
// path components. Legal transitions are exactly the two shapes depth-first
// pre-order can produce: descending into a direct child of the previous
// directory, or returning to an ancestor (or a sibling subtree) and stepping
// into one of its direct children.
func (t *inherited) enter(rel []string) error {
	if !t.started {
		t.started = true
		t.offsets = append(t.offsets, len(t.indices))
		t.prev = append(t.prev[:0], rel...)
		return nil
	}
	common := 0
	for common < len(t.prev) && common < len(rel) && t.prev[common] == rel[common] {
		common++
	}
	switch {
	case len(t.prev) == common && len(rel) == common+1:
		// Direct child: everything accumulated so far is inherited.
		t.offsets = append(t.offsets, len(t.indices))
	case len(t.prev) > common && len(rel) == common+1:
		// Back up to the common ancestor, then into one of its children.
		marker := len(t.indices)
		for i := 0; i < len(t.prev)-common; i++ {
			if len(t.offsets) == 0 {
				return ErrTraversal
			}
			marker = t.offsets[len(t.offsets)-1]
			t.offsets = t.offsets[:len(t.offsets)-1]
		}
		t.indices = t.indices[:marker]
		t.offsets = append(t.offsets, marker)
	default:
		return ErrTraversal
	}
	t.prev = append(t.prev[:0], rel...)
	return nil
}

// push appends one of the current directory's own tag indices. Must be
// called after enter.
func (t *inherited) push(index uint32) {
	t.indices = append(t.indices, index)
}
