package tree

import "fmt"

// Decode reconstructs a whole tree from its serialized records.
//
// Records may arrive in any order. A dependency graph is built over the
// declared parent links and processed with Kahn's algorithm so that every
// parent is attached before its children; input containing a cycle is
// rejected as a whole. Each record dispatches to its kind's registered
// factory, which performs the actual attach.
func Decode(records []Record, reg *Registry) (*Tree, error) {
	byID := make(map[string]Record, len(records))
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if _, dup := byID[rec.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
		}
		byID[rec.ID] = rec
		ids = append(ids, rec.ID)
	}

	// Edges run parent→child; indegree counts only parents present in the
	// input. A parent id absent from the input surfaces as ErrMissingParent
	// when its child attaches.
	indeg := make(map[string]int, len(ids))
	children := make(map[string][]string, len(ids))
	for _, id := range ids {
		for _, pid := range byID[id].Parents {
			if _, known := byID[pid]; !known {
				continue
			}
			indeg[id]++
			children[pid] = append(children[pid], id)
		}
	}

	queue := make([]string, 0, len(ids))
	for _, id := range ids {
		if indeg[id] == 0 {
			queue = append(queue, id)
		}
	}
	order := make([]string, 0, len(ids))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, child := range children[id] {
			indeg[child]--
			if indeg[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	if len(order) != len(ids) {
		return nil, fmt.Errorf("%w: %d of %d nodes unreachable from a root",
			ErrCyclicGraph, len(ids)-len(order), len(ids))
	}

	t := NewTree()
	for _, id := range order {
		rec := byID[id]
		kind := rec.Type
		if kind == "" {
			kind = KindNode
		}
		fn, err := reg.Get(kind)
		if err != nil {
			return nil, err
		}
		if _, err := fn(t, rec); err != nil {
			return nil, fmt.Errorf("node %s: %w", id, err)
		}
	}
	return t, nil
}
