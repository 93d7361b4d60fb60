// Package tree holds the DAG of processing-step nodes tracked on behalf of a
// data-reduction pipeline client. The Tree owns the node-id namespace and the
// parent→child backlinks; nodes are bound in one at a time via Attach, which
// validates fully before mutating anything.
package tree

import (
	"fmt"
	"strconv"
	"sync"
)

// Tree coordinates the node graph. Despite the name it is structurally a DAG:
// nodes may have multiple parents.
//
// Attach serializes its validate-then-mutate sequence behind the tree's
// write lock; lookups and representations take the read side.
type Tree struct {
	mu     sync.RWMutex
	nodes  map[string]*Node
	order  []*Node // attachment order; Go maps do not preserve it
	roots  []*Node
	nextID int
}

// NewTree allocates an empty tree. Ids auto-assigned by Attach start at "1".
func NewTree() *Tree {
	return &Tree{
		nodes:  make(map[string]*Node),
		nextID: 1,
	}
}

// Attach binds a detached node into this tree and returns it.
//
// If the node carries an id it is used, provided it does not already exist;
// otherwise the next counter id is assigned. All validation happens before
// any write, so a failed attach leaves the tree untouched.
func (t *Tree) Attach(node *Node) (*Node, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if node.id != "" {
		if _, exists := t.nodes[node.id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, node.id)
		}
	}
	for _, existing := range t.order {
		if existing.uuid == node.uuid {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUUID, node.uuid)
		}
	}
	for _, parent := range node.parents {
		member, ok := t.nodes[parent.id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingParent, parent.id)
		}
		if member != parent {
			return nil, fmt.Errorf("%w: %s", ErrInconsistentParent, parent.id)
		}
		for _, c := range parent.children {
			if c == node {
				return nil, fmt.Errorf("%w: node %s under parent %s", ErrCorruptTree, node.uuid, parent.id)
			}
		}
	}

	if node.id == "" {
		// Skip over ids claimed explicitly by earlier attaches.
		for {
			id := strconv.Itoa(t.nextID)
			t.nextID++
			if _, taken := t.nodes[id]; !taken {
				node.id = id
				break
			}
		}
	}
	node.tree = t
	t.nodes[node.id] = node
	t.order = append(t.order, node)
	for _, parent := range node.parents {
		parent.children = append(parent.children, node)
	}
	if len(node.parents) == 0 {
		t.roots = append(t.roots, node)
	}
	return node, nil
}

// Get returns the node with the given id, or false when it is not a member.
func (t *Tree) Get(id string) (*Node, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.nodes[id]
	return n, ok
}

// Len returns the number of attached nodes.
func (t *Tree) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// Roots returns the nodes with no parents, in attachment order.
func (t *Tree) Roots() []*Node {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Node, len(t.roots))
	copy(out, t.roots)
	return out
}

// Representation returns every node's record in attachment order.
func (t *Tree) Representation() []Record {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Record, 0, len(t.order))
	for _, n := range t.order {
		out = append(out, n.Record())
	}
	return out
}
