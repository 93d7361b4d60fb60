package tree

import (
	"fmt"

	"github.com/google/uuid"
)

// KindNode is the discriminator for the plain base node kind.
const KindNode = "Node"

// NodeState is the lifecycle state of a processing step.
type NodeState string

const (
	// StateUnconfirmed: client-side expectation, no confirmation yet.
	StateUnconfirmed NodeState = "UNCONFIRMED"
	// StateCreated: the node exists but is not confirmed running.
	StateCreated NodeState = "CREATED"
	// StateRunning: the step is currently in progress.
	StateRunning NodeState = "RUNNING"
	// StateFailed: the step ran but failed.
	StateFailed NodeState = "FAILED"
	// StateSuccess: the step ran successfully.
	StateSuccess NodeState = "SUCCESS"
)

// ParseState maps a wire string back to a NodeState.
func ParseState(s string) (NodeState, error) {
	switch st := NodeState(s); st {
	case StateUnconfirmed, StateCreated, StateRunning, StateFailed, StateSuccess:
		return st, nil
	}
	return "", fmt.Errorf("unknown node state %q", s)
}

// Node is a single processing step in the DAG.
//
// A node may have several parents. The parents list is fixed at construction;
// the children backlinks are owned and written only by the Tree during Attach.
// A node is detached (no tree membership) between construction and Attach.
type Node struct {
	tree     *Tree
	kind     string
	id       string
	uuid     string
	parents  []*Node
	children []*Node
	state    NodeState
}

// New returns a detached base-kind node with a generated uuid.
// The id is assigned by the tree on Attach.
func New(parents ...*Node) *Node {
	return NewOfKind(KindNode, "", "", parents...)
}

// NewWithIdentity returns a detached base-kind node with a caller-supplied
// id and/or uuid. An empty id defers assignment to Attach; an empty uuid is
// generated.
func NewWithIdentity(id, uid string, parents ...*Node) *Node {
	return NewOfKind(KindNode, id, uid, parents...)
}

// NewOfKind returns a detached node with an explicit kind discriminator.
// Kinds other than KindNode are expected to register a matching Factory.
func NewOfKind(kind, id, uid string, parents ...*Node) *Node {
	if uid == "" {
		uid = uuid.New().String()
	}
	n := &Node{
		kind:  kind,
		id:    id,
		uuid:  uid,
		state: StateCreated,
	}
	n.parents = append(n.parents, parents...)
	return n
}

// ID returns the tree-assigned id, or "" while detached without one.
func (n *Node) ID() string { return n.id }

// UUID returns the globally unique identifier.
func (n *Node) UUID() string { return n.uuid }

// Kind returns the type discriminator.
func (n *Node) Kind() string { return n.kind }

// State returns the current lifecycle state.
func (n *Node) State() NodeState {
	if n.tree != nil {
		n.tree.mu.RLock()
		defer n.tree.mu.RUnlock()
	}
	return n.state
}

// SetState records a lifecycle transition driven by an external caller.
func (n *Node) SetState(s NodeState) error {
	if _, err := ParseState(string(s)); err != nil {
		return err
	}
	if n.tree != nil {
		n.tree.mu.Lock()
		defer n.tree.mu.Unlock()
	}
	n.state = s
	return nil
}

// Parents returns a copy of the ordered parent list.
func (n *Node) Parents() []*Node {
	out := make([]*Node, len(n.parents))
	copy(out, n.parents)
	return out
}

// Children returns a copy of the ordered child backlinks.
func (n *Node) Children() []*Node {
	if n.tree != nil {
		n.tree.mu.RLock()
		defer n.tree.mu.RUnlock()
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Record is the wire and persisted form of a node.
type Record struct {
	Type    string    `json:"type"`
	ID      string    `json:"id"`
	UUID    string    `json:"uuid"`
	State   NodeState `json:"state"`
	Parents []string  `json:"parents,omitempty"`
}

// Record converts the node to its plain serializable form.
func (n *Node) Record() Record {
	rec := Record{
		Type:  n.kind,
		ID:    n.id,
		UUID:  n.uuid,
		State: n.state,
	}
	for _, p := range n.parents {
		rec.Parents = append(rec.Parents, p.id)
	}
	return rec
}

func (n *Node) String() string {
	return fmt.Sprintf("%s %s", n.kind, n.id)
}
