package tree

import "errors"

// Attach and decode failures. All are synchronous validation outcomes; no
// operation performs partial mutation before returning one of these.
var (
	// ErrDuplicateID: the node's id is already a member of the tree.
	ErrDuplicateID = errors.New("duplicate node id")
	// ErrDuplicateUUID: another member already carries the node's uuid.
	ErrDuplicateUUID = errors.New("duplicate node uuid")
	// ErrMissingParent: a declared parent id is not a member of the tree.
	ErrMissingParent = errors.New("parent not a member of tree")
	// ErrInconsistentParent: the tree's entry for a parent id is a different
	// object than the one the node references (stale or cross-tree reuse).
	ErrInconsistentParent = errors.New("parent differs from tree member")
	// ErrCorruptTree: a backlink already exists for a node being attached.
	// Unreachable under correct usage; kept as a defensive invariant check.
	ErrCorruptTree = errors.New("corrupt tree: backlink already present")
	// ErrCyclicGraph: serialized input is not a DAG.
	ErrCyclicGraph = errors.New("node graph is not acyclic")
	// ErrUnknownNodeType: a record's type discriminator has no registered factory.
	ErrUnknownNodeType = errors.New("unknown node type")
)
