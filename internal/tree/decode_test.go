package tree_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/duiproject/duitrack/internal/tree"
)

// diamond builds 1 ← {2, 3} ← 4 with a mix of states.
func diamond(t *testing.T) *tree.Tree {
	t.Helper()
	tr := tree.NewTree()
	root := attach(t, tr, tree.New())
	left := attach(t, tr, tree.New(root))
	right := attach(t, tr, tree.New(root))
	merged := attach(t, tr, tree.New(left, right))

	if err := root.SetState(tree.StateSuccess); err != nil {
		t.Fatal(err)
	}
	if err := merged.SetState(tree.StateRunning); err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestDecode_RoundTrip(t *testing.T) {
	tr := diamond(t)
	recs := tr.Representation()

	rebuilt, err := tree.Decode(recs, tree.DefaultRegistry())
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !reflect.DeepEqual(rebuilt.Representation(), recs) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", rebuilt.Representation(), recs)
	}

	merged, ok := rebuilt.Get("4")
	if !ok {
		t.Fatal("node 4 missing after decode")
	}
	if merged.State() != tree.StateRunning {
		t.Errorf("state = %s, want RUNNING", merged.State())
	}
	if len(merged.Parents()) != 2 {
		t.Errorf("node 4 parents = %d, want 2", len(merged.Parents()))
	}
	for _, id := range []string{"2", "3"} {
		p, _ := rebuilt.Get(id)
		cs := p.Children()
		if len(cs) != 1 || cs[0] != merged {
			t.Errorf("node %s children = %v, want [node 4]", id, cs)
		}
	}
}

func TestDecode_OrderIndependent(t *testing.T) {
	recs := diamond(t).Representation()
	// Children listed before their parents.
	shuffled := []tree.Record{recs[3], recs[1], recs[2], recs[0]}

	rebuilt, err := tree.Decode(shuffled, tree.DefaultRegistry())
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if rebuilt.Len() != 4 {
		t.Errorf("rebuilt size = %d, want 4", rebuilt.Len())
	}
	if _, ok := rebuilt.Get("4"); !ok {
		t.Errorf("node 4 missing")
	}
}

func TestDecode_Cycle(t *testing.T) {
	recs := []tree.Record{
		{Type: "Node", ID: "a", UUID: "uuid-a", State: tree.StateCreated, Parents: []string{"b"}},
		{Type: "Node", ID: "b", UUID: "uuid-b", State: tree.StateCreated, Parents: []string{"a"}},
	}
	_, err := tree.Decode(recs, tree.DefaultRegistry())
	if !errors.Is(err, tree.ErrCyclicGraph) {
		t.Fatalf("err = %v, want ErrCyclicGraph", err)
	}
}

func TestDecode_UnknownType(t *testing.T) {
	recs := []tree.Record{
		{Type: "WarpDrive", ID: "1", UUID: "uuid-1", State: tree.StateCreated},
	}
	_, err := tree.Decode(recs, tree.DefaultRegistry())
	if !errors.Is(err, tree.ErrUnknownNodeType) {
		t.Fatalf("err = %v, want ErrUnknownNodeType", err)
	}
}

func TestDecode_DuplicateID(t *testing.T) {
	recs := []tree.Record{
		{Type: "Node", ID: "1", UUID: "uuid-1", State: tree.StateCreated},
		{Type: "Node", ID: "1", UUID: "uuid-2", State: tree.StateCreated},
	}
	_, err := tree.Decode(recs, tree.DefaultRegistry())
	if !errors.Is(err, tree.ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
}

func TestDecode_MissingParentRecord(t *testing.T) {
	recs := []tree.Record{
		{Type: "Node", ID: "2", UUID: "uuid-2", State: tree.StateCreated, Parents: []string{"gone"}},
	}
	_, err := tree.Decode(recs, tree.DefaultRegistry())
	if !errors.Is(err, tree.ErrMissingParent) {
		t.Fatalf("err = %v, want ErrMissingParent", err)
	}
}

func TestDecode_CustomKindFactory(t *testing.T) {
	reg := tree.DefaultRegistry()
	called := false
	reg.Register("ImportNode", func(tr *tree.Tree, rec tree.Record) (*tree.Node, error) {
		called = true
		return tree.DecodeNode(tr, rec)
	})

	recs := []tree.Record{
		{Type: "ImportNode", ID: "1", UUID: "uuid-1", State: tree.StateCreated},
	}
	rebuilt, err := tree.Decode(recs, reg)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if !called {
		t.Errorf("custom factory was not dispatched")
	}
	n, _ := rebuilt.Get("1")
	if n.Kind() != "ImportNode" {
		t.Errorf("kind = %q, want ImportNode", n.Kind())
	}
}

func TestRegistry_DuplicateKindPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on duplicate kind")
		}
	}()
	reg := tree.DefaultRegistry()
	reg.Register(tree.KindNode, tree.DecodeNode)
}
