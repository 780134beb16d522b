package library

import (
	"testing"

	models "libris/internal/domain/models/library"
)

func TestPropagate_IncrementsWholeAncestorChain(t *testing.T) {
	f := fixtureForest()
	g := PropagateDocumentDelta(f, strPtr("y2024"), 1)

	if FindNode(g, "y2024").DocumentCount != 4 {
		t.Errorf("expected target at 4, got %d", FindNode(g, "y2024").DocumentCount)
	}
	if FindNode(g, "reports").DocumentCount != 4 {
		t.Errorf("expected ancestor at 4, got %d", FindNode(g, "reports").DocumentCount)
	}
	if FindNode(g, "misc").DocumentCount != 2 {
		t.Errorf("expected unrelated subtree untouched, got %d", FindNode(g, "misc").DocumentCount)
	}
	if g.TotalDocumentCount != 7 {
		t.Errorf("expected total 7, got %d", g.TotalDocumentCount)
	}
	checkInvariants(t, g)
}

func TestPropagate_NilTargetAdjustsUnfiledOnly(t *testing.T) {
	f := fixtureForest()
	g := PropagateDocumentDelta(f, nil, 1)

	if g.UnfiledDocumentCount != 2 {
		t.Errorf("expected unfiled at 2, got %d", g.UnfiledDocumentCount)
	}
	if g.TotalDocumentCount != 7 {
		t.Errorf("expected total 7, got %d", g.TotalDocumentCount)
	}
	if FindNode(g, "reports").DocumentCount != 3 {
		t.Error("expected no folder touched for unfiled delta")
	}
	checkInvariants(t, g)
}

func TestPropagate_UnknownTargetBehavesAsUnfiled(t *testing.T) {
	f := fixtureForest()
	g := PropagateDocumentDelta(f, strPtr("missing"), 1)

	if g.UnfiledDocumentCount != 2 {
		t.Errorf("expected unfiled bumped for unknown target, got %d", g.UnfiledDocumentCount)
	}
	checkInvariants(t, g)
}

func TestPropagate_NeverGoesNegative(t *testing.T) {
	f := fixtureForest()

	// Adversarial out-of-order deltas: far more decrements than the
	// counts can absorb.
	g := f
	for i := 0; i < 10; i++ {
		g = PropagateDocumentDelta(g, strPtr("y2024"), -1)
	}
	for i := 0; i < 5; i++ {
		g = PropagateDocumentDelta(g, nil, -1)
	}

	var walk func(n *models.FolderNode)
	walk = func(n *models.FolderNode) {
		if n.DocumentCount < 0 {
			t.Errorf("folder %s went negative: %d", n.ID, n.DocumentCount)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, root := range g.Folders {
		walk(root)
	}
	if g.UnfiledDocumentCount < 0 || g.TotalDocumentCount < 0 {
		t.Errorf("forest-level counts went negative: unfiled=%d total=%d",
			g.UnfiledDocumentCount, g.TotalDocumentCount)
	}
}

func TestPropagate_InterleavedDeltasCommute(t *testing.T) {
	f := fixtureForest()

	// Same deltas in two different arrival orders.
	a := PropagateDocumentDelta(f, strPtr("y2024"), 1)
	a = PropagateDocumentDelta(a, strPtr("misc"), 1)
	a = PropagateDocumentDelta(a, nil, 1)

	b := PropagateDocumentDelta(f, nil, 1)
	b = PropagateDocumentDelta(b, strPtr("misc"), 1)
	b = PropagateDocumentDelta(b, strPtr("y2024"), 1)

	for _, id := range []string{"reports", "y2024", "misc"} {
		if FindNode(a, id).DocumentCount != FindNode(b, id).DocumentCount {
			t.Errorf("folder %s: orders diverged (%d vs %d)",
				id, FindNode(a, id).DocumentCount, FindNode(b, id).DocumentCount)
		}
	}
	if a.TotalDocumentCount != b.TotalDocumentCount || a.UnfiledDocumentCount != b.UnfiledDocumentCount {
		t.Error("forest-level counts diverged across arrival orders")
	}
}
