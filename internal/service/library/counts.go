package library

import (
	models "libris/internal/domain/models/library"
)

// PropagateDocumentDelta applies a signed document-count delta to the
// folder matching folderID and every ancestor up to its root, leaving
// unrelated subtrees untouched. A nil folderID, or an id absent from the
// forest, denotes "unfiled": only the forest-level counters move.
//
// Counts are clamped at zero so adversarial out-of-order deltas can
// never drive a count negative; independent deltas commute, so the
// interleaved application order does not matter.
func PropagateDocumentDelta(f *models.FolderForest, folderID *string, delta int) *models.FolderForest {
	g := CloneForest(f)

	var path []string
	if folderID != nil {
		path = FindPath(g, *folderID)
	}
	if path == nil {
		g.UnfiledDocumentCount = clampZero(g.UnfiledDocumentCount + delta)
		g.TotalDocumentCount = clampZero(g.TotalDocumentCount + delta)
		return g
	}

	applyDeltaOnPath(g, path, delta)
	g.TotalDocumentCount = clampZero(g.TotalDocumentCount + delta)
	return g
}

// applyDeltaOnPath walks the whole forest and clamp-adds delta to every
// node whose id sits on the path. Recursion continues into children
// regardless of whether the current node matched, since path nodes can
// appear at any depth.
func applyDeltaOnPath(g *models.FolderForest, path []string, delta int) {
	if len(path) == 0 {
		return
	}
	onPath := make(map[string]bool, len(path))
	for _, id := range path {
		onPath[id] = true
	}

	var walk func(n *models.FolderNode)
	walk = func(n *models.FolderNode) {
		if onPath[n.ID] {
			n.DocumentCount = clampZero(n.DocumentCount + delta)
		}
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, root := range g.Folders {
		walk(root)
	}
}
