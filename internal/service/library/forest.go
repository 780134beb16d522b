package library

import (
	"strings"

	models "libris/internal/domain/models/library"
	libSvc "libris/internal/domain/services/library"
)

// Pure structural operations on a FolderForest. Every operation clones
// the input and returns the clone: published forests are never mutated,
// so observers holding an old snapshot keep a consistent view. None of
// these functions perform I/O.
//
// Invariants preserved by every operation:
//   - ChildrenCount == len(Children) on every node
//   - DocumentCount is a subtree total: direct documents plus the
//     DocumentCount of each direct child
//   - the node set stays a forest (no cycles, single ownership)
//   - TotalDocumentCount == sum of root DocumentCounts + unfiled

// CloneForest deep-copies a forest. Returns nil for nil.
func CloneForest(f *models.FolderForest) *models.FolderForest {
	if f == nil {
		return nil
	}
	g := &models.FolderForest{
		Folders:              make([]*models.FolderNode, 0, len(f.Folders)),
		TotalFolderCount:     f.TotalFolderCount,
		UnfiledDocumentCount: f.UnfiledDocumentCount,
		TotalDocumentCount:   f.TotalDocumentCount,
	}
	for _, root := range f.Folders {
		g.Folders = append(g.Folders, cloneNode(root))
	}
	return g
}

func cloneNode(n *models.FolderNode) *models.FolderNode {
	c := *n
	if n.ParentID != nil {
		pid := *n.ParentID
		c.ParentID = &pid
	}
	if n.Tags != nil {
		c.Tags = append([]models.Tag(nil), n.Tags...)
	}
	c.Children = make([]*models.FolderNode, 0, len(n.Children))
	for _, child := range n.Children {
		c.Children = append(c.Children, cloneNode(child))
	}
	return &c
}

// FindNode locates a node by identity anywhere in the forest.
func FindNode(f *models.FolderForest, id string) *models.FolderNode {
	for _, root := range f.Folders {
		if n := findIn(root, id); n != nil {
			return n
		}
	}
	return nil
}

func findIn(n *models.FolderNode, id string) *models.FolderNode {
	if n.ID == id {
		return n
	}
	for _, child := range n.Children {
		if found := findIn(child, id); found != nil {
			return found
		}
	}
	return nil
}

// FindPath returns the ordered list of ids from a root down to the
// target, or nil when the target is not in the forest.
func FindPath(f *models.FolderForest, id string) []string {
	for _, root := range f.Folders {
		if p := pathTo(root, id); p != nil {
			return p
		}
	}
	return nil
}

func pathTo(n *models.FolderNode, id string) []string {
	if n.ID == id {
		return []string{n.ID}
	}
	for _, child := range n.Children {
		if p := pathTo(child, id); p != nil {
			return append([]string{n.ID}, p...)
		}
	}
	return nil
}

// SubtreeDocumentTotal returns the aggregate document count of a folder
// plus every descendant. Since DocumentCount is maintained as a subtree
// total, this is the node's own count.
func SubtreeDocumentTotal(n *models.FolderNode) int {
	return n.DocumentCount
}

// SubtreeFolderCount counts the folder itself plus every descendant.
func SubtreeFolderCount(n *models.FolderNode) int {
	count := 1
	for _, child := range n.Children {
		count += SubtreeFolderCount(child)
	}
	return count
}

// Insert adds node as a root (nil parentID) or as a child of the node
// matching parentID, searched by identity across the whole forest. An
// unknown parentID is a no-op. Ancestor counts absorb the node's subtree
// document total (normally zero for a freshly created folder).
func Insert(f *models.FolderForest, node *models.FolderNode, parentID *string) *models.FolderForest {
	g := CloneForest(f)
	n := cloneNode(node)
	n.ChildrenCount = len(n.Children)

	if parentID == nil {
		n.ParentID = nil
		g.Folders = append(g.Folders, n)
	} else {
		parent := FindNode(g, *parentID)
		if parent == nil {
			return g
		}
		pid := *parentID
		n.ParentID = &pid
		parent.Children = append(parent.Children, n)
		parent.ChildrenCount = len(parent.Children)
		if total := SubtreeDocumentTotal(n); total != 0 {
			applyDeltaOnPath(g, FindPath(g, *parentID), total)
		}
	}

	g.TotalFolderCount += SubtreeFolderCount(n)
	g.TotalDocumentCount += SubtreeDocumentTotal(n)
	return g
}

// Update replaces the attributes of the node matching updated.ID in its
// current tree position. Children, ChildrenCount, DocumentCount and
// ParentID are preserved exactly: update payloads from the collaborator
// carry no subtree. Unknown id is a no-op.
func Update(f *models.FolderForest, updated *models.FolderNode) *models.FolderForest {
	g := CloneForest(f)
	node := FindNode(g, updated.ID)
	if node == nil {
		return g
	}
	applyAttributes(node, updated)
	return g
}

// Move relocates the node matching updated.ID under updated.ParentID
// (nil = root level), carrying its subtree unchanged. The node's subtree
// document total is computed before detaching; the old ancestor chain is
// decremented by it and the new chain incremented. A missing node, a
// missing target parent, or a target inside the moving subtree is a
// no-op; the caller filters invalid parent choices before getting here.
func Move(f *models.FolderForest, updated *models.FolderNode) *models.FolderForest {
	g := CloneForest(f)
	node := FindNode(g, updated.ID)
	if node == nil {
		return g
	}

	newParentID := updated.ParentID
	if sameParent(node.ParentID, newParentID) {
		applyAttributes(node, updated)
		return g
	}
	if newParentID != nil {
		target := FindNode(g, *newParentID)
		if target == nil || findIn(node, *newParentID) != nil {
			return g
		}
	}

	total := SubtreeDocumentTotal(node)

	// Old ancestor chain, resolved while the node is still attached.
	if node.ParentID != nil {
		applyDeltaOnPath(g, FindPath(g, *node.ParentID), -total)
	}
	excise(g, node)

	if newParentID == nil {
		node.ParentID = nil
		g.Folders = append(g.Folders, node)
	} else {
		parent := FindNode(g, *newParentID)
		pid := *newParentID
		node.ParentID = &pid
		parent.Children = append(parent.Children, node)
		parent.ChildrenCount = len(parent.Children)
		applyDeltaOnPath(g, FindPath(g, *newParentID), total)
	}

	applyAttributes(node, updated)
	return g
}

// Remove excises the node matching folderID together with its entire
// subtree and decrements the former ancestor chain by the removed
// document total. Returns the new forest plus how many folders and
// documents were removed. Unknown id returns the forest unchanged.
func Remove(f *models.FolderForest, folderID string) (*models.FolderForest, int, int) {
	g := CloneForest(f)
	node := FindNode(g, folderID)
	if node == nil {
		return g, 0, 0
	}

	removedFolders := SubtreeFolderCount(node)
	removedDocs := SubtreeDocumentTotal(node)

	if node.ParentID != nil {
		applyDeltaOnPath(g, FindPath(g, *node.ParentID), -removedDocs)
	}
	excise(g, node)

	g.TotalFolderCount = clampZero(g.TotalFolderCount - removedFolders)
	g.TotalDocumentCount = clampZero(g.TotalDocumentCount - removedDocs)
	return g, removedFolders, removedDocs
}

// Flatten returns the forest as a depth-first ordered list, each name
// prefixed with an indentation marker proportional to depth. When
// excludeSubtreeOf is non-empty that node and its descendants are
// skipped, so the result is safe to use as a parent picker.
func Flatten(f *models.FolderForest, excludeSubtreeOf string) []libSvc.FlatFolder {
	if f == nil {
		return nil
	}
	out := make([]libSvc.FlatFolder, 0, f.TotalFolderCount)
	var walk func(n *models.FolderNode, depth int)
	walk = func(n *models.FolderNode, depth int) {
		if excludeSubtreeOf != "" && n.ID == excludeSubtreeOf {
			return
		}
		out = append(out, libSvc.FlatFolder{
			ID:    n.ID,
			Name:  strings.Repeat("— ", depth) + n.Name,
			Depth: depth,
		})
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	for _, root := range f.Folders {
		walk(root, 0)
	}
	return out
}

// excise removes node from its current position (root slice or its
// parent's Children) and fixes the parent's ChildrenCount. The node's
// ParentID still identifies the old parent when called.
func excise(g *models.FolderForest, node *models.FolderNode) {
	if node.ParentID == nil {
		g.Folders = removeFromSlice(g.Folders, node.ID)
		return
	}
	parent := FindNode(g, *node.ParentID)
	if parent == nil {
		// Inconsistent ParentID; fall back to scanning the roots.
		g.Folders = removeFromSlice(g.Folders, node.ID)
		return
	}
	parent.Children = removeFromSlice(parent.Children, node.ID)
	parent.ChildrenCount = len(parent.Children)
}

func removeFromSlice(nodes []*models.FolderNode, id string) []*models.FolderNode {
	for i, n := range nodes {
		if n.ID == id {
			return append(nodes[:i], nodes[i+1:]...)
		}
	}
	return nodes
}

// applyAttributes copies the mutable attributes from an acknowledgment
// payload onto the local node, leaving structure and counts alone.
func applyAttributes(node, updated *models.FolderNode) {
	node.Name = updated.Name
	node.Description = updated.Description
	node.Color = updated.Color
	if updated.Tags != nil {
		node.Tags = append([]models.Tag(nil), updated.Tags...)
	}
	if !updated.UpdatedAt.IsZero() {
		node.UpdatedAt = updated.UpdatedAt
	}
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
