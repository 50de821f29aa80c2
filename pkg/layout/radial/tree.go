package radial

import "github.com/matzehuels/mindtower/pkg/graph"

// TreeNode is one node of the tree reconstructed from the edge list.
// It exists only for the duration of a layout pass.
type TreeNode struct {
	ID       string
	Index    int // position in the graph's node slice
	Depth    int
	Parent   *TreeNode
	Children []*TreeNode

	x float64 // angular coordinate before normalization
}

// IsLeaf reports whether the node has no children.
func (t *TreeNode) IsLeaf() bool { return len(t.Children) == 0 }

// Walk visits t and its descendants in pre-order.
func (t *TreeNode) Walk(fn func(*TreeNode)) {
	fn(t)
	for _, c := range t.Children {
		c.Walk(fn)
	}
}

// walkPost visits descendants before their parent.
func (t *TreeNode) walkPost(fn func(*TreeNode)) {
	for _, c := range t.Children {
		c.walkPost(fn)
	}
	fn(t)
}

// BuildTree reconstructs the tree rooted at the first level-0 node of g.
// Nodes are added breadth-first, so a node reachable along several paths
// hangs below its shallowest parent; cycles are broken the same way.
// Children keep edge order. It returns false if g has no level-0 node.
func BuildTree(g *graph.Graph, ix *graph.Index) (*TreeNode, bool) {
	rootID, ok := graph.Root(g)
	if !ok {
		return nil, false
	}
	root := &TreeNode{ID: rootID, Index: ix.Pos(rootID)}
	seen := map[string]bool{rootID: true}
	queue := []*TreeNode{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, id := range ix.Children(n.ID) {
			if seen[id] {
				continue
			}
			seen[id] = true
			c := &TreeNode{ID: id, Index: ix.Pos(id), Depth: n.Depth + 1, Parent: n}
			n.Children = append(n.Children, c)
			queue = append(queue, c)
		}
	}
	return root, true
}

// LevelCounts returns the number of tree nodes at each depth.
func LevelCounts(root *TreeNode) []int {
	var counts []int
	root.Walk(func(n *TreeNode) {
		for len(counts) <= n.Depth {
			counts = append(counts, 0)
		}
		counts[n.Depth]++
	})
	return counts
}
