package radial

import "math"

// Cluster assigns angles in [0, 2π) with the dendrogram layout: leaves are
// spaced by sep in post-order and each parent sits at the mean of its
// children. The result is keyed by node ID.
func Cluster(root *TreeNode, sep SeparationFunc) map[string]float64 {
	var prev *TreeNode
	var x float64
	root.walkPost(func(n *TreeNode) {
		if n.IsLeaf() {
			if prev != nil {
				x += sep(n, prev)
			}
			n.x = x
			prev = n
			return
		}
		var sum float64
		for _, c := range n.Children {
			sum += c.x
		}
		n.x = sum / float64(len(n.Children))
	})

	left, right := leftmostLeaf(root), rightmostLeaf(root)
	x0 := left.x - sep(left, right)/2
	x1 := right.x + sep(right, left)/2
	return normalize(root, func(v float64) float64 { return (v - x0) / (x1 - x0) })
}

func leftmostLeaf(n *TreeNode) *TreeNode {
	for !n.IsLeaf() {
		n = n.Children[0]
	}
	return n
}

func rightmostLeaf(n *TreeNode) *TreeNode {
	for !n.IsLeaf() {
		n = n.Children[len(n.Children)-1]
	}
	return n
}

// normalize maps raw coordinates through unit (onto [0, 1]) and scales to
// the full circle.
func normalize(root *TreeNode, unit func(float64) float64) map[string]float64 {
	out := make(map[string]float64)
	root.Walk(func(n *TreeNode) {
		out[n.ID] = unit(n.x) * 2 * math.Pi
	})
	return out
}

// =============================================================================
// Tidy tree
// =============================================================================

// tidyNode carries the bookkeeping of the Buchheim–Walker algorithm.
type tidyNode struct {
	node     *TreeNode
	parent   *tidyNode
	children []*tidyNode
	a        *tidyNode // ancestor
	ancestor *tidyNode // A: default ancestor of the children
	thread   *tidyNode // t
	z        float64   // preliminary x
	m        float64   // modifier
	c        float64   // change
	s        float64   // shift
	i        int       // index among siblings
}

// Tidy assigns angles in [0, 2π) with the Reingold–Tilford tidy tree
// layout in linear time (Buchheim, Jünger and Leipert): subtrees are packed
// as tightly as sep allows and parents are centred over their children.
func Tidy(root *TreeNode, sep SeparationFunc) map[string]float64 {
	virtual := &tidyNode{}
	t := wrap(root, virtual, 0)
	virtual.children = []*tidyNode{t}

	t.post(func(v *tidyNode) { firstWalk(v, sep) })
	virtual.m = -t.z
	t.pre(func(v *tidyNode) {
		v.node.x = v.z + v.parent.m
		v.m += v.parent.m
	})

	left, right := root, root
	root.Walk(func(n *TreeNode) {
		if n.x < left.x {
			left = n
		}
		if n.x > right.x {
			right = n
		}
	})
	s := 1.0
	if left != right {
		s = sep(left, right) / 2
	}
	tx := s - left.x
	kx := 1 / (right.x + s + tx)
	return normalize(root, func(v float64) float64 { return (v + tx) * kx })
}

func wrap(n *TreeNode, parent *tidyNode, i int) *tidyNode {
	v := &tidyNode{node: n, parent: parent, i: i}
	v.a = v
	for j, c := range n.Children {
		v.children = append(v.children, wrap(c, v, j))
	}
	return v
}

func (v *tidyNode) post(fn func(*tidyNode)) {
	for _, c := range v.children {
		c.post(fn)
	}
	fn(v)
}

func (v *tidyNode) pre(fn func(*tidyNode)) {
	fn(v)
	for _, c := range v.children {
		c.pre(fn)
	}
}

func nextLeft(v *tidyNode) *tidyNode {
	if len(v.children) > 0 {
		return v.children[0]
	}
	return v.thread
}

func nextRight(v *tidyNode) *tidyNode {
	if len(v.children) > 0 {
		return v.children[len(v.children)-1]
	}
	return v.thread
}

func moveSubtree(wm, wp *tidyNode, shift float64) {
	change := shift / float64(wp.i-wm.i)
	wp.c -= change
	wp.s += shift
	wm.c += change
	wp.z += shift
	wp.m += shift
}

func executeShifts(v *tidyNode) {
	var shift, change float64
	for i := len(v.children) - 1; i >= 0; i-- {
		w := v.children[i]
		w.z += shift
		w.m += shift
		change += w.c
		shift += w.s + change
	}
}

func nextAncestor(vim, v, ancestor *tidyNode) *tidyNode {
	if vim.a.parent == v.parent {
		return vim.a
	}
	return ancestor
}

func firstWalk(v *tidyNode, sep SeparationFunc) {
	siblings := v.parent.children
	var w *tidyNode
	if v.i > 0 {
		w = siblings[v.i-1]
	}
	if len(v.children) > 0 {
		executeShifts(v)
		mid := (v.children[0].z + v.children[len(v.children)-1].z) / 2
		if w != nil {
			v.z = w.z + sep(v.node, w.node)
			v.m = v.z - mid
		} else {
			v.z = mid
		}
	} else if w != nil {
		v.z = w.z + sep(v.node, w.node)
	}
	anc := v.parent.ancestor
	if anc == nil {
		anc = siblings[0]
	}
	v.parent.ancestor = apportion(v, w, anc, sep)
}

func apportion(v, w, ancestor *tidyNode, sep SeparationFunc) *tidyNode {
	if w == nil {
		return ancestor
	}
	vip, vop := v, v
	vim := w
	vom := vip.parent.children[0]
	sip, sop := vip.m, vop.m
	sim, som := vim.m, vom.m
	for {
		vim = nextRight(vim)
		vip = nextLeft(vip)
		if vim == nil || vip == nil {
			break
		}
		vom = nextLeft(vom)
		vop = nextRight(vop)
		vop.a = v
		shift := vim.z + sim - vip.z - sip + sep(vim.node, vip.node)
		if shift > 0 {
			moveSubtree(nextAncestor(vim, v, ancestor), v, shift)
			sip += shift
			sop += shift
		}
		sim += vim.m
		sip += vip.m
		som += vom.m
		sop += vop.m
	}
	if vim != nil && nextRight(vop) == nil {
		vop.thread = vim
		vop.m += sim - sop
	}
	if vip != nil && nextLeft(vom) == nil {
		vom.thread = vip
		vom.m += sip - som
		ancestor = v
	}
	return ancestor
}
