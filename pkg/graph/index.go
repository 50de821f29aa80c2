package graph

// Index is a read-only adjacency view over a Graph.
//
// Children preserve edge order, which is what gives the radial layout a
// stable angular ordering of siblings.
type Index struct {
	pos      map[string]int
	children map[string][]string
	parents  map[string][]string
	degree   map[string]int
}

// NewIndex builds the adjacency index of g. Edges whose endpoints are not
// nodes of g are ignored.
func NewIndex(g *Graph) *Index {
	ix := &Index{
		pos:      make(map[string]int, len(g.Nodes)),
		children: make(map[string][]string),
		parents:  make(map[string][]string),
		degree:   make(map[string]int, len(g.Nodes)),
	}
	for i, n := range g.Nodes {
		if _, ok := ix.pos[n.ID]; !ok {
			ix.pos[n.ID] = i
		}
	}
	for _, e := range g.Edges {
		if !ix.Has(e.Source) || !ix.Has(e.Target) {
			continue
		}
		ix.children[e.Source] = append(ix.children[e.Source], e.Target)
		ix.parents[e.Target] = append(ix.parents[e.Target], e.Source)
		ix.degree[e.Source]++
		ix.degree[e.Target]++
	}
	return ix
}

// Has reports whether id is a node of the indexed graph.
func (ix *Index) Has(id string) bool {
	_, ok := ix.pos[id]
	return ok
}

// Pos returns the index of id in the graph's node slice, or -1.
func (ix *Index) Pos(id string) int {
	if p, ok := ix.pos[id]; ok {
		return p
	}
	return -1
}

// Children returns the targets of edges leaving id, in edge order.
func (ix *Index) Children(id string) []string { return ix.children[id] }

// Parents returns the sources of edges entering id, in edge order.
func (ix *Index) Parents(id string) []string { return ix.parents[id] }

// Degree returns the number of edge endpoints at id. A self-loop counts twice.
func (ix *Index) Degree(id string) int { return ix.degree[id] }

// Root returns the ID of the first node at RootLevel, in node order.
func Root(g *Graph) (string, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].IsRoot() {
			return g.Nodes[i].ID, true
		}
	}
	return "", false
}
