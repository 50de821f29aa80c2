// Package radial implements the level-based radial hierarchical layout.
//
// The layout places the root at the canvas centre and every other node on a
// concentric ring whose radius depends only on the node's depth in the tree:
//
//  1. [BuildTree] reconstructs a rooted tree from the flat edge list,
//     starting at the first node with level 0 and following edges from
//     source to target.
//  2. [LevelRadii] sizes each ring so that all nodes of that depth fit side
//     by side, with at least [Config.MinLevelStep] between rings.
//  3. An angular layout ([Cluster] or [Tidy]) spreads the tree over the full
//     circle; a [SeparationFunc] decides how much wider cousins are spaced
//     than siblings.
//  4. [Compute] keeps each node's angle, replaces its radius with the ring
//     radius and converts to Cartesian coordinates, rotated so the first
//     child points up.
//
// Nodes the root cannot reach keep their previous positions. A graph with no
// level-0 node is left untouched. Neither case is an error.
//
// The computation is synchronous and recomputes everything on each call.
package radial
