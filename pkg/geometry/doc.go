// Package geometry computes where edges touch node boxes.
//
// Nodes are axis-aligned rectangles. Given two nodes, [EdgeAnchors] returns
// the point on each box where the straight line between the two box centres
// leaves the box, plus the [Side] of the box that point lies on. The side is
// what a renderer needs to bend the edge curve outward from the node
// (see [Curve]).
//
// The intersection is computed in diamond coordinates: the offset between
// the centres is projected onto the two diagonals of the box, normalized by
// the L1 norm and projected back. For a rectangle this lands exactly on the
// box boundary, with corners reached when the line passes through them.
//
// Nothing in this package mutates its inputs, and nothing returns an error.
// A node without a position or measured size cannot be anchored; the
// functions report that with a false second return value and callers skip
// the edge for that frame.
package geometry
