// Package score grades a reconnected diagram against the original.
//
// Edges are compared as unordered pairs of node IDs: direction does not
// matter and the edge IDs are ignored. Both edge sets are de-duplicated
// before counting, so repeating a correct edge never earns extra credit and
// the score cannot exceed 100.
//
//	orig := []graph.Edge{{Source: "A", Target: "B"}, {Source: "B", Target: "C"}, {Source: "B", Target: "D"}}
//	sub := []graph.Edge{{Source: "B", Target: "A"}, {Source: "C", Target: "B"}}
//	score.Score(orig, sub) // 67
package score

import (
	"math"
	"sort"

	"github.com/matzehuels/mindtower/pkg/graph"
)

// Pair is an order-independent edge key. Lo <= Hi.
type Pair struct {
	Lo, Hi string
}

// Key normalizes an edge to its Pair.
func Key(e graph.Edge) Pair {
	if e.Target < e.Source {
		return Pair{Lo: e.Target, Hi: e.Source}
	}
	return Pair{Lo: e.Source, Hi: e.Target}
}

// set returns the distinct pairs of edges. Endpoints are not validated: an
// edge with a blank endpoint is keyed like any other.
func set(edges []graph.Edge) map[Pair]struct{} {
	out := make(map[Pair]struct{}, len(edges))
	for _, e := range edges {
		out[Key(e)] = struct{}{}
	}
	return out
}

// Score returns the percentage of distinct original edges present in the
// submission, rounded to the nearest integer. An original with no edges
// scores 100 only against an empty submission.
func Score(original, submitted []graph.Edge) int {
	return Compare(original, submitted).Score
}

// ExactMatch reports whether the submission recovers every original edge.
// Extra edges do not prevent a match.
func ExactMatch(original, submitted []graph.Edge) bool {
	return Score(original, submitted) == 100
}

// Report is the breakdown behind a score.
type Report struct {
	Score   int    `json:"score"`
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
	Missing []Pair `json:"missing,omitempty"`
	Extra   []Pair `json:"extra,omitempty"`
}

// Compare scores the submission and lists which original edges it missed and
// which submitted edges are not in the original. Both lists are sorted.
func Compare(original, submitted []graph.Edge) Report {
	orig := set(original)
	sub := set(submitted)

	r := Report{Total: len(orig)}
	for p := range sub {
		if _, ok := orig[p]; ok {
			r.Correct++
		} else {
			r.Extra = append(r.Extra, p)
		}
	}
	for p := range orig {
		if _, ok := sub[p]; !ok {
			r.Missing = append(r.Missing, p)
		}
	}
	sortPairs(r.Missing)
	sortPairs(r.Extra)

	switch {
	case r.Total == 0 && len(submitted) == 0:
		r.Score = 100
	case r.Total == 0:
		r.Score = 0
	default:
		r.Score = int(math.Round(float64(r.Correct) / float64(r.Total) * 100))
	}
	return r
}

func sortPairs(ps []Pair) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Lo != ps[j].Lo {
			return ps[i].Lo < ps[j].Lo
		}
		return ps[i].Hi < ps[j].Hi
	})
}
