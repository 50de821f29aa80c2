package score

import (
	"testing"

	"github.com/matzehuels/mindtower/pkg/graph"
)

func edges(pairs ...string) []graph.Edge {
	out := make([]graph.Edge, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, graph.Edge{Source: pairs[i], Target: pairs[i+1]})
	}
	return out
}

func TestScore(t *testing.T) {
	abc := edges("A", "B", "B", "C", "B", "D")
	tests := []struct {
		name      string
		original  []graph.Edge
		submitted []graph.Edge
		want      int
	}{
		{"Identical", abc, abc, 100},
		{"EmptySubmission", abc, nil, 0},
		{"BothEmpty", nil, nil, 100},
		{"EmptyOriginal", nil, edges("A", "B"), 0},
		{"Reversed", edges("A", "B"), edges("B", "A"), 100},
		{"TwoOfThree", abc, edges("B", "A", "C", "B"), 67},
		{"OneOfThree", abc, edges("D", "B"), 33},
		{"DuplicatesDoNotInflate", edges("A", "B", "C", "D"), edges("A", "B", "B", "A", "A", "B"), 50},
		{"ExtraEdgesIgnored", edges("A", "B"), edges("A", "B", "A", "C", "C", "D"), 100},
		{"DuplicateOriginal", edges("A", "B", "B", "A", "C", "D"), edges("A", "B"), 50},
		{"BlankEndpointsAreKeyed", edges("A", "B"), edges("A", "", "", "B"), 0},
		{"BlankEndpointMatchesItself", edges("", "X"), edges("X", ""), 100},
		{"EmptyOriginalBlankSubmission", nil, edges("", "x"), 0},
		{"BlankOriginalBlankMiss", edges("", "X"), edges("", "Y"), 0},
		{"NoSeparatorCollision", edges("a-b", "c"), edges("a", "b-c"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.original, tt.submitted); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	orig := edges("A", "B", "B", "C")
	sub := edges("A", "B", "B", "A", "C", "B", "B", "C", "A", "C", "X", "Y")
	if got := Score(orig, sub); got != 100 {
		t.Errorf("Score() = %d, want 100", got)
	}
}

func TestExactMatch(t *testing.T) {
	orig := edges("A", "B", "B", "C")
	if !ExactMatch(orig, edges("C", "B", "B", "A")) {
		t.Error("ExactMatch(reordered, reversed) = false")
	}
	if ExactMatch(orig, edges("A", "B")) {
		t.Error("ExactMatch(partial) = true")
	}
}

func TestCompare(t *testing.T) {
	orig := edges("A", "B", "B", "C", "B", "D")
	r := Compare(orig, edges("B", "A", "A", "D", "C", "B"))
	if r.Score != 67 || r.Correct != 2 || r.Total != 3 {
		t.Errorf("Compare() = %+v", r)
	}
	if len(r.Missing) != 1 || r.Missing[0] != (Pair{"B", "D"}) {
		t.Errorf("Missing = %v, want [{B D}]", r.Missing)
	}
	if len(r.Extra) != 1 || r.Extra[0] != (Pair{"A", "D"}) {
		t.Errorf("Extra = %v, want [{A D}]", r.Extra)
	}
}

func TestKey(t *testing.T) {
	if Key(graph.Edge{Source: "z", Target: "a"}) != Key(graph.Edge{Source: "a", Target: "z"}) {
		t.Error("Key is direction sensitive")
	}
}
