package knapsack

import (
	"reflect"
	"testing"
)

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func bruteForceBest(items []Item, target int) int {
	best := 0
	for mask := 0; mask < 1<<len(items); mask++ {
		sum := 0
		for i, it := range items {
			if mask&(1<<i) != 0 && it.Weight > 0 {
				sum += it.Weight
			}
		}
		if sum <= target && sum > best {
			best = sum
		}
	}
	return best
}

func TestSolve(t *testing.T) {
	cases := []struct {
		name     string
		items    []Item
		target   int
		total    int
		selected []string
	}{
		{
			name:     "reaches exact target",
			items:    []Item{{"a", 5}, {"b", 10}, {"c", 15}, {"d", 20}},
			target:   25,
			total:    25,
			selected: []string{"b", "c"},
		},
		{
			name:     "ties prefer earlier items",
			items:    []Item{{"a", 10}, {"b", 10}, {"c", 10}},
			target:   20,
			total:    20,
			selected: []string{"a", "b"},
		},
		{
			name:     "best under budget",
			items:    []Item{{"a", 12}, {"b", 9}, {"c", 7}},
			target:   18,
			total:    16,
			selected: []string{"b", "c"},
		},
		{
			name:     "everything fits",
			items:    []Item{{"a", 3}, {"b", 4}},
			target:   100,
			total:    7,
			selected: []string{"a", "b"},
		},
		{
			name:     "non-positive weights are ignored",
			items:    []Item{{"a", 0}, {"b", -4}, {"c", 6}},
			target:   10,
			total:    6,
			selected: []string{"c"},
		},
		{
			name:   "nothing qualifies",
			items:  []Item{{"a", 0}},
			target: 10,
		},
		{
			name:   "empty catalog",
			target: 10,
		},
		{
			name:   "zero target",
			items:  []Item{{"a", 5}},
			target: 0,
		},
		{
			name:   "negative target",
			items:  []Item{{"a", 5}},
			target: -3,
		},
		{
			name:   "items too heavy",
			items:  []Item{{"a", 30}, {"b", 40}},
			target: 25,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Solve(tc.items, tc.target)
			if res.Total != tc.total {
				t.Fatalf("expected total %d, got %d", tc.total, res.Total)
			}
			got := ids(res.Selected)
			if len(got) == 0 && len(tc.selected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.selected) {
				t.Fatalf("expected %v, got %v", tc.selected, got)
			}
		})
	}
}

func TestSolveClampsTarget(t *testing.T) {
	items := []Item{{"a", 1500}, {"b", 600}, {"c", 400}}
	res := Solve(items, 5000)
	if res.Total != 1900 {
		t.Fatalf("expected clamp to %d to give 1900, got %d", MaxTarget, res.Total)
	}
	if !reflect.DeepEqual(ids(res.Selected), []string{"a", "c"}) {
		t.Fatalf("unexpected selection %v", ids(res.Selected))
	}
}

func TestSolveIsOptimal(t *testing.T) {
	items := []Item{{"a", 7}, {"b", 13}, {"c", 4}, {"d", 19}, {"e", 11}, {"f", 2}, {"g", 23}, {"h", 8}}
	for target := 0; target <= 90; target++ {
		res := Solve(items, target)
		want := bruteForceBest(items, target)
		if res.Total != want {
			t.Fatalf("target %d: expected %d, got %d", target, want, res.Total)
		}
		sum := 0
		for _, it := range res.Selected {
			sum += it.Weight
		}
		if sum != res.Total || sum > target {
			t.Fatalf("target %d: selection sums to %d, total %d", target, sum, res.Total)
		}
	}
}

func TestSolveIsDeterministic(t *testing.T) {
	items := []Item{{"a", 6}, {"b", 4}, {"c", 2}, {"d", 4}, {"e", 6}}
	first := ids(Solve(items, 12).Selected)
	for i := 0; i < 20; i++ {
		if got := ids(Solve(items, 12).Selected); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: expected %v, got %v", i, first, got)
		}
	}
}
