// Package knapsack solves the 0/1 knapsack problem where value equals weight,
// as used by the protein planner.
package knapsack

// MaxTarget bounds the table width regardless of what callers request.
const MaxTarget = 2000

// Item is a candidate with an integer weight.
type Item struct {
	ID     string
	Weight int
}

// Result is the selected subset in catalog order and its total weight.
type Result struct {
	Selected []Item
	Total    int
}

// Solve returns a subset of items with the largest total weight not exceeding target.
// Items with non-positive weight are ignored. Among equal optima the subset
// preferring earlier items is returned, so the output is deterministic for a
// fixed item order.
func Solve(items []Item, target int) Result {
	if target > MaxTarget {
		target = MaxTarget
	}
	if target <= 0 {
		return Result{}
	}

	candidates := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Weight > 0 {
			candidates = append(candidates, it)
		}
	}
	if len(candidates) == 0 {
		return Result{}
	}

	n := len(candidates)
	// table[i][w] is the best total using the first i candidates with budget w.
	table := make([][]int, n+1)
	for i := range table {
		table[i] = make([]int, target+1)
	}
	for i := 1; i <= n; i++ {
		p := candidates[i-1].Weight
		for w := 0; w <= target; w++ {
			best := table[i-1][w]
			if p <= w {
				if with := p + table[i-1][w-p]; with > best {
					best = with
				}
			}
			table[i][w] = best
		}
	}

	// Walking back from the last candidate, an item is taken only when the
	// optimum cannot be reached without it, so earlier items win ties.
	res := Result{Total: table[n][target]}
	w := target
	for i := n; i > 0 && w > 0; i-- {
		if table[i][w] != table[i-1][w] {
			res.Selected = append(res.Selected, candidates[i-1])
			w -= candidates[i-1].Weight
		}
	}
	for l, r := 0, len(res.Selected)-1; l < r; l, r = l+1, r-1 {
		res.Selected[l], res.Selected[r] = res.Selected[r], res.Selected[l]
	}
	return res
}
