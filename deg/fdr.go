package deg

import "sort"

// BenjaminiHochberg applies the Benjamini-Hochberg step-up correction to a
// vector of p-values, returning adjusted values in the same order. Adjusted
// values are clamped to [0,1] and are monotone over the sorted raw values,
// so each adjusted p-value is >= its raw p-value.
func BenjaminiHochberg(pvals []float64) []float64 {
	n := len(pvals)
	if n == 0 {
		return nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return pvals[idx[i]] < pvals[idx[j]]
	})

	adjusted := make([]float64, n)
	running := 1.0
	for i := n - 1; i >= 0; i-- {
		adj := pvals[idx[i]] * float64(n) / float64(i+1)
		if adj > 1 {
			adj = 1
		}
		if adj < running {
			running = adj
		}
		adjusted[idx[i]] = running
	}

	return adjusted
}
