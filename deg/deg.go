// Package deg computes per-gene differential expression between two groups
// of replicate samples: log2 fold-changes, Welch t-test p-values, and
// Benjamini-Hochberg adjusted p-values.
package deg

import (
	"errors"
	"fmt"
	"math"

	"github.com/carbocation/diffexpr/exprtable"
	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
)

// Epsilon is added to each fold-change before the log2 transform so that a
// zero ratio maps to a large negative value rather than -Inf.
const Epsilon = 1e-8

// ErrInsufficientReplicates indicates a group with fewer than 2 samples. The
// t-test is undefined below that, so this is checked before any per-gene
// work rather than letting the test degrade silently.
var ErrInsufficientReplicates = errors.New("group needs at least 2 replicate samples")

// Compute runs the full differential expression pass: for every gene in the
// table, in input order, the fold-change of group2 over group1 and a
// two-sided Welch t-test p-value, followed by one Benjamini-Hochberg
// correction across the complete p-value vector.
func Compute(t *exprtable.Table, group1, group2 []string) ([]exprtable.Result, error) {
	if len(group1) < 2 {
		return nil, fmt.Errorf("group1 has %d sample(s): %w", len(group1), ErrInsufficientReplicates)
	}
	if len(group2) < 2 {
		return nil, fmt.Errorf("group2 has %d sample(s): %w", len(group2), ErrInsufficientReplicates)
	}

	genes := t.Genes()
	results := make([]exprtable.Result, 0, len(genes))
	pvals := make([]float64, 0, len(genes))

	for _, gene := range genes {
		v1, err := t.Values(gene, group1)
		if err != nil {
			return nil, err
		}
		v2, err := t.Values(gene, group2)
		if err != nil {
			return nil, err
		}

		m1, err := stats.Mean(v1)
		if err != nil {
			return nil, pfx.Err(err)
		}
		m2, err := stats.Mean(v2)
		if err != nil {
			return nil, pfx.Err(err)
		}

		p, err := WelchPValue(v1, v2)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("gene %q: %v", gene, err))
		}

		results = append(results, exprtable.Result{
			Gene:   gene,
			Log2FC: math.Log2(m2/m1 + Epsilon),
			PValue: p,
		})
		pvals = append(pvals, p)
	}

	for i, adjusted := range BenjaminiHochberg(pvals) {
		results[i].AdjPValue = adjusted
	}

	return results, nil
}
