package deg

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// WelchPValue returns the two-sided p-value of Welch's unequal-variance
// t-test for two independent samples. Both samples need at least 2 values.
func WelchPValue(x, y []float64) (float64, error) {
	if len(x) < 2 || len(y) < 2 {
		return 0, fmt.Errorf("welch t-test needs >= 2 values per sample (got %d and %d)", len(x), len(y))
	}

	m1, err := stats.Mean(x)
	if err != nil {
		return 0, err
	}
	m2, err := stats.Mean(y)
	if err != nil {
		return 0, err
	}
	v1, err := stats.SampleVariance(x)
	if err != nil {
		return 0, err
	}
	v2, err := stats.SampleVariance(y)
	if err != nil {
		return 0, err
	}

	se1 := v1 / float64(len(x))
	se2 := v2 / float64(len(y))

	// With zero variance in both samples the statistic is degenerate: the
	// means are either identical (no evidence of difference) or separated
	// with certainty.
	if se1+se2 == 0 {
		if m1 == m2 {
			return 1, nil
		}
		return 0, nil
	}

	tstat := (m2 - m1) / math.Sqrt(se1+se2)

	// Welch-Satterthwaite degrees of freedom
	df := (se1 + se2) * (se1 + se2) /
		(se1*se1/float64(len(x)-1) + se2*se2/float64(len(y)-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}

	return 2 * dist.CDF(-math.Abs(tstat)), nil
}
