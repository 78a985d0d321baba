// Package scorer computes per-dimension quality scores from extracted page
// content and transport metrics. Every scorer is a pure function returning
// an integer score in [0,100] plus the issues behind each deduction; the
// thresholds are design defaults, not fixed law.
package scorer

import "math"

// Overall returns the unweighted arithmetic mean of the given dimension
// scores, rounded to the nearest integer.
func Overall(scores ...int) int {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return int(math.Round(float64(sum) / float64(len(scores))))
}

// clamp bounds a score to [0,100].
func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
