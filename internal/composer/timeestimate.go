package composer

// EstimateTime buckets a question's time estimate from its source
// file's complexity score (scaled to the original's 0-10 cyclomatic-ish
// range), carried verbatim from question_strategies.py's _estimate_time
// thresholds.
func EstimateTime(complexityScore float64) string {
	c := complexityScore * 10
	switch {
	case c <= 2.0:
		return "3-5 min"
	case c <= 4.0:
		return "5-7 min"
	case c <= 6.0:
		return "7-10 min"
	case c <= 8.0:
		return "10-15 min"
	default:
		return "15-20 min"
	}
}
