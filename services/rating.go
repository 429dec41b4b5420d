package services

import "math"

// RoundRating rounds to two decimals, half up. Matches the rounding the
// aggregate columns are persisted with (numeric(3,2)).
func RoundRating(value float64) float64 {
	return math.Round(value*100) / 100
}

// IncrementalAverage folds one new rating into an existing (average, total)
// pair without touching the review table:
//
//	newAvg = round((avg*total + rating) / (total+1), 2)
//
// Used only by the instructor add-review shortcut. It must stay numerically
// consistent with RecomputeInstructorRating applied to the same underlying
// set; callers must not mix the two paths for one instructor without
// reconciling.
func IncrementalAverage(average float64, total int, rating int) (float64, int) {
	newTotal := total + 1
	newAverage := RoundRating((average*float64(total) + float64(rating)) / float64(newTotal))
	return newAverage, newTotal
}

// MeanRating is the full-recompute aggregation: the 2-decimal half-up mean of
// a review set, 0.00 when the set is empty.
func MeanRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return RoundRating(float64(sum) / float64(len(ratings)))
}
