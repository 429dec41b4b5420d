package services

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundRating(t *testing.T) {
	require.Equal(t, 4.67, RoundRating(4.666666))
	require.Equal(t, 4.5, RoundRating(4.5))
	require.Equal(t, 3.13, RoundRating(3.125))
	require.Equal(t, 0.0, RoundRating(0))
	require.Equal(t, 5.0, RoundRating(5))
}

func TestMeanRating(t *testing.T) {
	require.Equal(t, 0.0, MeanRating(nil))
	require.Equal(t, 0.0, MeanRating([]int{}))
	require.Equal(t, 5.0, MeanRating([]int{5}))
	require.Equal(t, 4.5, MeanRating([]int{4, 5}))
	require.Equal(t, 4.67, MeanRating([]int{4, 5, 5}))
	require.Equal(t, 1.67, MeanRating([]int{1, 2, 2}))
	require.Equal(t, 3.0, MeanRating([]int{1, 5, 3}))
}

func TestIncrementalAverageFirstRating(t *testing.T) {
	avg, total := IncrementalAverage(0, 0, 4)
	require.Equal(t, 4.0, avg)
	require.Equal(t, 1, total)
}

func TestIncrementalAverageSequence(t *testing.T) {
	avg, total := 0.0, 0
	for _, rating := range []int{4, 5, 5} {
		avg, total = IncrementalAverage(avg, total, rating)
	}
	require.Equal(t, 4.67, avg)
	require.Equal(t, 3, total)
}

// The incremental path folds against a rounded stored average, so it can
// drift from the full recompute by at most one hundredth per fold. Ratings
// fed one by one must stay within a cent of the true mean at every step.
func TestIncrementalAverageTracksMean(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.Intn(60)
		ratings := make([]int, 0, n)
		avg, total := 0.0, 0

		for i := 0; i < n; i++ {
			rating := 1 + rng.Intn(5)
			ratings = append(ratings, rating)
			avg, total = IncrementalAverage(avg, total, rating)

			require.Equal(t, len(ratings), total)
			require.LessOrEqual(t, math.Abs(avg-MeanRating(ratings)), 0.01,
				"trial %d after %d ratings", trial, total)
		}
	}
}

func TestIncrementalAverageBounds(t *testing.T) {
	avg, total := 0.0, 0
	for i := 0; i < 100; i++ {
		avg, total = IncrementalAverage(avg, total, 5)
	}
	require.Equal(t, 5.0, avg)
	require.Equal(t, 100, total)

	avg, total = 0.0, 0
	for i := 0; i < 100; i++ {
		avg, total = IncrementalAverage(avg, total, 1)
	}
	require.Equal(t, 1.0, avg)
	require.Equal(t, 100, total)
}
