// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"math"
	"time"
)

// Scoring utilities are pure functions over (rating, timestamp) data. They
// take all inputs explicitly and hold no state, keeping the engine trivially
// parallelizable across requests.

// AverageRating returns the arithmetic mean of the rating values. An empty
// set yields 0, not an error: a book with no reviews has a defined average.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum int
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}

// SampleConfidence maps a sample size to a bounded confidence value in [0,1)
// using n / (n + pivot). At n == pivot the confidence is 0.5; it approaches
// 1 as the sample grows. A non-positive pivot degenerates to full confidence
// for any non-empty sample.
func SampleConfidence(n int, pivot float64) float64 {
	if n <= 0 {
		return 0
	}
	if pivot <= 0 {
		return 1
	}
	return float64(n) / (float64(n) + pivot)
}

// RecencyWeight returns an exponential decay weight in (0,1] for an event at
// the given time, with the given half-life. Events in the future or with a
// non-positive half-life weigh 1.
func RecencyWeight(at, now time.Time, halfLife time.Duration) float64 {
	if halfLife <= 0 || !at.Before(now) {
		return 1
	}
	age := now.Sub(at)
	return math.Exp2(-float64(age) / float64(halfLife))
}

// WeightedPopularity sums the recency weights of the review timestamps,
// producing a popularity signal that favors recent activity over raw volume.
func WeightedPopularity(reviews []Review, now time.Time, halfLife time.Duration) float64 {
	var total float64
	for _, r := range reviews {
		total += RecencyWeight(r.CreatedAt, now, halfLife)
	}
	return total
}

// clampUnit bounds a value to [0,1].
func clampUnit(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
