// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"math"
	"testing"
	"time"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{name: "empty set is 0", ratings: nil, want: 0},
		{name: "single rating", ratings: []int{3}, want: 3},
		{name: "two ratings average", ratings: []int{4, 5}, want: 4.5},
		{name: "mixed ratings", ratings: []int{1, 2, 3, 4, 5}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageRating(tt.ratings)
			if got != tt.want {
				t.Errorf("AverageRating(%v) = %v, want %v", tt.ratings, got, tt.want)
			}
		})
	}
}

func TestSampleConfidence(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		pivot float64
		want  float64
	}{
		{name: "zero sample is 0", n: 0, pivot: 5, want: 0},
		{name: "negative sample is 0", n: -1, pivot: 5, want: 0},
		{name: "sample equals pivot is 0.5", n: 5, pivot: 5, want: 0.5},
		{name: "large sample approaches 1", n: 95, pivot: 5, want: 0.95},
		{name: "non-positive pivot degenerates to 1", n: 3, pivot: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SampleConfidence(tt.n, tt.pivot)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SampleConfidence(%d, %v) = %v, want %v", tt.n, tt.pivot, got, tt.want)
			}
		})
	}
}

func TestSampleConfidenceBounded(t *testing.T) {
	for n := 0; n < 10000; n += 97 {
		got := SampleConfidence(n, 5)
		if got < 0 || got >= 1 {
			t.Fatalf("SampleConfidence(%d, 5) = %v, want value in [0, 1)", n, got)
		}
	}
}

func TestRecencyWeight(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	halfLife := 7 * 24 * time.Hour

	tests := []struct {
		name string
		at   time.Time
		want float64
	}{
		{name: "event now weighs 1", at: now, want: 1},
		{name: "future event weighs 1", at: now.Add(time.Hour), want: 1},
		{name: "one half-life ago weighs 0.5", at: now.Add(-halfLife), want: 0.5},
		{name: "two half-lives ago weighs 0.25", at: now.Add(-2 * halfLife), want: 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecencyWeight(tt.at, now, halfLife)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("RecencyWeight() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("non-positive half-life weighs 1", func(t *testing.T) {
		if got := RecencyWeight(now.Add(-time.Hour), now, 0); got != 1 {
			t.Errorf("RecencyWeight() = %v, want 1", got)
		}
	})
}

func TestWeightedPopularity(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	halfLife := 24 * time.Hour

	reviews := []Review{
		{Rating: 5, CreatedAt: now},                    // weight 1
		{Rating: 4, CreatedAt: now.Add(-halfLife)},     // weight 0.5
		{Rating: 3, CreatedAt: now.Add(-2 * halfLife)}, // weight 0.25
	}

	got := WeightedPopularity(reviews, now, halfLife)
	want := 1.75
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("WeightedPopularity() = %v, want %v", got, want)
	}

	if got := WeightedPopularity(nil, now, halfLife); got != 0 {
		t.Errorf("WeightedPopularity(nil) = %v, want 0", got)
	}
}

func TestClampUnit(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: -0.5, want: 0},
		{in: 0, want: 0},
		{in: 0.42, want: 0.42},
		{in: 1, want: 1},
		{in: 1.7, want: 1},
	}

	for _, tt := range tests {
		if got := clampUnit(tt.in); got != tt.want {
			t.Errorf("clampUnit(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
