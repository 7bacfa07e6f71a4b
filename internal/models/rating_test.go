package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name   string
		values []int
		want   float64
	}{
		{"no ratings", nil, 0},
		{"single rating", []int{4}, 4},
		{"whole mean", []int{5, 3}, 4},
		{"fractional mean", []int{5, 4, 4}, 13.0 / 3.0},
		{"all ones", []int{1, 1, 1, 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratings := make([]Rating, 0, len(tt.values))
			for _, v := range tt.values {
				ratings = append(ratings, Rating{Rating: v})
			}
			assert.InDelta(t, tt.want, AverageRating(ratings), 1e-9)
		})
	}
}
