package groupers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupCapacities(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		target int
		want   []int
	}{
		{
			name:   "even split",
			n:      8,
			target: 4,
			want:   []int{4, 4},
		},
		{
			name:   "remainder spread across groups",
			n:      10,
			target: 4,
			want:   []int{4, 3, 3},
		},
		{
			name:   "remainder of one",
			n:      7,
			target: 3,
			want:   []int{3, 2, 2},
		},
		{
			name:   "roster smaller than target",
			n:      2,
			target: 5,
			want:   []int{2},
		},
		{
			name:   "single student",
			n:      1,
			target: 3,
			want:   []int{1},
		},
		{
			name:   "target of one",
			n:      3,
			target: 1,
			want:   []int{1, 1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := groupCapacities(tt.n, tt.target)
			assert.Equal(t, tt.want, got)

			total := 0
			for _, c := range got {
				total += c
			}
			assert.Equal(t, tt.n, total, "capacities must cover the roster exactly")
		})
	}
}
