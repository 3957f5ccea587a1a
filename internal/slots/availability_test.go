package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidateHours(t *testing.T) {
	tests := []struct {
		name        string
		openingHour int
		closingHour int
		want        []int
	}{
		{"standard window", 9, 21, []int{9, 12, 15, 18}},
		{"late window", 12, 23, []int{12, 15, 18, 21}},
		{"closing minus two is admissible", 9, 11, []int{9}},
		{"window too short", 9, 10, []int{}},
		{"inverted window", 21, 9, []int{}},
		{"full day", 0, 24, []int{0, 3, 6, 9, 12, 15, 18, 21}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CandidateHours(tt.openingHour, tt.closingHour))
		})
	}
}

func TestFreeHours(t *testing.T) {
	candidates := CandidateHours(9, 21)

	t.Run("nothing booked", func(t *testing.T) {
		assert.Equal(t, []int{9, 12, 15, 18}, FreeHours(candidates, nil))
	})

	t.Run("booked hours removed", func(t *testing.T) {
		assert.Equal(t, []int{9, 18}, FreeHours(candidates, []int{12, 15}))
	})

	t.Run("booked hour outside candidates is ignored", func(t *testing.T) {
		assert.Equal(t, []int{9, 12, 15, 18}, FreeHours(candidates, []int{10, 22}))
	})

	t.Run("fully booked", func(t *testing.T) {
		assert.Empty(t, FreeHours(candidates, []int{9, 12, 15, 18}))
	})
}

func TestIntersects(t *testing.T) {
	free := []int{9, 15}

	assert.True(t, intersects([]int{9, 12}, free), "one overlapping hour is enough")
	assert.True(t, intersects([]int{15}, free))
	assert.False(t, intersects([]int{12, 18}, free))
	assert.False(t, intersects(nil, free))
	assert.False(t, intersects([]int{9}, nil))
}
