package youtube

import (
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		size      int
		wantSizes []int
	}{
		{"exact multiple", 100, 50, []int{50, 50}},
		{"remainder batch", 105, 50, []int{50, 50, 5}},
		{"single short batch", 3, 50, []int{3}},
		{"size one", 3, 1, []int{1, 1, 1}},
		{"empty", 0, 50, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := make([]string, tt.total)
			for i := range values {
				values[i] = fmt.Sprintf("id%03d", i)
			}

			var got [][]string
			for batch := range Partition(slices.Values(values), tt.size) {
				got = append(got, batch)
			}

			var sizes []int
			var flat []string
			for _, batch := range got {
				sizes = append(sizes, len(batch))
				flat = append(flat, batch...)
			}
			assert.Equal(t, tt.wantSizes, sizes)
			assert.Equal(t, values, append([]string{}, flat...), "order must be preserved")
		})
	}
}

func TestPartitionStopsEarly(t *testing.T) {
	values := []string{"a", "b", "c", "d"}
	var first []string
	for batch := range Partition(slices.Values(values), 2) {
		first = batch
		break
	}
	require.Equal(t, []string{"a", "b"}, first)
}
