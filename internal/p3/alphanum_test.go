package p3_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/strata/internal/p3"
)

func TestCompareNatural(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2", "10", -1},
		{"A2", "A10", -1},
		{"A10", "A2", 1},
		{"A1", "A1", 0},
		{"A", "A1", -1},
		{"B1", "A9", 1},
		{"01.02", "01.10", -1},
		{"1", "01", -1},
		{"", "", 0},
		{"", "A", -1},
		{"1000", "999", 1},
		{"X9Y", "X9Z", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p3.CompareNatural(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
		assert.Equal(t, -tt.want, p3.CompareNatural(tt.b, tt.a), "%q vs %q", tt.b, tt.a)
	}
}

func TestCompareNatural_Sort(t *testing.T) {
	ids := []string{"A100", "A20", "A3", "B1", "A20a"}
	sort.Slice(ids, func(i, j int) bool { return p3.CompareNatural(ids[i], ids[j]) < 0 })
	assert.Equal(t, []string{"A3", "A20", "A20a", "A100", "B1"}, ids)
}
