package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"550e8400-e29b-41d4-a716-446655440001", "Nodi Shine Dashboard Shiner"},
		{"4", "Star Gold Complete Car Care Kit"},
		{"nodi-shine-dashboard-shiner", "Nodi Shine Dashboard Shiner"},
		{"446655440004", "Star Gold Complete Car Care Kit"},
	}
	for _, tt := range tests {
		p, ok := Lookup(tt.ref)
		require.True(t, ok, tt.ref)
		assert.Equal(t, tt.want, p.Name)
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("does-not-exist")
	assert.False(t, ok)
	_, ok = Lookup("  ")
	assert.False(t, ok)
}

func TestAll_CompletesDetailFields(t *testing.T) {
	all := All()
	require.Len(t, all, Count())
	for _, p := range all {
		assert.NotEmpty(t, p.Slug)
		assert.Len(t, p.Images, 4)
		assert.NotEmpty(t, p.Features)
		assert.Contains(t, p.Specifications, "Volume")
		assert.Positive(t, p.StockCount)
	}
}

func TestAll_ReturnsCopies(t *testing.T) {
	all := All()
	all[0].Name = "changed"
	p, _ := Lookup("1")
	assert.Equal(t, "Nodi Shine Dashboard Shiner", p.Name)
}
