package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNeedsHistoryPoint(t *testing.T) {
	tests := []struct {
		name string
		old  *float64
		new  *float64
		want bool
	}{
		{"both nil", nil, nil, false},
		{"new value cleared", fptr(80), nil, false},
		{"first value recorded", nil, fptr(80), true},
		{"value changed", fptr(80), fptr(95), true},
		{"value unchanged", fptr(80), fptr(80), false},
		{"zero to zero", fptr(0), fptr(0), false},
		{"zero to nonzero", fptr(0), fptr(10), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NeedsHistoryPoint(tt.old, tt.new))
		})
	}
}
