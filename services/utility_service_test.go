package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	util := NewUtilityService()

	tests := []struct {
		in   string
		want string
	}{
		{"Tata Capital Ltd", "tata capital"},
		{"Tata Capital Ltd.", "tata capital"},
		{"Swiggy Limited", "swiggy"},
		{"ACME Pvt", "acme"},
		{"Urban Company IPO", "urban company"},
		{"  Spaced   Out  Name ", "spaced out name"},
		{"Dots.And,Commas!", "dotsandcommas"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, util.NormalizeName(tt.in), "input %q", tt.in)
	}
}

func TestGenerateSlug(t *testing.T) {
	util := NewUtilityService()

	tests := []struct {
		in   string
		want string
	}{
		{"Tata Capital Ltd", "tata-capital"},
		{"Swiggy Limited", "swiggy"},
		{"A & B Industries", "a-b-industries"},
		{"Already-Hyphenated Co", "already-hyphenated-co"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, util.GenerateSlug(tt.in), "input %q", tt.in)
	}
}

func TestExtractNumeric(t *testing.T) {
	util := NewUtilityService()

	tests := []struct {
		in   string
		want float64
	}{
		{"12.4x", 12.4},
		{"₹ 85", 85},
		{"-3.5", -3.5},
		{"+7", 7},
		{"no numbers here", 0},
		{"", 0},
		{"  18.75x  ", 18.75},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, util.ExtractNumeric(tt.in), "input %q", tt.in)
	}
}
