package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteLiteral(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"AdventureWorks", "'AdventureWorks'"},
		{"O'Brien", "'O''Brien'"},
		{"it''s", "'it''''s'"},
		{"", "''"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuoteLiteral(tt.input))
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "SRSQL01PRO", NormalizeName("  srsql01pro\n"))
	assert.Equal(t, "", NormalizeName("   "))
}

func TestCleanLines(t *testing.T) {
	in := []string{" SRSQL01PRO ", "", "\t", "SRSQL02PRE\r"}
	assert.Equal(t, []string{"SRSQL01PRO", "SRSQL02PRE"}, CleanLines(in))
}

func TestIntegerPart(t *testing.T) {
	assert.Equal(t, "15", IntegerPart("15.0"))
	assert.Equal(t, "15", IntegerPart("15"))
	assert.Equal(t, "", IntegerPart(""))
	assert.Equal(t, "nan", IntegerPart("nan"))
}
