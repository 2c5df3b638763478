package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSumCharges(t *testing.T) {
	tests := []struct {
		name    string
		charges []Charge
		want    string
	}{
		{name: "none", charges: nil, want: "0"},
		{name: "empty", charges: []Charge{}, want: "0"},
		{
			name: "a few",
			charges: []Charge{
				{ID: "1", Name: "test", Value: "10.00"},
				{ID: "1", Name: "test", Value: "10.00"},
			},
			want: "20",
		},
		{
			name: "no float drift",
			charges: []Charge{
				{ID: "1", Value: "0.10"},
				{ID: "2", Value: "0.20"},
			},
			want: "0.3",
		},
		{
			name: "unparseable values count as zero",
			charges: []Charge{
				{ID: "1", Value: "5.00"},
				{ID: "2", Value: "five"},
				{ID: "3", Value: ""},
				{ID: "4", Value: " 2.50 "},
			},
			want: "7.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SumCharges(tt.charges)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
		})
	}
}

func TestParseChargeValue(t *testing.T) {
	v, ok := ParseChargeValue("10.25")
	assert.True(t, ok)
	assert.Equal(t, "10.25", v.String())

	_, ok = ParseChargeValue("ten")
	assert.False(t, ok)
}

func TestInvalidCharges(t *testing.T) {
	charges := []Charge{{Value: "1.00"}, {Value: "x"}, {Value: ""}}
	assert.Equal(t, 2, InvalidCharges(charges))
	assert.Equal(t, 0, InvalidCharges(nil))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "12.50", FormatAmount(decimal.RequireFromString("12.5")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
}
