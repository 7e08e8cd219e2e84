package words

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "zero PLN zero gr"},
		{"1", "jeden PLN zero gr"},
		{"10", "dziesięć PLN zero gr"},
		{"21", "dwadzieścia jeden PLN zero gr"},
		{"30", "trzydzieści PLN zero gr"},
		{"100", "sto PLN zero gr"},
		{"110", "sto dziesięć PLN zero gr"},
		{"123.45", "sto dwadzieścia trzy PLN czterdzieści pięć gr"},
		{"246", "dwieście czterdzieści sześć PLN zero gr"},
		{"0.5", "zero PLN pięćdziesiąt gr"},
		{"0.01", "zero PLN jeden gr"},
		{"1.999", "jeden PLN sto gr"},
		{"1000", "jeden tysiąc PLN zero gr"},
		{"1005", "jeden tysiąc pięć PLN zero gr"},
		{"2000", "dwa tysiące PLN zero gr"},
		{"4321.07", "cztery tysiące trzysta dwadzieścia jeden PLN siedem gr"},
		{"5000", "pięć tysięcy PLN zero gr"},
		{"12000", "dwanaście tysięcy PLN zero gr"},
		{"22000", "dwadzieścia dwa tysięcy PLN zero gr"},
		{"100000", "sto tysięcy PLN zero gr"},
		{"999999.99", "dziewięćset dziewięćdziesiąt dziewięć tysięcy dziewięćset dziewięćdziesiąt dziewięć PLN dziewięćdziesiąt dziewięć gr"},
		{"1000000", "number too large PLN zero gr"},
		{"1000000000000000000000", "number too large PLN zero gr"},
		{"-1.25", "number below zero PLN siedemdziesiąt pięć gr"},
		{"-5", "number below zero PLN zero gr"},
		{"-18446744073709551611", "number below zero PLN zero gr"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := AmountToWords(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntegerToWords(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "zero"},
		{7, "siedem"},
		{15, "piętnaście"},
		{19, "dziewiętnaście"},
		{40, "czterdzieści"},
		{99, "dziewięćdziesiąt dziewięć"},
		{200, "dwieście"},
		{305, "trzysta pięć"},
		{919, "dziewięćset dziewiętnaście"},
		{1001, "jeden tysiąc jeden"},
		{3100, "trzy tysiące sto"},
		{15015, "piętnaście tysięcy piętnaście"},
		{500000, "pięćset tysięcy"},
		{999999, "dziewięćset dziewięćdziesiąt dziewięć tysięcy dziewięćset dziewięćdziesiąt dziewięć"},
		{1000000, TooLarge},
		{-5, Negative},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IntegerToWords(tt.n), "IntegerToWords(%d)", tt.n)
	}
}

func TestThousandsForm(t *testing.T) {
	tests := []struct {
		k    int64
		want string
	}{
		{1, "tysiąc"},
		{2, "tysiące"},
		{3, "tysiące"},
		{4, "tysiące"},
		{5, "tysięcy"},
		{11, "tysięcy"},
		{12, "tysięcy"},
		{22, "tysięcy"},
		{999, "tysięcy"},
		{0, "tysięcy"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ThousandsForm(tt.k), "ThousandsForm(%d)", tt.k)
	}
}

func TestValidate(t *testing.T) {
	for _, ok := range []string{"0", "0.01", "123.45", "999999.99"} {
		assert.NoError(t, Validate(decimal.RequireFromString(ok)), ok)
	}

	err := Validate(decimal.RequireFromString("-0.01"))
	assert.ErrorIs(t, err, ErrNegativeAmount)

	err = Validate(decimal.RequireFromString("1000000"))
	assert.ErrorIs(t, err, ErrAmountTooLarge)
}
