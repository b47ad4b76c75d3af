package format

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"flower-storefront/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrency_Grouping(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{1234567, "1,234,567"},
		{int64(1000), "1,000"},
		{999, "999"},
		{0, "0"},
		{"1234567", "1,234,567"},
		{" 2500 ", "2,500"},
		{1234.5, "1,234.5"},
		{-4200, "-4,200"},
		{json.Number("3000"), "3,000"},
		{decimal.NewFromInt(12000), "12,000"},
		{model.NewAmount(300), "300"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Currency(tc.in), "input %#v", tc.in)
	}
}

func TestCurrency_NonNumericIsZero(t *testing.T) {
	for _, in := range []any{"abc", "12abc", math.NaN(), math.Inf(1), "1e400", "-1e400", struct{}{}, []int{1}} {
		got := Currency(in)
		assert.Equal(t, "0", got, "input %#v", in)
		assert.False(t, strings.Contains(got, "NaN"))
	}
}

func TestCurrency_NilAndEmptyAreZero(t *testing.T) {
	assert.Equal(t, "0", Currency(nil))
	assert.Equal(t, "0", Currency(""))
}

func TestWithTax(t *testing.T) {
	got := WithTax(decimal.NewFromInt(1000))
	assert.True(t, got.Equal(decimal.NewFromInt(1050)), "got %s", got)
	assert.Equal(t, "1,050", Currency(got))
}
