package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCentsRoundTrip(t *testing.T) {
	amounts := []string{"0", "0.01", "123.45", "-56.78", "99999.99"}
	for _, s := range amounts {
		d, err := decimal.NewFromString(s)
		assert.NoError(t, err)
		assert.True(t, FromCents(Cents(d)).Equal(d), "round trip failed for %s", s)
	}
}

func TestCentsBankersRounding(t *testing.T) {
	assert.Equal(t, int64(102), Cents(decimal.NewFromFloat(1.025)))
	assert.Equal(t, int64(104), Cents(decimal.NewFromFloat(1.035)))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$1234.50", Format(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "$0.00", Format(decimal.Zero))
}

func TestWeeksPerMonth(t *testing.T) {
	// 52/12, not the 4.33 shortcut.
	monthly := decimal.NewFromInt(433)
	weekly := monthly.Div(WeeksPerMonth)
	assert.True(t, weekly.Equal(monthly.Mul(decimal.NewFromInt(12)).Div(decimal.NewFromInt(52))))
}
