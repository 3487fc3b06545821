package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func estimate(low, median, high Money) MarketEstimate {
	return MarketEstimate{
		Median: &median,
		Range:  RentRange{Low: low, High: high},
	}
}

func TestPercentileOf_Anchors(t *testing.T) {
	e := estimate(1500, 2000, 2500)

	assert.Equal(t, 50.0, e.PercentileOf(2000), "median sits at the 50th")
	assert.Equal(t, 10.0, e.PercentileOf(1500), "range low anchors the 10th")
	assert.Equal(t, 90.0, e.PercentileOf(2500), "range high anchors the 90th")
}

func TestPercentileOf_LinearBetweenAnchors(t *testing.T) {
	e := estimate(1500, 2000, 2500)

	assert.Equal(t, 30.0, e.PercentileOf(1750))
	assert.Equal(t, 70.0, e.PercentileOf(2250))
}

func TestPercentileOf_ClampsBeyondRange(t *testing.T) {
	e := estimate(1500, 2000, 2500)

	assert.Equal(t, 0.0, e.PercentileOf(1000))
	assert.Equal(t, 100.0, e.PercentileOf(3500))
}

func TestPercentileOf_SentinelReturnsMidpoint(t *testing.T) {
	e := MarketEstimate{}

	assert.False(t, e.Available())
	assert.Equal(t, 50.0, e.PercentileOf(2000))
}

func TestPercentileOf_DegenerateRange(t *testing.T) {
	// A single source can collapse to a point before widening; the
	// percentile must stay defined either side of it.
	e := estimate(2000, 2000, 2000)

	assert.Equal(t, 50.0, e.PercentileOf(2000))
	assert.Equal(t, 0.0, e.PercentileOf(1900))
	assert.Equal(t, 100.0, e.PercentileOf(2100))
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "$1300", Money(1300).String())
	assert.Equal(t, "$0", Money(0).String())
}
