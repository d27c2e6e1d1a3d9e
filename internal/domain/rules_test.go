package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFatigued(t *testing.T) {
	policy := DefaultDeliveryPolicy()

	assert.False(t, policy.IsFatigued([]float64{8, 8, 8, 8, 8, 8, 8}))
	assert.False(t, policy.IsFatigued([]float64{0, 0, 0, 0, 0, 0, 0}))
	assert.True(t, policy.IsFatigued([]float64{0, 0, 0, 8.1, 0, 0, 0}))
	assert.True(t, policy.IsFatigued([]float64{9, 0, 0, 0, 0, 0, 0}))
	assert.True(t, policy.IsFatigued([]float64{0, 0, 0, 0, 0, 0, 12}))
}

func TestEffectiveDeliveryMinutes(t *testing.T) {
	policy := DefaultDeliveryPolicy()

	assert.Equal(t, 30.0, policy.EffectiveDeliveryMinutes(30, false, TrafficLow))
	assert.Equal(t, 30.0, policy.EffectiveDeliveryMinutes(30, false, TrafficMedium))
	assert.Equal(t, 36.0, policy.EffectiveDeliveryMinutes(30, false, TrafficHigh))

	// The fatigue adjustment divides by 0.7 rather than multiplying
	// by 1.3, so the slowdown is about 43%.
	assert.InDelta(t, 42.857, policy.EffectiveDeliveryMinutes(30, true, TrafficLow), 0.001)

	// Fatigue applies before the traffic multiplier.
	assert.InDelta(t, (60/0.7)*1.2, policy.EffectiveDeliveryMinutes(60, true, TrafficHigh), 1e-9)
	assert.InDelta(t, 102.857, policy.EffectiveDeliveryMinutes(60, true, TrafficHigh), 0.001)
}

func TestIsLate(t *testing.T) {
	policy := DefaultDeliveryPolicy()

	assert.False(t, policy.IsLate(30, 30))
	assert.False(t, policy.IsLate(40, 30))
	assert.True(t, policy.IsLate(40.01, 30))
	assert.True(t, policy.IsLate(102.857, 60))
}

func TestPenaltyAndBonus(t *testing.T) {
	policy := DefaultDeliveryPolicy()

	assert.Equal(t, 50.0, policy.Penalty(true))
	assert.Equal(t, 0.0, policy.Penalty(false))

	assert.Equal(t, 150.0, policy.Bonus(1500, false))
	assert.Equal(t, 0.0, policy.Bonus(1500, true))
	assert.Equal(t, 0.0, policy.Bonus(1000, false))
	assert.Equal(t, 0.0, policy.Bonus(999, false))
}

func TestFuelCostFor(t *testing.T) {
	policy := DefaultDeliveryPolicy()

	low := policy.FuelCostFor(10, TrafficLow)
	assert.Equal(t, 50.0, low.Base)
	assert.Equal(t, 0.0, low.Surcharge)
	assert.Equal(t, 50.0, low.Total)

	medium := policy.FuelCostFor(10, TrafficMedium)
	assert.Equal(t, 0.0, medium.Surcharge)

	high := policy.FuelCostFor(20, TrafficHigh)
	assert.Equal(t, 100.0, high.Base)
	assert.Equal(t, 40.0, high.Surcharge)
	assert.Equal(t, 140.0, high.Total)
}

func TestOrderProfit(t *testing.T) {
	policy := DefaultDeliveryPolicy()

	assert.Equal(t, 1600.0, policy.OrderProfit(1500, 150, 0, 50))
	assert.Equal(t, 310.0, policy.OrderProfit(500, 0, 50, 140))

	// Profit may go negative.
	assert.Equal(t, -90.0, policy.OrderProfit(100, 0, 50, 140))
}
