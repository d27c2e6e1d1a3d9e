package domain

// DeliveryPolicy encodes the company delivery rules used by the
// simulation engine and the historical dashboard reducer. All methods
// are pure functions of their inputs.
type DeliveryPolicy struct {
	FatigueThresholdHours float64 // daily hours above which a driver counts as fatigued
	FatigueSpeedFactor    float64 // base time is divided by this factor for fatigued drivers
	HighTrafficMultiplier float64 // applied after the fatigue adjustment
	LateGraceMinutes      float64 // allowed overshoot past base time before a delivery is late
	LatePenaltyRs         float64
	BonusThresholdRs      float64 // order value above which an on-time bonus applies
	BonusRate             float64
	FuelRatePerKm         float64
	SurchargeRatePerKm    float64 // extra per-km fuel cost on high-traffic routes
}

// DefaultDeliveryPolicy returns the standard company policy
func DefaultDeliveryPolicy() *DeliveryPolicy {
	return &DeliveryPolicy{
		FatigueThresholdHours: 8,
		FatigueSpeedFactor:    0.7,
		HighTrafficMultiplier: 1.2,
		LateGraceMinutes:      10,
		LatePenaltyRs:         50,
		BonusThresholdRs:      1000,
		BonusRate:             0.1,
		FuelRatePerKm:         5,
		SurchargeRatePerKm:    2,
	}
}

// IsFatigued reports whether any trailing-week entry exceeds the
// fatigue threshold. A single over-threshold day marks the driver
// fatigued for the whole simulated day.
func (p *DeliveryPolicy) IsFatigued(pastWeekHours []float64) bool {
	for _, hours := range pastWeekHours {
		if hours > p.FatigueThresholdHours {
			return true
		}
	}
	return false
}

// EffectiveDeliveryMinutes computes the adjusted delivery time for a
// route. The fatigue adjustment divides by the speed factor and is
// applied before the traffic multiplier; the order matters.
func (p *DeliveryPolicy) EffectiveDeliveryMinutes(baseTimeMin float64, fatigued bool, trafficLevel TrafficLevel) float64 {
	minutes := baseTimeMin
	if fatigued {
		minutes = minutes / p.FatigueSpeedFactor
	}
	if trafficLevel == TrafficHigh {
		minutes *= p.HighTrafficMultiplier
	}
	return minutes
}

// IsLate reports whether a delivery overshoots the base time by more
// than the grace window.
func (p *DeliveryPolicy) IsLate(effectiveMinutes, baseTimeMin float64) bool {
	return effectiveMinutes > baseTimeMin+p.LateGraceMinutes
}

// Penalty returns the late-delivery penalty
func (p *DeliveryPolicy) Penalty(late bool) float64 {
	if late {
		return p.LatePenaltyRs
	}
	return 0
}

// Bonus returns the high-value on-time bonus
func (p *DeliveryPolicy) Bonus(valueRs float64, late bool) float64 {
	if valueRs > p.BonusThresholdRs && !late {
		return valueRs * p.BonusRate
	}
	return 0
}

// FuelCost represents the per-route fuel cost decomposition
type FuelCost struct {
	Base      float64
	Surcharge float64
	Total     float64
}

// FuelCostFor computes the fuel cost for a route distance and traffic level
func (p *DeliveryPolicy) FuelCostFor(distanceKm float64, trafficLevel TrafficLevel) FuelCost {
	base := distanceKm * p.FuelRatePerKm
	surcharge := 0.0
	if trafficLevel == TrafficHigh {
		surcharge = distanceKm * p.SurchargeRatePerKm
	}
	return FuelCost{
		Base:      base,
		Surcharge: surcharge,
		Total:     base + surcharge,
	}
}

// OrderProfit computes the net profit for a single delivery. The
// result may be negative.
func (p *DeliveryPolicy) OrderProfit(valueRs, bonus, penalty, fuelTotal float64) float64 {
	return valueRs + bonus - penalty - fuelTotal
}
