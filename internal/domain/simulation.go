package domain

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"time"
)

// Errors reported before a simulation run starts
var (
	ErrInvalidDriverCount = errors.New("available drivers must be between 1 and 50")
	ErrInvalidMaxHours    = errors.New("max hours per day must be between 1 and 24")
	ErrInvalidStartTime   = errors.New("start time must be in HH:MM format")
	ErrNoOrders           = errors.New("no orders found")
	ErrNoActiveRoutes     = errors.New("no active routes found")
)

// Driver count and hour bounds for a simulation run
const (
	MinAvailableDrivers = 1
	MaxAvailableDrivers = 50
	MinHoursPerDay      = 1
	MaxHoursPerDay      = 24
)

var startTimePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// SimulationParams are the caller-supplied run parameters
type SimulationParams struct {
	AvailableDrivers int     `json:"availableDrivers"`
	StartTime        string  `json:"startTime"`
	MaxHoursPerDay   float64 `json:"maxHoursPerDay"`
}

// Validate checks parameter ranges before a run starts
func (p SimulationParams) Validate() error {
	if p.AvailableDrivers < MinAvailableDrivers || p.AvailableDrivers > MaxAvailableDrivers {
		return ErrInvalidDriverCount
	}
	if p.MaxHoursPerDay < MinHoursPerDay || p.MaxHoursPerDay > MaxHoursPerDay {
		return ErrInvalidMaxHours
	}
	if !startTimePattern.MatchString(p.StartTime) {
		return ErrInvalidStartTime
	}
	return nil
}

// SimulationDriver is the per-slot accumulator for one run. Slots are
// numbered 1..AvailableDrivers; the fatigue flag is snapshotted from
// the matching input driver at initialization and never recomputed.
type SimulationDriver struct {
	DriverID       int     `bson:"driverId" json:"driverId"`
	AssignedOrders []int   `bson:"assignedOrders" json:"assignedOrders"`
	TotalHours     float64 `bson:"totalHours" json:"totalHours"`
	TotalProfit    float64 `bson:"totalProfit" json:"totalProfit"`
	IsFatigued     bool    `bson:"isFatigued" json:"isFatigued"`
}

// FuelCostEntry is one row of the per-route fuel breakdown
type FuelCostEntry struct {
	RouteID          int          `bson:"routeId" json:"routeId"`
	Distance         float64      `bson:"distance" json:"distance"`
	TrafficLevel     TrafficLevel `bson:"trafficLevel" json:"trafficLevel"`
	BaseCost         float64      `bson:"baseCost" json:"baseCost"`
	TrafficSurcharge float64      `bson:"trafficSurcharge" json:"trafficSurcharge"`
	TotalCost        float64      `bson:"totalCost" json:"totalCost"`
}

// PerformanceMetrics are the aggregate KPIs of a run
type PerformanceMetrics struct {
	TotalFuelCost       float64 `bson:"totalFuelCost" json:"totalFuelCost"`
	TotalBonuses        float64 `bson:"totalBonuses" json:"totalBonuses"`
	TotalPenalties      float64 `bson:"totalPenalties" json:"totalPenalties"`
	AverageDeliveryTime float64 `bson:"averageDeliveryTime" json:"averageDeliveryTime"`
	UtilizationRate     float64 `bson:"utilizationRate" json:"utilizationRate"`
}

// SimulationResults is the immutable output of one run
type SimulationResults struct {
	TotalProfit        float64            `bson:"totalProfit" json:"totalProfit"`
	EfficiencyScore    float64            `bson:"efficiencyScore" json:"efficiencyScore"`
	OnTimeDeliveries   int                `bson:"onTimeDeliveries" json:"onTimeDeliveries"`
	LateDeliveries     int                `bson:"lateDeliveries" json:"lateDeliveries"`
	TotalDeliveries    int                `bson:"totalDeliveries" json:"totalDeliveries"`
	FuelCostBreakdown  []FuelCostEntry    `bson:"fuelCostBreakdown" json:"fuelCostBreakdown"`
	DriverAssignments  []SimulationDriver `bson:"driverAssignments" json:"driverAssignments"`
	PerformanceMetrics PerformanceMetrics `bson:"performanceMetrics" json:"performanceMetrics"`
	SimulationID       string             `bson:"simulationId" json:"simulationId"`
}

// driverCursor selects drivers round-robin over a fixed pool. The
// cursor advances after every route-resolved order, admitted or
// dropped for capacity, so a full driver still uses their turn.
type driverCursor struct {
	drivers []SimulationDriver
	index   int
}

func newDriverCursor(availableDrivers int, inputDrivers []*Driver, policy *DeliveryPolicy) *driverCursor {
	drivers := make([]SimulationDriver, availableDrivers)
	for i := range drivers {
		fatigued := false
		if i < len(inputDrivers) && inputDrivers[i] != nil {
			fatigued = policy.IsFatigued(inputDrivers[i].PastWeekHours)
		}
		drivers[i] = SimulationDriver{
			DriverID:       i + 1,
			AssignedOrders: []int{},
			IsFatigued:     fatigued,
		}
	}
	return &driverCursor{drivers: drivers}
}

func (c *driverCursor) current() *SimulationDriver {
	return &c.drivers[c.index]
}

func (c *driverCursor) advance() {
	c.index = (c.index + 1) % len(c.drivers)
}

// runAccumulator holds the running totals threaded through the
// allocation loop. One per run; never shared.
type runAccumulator struct {
	totalProfit       float64
	onTimeDeliveries  int
	lateDeliveries    int
	totalFuelCost     float64
	totalBonuses      float64
	totalPenalties    float64
	totalDeliveryTime float64
	fuelCostBreakdown []FuelCostEntry
}

// Simulator runs delivery simulations against record snapshots
type Simulator struct {
	policy *DeliveryPolicy
}

// NewSimulator creates a simulator with the given policy
func NewSimulator(policy *DeliveryPolicy) *Simulator {
	if policy == nil {
		policy = DefaultDeliveryPolicy()
	}
	return &Simulator{policy: policy}
}

// Policy returns the simulator's delivery policy
func (s *Simulator) Policy() *DeliveryPolicy {
	return s.policy
}

// Run executes one simulation over immutable snapshots of orders,
// active routes, and active drivers. It is a single deterministic
// pass: identical inputs produce identical results apart from the
// generated simulation id. The input records are never mutated.
func (s *Simulator) Run(params SimulationParams, orders []*Order, routes []*Route, drivers []*Driver) (*SimulationResults, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrNoOrders
	}
	if len(routes) == 0 {
		return nil, ErrNoActiveRoutes
	}

	routesByID := make(map[int]*Route, len(routes))
	for _, route := range routes {
		if route.IsActive {
			routesByID[route.RouteID] = route
		}
	}
	if len(routesByID) == 0 {
		return nil, ErrNoActiveRoutes
	}

	cursor := newDriverCursor(params.AvailableDrivers, drivers, s.policy)
	acc := &runAccumulator{fuelCostBreakdown: []FuelCostEntry{}}

	for _, order := range orders {
		route, ok := routesByID[order.RouteID]
		if !ok {
			// Unmatched route: the order is excluded and the
			// cursor keeps its position.
			continue
		}

		driver := cursor.current()

		effectiveMinutes := s.policy.EffectiveDeliveryMinutes(route.BaseTimeMin, driver.IsFatigued, route.TrafficLevel)
		deliveryHours := effectiveMinutes / 60

		if driver.TotalHours+deliveryHours <= params.MaxHoursPerDay {
			driver.AssignedOrders = append(driver.AssignedOrders, order.OrderID)
			driver.TotalHours += deliveryHours

			late := s.policy.IsLate(effectiveMinutes, route.BaseTimeMin)
			fuel := s.policy.FuelCostFor(route.DistanceKm, route.TrafficLevel)
			penalty := s.policy.Penalty(late)
			bonus := s.policy.Bonus(order.ValueRs, late)
			profit := s.policy.OrderProfit(order.ValueRs, bonus, penalty, fuel.Total)

			acc.totalProfit += profit
			driver.TotalProfit += profit
			acc.totalFuelCost += fuel.Total
			acc.totalBonuses += bonus
			acc.totalPenalties += penalty
			acc.totalDeliveryTime += effectiveMinutes

			if late {
				acc.lateDeliveries++
			} else {
				acc.onTimeDeliveries++
			}

			acc.fuelCostBreakdown = append(acc.fuelCostBreakdown, FuelCostEntry{
				RouteID:          route.RouteID,
				Distance:         route.DistanceKm,
				TrafficLevel:     route.TrafficLevel,
				BaseCost:         fuel.Base,
				TrafficSurcharge: fuel.Surcharge,
				TotalCost:        fuel.Total,
			})
		}

		// Round-robin regardless of the admission outcome: a
		// capacity-dropped order still consumes the turn.
		cursor.advance()
	}

	return s.assembleResults(params, cursor.drivers, acc), nil
}

func (s *Simulator) assembleResults(params SimulationParams, drivers []SimulationDriver, acc *runAccumulator) *SimulationResults {
	totalDeliveries := acc.onTimeDeliveries + acc.lateDeliveries

	efficiencyScore := 0.0
	averageDeliveryTime := 0.0
	if totalDeliveries > 0 {
		efficiencyScore = float64(acc.onTimeDeliveries) / float64(totalDeliveries) * 100
		averageDeliveryTime = acc.totalDeliveryTime / float64(totalDeliveries)
	}

	totalUsedHours := 0.0
	for _, d := range drivers {
		totalUsedHours += d.TotalHours
	}
	totalAvailableHours := float64(params.AvailableDrivers) * params.MaxHoursPerDay
	utilizationRate := totalUsedHours / totalAvailableHours * 100

	assignments := make([]SimulationDriver, len(drivers))
	for i, d := range drivers {
		assignments[i] = SimulationDriver{
			DriverID:       d.DriverID,
			AssignedOrders: d.AssignedOrders,
			TotalHours:     round2(d.TotalHours),
			TotalProfit:    math.Round(d.TotalProfit),
			IsFatigued:     d.IsFatigued,
		}
	}

	return &SimulationResults{
		TotalProfit:       math.Round(acc.totalProfit),
		EfficiencyScore:   round2(efficiencyScore),
		OnTimeDeliveries:  acc.onTimeDeliveries,
		LateDeliveries:    acc.lateDeliveries,
		TotalDeliveries:   totalDeliveries,
		FuelCostBreakdown: acc.fuelCostBreakdown,
		DriverAssignments: assignments,
		PerformanceMetrics: PerformanceMetrics{
			TotalFuelCost:       math.Round(acc.totalFuelCost),
			TotalBonuses:        math.Round(acc.totalBonuses),
			TotalPenalties:      math.Round(acc.totalPenalties),
			AverageDeliveryTime: math.Round(averageDeliveryTime),
			UtilizationRate:     round2(utilizationRate),
		},
		SimulationID: NewSimulationID(),
	}
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewSimulationID generates an opaque URL-safe simulation identifier
func NewSimulationID() string {
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return fmt.Sprintf("sim_%d_%s", time.Now().UnixMilli(), suffix)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
