package events

import (
	"time"
)

// EventType constants for logistics domain events
const (
	// Simulation events
	SimulationCompleted = "greencart.simulation.completed"
	SimulationFailed    = "greencart.simulation.failed"
	SimulationDeleted   = "greencart.simulation.deleted"

	// Order events
	OrderCreated = "greencart.order.created"
	OrderUpdated = "greencart.order.updated"
	OrderDeleted = "greencart.order.deleted"

	// Driver events
	DriverCreated = "greencart.driver.created"
	DriverUpdated = "greencart.driver.updated"
	DriverDeleted = "greencart.driver.deleted"

	// Route events
	RouteCreated = "greencart.route.created"
	RouteUpdated = "greencart.route.updated"
	RouteDeleted = "greencart.route.deleted"

	// User events
	UserRegistered = "greencart.user.registered"
)

// Source constants for event sources
const (
	SourceLogisticsAPI = "/greencart/logistics-api"
	SourceSeeder       = "/greencart/seeder"
)

// CloudEvent represents a CloudEvents v1.0 compliant event
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	Type            string      `json:"type"`
	Source          string      `json:"source"`
	Subject         string      `json:"subject,omitempty"`
	ID              string      `json:"id"`
	Time            time.Time   `json:"time"`
	DataContentType string      `json:"datacontenttype"`
	Data            interface{} `json:"data"`

	// Extension attributes
	CorrelationID string `json:"correlationid,omitempty"`
	UserID        string `json:"userid,omitempty"`
	TraceParent   string `json:"traceparent,omitempty"`
	TraceState    string `json:"tracestate,omitempty"`
}

// SimulationCompletedData is the payload for SimulationCompleted events
type SimulationCompletedData struct {
	SimulationID        string  `json:"simulationId"`
	AvailableDrivers    int     `json:"availableDrivers"`
	MaxHoursPerDay      float64 `json:"maxHoursPerDay"`
	TotalProfit         float64 `json:"totalProfit"`
	EfficiencyScore     float64 `json:"efficiencyScore"`
	OnTimeDeliveries    int     `json:"onTimeDeliveries"`
	LateDeliveries      int     `json:"lateDeliveries"`
	TotalDeliveries     int     `json:"totalDeliveries"`
	ExecutionTimeMillis int64   `json:"executionTimeMs"`
}

// SimulationFailedData is the payload for SimulationFailed events
type SimulationFailedData struct {
	SimulationID string `json:"simulationId,omitempty"`
	Reason       string `json:"reason"`
}

// OrderCreatedData is the payload for OrderCreated events
type OrderCreatedData struct {
	OrderID       int     `json:"orderId"`
	ValueRs       float64 `json:"valueRs"`
	AssignedRoute int     `json:"assignedRoute"`
}

// DriverCreatedData is the payload for DriverCreated events
type DriverCreatedData struct {
	Name         string  `json:"name"`
	CurrentShift float64 `json:"currentShiftHours"`
}

// RouteCreatedData is the payload for RouteCreated events
type RouteCreatedData struct {
	RouteID      int     `json:"routeId"`
	DistanceKm   float64 `json:"distanceKm"`
	TrafficLevel string  `json:"trafficLevel"`
	BaseTimeMin  float64 `json:"baseTimeMin"`
}

// UserRegisteredData is the payload for UserRegistered events
type UserRegisteredData struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}
