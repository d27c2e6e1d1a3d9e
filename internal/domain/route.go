package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors for the route domain
var (
	ErrInvalidTrafficLevel = errors.New("invalid traffic level")
	ErrInvalidDistance     = errors.New("distanceKm must be positive")
	ErrInvalidBaseTime     = errors.New("baseTimeMin must be positive")
)

// TrafficLevel represents the congestion level of a route
type TrafficLevel string

const (
	TrafficLow    TrafficLevel = "Low"
	TrafficMedium TrafficLevel = "Medium"
	TrafficHigh   TrafficLevel = "High"
)

// IsValid checks if the traffic level is valid
func (t TrafficLevel) IsValid() bool {
	switch t {
	case TrafficLow, TrafficMedium, TrafficHigh:
		return true
	}
	return false
}

// Route represents a delivery route record
type Route struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RouteID      int                `bson:"routeId" json:"routeId"`
	DistanceKm   float64            `bson:"distanceKm" json:"distanceKm"`
	TrafficLevel TrafficLevel       `bson:"trafficLevel" json:"trafficLevel"`
	BaseTimeMin  float64            `bson:"baseTimeMin" json:"baseTimeMin"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewRoute creates a new route record
func NewRoute(routeID int, distanceKm float64, trafficLevel TrafficLevel, baseTimeMin float64) (*Route, error) {
	if distanceKm <= 0 {
		return nil, ErrInvalidDistance
	}
	if baseTimeMin <= 0 {
		return nil, ErrInvalidBaseTime
	}
	if !trafficLevel.IsValid() {
		return nil, ErrInvalidTrafficLevel
	}

	now := time.Now().UTC()
	return &Route{
		ID:           primitive.NewObjectID(),
		RouteID:      routeID,
		DistanceKm:   distanceKm,
		TrafficLevel: trafficLevel,
		BaseTimeMin:  baseTimeMin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Deactivate marks the route as inactive
func (r *Route) Deactivate() {
	r.IsActive = false
	r.UpdatedAt = time.Now().UTC()
}
