package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SimulationStatus represents the outcome of a persisted run
type SimulationStatus string

const (
	SimulationCompleted SimulationStatus = "completed"
	SimulationFailed    SimulationStatus = "failed"
)

// SimulationInputs snapshots the parameters and data-set sizes a run
// was executed against
type SimulationInputs struct {
	AvailableDrivers int     `bson:"availableDrivers" json:"availableDrivers"`
	StartTime        string  `bson:"startTime" json:"startTime"`
	MaxHoursPerDay   float64 `bson:"maxHoursPerDay" json:"maxHoursPerDay"`
	TotalOrders      int     `bson:"totalOrders" json:"totalOrders"`
	TotalRoutes      int     `bson:"totalRoutes" json:"totalRoutes"`
}

// SimulationRecord is the history-store entry for one run. Failed runs
// carry an empty result.
type SimulationRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SimulationID  string             `bson:"simulationId" json:"simulationId"`
	UserID        primitive.ObjectID `bson:"userId" json:"userId"`
	Inputs        SimulationInputs   `bson:"inputs" json:"inputs"`
	Results       *SimulationResults `bson:"results,omitempty" json:"results,omitempty"`
	Status        SimulationStatus   `bson:"status" json:"status"`
	ExecutionTime int64              `bson:"executionTime" json:"executionTime"` // milliseconds
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewSimulationRecord creates a completed-run history entry
func NewSimulationRecord(userID primitive.ObjectID, inputs SimulationInputs, results *SimulationResults, executionTime int64) *SimulationRecord {
	now := time.Now().UTC()
	return &SimulationRecord{
		ID:            primitive.NewObjectID(),
		SimulationID:  results.SimulationID,
		UserID:        userID,
		Inputs:        inputs,
		Results:       results,
		Status:        SimulationCompleted,
		ExecutionTime: executionTime,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewFailedSimulationRecord creates a failed-run history entry with an
// empty result
func NewFailedSimulationRecord(userID primitive.ObjectID, inputs SimulationInputs, executionTime int64) *SimulationRecord {
	now := time.Now().UTC()
	return &SimulationRecord{
		ID:            primitive.NewObjectID(),
		SimulationID:  NewSimulationID(),
		UserID:        userID,
		Inputs:        inputs,
		Status:        SimulationFailed,
		ExecutionTime: executionTime,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
