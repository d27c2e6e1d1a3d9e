package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors for the driver domain
var (
	ErrDriverNameRequired    = errors.New("driver name is required")
	ErrPastWeekHoursLength   = errors.New("pastWeekHours must contain exactly 7 entries")
	ErrPastWeekHoursNegative = errors.New("pastWeekHours entries must be non-negative")
)

// PastWeekDays is the number of trailing daily-hour entries tracked per driver
const PastWeekDays = 7

// Driver represents a delivery driver record
type Driver struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	ShiftHours    float64            `bson:"shiftHours" json:"shiftHours"`
	PastWeekHours []float64          `bson:"pastWeekHours" json:"pastWeekHours"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewDriver creates a new driver record
func NewDriver(name string, shiftHours float64, pastWeekHours []float64) (*Driver, error) {
	if name == "" {
		return nil, ErrDriverNameRequired
	}

	if pastWeekHours == nil {
		pastWeekHours = make([]float64, PastWeekDays)
	}
	if err := ValidatePastWeekHours(pastWeekHours); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Driver{
		ID:            primitive.NewObjectID(),
		Name:          name,
		ShiftHours:    shiftHours,
		PastWeekHours: pastWeekHours,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ValidatePastWeekHours checks the trailing-week hours invariant
func ValidatePastWeekHours(hours []float64) error {
	if len(hours) != PastWeekDays {
		return ErrPastWeekHoursLength
	}
	for _, h := range hours {
		if h < 0 {
			return ErrPastWeekHoursNegative
		}
	}
	return nil
}

// Deactivate marks the driver as inactive
func (d *Driver) Deactivate() {
	d.IsActive = false
	d.UpdatedAt = time.Now().UTC()
}
