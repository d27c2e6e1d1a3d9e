package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidOrderValue indicates a negative order value
var ErrInvalidOrderValue = errors.New("valueRs must be non-negative")

// Order represents a delivery order record
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID      int                `bson:"orderId" json:"orderId"`
	ValueRs      float64            `bson:"valueRs" json:"valueRs"`
	RouteID      int                `bson:"routeId" json:"routeId"`
	DeliveryTime *time.Time         `bson:"deliveryTime,omitempty" json:"deliveryTime,omitempty"`
	SimulationID string             `bson:"simulationId,omitempty" json:"simulationId,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewOrder creates a new order record
func NewOrder(orderID int, valueRs float64, routeID int) (*Order, error) {
	if valueRs < 0 {
		return nil, ErrInvalidOrderValue
	}

	now := time.Now().UTC()
	return &Order{
		ID:        primitive.NewObjectID(),
		OrderID:   orderID,
		ValueRs:   valueRs,
		RouteID:   routeID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
