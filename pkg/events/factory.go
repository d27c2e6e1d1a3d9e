package events

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Factory creates CloudEvents for logistics domain events
type Factory struct {
	source string
}

// NewFactory creates a new event Factory for a specific source
func NewFactory(source string) *Factory {
	return &Factory{source: source}
}

// CreateEvent creates a new CloudEvent with the given parameters
func (f *Factory) CreateEvent(ctx context.Context, eventType, subject string, data interface{}) *CloudEvent {
	return &CloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
	}
}

// CreateSimulationCompletedEvent creates a SimulationCompleted event
func (f *Factory) CreateSimulationCompletedEvent(ctx context.Context, data SimulationCompletedData) *CloudEvent {
	return f.CreateEvent(ctx, SimulationCompleted, "simulation/"+data.SimulationID, data)
}

// CreateSimulationFailedEvent creates a SimulationFailed event
func (f *Factory) CreateSimulationFailedEvent(ctx context.Context, data SimulationFailedData) *CloudEvent {
	subject := "simulation"
	if data.SimulationID != "" {
		subject = "simulation/" + data.SimulationID
	}
	return f.CreateEvent(ctx, SimulationFailed, subject, data)
}

// CreateOrderCreatedEvent creates an OrderCreated event
func (f *Factory) CreateOrderCreatedEvent(ctx context.Context, data OrderCreatedData) *CloudEvent {
	return f.CreateEvent(ctx, OrderCreated, fmt.Sprintf("order/%d", data.OrderID), data)
}

// CreateDriverCreatedEvent creates a DriverCreated event
func (f *Factory) CreateDriverCreatedEvent(ctx context.Context, data DriverCreatedData) *CloudEvent {
	return f.CreateEvent(ctx, DriverCreated, "driver/"+data.Name, data)
}

// CreateRouteCreatedEvent creates a RouteCreated event
func (f *Factory) CreateRouteCreatedEvent(ctx context.Context, data RouteCreatedData) *CloudEvent {
	return f.CreateEvent(ctx, RouteCreated, fmt.Sprintf("route/%d", data.RouteID), data)
}

// CreateUserRegisteredEvent creates a UserRegistered event
func (f *Factory) CreateUserRegisteredEvent(ctx context.Context, data UserRegisteredData) *CloudEvent {
	return f.CreateEvent(ctx, UserRegistered, "user/"+data.UserID, data)
}
