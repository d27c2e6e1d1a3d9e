package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/khushi747/greencart-logistics/internal/domain"
	"github.com/khushi747/greencart-logistics/pkg/errors"
	"github.com/khushi747/greencart-logistics/pkg/events"
	"github.com/khushi747/greencart-logistics/pkg/kafka"
)

func testFactory() *events.Factory {
	return events.NewFactory(events.SourceLogisticsAPI)
}

func TestCreateDriverDefaultsWeekHours(t *testing.T) {
	var saved *domain.Driver
	drivers := &fakeDriverRepo{
		saveFn: func(_ context.Context, driver *domain.Driver) error {
			saved = driver
			return nil
		},
	}
	publisher := &fakePublisher{}

	service := NewDriverService(drivers, publisher, testFactory(), nil, testLogger())

	driver, err := service.Create(context.Background(), CreateDriverCommand{Name: "Amit", ShiftHours: 6})
	require.NoError(t, err)

	assert.Len(t, driver.PastWeekHours, domain.PastWeekDays)
	assert.True(t, driver.IsActive)
	require.NotNil(t, saved)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, kafka.Topics.DriverEvents, publisher.published[0].topic)
	assert.Equal(t, events.DriverCreated, publisher.published[0].event.Type)
}

func TestCreateDriverRejectsEmptyName(t *testing.T) {
	service := NewDriverService(&fakeDriverRepo{}, &fakePublisher{}, testFactory(), nil, testLogger())

	_, err := service.Create(context.Background(), CreateDriverCommand{Name: ""})
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
}

func TestUpdateDriverRejectsBadWeekHours(t *testing.T) {
	existing, err := domain.NewDriver("Amit", 6, nil)
	require.NoError(t, err)

	drivers := &fakeDriverRepo{
		findByIDFn: func(context.Context, primitive.ObjectID) (*domain.Driver, error) {
			return existing, nil
		},
	}

	service := NewDriverService(drivers, &fakePublisher{}, testFactory(), nil, testLogger())

	_, err = service.Update(context.Background(), existing.ID.Hex(), UpdateDriverCommand{
		PastWeekHours: []float64{1, 2, 3},
	})
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
}

func TestGetDriverNotFound(t *testing.T) {
	service := NewDriverService(&fakeDriverRepo{}, &fakePublisher{}, testFactory(), nil, testLogger())

	_, err := service.Get(context.Background(), primitive.NewObjectID().Hex())
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNotFound, appErr.Code)
}

func TestGetDriverRejectsMalformedID(t *testing.T) {
	service := NewDriverService(&fakeDriverRepo{}, &fakePublisher{}, testFactory(), nil, testLogger())

	_, err := service.Get(context.Background(), "not-an-id")
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
}

func TestCreateRouteRejectsDuplicate(t *testing.T) {
	existing, err := domain.NewRoute(1, 10, domain.TrafficLow, 30)
	require.NoError(t, err)

	routes := &fakeRouteRepo{
		findByRouteIDFn: func(context.Context, int) (*domain.Route, error) {
			return existing, nil
		},
	}

	service := NewRouteService(routes, &fakePublisher{}, testFactory(), nil, testLogger())

	_, err = service.Create(context.Background(), CreateRouteCommand{
		RouteID:      1,
		DistanceKm:   10,
		TrafficLevel: "Low",
		BaseTimeMin:  30,
	})
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeConflict, appErr.Code)
}

func TestCreateRouteRejectsBadTrafficLevel(t *testing.T) {
	service := NewRouteService(&fakeRouteRepo{}, &fakePublisher{}, testFactory(), nil, testLogger())

	_, err := service.Create(context.Background(), CreateRouteCommand{
		RouteID:      1,
		DistanceKm:   10,
		TrafficLevel: "Gridlock",
		BaseTimeMin:  30,
	})
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
}

func TestUpdateRouteDeactivates(t *testing.T) {
	existing, err := domain.NewRoute(1, 10, domain.TrafficLow, 30)
	require.NoError(t, err)

	var updated *domain.Route
	routes := &fakeRouteRepo{
		findByIDFn: func(context.Context, primitive.ObjectID) (*domain.Route, error) {
			return existing, nil
		},
		updateFn: func(_ context.Context, route *domain.Route) error {
			updated = route
			return nil
		},
	}

	service := NewRouteService(routes, &fakePublisher{}, testFactory(), nil, testLogger())

	inactive := false
	route, err := service.Update(context.Background(), existing.ID.Hex(), UpdateRouteCommand{IsActive: &inactive})
	require.NoError(t, err)

	assert.False(t, route.IsActive)
	require.NotNil(t, updated)
	assert.False(t, updated.IsActive)
}

func TestCreateOrderRequiresExistingRoute(t *testing.T) {
	service := NewOrderService(&fakeOrderRepo{}, &fakeRouteRepo{}, &fakePublisher{}, testFactory(), nil, testLogger())

	_, err := service.Create(context.Background(), CreateOrderCommand{
		OrderID: 1,
		ValueRs: 500,
		RouteID: 42,
	})
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
}

func TestCreateOrderPublishesEvent(t *testing.T) {
	route, err := domain.NewRoute(42, 10, domain.TrafficLow, 30)
	require.NoError(t, err)

	routes := &fakeRouteRepo{
		findByRouteIDFn: func(context.Context, int) (*domain.Route, error) {
			return route, nil
		},
	}
	publisher := &fakePublisher{}

	service := NewOrderService(&fakeOrderRepo{}, routes, publisher, testFactory(), nil, testLogger())

	order, err := service.Create(context.Background(), CreateOrderCommand{
		OrderID: 1,
		ValueRs: 500,
		RouteID: 42,
	})
	require.NoError(t, err)
	assert.Equal(t, 42, order.RouteID)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, kafka.Topics.OrderEvents, publisher.published[0].topic)
	assert.Equal(t, events.OrderCreated, publisher.published[0].event.Type)
}

func TestCreateOrderRejectsDuplicate(t *testing.T) {
	existing, err := domain.NewOrder(1, 500, 42)
	require.NoError(t, err)

	orders := &fakeOrderRepo{
		findByOrderIDFn: func(context.Context, int) (*domain.Order, error) {
			return existing, nil
		},
	}

	service := NewOrderService(orders, &fakeRouteRepo{}, &fakePublisher{}, testFactory(), nil, testLogger())

	_, err = service.Create(context.Background(), CreateOrderCommand{
		OrderID: 1,
		ValueRs: 500,
		RouteID: 42,
	})
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeConflict, appErr.Code)
}
