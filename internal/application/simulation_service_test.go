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

func simulationFixtures(t *testing.T) ([]*domain.Order, []*domain.Route, []*domain.Driver) {
	t.Helper()

	order, err := domain.NewOrder(1, 1500, 101)
	require.NoError(t, err)
	route, err := domain.NewRoute(101, 10, domain.TrafficLow, 30)
	require.NoError(t, err)
	driver, err := domain.NewDriver("Amit", 6, []float64{6, 6, 6, 6, 6, 6, 6})
	require.NoError(t, err)

	return []*domain.Order{order}, []*domain.Route{route}, []*domain.Driver{driver}
}

func newSimulationService(orders *fakeOrderRepo, routes *fakeRouteRepo, drivers *fakeDriverRepo, history *fakeSimulationRepo, publisher *fakePublisher) *SimulationService {
	return NewSimulationService(
		domain.NewSimulator(nil),
		orders,
		routes,
		drivers,
		history,
		publisher,
		events.NewFactory(events.SourceLogisticsAPI),
		nil,
		testLogger(),
	)
}

func TestRunPersistsHistoryAndPublishes(t *testing.T) {
	orders, routes, drivers := simulationFixtures(t)
	userID := primitive.NewObjectID()

	var saved *domain.SimulationRecord
	history := &fakeSimulationRepo{
		saveFn: func(_ context.Context, record *domain.SimulationRecord) error {
			saved = record
			return nil
		},
	}
	publisher := &fakePublisher{}

	service := newSimulationService(
		&fakeOrderRepo{findAllUnpagedFn: func(context.Context) ([]*domain.Order, error) { return orders, nil }},
		&fakeRouteRepo{findActiveFn: func(context.Context) ([]*domain.Route, error) { return routes, nil }},
		&fakeDriverRepo{findActiveFn: func(context.Context, int) ([]*domain.Driver, error) { return drivers, nil }},
		history,
		publisher,
	)

	results, err := service.Run(context.Background(), userID.Hex(), RunSimulationCommand{
		AvailableDrivers: 1,
		StartTime:        "09:00",
		MaxHoursPerDay:   8,
	})
	require.NoError(t, err)
	require.NotNil(t, results)

	assert.Equal(t, 1600.0, results.TotalProfit)
	assert.Equal(t, 1, results.TotalDeliveries)

	require.NotNil(t, saved)
	assert.Equal(t, domain.SimulationCompleted, saved.Status)
	assert.Equal(t, userID, saved.UserID)
	assert.Equal(t, results.SimulationID, saved.SimulationID)
	assert.Equal(t, 1, saved.Inputs.TotalOrders)
	assert.Equal(t, 1, saved.Inputs.TotalRoutes)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, kafka.Topics.SimulationEvents, publisher.published[0].topic)
	assert.Equal(t, events.SimulationCompleted, publisher.published[0].event.Type)
}

func TestRunAnonymousIsNotPersisted(t *testing.T) {
	orders, routes, drivers := simulationFixtures(t)

	saves := 0
	history := &fakeSimulationRepo{
		saveFn: func(context.Context, *domain.SimulationRecord) error {
			saves++
			return nil
		},
	}

	service := newSimulationService(
		&fakeOrderRepo{findAllUnpagedFn: func(context.Context) ([]*domain.Order, error) { return orders, nil }},
		&fakeRouteRepo{findActiveFn: func(context.Context) ([]*domain.Route, error) { return routes, nil }},
		&fakeDriverRepo{findActiveFn: func(context.Context, int) ([]*domain.Driver, error) { return drivers, nil }},
		history,
		&fakePublisher{},
	)

	results, err := service.Run(context.Background(), "", RunSimulationCommand{
		AvailableDrivers: 1,
		StartTime:        "09:00",
		MaxHoursPerDay:   8,
	})
	require.NoError(t, err)
	require.NotNil(t, results)
	assert.Equal(t, 0, saves)
}

func TestRunNoOrdersReportsDataUnavailable(t *testing.T) {
	_, routes, drivers := simulationFixtures(t)
	userID := primitive.NewObjectID()

	var saved *domain.SimulationRecord
	history := &fakeSimulationRepo{
		saveFn: func(_ context.Context, record *domain.SimulationRecord) error {
			saved = record
			return nil
		},
	}
	publisher := &fakePublisher{}

	service := newSimulationService(
		&fakeOrderRepo{},
		&fakeRouteRepo{findActiveFn: func(context.Context) ([]*domain.Route, error) { return routes, nil }},
		&fakeDriverRepo{findActiveFn: func(context.Context, int) ([]*domain.Driver, error) { return drivers, nil }},
		history,
		publisher,
	)

	_, err := service.Run(context.Background(), userID.Hex(), RunSimulationCommand{
		AvailableDrivers: 1,
		StartTime:        "09:00",
		MaxHoursPerDay:   8,
	})
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeDataUnavailable, appErr.Code)

	require.NotNil(t, saved)
	assert.Equal(t, domain.SimulationFailed, saved.Status)
	assert.Nil(t, saved.Results)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.SimulationFailed, publisher.published[0].event.Type)
}

func TestRunRejectsInvalidParams(t *testing.T) {
	loads := 0
	service := newSimulationService(
		&fakeOrderRepo{findAllUnpagedFn: func(context.Context) ([]*domain.Order, error) {
			loads++
			return nil, nil
		}},
		&fakeRouteRepo{},
		&fakeDriverRepo{},
		&fakeSimulationRepo{},
		&fakePublisher{},
	)

	_, err := service.Run(context.Background(), "", RunSimulationCommand{
		AvailableDrivers: 0,
		StartTime:        "09:00",
		MaxHoursPerDay:   8,
	})
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeValidationError, appErr.Code)
	assert.Equal(t, 0, loads)
}

func TestRunHistoryFailureDoesNotMaskResults(t *testing.T) {
	orders, routes, drivers := simulationFixtures(t)

	history := &fakeSimulationRepo{
		saveFn: func(context.Context, *domain.SimulationRecord) error {
			return assert.AnError
		},
	}

	service := newSimulationService(
		&fakeOrderRepo{findAllUnpagedFn: func(context.Context) ([]*domain.Order, error) { return orders, nil }},
		&fakeRouteRepo{findActiveFn: func(context.Context) ([]*domain.Route, error) { return routes, nil }},
		&fakeDriverRepo{findActiveFn: func(context.Context, int) ([]*domain.Driver, error) { return drivers, nil }},
		history,
		&fakePublisher{},
	)

	results, err := service.Run(context.Background(), primitive.NewObjectID().Hex(), RunSimulationCommand{
		AvailableDrivers: 1,
		StartTime:        "09:00",
		MaxHoursPerDay:   8,
	})
	require.NoError(t, err)
	require.NotNil(t, results)
}

func TestHistoryPageMath(t *testing.T) {
	userID := primitive.NewObjectID()

	history := &fakeSimulationRepo{
		findByUserFn: func(_ context.Context, _ primitive.ObjectID, _ domain.Pagination) ([]*domain.SimulationRecord, int64, error) {
			return []*domain.SimulationRecord{}, 45, nil
		},
	}

	service := newSimulationService(&fakeOrderRepo{}, &fakeRouteRepo{}, &fakeDriverRepo{}, history, &fakePublisher{})

	page, err := service.History(context.Background(), userID.Hex(), domain.Pagination{Page: 2, PageSize: 20})
	require.NoError(t, err)

	assert.Equal(t, int64(45), page.TotalItems)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Equal(t, int64(2), page.Page)
}

func TestGetSimulationNotFound(t *testing.T) {
	service := newSimulationService(&fakeOrderRepo{}, &fakeRouteRepo{}, &fakeDriverRepo{}, &fakeSimulationRepo{}, &fakePublisher{})

	_, err := service.Get(context.Background(), primitive.NewObjectID().Hex(), "sim_missing")
	require.Error(t, err)

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeNotFound, appErr.Code)
}

func TestDeleteSimulationPublishesEvent(t *testing.T) {
	userID := primitive.NewObjectID()
	record := &domain.SimulationRecord{
		SimulationID: "sim_123_abc456",
		UserID:       userID,
		Status:       domain.SimulationCompleted,
	}

	deleted := false
	history := &fakeSimulationRepo{
		findBySimIDFn: func(_ context.Context, simulationID string, _ primitive.ObjectID) (*domain.SimulationRecord, error) {
			if simulationID == record.SimulationID {
				return record, nil
			}
			return nil, nil
		},
		deleteFn: func(context.Context, string, primitive.ObjectID) error {
			deleted = true
			return nil
		},
	}
	publisher := &fakePublisher{}

	service := newSimulationService(&fakeOrderRepo{}, &fakeRouteRepo{}, &fakeDriverRepo{}, history, publisher)

	err := service.Delete(context.Background(), userID.Hex(), record.SimulationID)
	require.NoError(t, err)
	assert.True(t, deleted)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.SimulationDeleted, publisher.published[0].event.Type)
}

func TestStatsBundlesRecentRuns(t *testing.T) {
	userID := primitive.NewObjectID()

	history := &fakeSimulationRepo{
		statsFn: func(context.Context, primitive.ObjectID) (*domain.SimulationStats, error) {
			return &domain.SimulationStats{TotalSimulations: 7, AvgProfit: 1200}, nil
		},
		findRecentByUserFn: func(_ context.Context, _ primitive.ObjectID, limit int) ([]*domain.SimulationRecord, error) {
			assert.Equal(t, 5, limit)
			return []*domain.SimulationRecord{{SimulationID: "sim_1"}}, nil
		},
	}

	service := newSimulationService(&fakeOrderRepo{}, &fakeRouteRepo{}, &fakeDriverRepo{}, history, &fakePublisher{})

	resp, err := service.Stats(context.Background(), userID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.Stats.TotalSimulations)
	require.Len(t, resp.RecentSimulations, 1)
}
