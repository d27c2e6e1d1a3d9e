package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/khushi747/greencart-logistics/internal/domain"
	"github.com/khushi747/greencart-logistics/pkg/events"
	"github.com/khushi747/greencart-logistics/pkg/logging"
)

func testLogger() *logging.Logger {
	cfg := logging.DefaultConfig("handlers-test")
	cfg.Output = io.Discard
	return logging.New(cfg)
}

func testFactory() *events.Factory {
	return events.NewFactory(events.SourceLogisticsAPI)
}

func makeRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	return makeAuthedRequest(router, method, path, body, "")
}

func makeAuthedRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type fakeDriverRepo struct {
	saveFn       func(context.Context, *domain.Driver) error
	findByIDFn   func(context.Context, primitive.ObjectID) (*domain.Driver, error)
	findAllFn    func(context.Context, domain.Pagination) ([]*domain.Driver, int64, error)
	findActiveFn func(context.Context, int) ([]*domain.Driver, error)
	updateFn     func(context.Context, *domain.Driver) error
	deleteFn     func(context.Context, primitive.ObjectID) error
}

func (f *fakeDriverRepo) Save(ctx context.Context, driver *domain.Driver) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, driver)
	}
	return nil
}

func (f *fakeDriverRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Driver, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeDriverRepo) FindAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Driver, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, pagination)
	}
	return nil, 0, nil
}

func (f *fakeDriverRepo) FindActive(ctx context.Context, limit int) ([]*domain.Driver, error) {
	if f.findActiveFn != nil {
		return f.findActiveFn(ctx, limit)
	}
	return nil, nil
}

func (f *fakeDriverRepo) Update(ctx context.Context, driver *domain.Driver) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, driver)
	}
	return nil
}

func (f *fakeDriverRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeRouteRepo struct {
	saveFn           func(context.Context, *domain.Route) error
	findByIDFn       func(context.Context, primitive.ObjectID) (*domain.Route, error)
	findByRouteIDFn  func(context.Context, int) (*domain.Route, error)
	findAllFn        func(context.Context, domain.Pagination) ([]*domain.Route, int64, error)
	findActiveFn     func(context.Context) ([]*domain.Route, error)
	findAllUnpagedFn func(context.Context) ([]*domain.Route, error)
	updateFn         func(context.Context, *domain.Route) error
	deleteFn         func(context.Context, primitive.ObjectID) error
}

func (f *fakeRouteRepo) Save(ctx context.Context, route *domain.Route) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, route)
	}
	return nil
}

func (f *fakeRouteRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Route, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeRouteRepo) FindByRouteID(ctx context.Context, routeID int) (*domain.Route, error) {
	if f.findByRouteIDFn != nil {
		return f.findByRouteIDFn(ctx, routeID)
	}
	return nil, nil
}

func (f *fakeRouteRepo) FindAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Route, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, pagination)
	}
	return nil, 0, nil
}

func (f *fakeRouteRepo) FindActive(ctx context.Context) ([]*domain.Route, error) {
	if f.findActiveFn != nil {
		return f.findActiveFn(ctx)
	}
	return nil, nil
}

func (f *fakeRouteRepo) FindAllUnpaged(ctx context.Context) ([]*domain.Route, error) {
	if f.findAllUnpagedFn != nil {
		return f.findAllUnpagedFn(ctx)
	}
	return nil, nil
}

func (f *fakeRouteRepo) Update(ctx context.Context, route *domain.Route) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, route)
	}
	return nil
}

func (f *fakeRouteRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeOrderRepo struct {
	saveFn           func(context.Context, *domain.Order) error
	findByIDFn       func(context.Context, primitive.ObjectID) (*domain.Order, error)
	findByOrderIDFn  func(context.Context, int) (*domain.Order, error)
	findAllFn        func(context.Context, domain.Pagination) ([]*domain.Order, int64, error)
	findAllUnpagedFn func(context.Context) ([]*domain.Order, error)
	updateFn         func(context.Context, *domain.Order) error
	deleteFn         func(context.Context, primitive.ObjectID) error
}

func (f *fakeOrderRepo) Save(ctx context.Context, order *domain.Order) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, order)
	}
	return nil
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindByOrderID(ctx context.Context, orderID int) (*domain.Order, error) {
	if f.findByOrderIDFn != nil {
		return f.findByOrderIDFn(ctx, orderID)
	}
	return nil, nil
}

func (f *fakeOrderRepo) FindAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Order, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, pagination)
	}
	return nil, 0, nil
}

func (f *fakeOrderRepo) FindAllUnpaged(ctx context.Context) ([]*domain.Order, error) {
	if f.findAllUnpagedFn != nil {
		return f.findAllUnpagedFn(ctx)
	}
	return nil, nil
}

func (f *fakeOrderRepo) Update(ctx context.Context, order *domain.Order) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, order)
	}
	return nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeUserRepo struct {
	saveFn        func(context.Context, *domain.User) error
	findByEmailFn func(context.Context, string) (*domain.User, error)
	findByIDFn    func(context.Context, primitive.ObjectID) (*domain.User, error)
}

func (f *fakeUserRepo) Save(ctx context.Context, user *domain.User) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, user)
	}
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

type fakeSimulationRepo struct {
	saveFn             func(context.Context, *domain.SimulationRecord) error
	findBySimIDFn      func(context.Context, string, primitive.ObjectID) (*domain.SimulationRecord, error)
	findByUserFn       func(context.Context, primitive.ObjectID, domain.Pagination) ([]*domain.SimulationRecord, int64, error)
	findRecentByUserFn func(context.Context, primitive.ObjectID, int) ([]*domain.SimulationRecord, error)
	deleteFn           func(context.Context, string, primitive.ObjectID) error
	statsFn            func(context.Context, primitive.ObjectID) (*domain.SimulationStats, error)
}

func (f *fakeSimulationRepo) Save(ctx context.Context, record *domain.SimulationRecord) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, record)
	}
	return nil
}

func (f *fakeSimulationRepo) FindBySimulationID(ctx context.Context, simulationID string, userID primitive.ObjectID) (*domain.SimulationRecord, error) {
	if f.findBySimIDFn != nil {
		return f.findBySimIDFn(ctx, simulationID, userID)
	}
	return nil, nil
}

func (f *fakeSimulationRepo) FindByUser(ctx context.Context, userID primitive.ObjectID, pagination domain.Pagination) ([]*domain.SimulationRecord, int64, error) {
	if f.findByUserFn != nil {
		return f.findByUserFn(ctx, userID, pagination)
	}
	return nil, 0, nil
}

func (f *fakeSimulationRepo) FindRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]*domain.SimulationRecord, error) {
	if f.findRecentByUserFn != nil {
		return f.findRecentByUserFn(ctx, userID, limit)
	}
	return nil, nil
}

func (f *fakeSimulationRepo) Delete(ctx context.Context, simulationID string, userID primitive.ObjectID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, simulationID, userID)
	}
	return nil
}

func (f *fakeSimulationRepo) Stats(ctx context.Context, userID primitive.ObjectID) (*domain.SimulationStats, error) {
	if f.statsFn != nil {
		return f.statsFn(ctx, userID)
	}
	return &domain.SimulationStats{}, nil
}
