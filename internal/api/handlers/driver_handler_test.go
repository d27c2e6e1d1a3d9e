package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/khushi747/greencart-logistics/internal/application"
	"github.com/khushi747/greencart-logistics/internal/domain"
	"github.com/khushi747/greencart-logistics/pkg/api"
)

func newDriverHandler(drivers *fakeDriverRepo) *DriverHandler {
	service := application.NewDriverService(drivers, nil, testFactory(), nil, testLogger())
	return NewDriverHandler(service, testLogger())
}

func TestDriverHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := newDriverHandler(&fakeDriverRepo{})
	router.POST("/api/v1/drivers", handler.Create)

	rec := makeRequest(router, http.MethodPost, "/api/v1/drivers", map[string]interface{}{
		"name":          "Amit",
		"shiftHours":    6,
		"pastWeekHours": []float64{6, 8, 7, 7, 7, 6, 10},
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = makeRequest(router, http.MethodPost, "/api/v1/drivers", map[string]interface{}{
		"shiftHours": 6,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = makeRequest(router, http.MethodPost, "/api/v1/drivers", map[string]interface{}{
		"name":          "Amit",
		"pastWeekHours": []float64{1, 2, 3},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDriverHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	driver, err := domain.NewDriver("Priya", 8, nil)
	require.NoError(t, err)

	handler := newDriverHandler(&fakeDriverRepo{
		findByIDFn: func(_ context.Context, id primitive.ObjectID) (*domain.Driver, error) {
			if id == driver.ID {
				return driver, nil
			}
			return nil, nil
		},
	})
	router.GET("/api/v1/drivers/:driverId", handler.Get)

	rec := makeRequest(router, http.MethodGet, "/api/v1/drivers/"+driver.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = makeRequest(router, http.MethodGet, "/api/v1/drivers/"+primitive.NewObjectID().Hex(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = makeRequest(router, http.MethodGet, "/api/v1/drivers/garbage", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDriverHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	first, err := domain.NewDriver("Amit", 6, nil)
	require.NoError(t, err)
	second, err := domain.NewDriver("Priya", 8, nil)
	require.NoError(t, err)

	handler := newDriverHandler(&fakeDriverRepo{
		findAllFn: func(_ context.Context, pagination domain.Pagination) ([]*domain.Driver, int64, error) {
			assert.Equal(t, int64(1), pagination.Page)
			assert.Equal(t, int64(20), pagination.PageSize)
			return []*domain.Driver{first, second}, 2, nil
		},
	})
	router.GET("/api/v1/drivers", handler.List)

	rec := makeRequest(router, http.MethodGet, "/api/v1/drivers", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp api.PageResponse[*domain.Driver]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(2), resp.TotalItems)
	assert.Equal(t, int64(1), resp.TotalPages)
}

func TestDriverHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	driver, err := domain.NewDriver("Amit", 6, nil)
	require.NoError(t, err)

	deleted := false
	handler := newDriverHandler(&fakeDriverRepo{
		findByIDFn: func(context.Context, primitive.ObjectID) (*domain.Driver, error) {
			return driver, nil
		},
		deleteFn: func(context.Context, primitive.ObjectID) error {
			deleted = true
			return nil
		},
	})
	router.DELETE("/api/v1/drivers/:driverId", handler.Delete)

	rec := makeRequest(router, http.MethodDelete, "/api/v1/drivers/"+driver.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, deleted)
}
