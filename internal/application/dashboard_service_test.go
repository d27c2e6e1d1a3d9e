package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khushi747/greencart-logistics/internal/domain"
)

func deliveredOrder(t *testing.T, orderID int, value float64, routeID int, minutesToDeliver float64) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(orderID, value, routeID)
	require.NoError(t, err)
	delivered := order.CreatedAt.Add(time.Duration(minutesToDeliver * float64(time.Minute)))
	order.DeliveryTime = &delivered
	return order
}

func TestDashboardAggregatesDeliveredOrders(t *testing.T) {
	routeLow, err := domain.NewRoute(1, 10, domain.TrafficLow, 30)
	require.NoError(t, err)
	routeHigh, err := domain.NewRoute(2, 20, domain.TrafficHigh, 40)
	require.NoError(t, err)

	// on time, high value: 1500 + 150 bonus - 50 fuel = 1600
	// late, high traffic: 800 - 50 penalty - 140 fuel = 610
	orders := []*domain.Order{
		deliveredOrder(t, 1, 1500, 1, 25),
		deliveredOrder(t, 2, 800, 2, 60),
	}

	service := NewDashboardService(
		&fakeOrderRepo{findAllUnpagedFn: func(context.Context) ([]*domain.Order, error) { return orders, nil }},
		&fakeRouteRepo{findAllUnpagedFn: func(context.Context) ([]*domain.Route, error) {
			return []*domain.Route{routeLow, routeHigh}, nil
		}},
		nil,
		testLogger(),
	)

	resp, err := service.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2210.0, resp.TotalProfit)
	assert.Equal(t, 50.0, resp.EfficiencyScore)

	require.Len(t, resp.DeliveryStats, 2)
	assert.Equal(t, DeliveryStat{Name: "On-time", Value: 1}, resp.DeliveryStats[0])
	assert.Equal(t, DeliveryStat{Name: "Late", Value: 1}, resp.DeliveryStats[1])

	require.Len(t, resp.FuelCostBreakdown, 2)
	assert.Equal(t, FuelCostCategory{Name: "Base", Value: 150}, resp.FuelCostBreakdown[0])
	assert.Equal(t, FuelCostCategory{Name: "TrafficSurcharge", Value: 40}, resp.FuelCostBreakdown[1])
}

func TestDashboardSkipsOrdersWithoutRoute(t *testing.T) {
	orders := []*domain.Order{deliveredOrder(t, 1, 500, 99, 10)}

	service := NewDashboardService(
		&fakeOrderRepo{findAllUnpagedFn: func(context.Context) ([]*domain.Order, error) { return orders, nil }},
		&fakeRouteRepo{},
		nil,
		testLogger(),
	)

	resp, err := service.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.TotalProfit)
	assert.Equal(t, 0.0, resp.EfficiencyScore)
	assert.Equal(t, 0, resp.DeliveryStats[0].Value)
	assert.Equal(t, 0, resp.DeliveryStats[1].Value)
}

func TestDashboardUndeliveredOrderCountsLate(t *testing.T) {
	route, err := domain.NewRoute(1, 10, domain.TrafficLow, 30)
	require.NoError(t, err)

	order, err := domain.NewOrder(1, 500, 1)
	require.NoError(t, err)

	service := NewDashboardService(
		&fakeOrderRepo{findAllUnpagedFn: func(context.Context) ([]*domain.Order, error) {
			return []*domain.Order{order}, nil
		}},
		&fakeRouteRepo{findAllUnpagedFn: func(context.Context) ([]*domain.Route, error) {
			return []*domain.Route{route}, nil
		}},
		nil,
		testLogger(),
	)

	resp, err := service.GetDashboard(context.Background())
	require.NoError(t, err)

	// 500 - 50 penalty - 50 fuel
	assert.Equal(t, 400.0, resp.TotalProfit)
	assert.Equal(t, 0.0, resp.EfficiencyScore)
	assert.Equal(t, 1, resp.DeliveryStats[1].Value)
}

func TestDashboardEmptyOrderBook(t *testing.T) {
	service := NewDashboardService(&fakeOrderRepo{}, &fakeRouteRepo{}, nil, testLogger())

	resp, err := service.GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.TotalProfit)
	assert.Equal(t, 0.0, resp.EfficiencyScore)
}
