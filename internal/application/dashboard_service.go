package application

import (
	"context"
	"fmt"
	"math"

	"github.com/khushi747/greencart-logistics/internal/domain"
	"github.com/khushi747/greencart-logistics/pkg/logging"
)

// DashboardService computes historical KPIs over the persisted order
// book. It shares the penalty, bonus and fuel formulas with the
// simulation engine but judges lateness from actual delivery
// timestamps instead of projected delivery times.
type DashboardService struct {
	orders domain.OrderRepository
	routes domain.RouteRepository
	policy *domain.DeliveryPolicy
	logger *logging.Logger
}

// NewDashboardService creates a dashboard service
func NewDashboardService(
	orders domain.OrderRepository,
	routes domain.RouteRepository,
	policy *domain.DeliveryPolicy,
	logger *logging.Logger,
) *DashboardService {
	if policy == nil {
		policy = domain.DefaultDeliveryPolicy()
	}
	return &DashboardService{
		orders: orders,
		routes: routes,
		policy: policy,
		logger: logger.WithComponent("dashboard-service"),
	}
}

// GetDashboard aggregates KPIs over all persisted orders. Orders whose
// route no longer exists are skipped; orders that were never delivered
// count as late.
func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardResponse, error) {
	orders, err := s.orders.FindAllUnpaged(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load orders")
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	routes, err := s.routes.FindAllUnpaged(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load routes")
		return nil, fmt.Errorf("failed to load routes: %w", err)
	}

	routesByID := make(map[int]*domain.Route, len(routes))
	for _, route := range routes {
		routesByID[route.RouteID] = route
	}

	var (
		totalProfit      float64
		onTimeDeliveries int
		lateDeliveries   int
		baseFuel         float64
		surchargeFuel    float64
	)

	for _, order := range orders {
		route, ok := routesByID[order.RouteID]
		if !ok {
			s.logger.Warn("no route found for order", "order_id", order.OrderID, "route_id", order.RouteID)
			continue
		}

		late := true
		if order.DeliveryTime != nil {
			elapsedMinutes := order.DeliveryTime.Sub(order.CreatedAt).Minutes()
			late = s.policy.IsLate(elapsedMinutes, route.BaseTimeMin)
		}

		if late {
			lateDeliveries++
		} else {
			onTimeDeliveries++
		}

		penalty := s.policy.Penalty(late)
		bonus := s.policy.Bonus(order.ValueRs, late)
		fuel := s.policy.FuelCostFor(route.DistanceKm, route.TrafficLevel)

		baseFuel += fuel.Base
		surchargeFuel += fuel.Surcharge
		totalProfit += s.policy.OrderProfit(order.ValueRs, bonus, penalty, fuel.Total)
	}

	totalDeliveries := onTimeDeliveries + lateDeliveries
	efficiencyScore := 0.0
	if totalDeliveries > 0 {
		efficiencyScore = math.Round(float64(onTimeDeliveries) / float64(totalDeliveries) * 100)
	}

	return &DashboardResponse{
		TotalProfit:     totalProfit,
		EfficiencyScore: efficiencyScore,
		DeliveryStats: []DeliveryStat{
			{Name: "On-time", Value: onTimeDeliveries},
			{Name: "Late", Value: lateDeliveries},
		},
		FuelCostBreakdown: []FuelCostCategory{
			{Name: "Base", Value: baseFuel},
			{Name: "TrafficSurcharge", Value: surchargeFuel},
		},
	}, nil
}
