package application

import (
	"time"

	"github.com/khushi747/greencart-logistics/internal/domain"
)

// RegisterCommand carries a registration request
type RegisterCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginCommand carries a login request
type LoginCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries an issued token and the authenticated user
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// UserDTO is the externally visible user shape
type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserDTO maps a domain user to its DTO
func ToUserDTO(user *domain.User) UserDTO {
	return UserDTO{
		ID:        user.ID.Hex(),
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}

// CreateDriverCommand carries a driver creation request
type CreateDriverCommand struct {
	Name          string    `json:"name" validate:"required"`
	ShiftHours    float64   `json:"shiftHours" validate:"gte=0"`
	PastWeekHours []float64 `json:"pastWeekHours" validate:"omitempty,past_week_hours"`
}

// UpdateDriverCommand carries a driver update request
type UpdateDriverCommand struct {
	Name          *string   `json:"name,omitempty"`
	ShiftHours    *float64  `json:"shiftHours,omitempty" validate:"omitempty,gte=0"`
	PastWeekHours []float64 `json:"pastWeekHours,omitempty" validate:"omitempty,past_week_hours"`
	IsActive      *bool     `json:"isActive,omitempty"`
}

// CreateRouteCommand carries a route creation request
type CreateRouteCommand struct {
	RouteID      int     `json:"routeId" validate:"required,gt=0"`
	DistanceKm   float64 `json:"distanceKm" validate:"required,gt=0"`
	TrafficLevel string  `json:"trafficLevel" validate:"required,traffic_level"`
	BaseTimeMin  float64 `json:"baseTimeMin" validate:"required,gt=0"`
}

// UpdateRouteCommand carries a route update request
type UpdateRouteCommand struct {
	DistanceKm   *float64 `json:"distanceKm,omitempty" validate:"omitempty,gt=0"`
	TrafficLevel *string  `json:"trafficLevel,omitempty" validate:"omitempty,traffic_level"`
	BaseTimeMin  *float64 `json:"baseTimeMin,omitempty" validate:"omitempty,gt=0"`
	IsActive     *bool    `json:"isActive,omitempty"`
}

// CreateOrderCommand carries an order creation request
type CreateOrderCommand struct {
	OrderID int     `json:"orderId" validate:"required,gt=0"`
	ValueRs float64 `json:"valueRs" validate:"gte=0"`
	RouteID int     `json:"routeId" validate:"required,gt=0"`
}

// UpdateOrderCommand carries an order update request
type UpdateOrderCommand struct {
	ValueRs      *float64   `json:"valueRs,omitempty" validate:"omitempty,gte=0"`
	RouteID      *int       `json:"routeId,omitempty" validate:"omitempty,gt=0"`
	DeliveryTime *time.Time `json:"deliveryTime,omitempty"`
}

// RunSimulationCommand carries the run parameters for a simulation
type RunSimulationCommand struct {
	AvailableDrivers int     `json:"availableDrivers" validate:"required,min=1,max=50"`
	StartTime        string  `json:"startTime" validate:"required,time_hhmm"`
	MaxHoursPerDay   float64 `json:"maxHoursPerDay" validate:"required,gte=1,lte=24"`
}

// SimulationHistoryPage is one page of a user's run history
type SimulationHistoryPage struct {
	Simulations []*domain.SimulationRecord `json:"simulations"`
	Page        int64                      `json:"page"`
	PageSize    int64                      `json:"pageSize"`
	TotalItems  int64                      `json:"totalItems"`
	TotalPages  int64                      `json:"totalPages"`
}

// SimulationStatsResponse bundles aggregate stats with recent runs
type SimulationStatsResponse struct {
	Stats             *domain.SimulationStats    `json:"stats"`
	RecentSimulations []*domain.SimulationRecord `json:"recentSimulations"`
}

// DeliveryStat is one slice of the dashboard delivery split
type DeliveryStat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// FuelCostCategory is one bucket of the dashboard fuel breakdown
type FuelCostCategory struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// DashboardResponse is the historical-KPI dashboard payload
type DashboardResponse struct {
	TotalProfit       float64            `json:"totalProfit"`
	EfficiencyScore   float64            `json:"efficiencyScore"`
	DeliveryStats     []DeliveryStat     `json:"deliveryStats"`
	FuelCostBreakdown []FuelCostCategory `json:"fuelCostBreakdown"`
}
