package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DriverRepository defines the interface for driver persistence
type DriverRepository interface {
	// Save persists a driver
	Save(ctx context.Context, driver *Driver) error

	// FindByID retrieves a driver by its document id
	FindByID(ctx context.Context, id primitive.ObjectID) (*Driver, error)

	// FindAll retrieves drivers, paginated
	FindAll(ctx context.Context, pagination Pagination) ([]*Driver, int64, error)

	// FindActive retrieves up to limit active drivers
	FindActive(ctx context.Context, limit int) ([]*Driver, error)

	// Update replaces a driver document
	Update(ctx context.Context, driver *Driver) error

	// Delete removes a driver
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// RouteRepository defines the interface for route persistence
type RouteRepository interface {
	// Save persists a route
	Save(ctx context.Context, route *Route) error

	// FindByID retrieves a route by its document id
	FindByID(ctx context.Context, id primitive.ObjectID) (*Route, error)

	// FindByRouteID retrieves a route by its business id
	FindByRouteID(ctx context.Context, routeID int) (*Route, error)

	// FindAll retrieves routes, paginated
	FindAll(ctx context.Context, pagination Pagination) ([]*Route, int64, error)

	// FindActive retrieves all active routes
	FindActive(ctx context.Context) ([]*Route, error)

	// FindAllUnpaged retrieves every route, active or not
	FindAllUnpaged(ctx context.Context) ([]*Route, error)

	// Update replaces a route document
	Update(ctx context.Context, route *Route) error

	// Delete removes a route
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Save persists an order
	Save(ctx context.Context, order *Order) error

	// FindByID retrieves an order by its document id
	FindByID(ctx context.Context, id primitive.ObjectID) (*Order, error)

	// FindByOrderID retrieves an order by its business id
	FindByOrderID(ctx context.Context, orderID int) (*Order, error)

	// FindAll retrieves orders, paginated
	FindAll(ctx context.Context, pagination Pagination) ([]*Order, int64, error)

	// FindAllUnpaged retrieves every order, in insertion order
	FindAllUnpaged(ctx context.Context) ([]*Order, error)

	// Update replaces an order document
	Update(ctx context.Context, order *Order) error

	// Delete removes an order
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Save persists a user
	Save(ctx context.Context, user *User) error

	// FindByEmail retrieves a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID retrieves a user by its document id
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
}

// SimulationStats summarizes a user's simulation history
type SimulationStats struct {
	TotalSimulations int64   `bson:"totalSimulations" json:"totalSimulations"`
	AvgProfit        float64 `bson:"avgProfit" json:"avgProfit"`
	AvgEfficiency    float64 `bson:"avgEfficiency" json:"avgEfficiency"`
	BestProfit       float64 `bson:"bestProfit" json:"bestProfit"`
	WorstEfficiency  float64 `bson:"worstEfficiency" json:"worstEfficiency"`
}

// SimulationRepository defines the interface for run-history persistence
type SimulationRepository interface {
	// Save persists a simulation record
	Save(ctx context.Context, record *SimulationRecord) error

	// FindBySimulationID retrieves a record owned by a user
	FindBySimulationID(ctx context.Context, simulationID string, userID primitive.ObjectID) (*SimulationRecord, error)

	// FindByUser retrieves a user's history, newest first, paginated
	FindByUser(ctx context.Context, userID primitive.ObjectID, pagination Pagination) ([]*SimulationRecord, int64, error)

	// FindRecentByUser retrieves the user's most recent records
	FindRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]*SimulationRecord, error)

	// Delete removes a record owned by a user
	Delete(ctx context.Context, simulationID string, userID primitive.ObjectID) error

	// Stats aggregates a user's simulation statistics
	Stats(ctx context.Context, userID primitive.ObjectID) (*SimulationStats, error)
}

// Pagination represents pagination options
type Pagination struct {
	Page     int64
	PageSize int64
}

// DefaultPagination returns default pagination options
func DefaultPagination() Pagination {
	return Pagination{
		Page:     1,
		PageSize: 20,
	}
}

// Skip returns the number of documents to skip
func (p Pagination) Skip() int64 {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the maximum number of documents to return
func (p Pagination) Limit() int64 {
	return p.PageSize
}
