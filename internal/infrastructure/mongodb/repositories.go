// Package mongodb provides MongoDB implementations of the domain repositories.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/khushi747/greencart-logistics/internal/domain"
	"github.com/khushi747/greencart-logistics/pkg/mongodb"
)

const indexTimeout = 10 * time.Second

// DriverRepository is a MongoDB implementation of domain.DriverRepository
type DriverRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewDriverRepository creates a new driver repository
func NewDriverRepository(client *mongodb.InstrumentedClient) *DriverRepository {
	collection := client.Collection("drivers")

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "createdAt", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &DriverRepository{collection: collection}
}

// Save persists a driver
func (r *DriverRepository) Save(ctx context.Context, driver *domain.Driver) error {
	filter := bson.M{"_id": driver.ID}
	opts := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, filter, driver, opts)
	if err != nil {
		return fmt.Errorf("failed to save driver: %w", err)
	}
	return nil
}

// FindByID retrieves a driver by its document id
func (r *DriverRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Driver, error) {
	var driver domain.Driver
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&driver)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find driver: %w", err)
	}
	return &driver, nil
}

// FindAll retrieves drivers sorted by creation time, paginated
func (r *DriverRepository) FindAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Driver, int64, error) {
	filter := bson.M{}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count drivers: %w", err)
	}

	opts := options.Find().
		SetSort(mongodb.SortAscending("createdAt")).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find drivers: %w", err)
	}
	defer cursor.Close(ctx)

	var drivers []*domain.Driver
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, 0, fmt.Errorf("failed to decode drivers: %w", err)
	}
	return drivers, total, nil
}

// FindActive retrieves up to limit active drivers, oldest first
func (r *DriverRepository) FindActive(ctx context.Context, limit int) ([]*domain.Driver, error) {
	opts := options.Find().
		SetSort(mongodb.SortAscending("createdAt")).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find active drivers: %w", err)
	}
	defer cursor.Close(ctx)

	var drivers []*domain.Driver
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, fmt.Errorf("failed to decode drivers: %w", err)
	}
	return drivers, nil
}

// Update replaces a driver document
func (r *DriverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": driver.ID}, driver)
	if err != nil {
		return fmt.Errorf("failed to update driver: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("driver %s not found", driver.ID.Hex())
	}
	return nil
}

// Delete removes a driver
func (r *DriverRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete driver: %w", err)
	}
	return nil
}

// RouteRepository is a MongoDB implementation of domain.RouteRepository
type RouteRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(client *mongodb.InstrumentedClient) *RouteRepository {
	collection := client.Collection("routes")

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "routeId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "isActive", Value: 1}},
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &RouteRepository{collection: collection}
}

// Save persists a route
func (r *RouteRepository) Save(ctx context.Context, route *domain.Route) error {
	filter := bson.M{"_id": route.ID}
	opts := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, filter, route, opts)
	if err != nil {
		return fmt.Errorf("failed to save route: %w", err)
	}
	return nil
}

// FindByID retrieves a route by its document id
func (r *RouteRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Route, error) {
	var route domain.Route
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&route)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find route: %w", err)
	}
	return &route, nil
}

// FindByRouteID retrieves a route by its business id
func (r *RouteRepository) FindByRouteID(ctx context.Context, routeID int) (*domain.Route, error) {
	var route domain.Route
	err := r.collection.FindOne(ctx, bson.M{"routeId": routeID}).Decode(&route)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find route: %w", err)
	}
	return &route, nil
}

// FindAll retrieves routes sorted by business id, paginated
func (r *RouteRepository) FindAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Route, int64, error) {
	filter := bson.M{}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count routes: %w", err)
	}

	opts := options.Find().
		SetSort(mongodb.SortAscending("routeId")).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find routes: %w", err)
	}
	defer cursor.Close(ctx)

	var routes []*domain.Route
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, 0, fmt.Errorf("failed to decode routes: %w", err)
	}
	return routes, total, nil
}

// FindActive retrieves all active routes sorted by business id
func (r *RouteRepository) FindActive(ctx context.Context) ([]*domain.Route, error) {
	opts := options.Find().SetSort(mongodb.SortAscending("routeId"))

	cursor, err := r.collection.Find(ctx, bson.M{"isActive": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find active routes: %w", err)
	}
	defer cursor.Close(ctx)

	var routes []*domain.Route
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, fmt.Errorf("failed to decode routes: %w", err)
	}
	return routes, nil
}

// FindAllUnpaged retrieves every route, active or not
func (r *RouteRepository) FindAllUnpaged(ctx context.Context) ([]*domain.Route, error) {
	opts := options.Find().SetSort(mongodb.SortAscending("routeId"))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find routes: %w", err)
	}
	defer cursor.Close(ctx)

	var routes []*domain.Route
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, fmt.Errorf("failed to decode routes: %w", err)
	}
	return routes, nil
}

// Update replaces a route document
func (r *RouteRepository) Update(ctx context.Context, route *domain.Route) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": route.ID}, route)
	if err != nil {
		return fmt.Errorf("failed to update route: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("route %s not found", route.ID.Hex())
	}
	return nil
}

// Delete removes a route
func (r *RouteRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	return nil
}

// OrderRepository is a MongoDB implementation of domain.OrderRepository
type OrderRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(client *mongodb.InstrumentedClient) *OrderRepository {
	collection := client.Collection("orders")

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "orderId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "routeId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: 1}},
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &OrderRepository{collection: collection}
}

// Save persists an order
func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	filter := bson.M{"_id": order.ID}
	opts := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, filter, order, opts)
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// FindByID retrieves an order by its document id
func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	var order domain.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

// FindByOrderID retrieves an order by its business id
func (r *OrderRepository) FindByOrderID(ctx context.Context, orderID int) (*domain.Order, error) {
	var order domain.Order
	err := r.collection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

// FindAll retrieves orders sorted by creation time, paginated
func (r *OrderRepository) FindAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Order, int64, error) {
	filter := bson.M{}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	opts := options.Find().
		SetSort(mongodb.SortAscending("createdAt", "_id")).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, total, nil
}

// FindAllUnpaged retrieves every order in insertion order. Assignment
// walks the order book sequentially, so the sort must be stable.
func (r *OrderRepository) FindAllUnpaged(ctx context.Context) ([]*domain.Order, error) {
	opts := options.Find().SetSort(mongodb.SortAscending("createdAt", "_id"))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

// Update replaces an order document
func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": order.ID}, order)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order %s not found", order.ID.Hex())
	}
	return nil
}

// Delete removes an order
func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// UserRepository is a MongoDB implementation of domain.UserRepository
type UserRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewUserRepository creates a new user repository
func NewUserRepository(client *mongodb.InstrumentedClient) *UserRepository {
	collection := client.Collection("users")

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &UserRepository{collection: collection}
}

// Save persists a user
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	filter := bson.M{"_id": user.ID}
	opts := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, filter, user, opts)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindByID retrieves a user by its document id
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// SimulationRepository is a MongoDB implementation of domain.SimulationRepository
type SimulationRepository struct {
	collection *mongodb.InstrumentedCollection
}

// NewSimulationRepository creates a new simulation history repository
func NewSimulationRepository(client *mongodb.InstrumentedClient) *SimulationRepository {
	collection := client.Collection("simulations")

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "simulationId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)

	return &SimulationRepository{collection: collection}
}

// Save persists a simulation record
func (r *SimulationRepository) Save(ctx context.Context, record *domain.SimulationRecord) error {
	filter := bson.M{"simulationId": record.SimulationID}
	opts := options.Replace().SetUpsert(true)

	_, err := r.collection.ReplaceOne(ctx, filter, record, opts)
	if err != nil {
		return fmt.Errorf("failed to save simulation record: %w", err)
	}
	return nil
}

// FindBySimulationID retrieves a record owned by a user
func (r *SimulationRepository) FindBySimulationID(ctx context.Context, simulationID string, userID primitive.ObjectID) (*domain.SimulationRecord, error) {
	filter := bson.M{"simulationId": simulationID, "userId": userID}

	var record domain.SimulationRecord
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find simulation record: %w", err)
	}
	return &record, nil
}

// FindByUser retrieves a user's history, newest first, paginated
func (r *SimulationRepository) FindByUser(ctx context.Context, userID primitive.ObjectID, pagination domain.Pagination) ([]*domain.SimulationRecord, int64, error) {
	filter := bson.M{"userId": userID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count simulation records: %w", err)
	}

	opts := options.Find().
		SetSort(mongodb.SortDescending("createdAt")).
		SetSkip(pagination.Skip()).
		SetLimit(pagination.Limit())

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find simulation records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*domain.SimulationRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, 0, fmt.Errorf("failed to decode simulation records: %w", err)
	}
	return records, total, nil
}

// FindRecentByUser retrieves the user's most recent records
func (r *SimulationRepository) FindRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]*domain.SimulationRecord, error) {
	opts := options.Find().
		SetSort(mongodb.SortDescending("createdAt")).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find simulation records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*domain.SimulationRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode simulation records: %w", err)
	}
	return records, nil
}

// Delete removes a record owned by a user
func (r *SimulationRepository) Delete(ctx context.Context, simulationID string, userID primitive.ObjectID) error {
	filter := bson.M{"simulationId": simulationID, "userId": userID}

	_, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete simulation record: %w", err)
	}
	return nil
}

// Stats aggregates a user's completed-run statistics
func (r *SimulationRepository) Stats(ctx context.Context, userID primitive.ObjectID) (*domain.SimulationStats, error) {
	pipeline := []bson.M{
		{
			"$match": bson.M{
				"userId": userID,
				"status": domain.SimulationCompleted,
			},
		},
		{
			"$group": bson.M{
				"_id":              nil,
				"totalSimulations": bson.M{"$sum": 1},
				"avgProfit":        bson.M{"$avg": "$results.totalProfit"},
				"avgEfficiency":    bson.M{"$avg": "$results.efficiencyScore"},
				"bestProfit":       bson.M{"$max": "$results.totalProfit"},
				"worstEfficiency":  bson.M{"$min": "$results.efficiencyScore"},
			},
		},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate simulation stats: %w", err)
	}
	defer cursor.Close(ctx)

	var results []domain.SimulationStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode simulation stats: %w", err)
	}
	if len(results) == 0 {
		return &domain.SimulationStats{}, nil
	}
	return &results[0], nil
}
