// Command seed wipes and repopulates the MongoDB collections from the
// CSV files under data/. An optional argument restricts seeding to one
// collection: drivers, routes, orders, users, or clear to wipe only.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/khushi747/greencart-logistics/internal/domain"
	"github.com/khushi747/greencart-logistics/pkg/events"
	"github.com/khushi747/greencart-logistics/pkg/kafka"
	"github.com/khushi747/greencart-logistics/pkg/logging"
	"github.com/khushi747/greencart-logistics/pkg/mongodb"
)

const (
	defaultManagerEmail    = "manager@greencart.com"
	defaultManagerPassword = "admin123"
)

func main() {
	command := "all"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if err := run(context.Background(), command); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, command string) error {
	_ = godotenv.Load()

	logger := logging.New(logging.DefaultConfig("seeder"))
	logger.SetDefault()

	mongoConfig := mongodb.DefaultConfig()
	mongoConfig.URI = getEnv("MONGODB_URI", mongoConfig.URI)
	mongoConfig.Database = getEnv("MONGODB_DATABASE", mongoConfig.Database)

	client, err := mongodb.NewClient(ctx, mongoConfig)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		return err
	}
	defer client.Close(ctx)
	logger.Info("Connected to MongoDB", "database", mongoConfig.Database)

	kafkaConfig := kafka.DefaultConfig()
	kafkaConfig.Brokers = []string{getEnv("KAFKA_BROKERS", "localhost:9092")}
	kafkaConfig.ClientID = "seeder"
	producer := kafka.NewProducer(kafkaConfig)
	defer producer.Close()

	seeder := &seeder{
		client:       client,
		producer:     producer,
		eventFactory: events.NewFactory(events.SourceSeeder),
		logger:       logger,
		dataDir:      getEnv("SEED_DATA_DIR", "data"),
	}

	switch command {
	case "drivers":
		return seeder.seedDrivers(ctx)
	case "routes":
		return seeder.seedRoutes(ctx)
	case "orders":
		return seeder.seedOrders(ctx)
	case "users":
		return seeder.seedDefaultUser(ctx)
	case "clear":
		return seeder.clear(ctx)
	case "all":
		return seeder.seedAll(ctx)
	default:
		logger.Error("Unknown command", "command", command)
		return fmt.Errorf("unknown command %q", command)
	}
}

type seeder struct {
	client       *mongodb.Client
	producer     *kafka.Producer
	eventFactory *events.Factory
	logger       *logging.Logger
	dataDir      string
}

func (s *seeder) seedAll(ctx context.Context) error {
	if err := s.seedDrivers(ctx); err != nil {
		return err
	}
	if err := s.seedRoutes(ctx); err != nil {
		return err
	}
	if err := s.seedOrders(ctx); err != nil {
		return err
	}
	if err := s.seedDefaultUser(ctx); err != nil {
		return err
	}

	for _, name := range []string{"drivers", "routes", "orders"} {
		count, err := s.client.Collection(name).CountDocuments(ctx, bson.M{})
		if err != nil {
			s.logger.WithError(err).Warn("Failed to count collection", "collection", name)
			continue
		}
		s.logger.Info("Collection seeded", "collection", name, "count", count)
	}
	return nil
}

func (s *seeder) seedDrivers(ctx context.Context) error {
	rows, err := s.readCSV("drivers.csv")
	if err != nil {
		return err
	}

	var docs []interface{}
	for _, row := range rows {
		shiftHours, err := strconv.ParseFloat(row["shift_hours"], 64)
		if err != nil {
			return fmt.Errorf("invalid shift_hours %q: %w", row["shift_hours"], err)
		}
		pastWeek, err := parsePastWeekHours(row["past_week_hours"])
		if err != nil {
			return err
		}

		driver, err := domain.NewDriver(row["name"], shiftHours, pastWeek)
		if err != nil {
			return fmt.Errorf("invalid driver %q: %w", row["name"], err)
		}
		docs = append(docs, driver)
	}

	collection := s.client.Collection("drivers")
	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear drivers: %w", err)
	}
	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert drivers: %w", err)
	}
	s.logger.Info("Seeded drivers", "count", len(docs))

	for _, doc := range docs {
		driver := doc.(*domain.Driver)
		event := s.eventFactory.CreateDriverCreatedEvent(ctx, events.DriverCreatedData{
			Name:         driver.Name,
			CurrentShift: driver.ShiftHours,
		})
		if err := s.producer.PublishEvent(ctx, kafka.Topics.DriverEvents, event); err != nil {
			s.logger.WithError(err).Warn("Failed to publish driver event", "driver", driver.Name)
		}
	}
	return nil
}

func (s *seeder) seedRoutes(ctx context.Context) error {
	rows, err := s.readCSV("routes.csv")
	if err != nil {
		return err
	}

	var docs []interface{}
	for _, row := range rows {
		routeID, err := strconv.Atoi(row["route_id"])
		if err != nil {
			return fmt.Errorf("invalid route_id %q: %w", row["route_id"], err)
		}
		distanceKm, err := strconv.ParseFloat(row["distance_km"], 64)
		if err != nil {
			return fmt.Errorf("invalid distance_km %q: %w", row["distance_km"], err)
		}
		baseTimeMin, err := strconv.ParseFloat(row["base_time_min"], 64)
		if err != nil {
			return fmt.Errorf("invalid base_time_min %q: %w", row["base_time_min"], err)
		}

		route, err := domain.NewRoute(routeID, distanceKm, domain.TrafficLevel(row["traffic_level"]), baseTimeMin)
		if err != nil {
			return fmt.Errorf("invalid route %d: %w", routeID, err)
		}
		docs = append(docs, route)
	}

	collection := s.client.Collection("routes")
	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear routes: %w", err)
	}
	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert routes: %w", err)
	}
	s.logger.Info("Seeded routes", "count", len(docs))

	for _, doc := range docs {
		route := doc.(*domain.Route)
		event := s.eventFactory.CreateRouteCreatedEvent(ctx, events.RouteCreatedData{
			RouteID:      route.RouteID,
			DistanceKm:   route.DistanceKm,
			TrafficLevel: string(route.TrafficLevel),
			BaseTimeMin:  route.BaseTimeMin,
		})
		if err := s.producer.PublishEvent(ctx, kafka.Topics.RouteEvents, event); err != nil {
			s.logger.WithError(err).Warn("Failed to publish route event", "routeId", route.RouteID)
		}
	}
	return nil
}

func (s *seeder) seedOrders(ctx context.Context) error {
	rows, err := s.readCSV("orders.csv")
	if err != nil {
		return err
	}

	now := time.Now()
	var docs []interface{}
	for _, row := range rows {
		orderID, err := strconv.Atoi(row["order_id"])
		if err != nil {
			return fmt.Errorf("invalid order_id %q: %w", row["order_id"], err)
		}
		valueRs, err := strconv.ParseFloat(row["value_rs"], 64)
		if err != nil {
			return fmt.Errorf("invalid value_rs %q: %w", row["value_rs"], err)
		}
		routeID, err := strconv.Atoi(row["route_id"])
		if err != nil {
			return fmt.Errorf("invalid route_id %q: %w", row["route_id"], err)
		}
		deliveryMinutes, err := parseClock(row["delivery_time"])
		if err != nil {
			return err
		}

		order, err := domain.NewOrder(orderID, valueRs, routeID)
		if err != nil {
			return fmt.Errorf("invalid order %d: %w", orderID, err)
		}
		deliveryTime := now.Add(time.Duration(deliveryMinutes) * time.Minute)
		order.DeliveryTime = &deliveryTime
		docs = append(docs, order)
	}

	collection := s.client.Collection("orders")
	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear orders: %w", err)
	}
	if _, err := collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert orders: %w", err)
	}
	s.logger.Info("Seeded orders", "count", len(docs))

	for _, doc := range docs {
		order := doc.(*domain.Order)
		event := s.eventFactory.CreateOrderCreatedEvent(ctx, events.OrderCreatedData{
			OrderID:       order.OrderID,
			ValueRs:       order.ValueRs,
			AssignedRoute: order.RouteID,
		})
		if err := s.producer.PublishEvent(ctx, kafka.Topics.OrderEvents, event); err != nil {
			s.logger.WithError(err).Warn("Failed to publish order event", "orderId", order.OrderID)
		}
	}
	return nil
}

func (s *seeder) seedDefaultUser(ctx context.Context) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultManagerPassword), 12)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(defaultManagerEmail, string(hash), domain.RoleManager)
	if err != nil {
		return fmt.Errorf("invalid default user: %w", err)
	}

	collection := s.client.Collection("users")
	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}
	if _, err := collection.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to insert default user: %w", err)
	}
	s.logger.Info("Seeded default manager", "email", defaultManagerEmail)
	return nil
}

func (s *seeder) clear(ctx context.Context) error {
	for _, name := range []string{"drivers", "routes", "orders"} {
		if _, err := s.client.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("failed to clear %s: %w", name, err)
		}
	}
	s.logger.Info("All data cleared")
	return nil
}

// readCSV reads a header-keyed CSV file from the data directory.
func (s *seeder) readCSV(filename string) ([]map[string]string, error) {
	path := s.dataDir + "/" + filename
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s has no data rows", path)
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, key := range header {
			row[strings.TrimSpace(key)] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parsePastWeekHours parses the pipe-separated hours column, e.g. "6|8|7|7|7|6|10".
func parsePastWeekHours(value string) ([]float64, error) {
	parts := strings.Split(value, "|")
	hours := make([]float64, 0, len(parts))
	for _, part := range parts {
		h, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid past_week_hours %q: %w", value, err)
		}
		hours = append(hours, h)
	}
	return hours, nil
}

// parseClock converts an HH:MM string to minutes.
func parseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", value, err)
	}
	return hours*60 + minutes, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
