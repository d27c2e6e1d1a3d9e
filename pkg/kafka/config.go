package kafka

import (
	"time"
)

// Config holds Kafka configuration
type Config struct {
	Brokers  []string
	ClientID string

	// Producer settings
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int // 0: no ack, 1: leader ack, -1: all replicas ack
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Brokers:  []string{"localhost:9092"},
		ClientID: "greencart-logistics",

		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: -1, // All replicas
	}
}

// Topics contains the logistics Kafka topic names
var Topics = struct {
	SimulationEvents string
	OrderEvents      string
	DriverEvents     string
	RouteEvents      string
	UserEvents       string
}{
	SimulationEvents: "greencart.simulation.events",
	OrderEvents:      "greencart.order.events",
	DriverEvents:     "greencart.driver.events",
	RouteEvents:      "greencart.route.events",
	UserEvents:       "greencart.user.events",
}
