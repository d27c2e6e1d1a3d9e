package application

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/khushi747/greencart-logistics/internal/domain"
	"github.com/khushi747/greencart-logistics/pkg/errors"
	"github.com/khushi747/greencart-logistics/pkg/events"
	"github.com/khushi747/greencart-logistics/pkg/kafka"
	"github.com/khushi747/greencart-logistics/pkg/logging"
	"github.com/khushi747/greencart-logistics/pkg/metrics"
)

// DriverService handles driver fleet management
type DriverService struct {
	drivers      domain.DriverRepository
	producer     kafka.EventPublisher
	eventFactory *events.Factory
	metrics      *metrics.Metrics
	logger       *logging.Logger
}

// NewDriverService creates a driver service
func NewDriverService(
	drivers domain.DriverRepository,
	producer kafka.EventPublisher,
	eventFactory *events.Factory,
	m *metrics.Metrics,
	logger *logging.Logger,
) *DriverService {
	return &DriverService{
		drivers:      drivers,
		producer:     producer,
		eventFactory: eventFactory,
		metrics:      m,
		logger:       logger.WithComponent("driver-service"),
	}
}

// Create registers a new driver
func (s *DriverService) Create(ctx context.Context, cmd CreateDriverCommand) (*domain.Driver, error) {
	driver, err := domain.NewDriver(cmd.Name, cmd.ShiftHours, cmd.PastWeekHours)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.drivers.Save(ctx, driver); err != nil {
		s.logger.WithError(err).Error("failed to save driver")
		return nil, fmt.Errorf("failed to save driver: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordRecordCreated("driver")
	}
	s.publishDriverCreated(ctx, driver)
	s.logger.Info("driver created", "driver_id", driver.ID.Hex(), "name", driver.Name)

	return driver, nil
}

// Get retrieves a driver by id
func (s *DriverService) Get(ctx context.Context, id string) (*domain.Driver, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.ErrValidation("invalid driver id")
	}

	driver, err := s.drivers.FindByID(ctx, objectID)
	if err != nil {
		s.logger.WithError(err).Error("failed to find driver")
		return nil, fmt.Errorf("failed to find driver: %w", err)
	}
	if driver == nil {
		return nil, errors.ErrNotFoundWithID("driver", id)
	}

	return driver, nil
}

// List retrieves drivers, paginated
func (s *DriverService) List(ctx context.Context, pagination domain.Pagination) ([]*domain.Driver, int64, error) {
	drivers, total, err := s.drivers.FindAll(ctx, pagination)
	if err != nil {
		s.logger.WithError(err).Error("failed to list drivers")
		return nil, 0, fmt.Errorf("failed to list drivers: %w", err)
	}
	return drivers, total, nil
}

// Update modifies an existing driver
func (s *DriverService) Update(ctx context.Context, id string, cmd UpdateDriverCommand) (*domain.Driver, error) {
	driver, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, errors.ErrValidation(domain.ErrDriverNameRequired.Error())
		}
		driver.Name = *cmd.Name
	}
	if cmd.ShiftHours != nil {
		driver.ShiftHours = *cmd.ShiftHours
	}
	if cmd.PastWeekHours != nil {
		if err := domain.ValidatePastWeekHours(cmd.PastWeekHours); err != nil {
			return nil, errors.ErrValidation(err.Error())
		}
		driver.PastWeekHours = cmd.PastWeekHours
	}
	if cmd.IsActive != nil {
		driver.IsActive = *cmd.IsActive
	}

	if err := s.drivers.Update(ctx, driver); err != nil {
		s.logger.WithError(err).Error("failed to update driver")
		return nil, fmt.Errorf("failed to update driver: %w", err)
	}

	s.logger.Info("driver updated", "driver_id", driver.ID.Hex())
	return driver, nil
}

// Delete removes a driver
func (s *DriverService) Delete(ctx context.Context, id string) error {
	driver, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.drivers.Delete(ctx, driver.ID); err != nil {
		s.logger.WithError(err).Error("failed to delete driver")
		return fmt.Errorf("failed to delete driver: %w", err)
	}

	s.logger.Info("driver deleted", "driver_id", driver.ID.Hex())
	return nil
}

func (s *DriverService) publishDriverCreated(ctx context.Context, driver *domain.Driver) {
	if s.producer == nil {
		return
	}
	event := s.eventFactory.CreateDriverCreatedEvent(ctx, events.DriverCreatedData{
		Name:         driver.Name,
		CurrentShift: driver.ShiftHours,
	})
	if err := s.producer.PublishEvent(ctx, kafka.Topics.DriverEvents, event); err != nil {
		s.logger.WithError(err).Warn("failed to publish driver created event")
	}
}
