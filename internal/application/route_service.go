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

// RouteService handles route catalog management
type RouteService struct {
	routes       domain.RouteRepository
	producer     kafka.EventPublisher
	eventFactory *events.Factory
	metrics      *metrics.Metrics
	logger       *logging.Logger
}

// NewRouteService creates a route service
func NewRouteService(
	routes domain.RouteRepository,
	producer kafka.EventPublisher,
	eventFactory *events.Factory,
	m *metrics.Metrics,
	logger *logging.Logger,
) *RouteService {
	return &RouteService{
		routes:       routes,
		producer:     producer,
		eventFactory: eventFactory,
		metrics:      m,
		logger:       logger.WithComponent("route-service"),
	}
}

// Create registers a new route
func (s *RouteService) Create(ctx context.Context, cmd CreateRouteCommand) (*domain.Route, error) {
	existing, err := s.routes.FindByRouteID(ctx, cmd.RouteID)
	if err != nil {
		s.logger.WithError(err).Error("failed to look up route")
		return nil, fmt.Errorf("failed to look up route: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("route %d already exists", cmd.RouteID))
	}

	route, err := domain.NewRoute(cmd.RouteID, cmd.DistanceKm, domain.TrafficLevel(cmd.TrafficLevel), cmd.BaseTimeMin)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.routes.Save(ctx, route); err != nil {
		s.logger.WithError(err).Error("failed to save route")
		return nil, fmt.Errorf("failed to save route: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordRecordCreated("route")
	}
	s.publishRouteCreated(ctx, route)
	s.logger.Info("route created", "route_id", route.RouteID)

	return route, nil
}

// Get retrieves a route by id
func (s *RouteService) Get(ctx context.Context, id string) (*domain.Route, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.ErrValidation("invalid route id")
	}

	route, err := s.routes.FindByID(ctx, objectID)
	if err != nil {
		s.logger.WithError(err).Error("failed to find route")
		return nil, fmt.Errorf("failed to find route: %w", err)
	}
	if route == nil {
		return nil, errors.ErrNotFoundWithID("route", id)
	}

	return route, nil
}

// List retrieves routes, paginated
func (s *RouteService) List(ctx context.Context, pagination domain.Pagination) ([]*domain.Route, int64, error) {
	routes, total, err := s.routes.FindAll(ctx, pagination)
	if err != nil {
		s.logger.WithError(err).Error("failed to list routes")
		return nil, 0, fmt.Errorf("failed to list routes: %w", err)
	}
	return routes, total, nil
}

// Update modifies an existing route
func (s *RouteService) Update(ctx context.Context, id string, cmd UpdateRouteCommand) (*domain.Route, error) {
	route, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.DistanceKm != nil {
		if *cmd.DistanceKm <= 0 {
			return nil, errors.ErrValidation(domain.ErrInvalidDistance.Error())
		}
		route.DistanceKm = *cmd.DistanceKm
	}
	if cmd.TrafficLevel != nil {
		level := domain.TrafficLevel(*cmd.TrafficLevel)
		if !level.IsValid() {
			return nil, errors.ErrValidation(domain.ErrInvalidTrafficLevel.Error())
		}
		route.TrafficLevel = level
	}
	if cmd.BaseTimeMin != nil {
		if *cmd.BaseTimeMin <= 0 {
			return nil, errors.ErrValidation(domain.ErrInvalidBaseTime.Error())
		}
		route.BaseTimeMin = *cmd.BaseTimeMin
	}
	if cmd.IsActive != nil {
		route.IsActive = *cmd.IsActive
	}

	if err := s.routes.Update(ctx, route); err != nil {
		s.logger.WithError(err).Error("failed to update route")
		return nil, fmt.Errorf("failed to update route: %w", err)
	}

	s.logger.Info("route updated", "route_id", route.RouteID)
	return route, nil
}

// Delete removes a route
func (s *RouteService) Delete(ctx context.Context, id string) error {
	route, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.routes.Delete(ctx, route.ID); err != nil {
		s.logger.WithError(err).Error("failed to delete route")
		return fmt.Errorf("failed to delete route: %w", err)
	}

	s.logger.Info("route deleted", "route_id", route.RouteID)
	return nil
}

func (s *RouteService) publishRouteCreated(ctx context.Context, route *domain.Route) {
	if s.producer == nil {
		return
	}
	event := s.eventFactory.CreateRouteCreatedEvent(ctx, events.RouteCreatedData{
		RouteID:      route.RouteID,
		DistanceKm:   route.DistanceKm,
		TrafficLevel: string(route.TrafficLevel),
		BaseTimeMin:  route.BaseTimeMin,
	})
	if err := s.producer.PublishEvent(ctx, kafka.Topics.RouteEvents, event); err != nil {
		s.logger.WithError(err).Warn("failed to publish route created event")
	}
}
