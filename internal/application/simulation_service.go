package application

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"

	"github.com/khushi747/greencart-logistics/internal/domain"
	"github.com/khushi747/greencart-logistics/pkg/errors"
	"github.com/khushi747/greencart-logistics/pkg/events"
	"github.com/khushi747/greencart-logistics/pkg/kafka"
	"github.com/khushi747/greencart-logistics/pkg/logging"
	"github.com/khushi747/greencart-logistics/pkg/metrics"
	"github.com/khushi747/greencart-logistics/pkg/tracing"
)

// SimulationService runs delivery simulations and manages run history
type SimulationService struct {
	simulator    *domain.Simulator
	orders       domain.OrderRepository
	routes       domain.RouteRepository
	drivers      domain.DriverRepository
	history      domain.SimulationRepository
	producer     kafka.EventPublisher
	eventFactory *events.Factory
	metrics      *metrics.Metrics
	logger       *logging.Logger
}

// NewSimulationService creates a simulation service
func NewSimulationService(
	simulator *domain.Simulator,
	orders domain.OrderRepository,
	routes domain.RouteRepository,
	drivers domain.DriverRepository,
	history domain.SimulationRepository,
	producer kafka.EventPublisher,
	eventFactory *events.Factory,
	m *metrics.Metrics,
	logger *logging.Logger,
) *SimulationService {
	return &SimulationService{
		simulator:    simulator,
		orders:       orders,
		routes:       routes,
		drivers:      drivers,
		history:      history,
		producer:     producer,
		eventFactory: eventFactory,
		metrics:      m,
		logger:       logger.WithComponent("simulation-service"),
	}
}

// Run executes a simulation over the current data set and records the
// outcome in the run history. History persistence is best effort: a
// storage failure after a successful run is logged, not returned.
func (s *SimulationService) Run(ctx context.Context, userID string, cmd RunSimulationCommand) (*domain.SimulationResults, error) {
	started := time.Now()

	params := domain.SimulationParams{
		AvailableDrivers: cmd.AvailableDrivers,
		StartTime:        cmd.StartTime,
		MaxHoursPerDay:   cmd.MaxHoursPerDay,
	}
	if err := params.Validate(); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	orders, err := s.orders.FindAllUnpaged(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load orders")
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	routes, err := s.routes.FindActive(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load routes")
		return nil, fmt.Errorf("failed to load routes: %w", err)
	}

	drivers, err := s.drivers.FindActive(ctx, params.AvailableDrivers)
	if err != nil {
		s.logger.WithError(err).Error("failed to load drivers")
		return nil, fmt.Errorf("failed to load drivers: %w", err)
	}

	inputs := domain.SimulationInputs{
		AvailableDrivers: params.AvailableDrivers,
		StartTime:        params.StartTime,
		MaxHoursPerDay:   params.MaxHoursPerDay,
		TotalOrders:      len(orders),
		TotalRoutes:      len(routes),
	}

	ctx, span := otel.Tracer("simulation-service").Start(ctx, "simulation.run")
	results, runErr := s.simulator.Run(params, orders, routes, drivers)
	if results != nil {
		span.SetAttributes(tracing.SimulationSpanAttributes(results.SimulationID, params.AvailableDrivers, len(orders))...)
	}
	span.End()

	elapsed := time.Since(started)
	executionMillis := elapsed.Milliseconds()

	if runErr != nil {
		s.recordFailure(ctx, userID, inputs, executionMillis, runErr)
		switch {
		case stderrors.Is(runErr, domain.ErrNoOrders), stderrors.Is(runErr, domain.ErrNoActiveRoutes):
			return nil, errors.ErrDataUnavailable(runErr.Error())
		default:
			return nil, errors.ErrValidation(runErr.Error())
		}
	}

	s.recordSuccess(ctx, userID, inputs, results, executionMillis)

	if s.metrics != nil {
		s.metrics.RecordSimulationRun("completed", elapsed)
		s.metrics.RecordOrdersAssigned("delivered", results.TotalDeliveries)
		if dropped := len(orders) - results.TotalDeliveries; dropped > 0 {
			s.metrics.RecordOrdersAssigned("dropped", dropped)
		}
	}

	s.logger.SimulationRun(ctx, results.SimulationID, "completed", elapsed, results.TotalDeliveries)

	return results, nil
}

// History retrieves the user's run history, newest first
func (s *SimulationService) History(ctx context.Context, userID string, pagination domain.Pagination) (*SimulationHistoryPage, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	records, total, err := s.history.FindByUser(ctx, uid, pagination)
	if err != nil {
		s.logger.WithError(err).Error("failed to load simulation history")
		return nil, fmt.Errorf("failed to load simulation history: %w", err)
	}

	totalPages := total / pagination.PageSize
	if total%pagination.PageSize > 0 {
		totalPages++
	}

	return &SimulationHistoryPage{
		Simulations: records,
		Page:        pagination.Page,
		PageSize:    pagination.PageSize,
		TotalItems:  total,
		TotalPages:  totalPages,
	}, nil
}

// Get retrieves one run owned by the user
func (s *SimulationService) Get(ctx context.Context, userID, simulationID string) (*domain.SimulationRecord, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	record, err := s.history.FindBySimulationID(ctx, simulationID, uid)
	if err != nil {
		s.logger.WithError(err).Error("failed to find simulation")
		return nil, fmt.Errorf("failed to find simulation: %w", err)
	}
	if record == nil {
		return nil, errors.ErrNotFoundWithID("simulation", simulationID)
	}

	return record, nil
}

// Delete removes one run owned by the user
func (s *SimulationService) Delete(ctx context.Context, userID, simulationID string) error {
	record, err := s.Get(ctx, userID, simulationID)
	if err != nil {
		return err
	}

	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}

	if err := s.history.Delete(ctx, record.SimulationID, uid); err != nil {
		s.logger.WithError(err).Error("failed to delete simulation")
		return fmt.Errorf("failed to delete simulation: %w", err)
	}

	s.publishEvent(ctx, kafka.Topics.SimulationEvents,
		s.eventFactory.CreateEvent(ctx, events.SimulationDeleted, "simulation/"+record.SimulationID, map[string]string{
			"simulationId": record.SimulationID,
		}))
	s.logger.Info("simulation deleted", "simulation_id", record.SimulationID)

	return nil
}

// Stats aggregates the user's run statistics with their most recent runs
func (s *SimulationService) Stats(ctx context.Context, userID string) (*SimulationStatsResponse, error) {
	uid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.history.Stats(ctx, uid)
	if err != nil {
		s.logger.WithError(err).Error("failed to aggregate simulation stats")
		return nil, fmt.Errorf("failed to aggregate simulation stats: %w", err)
	}

	recent, err := s.history.FindRecentByUser(ctx, uid, 5)
	if err != nil {
		s.logger.WithError(err).Error("failed to load recent simulations")
		return nil, fmt.Errorf("failed to load recent simulations: %w", err)
	}

	return &SimulationStatsResponse{
		Stats:             stats,
		RecentSimulations: recent,
	}, nil
}

func (s *SimulationService) recordSuccess(ctx context.Context, userID string, inputs domain.SimulationInputs, results *domain.SimulationResults, executionMillis int64) {
	if uid, err := parseUserID(userID); err == nil {
		record := domain.NewSimulationRecord(uid, inputs, results, executionMillis)
		if err := s.history.Save(ctx, record); err != nil {
			s.logger.WithError(err).Warn("failed to persist simulation record", "simulation_id", results.SimulationID)
		}
	}

	s.publishEvent(ctx, kafka.Topics.SimulationEvents,
		s.eventFactory.CreateSimulationCompletedEvent(ctx, events.SimulationCompletedData{
			SimulationID:        results.SimulationID,
			AvailableDrivers:    inputs.AvailableDrivers,
			MaxHoursPerDay:      inputs.MaxHoursPerDay,
			TotalProfit:         results.TotalProfit,
			EfficiencyScore:     results.EfficiencyScore,
			OnTimeDeliveries:    results.OnTimeDeliveries,
			LateDeliveries:      results.LateDeliveries,
			TotalDeliveries:     results.TotalDeliveries,
			ExecutionTimeMillis: executionMillis,
		}))
}

func (s *SimulationService) recordFailure(ctx context.Context, userID string, inputs domain.SimulationInputs, executionMillis int64, runErr error) {
	if s.metrics != nil {
		s.metrics.RecordSimulationRun("failed", time.Duration(executionMillis)*time.Millisecond)
	}

	if uid, err := parseUserID(userID); err == nil {
		record := domain.NewFailedSimulationRecord(uid, inputs, executionMillis)
		if err := s.history.Save(ctx, record); err != nil {
			s.logger.WithError(err).Warn("failed to persist failed simulation record")
		}
	}

	s.publishEvent(ctx, kafka.Topics.SimulationEvents,
		s.eventFactory.CreateSimulationFailedEvent(ctx, events.SimulationFailedData{
			Reason: runErr.Error(),
		}))
}

func (s *SimulationService) publishEvent(ctx context.Context, topic string, event *events.CloudEvent) {
	if s.producer == nil {
		return
	}
	if err := s.producer.PublishEvent(ctx, topic, event); err != nil {
		s.logger.WithError(err).Warn("failed to publish simulation event", "event_type", event.Type)
	}
}

func parseUserID(userID string) (primitive.ObjectID, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, errors.ErrUnauthorized("invalid user identity")
	}
	return uid, nil
}
