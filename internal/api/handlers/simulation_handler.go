package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khushi747/greencart-logistics/internal/application"
	"github.com/khushi747/greencart-logistics/internal/domain"
	"github.com/khushi747/greencart-logistics/pkg/api"
	"github.com/khushi747/greencart-logistics/pkg/errors"
	"github.com/khushi747/greencart-logistics/pkg/logging"
	"github.com/khushi747/greencart-logistics/pkg/middleware"
)

// SimulationHandler handles HTTP requests for simulation runs
type SimulationHandler struct {
	service *application.SimulationService
	logger  *logging.Logger
}

// NewSimulationHandler creates a new SimulationHandler
func NewSimulationHandler(service *application.SimulationService, logger *logging.Logger) *SimulationHandler {
	return &SimulationHandler{
		service: service,
		logger:  logger,
	}
}

// Run handles POST /api/v1/simulation/run. The endpoint is usable
// anonymously; runs are only recorded in history when the caller is
// authenticated.
func (h *SimulationHandler) Run(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.RunSimulationCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	middleware.AddSpanAttributes(c, map[string]interface{}{
		"simulation.available_drivers": cmd.AvailableDrivers,
		"simulation.max_hours_per_day": cmd.MaxHoursPerDay,
	})

	results, err := h.service.Run(c.Request.Context(), middleware.GetUserID(c), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": results})
}

// History handles GET /api/v1/simulation/history
func (h *SimulationHandler) History(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	page := api.ParsePagination(c)
	result, err := h.service.History(c.Request.Context(), middleware.GetUserID(c), domain.Pagination{
		Page:     page.Page,
		PageSize: page.PageSize,
	})
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// Stats handles GET /api/v1/simulation/stats
func (h *SimulationHandler) Stats(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.Stats(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// Get handles GET /api/v1/simulation/:simulationId
func (h *SimulationHandler) Get(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	record, err := h.service.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("simulationId"))
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": record})
}

// Delete handles DELETE /api/v1/simulation/:simulationId
func (h *SimulationHandler) Delete(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	if err := h.service.Delete(c.Request.Context(), middleware.GetUserID(c), c.Param("simulationId")); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "simulation deleted"})
}
