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

// DriverHandler handles HTTP requests for the driver fleet
type DriverHandler struct {
	service *application.DriverService
	logger  *logging.Logger
}

// NewDriverHandler creates a new DriverHandler
func NewDriverHandler(service *application.DriverService, logger *logging.Logger) *DriverHandler {
	return &DriverHandler{
		service: service,
		logger:  logger,
	}
}

// Create handles POST /api/v1/drivers
func (h *DriverHandler) Create(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.CreateDriverCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	driver, err := h.service.Create(c.Request.Context(), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": driver})
}

// Get handles GET /api/v1/drivers/:driverId
func (h *DriverHandler) Get(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	driver, err := h.service.Get(c.Request.Context(), c.Param("driverId"))
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": driver})
}

// List handles GET /api/v1/drivers
func (h *DriverHandler) List(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	page := api.ParsePagination(c)
	drivers, total, err := h.service.List(c.Request.Context(), domain.Pagination{
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

	c.JSON(http.StatusOK, api.NewPageResponse(drivers, page.Page, page.PageSize, total))
}

// Update handles PUT /api/v1/drivers/:driverId
func (h *DriverHandler) Update(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.UpdateDriverCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	driver, err := h.service.Update(c.Request.Context(), c.Param("driverId"), cmd)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": driver})
}

// Delete handles DELETE /api/v1/drivers/:driverId
func (h *DriverHandler) Delete(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	if err := h.service.Delete(c.Request.Context(), c.Param("driverId")); err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "driver deleted"})
}
