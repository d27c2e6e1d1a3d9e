package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khushi747/greencart-logistics/internal/application"
	"github.com/khushi747/greencart-logistics/pkg/errors"
	"github.com/khushi747/greencart-logistics/pkg/logging"
	"github.com/khushi747/greencart-logistics/pkg/middleware"
)

// DashboardHandler handles HTTP requests for the KPI dashboard
type DashboardHandler struct {
	service *application.DashboardService
	logger  *logging.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service *application.DashboardService, logger *logging.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
	}
}

// Get handles GET /api/v1/dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.GetDashboard(c.Request.Context())
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			responder.RespondWithAppError(appErr)
		} else {
			responder.RespondInternalError(err)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
