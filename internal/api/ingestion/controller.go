package ingestion

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pulseboard/data-ingestor/internal/types"
	"github.com/pulseboard/data-ingestor/internal/utils"
	"go.uber.org/zap"
)

// Controller handles HTTP requests for ingestion
type Controller struct {
	service *Service
}

// NewController creates a new ingestion controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// IngestCustomers godoc
// @Summary Ingest customer data
// @Description Validates a third-party customer payload and upserts it into the customers collection
// @Tags ingestion
// @Accept json
// @Produce json
// @Success 200 {object} types.IngestResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /ingest/customers [post]
func (ctrl *Controller) IngestCustomers(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.Zlog.Error("Failed to read customer ingestion body", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Message: "An unexpected error occurred during request processing. Please check server logs.",
		})
		return
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Message: "Invalid JSON payload. Please ensure the request body is correctly formatted JSON.",
		})
		return
	}

	record, verrs := ValidateCustomer(payload)
	if len(verrs) > 0 {
		utils.Zlog.Info("Customer payload rejected",
			zap.Int("errorCount", len(verrs)))
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Message: "Invalid request payload.",
			Errors:  verrs,
		})
		return
	}

	if err := ctrl.service.SaveCustomer(c.Request.Context(), record); err != nil {
		// Storage detail stays server-side; the caller gets a generic message.
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Message: "Database operation failed. Please check server logs.",
		})
		return
	}

	c.JSON(http.StatusOK, types.IngestResponse{
		Message: fmt.Sprintf("Customer data received and saved for customer ID %s.", record.ID),
		Data:    record,
	})
}

// IngestOrders godoc
// @Summary Ingest order data
// @Description Validates a third-party order payload and acknowledges it; order persistence is not wired up yet
// @Tags ingestion
// @Accept json
// @Produce json
// @Success 200 {object} types.IngestResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 500 {object} types.ErrorResponse
// @Router /ingest/orders [post]
func (ctrl *Controller) IngestOrders(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.Zlog.Error("Failed to read order ingestion body", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Message: "Internal server error.",
		})
		return
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Message: "Invalid JSON payload.",
		})
		return
	}

	record, verrs := ValidateOrder(payload)
	if len(verrs) > 0 {
		utils.Zlog.Info("Order payload rejected",
			zap.Int("errorCount", len(verrs)))
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Message: "Invalid request payload.",
			Errors:  verrs,
		})
		return
	}

	ctrl.service.AcknowledgeOrder(record)

	c.JSON(http.StatusOK, types.IngestResponse{
		Message: fmt.Sprintf("Order data received for order ID %s.", record.ID),
		Data:    record,
	})
}
