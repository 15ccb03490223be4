package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/autotrips/bid-service/internal/services"
	"github.com/autotrips/bid-service/internal/utils"

	"github.com/sirupsen/logrus"
)

// TransporterHandler - структура для обработки HTTP-запросов по перевозчикам.
type TransporterHandler struct {
	Service *services.TransporterService
	Logger  *logrus.Logger
	Timeout time.Duration
}

// NewTransporterHandler создает новый экземпляр TransporterHandler.
func NewTransporterHandler(service *services.TransporterService, logger *logrus.Logger, timeout time.Duration) *TransporterHandler {
	return &TransporterHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetTransporters обрабатывает запросы списка перевозчиков.
func (h *TransporterHandler) GetTransporters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	transporters, err := h.Service.GetTransporters(ctx)
	if err != nil {
		h.Logger.Error(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve transporters")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(transporters); err != nil {
		h.Logger.Error(err)
	}
}
