package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/autotrips/bid-service/internal/models"
	"github.com/autotrips/bid-service/internal/services"
	"github.com/autotrips/bid-service/internal/stages"
	"github.com/autotrips/bid-service/internal/utils"

	"github.com/sirupsen/logrus"
)

// Заголовок, которым формы передают тег этапа обработки.
const VehicleStatusHeader = "X-Vehicle-Status"

// BidHandler - структура для обработки HTTP-запросов по заявкам.
type BidHandler struct {
	Service *services.BidService
	Logger  *logrus.Logger
	Timeout time.Duration
}

// NewBidHandler создает новый экземпляр BidHandler.
func NewBidHandler(service *services.BidService, logger *logrus.Logger, timeout time.Duration) *BidHandler {
	return &BidHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// GetBids обрабатывает запросы списка заявок, сгруппированных по состоянию.
func (h *BidHandler) GetBids(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	statusFilter := r.URL.Query().Get("status")

	grouped, err := h.Service.GetBids(ctx, statusFilter)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Error(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve bids")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(grouped); err != nil {
		h.Logger.Error(err)
	}
}

// EditBid обрабатывает запросы изменения заявки формами этапов.
func (h *BidHandler) EditBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	bidId, err := strconv.Atoi(r.PathValue("bidId"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid bid id")
		return
	}

	stageTag := r.Header.Get(VehicleStatusHeader)
	if stageTag == "" {
		stageTag = stages.TagInitial
	}

	var patch models.BidPatch
	if err = json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updatedBid, err := h.Service.EditBid(ctx, bidId, patch, stageTag)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Error(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to update bid")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(updatedBid); err != nil {
		h.Logger.Error(err)
	}
}

// RejectBid обрабатывает запросы на отклонение заявки.
func (h *BidHandler) RejectBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	bidId, err := strconv.Atoi(r.PathValue("bidId"))
	if err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid bid id")
		return
	}

	var rejectReq models.RejectBidRequest
	if err = json.NewDecoder(r.Body).Decode(&rejectReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.RejectBid(ctx, bidId, rejectReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Error(err)
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error(err)
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to reject bid")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.Error(err)
	}
}
