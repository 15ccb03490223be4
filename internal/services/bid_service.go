package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/autotrips/bid-service/internal/models"
	"github.com/autotrips/bid-service/internal/repository"
	"github.com/autotrips/bid-service/internal/stages"
	"github.com/autotrips/bid-service/internal/utils"

	"github.com/jackc/pgx/v5"
)

// Известные сообщения бизнес-ошибок. Клиент переводит их для пользователя.
const MsgTitleWithoutNotification = "Cannot take title without logistician notification"

type BidService struct {
	Repo         repository.BidRepository
	Transporters repository.TransporterRepository
}

// NewBidService создает новый экземпляр BidService.
func NewBidService(repo repository.BidRepository, transporters repository.TransporterRepository) *BidService {
	return &BidService{Repo: repo, Transporters: transporters}
}

// GetBids получает заявки, сгруппированные по состоянию обработки.
// Без фильтра по статусу список completed в ответ не включается.
func (s *BidService) GetBids(ctx context.Context, statusFilter string) (*models.BidListResponse, error) {
	validFilters := []string{repository.StateUntouched, repository.StateInProgress, repository.StateCompleted}
	if statusFilter != "" && !utils.ContainsState(validFilters, statusFilter) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "invalid status filter")
	}

	grouped, err := s.Repo.ListGrouped(ctx)
	if err != nil {
		return nil, err
	}
	if statusFilter == "" {
		grouped.Completed = nil
	}
	return grouped, nil
}

// EditBid применяет патч формы к заявке. Тег этапа выбирает путь валидации,
// новое состояние списка вычисляется по бизнес-условиям этапа.
func (s *BidService) EditBid(ctx context.Context, bidId int, patch models.BidPatch, stageTag string) (*models.Bid, error) {
	if len(patch) == 0 {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "empty update payload")
	}

	stage, ok := stages.ForTag(stageTag)
	if !ok {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "unknown vehicle status tag")
	}

	current, err := s.Repo.GetBid(ctx, bidId)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "bid not found")
		}
		return nil, err
	}

	if name := patch.String("transporter"); name != "" {
		transporter, err := s.Transporters.GetTransporterByName(ctx, name)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, models.NewErrorResponse(http.StatusBadRequest, "unknown transporter")
			}
			return nil, err
		}
		patch["vehicle_transporter"] = transporter.ID
	}

	merged := patch.ApplyTo(*current)

	if stage.Tag == stages.TagTitle {
		took := models.TookTitle(valueOf(merged.TookTitle))
		if (took == models.TookTitleYes || took == models.TookTitleConsignment) &&
			!merged.NotifiedLogisticianByTitle {
			return nil, models.NewErrorResponse(http.StatusBadRequest, MsgTitleWithoutNotification)
		}
	}

	inProgress, completed := stage.Conditions(merged)
	listState := repository.StateUntouched
	switch {
	case inProgress && completed:
		listState = repository.StateCompleted
	case inProgress:
		listState = repository.StateInProgress
	}

	return s.Repo.EditBid(ctx, bidId, patch, listState)
}

// RejectBid отклоняет заявку с указанием причины.
func (s *BidService) RejectBid(ctx context.Context, bidId int, req models.RejectBidRequest) (*models.RejectBidResponse, error) {
	if req.Comment == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "rejection comment is required")
	}

	resp, err := s.Repo.RejectBid(ctx, bidId, req.Comment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewErrorResponse(http.StatusNotFound, "bid not found")
		}
		return nil, err
	}
	return resp, nil
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
