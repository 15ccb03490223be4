package services

import (
	"context"

	"github.com/autotrips/bid-service/internal/models"
	"github.com/autotrips/bid-service/internal/repository"
)

type TransporterService struct {
	Repo repository.TransporterRepository
}

// NewTransporterService создает новый экземпляр TransporterService.
func NewTransporterService(repo repository.TransporterRepository) *TransporterService {
	return &TransporterService{Repo: repo}
}

// GetTransporters получает список перевозчиков.
func (s *TransporterService) GetTransporters(ctx context.Context) ([]models.Transporter, error) {
	transporters, err := s.Repo.GetTransporters(ctx)
	if err != nil {
		return nil, err
	}
	if transporters == nil {
		transporters = []models.Transporter{}
	}
	return transporters, nil
}
