package store

import (
	"context"
	"sync"

	"github.com/autotrips/bid-service/internal/client"
	"github.com/autotrips/bid-service/internal/models"
)

// TransporterAPI - операция бэкенда для списка перевозчиков.
type TransporterAPI interface {
	GetTransporters(ctx context.Context) ([]models.Transporter, error)
}

// TransporterStore хранит справочник перевозчиков для форм логиста.
type TransporterStore struct {
	api TransporterAPI

	mu           sync.Mutex
	transporters []models.Transporter
	isLoading    bool
	lastError    string
}

// NewTransporterStore создает новый экземпляр TransporterStore.
func NewTransporterStore(api TransporterAPI) *TransporterStore {
	return &TransporterStore{api: api}
}

// FetchTransporters загружает список перевозчиков.
// При ошибке список очищается, сообщение сохраняется.
func (s *TransporterStore) FetchTransporters(ctx context.Context) {
	s.mu.Lock()
	s.isLoading = true
	s.mu.Unlock()

	transporters, err := s.api.GetTransporters(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.isLoading = false
	if err != nil {
		s.lastError = client.ErrorMessage(err)
		s.transporters = nil
		return
	}
	s.transporters = transporters
}

// Transporters возвращает копию списка перевозчиков.
func (s *TransporterStore) Transporters() []models.Transporter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Transporter(nil), s.transporters...)
}

// Error возвращает последнюю ошибку загрузки.
func (s *TransporterStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// IsLoading сообщает, идёт ли загрузка.
func (s *TransporterStore) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}
