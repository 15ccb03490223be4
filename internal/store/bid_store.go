package store

import (
	"context"
	"sync"

	"github.com/autotrips/bid-service/internal/client"
	"github.com/autotrips/bid-service/internal/models"
	"github.com/autotrips/bid-service/internal/stages"

	"github.com/sirupsen/logrus"
)

// Severity - уровень уведомления для пользователя.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Notifier показывает уведомления пользователю. Хранилище уведомляет
// о каждой завершённой операции, успешной или нет.
type Notifier interface {
	ShowNotification(message string, severity Severity)
}

// BidAPI - операции бэкенда, которыми хранилище сохраняет изменения.
type BidAPI interface {
	GetBids(ctx context.Context, status string) (*models.BidListResponse, error)
	ChangeBid(ctx context.Context, id int, patch models.BidPatch, stageTag string) (*models.Bid, error)
	RejectBid(ctx context.Context, id int, req models.RejectBidRequest) (*models.RejectBidResponse, error)
}

// Snapshot - неизменяемый срез состояния хранилища.
type Snapshot struct {
	Bid        *models.Bid
	BidError   string
	IsLoading  bool
	Untouched  []models.Bid
	InProgress []models.Bid
	Completed  []models.Bid
}

// BidStore хранит заявки, разложенные по трём спискам обработки,
// текущую заявку и последнюю ошибку. Все изменения проходят через
// бэкенд, после чего заявка перемещается между списками.
type BidStore struct {
	api      BidAPI
	notifier Notifier
	logger   *logrus.Logger

	mu          sync.Mutex
	bid         *models.Bid
	bidError    string
	isLoading   bool
	buckets     Buckets
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

// NewBidStore создает новый экземпляр BidStore.
// Хранилище конструируется один раз при старте приложения.
func NewBidStore(api BidAPI, notifier Notifier, logger *logrus.Logger) *BidStore {
	return &BidStore{
		api:         api,
		notifier:    notifier,
		logger:      logger,
		subscribers: make(map[int]func(Snapshot)),
	}
}

// Snapshot возвращает копию текущего состояния.
func (s *BidStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *BidStore) snapshotLocked() Snapshot {
	var bid *models.Bid
	if s.bid != nil {
		copied := *s.bid
		bid = &copied
	}
	cloned := s.buckets.clone()
	return Snapshot{
		Bid:        bid,
		BidError:   s.bidError,
		IsLoading:  s.isLoading,
		Untouched:  cloned.Untouched,
		InProgress: cloned.InProgress,
		Completed:  cloned.Completed,
	}
}

// Subscribe регистрирует подписчика на изменения состояния
// и возвращает функцию отписки.
func (s *BidStore) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// publishLocked снимает срез состояния и список подписчиков под блокировкой,
// сами колбэки вызываются после её снятия.
func (s *BidStore) publishLocked() func() {
	snapshot := s.snapshotLocked()
	fns := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	return func() {
		for _, fn := range fns {
			fn(snapshot)
		}
	}
}

// SetBid устанавливает текущую заявку для просмотра и редактирования.
func (s *BidStore) SetBid(bid *models.Bid) {
	s.mu.Lock()
	if bid != nil {
		copied := *bid
		s.bid = &copied
	} else {
		s.bid = nil
	}
	publish := s.publishLocked()
	s.mu.Unlock()
	publish()
}

// ClearError сбрасывает последнюю ошибку. Формы вызывают его
// после показа уведомления.
func (s *BidStore) ClearError() {
	s.mu.Lock()
	s.bidError = ""
	publish := s.publishLocked()
	s.mu.Unlock()
	publish()
}

// FetchBids загружает заявки и целиком заменяет списки.
// Если ответ не содержит completed, этот список остаётся прежним.
// При ошибке загрузки все три списка очищаются.
func (s *BidStore) FetchBids(ctx context.Context, status string) {
	s.mu.Lock()
	s.isLoading = true
	publish := s.publishLocked()
	s.mu.Unlock()
	publish()

	resp, err := s.api.GetBids(ctx, status)

	s.mu.Lock()
	s.isLoading = false
	if err != nil {
		message := client.ErrorMessage(err)
		s.bidError = message
		s.buckets = Buckets{}
		publish = s.publishLocked()
		s.mu.Unlock()
		publish()
		s.logger.WithField("status", status).Error(err)
		s.notifier.ShowNotification(message, SeverityError)
		return
	}

	s.buckets.Untouched = append([]models.Bid(nil), resp.Untouched...)
	s.buckets.InProgress = append([]models.Bid(nil), resp.InProgress...)
	if resp.Completed != nil {
		s.buckets.Completed = append([]models.Bid(nil), resp.Completed...)
	}
	publish = s.publishLocked()
	s.mu.Unlock()
	publish()
	s.notifier.ShowNotification("Заявки загружены", SeveritySuccess)
}

// UpdateBid сохраняет патч формы и перемещает заявку между untouched
// и in_progress. Возвращает признак успеха; ошибка сохраняется в состоянии.
func (s *BidStore) UpdateBid(ctx context.Context, id int, patch models.BidPatch, inProgressCondition bool, stageTag string) bool {
	return s.applyUpdate(ctx, id, patch, inProgressCondition, false, stageTag)
}

// UpdateExpandedBid - то же, что UpdateBid, но с условием завершения:
// этапы тайтла, реэкспорта и приёмки могут довести заявку до completed.
func (s *BidStore) UpdateExpandedBid(ctx context.Context, id int, patch models.BidPatch, inProgressCondition, completedCondition bool, stageTag string) bool {
	return s.applyUpdate(ctx, id, patch, inProgressCondition, completedCondition, stageTag)
}

// UpdateTitleBid сохраняет форму тайтл-менеджера, вычисляя условия
// перехода из её полей.
func (s *BidStore) UpdateTitleBid(ctx context.Context, id int, patch models.BidPatch) bool {
	notified := patch.Bool("notified_logistician_by_title")
	took := models.TookTitle(patch.String("took_title"))
	completed := notified &&
		(took == models.TookTitleYes || took == models.TookTitleConsignment)
	return s.UpdateExpandedBid(ctx, id, patch, notified, completed, stages.TagTitle)
}

// Submit - единая точка отправки формы: этап выбирается по роли,
// условия перехода вычисляются по заявке с наложенным патчем.
func (s *BidStore) Submit(ctx context.Context, role stages.Role, id int, patch models.BidPatch) bool {
	stage, ok := stages.ForRole(role)
	if !ok {
		s.mu.Lock()
		s.bidError = "Роль не участвует в обработке заявок"
		publish := s.publishLocked()
		s.mu.Unlock()
		publish()
		s.notifier.ShowNotification(s.Snapshot().BidError, SeverityError)
		return false
	}

	s.mu.Lock()
	current := models.Bid{ID: id}
	for _, list := range [][]models.Bid{s.buckets.Untouched, s.buckets.InProgress, s.buckets.Completed} {
		for _, bid := range list {
			if bid.ID == id {
				current = bid
			}
		}
	}
	s.mu.Unlock()

	merged := patch.ApplyTo(current)
	inProgress, completed := stage.Conditions(merged)
	if !stage.Expanded {
		return s.UpdateBid(ctx, id, patch, inProgress, stage.Tag)
	}
	return s.UpdateExpandedBid(ctx, id, patch, inProgress, completed, stage.Tag)
}

func (s *BidStore) applyUpdate(ctx context.Context, id int, patch models.BidPatch, inProgressCondition, completedCondition bool, stageTag string) bool {
	s.mu.Lock()
	s.bidError = ""
	s.mu.Unlock()

	updated, err := s.api.ChangeBid(ctx, id, patch, stageTag)
	if err != nil {
		s.recordError(err)
		return false
	}

	// Сервер вычисляет идентификатор перевозчика, клиент подхватывает
	// его из ответа вместе с полями патча.
	applied := patch
	if updated != nil && updated.VehicleTransporter != nil {
		applied = make(models.BidPatch, len(patch)+1)
		for key, value := range patch {
			applied[key] = value
		}
		applied["vehicle_transporter"] = *updated.VehicleTransporter
	}

	s.mu.Lock()
	s.buckets = Relocate(s.buckets, id, applied, inProgressCondition, completedCondition)
	publish := s.publishLocked()
	s.mu.Unlock()
	publish()
	s.notifier.ShowNotification("Заявка обновлена", SeveritySuccess)
	return true
}

// RejectBid отклоняет заявку. Список, из которого она убирается,
// определяется полем transit_method ответа сервера.
func (s *BidStore) RejectBid(ctx context.Context, id int, comment string) bool {
	s.mu.Lock()
	s.bidError = ""
	s.mu.Unlock()

	resp, err := s.api.RejectBid(ctx, id, models.RejectBidRequest{Comment: comment})
	if err != nil {
		s.recordError(err)
		return false
	}

	s.mu.Lock()
	if resp.TransitMethod != nil {
		s.buckets.InProgress = removeBid(s.buckets.InProgress, id)
	} else {
		s.buckets.Untouched = removeBid(s.buckets.Untouched, id)
	}
	publish := s.publishLocked()
	s.mu.Unlock()
	publish()
	s.notifier.ShowNotification("Заявка отклонена", SeveritySuccess)
	return true
}

func (s *BidStore) recordError(err error) {
	message := client.ErrorMessage(err)
	s.mu.Lock()
	s.bidError = message
	publish := s.publishLocked()
	s.mu.Unlock()
	publish()
	s.logger.Error(err)
	s.notifier.ShowNotification(message, SeverityError)
}
