package store

import (
	"context"
	"errors"
	"sync"

	"github.com/autotrips/bid-service/internal/client"
	"github.com/autotrips/bid-service/internal/models"
	"github.com/autotrips/bid-service/internal/stages"
)

// Сообщение при попытке входа с ролью вне списка допущенных.
const msgRoleNotApproved = "Пользователь с данной ролью не может авторизоваться"

// Роли, которым разрешён вход в бэк-офис.
var approvedRoles = map[stages.Role]bool{
	stages.Logistician:    true,
	stages.OpeningManager: true,
	stages.Title:          true,
	stages.Inspector:      true,
	stages.ReExport:       true,
	stages.Reciever:       true,
}

// AuthSession - операции сервиса авторизации.
type AuthSession interface {
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Verify(ctx context.Context, token string) error
}

// AuthStore хранит состояние сессии: признак авторизации, роль
// и последнюю ошибку входа.
type AuthStore struct {
	api AuthSession

	mu        sync.Mutex
	isAuth    bool
	role      stages.Role
	authError string
	tokens    *models.TokenPair
}

// NewAuthStore создает новый экземпляр AuthStore.
func NewAuthStore(api AuthSession) *AuthStore {
	return &AuthStore{api: api}
}

// Login выполняет вход. В отличие от операций с заявками
// ошибка и сохраняется в состоянии, и возвращается вызывающему.
func (s *AuthStore) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	s.mu.Lock()
	s.authError = ""
	s.mu.Unlock()

	pair, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.mu.Lock()
		s.authError = client.ErrorMessage(err)
		s.mu.Unlock()
		return nil, err
	}

	claims, err := client.DecodeToken(pair.Access)
	if err != nil {
		s.mu.Lock()
		s.authError = client.MsgUnknownError
		s.mu.Unlock()
		return nil, err
	}

	role := stages.Role(claims.Role)
	if !approvedRoles[role] {
		s.mu.Lock()
		s.isAuth = false
		s.role = ""
		s.tokens = nil
		s.authError = msgRoleNotApproved
		s.mu.Unlock()
		return nil, errors.New(msgRoleNotApproved)
	}

	s.mu.Lock()
	s.isAuth = true
	s.role = role
	s.tokens = pair
	s.mu.Unlock()
	return pair, nil
}

// Verify проверяет сохранённый access-токен и восстанавливает роль.
func (s *AuthStore) Verify(ctx context.Context, accessToken string) bool {
	if err := s.api.Verify(ctx, accessToken); err != nil {
		s.Logout()
		return false
	}

	claims, err := client.DecodeToken(accessToken)
	if err != nil {
		s.Logout()
		return false
	}

	role := stages.Role(claims.Role)
	if !approvedRoles[role] {
		s.mu.Lock()
		s.isAuth = false
		s.role = ""
		s.authError = msgRoleNotApproved
		s.mu.Unlock()
		return false
	}

	s.mu.Lock()
	s.isAuth = true
	s.role = role
	s.authError = ""
	s.mu.Unlock()
	return true
}

// Logout сбрасывает сессию.
func (s *AuthStore) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isAuth = false
	s.role = ""
	s.authError = ""
	s.tokens = nil
}

// IsAuth сообщает, авторизован ли пользователь.
func (s *AuthStore) IsAuth() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAuth
}

// Role возвращает роль текущего пользователя.
func (s *AuthStore) Role() stages.Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// Error возвращает последнюю ошибку входа.
func (s *AuthStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authError
}
