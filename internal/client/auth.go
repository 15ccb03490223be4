package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/autotrips/bid-service/internal/models"
)

// AuthAPI - HTTP-клиент сервиса авторизации.
type AuthAPI struct {
	api *API
}

// NewAuthAPI создает новый экземпляр AuthAPI.
func NewAuthAPI(baseURL string, httpClient *http.Client) *AuthAPI {
	return &AuthAPI{api: New(baseURL, httpClient)}
}

// Login обменивает логин и пароль на пару токенов.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	body := map[string]string{"email": email, "password": password}
	var pair models.TokenPair
	if err := a.api.do(ctx, http.MethodPost, "/api/auth/jwt/create", nil, body, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Verify проверяет действительность access-токена.
func (a *AuthAPI) Verify(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	return a.api.do(ctx, http.MethodPost, "/api/auth/jwt/verify", nil, body, nil)
}

// TokenClaims представляет полезную нагрузку access-токена.
type TokenClaims struct {
	Role string `json:"role"`
}

// DecodeToken извлекает полезную нагрузку токена без проверки подписи.
// Подпись проверяет сервис авторизации, клиенту нужна только роль.
func DecodeToken(token string) (*TokenClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("malformed token")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("malformed token payload: %v", err)
	}

	var claims TokenClaims
	if err = json.Unmarshal(payload, &claims); err != nil {
		return nil, err
	}
	return &claims, nil
}
