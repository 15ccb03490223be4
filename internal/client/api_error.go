package client

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Сообщения для пользователя.
const (
	MsgUnknownError     = "Произошла неизвестная ошибка"
	MsgNoConnection     = "Нет соединения с сервером"
	MsgWrongCredentials = "Неправильный логин или пароль"
	MsgTitleNotNotified = "Нельзя забрать тайтл без уведомления логиста"
)

// Известные строки ошибок бэкенда, переводимые целиком.
const (
	backendWrongCredentials         = "No active account found with the given credentials"
	backendTitleWithoutNotification = "Cannot take title without logistician notification"
)

// APIError представляет структурированную ошибку API
// с HTTP-кодом и декодированным телом ответа.
type APIError struct {
	StatusCode int
	Body       map[string]interface{}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// ErrorMessage извлекает из ошибки сообщение для пользователя.
// Сетевые сбои и неизвестные ошибки сводятся к фиксированным сообщениям,
// известные строки бэкенда переводятся, остальное отдается как есть.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if detail, ok := apiErr.Body["detail"].(string); ok && detail != "" {
			if strings.Contains(detail, backendWrongCredentials) {
				return MsgWrongCredentials
			}
			if strings.Contains(detail, backendTitleWithoutNotification) {
				return MsgTitleNotNotified
			}
			return detail
		}

		// Ошибки валидации приходят по ключам полей; берём первое
		// доступное сообщение в устойчивом порядке ключей.
		keys := make([]string, 0, len(apiErr.Body))
		for key := range apiErr.Body {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			switch value := apiErr.Body[key].(type) {
			case string:
				return value
			case []interface{}:
				if len(value) > 0 {
					if first, ok := value[0].(string); ok {
						return first
					}
				}
			}
		}
		return MsgUnknownError
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return MsgNoConnection
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return MsgUnknownError
}
