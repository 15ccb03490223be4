package models

// ErrorResponse описывает ошибку сервиса с HTTP-кодом и сообщением.
// Поле сообщения сериализуется как detail, в формате DRF-бэкенда.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"detail"`
}

// NewErrorResponse создает ошибку с кодом и сообщением.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}
