package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/autotrips/bid-service/internal/models"
)

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Println(err)
	}
}

// ContainsState - функция для проверки допустимости состояния списка
func ContainsState(validStates []string, state string) bool {
	for _, validState := range validStates {
		if validState == state {
			return true
		}
	}
	return false
}
