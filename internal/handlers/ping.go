package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/autotrips/bid-service/internal/utils"
)

// PingHandler отвечает на проверку доступности сервиса.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		utils.SendErrorResponse(w, http.StatusMethodNotAllowed, "only GET is allowed")
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(w, "pong"); err != nil {
		log.Println(err)
	}
}
