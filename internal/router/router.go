package router

import (
	"net/http"

	"github.com/autotrips/bid-service/internal/handlers"
)

func InitRoutes(bidHandler *handlers.BidHandler, transporterHandler *handlers.TransporterHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/ping", handlers.PingHandler)

	mux.HandleFunc("GET /api/autotrips/bids", bidHandler.GetBids)
	mux.HandleFunc("PUT /api/autotrips/bids/{bidId}", bidHandler.EditBid)
	mux.HandleFunc("PUT /api/autotrips/bids/{bidId}/reject", bidHandler.RejectBid)

	mux.HandleFunc("GET /api/autotrips/transporters", transporterHandler.GetTransporters)

	return mux
}
