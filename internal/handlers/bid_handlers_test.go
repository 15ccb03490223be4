package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/autotrips/bid-service/internal/client"
	"github.com/autotrips/bid-service/internal/handlers"
	"github.com/autotrips/bid-service/internal/models"
	"github.com/autotrips/bid-service/internal/router"
	"github.com/autotrips/bid-service/internal/services"
	"github.com/autotrips/bid-service/internal/stages"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

type memoryBidRepo struct {
	bids   map[int]*models.Bid
	states map[int]string
}

func (m *memoryBidRepo) GetBid(ctx context.Context, bidId int) (*models.Bid, error) {
	bid, ok := m.bids[bidId]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *bid
	return &copied, nil
}

func (m *memoryBidRepo) ListGrouped(ctx context.Context) (*models.BidListResponse, error) {
	grouped := models.BidListResponse{
		Untouched:  []models.Bid{},
		InProgress: []models.Bid{},
		Completed:  []models.Bid{},
	}
	for id, bid := range m.bids {
		switch m.states[id] {
		case "in_progress":
			grouped.InProgress = append(grouped.InProgress, *bid)
		case "completed":
			grouped.Completed = append(grouped.Completed, *bid)
		case "rejected":
		default:
			grouped.Untouched = append(grouped.Untouched, *bid)
		}
	}
	return &grouped, nil
}

func (m *memoryBidRepo) EditBid(ctx context.Context, bidId int, updateFields models.BidPatch, listState string) (*models.Bid, error) {
	bid, ok := m.bids[bidId]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	merged := updateFields.ApplyTo(*bid)
	m.bids[bidId] = &merged
	m.states[bidId] = listState
	return &merged, nil
}

func (m *memoryBidRepo) RejectBid(ctx context.Context, bidId int, comment string) (*models.RejectBidResponse, error) {
	bid, ok := m.bids[bidId]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	m.states[bidId] = "rejected"
	return &models.RejectBidResponse{TransitMethod: bid.TransitMethod}, nil
}

type memoryTransporterRepo struct {
	transporters []models.Transporter
}

func (m *memoryTransporterRepo) GetTransporters(ctx context.Context) ([]models.Transporter, error) {
	return m.transporters, nil
}

func (m *memoryTransporterRepo) GetTransporterByName(ctx context.Context, name string) (*models.Transporter, error) {
	for _, t := range m.transporters {
		if t.Name == name {
			copied := t
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func newTestServer(bids ...*models.Bid) *httptest.Server {
	bidRepo := &memoryBidRepo{bids: make(map[int]*models.Bid), states: make(map[int]string)}
	for _, bid := range bids {
		bidRepo.bids[bid.ID] = bid
	}
	transporterRepo := &memoryTransporterRepo{
		transporters: []models.Transporter{{ID: 42, Name: "FastCar", Phone: "+995555000000"}},
	}

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	bidHandler := handlers.NewBidHandler(services.NewBidService(bidRepo, transporterRepo), logger, time.Second)
	transporterHandler := handlers.NewTransporterHandler(services.NewTransporterService(transporterRepo), logger, time.Second)

	return httptest.NewServer(router.InitRoutes(bidHandler, transporterHandler))
}

func TestGetBidsEndpoint(t *testing.T) {
	server := newTestServer(&models.Bid{ID: 1})
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/autotrips/bids")
	if err != nil {
		t.Fatalf("GET bids: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body map[string]json.RawMessage
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body["untouched"]; !ok {
		t.Error("untouched key missing")
	}
	if _, ok := body["completed"]; ok {
		t.Error("completed key present without a status filter")
	}
}

func TestEditBidEndpoint_MovesBidThroughWorkflow(t *testing.T) {
	server := newTestServer(&models.Bid{ID: 1})
	defer server.Close()

	api := client.New(server.URL, server.Client())

	updated, err := api.ChangeBid(context.Background(), 1,
		models.BidPatch{"transit_method": "t1", "transporter": "FastCar"}, stages.TagInitial)
	if err != nil {
		t.Fatalf("ChangeBid: %v", err)
	}
	if updated.TransitMethod == nil || *updated.TransitMethod != "t1" {
		t.Errorf("transit_method = %v", updated.TransitMethod)
	}
	if updated.VehicleTransporter == nil || *updated.VehicleTransporter != 42 {
		t.Errorf("vehicle_transporter = %v, want 42", updated.VehicleTransporter)
	}

	grouped, err := api.GetBids(context.Background(), "")
	if err != nil {
		t.Fatalf("GetBids: %v", err)
	}
	if len(grouped.InProgress) != 1 || len(grouped.Untouched) != 0 {
		t.Errorf("grouping after edit: untouched=%d in_progress=%d",
			len(grouped.Untouched), len(grouped.InProgress))
	}
}

func TestEditBidEndpoint_TitleValidation(t *testing.T) {
	server := newTestServer(&models.Bid{ID: 1})
	defer server.Close()

	api := client.New(server.URL, server.Client())
	_, err := api.ChangeBid(context.Background(), 1, models.BidPatch{"took_title": "yes"}, stages.TagTitle)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := client.ErrorMessage(err); got != client.MsgTitleNotNotified {
		t.Errorf("message = %q, want translated title error", got)
	}
}

func TestEditBidEndpoint_InvalidID(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	req, _ := http.NewRequest(http.MethodPut, server.URL+"/api/autotrips/bids/abc", strings.NewReader(`{}`))
	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRejectBidEndpoint(t *testing.T) {
	method := "t1"
	server := newTestServer(&models.Bid{ID: 1, TransitMethod: &method})
	defer server.Close()

	api := client.New(server.URL, server.Client())
	resp, err := api.RejectBid(context.Background(), 1, models.RejectBidRequest{Comment: "duplicate"})
	if err != nil {
		t.Fatalf("RejectBid: %v", err)
	}
	if resp.TransitMethod == nil || *resp.TransitMethod != "t1" {
		t.Errorf("transit_method = %v", resp.TransitMethod)
	}

	grouped, err := api.GetBids(context.Background(), "")
	if err != nil {
		t.Fatalf("GetBids: %v", err)
	}
	if len(grouped.Untouched)+len(grouped.InProgress) != 0 {
		t.Error("rejected bid still listed")
	}
}

func TestTransportersEndpoint(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	api := client.New(server.URL, server.Client())
	transporters, err := api.GetTransporters(context.Background())
	if err != nil {
		t.Fatalf("GetTransporters: %v", err)
	}
	if len(transporters) != 1 || transporters[0].Name != "FastCar" {
		t.Errorf("transporters = %+v", transporters)
	}
}

func TestPingEndpoint(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/ping")
	if err != nil {
		t.Fatalf("GET ping: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "pong" {
		t.Errorf("body = %q, want pong", body)
	}

	postResp, err := http.Post(server.URL+"/api/ping", "text/plain", nil)
	if err != nil {
		t.Fatalf("POST ping: %v", err)
	}
	defer postResp.Body.Close()
	if postResp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", postResp.StatusCode)
	}
}
