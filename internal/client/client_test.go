package client_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autotrips/bid-service/internal/client"
	"github.com/autotrips/bid-service/internal/models"
)

func TestGetBids_PathAndDecoding(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.BidListResponse{
			Untouched:  []models.Bid{{ID: 1}},
			InProgress: []models.Bid{{ID: 2}},
		})
	}))
	defer server.Close()

	api := client.New(server.URL, server.Client())
	resp, err := api.GetBids(context.Background(), "completed")
	if err != nil {
		t.Fatalf("GetBids: %v", err)
	}

	if gotPath != "/api/autotrips/bids" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "status=completed" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(resp.Untouched) != 1 || len(resp.InProgress) != 1 {
		t.Errorf("decoded %d/%d bids", len(resp.Untouched), len(resp.InProgress))
	}
	if resp.Completed != nil {
		t.Error("completed must stay nil when the key is absent")
	}
}

func TestChangeBid_SendsStageHeaderAndPatch(t *testing.T) {
	var gotHeader string
	var gotPatch models.BidPatch
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(client.VehicleStatusHeader)
		_ = json.NewDecoder(r.Body).Decode(&gotPatch)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.Bid{ID: 1})
	}))
	defer server.Close()

	api := client.New(server.URL, server.Client())
	updated, err := api.ChangeBid(context.Background(), 1, models.BidPatch{"transit_method": "t1"}, "loading")
	if err != nil {
		t.Fatalf("ChangeBid: %v", err)
	}

	if gotHeader != "loading" {
		t.Errorf("X-Vehicle-Status = %q", gotHeader)
	}
	if gotPatch.String("transit_method") != "t1" {
		t.Errorf("patch not transmitted: %v", gotPatch)
	}
	if updated.ID != 1 {
		t.Errorf("updated bid id = %d", updated.ID)
	}
}

func TestChangeBid_DefaultStageTag(t *testing.T) {
	var gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get(client.VehicleStatusHeader)
		_ = json.NewEncoder(w).Encode(models.Bid{ID: 1})
	}))
	defer server.Close()

	api := client.New(server.URL, server.Client())
	if _, err := api.ChangeBid(context.Background(), 1, models.BidPatch{}, ""); err != nil {
		t.Fatalf("ChangeBid: %v", err)
	}
	if gotHeader != "initial" {
		t.Errorf("default X-Vehicle-Status = %q, want initial", gotHeader)
	}
}

func TestRejectBid_DecodesTransitMethod(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/autotrips/bids/7/reject" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"transit_method": null}`))
	}))
	defer server.Close()

	api := client.New(server.URL, server.Client())
	resp, err := api.RejectBid(context.Background(), 7, models.RejectBidRequest{Comment: "duplicate"})
	if err != nil {
		t.Fatalf("RejectBid: %v", err)
	}
	if resp.TransitMethod != nil {
		t.Errorf("transit_method = %v, want nil", resp.TransitMethod)
	}
}

func TestErrorResponsesBecomeAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "bid not found"}`))
	}))
	defer server.Close()

	api := client.New(server.URL, server.Client())
	_, err := api.GetBids(context.Background(), "")
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.StatusCode)
	}
	if client.ErrorMessage(err) != "bid not found" {
		t.Errorf("message = %q", client.ErrorMessage(err))
	}
}

func TestSetToken_AddsAuthorizationHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"untouched": [], "in_progress": []}`))
	}))
	defer server.Close()

	api := client.New(server.URL, server.Client())
	api.SetToken("abc")
	if _, err := api.GetBids(context.Background(), ""); err != nil {
		t.Fatalf("GetBids: %v", err)
	}
	if gotAuth != "Bearer abc" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestDecodeToken(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"role": "logistician"}`))
	token := "header." + payload + ".signature"

	claims, err := client.DecodeToken(token)
	if err != nil {
		t.Fatalf("DecodeToken: %v", err)
	}
	if claims.Role != "logistician" {
		t.Errorf("role = %q", claims.Role)
	}

	if _, err = client.DecodeToken("not-a-token"); err == nil {
		t.Error("malformed token accepted")
	}
}
