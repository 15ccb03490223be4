package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/autotrips/bid-service/internal/models"
)

// Заголовок, которым формы передают тег этапа обработки.
const VehicleStatusHeader = "X-Vehicle-Status"

// API - HTTP-клиент бэкенда заявок. Через него хранилища
// выполняют все сетевые операции.
type API struct {
	BaseURL string
	HTTP    *http.Client
	token   string
}

// New создает новый экземпляр API.
func New(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &API{BaseURL: baseURL, HTTP: httpClient}
}

// SetToken устанавливает access-токен для последующих запросов.
func (c *API) SetToken(token string) {
	c.token = token
}

func (c *API) do(ctx context.Context, method, path string, headers map[string]string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr.Body)
		return apiErr
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// GetBids получает заявки, сгруппированные по состоянию обработки.
// Фильтр по статусу необязателен.
func (c *API) GetBids(ctx context.Context, status string) (*models.BidListResponse, error) {
	path := "/api/autotrips/bids"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var resp models.BidListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChangeBid отправляет патч формы этапа. Тег этапа передаётся
// в заголовке X-Vehicle-Status.
func (c *API) ChangeBid(ctx context.Context, id int, patch models.BidPatch, stageTag string) (*models.Bid, error) {
	if stageTag == "" {
		stageTag = "initial"
	}
	headers := map[string]string{VehicleStatusHeader: stageTag}
	var updated models.Bid
	path := fmt.Sprintf("/api/autotrips/bids/%d", id)
	if err := c.do(ctx, http.MethodPut, path, headers, patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// RejectBid отклоняет заявку с указанием причины.
func (c *API) RejectBid(ctx context.Context, id int, req models.RejectBidRequest) (*models.RejectBidResponse, error) {
	var resp models.RejectBidResponse
	path := fmt.Sprintf("/api/autotrips/bids/%d/reject", id)
	if err := c.do(ctx, http.MethodPut, path, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTransporters получает список перевозчиков.
func (c *API) GetTransporters(ctx context.Context) ([]models.Transporter, error) {
	var transporters []models.Transporter
	if err := c.do(ctx, http.MethodGet, "/api/autotrips/transporters", nil, nil, &transporters); err != nil {
		return nil, err
	}
	return transporters, nil
}
