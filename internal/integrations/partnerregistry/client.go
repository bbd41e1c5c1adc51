package partnerregistry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с PartnerRegistry
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PartnerRegistry
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CheckPartnership проверяет активное партнёрство между тенантами
func (c *Client) CheckPartnership(ctx context.Context, senderTenantID, receiverTenantID int64) (*Partnership, error) {
	url := fmt.Sprintf("%s/internal/tenants/%d/partners/%d", c.baseURL, senderTenantID, receiverTenantID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid tenant ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrPartnershipNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var partnership Partnership
	if err := json.NewDecoder(resp.Body).Decode(&partnership); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if !partnership.IsActive {
		c.log.Warn("Partnership %d -> %d is inactive", senderTenantID, receiverTenantID)
		return nil, ErrPartnershipNotFound
	}

	return &partnership, nil
}
