// Package nager клиент REST API Nager.Date (страны и государственные праздники).
package nager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/holiday-board/internal/metrics"
	"github.com/magabrotheeeer/holiday-board/internal/models"
)

// ErrUnexpectedStatus возвращается на любой неуспешный HTTP статус, кроме 404 у праздников.
var ErrUnexpectedStatus = errors.New("unexpected status")

const (
	endpointCountries = "available_countries"
	endpointHolidays  = "public_holidays"
)

type Client struct {
	apiURL     string
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// NewClient создаёт клиент для baseURL вида https://date.nager.at/api/v3
func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{
		apiURL:     strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		metrics:    m,
	}
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

// AvailableCountries возвращает все страны, поддерживаемые API
func (c *Client) AvailableCountries(ctx context.Context) ([]models.Country, error) {
	const op = "nager.AvailableCountries"
	started := time.Now()

	resp, err := c.get(ctx, "/AvailableCountries")
	if err != nil {
		c.metrics.ObserveUpstream(endpointCountries, "network_error", started)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.ObserveUpstream(endpointCountries, strconv.Itoa(resp.StatusCode), started)
		return nil, fmt.Errorf("%s: %w: %s", op, ErrUnexpectedStatus, resp.Status)
	}

	var countries []models.Country
	if err := json.NewDecoder(resp.Body).Decode(&countries); err != nil {
		c.metrics.ObserveUpstream(endpointCountries, "decode_error", started)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.metrics.ObserveUpstream(endpointCountries, "ok", started)
	return countries, nil
}

// PublicHolidays возвращает праздники страны за год.
// Ответ 404 означает, что праздников нет: возвращается пустой список без ошибки.
func (c *Client) PublicHolidays(ctx context.Context, year int, countryCode string) ([]models.Holiday, error) {
	const op = "nager.PublicHolidays"
	started := time.Now()

	resp, err := c.get(ctx, fmt.Sprintf("/PublicHolidays/%d/%s", year, countryCode))
	if err != nil {
		c.metrics.ObserveUpstream(endpointHolidays, "network_error", started)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.metrics.ObserveUpstream(endpointHolidays, "not_found", started)
		return []models.Holiday{}, nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.metrics.ObserveUpstream(endpointHolidays, strconv.Itoa(resp.StatusCode), started)
		return nil, fmt.Errorf("%s: %w: %s", op, ErrUnexpectedStatus, resp.Status)
	case resp.StatusCode == http.StatusNoContent:
		c.metrics.ObserveUpstream(endpointHolidays, "ok", started)
		return []models.Holiday{}, nil
	}

	holidays := []models.Holiday{}
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		c.metrics.ObserveUpstream(endpointHolidays, "decode_error", started)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.metrics.ObserveUpstream(endpointHolidays, "ok", started)
	return holidays, nil
}
