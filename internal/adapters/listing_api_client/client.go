package listing_api_client

import (
	"avacasa/internal/contextkeys"
	"avacasa/internal/contracts"
	"avacasa/internal/core/domain"
	"avacasa/internal/core/port"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	propertiesResponseSchema = "PropertiesResponse"
	locationsResponseSchema  = "LocationsResponse"
	responseSchemaVersion    = "1.0.0"
)

type Config struct {
	BaseURL string
	// PropertiesPath - /api/properties или /api/admin/properties
	PropertiesPath string
	Timeout        time.Duration
}

// Client - HTTP-клиент сервиса выдачи
type Client struct {
	baseURL        string
	propertiesPath string
	httpClient     *http.Client
}

func NewClient(cfg Config) *Client {
	path := cfg.PropertiesPath
	if path == "" {
		path = "/api/properties"
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		propertiesPath: path,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	traceID := contextkeys.TraceIDFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// getJSON выполняет GET, проверяет статус и схему ответа и возвращает тело
func (c *Client) getJSON(ctx context.Context, url, schemaName string, logger port.LoggerPort) ([]byte, error) {
	logger.Debug("Sending request to listing service", port.Fields{"url": url})

	resp, err := c.doRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request to listing service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("listing service returned non-success status code %d: %s", resp.StatusCode, string(body))
	}

	if err := contracts.ValidateResponse(schemaName, responseSchemaVersion, body); err != nil {
		return nil, fmt.Errorf("invalid listing service response: %w", err)
	}

	return body, nil
}

// FetchProperties - GET {propertiesPath}?{query}. Любая неудача возвращается как ошибка.
func (c *Client) FetchProperties(ctx context.Context, query string) (*domain.ListingPage, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ListingApiClient",
		"method":    "FetchProperties",
	})

	url := c.baseURL + c.propertiesPath
	if query != "" {
		url += "?" + query
	}

	body, err := c.getJSON(ctx, url, propertiesResponseSchema, clientLogger)
	if err != nil {
		clientLogger.Error("Listing request failed", err, nil)
		return nil, err
	}

	var response PropertiesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		clientLogger.Error("Failed to decode response from listing service", err, nil)
		return nil, fmt.Errorf("failed to decode properties response: %w", err)
	}

	if !response.Success {
		err := fmt.Errorf("%w: %s", domain.ErrListingRequestFailed, response.Error)
		clientLogger.Error("Listing service reported failure", err, nil)
		return nil, err
	}

	page := &domain.ListingPage{Results: make([]domain.PropertySummary, 0, len(response.Data))}
	for _, item := range response.Data {
		page.Results = append(page.Results, toDomainProperty(item))
	}

	if response.Pagination != nil {
		page.Pagination = domain.PaginationMeta{
			Page:  response.Pagination.Page,
			Limit: response.Pagination.Limit,
			Total: response.Pagination.Total,
			Pages: response.Pagination.Pages,
		}
	} else {
		// сервер без пагинации: считаем, что вся выдача на одной странице
		page.Pagination = domain.NewPaginationMeta(1, len(page.Results), len(page.Results))
	}

	clientLogger.Info("Successfully received and decoded response", port.Fields{
		"items_count": len(page.Results),
		"total":       page.Pagination.Total,
	})

	return page, nil
}

// FetchLocations - GET /api/search/locations
func (c *Client) FetchLocations(ctx context.Context) ([]domain.SearchLocation, error) {
	clientLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ListingApiClient",
		"method":    "FetchLocations",
	})

	body, err := c.getJSON(ctx, c.baseURL+"/api/search/locations", locationsResponseSchema, clientLogger)
	if err != nil {
		clientLogger.Error("Locations request failed", err, nil)
		return nil, err
	}

	var response LocationsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode locations response: %w", err)
	}
	if !response.Success {
		return nil, fmt.Errorf("%w: %s", domain.ErrListingRequestFailed, response.Error)
	}

	result := make([]domain.SearchLocation, len(response.Data))
	for i, l := range response.Data {
		result[i] = domain.SearchLocation{
			ID:              l.ID,
			Name:            l.Name,
			Slug:            l.Slug,
			Kind:            domain.LocationKind(l.Type),
			MajorLocationID: l.MajorLocationID,
			PropertyCount:   l.PropertyCount,
		}
	}

	clientLogger.Debug("Locations received", port.Fields{"count": len(result)})
	return result, nil
}

func toDomainProperty(item PropertySummaryResponse) domain.PropertySummary {
	summary := domain.PropertySummary{
		ID:        item.ID,
		Title:     item.Title,
		Slug:      item.Slug,
		Price:     item.Price,
		Bedrooms:  item.Bedrooms,
		Bathrooms: item.Bathrooms,
		Area:      item.Area,
		Images:    item.Images,
		Featured:  item.Featured,
		Latitude:  item.Latitude,
		Longitude: item.Longitude,
	}
	if pt, ok := domain.ParsePropertyType(item.PropertyType); ok {
		summary.PropertyType = pt
	} else {
		summary.PropertyType = domain.PropertyType(item.PropertyType)
	}
	if item.Location != nil {
		summary.Location = &domain.LocationRef{
			ID:   item.Location.ID,
			Name: item.Location.Name,
			Slug: item.Location.Slug,
		}
	}
	return summary
}
