package rest

import (
	"avacasa/internal/contextkeys"
	"avacasa/internal/core/domain"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFindPropertiesUseCase struct {
	mock.Mock
}

func (m *MockFindPropertiesUseCase) Execute(ctx context.Context, filters domain.FindPropertiesFilters) (*domain.FindPropertiesResult, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FindPropertiesResult), args.Error(1)
}

type MockGetPropertyBySlugUseCase struct {
	mock.Mock
}

func (m *MockGetPropertyBySlugUseCase) Execute(ctx context.Context, slug string) (*domain.PropertyDetails, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PropertyDetails), args.Error(1)
}

type MockGetSearchLocationsUseCase struct {
	mock.Mock
}

func (m *MockGetSearchLocationsUseCase) Execute(ctx context.Context) ([]domain.SearchLocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SearchLocation), args.Error(1)
}

type testRouter struct {
	handler   http.Handler
	find      *MockFindPropertiesUseCase
	bySlug    *MockGetPropertyBySlugUseCase
	locations *MockGetSearchLocationsUseCase
}

func newTestRouter() *testRouter {
	tr := &testRouter{
		find:      new(MockFindPropertiesUseCase),
		bySlug:    new(MockGetPropertyBySlugUseCase),
		locations: new(MockGetSearchLocationsUseCase),
	}
	tr.handler = NewRouter(
		ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		NewPropertyHandler(tr.find, tr.bySlug),
		NewLocationHandler(tr.locations),
		NewMetrics("avacasa_test"),
		contextkeys.NoopLogger(),
	)
	return tr
}

func (tr *testRouter) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)
	return rec
}

func TestListPublic_ParsesFiltersAndResponds(t *testing.T) {
	tr := newTestRouter()
	bedrooms := 2
	villa := domain.PropertyTypeVilla

	expected := domain.FindPropertiesFilters{
		Search:        "Goa villa",
		PropertyType:  &villa,
		LocationKeys:  []string{"north-goa", "assagao"},
		MinBedrooms:   &bedrooms,
		PublishedOnly: true,
		Page:          2,
		Limit:         100,
	}
	tr.find.On("Execute", mock.Anything, expected).Return(&domain.FindPropertiesResult{
		Properties: []domain.PropertySummary{{
			ID: "p1", Title: "Sea View", Slug: "sea-view", Price: 25000000, PropertyType: villa,
			Location: &domain.LocationRef{ID: "l1", Name: "Assagao", Slug: "assagao"},
		}},
		TotalCount: 101,
		Page:       2,
		Limit:      100,
	}, nil).Once()

	q := url.Values{}
	q.Set("search", "Goa villa")
	q.Set("propertyType", "villa")
	q.Set("location", "north-goa,assagao,north-goa")
	q.Set("bedrooms", "2")
	q.Set("minPrice", "-1")
	q.Set("page", "2")
	q.Set("limit", "500")
	rec := tr.get(t, "/api/properties?"+q.Encode())

	require.Equal(t, http.StatusOK, rec.Code)
	var body PropertiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "VILLA", body.Data[0].PropertyType)
	assert.Equal(t, []string{}, body.Data[0].Images)
	assert.Equal(t, PaginationResponse{Page: 2, Limit: 100, Total: 101, Pages: 2}, body.Pagination)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
	tr.find.AssertExpectations(t)
}

func TestListPublic_Bounds(t *testing.T) {
	tr := newTestRouter()
	tr.find.On("Execute", mock.Anything, mock.MatchedBy(func(f domain.FindPropertiesFilters) bool {
		return f.Bounds != nil && f.Bounds.North == 16 && f.Bounds.West == 73.5
	})).Return(&domain.FindPropertiesResult{Page: 1, Limit: 12}, nil).Once()

	rec := tr.get(t, "/api/properties?bounds="+url.QueryEscape(`{"north":16,"south":15,"east":74,"west":73.5}`))

	assert.Equal(t, http.StatusOK, rec.Code)
	tr.find.AssertExpectations(t)
}

func TestListPublic_MalformedBounds(t *testing.T) {
	cases := []string{
		`{"north":16`,
		`{"north":16,"south":15}`,
		`{"north":10,"south":20,"east":1,"west":0}`,
	}
	for _, raw := range cases {
		t.Run(raw, func(t *testing.T) {
			tr := newTestRouter()

			rec := tr.get(t, "/api/properties?bounds="+url.QueryEscape(raw))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
			tr.find.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestListPublic_StorageFailure(t *testing.T) {
	tr := newTestRouter()
	tr.find.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	rec := tr.get(t, "/api/properties")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Failed to retrieve properties"}`, rec.Body.String())
}

func TestListAdmin_StatusFilter(t *testing.T) {
	tr := newTestRouter()
	tr.find.On("Execute", mock.Anything, mock.MatchedBy(func(f domain.FindPropertiesFilters) bool {
		return !f.PublishedOnly && f.Status != nil && *f.Status == domain.PropertyStatusDraft && f.Limit == 12 && f.Page == 1
	})).Return(&domain.FindPropertiesResult{Page: 1, Limit: 12}, nil).Once()

	rec := tr.get(t, "/api/admin/properties?status=DRAFT")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"pagination":{"page":1,"limit":12,"total":0,"pages":0}}`, rec.Body.String())
	tr.find.AssertExpectations(t)
}

func TestGetBySlug(t *testing.T) {
	tr := newTestRouter()
	tr.bySlug.On("Execute", mock.Anything, "sea-view").Return(&domain.PropertyDetails{
		PropertySummary: domain.PropertySummary{ID: "p1", Slug: "sea-view", PropertyType: domain.PropertyTypeVilla},
		Description:     "Quiet villa",
		Status:          domain.PropertyStatusPublished,
	}, nil).Once()
	tr.bySlug.On("Execute", mock.Anything, "missing").Return(nil, domain.ErrPropertyNotFound).Once()
	tr.bySlug.On("Execute", mock.Anything, "broken").Return(nil, errors.New("db down")).Once()

	rec := tr.get(t, "/api/properties/sea-view")
	require.Equal(t, http.StatusOK, rec.Code)
	var body PropertyDetailsEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Quiet villa", body.Data.Description)
	assert.Equal(t, "sea-view", body.Data.Slug)

	assert.Equal(t, http.StatusNotFound, tr.get(t, "/api/properties/missing").Code)
	assert.Equal(t, http.StatusInternalServerError, tr.get(t, "/api/properties/broken").Code)
}

func TestGetSearchLocations(t *testing.T) {
	tr := newTestRouter()
	north := "l1"
	tr.locations.On("Execute", mock.Anything).Return([]domain.SearchLocation{
		{ID: "l1", Name: "North Goa", Slug: "north-goa", Kind: domain.LocationKindMajor, PropertyCount: 3},
		{ID: "l2", Name: "Assagao", Slug: "assagao", Kind: domain.LocationKindMinor, MajorLocationID: &north, PropertyCount: 1},
	}, nil).Once()

	rec := tr.get(t, "/api/search/locations")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":[
		{"id":"l1","name":"North Goa","slug":"north-goa","type":"major","propertyCount":3},
		{"id":"l2","name":"Assagao","slug":"assagao","type":"minor","majorLocationId":"l1","propertyCount":1}
	]}`, rec.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	tr := newTestRouter()

	rec := tr.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = tr.get(t, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `avacasa_test_http_requests_total{method="GET",route="/healthz",status="200"} 1`))
}

func TestTraceIDIsPropagated(t *testing.T) {
	tr := newTestRouter()
	traceID := "0b9f4a3e-2f6c-4d8e-9d36-6f1c2b7a9e10"
	tr.locations.On("Execute", mock.MatchedBy(func(ctx context.Context) bool {
		return contextkeys.TraceIDFromContext(ctx) == traceID
	})).Return([]domain.SearchLocation{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/search/locations", nil)
	req.Header.Set("X-Trace-ID", traceID)
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, traceID, rec.Header().Get("X-Trace-ID"))
	tr.locations.AssertExpectations(t)
}

func TestListPublic_HugePageIsClamped(t *testing.T) {
	tr := newTestRouter()
	tr.find.On("Execute", mock.Anything, mock.MatchedBy(func(f domain.FindPropertiesFilters) bool {
		return f.Page == maxPage && f.Limit == maxLimit
	})).Return(&domain.FindPropertiesResult{Properties: []domain.PropertySummary{}, Page: maxPage, Limit: maxLimit}, nil).Once()

	rec := tr.get(t, "/api/properties?page=9223372036854775807&limit=100")

	require.Equal(t, http.StatusOK, rec.Code)
	tr.find.AssertExpectations(t)
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query       string
		page, limit int
	}{
		{"", 1, defaultLimit},
		{"page=0&limit=0", 1, defaultLimit},
		{"page=3&limit=24", 3, 24},
		{"page=9223372036854775807", maxPage, defaultLimit},
		{"page=99999999999999999999", 1, defaultLimit},
		{"limit=1000", 1, maxLimit},
	}
	for _, tc := range cases {
		q, err := url.ParseQuery(tc.query)
		require.NoError(t, err)
		page, limit := parsePagination(q)
		assert.Equal(t, tc.page, page, tc.query)
		assert.Equal(t, tc.limit, limit, tc.query)
	}
}
