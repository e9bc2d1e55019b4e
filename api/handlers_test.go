package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwing/tripwing/config"
	"github.com/tripwing/tripwing/flights"
)

type mockSearcher struct {
	result  *flights.SearchResult
	err     error
	lastReq flights.SearchRequest
	calls   int
}

func (m *mockSearcher) SearchFlights(_ context.Context, req flights.SearchRequest) (*flights.SearchResult, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func newTestRouter(searcher Searcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	cfg := config.TestConfig()
	router.POST("/api/v1/search", CreateSearch(searcher, cfg))
	router.POST("/api/v1/search/url", GetSearchURL(cfg))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}

func validSearchBody() SearchRequest {
	return SearchRequest{
		Legs: []LegRequest{
			{Date: "2026-03-01", Origin: "LAX", Destination: "NRT"},
		},
		Adults: 1,
	}
}

func TestCreateSearchSuccess(t *testing.T) {
	price := int64(299)
	searcher := &mockSearcher{result: &flights.SearchResult{
		Flights: []flights.FlightResult{{
			FlightType: "Regular",
			Airlines:   []string{"AY"},
			Segments:   []flights.Segment{},
			Price:      &price,
		}},
		Metadata: flights.SearchMetadata{Airlines: []flights.Airline{}, Alliances: []flights.Alliance{}},
	}}
	router := newTestRouter(searcher)

	rec := postJSON(t, router, "/api/v1/search", validSearchBody())

	require.Equal(t, http.StatusOK, rec.Code)
	var result flights.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Flights, 1)
	assert.Equal(t, []string{"AY"}, result.Flights[0].Airlines)
	require.NotNil(t, result.Flights[0].Price)
	assert.Equal(t, int64(299), *result.Flights[0].Price)

	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, flights.OneWay, searcher.lastReq.Trip)
	assert.Equal(t, flights.Economy, searcher.lastReq.Class)
	assert.Equal(t, "LAX", searcher.lastReq.Legs[0].FromAirport)
}

func TestCreateSearchDefaultsTripTypeFromLegCount(t *testing.T) {
	searcher := &mockSearcher{result: &flights.SearchResult{}}
	router := newTestRouter(searcher)

	body := validSearchBody()
	body.Legs = append(body.Legs, LegRequest{Date: "2026-03-10", Origin: "NRT", Destination: "LAX"})

	rec := postJSON(t, router, "/api/v1/search", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, flights.RoundTrip, searcher.lastReq.Trip)
}

func TestCreateSearchDefaultsPassengers(t *testing.T) {
	searcher := &mockSearcher{result: &flights.SearchResult{}}
	router := newTestRouter(searcher)

	body := validSearchBody()
	body.Adults = 0

	rec := postJSON(t, router, "/api/v1/search", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, flights.DefaultPassengers(), searcher.lastReq.Passengers)
}

func TestCreateSearchBadBody(t *testing.T) {
	searcher := &mockSearcher{result: &flights.SearchResult{}}
	router := newTestRouter(searcher)

	rec := postJSON(t, router, "/api/v1/search", gin.H{"legs": []any{}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, searcher.calls)
}

func TestCreateSearchInvalidLocale(t *testing.T) {
	searcher := &mockSearcher{result: &flights.SearchResult{}}
	router := newTestRouter(searcher)

	body := validSearchBody()
	body.Currency = "NOTACURRENCY"

	rec := postJSON(t, router, "/api/v1/search", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, searcher.calls)
}

func TestCreateSearchErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", &flights.InvalidAirportError{Code: "bad"}, http.StatusBadRequest},
		{"rate limited", flights.ErrRateLimited, http.StatusTooManyRequests},
		{"blocked", &flights.BlockedError{StatusCode: 403}, http.StatusBadGateway},
		{"upstream status", &flights.StatusError{StatusCode: 500}, http.StatusBadGateway},
		{"parse failure", &flights.ParseError{Reason: "payload is not valid JSON"}, http.StatusBadGateway},
		{"script missing", flights.ErrScriptNotFound, http.StatusBadGateway},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			searcher := &mockSearcher{err: tc.err}
			router := newTestRouter(searcher)

			rec := postJSON(t, router, "/api/v1/search", validSearchBody())

			assert.Equal(t, tc.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestGetSearchURL(t *testing.T) {
	router := newTestRouter(&mockSearcher{})

	rec := postJSON(t, router, "/api/v1/search/url", validSearchBody())

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["url"], "https://www.google.com/travel/flights?tfs=")
}

func TestGetSearchURLRejectsInvalidRequest(t *testing.T) {
	router := newTestRouter(&mockSearcher{})

	body := validSearchBody()
	body.Legs[0].Origin = "L"

	rec := postJSON(t, router, "/api/v1/search/url", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
