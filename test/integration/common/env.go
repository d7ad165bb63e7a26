package common

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roomsvc/internal/meetingrooms/handler"
	"roomsvc/internal/meetingrooms/repository"
	"roomsvc/internal/meetingrooms/service"
	"roomsvc/internal/meetingrooms/validator"
	"roomsvc/pkg/config"
	"roomsvc/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

// TestEnv stands up the full service against the test database, served from
// an in-process HTTP listener.
type TestEnv struct{}

func NewTestEnv() *TestEnv {
	return &TestEnv{}
}

func (e *TestEnv) Setup(t *testing.T) (*PostgresHelper, *APIClient) {
	t.Helper()

	pg := NewPostgresHelper(t)
	pg.CleanDatabase(t)

	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
	}

	roomRepo := repository.NewPostgresMeetingRoomRepository(pg.DB)
	reservationRepo := repository.NewPostgresReservationRepository(pg.DB)
	roomService := service.NewMeetingRoomService(
		roomRepo,
		reservationRepo,
		validator.NewMeetingRoomValidator(),
		nil,
		cfg,
	)

	router := httprouter.New()
	handler.NewMeetingRoomHandler(roomService, cfg.Log).RegisterRoutes(router)
	handler.NewHealthHandler(pg.DB, cfg.Log).RegisterRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return pg, &APIClient{BaseURL: server.URL}
}

func (e *TestEnv) Cleanup(t *testing.T, pg *PostgresHelper) {
	t.Helper()
	pg.CleanDatabase(t)
	pg.Close(t)
}

// APIClient is a thin HTTP client for the test server.
type APIClient struct {
	BaseURL string
}

type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) DecodeJSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

func (c *APIClient) GET(t *testing.T, path string) *Response {
	t.Helper()
	return c.do(t, http.MethodGet, path, nil)
}

func (c *APIClient) POST(t *testing.T, path string, body any) *Response {
	t.Helper()
	return c.do(t, http.MethodPost, path, body)
}

func (c *APIClient) PATCH(t *testing.T, path string, body any) *Response {
	t.Helper()
	return c.do(t, http.MethodPatch, path, body)
}

func (c *APIClient) DELETE(t *testing.T, path string) *Response {
	t.Helper()
	return c.do(t, http.MethodDelete, path, nil)
}

func (c *APIClient) do(t *testing.T, method, path string, body any) *Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
	}
}

func AssertStatusCode(t *testing.T, resp *Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d (body: %s)", want, resp.StatusCode, resp.Body)
	}
}

func AssertContains(t *testing.T, resp *Response, substr string) {
	t.Helper()
	if !strings.Contains(strings.ToLower(string(resp.Body)), strings.ToLower(substr)) {
		t.Errorf("expected body to contain %q, got: %s", substr, resp.Body)
	}
}
