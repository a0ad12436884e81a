package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flowwork/internal/auth"
	"flowwork/internal/config"
	"flowwork/internal/handler"
	"flowwork/internal/logger"
	"flowwork/internal/model"
	"flowwork/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) *server.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		DBDriver:       config.DriverSQLite,
		DBDSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		JWTSecret:      testSecret,
		BoardItemLimit: 500,
	}
	s, err := server.Init(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

type apiClient struct {
	t      *testing.T
	engine http.Handler
	token  string
}

func newClient(t *testing.T, s *server.Server, companyID int64) *apiClient {
	token, err := auth.GenerateToken(testSecret, uuid.NewString(), companyID, time.Hour)
	require.NoError(t, err)
	return &apiClient{t: t, engine: s.Engine, token: token}
}

func (a *apiClient) do(method, path string, body any, out any) int {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)
	resp := httptest.NewRecorder()
	a.engine.ServeHTTP(resp, req)
	if out != nil && resp.Code < 300 {
		require.NoError(a.t, json.Unmarshal(resp.Body.Bytes(), out), resp.Body.String())
	}
	return resp.Code
}

func TestServer_Health(t *testing.T) {
	s := newTestServer(t)

	req, _ := http.NewRequest("GET", "/healthz", nil)
	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
}

func TestServer_APIRequiresToken(t *testing.T) {
	s := newTestServer(t)

	req, _ := http.NewRequest("GET", "/api/boards", nil)
	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestServer_Metrics(t *testing.T) {
	s := newTestServer(t)
	s.Engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/healthz", nil))

	resp := httptest.NewRecorder()
	s.Engine.ServeHTTP(resp, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `http_request_duration_seconds_count{method="GET",route="/healthz",status="200"} 1`)
}

func TestServer_BoardGridRoundTrip(t *testing.T) {
	s := newTestServer(t)
	api := newClient(t, s, 1)

	var board handler.BoardResponse
	require.Equal(t, http.StatusCreated, api.do("POST", "/api/boards", handler.CreateBoardRequest{Name: "Purchases"}, &board))

	newColumn := func(name string, typ model.ColumnType, cfg model.ColumnConfig) handler.ColumnResponse {
		var col handler.ColumnResponse
		code := api.do("POST", "/api/columns", handler.CreateColumnRequest{
			BoardID: board.ID, Name: name, Type: typ, Config: cfg,
		}, &col)
		require.Equal(t, http.StatusCreated, code)
		return col
	}
	qty := newColumn("Qty", model.ColumnNumber, model.ColumnConfig{})
	price := newColumn("Price", model.ColumnNumber, model.ColumnConfig{})
	total := newColumn("Total", model.ColumnFormula, model.ColumnConfig{Formula: "{Qty} * {Price}"})

	var item handler.ItemResponse
	require.Equal(t, http.StatusCreated, api.do("POST", "/api/boards/"+board.ID+"/items", handler.CreateItemRequest{
		Name:   "Copper pipe",
		Values: map[string]string{qty.ID: "4", price.ID: "1234.5"},
	}, &item))
	assert.Equal(t, "4938.00", item.Values[total.ID])

	var second handler.ItemResponse
	require.Equal(t, http.StatusCreated, api.do("POST", "/api/boards/"+board.ID+"/items", handler.CreateItemRequest{Name: "Solder"}, &second))
	assert.Equal(t, "0.00", second.Values[total.ID])

	require.Equal(t, http.StatusOK, api.do("PUT", "/api/items/"+second.ID+"/values/"+qty.ID, handler.SetValueRequest{Value: "2"}, nil))
	require.Equal(t, http.StatusOK, api.do("PUT", "/api/items/"+second.ID+"/values/"+price.ID, handler.SetValueRequest{Value: "3"}, nil))

	var grid handler.GridResponse
	require.Equal(t, http.StatusOK, api.do("GET", "/api/boards/"+board.ID+"/grid", nil, &grid))
	require.Len(t, grid.Groups, 1)
	require.Len(t, grid.Groups[0].Items, 2)
	assert.Equal(t, "6.00", grid.Groups[0].Items[1].Values[total.ID])
	assert.Equal(t, "4,944.00", grid.Groups[0].Aggregates[total.ID])
	assert.Equal(t, "4,944.00", grid.Totals[total.ID])

	// Another company cannot read the board.
	other := newClient(t, s, 2)
	assert.Equal(t, http.StatusForbidden, other.do("GET", "/api/boards/"+board.ID+"/grid", nil, nil))
}
