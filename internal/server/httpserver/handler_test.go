package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gameauth/internal/common"
	"github.com/dmitrijs2005/gameauth/internal/logging"
	"github.com/dmitrijs2005/gameauth/internal/server/api"
	"github.com/dmitrijs2005/gameauth/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- mock implementation ----

type mockAccounts struct {
	registerFn func(u, p string) (*models.Account, error)
	loginFn    func(u, p string) (*models.Account, error)
	profileFn  func(id int64) (*models.ProfileView, error)
}

func (m *mockAccounts) Register(_ context.Context, u, p string) (*models.Account, error) {
	if m.registerFn != nil {
		return m.registerFn(u, p)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAccounts) Login(_ context.Context, u, p string) (*models.Account, error) {
	if m.loginFn != nil {
		return m.loginFn(u, p)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockAccounts) GetProfile(_ context.Context, id int64) (*models.ProfileView, error) {
	if m.profileFn != nil {
		return m.profileFn(id)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func newTestRouter(accounts api.AccountService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(api.NewDispatcher(accounts, logging.Nop{}))
	return NewRouter(h, "*", logging.Nop{})
}

func doRequest(router *gin.Engine, method, url, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var alice = &models.Account{ID: 1, UserName: "alice", Balance: 1000}

func aliceAccounts() *mockAccounts {
	return &mockAccounts{
		registerFn: func(u, p string) (*models.Account, error) {
			if u == "alice" {
				return alice, nil
			}
			return nil, common.ErrorConflict
		},
		loginFn: func(u, p string) (*models.Account, error) {
			if u == "alice" && p == "secret1" {
				return alice, nil
			}
			return nil, common.ErrorUnauthorized
		},
		profileFn: func(id int64) (*models.ProfileView, error) {
			if id == 1 {
				return &models.ProfileView{ID: 1, UserName: "alice", Balance: 1000}, nil
			}
			return nil, common.ErrorNotFound
		},
	}
}

// ---- tests ----

func TestAction(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		headers        map[string]string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "register",
			body:           `{"action":"register","username":"alice","password":"secret1"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"user":{"id":1,"username":"alice","balance":1000}}`,
		},
		{
			name:           "register duplicate",
			body:           `{"action":"register","username":"bob","password":"secret1"}`,
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"success":false,"error":"Username already exists"}`,
		},
		{
			name:           "register missing password",
			body:           `{"action":"register","username":"alice"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"error":"Username and password required"}`,
		},
		{
			name:           "login",
			body:           `{"action":"login","username":"alice","password":"secret1"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"user":{"id":1,"username":"alice","balance":1000}}`,
		},
		{
			name:           "login bad credentials",
			body:           `{"action":"login","username":"alice","password":"wrong"}`,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"success":false,"error":"Invalid credentials"}`,
		},
		{
			name:           "profile",
			body:           `{"action":"profile","userId":1}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"user":{"id":1,"username":"alice","balance":1000,"kills":0,"deaths":0,"wins":0,"losses":0}}`,
		},
		{
			name:           "profile from X-User-Id",
			body:           `{"action":"profile"}`,
			headers:        map[string]string{"X-User-Id": "1"},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"success":true,"user":{"id":1,"username":"alice","balance":1000,"kills":0,"deaths":0,"wins":0,"losses":0}}`,
		},
		{
			name:           "profile unknown",
			body:           `{"action":"profile","userId":9}`,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"success":false,"error":"User not found"}`,
		},
		{
			name:           "profile userId of wrong type",
			body:           `{"action":"profile","userId":"one"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"error":"Invalid request body"}`,
		},
		{
			name:           "unsupported action",
			body:           `{"action":"transfer"}`,
			expectedStatus: http.StatusMethodNotAllowed,
			expectedBody:   `{"success":false,"error":"Method not allowed"}`,
		},
		{
			name:           "malformed body",
			body:           `{"action":`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"success":false,"error":"Invalid request body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(aliceAccounts())
			w := doRequest(router, http.MethodPost, "/", tt.body, tt.headers)

			assert.Equal(t, tt.expectedStatus, w.Code, "body: %s", w.Body.String())
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestAction_EmptyBody(t *testing.T) {
	router := newTestRouter(aliceAccounts())
	w := doRequest(router, http.MethodPost, "/", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreflight(t *testing.T) {
	router := newTestRouter(&mockAccounts{})

	for _, path := range []string{"/", "/anything"} {
		t.Run(path, func(t *testing.T) {
			w := doRequest(router, http.MethodOptions, path, "", nil)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, w.Body.String())
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "GET, POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Content-Type, X-User-Id", w.Header().Get("Access-Control-Allow-Headers"))
			assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestRouter(&mockAccounts{})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		t.Run(method, func(t *testing.T) {
			w := doRequest(router, method, "/", "", nil)

			assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
			assert.JSONEq(t, `{"success":false,"error":"Method not allowed"}`, w.Body.String())
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestNotFoundAndHealth(t *testing.T) {
	router := newTestRouter(&mockAccounts{})

	w := doRequest(router, http.MethodPost, "/nope", `{}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCORS_CustomOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(api.NewDispatcher(&mockAccounts{}, logging.Nop{}))
	router := NewRouter(h, "https://play.example", logging.Nop{})

	w := doRequest(router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, "https://play.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger_EchoesRequestID(t *testing.T) {
	router := newTestRouter(&mockAccounts{})

	w := doRequest(router, http.MethodGet, "/health", "", map[string]string{"X-Request-Id": "req-123"})
	assert.Equal(t, "req-123", w.Header().Get("X-Request-Id"))

	w = doRequest(router, http.MethodGet, "/health", "", nil)
	assert.Len(t, w.Header().Get("X-Request-Id"), 36, "generated ids are UUIDs")
}
