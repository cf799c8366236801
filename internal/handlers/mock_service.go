package handlers

import (
	"context"
	"net/http"
	"sync"

	"mine_evacuation/internal/models"
	"mine_evacuation/internal/service"

	"github.com/gin-gonic/gin"
)

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(_ context.Context, username, _ string) (string, error) {
	m.lastGenUsername = username
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

// mockMonitoring returns state; with advance set, every call bumps the iteration.
type mockMonitoring struct {
	mu      sync.Mutex
	state   models.SystemState
	err     error
	advance bool
	calls   int
}

func (m *mockMonitoring) GetState(context.Context) (models.SystemState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.advance {
		m.state.Iteration++
	}
	return m.state, m.err
}

type mockEventLog struct {
	resp       []models.AlertEvent
	err        error
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.AlertEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

type mockActivation struct {
	err   error
	calls int
}

func (m *mockActivation) Activate(context.Context) error {
	m.calls++
	return m.err
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil, nil).InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// authedRequest builds a request carrying a bearer token the mockAuth accepts.
func authedRequest(method, target string) *http.Request {
	req, _ := http.NewRequest(method, target, nil)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	return req
}
