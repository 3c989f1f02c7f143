package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lecturehub/internal/app/repositories/memory"
	"github.com/yigit/lecturehub/internal/app/services"
	"github.com/yigit/lecturehub/internal/config"
	"github.com/yigit/lecturehub/internal/seed"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Field   string `json:"field"`
	} `json:"error"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Database.Driver = config.DriverMemory
	cfg.JWT.Secret = "router-test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "lecturehub"
	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/metrics"

	lgr := zerolog.Nop()
	repos := memory.NewRepositories()
	require.NoError(t, seed.CreateDefaultData(context.Background(), repos.Users, seed.Options{
		AdminEmail:         "admin@example.com",
		AdminPassword:      "admin123",
		InstructorPassword: "instructor123",
		HashCost:           bcrypt.MinCost,
	}, lgr))

	deps := BuildDependencies(cfg, repos, lgr)
	deps.AuthService.WithHashCost(bcrypt.MinCost)

	return &testServer{t: t, router: SetupRouter(cfg, deps, lgr)}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *testServer) login(email, password string) (string, int64) {
	s.t.Helper()
	status, env := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, status, env.Message)

	var data struct {
		Token string `json:"token"`
		User  struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(s.t, data.Token)
	return data.Token, data.User.ID
}

func decodeID(t *testing.T, raw json.RawMessage) int64 {
	t.Helper()
	var v struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &v))
	require.NotZero(t, v.ID)
	return v.ID
}

func TestAuthBoundaries(t *testing.T) {
	s := newTestServer(t)
	instructorToken, _ := s.login("priya@example.com", "instructor123")

	status, env := s.do(http.MethodGet, "/api/courses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "AUTH_007", env.Error.Code)

	status, env = s.do(http.MethodGet, "/api/courses", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "AUTH_005", env.Error.Code)

	status, env = s.do(http.MethodPost, "/api/courses", instructorToken, map[string]string{
		"name": "Go", "level": "Beginner", "description": "Intro",
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "AUTH_009", env.Error.Code)

	status, env = s.do(http.MethodGet, "/api/lectures/availability/check?instructorId=1&date=2024-03-15", instructorToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, env = s.do(http.MethodGet, "/api/courses", instructorToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.JSONEq(t, `[]`, string(env.Data))

	status, env = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "priya@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "AUTH_001", env.Error.Code)
}

func TestRegisterAndProfile(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Kiran", "email": "kiran@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	assert.NotContains(t, string(env.Data), "password")

	status, env = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Kiran", "email": "KIRAN@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "RES_002", env.Error.Code)

	status, env = s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Kiran", "email": "not-an-email", "password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VAL_001", env.Error.Code)
	assert.Equal(t, "email", env.Error.Field)

	token, id := s.login("kiran@example.com", "secret1")
	status, env = s.do(http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, decodeID(t, env.Data))

	status, env = s.do(http.MethodGet, "/api/auth/instructors", token, nil)
	require.Equal(t, http.StatusOK, status)
	var instructors []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &instructors))
	assert.Len(t, instructors, len(seed.DefaultInstructors)+1)
}

func TestSchedulingFlow(t *testing.T) {
	s := newTestServer(t)
	adminToken, _ := s.login("admin@example.com", "admin123")
	priyaToken, priyaID := s.login("priya@example.com", "instructor123")

	status, env := s.do(http.MethodPost, "/api/courses", adminToken, map[string]string{"name": "Go", "description": "Intro"})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VAL_001", env.Error.Code)
	assert.Equal(t, "level", env.Error.Field)

	status, env = s.do(http.MethodPost, "/api/courses", adminToken, map[string]string{
		"name": "Go", "level": "Beginner", "description": "Intro",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	courseID := decodeID(t, env.Data)

	lecture := map[string]any{
		"title":        "Morning batch",
		"batchNumber":  1,
		"courseId":     courseID,
		"instructorId": priyaID,
		"date":         "2024-03-15",
		"startTime":    "10:00",
		"endTime":      "11:00",
	}
	status, env = s.do(http.MethodPost, "/api/lectures", adminToken, lecture)
	require.Equal(t, http.StatusCreated, status, env.Message)
	lectureID := decodeID(t, env.Data)
	assert.Contains(t, string(env.Data), `"date":"2024-03-15"`)

	lecture["startTime"], lecture["endTime"] = "15:00", "16:00"
	status, env = s.do(http.MethodPost, "/api/lectures", adminToken, lecture)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "RES_004", env.Error.Code)
	assert.Equal(t, services.MsgInstructorDayTaken, env.Error.Message)

	lecture["startTime"] = "25:00"
	status, env = s.do(http.MethodPost, "/api/lectures", adminToken, lecture)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "startTime", env.Error.Field)

	status, env = s.do(http.MethodGet, fmt.Sprintf("/api/lectures/availability/check?instructorId=%d&date=2024-03-15&startTime=12:00&endTime=13:00", priyaID), adminToken, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.JSONEq(t, `{"available":false,"message":"Instructor already has a lecture on this date","timeConflict":false}`, string(env.Data))

	status, env = s.do(http.MethodGet, fmt.Sprintf("/api/lectures/availability/check?instructorId=%d&date=2024-03-15&startTime=10:00", priyaID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VAL_001", env.Error.Code)

	status, env = s.do(http.MethodGet, fmt.Sprintf("/api/lectures/availability/check?instructorId=%d", priyaID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "date", env.Error.Field)

	status, env = s.do(http.MethodPut, fmt.Sprintf("/api/lectures/%d", lectureID), adminToken, map[string]any{"title": "Renamed"})
	require.Equal(t, http.StatusOK, status, env.Message)
	assert.Contains(t, string(env.Data), `"title":"Renamed"`)

	status, env = s.do(http.MethodGet, "/api/lectures/instructor/my-lectures", priyaToken, nil)
	require.Equal(t, http.StatusOK, status)
	var mine []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Len(t, mine, 1)

	status, env = s.do(http.MethodGet, "/api/lectures/999", priyaToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "RES_001", env.Error.Code)

	status, env = s.do(http.MethodGet, "/api/lectures/abc", priyaToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "id", env.Error.Field)

	status, env = s.do(http.MethodDelete, fmt.Sprintf("/api/courses/%d", courseID), adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"deletedLectures":1}`, string(env.Data))
	assert.Equal(t, "Course deleted successfully along with 1 lecture(s)", env.Message)

	status, env = s.do(http.MethodGet, fmt.Sprintf("/api/lectures/course/%d", courseID), adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(env.Data))

	status, env = s.do(http.MethodDelete, fmt.Sprintf("/api/courses/%d", courseID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Course not found", env.Error.Message)
}

func TestOperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/ping", "/api/health"} {
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "lecturehub_http_requests_total"))
}
