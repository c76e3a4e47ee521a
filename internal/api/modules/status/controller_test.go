package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethanbaker/textcraft/pkg/session"
)

func newTestRouter(s *session.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	RegisterRoutes(engine.Group("/api"))
	Init(s)
	return engine
}

func getJSON(t *testing.T, engine *gin.Engine, path string) (int, map[string]any) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestGetStatus(t *testing.T) {
	sessions := session.NewStore()
	engine := newTestRouter(sessions)

	// Test case 1: empty store reports zero active sessions
	code, body := getJSON(t, engine, "/api/status")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["active_sessions"])
	assert.Contains(t, body, "uptime_seconds")

	// Test case 2: the count follows session creation
	sessions.Create("user1", "some text to edit")
	sessions.Create("user2", "another text")

	_, body = getJSON(t, engine, "/api/status")
	assert.Equal(t, float64(2), body["active_sessions"])

	// Test case 3: and session deletion
	sessions.Delete("user1")

	_, body = getJSON(t, engine, "/api/status")
	assert.Equal(t, float64(1), body["active_sessions"])
}
