package feedback

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

	"cvmaker-backend/internal/shared/server/validation"
)

type adminStub map[string]bool

func (a adminStub) IsAdmin(_ context.Context, userID string) (bool, error) {
	return a[userID], nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Setup()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("userId", id)
		}
		c.Next()
	})
	NewHandler(newTestService(), adminStub{"admin-1": true}).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r http.Handler, method, path, user, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestSubmitAndAdminViews(t *testing.T) {
	r := newTestRouter(t)

	resp := do(r, http.MethodPost, "/api/v1/feedback/submit", "user-1", `{"rating":5,"feedback":"Great"}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	body := decode(t, resp)
	assert.Equal(t, "Feedback submitted successfully", body["message"])
	id := body["feedback"].(map[string]any)["feedbackId"].(string)

	resp = do(r, http.MethodPost, "/api/v1/feedback/submit", "user-1", `{"rating":"3","feedback":"Okay"}`)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = do(r, http.MethodGet, "/api/v1/feedback/my-feedbacks", "user-1", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, float64(2), decode(t, resp)["count"])

	resp = do(r, http.MethodGet, "/api/v1/feedback/all", "user-1", "")
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = do(r, http.MethodGet, "/api/v1/feedback/stats", "admin-1", "")
	require.Equal(t, http.StatusOK, resp.Code)
	stats := decode(t, resp)["stats"].(map[string]any)
	assert.Equal(t, float64(2), stats["totalFeedbacks"])
	assert.Equal(t, float64(4), stats["averageRating"])

	resp = do(r, http.MethodDelete, "/api/v1/feedback/"+id, "admin-1", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, id, decode(t, resp)["feedbackId"])

	resp = do(r, http.MethodDelete, "/api/v1/feedback/"+id, "admin-1", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "Feedback not found", decode(t, resp)["error"].(map[string]any)["message"])
}

func TestSubmitValidation(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name    string
		body    string
		message string
	}{
		{"missing rating", `{"feedback":"hi"}`, "All fields are required"},
		{"missing feedback", `{"rating":4}`, "All fields are required"},
		{"rating too high", `{"rating":9,"feedback":"hi"}`, "Rating must be between 1 and 5"},
		{"fractional rating", `{"rating":2.5,"feedback":"hi"}`, "Rating must be between 1 and 5"},
		{"blank feedback", `{"rating":4,"feedback":"   "}`, "Feedback cannot be empty"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := do(r, http.MethodPost, "/api/v1/feedback/submit", "user-1", tc.body)
			require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
			assert.Equal(t, tc.message, decode(t, resp)["error"].(map[string]any)["message"])
		})
	}

	resp := do(r, http.MethodPost, "/api/v1/feedback/submit", "", `{"rating":4,"feedback":"hi"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
