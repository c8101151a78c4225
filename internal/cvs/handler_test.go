package cvs

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvmaker-backend/internal/llm"
)

func newTestRouter(t *testing.T, extractor llm.Extractor) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t, extractor)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("userId", id)
			c.Set("userEmail", id+"@example.com")
		}
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func uploadRequest(t *testing.T, field, fileName, content, jobTitle string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		part, err := w.CreateFormFile(field, fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	if jobTitle != "" {
		require.NoError(t, w.WriteField("jobTitle", jobTitle))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cv/upload-cv", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("X-Test-User", "user-1")
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func errorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body.Error.Code
}

func TestUploadHappyPathThenCurrentAndList(t *testing.T) {
	r := newTestRouter(t, &fakeExtractor{out: sampleResumeJSON})

	resp := serve(r, uploadRequest(t, "cv", "resume.txt", "Jane Doe resume text", "Backend Engineer"))
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var created struct {
		Message string         `json:"message"`
		CVID    string         `json:"cvId"`
		Data    map[string]any `json:"data"`
		ATS     map[string]any `json:"ats"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, "CV processed successfully", created.Message)
	assert.NotEmpty(t, created.CVID)
	assert.Contains(t, created.Data, "personalInfo")
	assert.Contains(t, created.ATS, "ATS_Score")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cv/current", nil)
	req.Header.Set("X-Test-User", "user-1")
	resp = serve(r, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), created.CVID)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cv?limit=5", nil)
	req.Header.Set("X-Test-User", "user-1")
	resp = serve(r, req)
	require.Equal(t, http.StatusOK, resp.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.CVID, list[0]["cvId"])

	req = httptest.NewRequest(http.MethodPost, "/api/v1/cv/current/score", bytes.NewBufferString(`{"jobTitle":"Data Scientist"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", "user-1")
	resp = serve(r, req)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"jobTitleMatch"`)
}

func TestUploadErrors(t *testing.T) {
	r := newTestRouter(t, &fakeExtractor{out: `"nope"`})

	resp := serve(r, uploadRequest(t, "", "", "", ""))
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = serve(r, uploadRequest(t, "cv", "resume.bin", "\x00\x01\x02", ""))
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, "unreadable_document", errorCode(t, resp))

	resp = serve(r, uploadRequest(t, "cv", "resume.txt", "text resume", ""))
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, "extraction_format", errorCode(t, resp))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cv/current", nil)
	req.Header.Set("X-Test-User", "user-1")
	resp = serve(r, req)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUploadLLMUnavailable(t *testing.T) {
	r := newTestRouter(t, nil)
	resp := serve(r, uploadRequest(t, "cv", "resume.txt", "text resume", ""))
	require.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Equal(t, "llm_unavailable", errorCode(t, resp))
}

func TestUploadRequiresUser(t *testing.T) {
	r := newTestRouter(t, &fakeExtractor{out: sampleResumeJSON})
	req := uploadRequest(t, "cv", "resume.txt", "text", "")
	req.Header.Del("X-Test-User")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)
}

func TestPublicScore(t *testing.T) {
	r := newTestRouter(t, nil)

	body := `{"resume":` + sampleResumeJSON + `,"jobTitle":"Software Engineer"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cv/score", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := serve(r, req)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), `"ATS_Score"`)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/cv/score", bytes.NewBufferString(`{"resume":[1,2]}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, serve(r, req).Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/cv/score", bytes.NewBufferString(`{"jobTitle":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, serve(r, req).Code)
}
