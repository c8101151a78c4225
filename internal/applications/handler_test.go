package applications

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cvmaker-backend/internal/jobs"
	"cvmaker-backend/internal/users"
)

type adminStub map[string]bool

func (a adminStub) IsAdmin(_ context.Context, userID string) (bool, error) {
	return a[userID], nil
}

type scorerStub map[string]int

func (s scorerStub) ScoreLatest(_ context.Context, userID, _ string) (int, error) {
	return s[userID], nil
}

type userStub map[string]users.User

func (u userStub) GetByID(_ context.Context, id string) (users.User, error) {
	user, ok := u[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return user, nil
}

type fixture struct {
	router *gin.Engine
	jobID  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jobRepo := jobs.NewMemoryRepo()
	jobSvc := jobs.NewService(jobRepo)
	job, err := jobSvc.Create(context.Background(), jobs.CreateInput{JobTitle: "Backend Engineer", Vacancies: 2, JobType: "Full-time", Salary: "100k"})
	require.NoError(t, err)

	svc := NewService(NewMemoryRepo(),
		scorerStub{"alice": 72, "bob": 91, "carol": 72},
		userStub{
			"alice": {ID: "alice", FirstName: "Alice", LastName: "A", Email: "alice@example.com"},
			"bob":   {ID: "bob", FirstName: "Bob", LastName: "B", Email: "bob@example.com"},
		},
		jobSvc,
	)
	tick := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User"); id != "" {
			c.Set("userId", id)
		}
		c.Next()
	})
	NewHandler(svc, adminStub{"admin": true}).RegisterRoutes(r.Group("/api/v1"))
	return fixture{router: r, jobID: job.ID}
}

func (f fixture) do(method, path, user string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}
	resp := httptest.NewRecorder()
	f.router.ServeHTTP(resp, req)
	return resp
}

func (f fixture) applyBody() map[string]any {
	return map[string]any{
		"jobId":              f.jobID,
		"jobTitle":           "Backend Engineer",
		"jobType":            "Full-time",
		"salary":             100000,
		"openings":           2,
		"yearsOfExperience":  "4",
		"relevantExperience": "APIs",
		"currentLocation":    "Remote",
		"expectedSalary":     110000,
	}
}

type listResponse struct {
	Count        int       `json:"count"`
	Applications []Listing `json:"applications"`
}

func decodeList(t *testing.T, resp *httptest.ResponseRecorder) listResponse {
	t.Helper()
	var out listResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func TestApplyRankAndExport(t *testing.T) {
	f := newFixture(t)

	for _, user := range []string{"alice", "bob", "carol"} {
		resp := f.do(http.MethodPost, "/api/v1/applied-jobs/apply", user, f.applyBody())
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	}

	resp := f.do(http.MethodPost, "/api/v1/applied-jobs/apply", "alice", f.applyBody())
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "You have already applied for this job")
	assert.Contains(t, resp.Body.String(), "applicationId")

	resp = f.do(http.MethodGet, "/api/v1/applied-jobs/job/"+f.jobID, "admin", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	ranking := decodeList(t, resp)
	require.Equal(t, 3, ranking.Count)
	assert.Equal(t, "bob", ranking.Applications[0].UserID)
	assert.Equal(t, "alice", ranking.Applications[1].UserID, "ties go to the earlier applicant")
	assert.Equal(t, "carol", ranking.Applications[2].UserID)
	require.NotNil(t, ranking.Applications[0].Applicant)
	assert.Equal(t, "bob@example.com", ranking.Applications[0].Applicant.Email)
	assert.Nil(t, ranking.Applications[2].Applicant)

	resp = f.do(http.MethodGet, "/api/v1/applied-jobs/job/"+f.jobID+"/export", "admin", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Disposition"), ".xlsx")

	book, err := excelize.OpenReader(bytes.NewReader(resp.Body.Bytes()))
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows(rankingSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Rank", rows[0][0])
	assert.Equal(t, "Bob B", rows[1][1])
	assert.Equal(t, "91", rows[1][3])
}

func TestApplyValidation(t *testing.T) {
	f := newFixture(t)

	body := f.applyBody()
	delete(body, "currentLocation")
	body["salary"] = ""
	resp := f.do(http.MethodPost, "/api/v1/applied-jobs/apply", "alice", body)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Details struct {
				Missing map[string]bool `json:"missing"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "All fields are required", envelope.Error.Message)
	assert.True(t, envelope.Error.Details.Missing["currentLocation"])
	assert.True(t, envelope.Error.Details.Missing["salary"])
	assert.False(t, envelope.Error.Details.Missing["jobId"])

	body = f.applyBody()
	body["jobId"] = "no-such-job"
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPost, "/api/v1/applied-jobs/apply", "alice", body).Code)

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodPost, "/api/v1/applied-jobs/apply", "", f.applyBody()).Code)
}

func TestStatusUpdateAndWithdraw(t *testing.T) {
	f := newFixture(t)

	resp := f.do(http.MethodPost, "/api/v1/applied-jobs/apply", "alice", f.applyBody())
	require.Equal(t, http.StatusCreated, resp.Code)
	var created struct {
		Application struct {
			ID       string `json:"applicationId"`
			ATSScore int    `json:"atsScore"`
			Status   string `json:"applicationStatus"`
		} `json:"application"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	assert.Equal(t, 72, created.Application.ATSScore)
	assert.Equal(t, "pending", created.Application.Status)
	id := created.Application.ID

	resp = f.do(http.MethodPatch, "/api/v1/applied-jobs/status/"+id, "admin", map[string]string{"status": "hired"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "validStatuses")

	assert.Equal(t, http.StatusForbidden, f.do(http.MethodPatch, "/api/v1/applied-jobs/status/"+id, "alice", map[string]string{"status": "reviewed"}).Code)

	resp = f.do(http.MethodPatch, "/api/v1/applied-jobs/status/"+id, "admin", map[string]string{"status": "shortlisted"})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"applicationStatus":"shortlisted"`)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodPatch, "/api/v1/applied-jobs/status/missing", "admin", map[string]string{"status": "reviewed"}).Code)

	resp = f.do(http.MethodGet, "/api/v1/applied-jobs/my-applications", "alice", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 1, decodeList(t, resp).Count)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/api/v1/applied-jobs/withdraw/"+id, "bob", nil).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodDelete, "/api/v1/applied-jobs/withdraw/"+id, "alice", nil).Code)

	resp = f.do(http.MethodGet, "/api/v1/applied-jobs/all-applications", "admin", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 0, decodeList(t, resp).Count)
}
