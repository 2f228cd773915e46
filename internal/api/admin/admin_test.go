package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Mrlaolu/luBoard/internal/config"
	"github.com/Mrlaolu/luBoard/internal/contest"
	"github.com/Mrlaolu/luBoard/internal/loader"
	"github.com/Mrlaolu/luBoard/internal/standings"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const contestDat = `@p A,Alpha,20,0
@p B,Beta,20,0
@t 1,0,1,"MIT - Rockets"
@t 7,0,1,"Solo"
@s 1,A,1,60,WA
@s 1,A,2,200,OK
`

type envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func setup(t *testing.T) (*gin.Engine, *contest.State, *config.Config) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contest.dat")
	require.NoError(t, os.WriteFile(path, []byte(contestDat), 0o644))

	cfg := config.Default()
	cfg.Source.Path = path
	cfg.Admin.RateLimit = 0

	log, err := loader.Load(cfg.Source)
	require.NoError(t, err)
	state := contest.New(log, contest.Options{DurationSeconds: cfg.Contest.DurationSeconds()})
	return NewAdminRouter(&cfg, state), state, &cfg
}

func do(t *testing.T, r http.Handler, req *http.Request, out interface{}) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil && env.Code == 0 {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return w.Code, env
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestInjectSubmission(t *testing.T) {
	testCases := []struct {
		name        string
		req         *http.Request
		wantCode    int
		wantElapsed int
	}{
		{
			name:        "json accepted",
			req:         postJSON("/api/v1/submissions", `{"team_id":7,"problem_id":"B","result":"AC","minute":"12"}`),
			wantCode:    http.StatusOK,
			wantElapsed: 720,
		},
		{
			name:        "form rejected",
			req:         postForm("/api/v1/submissions", url.Values{"team_id": {"7"}, "problem_id": {"B"}, "result": {"WA"}, "minute": {"12"}}),
			wantCode:    http.StatusOK,
			wantElapsed: 660,
		},
		{
			name:        "unparseable minute counts as zero",
			req:         postJSON("/api/v1/submissions", `{"team_id":7,"problem_id":"B","result":"AC","minute":"soon"}`),
			wantCode:    http.StatusOK,
			wantElapsed: 0,
		},
		{
			name:     "unknown team",
			req:      postJSON("/api/v1/submissions", `{"team_id":42,"problem_id":"B","result":"AC","minute":"1"}`),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "unknown problem",
			req:      postJSON("/api/v1/submissions", `{"team_id":7,"problem_id":"Z","result":"AC","minute":"1"}`),
			wantCode: http.StatusNotFound,
		},
		{
			name:     "missing team",
			req:      postJSON("/api/v1/submissions", `{"problem_id":"B","result":"AC","minute":"1"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad result",
			req:      postJSON("/api/v1/submissions", `{"team_id":7,"problem_id":"B","result":"TLE","minute":"1"}`),
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, _, _ := setup(t)
			var sub standings.Submission
			code, _ := do(t, r, tc.req, &sub)
			assert.Equal(t, tc.wantCode, code)
			if tc.wantCode == http.StatusOK {
				assert.Equal(t, tc.wantElapsed, sub.Elapsed)
				assert.Equal(t, 7, sub.TeamID)
			}
		})
	}
}

func TestInjectSubmission_ShowsOnNextBoard(t *testing.T) {
	r, state, _ := setup(t)

	code, _ := do(t, r, postJSON("/api/v1/submissions", `{"team_id":7,"problem_id":"A","result":"AC","minute":"2"}`), nil)
	require.Equal(t, http.StatusOK, code)

	board, err := state.BoardAt(120)
	require.NoError(t, err)
	require.Equal(t, 7, board.Rows[0].TeamID)
	assert.Equal(t, "+", board.Rows[0].Cells["A"].Symbol)
}

func TestInjectSubmission_TeamZero(t *testing.T) {
	log := loader.NewContestLog()
	log.Problems["A"] = standings.Problem{ID: "A", Penalty: 20}
	log.Teams[0] = standings.Team{ID: 0, Name: "Zero"}
	cfg := config.Default()
	cfg.Admin.RateLimit = 0
	state := contest.New(log, contest.Options{DurationSeconds: cfg.Contest.DurationSeconds()})
	r := NewAdminRouter(&cfg, state)

	var sub standings.Submission
	code, _ := do(t, r, postJSON("/api/v1/submissions", `{"team_id":0,"problem_id":"A","result":"AC","minute":"5"}`), &sub)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, sub.TeamID)

	code, _ = do(t, r, postForm("/api/v1/submissions", url.Values{"team_id": {"0"}, "problem_id": {"A"}, "result": {"WA"}, "minute": {"3"}}), nil)
	require.Equal(t, http.StatusOK, code)

	board, err := state.BoardAt(cfg.Contest.DurationSeconds())
	require.NoError(t, err)
	assert.Equal(t, "+1", board.Rows[0].Cells["A"].Symbol)
}

func TestRegisterTeam(t *testing.T) {
	r, state, _ := setup(t)

	var created struct {
		TeamID int `json:"team_id"`
	}
	code, _ := do(t, r, postForm("/api/v1/teams", url.Values{"team_name": {"NewTeam"}}), &created)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 8, created.TeamID)

	board, err := state.BoardAt(18000)
	require.NoError(t, err)
	last := board.Rows[len(board.Rows)-1]
	assert.Equal(t, "NewTeam", last.Team)

	var teams []standings.Team
	code, _ = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil), &teams)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, teams, 3)
	assert.Equal(t, 8, teams[2].ID)

	code, _ = do(t, r, postJSON("/api/v1/teams", `{"team_name":"   "}`), nil)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = do(t, r, postJSON("/api/v1/teams", `{}`), nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestReload(t *testing.T) {
	r, state, cfg := setup(t)

	_, err := state.RegisterTeam("Transient")
	require.NoError(t, err)

	appended := contestDat + "@s 7,B,1,500,OK\n"
	require.NoError(t, os.WriteFile(cfg.Source.Path, []byte(appended), 0o644))

	var counts map[string]int
	code, _ := do(t, r, postJSON("/api/v1/reload", ""), &counts)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 3, counts["submissions_loaded"])
	assert.Equal(t, 2, counts["teams_loaded"])

	teams, err := state.Teams()
	require.NoError(t, err)
	assert.Len(t, teams, 2)

	// a broken source keeps the current state
	require.NoError(t, os.Remove(cfg.Source.Path))
	code, _ = do(t, r, postJSON("/api/v1/reload", ""), nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	meta, err := state.Metadata()
	require.NoError(t, err)
	assert.Equal(t, 3, meta.Submissions)
}

func TestGetBaseline(t *testing.T) {
	r, _, _ := setup(t)

	var baseline standings.Baseline
	code, _ := do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/baseline", nil), &baseline)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"A", "B"}, baseline.ProblemIDs)
	require.Equal(t, 1, baseline.Rows[0].TeamID)
	a := baseline.Rows[0].Final[0]
	assert.True(t, a.Accepted)
	assert.Equal(t, 23, a.Penalty)
	assert.Equal(t, 2, a.TotalAttempts)
}

func TestMetricsEndpoint(t *testing.T) {
	r, _, _ := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "luboard_resolves_total")
}

func TestMutationsAreRateLimited(t *testing.T) {
	_, _, cfg := setup(t)
	cfg.Admin.RateLimit = 0.001
	cfg.Admin.Burst = 1
	log, err := loader.Load(cfg.Source)
	require.NoError(t, err)
	r := NewAdminRouter(cfg, contest.New(log, contest.Options{}))

	code, _ := do(t, r, postJSON("/api/v1/teams", `{"team_name":"One"}`), nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, postJSON("/api/v1/teams", `{"team_name":"Two"}`), nil)
	assert.Equal(t, http.StatusTooManyRequests, code)

	// reads are not limited
	code, _ = do(t, r, httptest.NewRequest(http.MethodGet, "/api/v1/teams", nil), nil)
	assert.Equal(t, http.StatusOK, code)
}
