package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Mrlaolu/luBoard/internal/config"
	"github.com/Mrlaolu/luBoard/internal/contest"
	"github.com/Mrlaolu/luBoard/internal/loader"
	"github.com/Mrlaolu/luBoard/internal/pubsub"
	"github.com/Mrlaolu/luBoard/internal/standings"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func sampleLog() *loader.ContestLog {
	log := loader.NewContestLog()
	log.Problems["A"] = standings.Problem{ID: "A", Penalty: 20}
	log.Problems["B"] = standings.Problem{ID: "B", Penalty: 20}
	log.Teams[1] = standings.Team{ID: 1, School: "MIT", Name: "Alpha"}
	log.Teams[2] = standings.Team{ID: 2, Name: "Beta"}
	log.Submissions = []standings.Submission{
		{TeamID: 1, ProblemID: "A", Elapsed: 60},
		{TeamID: 1, ProblemID: "A", Elapsed: 200, Accepted: true},
		{TeamID: 1, ProblemID: "B", Elapsed: 300, Accepted: true},
		{TeamID: 2, ProblemID: "A", Elapsed: 400},
	}
	return log
}

func setup(t *testing.T) (*gin.Engine, *contest.State, *pubsub.Broker) {
	t.Helper()
	cfg := config.Default()
	broker := pubsub.NewBroker(cfg.Events.History)
	state := contest.New(sampleLog(), contest.Options{DurationSeconds: cfg.Contest.DurationSeconds(), Broker: broker})
	return NewUserRouter(&cfg, state, broker), state, broker
}

func get(t *testing.T, r http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if out != nil {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env
}

func TestGetContest(t *testing.T) {
	r, _, _ := setup(t)

	w := get(t, r, "/api/v1/contest")
	require.Equal(t, http.StatusOK, w.Code)

	var meta contest.Metadata
	decode(t, w, &meta)
	assert.Equal(t, []string{"A", "B"}, meta.Problems)
	assert.Equal(t, 300*60, meta.TotalDurationSec)
	assert.Equal(t, 2, meta.Teams)
}

func TestGetBoard(t *testing.T) {
	r, _, _ := setup(t)

	w := get(t, r, "/api/v1/board/150")
	require.Equal(t, http.StatusOK, w.Code)

	var board standings.Board
	decode(t, w, &board)
	require.Len(t, board.Rows, 2)
	assert.Equal(t, 150, board.Cutoff)
	for _, row := range board.Rows {
		if row.TeamID == 1 {
			assert.Equal(t, "-1", row.Cells["A"].Symbol)
			assert.Empty(t, row.Cells["B"].Symbol)
		}
	}

	w = get(t, r, "/api/v1/board/18000")
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &board)
	assert.Equal(t, 1, board.Rows[0].TeamID)
	assert.Equal(t, 28, board.Rows[0].Penalty)
	require.Len(t, board.Statistics, 2)
	assert.Equal(t, 3, board.Statistics[0].Submitted)
	assert.Equal(t, 33, board.Statistics[0].AcceptedPercent)
}

func TestGetBoard_BadCutoff(t *testing.T) {
	r, _, _ := setup(t)

	for _, raw := range []string{"abc", "-5", "1.5"} {
		w := get(t, r, "/api/v1/board/"+raw)
		assert.Equal(t, http.StatusBadRequest, w.Code, raw)
		env := decode(t, w, nil)
		assert.Equal(t, -1, env.Code)
	}
}

func TestGetBoard_Unavailable(t *testing.T) {
	cfg := config.Default()
	broker := pubsub.NewBroker(0)
	state := contest.NewUnavailable(errors.New("missing"), contest.Options{DurationSeconds: 60})
	r := NewUserRouter(&cfg, state, broker)

	w := get(t, r, "/api/v1/board/10")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, decode(t, w, nil).Message, "unavailable")

	w = get(t, r, "/api/v1/contest")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestExportBoard(t *testing.T) {
	r, _, _ := setup(t)

	w := get(t, r, "/api/v1/board/600/export.xlsx")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "board-600.xlsx")
	// xlsx files are zip archives
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
}

func TestRankHistoryChart(t *testing.T) {
	r, _, _ := setup(t)

	w := get(t, r, "/api/v1/teams/2/rank-history.png?step=600")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))

	assert.Equal(t, http.StatusNotFound, get(t, r, "/api/v1/teams/99/rank-history.png").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/v1/teams/x/rank-history.png").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/v1/teams/1/rank-history.png?step=0").Code)
}

func TestRankHistoryChart_RejectsTinySteps(t *testing.T) {
	r, _, _ := setup(t)

	w := get(t, r, "/api/v1/teams/1/rank-history.png?step=1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w, nil).Message, "step too small")

	w = get(t, r, "/api/v1/teams/1/rank-history.png?step=60")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestServesEmbeddedUI(t *testing.T) {
	r, _, _ := setup(t)

	w := get(t, r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "luBoard")

	w = get(t, r, "/replay/anything")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<table id=\"board\">")
}

func TestEventsWebsocket(t *testing.T) {
	r, state, _ := setup(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/ws/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// the initial load is replayed from history
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev pubsub.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "reload", ev.Stream)

	_, err = state.InjectSubmission(2, "B", true, 7)
	require.NoError(t, err)

	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "submission", ev.Stream)
	data, ok := ev.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 420, data["elapsed"])
}
