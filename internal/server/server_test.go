package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/kurobon/gitsim/internal/git"
	"github.com/kurobon/gitsim/internal/lesson"
	"github.com/kurobon/gitsim/internal/metrics"
	"github.com/kurobon/gitsim/internal/progress"
	"github.com/kurobon/gitsim/internal/simulator"
	"github.com/kurobon/gitsim/internal/state"
)

func seqEnv() *git.Env {
	n := 0
	return &git.Env{NewHash: func(func(string) bool) string {
		n++
		return fmt.Sprintf("h%06d", n)
	}}
}

func newTestServer(t *testing.T, withProgress bool) *httptest.Server {
	t.Helper()
	logger := zaptest.NewLogger(t)
	reg := prometheus.NewRegistry()

	var tracker *progress.Tracker
	if withProgress {
		tracker = progress.NewTracker(progress.NewMemoryStore(), logger)
	}
	sessions := state.NewSessionManager()
	svc := simulator.New(sessions, tracker, simulator.Options{
		XPPerCommand:  10,
		DefaultUserID: "local",
		Env:           seqEnv(),
	}, logger, metrics.New(reg))

	lessons := lesson.NewEngine(lesson.Builtin(), sessions, tracker, logger)

	ts := httptest.NewServer(NewServer(svc, lessons, logger, reg))
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := ts.Client().Post(ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func get(t *testing.T, ts *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestServerEndpoints(t *testing.T) {
	ts := newTestServer(t, true)
	var sessionID string

	t.Run("Ping", func(t *testing.T) {
		resp, body := get(t, ts, "/ping")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "pong")
	})

	t.Run("InitSession", func(t *testing.T) {
		resp, out := post(t, ts, "/api/session/init", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "session created", out["status"])
		sessionID, _ = out["sessionId"].(string)
		require.NotEmpty(t, sessionID)
	})

	t.Run("Add File And Commit", func(t *testing.T) {
		resp, out := post(t, ts, "/api/files", map[string]string{"sessionId": sessionID})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		file := out["file"].(map[string]any)
		assert.Equal(t, "file2.txt", file["name"])
		assert.Equal(t, "untracked", file["status"])

		_, out = post(t, ts, "/api/command", map[string]string{"sessionId": sessionID, "userId": "alice", "command": "git add ."})
		assert.Equal(t, "Files staged for commit", out["output"])
		assert.Equal(t, "applied", out["outcome"])

		_, out = post(t, ts, "/api/command", map[string]string{"sessionId": sessionID, "userId": "alice", "command": `git commit -m "Add file"`})
		assert.Equal(t, "[main h000001] Add file\n1 file(s) changed", out["output"])
		st := out["state"].(map[string]any)
		assert.Equal(t, "h000001", st["head"])
	})

	t.Run("File Collision", func(t *testing.T) {
		resp, out := post(t, ts, "/api/files", map[string]string{"sessionId": sessionID, "name": "README.md"})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Contains(t, out["error"], "file already exists")
	})

	t.Run("Modify File", func(t *testing.T) {
		resp, out := post(t, ts, "/api/files/modify", map[string]string{"sessionId": sessionID, "name": "README.md"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		files := out["state"].(map[string]any)["files"].([]any)
		assert.Equal(t, "modified", files[0].(map[string]any)["status"])

		resp, _ = post(t, ts, "/api/files/modify", map[string]string{"sessionId": sessionID, "name": "ghost.txt"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("State", func(t *testing.T) {
		resp, body := get(t, ts, "/api/state?sessionId="+sessionID)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var view state.View
		require.NoError(t, json.Unmarshal(body, &view))
		assert.Equal(t, "main", view.CurrentBranch)
		assert.Equal(t, 2, view.CommitCount)
		require.NotEmpty(t, view.Commits)
		assert.True(t, view.Commits[0].IsHead)
	})

	t.Run("Transcript", func(t *testing.T) {
		resp, body := get(t, ts, "/api/transcript?sessionId="+sessionID)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var entries []state.Entry
		require.NoError(t, json.Unmarshal(body, &entries))
		require.Len(t, entries, 2)
		assert.Equal(t, "git add .", entries[0].Input)
	})

	t.Run("Progress", func(t *testing.T) {
		resp, body := get(t, ts, "/api/progress?userId=alice")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var p progress.Progress
		require.NoError(t, json.Unmarshal(body, &p))
		assert.Equal(t, 20, p.XP)

		_, out := post(t, ts, "/api/progress/lessons", map[string]string{"userId": "alice", "lessonId": "basics"})
		assert.EqualValues(t, 70, out["xp"])
		_, out = post(t, ts, "/api/progress/badges", map[string]string{"userId": "alice", "badgeId": "committer"})
		assert.EqualValues(t, 170, out["xp"])
		_, out = post(t, ts, "/api/progress/xp", map[string]any{"userId": "alice", "amount": 5})
		assert.EqualValues(t, 175, out["xp"])
		_, out = post(t, ts, "/api/progress", map[string]any{"userId": "alice", "level": 4})
		assert.EqualValues(t, 4, out["level"])
		assert.EqualValues(t, 175, out["xp"])

		resp, _ = post(t, ts, "/api/progress/lessons", map[string]string{"userId": "alice"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Reset", func(t *testing.T) {
		resp, out := post(t, ts, "/api/session/reset", map[string]string{"sessionId": sessionID})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "reset", out["status"])
		st := out["state"].(map[string]any)
		assert.Equal(t, "a1b2c3d", st["head"])
		assert.EqualValues(t, 1, st["commitCount"])
	})

	t.Run("Metrics", func(t *testing.T) {
		resp, body := get(t, ts, "/metrics")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), `gitsim_commands_total{outcome="applied",subcommand="commit"} 1`)
		assert.Contains(t, string(body), "gitsim_sessions_active 1")
	})
}

func TestCommandRecreatesSession(t *testing.T) {
	ts := newTestServer(t, false)

	resp, out := post(t, ts, "/api/command", map[string]string{"sessionId": "lost-after-restart", "command": "git status"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "lost-after-restart", out["sessionId"])
	assert.True(t, strings.HasPrefix(out["output"].(string), "On branch main"))

	_, out = post(t, ts, "/api/command", map[string]string{"command": "npm install"})
	assert.NotEmpty(t, out["sessionId"])
	assert.Equal(t, "Command not found: npm install", out["output"])
	assert.Equal(t, "rejected", out["outcome"])
}

func TestServerErrors(t *testing.T) {
	ts := newTestServer(t, false)

	resp, err := ts.Client().Get(ts.URL + "/api/command")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, _ = post(t, ts, "/api/session/reset", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = post(t, ts, "/api/session/reset", map[string]string{"sessionId": "ghost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, ts, "/api/transcript?sessionId=ghost")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, ts, "/api/state")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, ts, "/api/progress?userId=alice")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	r, err := ts.Client().Post(ts.URL+"/api/command", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	r.Body.Close()
	assert.Equal(t, http.StatusBadRequest, r.StatusCode)
}

func TestWebSocket(t *testing.T) {
	ts := newTestServer(t, false)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws?sessionId=ws-1"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var initial map[string]any
	require.NoError(t, conn.ReadJSON(&initial))
	assert.Equal(t, "state", initial["type"])
	assert.Equal(t, "ws-1", initial["sessionId"])

	require.NoError(t, conn.WriteJSON(ClientMessage{Command: "git branch feature"}))

	var output, st map[string]any
	require.NoError(t, conn.ReadJSON(&output))
	require.NoError(t, conn.ReadJSON(&st))
	assert.Equal(t, "output", output["type"])
	data := output["data"].(map[string]any)
	assert.Equal(t, "Created branch feature", data["output"])
	assert.Equal(t, "applied", data["outcome"])
	assert.Equal(t, "state", st["type"])
	branches := st["data"].(map[string]any)["branches"].([]any)
	assert.Len(t, branches, 2)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{oops")))
	var errFrame map[string]any
	require.NoError(t, conn.ReadJSON(&errFrame))
	assert.Equal(t, "error", errFrame["type"])

	// The connection survives a bad frame
	require.NoError(t, conn.WriteJSON(ClientMessage{Command: "git switch feature"}))
	require.NoError(t, conn.ReadJSON(&output))
	assert.Equal(t, "Switched to branch 'feature'", output["data"].(map[string]any)["output"])
}

func TestLessons(t *testing.T) {
	ts := newTestServer(t, true)

	resp, body := get(t, ts, "/api/lessons?lang=ja")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lessons []lesson.Lesson
	require.NoError(t, json.Unmarshal(body, &lessons))
	require.NotEmpty(t, lessons)
	assert.Equal(t, "first-commit", lessons[0].ID)
	assert.Equal(t, "はじめてのコミット", lessons[0].Title)

	resp, out := post(t, ts, "/api/lessons/start", map[string]string{"lessonId": "first-commit"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sessionID := out["sessionId"].(string)
	files := out["state"].(map[string]any)["files"].([]any)
	assert.Len(t, files, 2)

	_, out = post(t, ts, "/api/lessons/verify", map[string]string{"sessionId": sessionID, "lessonId": "first-commit", "userId": "bob"})
	assert.Equal(t, false, out["success"])

	for _, line := range []string{"git add .", `git commit -m "hello"`} {
		post(t, ts, "/api/command", map[string]string{"sessionId": sessionID, "command": line})
	}

	_, out = post(t, ts, "/api/lessons/verify", map[string]string{"sessionId": sessionID, "lessonId": "first-commit", "userId": "bob"})
	assert.Equal(t, true, out["success"])
	assert.Equal(t, true, out["awarded"])

	resp, body = get(t, ts, "/api/progress?userId=bob")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p progress.Progress
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, []string{"first-commit"}, p.CompletedLessons)

	resp, _ = post(t, ts, "/api/lessons/start", map[string]string{"lessonId": "nope"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
