package webserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"taskdeck/cli/internal/backend"
	taskerrors "taskdeck/cli/internal/errors"
	"taskdeck/cli/internal/task"
	"taskdeck/cli/internal/webui"
)

type fakeAPI struct {
	mu       sync.Mutex
	requests []task.ExecuteRequest
	result   *task.Task
	err      error
	history  []task.Task
}

func (f *fakeAPI) Execute(_ context.Context, req task.ExecuteRequest) (*task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeAPI) Tools(context.Context) ([]task.Tool, error) {
	return []task.Tool{{Name: "search", Description: "Web <search>"}, {Name: "docs", Description: "Docs"}}, nil
}

func (f *fakeAPI) History(context.Context) ([]task.Task, error) { return f.history, nil }

func (f *fakeAPI) Task(context.Context, int) (*task.Task, error) { return nil, nil }

func (f *fakeAPI) Health(context.Context) (*task.Health, error) {
	return &task.Health{Status: "healthy"}, nil
}

func newTestServer(t *testing.T, api backend.API, guard *webui.Guard) http.Handler {
	t.Helper()
	srv, err := New(Config{
		NoBrowser:  true,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		API:        api,
		BackendURL: "http://127.0.0.1:5000",
		Guard:      guard,
	})
	require.NoError(t, err)
	return srv.Handler()
}

func postTask(handler http.Handler, text, tool string) *httptest.ResponseRecorder {
	form := url.Values{"task": {text}, "tool": {tool}}
	req := httptest.NewRequest(http.MethodPost, "/execute", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// optionValues returns the value attribute of every option in the page.
func optionValues(t *testing.T, body string) []string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "option" {
			for _, a := range n.Attr {
				if a.Key == "value" {
					out = append(out, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func TestIndexRendersPage(t *testing.T) {
	api := &fakeAPI{history: []task.Task{{ID: 1, Text: "old task", Status: task.StatusCompleted}}}
	handler := newTestServer(t, api, nil)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(backend.RequestIDHeader))

	body := rec.Body.String()
	assert.Contains(t, body, "<!doctype html>")
	assert.Contains(t, body, "Web &lt;search&gt;")
	assert.Contains(t, body, "Task #1")
	assert.Contains(t, body, webui.LabelIdle)
	assert.Equal(t, []string{"", "search", "docs"}, optionValues(t, body))
}

func TestExecuteRendersResult(t *testing.T) {
	api := &fakeAPI{result: &task.Task{ID: 9, Text: "find go", Status: task.StatusCompleted, ToolUsed: "search"}}
	handler := newTestServer(t, api, nil)

	rec := postTask(handler, "  find go ", "search")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Task #9")

	require.Len(t, api.requests, 1)
	assert.Equal(t, "find go", api.requests[0].Task)
	require.NotNil(t, api.requests[0].Tool)
	assert.Equal(t, "search", *api.requests[0].Tool)
}

func TestExecuteAutoToolSendsNull(t *testing.T) {
	api := &fakeAPI{result: &task.Task{ID: 1, Status: task.StatusCompleted}}
	handler := newTestServer(t, api, nil)

	postTask(handler, "anything", "")
	require.Len(t, api.requests, 1)
	assert.Nil(t, api.requests[0].Tool)
}

func TestExecuteBlankShowsAlert(t *testing.T) {
	api := &fakeAPI{}
	handler := newTestServer(t, api, nil)

	rec := postTask(handler, "   ", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), webui.MsgEmptyTask)
	assert.Empty(t, api.requests)
}

func TestExecuteBlankMakesNoBackendRequest(t *testing.T) {
	var hits atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{}`) //nolint:errcheck
	}))
	defer upstream.Close()

	api, err := backend.New(upstream.URL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	handler := newTestServer(t, api, nil)

	for _, input := range []string{"", "   ", "\n\t "} {
		rec := postTask(handler, input, "search")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), webui.MsgEmptyTask)
	}
	assert.Zero(t, hits.Load())

	// The page also refuses blank input before submitting.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), "input.value.trim() === ''")
	assert.Contains(t, rec.Body.String(), `alert("Please enter a task")`)
	assert.Equal(t, int32(2), hits.Load(), "page load fetches tools and history")
}

func TestExecuteApplicationErrorShowsCard(t *testing.T) {
	api := &fakeAPI{err: taskerrors.Wrap(taskerrors.Application, "execute task",
		&backend.APIError{StatusCode: 500, Message: "boom <b>"})}
	handler := newTestServer(t, api, nil)

	rec := postTask(handler, "do it", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "boom &lt;b&gt;")
	assert.Contains(t, body, "do it", "input is kept after a failure")
}

func TestExecuteWhileBusyConflicts(t *testing.T) {
	guard := webui.NewGuard()
	require.True(t, guard.TryAcquire())
	api := &fakeAPI{}
	handler := newTestServer(t, api, guard)

	rec := postTask(handler, "second", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already executing")
	assert.Empty(t, api.requests)
}

func TestHealthz(t *testing.T) {
	handler := newTestServer(t, &fakeAPI{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(backend.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(backend.RequestIDHeader))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestUnknownPathIsNotFound(t *testing.T) {
	handler := newTestServer(t, &fakeAPI{}, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewRequiresAPI(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
}
