package webserver

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	taskerrors "taskdeck/cli/internal/errors"
	"taskdeck/cli/internal/webui"
)

//go:embed templates/index.html
var templateFS embed.FS

// maxFormBytes caps the size of a submitted task form.
const maxFormBytes = 1 << 20

type handlers struct {
	cfg  Config
	page *template.Template
}

func newHandlers(cfg Config) (*handlers, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &handlers{cfg: cfg, page: page}, nil
}

// registerRoutes sets up the dashboard routes on the given mux.
func registerRoutes(mux *http.ServeMux, h *handlers) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /execute", h.handleExecute)
	mux.HandleFunc("GET /healthz", handleHealth)
}

// pageView is the template model. Fragment fields are trusted markup built
// by package markup from escaped pieces.
type pageView struct {
	BackendURL      string
	Tools           template.HTML
	ToolOptions     []string
	History         template.HTML
	Results         template.HTML
	Alert           string
	Input           string
	SelectedTool    string
	Submit          webui.Control
	LabelSubmitting string
	MsgEmptyTask    string
}

func viewOf(p webui.Page, backendURL string) pageView {
	return pageView{
		BackendURL:      backendURL,
		Tools:           template.HTML(p.Tools),
		ToolOptions:     p.ToolOptions,
		History:         template.HTML(p.History),
		Results:         template.HTML(p.Results),
		Alert:           p.Alert,
		Input:           p.Input,
		SelectedTool:    p.SelectedTool,
		Submit:          p.Submit,
		LabelSubmitting: webui.LabelSubmitting,
		MsgEmptyTask:    webui.MsgEmptyTask,
	}
}

func (h *handlers) newSession(r *http.Request) *webui.Session {
	opts := []webui.Option{
		webui.WithGuard(h.cfg.Guard),
		webui.WithLogger(requestLogger(r, h.cfg.Logger)),
	}
	if h.cfg.Sink != nil {
		opts = append(opts, webui.WithHistorySink(h.cfg.Sink))
	}
	return webui.NewSession(h.cfg.API, opts...)
}

// handleIndex is a page load: tools and history are fetched and rendered.
func (h *handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	s := h.newSession(r)
	s.Start(r.Context())
	h.render(w, r, http.StatusOK, s.Snapshot())
}

// handleExecute submits the posted task. Blank input re-renders the page
// with the alert and makes no backend request; a refused overlapping
// submission answers 409. Backend failures are shown in the results region
// with status 200.
func (h *handlers) handleExecute(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s := h.newSession(r)
	s.SetInput(r.PostFormValue("task"), r.PostFormValue("tool"))

	// Blank input is refused before the page load so it costs no backend
	// request at all; the tools and history regions keep their placeholders.
	if strings.TrimSpace(r.PostFormValue("task")) == "" {
		_, _ = s.ExecuteTask(r.Context())
		h.render(w, r, http.StatusOK, s.Snapshot())
		return
	}
	s.Start(r.Context())

	status := http.StatusOK
	if _, err := s.ExecuteTask(r.Context()); err != nil {
		switch {
		case errors.Is(err, webui.ErrBusy):
			status = http.StatusConflict
			s.SetAlert("Another task is already executing. Please wait for it to finish.")
		default:
			requestLogger(r, h.cfg.Logger).Info("task failed", "kind", taskerrors.KindOf(err))
		}
	}
	h.render(w, r, status, s.Snapshot())
}

func (h *handlers) render(w http.ResponseWriter, r *http.Request, status int, p webui.Page) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, viewOf(p, h.cfg.BackendURL)); err != nil {
		requestLogger(r, h.cfg.Logger).Error("render page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// handleHealth returns a simple liveness response.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"}) //nolint:errcheck
}

func requestLogger(r *http.Request, base *slog.Logger) *slog.Logger {
	if id := requestIDFrom(r.Context()); id != "" {
		return base.With("request_id", id)
	}
	return base
}
