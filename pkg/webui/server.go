// Package webui serves the extractor as a single server-rendered page.
package webui

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/dtnitsch/web-content-extractor/pkg/app"
	"github.com/dtnitsch/web-content-extractor/pkg/form"
	"github.com/dtnitsch/web-content-extractor/pkg/history"
	"github.com/dtnitsch/web-content-extractor/pkg/render"
	"github.com/dtnitsch/web-content-extractor/pkg/theme"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server handles the page and its actions for one Controller.
type Server struct {
	ctrl      *app.Controller
	logger    *slog.Logger
	reqLogger zerolog.Logger
	indicator *render.CopyIndicator
	tmpl      *template.Template
	// base outlives individual requests; agent calls run under it.
	base context.Context
	now  func() time.Time
}

// New builds a server. Agent calls started from the page run under ctx.
func New(ctx context.Context, ctrl *app.Controller, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tmpl, err := template.New("index.html").Funcs(funcs).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Server{
		ctrl:      ctrl,
		logger:    logger,
		reqLogger: httplog.NewLogger("wce", httplog.Options{JSON: true, Concise: true}),
		indicator: render.NewCopyIndicator(render.CopiedResetDelay),
		tmpl:      tmpl,
		base:      ctx,
		now:       time.Now,
	}, nil
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(s.reqLogger))

	r.Get("/", s.handleIndex)
	r.Post("/form", s.handleForm)
	r.Get("/history/{id}", s.handleSelectHistory)
	r.Post("/history/clear", s.handleClearHistory)
	r.Post("/theme", s.handleTheme)
	r.Get("/export.csv", s.handleExportCSV)
	r.Post("/copy", s.handleCopyAll)
	r.Post("/copy/{index}", s.handleCopyEntry)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return r
}

// ListenAndServe serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web UI listening", "addr", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := s.page(s.ctrl.State(), r.URL.Query().Get("notice"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render page", "error", err)
	}
}

// handleForm applies the submitted field values, then the action named by
// the button that was pressed.
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	_, err := s.ctrl.Edit(func(f form.State) (form.State, error) {
		f = f.SetURL(r.PostForm.Get("url")).
			SetPending(r.PostForm.Get("pending")).
			SetInstructions(r.PostForm.Get("instructions"))
		if v := r.PostForm.Get("format"); v != "" {
			var err error
			if f, err = f.SetFormat(v); err != nil {
				return f, err
			}
		}
		if label := r.PostForm.Get("toggle"); label != "" {
			f = f.Toggle(label)
		}
		if r.PostForm.Get("action") == "add" {
			f = f.AddCustom()
		}
		return f, nil
	})
	if err != nil {
		s.redirect(w, r, err.Error())
		return
	}

	if r.PostForm.Get("action") == "extract" {
		if _, err := s.ctrl.Submit(s.base); err != nil {
			entry := httplog.LogEntry(r.Context())
			entry.Warn().Err(err).Msg("submit rejected")
			s.redirect(w, r, err.Error())
			return
		}
	}
	s.redirect(w, r, "")
}

func (s *Server) handleSelectHistory(w http.ResponseWriter, r *http.Request) {
	if _, err := s.ctrl.SelectHistory(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			http.Error(w, "history item not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.redirect(w, r, "")
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	err := s.ctrl.ClearHistory(r.PostForm.Get("confirm") == "yes")
	switch {
	case errors.Is(err, app.ErrNotConfirmed):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case err != nil:
		s.logger.Error("failed to clear history", "error", err)
		http.Error(w, "failed to clear history", http.StatusInternalServerError)
	default:
		s.redirect(w, r, "")
	}
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	if _, err := s.ctrl.ToggleTheme(); err != nil {
		s.logger.Error("failed to toggle theme", "error", err)
		s.redirect(w, r, "Could not save the theme")
		return
	}
	s.redirect(w, r, "")
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	data, ok := render.ExportCSV(s.ctrl.State().View().Result)
	if !ok {
		http.Error(w, "no tabular data to export", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", render.CSVContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", render.CSVFileName(s.now())))
	w.Write(data)
}

func (s *Server) handleCopyAll(w http.ResponseWriter, r *http.Request) {
	view := s.ctrl.State().View()
	if view.Kind != render.KindSuccess {
		http.Error(w, "nothing to copy", http.StatusNotFound)
		return
	}
	s.copied(w, render.CopyAllLabel, render.CopyAllText(view.Result))
}

func (s *Server) handleCopyEntry(w http.ResponseWriter, r *http.Request) {
	view := s.ctrl.State().View()
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || view.Kind != render.KindSuccess || i < 0 || i >= len(view.Result.ExtractedData) {
		http.Error(w, "nothing to copy", http.StatusNotFound)
		return
	}
	s.copied(w, render.EntryLabel(i), render.EntryText(view.Result.ExtractedData[i]))
}

// copied returns text for the browser to put on the clipboard and shows the
// indicator on the next render.
func (s *Server) copied(w http.ResponseWriter, label, text string) {
	s.indicator.Mark(label)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(text))
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request, notice string) {
	target := "/"
	if notice != "" {
		target += "?notice=" + url.QueryEscape(notice)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

type pageData struct {
	State     app.State
	View      render.View
	Chips     []form.Chip
	Custom    []string
	Formats   []models.FormatOption
	Sidebar   []render.SidebarEntry
	Count     string
	CanSubmit bool
	Notice    string
	Copied    string
	// Refresh is the meta refresh interval in seconds, 0 for none.
	Refresh int
}

func (s *Server) page(st app.State, notice string) pageData {
	d := pageData{
		State:     st,
		View:      st.View(),
		Chips:     st.Form.Chips(),
		Custom:    st.Form.Custom(),
		Formats:   models.FormatOptions,
		Sidebar:   render.Sidebar(st.History, st.SelectedID, nil),
		Count:     render.CountLabel(len(st.History)),
		CanSubmit: st.Form.CanSubmit(),
		Notice:    notice,
		Copied:    s.indicator.Label(),
	}
	switch {
	case st.Busy():
		d.Refresh = 1
	case d.Copied != "":
		d.Refresh = int(render.CopiedResetDelay / time.Second)
	}
	return d
}

var funcs = template.FuncMap{
	"entryLabel":   render.EntryLabel,
	"copyAllLabel": func() string { return render.CopyAllLabel },
	"isDark":       func(t theme.Theme) bool { return t == theme.Dark },
}
