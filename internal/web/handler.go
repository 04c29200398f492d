// Package web serves the admin dashboard pages.
package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/xenking/budogu-admin/internal/dashboard"
	"github.com/xenking/budogu-admin/internal/domain/product"
	"github.com/xenking/budogu-admin/internal/web/i18n"
	"github.com/xenking/budogu-admin/internal/web/templates"
)

// Config holds the dashboard web settings.
type Config struct {
	// SessionTTL is how long an idle session keeps its form state.
	SessionTTL time.Duration
	// SecureCookies marks cookies Secure, for HTTPS deployments.
	SecureCookies bool
	// MaxSessions caps the live sessions; the least recently seen one is
	// dropped to make room. Zero means 10000.
	MaxSessions int
}

// Handler serves the dashboard. Every browser session gets its own
// dashboard.Controller.
type Handler struct {
	sessions *sessions
}

// NewHandler returns a Handler whose sessions use catalog.
func NewHandler(catalog dashboard.Catalog, cfg Config) *Handler {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 10000
	}
	return &Handler{sessions: newSessions(catalog, cfg.SessionTTL, cfg.MaxSessions, cfg.SecureCookies)}
}

// StartSessionEviction forgets idle sessions until ctx is done.
func (h *Handler) StartSessionEviction(ctx context.Context) {
	h.sessions.startEviction(ctx)
}

// Register mounts the dashboard routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Dashboard)
	mux.HandleFunc("POST "+templates.PathFormNew, h.OpenCreate)
	mux.HandleFunc("POST /form/edit/{id}", h.OpenEdit)
	mux.HandleFunc("POST "+templates.PathFormField, h.UpdateField)
	mux.HandleFunc("POST "+templates.PathFormSubmit, h.Submit)
	mux.HandleFunc("POST "+templates.PathFormCancel, h.Cancel)
	mux.HandleFunc("GET /products/{id}/delete", h.ConfirmDelete)
	mux.HandleFunc("POST /products/{id}/delete", h.Delete)
}

// request is the per-request view of the session and language.
type request struct {
	ctx     context.Context
	session *session
	lang    language.Tag
	printer *message.Printer
}

func (h *Handler) begin(w http.ResponseWriter, r *http.Request) request {
	s := h.sessions.get(w, r)
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return request{
		ctx:     zctx.With(r.Context(), zap.String("session", s.id[:8])),
		session: s,
		lang:    tag,
		printer: i18n.Printer(tag),
	}
}

// Dashboard re-fetches and renders the list. The view that follows a
// mutation redirect reuses the list that mutation settled, unless no fetch
// has succeeded yet. A request arriving while the first fetch is running
// sees the loading state.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	req := h.begin(w, r)
	ctrl := req.session.ctrl

	settled := req.session.takeFresh(time.Now()) && ctrl.Loaded() && !ctrl.LoadFailed()
	if !settled && req.session.beginLoad() {
		_ = ctrl.Load(req.ctx)
		req.session.endLoad()
	}

	view := templates.DashboardView{
		Loading:  !ctrl.Loaded(),
		Products: ctrl.Products(),
	}
	switch s := ctrl.State().(type) {
	case dashboard.Creating:
		view.Form = &templates.Form{Draft: s.Draft}
	case dashboard.Editing:
		view.Form = &templates.Form{Editing: true, ID: s.ID, Draft: s.Draft}
	}

	h.render(w, r, req, http.StatusOK, templates.Dashboard(req.printer, view))
}

// OpenCreate opens an empty create form.
func (h *Handler) OpenCreate(w http.ResponseWriter, r *http.Request) {
	req := h.begin(w, r)
	req.session.ctrl.OpenCreate()
	redirectHome(w, r, req)
}

// OpenEdit opens the edit form of a listed product.
func (h *Handler) OpenEdit(w http.ResponseWriter, r *http.Request) {
	req := h.begin(w, r)
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := req.session.ctrl.OpenEditByID(id); err != nil {
		if errors.Is(err, dashboard.ErrUnknownProduct) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	redirectHome(w, r, req)
}

// UpdateField sets one draft field from the field and value form values.
func (h *Handler) UpdateField(w http.ResponseWriter, r *http.Request) {
	req := h.begin(w, r)
	field := product.Field(r.PostFormValue("field"))
	if err := req.session.ctrl.UpdateField(field, r.PostFormValue("value")); err != nil {
		var unknown *product.UnknownFieldError
		switch {
		case errors.As(err, &unknown):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, dashboard.ErrFormHidden):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	redirectHome(w, r, req)
}

// Submit copies every posted field into the draft and submits it. Catalog
// failures are logged by the controller and the form stays open.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	req := h.begin(w, r)
	ctrl := req.session.ctrl

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, f := range product.Fields() {
		if _, ok := r.PostForm[string(f)]; !ok {
			continue
		}
		if err := ctrl.UpdateField(f, r.PostForm.Get(string(f))); err != nil {
			break
		}
	}

	if err := ctrl.Submit(req.ctx); err != nil && errors.Is(err, dashboard.ErrFormHidden) {
		zctx.From(req.ctx).Debug("Submit without open form")
	}
	redirectHome(w, r, req)
}

// Cancel hides the form.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	req := h.begin(w, r)
	req.session.ctrl.Cancel()
	redirectHome(w, r, req)
}

// ConfirmDelete shows the delete question. It never deletes.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	req := h.begin(w, r)
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.render(w, r, req, http.StatusOK, templates.ConfirmDelete(req.printer, id, dashboard.DeleteConfirmMessage))
}

// Delete deletes the product when the confirmation page answered yes.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	req := h.begin(w, r)
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	answer := dashboard.Answer(r.PostFormValue("confirm") == "yes")
	_ = req.session.ctrl.Delete(req.ctx, id, answer)
	redirectHome(w, r, req)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, req request, status int, body templ.Component) {
	languages := make([]templates.LanguageOption, 0, len(i18n.Supported()))
	for _, tag := range i18n.Supported() {
		languages = append(languages, templates.LanguageOption{
			Tag:    tag,
			Label:  languageLabel(tag),
			Active: tag == req.lang,
		})
	}

	ctx := templ.WithChildren(r.Context(), body)
	templ.Handler(
		templates.Layout(req.printer, req.lang, languages),
		templ.WithStatus(status),
	).ServeHTTP(w, r.WithContext(ctx))
}

func languageLabel(tag language.Tag) string {
	switch tag {
	case language.English:
		return "English"
	case language.Chinese:
		return "中文"
	default:
		return "日本語"
	}
}

// redirectHome answers a handled form post with 303 to the list.
func redirectHome(w http.ResponseWriter, r *http.Request, req request) {
	req.session.markFresh(time.Now())
	http.Redirect(w, r, templates.PathHome, http.StatusSeeOther)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
