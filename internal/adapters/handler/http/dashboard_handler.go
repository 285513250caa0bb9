package http

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/votingapp/api/internal/adapters/session"
	"github.com/votingapp/api/internal/core/domain"
	"github.com/votingapp/api/internal/core/ports"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// DashboardHandler serves the human-facing pages: the endpoint index, the
// login form, and the password-gated vote dashboard.
type DashboardHandler struct {
	voteService ports.VoteService
	authService ports.AuthService
	cookies     *session.CookieManager
	indexHTML   []byte
}

func NewDashboardHandler(voteService ports.VoteService, authService ports.AuthService, cookies *session.CookieManager, restaurants []string) *DashboardHandler {
	return &DashboardHandler{
		voteService: voteService,
		authService: authService,
		cookies:     cookies,
		indexHTML:   buildIndex(restaurants),
	}
}

func buildIndex(restaurants []string) []byte {
	var b strings.Builder
	b.WriteString("<h1>Welcome to the Voting App</h1>\n")
	b.WriteString("<p><b>Web Interface:</b></p>\n")
	b.WriteString(`<p><a href="/votes">Restaurant Voting Dashboard</a> (Password protected)</p>` + "\n")
	b.WriteString("<p><b>To vote via API, you can call the following endpoints:</b></p>\n")
	for _, name := range restaurants {
		fmt.Fprintf(&b, "<p>/api/%s</p>\n", template.HTMLEscapeString(name))
	}
	b.WriteString("<p><b>To query the votes via API:</b></p>\n")
	b.WriteString("<p>/api/getvotes</p>\n")
	b.WriteString("<p>/api/getheavyvotes (this generates artificial CPU/memory load)</p>\n")
	return []byte(b.String())
}

func (h *DashboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(h.indexHTML)
}

type loginPage struct {
	Error string
}

func (h *DashboardHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, "")
}

func (h *DashboardHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	s, err := h.authService.Login(r.FormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthorized) {
			h.renderLogin(w, "Invalid password")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.cookies.Set(w, s.ID)
	http.Redirect(w, r, "/votes", http.StatusSeeOther)
}

func (h *DashboardHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := h.cookies.Read(r); ok {
		if err := h.authService.Logout(id); err != nil {
			logrus.WithError(err).Warn("logout failed")
		}
	}
	h.cookies.Clear(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

type votesPage struct {
	Votes []domain.RestaurantVotes
}

// Votes is the only session-gated HTML route; anonymous visitors bounce to
// the login form.
func (h *DashboardHandler) Votes(w http.ResponseWriter, r *http.Request) {
	id, ok := h.cookies.Read(r)
	if !ok || !h.authService.Authenticated(id) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	votes, err := h.voteService.AllVotes(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := pages.ExecuteTemplate(w, "votes.html", votesPage{Votes: votes}); err != nil {
		logrus.WithError(err).Error("rendering votes page")
	}
}

func (h *DashboardHandler) renderLogin(w http.ResponseWriter, errMsg string) {
	if err := pages.ExecuteTemplate(w, "login.html", loginPage{Error: errMsg}); err != nil {
		logrus.WithError(err).Error("rendering login page")
	}
}
