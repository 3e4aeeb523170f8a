package handlers_test

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/israil64/laptop-galaxy/internal/handlers"
	"github.com/israil64/laptop-galaxy/internal/models"
	"github.com/israil64/laptop-galaxy/internal/storage"
)

const loginPageTmpl = `<form method="POST" action="/admin/login">{{.CsrfField}}
{{range .Flashes}}<p class="flash">{{.Message}}</p>{{end}}</form>`

const dashboardTmpl = `<h1>Dashboard</h1>
<p>laptops: {{len .Laptops}}</p>
<p>pending: {{len .PendingReviews}}</p>
<p>messages: {{len .Messages}}</p>
{{range .Flashes}}<p class="flash">{{.Message}}</p>{{end}}`

// newAdminServer wires the admin panel the way cmd/server does, minus CSRF so
// the form posts in tests do not need a token round-trip.
func newAdminServer(t *testing.T) (*httptest.Server, storage.Store) {
	t.Helper()

	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)

	tmplDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmplDir, "login.html"), []byte(loginPageTmpl), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmplDir, "admin.html"), []byte(dashboardTmpl), 0o644))
	templates := handlers.NewTemplateCache()
	require.NoError(t, templates.Load(tmplDir))

	h := &handlers.AdminHandler{
		Store:        store,
		SessionStore: sessions.NewCookieStore([]byte("test-session-key-0123456789abcdef")),
		Templates:    templates,
		UploadDir:    t.TempDir(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/login", h.LoginGet)
	mux.HandleFunc("POST /admin/login", h.LoginPost)
	mux.HandleFunc("GET /admin/logout", h.Logout)
	mux.HandleFunc("GET /admin", h.AuthMiddleware(h.Dashboard))
	mux.HandleFunc("POST /admin/reviews/moderate", h.AuthMiddleware(h.ModerateReview))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, store
}

func seedUser(t *testing.T, store storage.Store, email, password, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = store.Users().Create(context.Background(), models.User{
		Username:  strings.Split(email, "@")[0],
		Email:     email,
		Password:  string(hash),
		Role:      role,
		CreatedAt: time.Now().Format(time.RFC3339),
	})
	require.NoError(t, err)
}

// adminClient keeps cookies and does not follow redirects, so tests can
// assert on the redirect targets directly.
func adminClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(target, form)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestAdminLoginRejectsNonAdminRole(t *testing.T) {
	srv, store := newAdminServer(t)
	seedUser(t, store, "shopper@example.com", "secret", "user")
	client := adminClient(t)

	resp := postForm(t, client, srv.URL+"/admin/login", url.Values{
		"email":    {"shopper@example.com"},
		"password": {"secret"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/login", resp.Header.Get("Location"))

	// The session never became authenticated.
	resp, err := client.Get(srv.URL + "/admin")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/login", resp.Header.Get("Location"))
}

func TestAdminLoginRejectsBadPassword(t *testing.T) {
	srv, store := newAdminServer(t)
	seedUser(t, store, "admin@example.com", "secret", "admin")
	client := adminClient(t)

	resp := postForm(t, client, srv.URL+"/admin/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"wrong"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/login", resp.Header.Get("Location"))
}

func TestAdminSessionLifecycle(t *testing.T) {
	srv, store := newAdminServer(t)
	seedUser(t, store, "admin@example.com", "secret", "admin")
	client := adminClient(t)

	// Unauthenticated dashboard access redirects to login.
	resp, err := client.Get(srv.URL + "/admin")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/login", resp.Header.Get("Location"))

	resp = postForm(t, client, srv.URL+"/admin/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"secret"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin", resp.Header.Get("Location"))

	resp, err = client.Get(srv.URL + "/admin")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/admin/logout")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/admin")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/login", resp.Header.Get("Location"))
}

func TestAdminModeratesReviewFromDashboard(t *testing.T) {
	srv, store := newAdminServer(t)
	seedUser(t, store, "admin@example.com", "secret", "admin")
	client := adminClient(t)

	hidden := false
	created, err := store.Reviews().Create(context.Background(), models.Review{
		Name:     "Priya",
		Rating:   5,
		Text:     "Great machine",
		Approved: &hidden,
	})
	require.NoError(t, err)

	postForm(t, client, srv.URL+"/admin/login", url.Values{
		"email":    {"admin@example.com"},
		"password": {"secret"},
	})

	resp := postForm(t, client, srv.URL+"/admin/reviews/moderate", url.Values{
		"id":       {created.ID},
		"approved": {"true"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin", resp.Header.Get("Location"))

	reviews, err := store.Reviews().List(context.Background())
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	require.NotNil(t, reviews[0].Approved)
	require.True(t, *reviews[0].Approved)
}
