package web

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"authboard/database"
	"authboard/logger"
	"authboard/web/service"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "authboard-web-test")
	if err != nil {
		panic(err)
	}
	os.Setenv("AB_LOG_FOLDER", dir)
	os.Setenv("AB_SECRET", "test-secret")
	logger.InitLogger(logging.DEBUG)

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

var csrfPattern = regexp.MustCompile(`name="csrf_token" value="([0-9a-f]+)"`)

// newTestServer boots a fresh database and router and returns an HTTP
// client that carries cookies and does not follow redirects.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.InitDB(dbPath))
	t.Cleanup(func() { _ = database.CloseDB() })

	engine, err := NewServer().initRouter()
	require.NoError(t, err)

	ts := httptest.NewServer(engine)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return ts, client
}

func getPage(t *testing.T, client *http.Client, url string) (int, string) {
	t.Helper()
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

// fetchCSRF loads a page and extracts the session's anti-forgery token.
func fetchCSRF(t *testing.T, client *http.Client, url string) string {
	t.Helper()
	status, body := getPage(t, client, url)
	require.Equal(t, http.StatusOK, status)
	match := csrfPattern.FindStringSubmatch(body)
	require.Len(t, match, 2, "no csrf token found in page")
	return match[1]
}

func postForm(t *testing.T, client *http.Client, target string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(target, form)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRegisterLoginDashboardLogoutScenario(t *testing.T) {
	ts, client := newTestServer(t)

	// Registration page carries a token for the fresh session.
	csrf := fetchCSRF(t, client, ts.URL+"/register")

	resp := postForm(t, client, ts.URL+"/register", url.Values{
		"csrf_token":       {csrf},
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"Strong123!"},
		"password_confirm": {"Strong123!"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp = postForm(t, client, ts.URL+"/login", url.Values{
		"csrf_token": {csrf},
		"email":      {"alice@example.com"},
		"password":   {"Strong123!"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	status, body := getPage(t, client, ts.URL+"/dashboard")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "alice")
	assert.Contains(t, body, "alice@example.com")

	// The dashboard page carries the regenerated session's token.
	match := csrfPattern.FindStringSubmatch(body)
	require.Len(t, match, 2)
	loggedInCSRF := match[1]
	assert.NotEqual(t, csrf, loggedInCSRF, "login must regenerate the session")

	resp = postForm(t, client, ts.URL+"/logout", url.Values{"csrf_token": {loggedInCSRF}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	// The gate is closed again.
	resp2, err := client.Get(ts.URL + "/dashboard")
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp2.StatusCode)
	assert.Equal(t, "/", resp2.Header.Get("Location"))
}

func TestCSRFRejectedBeforeStoreMutation(t *testing.T) {
	ts, client := newTestServer(t)

	// No token at all.
	resp := postForm(t, client, ts.URL+"/register", url.Values{
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"Strong123!"},
		"password_confirm": {"Strong123!"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Wrong token.
	fetchCSRF(t, client, ts.URL+"/register")
	resp = postForm(t, client, ts.URL+"/register", url.Values{
		"csrf_token":       {strings.Repeat("0", 32)},
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"Strong123!"},
		"password_confirm": {"Strong123!"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	userService := service.UserService{}
	user, err := userService.GetByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Nil(t, user, "rejected requests must not reach the store")
}

func TestRegisterValidationErrorsRendered(t *testing.T) {
	ts, client := newTestServer(t)
	csrf := fetchCSRF(t, client, ts.URL+"/register")

	resp := postForm(t, client, ts.URL+"/register", url.Values{
		"csrf_token":       {csrf},
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"weak"},
		"password_confirm": {"weak"},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Password must be at least 8 characters long.")
	assert.Contains(t, string(body), "Password must contain at least one uppercase letter.")
}

func TestDuplicateRegistrationConflict(t *testing.T) {
	ts, client := newTestServer(t)
	csrf := fetchCSRF(t, client, ts.URL+"/register")

	form := url.Values{
		"csrf_token":       {csrf},
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"Strong123!"},
		"password_confirm": {"Strong123!"},
	}
	resp := postForm(t, client, ts.URL+"/register", form)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp = postForm(t, client, ts.URL+"/register", form)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Email already registered.")
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	ts, client := newTestServer(t)
	csrf := fetchCSRF(t, client, ts.URL+"/register")

	resp := postForm(t, client, ts.URL+"/register", url.Values{
		"csrf_token":       {csrf},
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"Strong123!"},
		"password_confirm": {"Strong123!"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	unknown := postForm(t, client, ts.URL+"/login", url.Values{
		"csrf_token": {csrf},
		"email":      {"bob@example.com"},
		"password":   {"Strong123!"},
	})
	require.Equal(t, http.StatusBadRequest, unknown.StatusCode)
	unknownBody, err := io.ReadAll(unknown.Body)
	require.NoError(t, err)

	wrong := postForm(t, client, ts.URL+"/login", url.Values{
		"csrf_token": {csrf},
		"email":      {"alice@example.com"},
		"password":   {"Wrong123!"},
	})
	require.Equal(t, http.StatusBadRequest, wrong.StatusCode)
	wrongBody, err := io.ReadAll(wrong.Body)
	require.NoError(t, err)

	assert.Contains(t, string(unknownBody), "Invalid email or password.")
	assert.Contains(t, string(wrongBody), "Invalid email or password.")
	assert.NotContains(t, string(unknownBody), "No user", "failure detail must not leak")
	assert.NotContains(t, string(wrongBody), "wrong password", "failure detail must not leak")
}

func TestStorageFaultRendersGenerically(t *testing.T) {
	ts, client := newTestServer(t)
	csrf := fetchCSRF(t, client, ts.URL+"/register")

	require.NoError(t, database.GetDB().Exec("DROP TABLE user").Error)

	resp := postForm(t, client, ts.URL+"/register", url.Values{
		"csrf_token":       {csrf},
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"Strong123!"},
		"password_confirm": {"Strong123!"},
	})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Something went wrong on our side. Please try again later.")
	assert.NotContains(t, string(body), "no such table", "raw store error must not leak")
	assert.NotContains(t, string(body), "SQL", "raw store error must not leak")
}

func TestLogoutWithoutLoginIsNoOp(t *testing.T) {
	ts, client := newTestServer(t)
	csrf := fetchCSRF(t, client, ts.URL)

	resp := postForm(t, client, ts.URL+"/logout", url.Values{"csrf_token": {csrf}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
}
