package web_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	sharedmw "github.com/mesafacil/reservas/internal/middleware"
	"github.com/mesafacil/reservas/internal/factory"
)

func TestRootRedirectsToDashboard(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
}

func TestLoginPageRenders(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/dashboard/login")
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsElement(t, doc, "form#login-form")
	assertContainsElement(t, doc, "input[name='username']")
	assertContainsElement(t, doc, "input[name='password']")
	assertNotContainsElement(t, doc, "form.logout")
}

func TestLoginSetsCookieAndRedirects(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/dashboard/login", url.Values{
		"username": {factory.TestAdminUsername},
		"password": {factory.TestAdminPassword},
	})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
	assert.True(t, ts.cookies.hasSession())

	cookie := ts.cookies.cookies[sharedmw.SessionCookie]
	assert.True(t, cookie.HttpOnly)

	rr = ts.followRedirect(rr)
	assert.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, ".flash", "Welcome, admin!")
	assertContainsText(t, doc, "nav .user", factory.TestAdminUsername)
}

func TestLoginFollowsNext(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/dashboard/login", url.Values{
		"username": {factory.TestAdminUsername},
		"password": {factory.TestAdminPassword},
		"next":     {"/dashboard/date/2024-01-12"},
	})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard/date/2024-01-12", rr.Header().Get("Location"))
}

func TestLoginIgnoresOffsiteNext(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/dashboard/login", url.Values{
		"username": {factory.TestAdminUsername},
		"password": {factory.TestAdminPassword},
		"next":     {"//evil.example/"},
	})
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
}

func TestLoginWithWrongPassword(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/dashboard/login", url.Values{
		"username": {factory.TestAdminUsername},
		"password": {"not-the-password"},
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, ts.cookies.hasSession())

	doc := parseHTML(rr.Body)
	assertContainsText(t, doc, "#login-error", "Invalid credentials")
	assert.Equal(t, factory.TestAdminUsername, doc.Find("input[name='username']").AttrOr("value", ""))
}

func TestLoginPageRedirectsWhenLoggedIn(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login()

	rr := ts.get("/dashboard/login")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
}

func TestLogoutClearsSession(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login()

	rr := ts.post("/dashboard/logout", nil)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.False(t, ts.cookies.hasSession())

	rr = ts.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
}

func TestExpiredSessionRedirectsToLogin(t *testing.T) {
	ts := newWebTestServer(t)
	ts.login()

	ts.app.MockClock.Advance(25 * time.Hour)

	rr := ts.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "/dashboard/login")
	assert.False(t, ts.cookies.hasSession())
}

func TestLoginRateLimited(t *testing.T) {
	ts := newWebTestServerWithLimiter(t, sharedmw.NewRateLimiter(0.001, 1))

	form := url.Values{"username": {"admin"}, "password": {"wrong-password"}}
	rr := ts.post("/dashboard/login", form)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.post("/dashboard/login", form)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assertContainsText(t, parseHTML(rr.Body), "#login-error", "Too many login attempts")
}
