package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitfeed/internal/db"
	"github.com/terraincognita07/habitfeed/internal/i18n"
	"github.com/terraincognita07/habitfeed/internal/models"
	"github.com/terraincognita07/habitfeed/internal/storage"
	"github.com/terraincognita07/habitfeed/internal/templates"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "habitfeed-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager("en", i18n.EmbeddedLocales())
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	photos, err := storage.NewLocalPhotoStore(filepath.Join(t.TempDir(), "uploads"), "/uploads")
	if err != nil {
		t.Fatalf("init photo store: %v", err)
	}

	handler, err := NewHandler(database, "test-secret-key", templates.Files, time.UTC, i18nManager, false)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	handler.WithPhotoStore(photos)

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, database
}

func sendRequest(t *testing.T, app *fiber.App, request *http.Request, authCookie string) *http.Response {
	t.Helper()

	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	return response
}

func postForm(t *testing.T, app *fiber.App, path string, form url.Values, authCookie string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return sendRequest(t, app, request, authCookie)
}

func getPage(t *testing.T, app *fiber.App, path string, authCookie string) *http.Response {
	t.Helper()
	return sendRequest(t, app, httptest.NewRequest(http.MethodGet, path, nil), authCookie)
}

func sendJSON(t *testing.T, app *fiber.App, method string, path string, body string, authCookie string) *http.Response {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	return sendRequest(t, app, request, authCookie)
}

func readBody(t *testing.T, response *http.Response) string {
	t.Helper()

	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()

	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode json: %v", err)
	}
}

func readAPIError(t *testing.T, response *http.Response) string {
	t.Helper()

	payload := map[string]string{}
	decodeJSON(t, response, &payload)
	return payload["error"]
}

func responseCookie(response *http.Response, name string) *http.Cookie {
	for _, cookie := range response.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func registerUser(t *testing.T, app *fiber.App, email string, nickname string, password string) {
	t.Helper()

	response := postForm(t, app, "/register", url.Values{
		"email":          {email},
		"password":       {password},
		"password_again": {password},
		"name":           {nickname},
		"nickname":       {nickname},
	}, "")
	defer response.Body.Close()
	if response.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("register %s: expected 303, got %d", email, response.StatusCode)
	}
}

// loginUser returns a Cookie header value for the session.
func loginUser(t *testing.T, app *fiber.App, email string, password string) string {
	t.Helper()

	response := postForm(t, app, "/login", url.Values{"email": {email}, "password": {password}}, "")
	defer response.Body.Close()
	if response.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("login %s: expected 303, got %d", email, response.StatusCode)
	}
	cookie := responseCookie(response, authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatalf("login %s: expected auth cookie", email)
	}
	return authCookieName + "=" + cookie.Value
}

func registerAndLogin(t *testing.T, app *fiber.App, email string, nickname string) string {
	t.Helper()

	registerUser(t, app, email, nickname, "secret-pass")
	return loginUser(t, app, email, "secret-pass")
}

func mustFindUserByEmail(t *testing.T, database *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{}
	if err := database.Where("email = ?", email).First(&user).Error; err != nil {
		t.Fatalf("load user %s: %v", email, err)
	}
	return user
}
