package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestGatedPagesRedirectToLogin(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/add_habit", "/add_habit/1", "/com_add/1", "/add_news", "/office", "/logout"} {
		response := getPage(t, app, path, "")
		readBody(t, response)
		if response.StatusCode != fiber.StatusSeeOther {
			t.Fatalf("GET %s: expected 303, got %d", path, response.StatusCode)
		}
		if location := response.Header.Get("Location"); location != "/login" {
			t.Fatalf("GET %s: expected redirect to /login, got %q", path, location)
		}
	}
}

func TestPublicPagesRender(t *testing.T) {
	app, _ := newTestApp(t)

	for _, path := range []string{"/", "/news", "/info", "/login", "/register"} {
		response := getPage(t, app, path, "")
		body := readBody(t, response)
		if response.StatusCode != fiber.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, response.StatusCode)
		}
		if !strings.Contains(body, "<title>") {
			t.Fatalf("GET %s: expected rendered layout", path)
		}
	}
}

func TestHealthReportsDatabase(t *testing.T) {
	app, _ := newTestApp(t)

	response := getPage(t, app, "/healthz", "")
	body := readBody(t, response)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	if !strings.Contains(body, `"status":"ok"`) {
		t.Fatalf("unexpected health body %q", body)
	}
}

func TestUnknownPageRendersNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	response := getPage(t, app, "/missing-page", "")
	body := readBody(t, response)
	if response.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", response.StatusCode)
	}
	if !strings.Contains(body, "Page not found") {
		t.Fatalf("expected not found page body")
	}
}

func TestCommentPageForUnknownNewsIsNotFound(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerAndLogin(t, app, "alice@example.com", "alice")

	response := getPage(t, app, "/com_add/999", cookie)
	readBody(t, response)
	if response.StatusCode != fiber.StatusNotFound {
		t.Fatalf("GET expected 404, got %d", response.StatusCode)
	}

	response = postForm(t, app, "/com_add/999", url.Values{"content": {"hello"}}, cookie)
	readBody(t, response)
	if response.StatusCode != fiber.StatusNotFound {
		t.Fatalf("POST expected 404, got %d", response.StatusCode)
	}
}

func TestRepostOfUnknownHabitIsNotFound(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerAndLogin(t, app, "alice@example.com", "alice")

	response := postForm(t, app, "/add_habit/42", url.Values{}, cookie)
	readBody(t, response)
	if response.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", response.StatusCode)
	}
}

func TestAddHabitValidationRerendersForm(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerAndLogin(t, app, "alice@example.com", "alice")

	response := postForm(t, app, "/add_habit", url.Values{"habit_name": {"  "}, "duration": {"week"}}, cookie)
	body := readBody(t, response)
	if response.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", response.StatusCode)
	}
	if !strings.Contains(body, "Enter the habit name and period") {
		t.Fatalf("expected inline validation message")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerAndLogin(t, app, "alice@example.com", "alice")

	response := getPage(t, app, "/logout", cookie)
	readBody(t, response)
	if response.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("expected 303, got %d", response.StatusCode)
	}
	if cleared := responseCookie(response, authCookieName); cleared == nil || cleared.Value != "" {
		t.Fatalf("expected auth cookie to be cleared")
	}
}

func TestInvalidSessionCookieIsClearedOnPublicPages(t *testing.T) {
	app, _ := newTestApp(t)

	response := getPage(t, app, "/", authCookieName+"=not-a-token")
	readBody(t, response)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	if cleared := responseCookie(response, authCookieName); cleared == nil || cleared.Value != "" {
		t.Fatalf("expected invalid cookie to be cleared")
	}
}

func TestLanguageSwitchRendersRussian(t *testing.T) {
	app, _ := newTestApp(t)

	request := httptest.NewRequest(http.MethodGet, "/lang/ru", nil)
	request.Header.Set("Referer", "/info")
	response := sendRequest(t, app, request, "")
	readBody(t, response)
	if response.StatusCode != fiber.StatusSeeOther || response.Header.Get("Location") != "/info" {
		t.Fatalf("expected redirect back to /info, got %d %q", response.StatusCode, response.Header.Get("Location"))
	}
	cookie := responseCookie(response, languageCookieName)
	if cookie == nil || cookie.Value != "ru" {
		t.Fatalf("expected ru language cookie")
	}

	body := readBody(t, getPage(t, app, "/login", languageCookieName+"=ru"))
	if !strings.Contains(body, `lang="ru"`) {
		t.Fatalf("expected russian page")
	}
}
