package api

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestSanitizeRedirectPath(t *testing.T) {
	t.Parallel()

	fallback := "/"

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty uses fallback", raw: "", want: fallback},
		{name: "absolute url blocked", raw: "https://evil.example", want: fallback},
		{name: "protocol relative blocked", raw: "//evil.example", want: fallback},
		{name: "path without leading slash blocked", raw: "office", want: fallback},
		{name: "valid local path kept", raw: "/office", want: "/office"},
		{name: "valid local path with query kept", raw: "/news?page=2", want: "/news?page=2"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := sanitizeRedirectPath(test.raw, fallback)
			if got != test.want {
				t.Fatalf("sanitizeRedirectPath(%q) = %q, want %q", test.raw, got, test.want)
			}
		})
	}
}

func TestParseIDParam(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, ok := parseIDParam(c, "id")
		if !ok {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendString(strconv.FormatUint(uint64(id), 10))
	})

	tests := []struct {
		path   string
		status int
	}{
		{path: "/items/12", status: fiber.StatusOK},
		{path: "/items/0", status: fiber.StatusNotFound},
		{path: "/items/-3", status: fiber.StatusNotFound},
		{path: "/items/abc", status: fiber.StatusNotFound},
	}
	for _, test := range tests {
		response, err := app.Test(httptest.NewRequest(http.MethodGet, test.path, nil), -1)
		if err != nil {
			t.Fatalf("GET %s failed: %v", test.path, err)
		}
		response.Body.Close()
		if response.StatusCode != test.status {
			t.Fatalf("GET %s: expected %d, got %d", test.path, test.status, response.StatusCode)
		}
	}
}

func TestLocalizedPageTitleFallsBack(t *testing.T) {
	t.Parallel()

	messages := map[string]string{"meta.title.home": "Главная", "meta.title.blank": "  "}
	if got := localizedPageTitle(messages, "meta.title.home", "Home"); got != "Главная" {
		t.Fatalf("expected translated title, got %q", got)
	}
	if got := localizedPageTitle(messages, "meta.title.blank", "Blank"); got != "Blank" {
		t.Fatalf("expected fallback for blank translation, got %q", got)
	}
	if got := localizedPageTitle(nil, "meta.title.missing", "Missing"); got != "Missing" {
		t.Fatalf("expected fallback for missing key, got %q", got)
	}
}
