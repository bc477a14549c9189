package api

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func postOffice(t *testing.T, app *fiber.App, fields map[string]string, filename string, photo []byte, authCookie string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(photo); err != nil {
			t.Fatalf("write photo: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	request := httptest.NewRequest(http.MethodPost, "/office", &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return sendRequest(t, app, request, authCookie)
}

func TestOfficeUpdatesProfileAndPhoto(t *testing.T) {
	app, database := newTestApp(t)
	cookie := registerAndLogin(t, app, "alice@example.com", "alice")

	response := postOffice(t, app, map[string]string{
		"name":      "Alice",
		"surname":   "Smith",
		"age":       "31",
		"city_from": "Kazan",
	}, "me.png", pngSignature, cookie)
	readBody(t, response)
	if response.StatusCode != fiber.StatusSeeOther {
		t.Fatalf("expected 303, got %d", response.StatusCode)
	}

	user := mustFindUserByEmail(t, database, "alice@example.com")
	if user.Surname != "Smith" || user.Age != 31 || user.CityFrom != "Kazan" {
		t.Fatalf("unexpected profile %+v", user)
	}
	if !strings.HasPrefix(user.PhotoPath, "/uploads/") || !strings.HasSuffix(user.PhotoPath, ".png") {
		t.Fatalf("unexpected photo path %q", user.PhotoPath)
	}
}

func TestOfficeRejectsNonImageUploadWithoutSavingFields(t *testing.T) {
	app, database := newTestApp(t)
	cookie := registerAndLogin(t, app, "alice@example.com", "alice")

	response := postOffice(t, app, map[string]string{"surname": "Smith"}, "me.png", []byte("plain text, not an image"), cookie)
	body := readBody(t, response)
	if response.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", response.StatusCode)
	}
	if !strings.Contains(body, "Photo must be a jpg or png image") {
		t.Fatalf("expected photo validation message")
	}

	user := mustFindUserByEmail(t, database, "alice@example.com")
	if user.Surname != "" || user.PhotoPath != "" {
		t.Fatalf("expected profile untouched, got %+v", user)
	}
}

func TestOfficeRejectsTakenEmail(t *testing.T) {
	app, _ := newTestApp(t)
	registerAndLogin(t, app, "bob@example.com", "bob")
	cookie := registerAndLogin(t, app, "alice@example.com", "alice")

	response := postOffice(t, app, map[string]string{"email": "BOB@example.com"}, "", nil, cookie)
	body := readBody(t, response)
	if response.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", response.StatusCode)
	}
	if !strings.Contains(body, "This email is already taken") {
		t.Fatalf("expected email conflict message")
	}
}

func TestOfficeShowsSubscribedHabitsAndOwnNews(t *testing.T) {
	app, _ := newTestApp(t)
	cookie := registerAndLogin(t, app, "alice@example.com", "alice")
	createJSON(t, app, "/api/v1/habits", `{"type":"Cold shower","period":"month"}`, cookie)
	createJSON(t, app, "/api/v1/news", `{"title":"Brrr"}`, cookie)

	body := readBody(t, getPage(t, app, "/office", cookie))
	if !strings.Contains(body, "Cold shower") || !strings.Contains(body, "Brrr") {
		t.Fatalf("expected subscribed habit and own news on the profile page")
	}
}
