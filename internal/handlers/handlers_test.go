// handlers_test.go
//
// Citenote: manuscripts, papers and citations with session authentication
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of citenote.
// citenote is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// citenote is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with citenote.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/yashodhanketkar/citenote/data"
	"github.com/yashodhanketkar/citenote/internal/config"
	"github.com/yashodhanketkar/citenote/internal/handlers"
	"github.com/yashodhanketkar/citenote/internal/middleware"
	"github.com/yashodhanketkar/citenote/internal/security"
	"github.com/yashodhanketkar/citenote/internal/services"
	"github.com/yashodhanketkar/citenote/internal/session"
	"github.com/yashodhanketkar/citenote/internal/store"
	"github.com/yashodhanketkar/citenote/internal/testutil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const cookieName = "citenote_session"

// setupApp builds the full route table over an in-memory SQLite database
func setupApp(t *testing.T, mode services.StatusMode) *fiber.App {
	t.Helper()

	db := testutil.NewDB(t)
	s := store.New(db, 5*time.Second)
	log := zap.NewNop()
	cfg := &config.Config{AppName: "citenote", AppVersion: "test", DBType: "sqlite", SessionStore: "memory"}

	entryTypes, err := services.ParseEntryTypes(data.EntryTypes)
	if err != nil {
		t.Fatalf("Failed to load entry types: %v", err)
	}
	sessions := session.NewMemoryStore(time.Minute)
	ops := services.NewWrapper(log, mode)
	auth := services.NewAuthService(s,
		security.NewBcryptHasher("pepper", bcrypt.MinCost),
		services.NewRoleValidator([]string{"guest", "editor"}),
		log)
	if err := auth.CreateAdmin(t.Context(), "root-pass"); err != nil {
		t.Fatalf("Failed to create admin: %v", err)
	}

	citations := services.NewCitationService(s, log, entryTypes)
	papers := &handlers.ResourceHandler{
		Service: services.NewPaperService(s, log),
		Ops:     ops,
		Details: fiber.Map{"citation": citations.Catalogue()},
	}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(middleware.Sessions(session.NewManager(sessions, log), cookieName, log))
	handlers.Register(app, handlers.Handlers{
		Home:         &handlers.HomeHandler{Config: cfg, DB: db, Sessions: sessions, Log: log},
		Users:        &handlers.UserHandler{Auth: auth, Ops: ops},
		Manuscripts:  &handlers.ResourceHandler{Service: services.NewManuscriptService(s, log), Ops: ops},
		Papers:       papers,
		Associations: &handlers.AssociationHandler{Service: services.NewAssociationService(s, log), Ops: ops},
		Citations:    &handlers.CitationHandler{Service: citations, Ops: ops},
	})
	app.Use(handlers.NotFound)
	return app
}

// form sends an urlencoded request, optionally carrying a session cookie
func form(t *testing.T, app *fiber.App, method, target string, values url.Values, cookie *http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	return resp
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Errorf("Expected status %d, got %d (%s)", want, resp.StatusCode, body)
	}
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestResourceLifecycle(t *testing.T) {
	app := setupApp(t, services.StatusLegacy)

	resp := form(t, app, "GET", "/manuscripts", nil, nil)
	expectStatus(t, resp, 500)

	resp = form(t, app, "POST", "/manuscripts", url.Values{"manuscript_name": {"M1"}, "manuscript_abstract": {"first"}}, nil)
	expectStatus(t, resp, 201)

	resp = form(t, app, "POST", "/manuscripts", url.Values{"manuscript_name": {"M1"}}, nil)
	expectStatus(t, resp, 500)
	if body, _ := io.ReadAll(resp.Body); len(body) != 0 {
		t.Errorf("Expected empty body in legacy mode, got %s", body)
	}

	resp = form(t, app, "GET", "/manuscripts", nil, nil)
	expectStatus(t, resp, 200)
	var list services.ResourceList
	decode(t, resp, &list)
	if list.Count != 1 || list.Results[0].Name != "M1" {
		t.Errorf("Unexpected listing: %+v", list)
	}

	resp = form(t, app, "PATCH", "/manuscripts", url.Values{"manuscript_name": {"M1"}}, nil)
	expectStatus(t, resp, 204)

	resp = form(t, app, "PATCH", "/manuscripts", url.Values{"manuscript_name": {"M1"}, "updated_abstract": {"first"}}, nil)
	expectStatus(t, resp, 500)

	resp = form(t, app, "PUT", "/manuscripts", url.Values{
		"manuscript_name":  {"M1"},
		"updated_name":     {"M2"},
		"updated_abstract": {"second"},
	}, nil)
	expectStatus(t, resp, 200)

	resp = form(t, app, "GET", "/manuscripts?manuscript_name=M2", nil, nil)
	expectStatus(t, resp, 200)
	var rec map[string]interface{}
	decode(t, resp, &rec)
	if rec["abstract"] != "second" {
		t.Errorf("Expected abstract 'second', got %v", rec["abstract"])
	}

	resp = form(t, app, "DELETE", "/manuscripts?manuscript_name=M2", nil, nil)
	expectStatus(t, resp, 200)

	resp = form(t, app, "DELETE", "/manuscripts?manuscript_name=M2", nil, nil)
	expectStatus(t, resp, 500)
}

func TestRESTStatusMode(t *testing.T) {
	app := setupApp(t, services.StatusREST)

	resp := form(t, app, "GET", "/papers?paper_name=missing", nil, nil)
	expectStatus(t, resp, 404)

	var body map[string]interface{}
	decode(t, resp, &body)
	if body["code"] != "PaperNotFoundError" {
		t.Errorf("Expected code PaperNotFoundError, got %v", body["code"])
	}

	form(t, app, "POST", "/papers", url.Values{"paper_name": {"P1"}}, nil)
	resp = form(t, app, "POST", "/papers", url.Values{"paper_name": {"P1"}}, nil)
	expectStatus(t, resp, 400)
}

func TestAssociationRoutes(t *testing.T) {
	app := setupApp(t, services.StatusLegacy)

	expectStatus(t, form(t, app, "POST", "/manuscripts", url.Values{"manuscript_name": {"M1"}}, nil), 201)
	expectStatus(t, form(t, app, "POST", "/papers", url.Values{"paper_name": {"P1"}}, nil), 201)

	resp := form(t, app, "GET", "/manuscripts/1/add_paper", nil, nil)
	expectStatus(t, resp, 200)
	var list services.PaperList
	decode(t, resp, &list)
	if list.Count != 0 {
		t.Errorf("Expected no papers, got %d", list.Count)
	}

	expectStatus(t, form(t, app, "POST", "/manuscripts/1/add_paper", url.Values{"paper_id": {"1"}}, nil), 201)
	expectStatus(t, form(t, app, "POST", "/manuscripts/1/add_paper", url.Values{"paper_id": {"1"}}, nil), 500)

	// paper_id may arrive as a JSON number
	req := httptest.NewRequest("DELETE", "/manuscripts/1/add_paper", strings.NewReader(`{"paper_id": 1}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	expectStatus(t, resp, 200)

	expectStatus(t, form(t, app, "DELETE", "/manuscripts/1/add_paper", url.Values{"paper_id": {"1"}}, nil), 500)
	expectStatus(t, form(t, app, "POST", "/manuscripts/1/add_paper", url.Values{"paper_id": {"abc"}}, nil), 500)
	expectStatus(t, form(t, app, "GET", "/manuscripts/9/add_paper", nil, nil), 500)
}

func TestCitationRoutes(t *testing.T) {
	app := setupApp(t, services.StatusLegacy)

	expectStatus(t, form(t, app, "POST", "/papers", url.Values{"paper_name": {"P1"}}, nil), 201)

	expectStatus(t, form(t, app, "GET", "/papers/1/citation", nil, nil), 500)
	expectStatus(t, form(t, app, "POST", "/papers/1/citation", url.Values{"type": {"article"}, "title": {"Only a title"}}, nil), 500)
	expectStatus(t, form(t, app, "POST", "/papers/1/citation", url.Values{"type": {"misc"}, "title": {"Notes"}, "url": {"https://example.org"}}, nil), 201)

	resp := form(t, app, "GET", "/papers/1/citation", nil, nil)
	expectStatus(t, resp, 200)
	var citation map[string]interface{}
	decode(t, resp, &citation)
	if citation["name"] != "Paper_1" {
		t.Errorf("Expected default name Paper_1, got %v", citation["name"])
	}

	expectStatus(t, form(t, app, "PATCH", "/papers/1/citation", url.Values{"updated_title": {"Better notes"}}, nil), 200)
	expectStatus(t, form(t, app, "PATCH", "/papers/1/citation", url.Values{"updated_title": {"Better notes"}}, nil), 500)
	expectStatus(t, form(t, app, "PUT", "/papers/1/citation", url.Values{"updated_title": {"No name"}}, nil), 204)
	expectStatus(t, form(t, app, "DELETE", "/papers/1/citation", nil, nil), 200)
	expectStatus(t, form(t, app, "DELETE", "/papers/1/citation", nil, nil), 500)
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatal("Expected a session cookie")
	return nil
}

func checkResult(t *testing.T, resp *http.Response, want string) {
	t.Helper()
	var body map[string]string
	decode(t, resp, &body)
	if body["check"] != want {
		t.Errorf("Expected check %q, got %q", want, body["check"])
	}
}

func TestUserSessionFlow(t *testing.T) {
	app := setupApp(t, services.StatusLegacy)

	resp := form(t, app, "GET", "/users/register?username=ada&password=secret&role=editor", nil, nil)
	expectStatus(t, resp, 200)
	checkResult(t, resp, "register successful")

	resp = form(t, app, "POST", "/users/register", url.Values{"username": {"ada"}, "password": {"other"}}, nil)
	expectStatus(t, resp, 400)
	checkResult(t, resp, "register unsuccessful")

	expectStatus(t, form(t, app, "GET", "/users/get/ada", nil, nil), 403)

	resp = form(t, app, "POST", "/users/login", url.Values{"username": {"ada"}, "password": {"wrong"}}, nil)
	checkResult(t, resp, "login unsuccessful")

	resp = form(t, app, "POST", "/users/login", url.Values{"username": {"ada"}, "password": {"secret"}}, nil)
	checkResult(t, resp, "login successful")
	cookie := sessionCookie(t, resp)

	resp = form(t, app, "POST", "/users/login", url.Values{"username": {"ada"}, "password": {"secret"}}, cookie)
	checkResult(t, resp, "login unsuccessful")

	resp = form(t, app, "GET", "/users/get/ada", nil, cookie)
	expectStatus(t, resp, 200)
	var user map[string]interface{}
	decode(t, resp, &user)
	if user["role"] != "editor" {
		t.Errorf("Expected role editor, got %v", user["role"])
	}
	if _, ok := user["password"]; ok {
		t.Error("Expected password to be hidden")
	}

	expectStatus(t, form(t, app, "GET", "/users", nil, cookie), 403)

	resp = form(t, app, "PATCH", "/users/ada/role", url.Values{"password": {"secret"}, "new_role": {"editor"}}, nil)
	checkResult(t, resp, "update role unsuccessful")
	resp = form(t, app, "PATCH", "/users/ada/role", url.Values{"password": {"secret"}, "new_role": {"guest"}}, nil)
	checkResult(t, resp, "update role successful")

	resp = form(t, app, "GET", "/users/logout", nil, cookie)
	checkResult(t, resp, "logout successful")
	resp = form(t, app, "GET", "/users/logout", nil, cookie)
	checkResult(t, resp, "logout unsuccessful")
	expectStatus(t, form(t, app, "GET", "/users/get/ada", nil, cookie), 403)
}

func TestAdminListsUsers(t *testing.T) {
	app := setupApp(t, services.StatusLegacy)

	resp := form(t, app, "POST", "/users/login", url.Values{"username": {"admin"}, "password": {"root-pass"}}, nil)
	checkResult(t, resp, "login successful")
	cookie := sessionCookie(t, resp)

	resp = form(t, app, "GET", "/users", nil, cookie)
	expectStatus(t, resp, 200)
	var users []map[string]interface{}
	decode(t, resp, &users)
	if len(users) != 1 || users[0]["username"] != "admin" {
		t.Errorf("Unexpected users: %v", users)
	}

	// the bootstrap admin cannot be demoted, so its session keeps admin access
	resp = form(t, app, "PATCH", "/users/admin/role", url.Values{"password": {"root-pass"}, "new_role": {"guest"}}, nil)
	checkResult(t, resp, "update role unsuccessful")
	expectStatus(t, form(t, app, "GET", "/users", nil, cookie), 200)

	resp = form(t, app, "POST", "/users/delete", url.Values{"username": {"admin"}, "password": {"root-pass"}}, cookie)
	checkResult(t, resp, "delete successful")
	expectStatus(t, form(t, app, "GET", "/users", nil, cookie), 403)
}

func TestHomeAndNotFound(t *testing.T) {
	app := setupApp(t, services.StatusLegacy)

	resp := form(t, app, "GET", "/about", nil, nil)
	expectStatus(t, resp, 200)
	var about map[string]string
	decode(t, resp, &about)
	if about["version"] != "test" {
		t.Errorf("Expected version 'test', got %q", about["version"])
	}

	resp = form(t, app, "GET", "/health", nil, nil)
	expectStatus(t, resp, 200)

	resp = form(t, app, "GET", "/papers/about", nil, nil)
	expectStatus(t, resp, 200)
	var papersAbout struct {
		Resource string                     `json:"resource"`
		Citation services.CitationCatalogue `json:"citation"`
	}
	decode(t, resp, &papersAbout)
	if papersAbout.Resource != "paper" {
		t.Errorf("Expected resource 'paper', got %q", papersAbout.Resource)
	}
	if len(papersAbout.Citation.Types) != 13 {
		t.Errorf("Expected 13 citation types, got %v", papersAbout.Citation.Types)
	}

	resp = form(t, app, "GET", "/users/about", nil, nil)
	expectStatus(t, resp, 200)
	var usersAbout struct {
		Roles []string `json:"roles"`
	}
	decode(t, resp, &usersAbout)
	if len(usersAbout.Roles) != 2 || usersAbout.Roles[0] != "editor" || usersAbout.Roles[1] != "guest" {
		t.Errorf("Expected roles [editor guest], got %v", usersAbout.Roles)
	}

	resp = form(t, app, "GET", "/nowhere", nil, nil)
	expectStatus(t, resp, 404)
}
