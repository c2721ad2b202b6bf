package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"cantrack/internal/config"
	"cantrack/internal/http/handlers"
	"cantrack/internal/repos"
	"cantrack/internal/services"
)

// newTestApp wires a minimal app over an in-memory database. OpenDB seeds
// the demo account (demo@cantrack.test / Passw0rd!) with a few drinks.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	cfg := config.Config{ImageCacheFile: filepath.Join(t.TempDir(), "can_images.json")}
	deps := handlers.NewDeps(db, cfg, nil)
	requireUser := handlers.RequireUser(authSvc)

	app.Get("/login", authH.LoginForm)
	app.Post("/login", authH.Login)
	app.Get("/signup", authH.SignupForm)
	app.Post("/signup", authH.Signup)

	app.Get("/drinks", requireUser, deps.DrinkHandler.List)
	app.Post("/drinks", requireUser, deps.DrinkHandler.Create)
	app.Get("/charts", requireUser, deps.ChartHandler.Charts)
	app.Get("/library", requireUser, deps.LibraryHandler.Library)
	app.Post("/library/image", requireUser, deps.LibraryHandler.UploadImage)
	app.Post("/library/image/delete", requireUser, deps.LibraryHandler.RemoveImage)

	return app, db
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// csrfToken fetches the login page to obtain a CSRF cookie.
func csrfToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
	if err != nil {
		t.Fatal(err)
	}
	tok := extractCookie(resp, "csrf_")
	if tok == "" {
		t.Fatal("csrf token missing")
	}
	return tok
}

// loginDemo logs in the seeded demo user, returning session and csrf cookies.
func loginDemo(t *testing.T, app *fiber.App) (sid, tok string) {
	t.Helper()
	tok = csrfToken(t, app)
	form := strings.NewReader("csrf=" + tok + "&email=demo@cantrack.test&password=Passw0rd!")
	req := httptest.NewRequest("POST", "/login", form)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: tok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Fatalf("login should redirect, got %d", resp.StatusCode)
	}
	sid = extractCookie(resp, "sid")
	if sid == "" {
		t.Fatal("sid cookie missing after login")
	}
	return sid, tok
}
