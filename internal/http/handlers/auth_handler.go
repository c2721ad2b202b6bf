package handlers

import (
	"time"

	"cantrack/internal/log"
	"cantrack/internal/services"
	"cantrack/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": "", "Email": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	if _, ok := validate.Email(email); !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password", "Email": email, "CSRFToken": c.Cookies("csrf_")})
	}

	_, err := h.Auth.Login(sid, email, pass)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(401).Render("login", fiber.Map{"Err": "Invalid email or password", "Email": email, "CSRFToken": c.Cookies("csrf_")})
	}

	log.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) SignupForm(c *fiber.Ctx) error {
	return render(c, "signup", fiber.Map{"Err": "", "Email": "", "Name": ""})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	sid := ensureSID(c)
	email := c.FormValue("email")
	name := c.FormValue("name")
	pass := c.FormValue("password")

	// Re-render with the submitted values echoed back on any failure.
	echo := fiber.Map{"Email": email, "Name": name, "CSRFToken": c.Cookies("csrf_")}

	if _, ok := validate.Email(email); !ok {
		echo["Err"] = "Enter a valid email address"
		return c.Status(400).Render("signup", echo)
	}
	if _, ok := validate.Name(name); !ok {
		echo["Err"] = "Enter a display name"
		return c.Status(400).Render("signup", echo)
	}
	if !validate.Password(pass) {
		echo["Err"] = "Password needs 8+ characters with upper, lower, digit and symbol"
		return c.Status(400).Render("signup", echo)
	}

	_, err := h.Auth.Signup(sid, email, name, pass)
	if err == services.ErrEmailTaken {
		log.Security(c, "auth.signup.fail", map[string]any{"email": email, "reason": "taken"})
		echo["Err"] = "That email is already registered"
		return c.Status(400).Render("signup", echo)
	}
	if err != nil {
		log.Error(c, "auth.signup.fail", err, map[string]any{"email": email})
		echo["Err"] = "Could not create the account. Please try again."
		return c.Status(500).Render("signup", echo)
	}

	log.Audit(c, "auth.signup.success", map[string]any{"email": email})
	return c.Redirect("/")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	// Expire cookie
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/login")
}
