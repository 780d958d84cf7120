package auth

import (
	"database/sql"
	"strings"

	"astrocoffee/app/database"
	"astrocoffee/app/flash"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, db *sql.DB) {
	authGroup := app.Group("/auth")

	authGroup.Get("/login", ShowLoginPage(db))
	authGroup.Post("/login", LoginHandler(db))
	authGroup.Post("/logout", LogoutHandler(db))
}

func ShowLoginPage(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Already logged in visitors go straight to the papers list
		if token := c.Cookies(sessionCookie); token != "" {
			if _, err := database.GetSessionByID(db, token); err == nil {
				return c.Redirect("/")
			}
		}

		bind := fiber.Map{
			"Title":       "Login - AstroCoffee",
			"CurrentPage": "login",
		}
		if msg, ok := flash.Take(c); ok {
			bind["Flash"] = msg
		}
		return c.Render("auth/login", bind)
	}
}

// Middleware resolves the session cookie through the sessions table and
// loads the account into c.Locals("user"). Unauthenticated page requests
// are redirected to the login form; API requests get a 401.
func Middleware(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		isAPIRequest := strings.HasPrefix(c.Path(), "/api/")

		deny := func() error {
			if isAPIRequest {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not logged in"})
			}
			flash.Set(c, "error", "Please log in first.")
			return c.Redirect("/auth/login")
		}

		token := c.Cookies(sessionCookie)
		if token == "" {
			return deny()
		}

		session, err := database.GetSessionByID(db, token)
		if err != nil {
			return deny()
		}

		user, err := database.GetUserByID(db, session.UserID)
		if err != nil {
			return deny()
		}

		c.Locals("user", user)
		c.Locals("user_id", user.ID)
		return c.Next()
	}
}
