package auth

import (
	"database/sql"
	"log"

	"astrocoffee/app/database"
	"astrocoffee/app/flash"

	"github.com/gofiber/fiber/v2"
)

func LoginHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		type LoginRequest struct {
			Email    string `form:"email" json:"email"`
			Password string `form:"password" json:"password"`
		}

		var req LoginRequest
		if err := c.BodyParser(&req); err != nil {
			flash.Set(c, "error", "Invalid login request.")
			return c.Redirect("/auth/login")
		}

		user, err := database.GetUserByEmail(db, req.Email)
		if err != nil {
			if err != sql.ErrNoRows {
				log.Printf("Login lookup failed: %v", err)
			}
			flash.Set(c, "error", "Invalid email or password.")
			return c.Redirect("/auth/login")
		}

		if !CheckPasswordHash(req.Password, user.Password) {
			flash.Set(c, "error", "Invalid email or password.")
			return c.Redirect("/auth/login")
		}

		token := GenerateSessionToken()
		if err := database.CreateSession(db, token, user.ID, SessionExpiry()); err != nil {
			log.Printf("Failed to create session: %v", err)
			flash.Set(c, "error", "Something went wrong, please try again.")
			return c.Redirect("/auth/login")
		}

		SetSessionCookie(c, token)
		flash.Set(c, "success", "Welcome back, "+user.Name+"!")
		return c.Redirect("/")
	}
}

func LogoutHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Cookies(sessionCookie); token != "" {
			if err := database.DeleteSession(db, token); err != nil {
				log.Printf("Failed to delete session: %v", err)
			}
		}

		ClearSessionCookie(c)
		flash.Set(c, "success", "You have been logged out.")
		return c.Redirect("/")
	}
}
