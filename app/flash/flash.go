// Package flash carries one-shot feedback messages between a redirect and
// the next rendered page, using a short-lived cookie so no server-side
// state is involved.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

const cookieName = "coffee_flash"

// Message is a single piece of feedback shown on the next rendered page.
// Category is "success" or "error".
type Message struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Set attaches a message to the response. It replaces any message already
// pending for this visitor.
func Set(c *fiber.Ctx, category, text string) {
	payload, err := json.Marshal(Message{Category: category, Text: text})
	if err != nil {
		return
	}

	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Expires:  time.Now().Add(5 * time.Minute),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// Take returns the pending message, if any, and clears it so it renders
// exactly once.
func Take(c *fiber.Ctx) (Message, bool) {
	raw := c.Cookies(cookieName)
	if raw == "" {
		return Message{}, false
	}

	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	payload, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return Message{}, false
	}

	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, false
	}
	return msg, true
}
