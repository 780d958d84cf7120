package papers

import (
	"database/sql"
	"strconv"

	"astrocoffee/app/database"

	"github.com/gofiber/fiber/v2"
)

// GetPapersAPI returns papers as JSON. The filter query parameter accepts
// all, pending or discussed.
func GetPapersAPI(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := database.PaperFilter(c.Query("filter", string(database.FilterAll)))
		switch filter {
		case database.FilterAll, database.FilterPending, database.FilterDiscussed:
		default:
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "Unknown filter, use all, pending or discussed",
			})
		}

		papers, err := database.GetPapers(db, filter)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to fetch papers",
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"papers":  papers,
			"count":   len(papers),
		})
	}
}

func GetPaperAPI(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid paper ID",
			})
		}

		paper, err := database.GetPaperByID(db, id)
		if err != nil {
			if err == sql.ErrNoRows {
				return c.Status(404).JSON(fiber.Map{
					"success": false,
					"error":   "Paper not found",
				})
			}
			return c.Status(500).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to fetch paper",
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"paper":   paper,
		})
	}
}

// MarkDiscussedAPI is the JSON counterpart of MarkDiscussedHandler.
func MarkDiscussedAPI(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params("id"))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid paper ID",
			})
		}

		type DiscussRequest struct {
			Volunteer string `form:"volunteer" json:"volunteer"`
			NewDate   string `form:"new_date" json:"new_date"`
		}
		var req DiscussRequest
		if err := c.BodyParser(&req); err != nil && err != fiber.ErrUnprocessableEntity {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid request body",
			})
		}

		newDate, err := parseNewDate(req.NewDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid date, use YYYY-MM-DD",
			})
		}

		if err := database.MarkDiscussed(db, id, req.Volunteer, newDate); err != nil {
			if err == sql.ErrNoRows {
				return c.Status(404).JSON(fiber.Map{
					"success": false,
					"error":   "Paper not found",
				})
			}
			return c.Status(500).JSON(fiber.Map{
				"success": false,
				"error":   "Failed to update paper",
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Paper marked as discussed",
		})
	}
}
